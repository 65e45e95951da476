package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path"

	"github.com/SscSPs/ledger_engine/internal/cli"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/metrics"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_engine/pkg/database"
	"github.com/google/subcommands"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	flag.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "PostgreSQL connection URL (defaults to PGSQL_URL).")
	logLevel := flag.String("log-level", cfg.LogLevel.String(), "Log level: debug, info, warn or error.")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	env := &cli.Env{
		Config: cfg,
		Out:    os.Stdout,
		OpenServices: func(ctx context.Context) (*portssvc.ServiceContainer, func(), error) {
			pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
			if err != nil {
				return nil, nil, err
			}
			repos := pgsql.NewRepositoryProvider(pool, cfg.DBStatementTimeout)
			// A private registry: the CLI has no /metrics endpoint.
			m := metrics.NewLedgerMetrics(prometheus.NewRegistry())
			return services.NewServiceContainer(cfg, repos, m), func() { database.ClosePgxPool(pool) }, nil
		},
	}
	cli.Register(commander, env)

	flag.Parse()

	level, err := config.ParseLogLevel(*logLevel)
	if err != nil {
		slog.Error("Invalid -log-level", slog.String("error", err.Error()))
		os.Exit(int(subcommands.ExitUsageError))
	}
	// Logs go to stderr; stdout carries command output.
	env.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(env.Logger)
	env.Migrate = func(direction database.MigrationDirection) (bool, error) {
		return database.RunMigrations(cfg.DatabaseURL, direction, env.Logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	status := commander.Execute(ctx)
	stop()
	os.Exit(int(status))
}
