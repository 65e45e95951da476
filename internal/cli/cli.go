// Package cli implements the ledgerctl operator commands on top of the ledger services.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/pkg/database"
	"github.com/google/subcommands"
)

// ServicesOpener builds the service graph and returns a release func for its resources.
type ServicesOpener func(ctx context.Context) (*portssvc.ServiceContainer, func(), error)

// Migrator moves the schema in one direction and reports whether anything changed.
type Migrator func(direction database.MigrationDirection) (bool, error)

// Env carries what every command needs. Services are opened per command so that
// migrate never builds the service graph.
type Env struct {
	Config       *config.Config
	Logger       *slog.Logger
	Out          io.Writer
	OpenServices ServicesOpener
	Migrate      Migrator
}

// Register adds every ledgerctl command to c.
func Register(c *subcommands.Commander, env *Env) {
	c.Register(&migrateCmd{env: env}, "schema")

	c.Register(&importTaxonomyCmd{env: env}, "reference data")
	c.Register(&seedOrganizationsCmd{env: env}, "reference data")

	c.Register(&createEntryCmd{env: env}, "journal")
	c.Register(&postEntryCmd{env: env}, "journal")

	c.Register(&trialBalanceCmd{env: env}, "reports")
}

// withServices opens the services, tags the context logger with the command name and runs fn.
func (e *Env) withServices(ctx context.Context, command string, fn func(context.Context, *portssvc.ServiceContainer) error) subcommands.ExitStatus {
	logger := e.logger().With(slog.String("command", command))
	ctx = middleware.WithLogger(ctx, logger)

	svcs, release, err := e.OpenServices(ctx)
	if err != nil {
		logger.Error("Failed to open services", slog.String("error", err.Error()))
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer release()

	if err := fn(ctx, svcs); err != nil {
		logger.Error("Command failed", slog.String("error", err.Error()))
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (e *Env) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

func (e *Env) out() io.Writer {
	if e.Out != nil {
		return e.Out
	}
	return os.Stdout
}

// usageError reports a flag problem and asks subcommands to print usage.
func usageError(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	return subcommands.ExitUsageError
}
