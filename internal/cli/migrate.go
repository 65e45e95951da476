package cli

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/ledger_engine/pkg/database"
	"github.com/google/subcommands"
)

type migrateCmd struct {
	env  *Env
	down bool
}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "apply the embedded schema migrations" }
func (*migrateCmd) Usage() string {
	return `ledgerctl migrate [-down]

  Applies every pending migration of the ledger schema. With -down, every
  migration is rolled back and the ledger schema is dropped.
`
}

func (c *migrateCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.down, "down", false, "Roll every migration back instead of applying them.")
}

func (c *migrateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	direction := database.MigrateUp
	if c.down {
		direction = database.MigrateDown
	}

	changed, err := c.env.Migrate(direction)
	if err != nil {
		c.env.logger().Error("Migration failed", slog.String("error", err.Error()))
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if changed {
		fmt.Fprintf(c.env.out(), "migrations applied (%s)\n", direction)
	} else {
		fmt.Fprintln(c.env.out(), "no change")
	}
	return subcommands.ExitSuccess
}
