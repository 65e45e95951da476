package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/google/subcommands"
)

type importTaxonomyCmd struct {
	env       *Env
	file      string
	delimiter string
	version   string
}

func (*importTaxonomyCmd) Name() string     { return "import-taxonomy" }
func (*importTaxonomyCmd) Synopsis() string { return "load a reference taxonomy file" }
func (*importTaxonomyCmd) Usage() string {
	return `ledgerctl import-taxonomy -file <path> [-delimiter ;] [-version <tag>]

  Reads a delimited file whose first row is a header and upserts every usable
  row into the reference taxonomy, in a single transaction.
`
}

func (c *importTaxonomyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", "", "Path to the taxonomy file.")
	f.StringVar(&c.delimiter, "delimiter", "", "Field delimiter; 'tab' for tab separated. Defaults to TAXONOMY_CSV_DELIMITER.")
	f.StringVar(&c.version, "version", "", "Version tag recorded on every imported node.")
}

func (c *importTaxonomyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		return usageError("-file is required")
	}

	opts := domain.TaxonomyImportOptions{}
	if c.env.Config != nil {
		opts.Delimiter = c.env.Config.TaxonomyCSVDelimiter
	}
	if c.delimiter != "" {
		d, err := config.ParseDelimiter(c.delimiter)
		if err != nil {
			return usageError("invalid -delimiter: %v", err)
		}
		opts.Delimiter = d
	}
	if c.version != "" {
		opts.VersionTag = &c.version
	}

	return c.env.withServices(ctx, c.Name(), func(ctx context.Context, svcs *portssvc.ServiceContainer) error {
		f, err := os.Open(c.file)
		if err != nil {
			return err
		}
		defer f.Close()

		result, err := svcs.Taxonomy.ImportTaxonomy(ctx, f, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.env.out(), "inserted %d, updated %d, skipped %d\n", result.Inserted, result.Updated, result.Skipped)
		return nil
	})
}
