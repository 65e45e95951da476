package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/google/subcommands"
	"gopkg.in/yaml.v3"
)

// seedFile is the layout of an organization seed file.
type seedFile struct {
	Organizations []dto.UpsertOrganizationRequest `yaml:"organizations"`
}

type seedOrganizationsCmd struct {
	env  *Env
	file string
}

func (*seedOrganizationsCmd) Name() string     { return "seed-organizations" }
func (*seedOrganizationsCmd) Synopsis() string { return "create or update organizations from a YAML file" }
func (*seedOrganizationsCmd) Usage() string {
	return `ledgerctl seed-organizations -file <orgs.yaml>

  Upserts organizations by code in file order. A parent must appear before its
  children. Example:

    organizations:
      - code: HOLD
        name: Holding BV
        currency: EUR
      - code: NL
        name: Nederland BV
        parent_code: HOLD
`
}

func (c *seedOrganizationsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", "", "Path to the YAML seed file.")
}

func (c *seedOrganizationsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		return usageError("-file is required")
	}

	f, err := os.Open(c.file)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	seed, err := decodeSeedFile(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", c.file, err)
		return subcommands.ExitFailure
	}

	return c.env.withServices(ctx, c.Name(), func(ctx context.Context, svcs *portssvc.ServiceContainer) error {
		for i, req := range seed.Organizations {
			org, err := svcs.Organization.UpsertOrganization(ctx, req)
			if err != nil {
				return fmt.Errorf("organization %d (%s): %w", i+1, req.Code, err)
			}
			fmt.Fprintf(c.env.out(), "%s\t%s\t%s\n", org.Code, org.Path, org.Currency)
		}
		return nil
	})
}

func decodeSeedFile(r io.Reader) (*seedFile, error) {
	var seed seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("seed file is empty")
		}
		return nil, err
	}
	if len(seed.Organizations) == 0 {
		return nil, fmt.Errorf("seed file lists no organizations")
	}
	return &seed, nil
}
