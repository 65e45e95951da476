package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/google/subcommands"
)

type createEntryCmd struct {
	env   *Env
	org   string
	file  string
	actor string
}

func (*createEntryCmd) Name() string     { return "create-entry" }
func (*createEntryCmd) Synopsis() string { return "create a journal entry from a JSON file" }
func (*createEntryCmd) Usage() string {
	return `ledgerctl create-entry -org <code> -file <entry.json> [-actor <id>]

  Reads an entry in the same JSON shape as the API request body ("-" reads
  stdin) and creates it. The entry is rejected unless debits equal credits.
`
}

func (c *createEntryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.org, "org", "", "Organization code.")
	f.StringVar(&c.file, "file", "", "Path to the entry JSON file, or - for stdin.")
	f.StringVar(&c.actor, "actor", "", "Actor id recorded as the entry's creator.")
}

func (c *createEntryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.org == "" || c.file == "" {
		return usageError("-org and -file are required")
	}

	var src io.Reader = os.Stdin
	if c.file != "-" {
		f, err := os.Open(c.file)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		defer f.Close()
		src = f
	}

	var req dto.CreateEntryRequest
	if err := json.NewDecoder(src).Decode(&req); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", c.file, err)
		return subcommands.ExitFailure
	}

	var actor *string
	if c.actor != "" {
		actor = &c.actor
	}

	return c.env.withServices(ctx, c.Name(), func(ctx context.Context, svcs *portssvc.ServiceContainer) error {
		org, err := svcs.Organization.GetOrganizationByCode(ctx, c.org)
		if err != nil {
			return err
		}
		entry, err := svcs.Journal.CreateEntry(ctx, org.ID, req, actor)
		if err != nil {
			return err
		}
		printEntry(c.env.out(), entry)
		return nil
	})
}

type postEntryCmd struct {
	env *Env
	id  int64
}

func (*postEntryCmd) Name() string     { return "post-entry" }
func (*postEntryCmd) Synopsis() string { return "mark a journal entry as posted" }
func (*postEntryCmd) Usage() string {
	return `ledgerctl post-entry -id <entry id>

  Sets the entry status to posted and stamps posted_at. Posting an entry that
  is already posted stamps posted_at again.
`
}

func (c *postEntryCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Entry id.")
}

func (c *postEntryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id <= 0 {
		return usageError("-id must be a positive entry id")
	}

	return c.env.withServices(ctx, c.Name(), func(ctx context.Context, svcs *portssvc.ServiceContainer) error {
		entry, err := svcs.Journal.PostEntry(ctx, c.id)
		if err != nil {
			return err
		}
		printEntry(c.env.out(), entry)
		return nil
	})
}

func printEntry(out io.Writer, entry *domain.JournalEntry) {
	fmt.Fprintf(out, "entry %d %s %s %s\n", entry.ID, entry.EntryDate.Format(time.DateOnly), entry.Status, entry.Currency)
	if len(entry.Lines) == 0 {
		return
	}
	debit, credit := domain.EntryTotals(entry.Lines)
	fmt.Fprintf(out, "debit %s credit %s\n", accounting.FormatAmount(debit, entry.Currency), accounting.FormatAmount(credit, entry.Currency))
}
