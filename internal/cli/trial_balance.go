package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/google/subcommands"
)

type trialBalanceCmd struct {
	env      *Env
	org      string
	currency string
	natural  bool
}

func (*trialBalanceCmd) Name() string     { return "trial-balance" }
func (*trialBalanceCmd) Synopsis() string { return "print the trial balance of an organization" }
func (*trialBalanceCmd) Usage() string {
	return `ledgerctl trial-balance -org <code> [-currency EUR] [-natural]

  Prints per-account debit, credit and balance totals. Balances are debit minus
  credit; with -natural they are shown on each account type's normal side.
`
}

func (c *trialBalanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.org, "org", "", "Organization code.")
	f.StringVar(&c.currency, "currency", "", "Only report accounts in this currency.")
	f.BoolVar(&c.natural, "natural", false, "Show balances on the normal side of each account type.")
}

func (c *trialBalanceCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.org == "" {
		return usageError("-org is required")
	}

	return c.env.withServices(ctx, c.Name(), func(ctx context.Context, svcs *portssvc.ServiceContainer) error {
		org, err := svcs.Organization.GetOrganizationByCode(ctx, c.org)
		if err != nil {
			return err
		}

		var currency *string
		if c.currency != "" {
			currency = &c.currency
		}
		rows, err := svcs.Reporting.GetTrialBalance(ctx, org.ID, currency)
		if err != nil {
			return err
		}
		return writeTrialBalance(c.env.out(), rows, c.natural)
	})
}

func writeTrialBalance(out io.Writer, rows []domain.TrialBalanceRow, natural bool) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "CODE\tNAME\tTYPE\tCUR\tDEBIT\tCREDIT\tBALANCE\t")

	for _, r := range rows {
		balance := r.Balance
		if natural {
			balance = accounting.NaturalBalance(r.AccountType, balance)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.AccountCode, r.AccountName, r.AccountType, r.Currency,
			accounting.FormatAmount(r.TotalDebit, r.Currency),
			accounting.FormatAmount(r.TotalCredit, r.Currency),
			accounting.FormatAmount(balance, r.Currency),
		)
	}

	debit, credit := domain.TrialBalanceTotals(rows)
	// Unfiltered totals may mix currencies.
	fmt.Fprintf(w, "\tTOTAL\t\t\t%s\t%s\t%s\t\n", debit.StringFixed(2), credit.StringFixed(2), debit.Sub(credit).StringFixed(2))
	return w.Flush()
}
