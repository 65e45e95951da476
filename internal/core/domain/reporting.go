package domain

import (
	"github.com/shopspring/decimal"
)

// TrialBalanceRow represents a single account row in a trial balance report.
type TrialBalanceRow struct {
	AccountID   int64           `json:"account_id"`
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	AccountType AccountType     `json:"account_type"`
	Currency    string          `json:"currency"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// TrialBalanceTotals sums the debit and credit columns of a report.
func TrialBalanceTotals(rows []TrialBalanceRow) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, r := range rows {
		debit = debit.Add(r.TotalDebit)
		credit = credit.Add(r.TotalCredit)
	}
	return debit, credit
}

// Snapshot bundles an organization with its accounts, trial balance and latest entries.
type Snapshot struct {
	Organization Organization      `json:"organization"`
	Accounts     []LedgerAccount   `json:"accounts"`
	TrialBalance []TrialBalanceRow `json:"trialBalance"`
	Entries      []EntrySummary    `json:"entries"`
}
