package models

import "github.com/shopspring/decimal"

// TrialBalanceRow is one aggregated account row of the trial balance query.
type TrialBalanceRow struct {
	AccountID   int64           `db:"account_id"`
	AccountCode string          `db:"account_code"`
	AccountName string          `db:"account_name"`
	AccountType AccountType     `db:"account_type"`
	Currency    string          `db:"currency"`
	TotalDebit  decimal.Decimal `db:"total_debit"`
	TotalCredit decimal.Decimal `db:"total_credit"`
}
