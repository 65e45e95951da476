package models

// AccountType mirrors the check constraint on ledger.accounts.account_type.
type AccountType string

// Account is a row of ledger.accounts.
type Account struct {
	ID             int64       `db:"id"`
	OrganizationID int64       `db:"organization_id"`
	Code           string      `db:"code"`
	Name           string      `db:"name"`
	AccountType    AccountType `db:"account_type"`
	TaxonomyCode   *string     `db:"taxonomy_code"` // Nullable
	Currency       string      `db:"currency"`
	Metadata       Metadata    `db:"metadata"`
	Timestamps
}
