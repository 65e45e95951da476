package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

// Entry is a row of ledger.entries.
type Entry struct {
	ID                int64           `db:"id"`
	OrganizationID    int64           `db:"organization_id"`
	EntryDate         time.Time       `db:"entry_date"`
	Status            EntryStatus     `db:"status"`
	Reference         *string         `db:"reference"`
	Description       *string         `db:"description"`
	Currency          string          `db:"currency"`
	ExchangeRate      decimal.Decimal `db:"exchange_rate"`
	InterCompanyOrgID *int64          `db:"intercompany_org_id"`
	Metadata          Metadata        `db:"metadata"`
	PostedAt          *time.Time      `db:"posted_at"`
	CreatedBy         *string         `db:"created_by"`
	Timestamps
}

// EntrySummary is an entries row with its line totals.
type EntrySummary struct {
	Entry
	TotalDebit  decimal.Decimal `db:"total_debit"`
	TotalCredit decimal.Decimal `db:"total_credit"`
}

// EntryLine is a row of ledger.entry_lines, optionally joined with its account.
type EntryLine struct {
	ID              int64            `db:"id"`
	EntryID         int64            `db:"entry_id"`
	OrganizationID  int64            `db:"organization_id"`
	NodeKind        string           `db:"node_kind"`
	Path            string           `db:"path"`
	AccountID       *int64           `db:"account_id"`
	AccountCode     *string          `db:"account_code"`
	AccountName     *string          `db:"account_name"`
	Direction       *string          `db:"direction"`
	Amount          *decimal.Decimal `db:"amount"`
	Quantity        *decimal.Decimal `db:"quantity"`
	TaxonomyCode    *string          `db:"taxonomy_code"`
	Description     *string          `db:"description"`
	Metadata        Metadata         `db:"metadata"`
	RequireBalanced bool             `db:"require_balanced"`
}
