package dto

import "github.com/SscSPs/ledger_engine/internal/core/domain"

// CreateEntryLineRequest is one posting line of a new journal entry.
type CreateEntryLineRequest struct {
	AccountRef
	Direction    string          `json:"direction"`
	Amount       Number          `json:"amount"`
	Quantity     *Number         `json:"quantity"`
	TaxonomyCode *string         `json:"taxonomy_code"`
	Description  *string         `json:"description"`
	Metadata     domain.Metadata `json:"metadata"`
}

// CreateEntryRequest defines the data needed to create a journal entry.
type CreateEntryRequest struct {
	EntryDate         string                   `json:"entry_date"` // YYYY-MM-DD, today when empty
	Status            string                   `json:"status"`
	Reference         *string                  `json:"reference"`
	Description       *string                  `json:"description"`
	Currency          *string                  `json:"currency" binding:"omitempty,iso_currency"`
	ExchangeRate      *Number                  `json:"exchange_rate"`
	InterCompanyOrgID *int64                   `json:"intercompany_org_id"`
	Metadata          domain.Metadata          `json:"metadata"`
	Lines             []CreateEntryLineRequest `json:"lines"`
}

// ListEntriesParams defines query parameters for listing entries.
type ListEntriesParams struct {
	Limit int `form:"limit"`
}

// EntryResponse wraps a single entry with its lines.
type EntryResponse struct {
	Entry domain.JournalEntry `json:"entry"`
}
