package dto

import "github.com/SscSPs/ledger_engine/internal/core/domain"

// CreateAccountRequest defines the data needed to create (or replace) a ledger account.
type CreateAccountRequest struct {
	Code         string          `json:"code" binding:"required"`
	Name         string          `json:"name" binding:"required"`
	AccountType  *string         `json:"account_type" binding:"omitempty,ledger_account_type"`
	TaxonomyCode *string         `json:"taxonomy_code"`
	Currency     *string         `json:"currency" binding:"omitempty,iso_currency"`
	Metadata     domain.Metadata `json:"metadata"`
}

// AccountRef identifies a posting account by id or by code. The id wins when both are given.
type AccountRef struct {
	AccountID   *int64  `json:"account_id"`
	AccountCode *string `json:"account_code"`
}

// AccountResponse wraps a single account.
type AccountResponse struct {
	Account domain.LedgerAccount `json:"account"`
}
