package dto

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceParams defines query parameters for the trial balance.
type TrialBalanceParams struct {
	Currency *string `form:"currency" binding:"omitempty,iso_currency"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	Items  []domain.TrialBalanceRow `json:"items"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// ToTrialBalanceResponse attaches column totals to the report rows.
func ToTrialBalanceResponse(rows []domain.TrialBalanceRow) TrialBalanceResponse {
	resp := TrialBalanceResponse{Items: rows}
	resp.Totals.Debit, resp.Totals.Credit = domain.TrialBalanceTotals(rows)
	return resp
}

// ItemsResponse wraps a list payload.
type ItemsResponse[T any] struct {
	Items []T `json:"items"`
}

// NewItemsResponse never encodes a nil slice as null.
func NewItemsResponse[T any](items []T) ItemsResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ItemsResponse[T]{Items: items}
}
