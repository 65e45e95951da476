package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// ReportingRepository defines operations for retrieving financial report data
type ReportingRepository interface {
	// GetTrialBalance aggregates line nodes per account of the organization. Accounts
	// without postings are reported with zero totals. A non-nil currency restricts the
	// report to accounts held in that currency.
	GetTrialBalance(ctx context.Context, organizationID int64, currency *string) ([]domain.TrialBalanceRow, error)
}
