package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// GetTrialBalance computes per-account debit, credit and balance totals from the raw lines.
	GetTrialBalance(ctx context.Context, organizationID int64, currency *string) ([]domain.TrialBalanceRow, error)

	// GetSnapshot bundles an organization with its accounts, trial balance and latest entries.
	GetSnapshot(ctx context.Context, organizationCode string, entryLimit int) (*domain.Snapshot, error)
}
