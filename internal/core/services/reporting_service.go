package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/utils/pagination"
)

// DefaultSnapshotEntryLimit is the number of entries included in a snapshot.
const DefaultSnapshotEntryLimit = 25

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	orgSvc        portssvc.OrganizationReaderSvc
	accountSvc    portssvc.AccountReaderSvc
	journalSvc    portssvc.JournalReaderSvc
}

// NewReportingService creates a new reporting service
func NewReportingService(repo portsrepo.ReportingRepository, orgSvc portssvc.OrganizationReaderSvc, accountSvc portssvc.AccountReaderSvc, journalSvc portssvc.JournalReaderSvc) portssvc.ReportingService {
	return &reportingService{
		reportingRepo: repo,
		orgSvc:        orgSvc,
		accountSvc:    accountSvc,
		journalSvc:    journalSvc,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// GetTrialBalance computes the trial balance of an organization from its raw lines.
func (s *reportingService) GetTrialBalance(ctx context.Context, organizationID int64, currency *string) ([]domain.TrialBalanceRow, error) {
	var filter *string
	if currency != nil && *currency != "" {
		code, ok := domain.NormalizeCurrency(*currency, "")
		if !ok {
			return nil, apperrors.NewValidationError("unknown currency %q", code)
		}
		filter = &code
	}

	rows, err := s.reportingRepo.GetTrialBalance(ctx, organizationID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data", slog.Int64("organization_id", organizationID))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}
	if rows == nil {
		rows = []domain.TrialBalanceRow{}
	}
	for i := range rows {
		rows[i].Balance = rows[i].TotalDebit.Sub(rows[i].TotalCredit)
	}

	s.LogDebug(ctx, "Trial balance generated",
		slog.Int64("organization_id", organizationID),
		slog.Int("row_count", len(rows)))
	return rows, nil
}

// GetSnapshot bundles an organization with its accounts, trial balance and latest entries.
func (s *reportingService) GetSnapshot(ctx context.Context, organizationCode string, entryLimit int) (*domain.Snapshot, error) {
	org, err := s.orgSvc.GetOrganizationByCode(ctx, organizationCode)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accountSvc.ListAccounts(ctx, org.ID)
	if err != nil {
		return nil, err
	}
	trialBalance, err := s.GetTrialBalance(ctx, org.ID, nil)
	if err != nil {
		return nil, err
	}
	entries, err := s.journalSvc.ListEntries(ctx, org.ID, pagination.LimitOrDefault(entryLimit, DefaultSnapshotEntryLimit))
	if err != nil {
		return nil, err
	}

	return &domain.Snapshot{
		Organization: *org,
		Accounts:     accounts,
		TrialBalance: trialBalance,
		Entries:      entries,
	}, nil
}
