package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/metrics"
	"github.com/SscSPs/ledger_engine/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

const entryDateLayout = "2006-01-02"

// journalService builds, balances and persists journal entries.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	txManager   portsrepo.TransactionManager
	orgSvc      portssvc.OrganizationReaderSvc
	accountSvc  portssvc.AccountReaderSvc
	metrics     *metrics.LedgerMetrics
	now         func() time.Time
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithJournalMetrics records created, rejected and posted entries.
func WithJournalMetrics(m *metrics.LedgerMetrics) JournalServiceOption {
	return func(s *journalService) {
		s.metrics = m
	}
}

// WithJournalClock replaces the clock used for default entry dates and posting stamps.
func WithJournalClock(now func() time.Time) JournalServiceOption {
	return func(s *journalService) {
		s.now = now
	}
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, txManager portsrepo.TransactionManager, orgSvc portssvc.OrganizationReaderSvc, accountSvc portssvc.AccountReaderSvc, options ...JournalServiceOption) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo: journalRepo,
		txManager:   txManager,
		orgSvc:      orgSvc,
		accountSvc:  accountSvc,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateEntry validates the request, checks that debits and credits balance and writes the
// entry header, its group node and its line nodes in one transaction.
func (s *journalService) CreateEntry(ctx context.Context, organizationID int64, req dto.CreateEntryRequest, actorID *string) (*domain.JournalEntry, error) {
	entry, lines, err := s.buildEntry(ctx, organizationID, req)
	if err != nil {
		s.metrics.EntryRejected(err)
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, err, "Journal entry rejected", slog.Int64("organization_id", organizationID))
		} else {
			s.LogError(ctx, err, "Failed to prepare journal entry", slog.Int64("organization_id", organizationID))
		}
		return nil, err
	}
	entry.CreatedBy = actorID

	var entryID int64
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		id, err := s.journalRepo.SaveEntry(ctx, entry, lines)
		if err != nil {
			return err
		}
		entryID = id
		return nil
	})
	if err != nil {
		s.metrics.EntryRejected(err)
		s.LogError(ctx, err, "Failed to save journal entry", slog.Int64("organization_id", organizationID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}
	s.metrics.EntryCreated(entry.Status)

	s.LogInfo(ctx, "Journal entry created",
		slog.Int64("organization_id", organizationID),
		slog.Int64("entry_id", entryID),
		slog.String("status", string(entry.Status)),
		slog.Int("line_count", len(req.Lines)))

	return s.GetEntry(ctx, entryID)
}

// buildEntry turns a request into an entry header and its ordered line tree.
func (s *journalService) buildEntry(ctx context.Context, organizationID int64, req dto.CreateEntryRequest) (domain.JournalEntry, []domain.EntryLine, error) {
	if len(req.Lines) < 2 {
		return domain.JournalEntry{}, nil, apperrors.NewValidationError("an entry needs at least two lines")
	}
	if len(req.Lines) > domain.MaxEntryLines {
		return domain.JournalEntry{}, nil, apperrors.NewValidationError("an entry can have at most %d lines, got %d", domain.MaxEntryLines, len(req.Lines))
	}

	org, err := s.orgSvc.GetOrganizationByID(ctx, organizationID)
	if err != nil {
		return domain.JournalEntry{}, nil, err
	}

	now := s.now().UTC()
	entryDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if raw := strings.TrimSpace(req.EntryDate); raw != "" {
		entryDate, err = time.Parse(entryDateLayout, raw)
		if err != nil {
			return domain.JournalEntry{}, nil, apperrors.NewValidationError("invalid entry date %q, expected YYYY-MM-DD", raw)
		}
	}

	status, ok := domain.ParseEntryStatus(req.Status)
	if !ok {
		return domain.JournalEntry{}, nil, apperrors.NewValidationError("invalid status %q, expected draft, posted or void", req.Status)
	}

	requestedCurrency := ""
	if req.Currency != nil {
		requestedCurrency = *req.Currency
	}
	currency, ok := domain.NormalizeCurrency(requestedCurrency, org.Currency)
	if !ok {
		return domain.JournalEntry{}, nil, apperrors.NewValidationError("unknown currency %q", currency)
	}

	exchangeRate := decimal.NewFromInt(1)
	if req.ExchangeRate != nil && req.ExchangeRate.IsSet() {
		exchangeRate, err = req.ExchangeRate.Decimal()
		if err != nil {
			return domain.JournalEntry{}, nil, apperrors.NewValidationError("exchange rate must be numeric")
		}
		exchangeRate, ok = domain.FitNumeric(exchangeRate, domain.ExchangeRatePrecision, domain.ExchangeRateScale)
		if !ok {
			return domain.JournalEntry{}, nil, apperrors.NewValidationError("exchange rate must be less than 1e%d", domain.ExchangeRatePrecision-domain.ExchangeRateScale)
		}
		if !exchangeRate.IsPositive() {
			return domain.JournalEntry{}, nil, apperrors.NewValidationError("exchange rate must be greater than zero")
		}
	}

	if req.InterCompanyOrgID != nil {
		if _, err := s.orgSvc.GetOrganizationByID(ctx, *req.InterCompanyOrgID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return domain.JournalEntry{}, nil, apperrors.NewValidationError("unknown intercompany organization %d", *req.InterCompanyOrgID)
			}
			return domain.JournalEntry{}, nil, err
		}
	}

	entry := domain.JournalEntry{
		OrganizationID:    organizationID,
		EntryDate:         entryDate,
		Status:            status,
		Reference:         trimmedOrNil(req.Reference),
		Description:       trimmedOrNil(req.Description),
		Currency:          currency,
		ExchangeRate:      exchangeRate,
		InterCompanyOrgID: req.InterCompanyOrgID,
		Metadata:          req.Metadata.OrEmpty(),
	}
	if status == domain.StatusPosted {
		entry.PostedAt = &now
	}

	groupDescription := domain.DefaultGroupDescription
	if entry.Description != nil {
		groupDescription = *entry.Description
	}
	lines := make([]domain.EntryLine, 0, len(req.Lines)+1)
	lines = append(lines, domain.EntryLine{
		OrganizationID:  organizationID,
		NodeKind:        domain.NodeGroup,
		Path:            domain.GroupPath(),
		Description:     &groupDescription,
		Metadata:        domain.Metadata{},
		RequireBalanced: true,
	})

	delta := decimal.Zero
	for i, lineReq := range req.Lines {
		line, err := s.buildLine(ctx, organizationID, i+1, lineReq)
		if err != nil {
			return domain.JournalEntry{}, nil, err
		}
		delta = delta.Add(domain.SignedAmount(*line.Direction, *line.Amount))
		lines = append(lines, line)
	}

	if !domain.IsBalanced(delta) {
		return domain.JournalEntry{}, nil, apperrors.NewValidationError("journal entry lines are not balanced (difference %s)", delta.String())
	}

	return entry, lines, nil
}

// buildLine validates one posting line; index is 1-based.
func (s *journalService) buildLine(ctx context.Context, organizationID int64, index int, req dto.CreateEntryLineRequest) (domain.EntryLine, error) {
	direction, ok := domain.ParseDirection(req.Direction)
	if !ok {
		return domain.EntryLine{}, apperrors.NewValidationError("line %d: direction must be debit or credit", index)
	}

	if !req.Amount.IsSet() {
		return domain.EntryLine{}, apperrors.NewValidationError("line %d: amount must be numeric", index)
	}
	amount, err := req.Amount.Decimal()
	if err != nil {
		return domain.EntryLine{}, apperrors.NewValidationError("line %d: amount must be numeric", index)
	}
	amount, ok = domain.FitNumeric(amount, domain.AmountPrecision, domain.AmountScale)
	if !ok {
		return domain.EntryLine{}, apperrors.NewValidationError("line %d: amount must be less than 1e%d", index, domain.AmountPrecision-domain.AmountScale)
	}
	if !amount.IsPositive() {
		return domain.EntryLine{}, apperrors.NewValidationError("line %d: amount must be greater than zero", index)
	}

	var quantity *decimal.Decimal
	if req.Quantity != nil && req.Quantity.IsSet() {
		q, err := req.Quantity.Decimal()
		if err != nil {
			return domain.EntryLine{}, apperrors.NewValidationError("line %d: quantity must be numeric", index)
		}
		q, ok = domain.FitNumeric(q, domain.AmountPrecision, domain.AmountScale)
		if !ok {
			return domain.EntryLine{}, apperrors.NewValidationError("line %d: quantity must be less than 1e%d", index, domain.AmountPrecision-domain.AmountScale)
		}
		quantity = &q
	}

	account, err := s.accountSvc.ResolveAccount(ctx, organizationID, req.AccountRef)
	if err != nil {
		return domain.EntryLine{}, fmt.Errorf("line %d: %w", index, err)
	}
	if !account.Type.IsPostable() {
		return domain.EntryLine{}, apperrors.NewValidationError("line %d: account %s is a memo account and cannot be posted to", index, account.Code)
	}

	taxonomyCode := trimmedOrNil(req.TaxonomyCode)
	if taxonomyCode == nil {
		taxonomyCode = trimmedOrNil(account.TaxonomyCode)
	}
	if taxonomyCode != nil {
		upper := strings.ToUpper(*taxonomyCode)
		taxonomyCode = &upper
	}

	return domain.EntryLine{
		OrganizationID: organizationID,
		NodeKind:       domain.NodeLine,
		Path:           domain.LinePath(index),
		AccountID:      &account.ID,
		AccountCode:    &account.Code,
		AccountName:    &account.Name,
		Direction:      &direction,
		Amount:         &amount,
		Quantity:       quantity,
		TaxonomyCode:   taxonomyCode,
		Description:    trimmedOrNil(req.Description),
		Metadata:       req.Metadata.OrEmpty(),
	}, nil
}

// GetEntry retrieves an entry and its line tree ordered by path.
func (s *journalService) GetEntry(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.Int64("entry_id", entryID))
		}
		return nil, err
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load entry lines", slog.Int64("entry_id", entryID))
		return nil, fmt.Errorf("failed to load entry lines: %w", err)
	}
	for i := range lines {
		lines[i].Metadata = lines[i].Metadata.OrEmpty()
	}
	entry.Lines = lines
	entry.Metadata = entry.Metadata.OrEmpty()
	return entry, nil
}

// ListEntries retrieves the latest entries of an organization; limit is raised to at least 1.
func (s *journalService) ListEntries(ctx context.Context, organizationID int64, limit int) ([]domain.EntrySummary, error) {
	limit = pagination.ClampLimit(limit, 1, 0)
	entries, err := s.journalRepo.ListEntries(ctx, organizationID, limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries", slog.Int64("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	if entries == nil {
		entries = []domain.EntrySummary{}
	}
	for i := range entries {
		entries[i].Metadata = entries[i].Metadata.OrEmpty()
		entries[i].Balance = entries[i].TotalDebit.Sub(entries[i].TotalCredit)
	}
	return entries, nil
}

// PostEntry transitions an entry to posted. Posting an already posted entry stamps posted_at again.
func (s *journalService) PostEntry(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	if _, err := s.journalRepo.MarkEntryPosted(ctx, entryID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to post journal entry", slog.Int64("entry_id", entryID))
		}
		return nil, err
	}
	s.metrics.EntryPosted()
	s.LogInfo(ctx, "Journal entry posted", slog.Int64("entry_id", entryID))
	return s.GetEntry(ctx, entryID)
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
