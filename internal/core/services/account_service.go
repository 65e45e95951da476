package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/metrics"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo  portsrepo.AccountRepositoryFacade
	taxonomyRepo portsrepo.TaxonomyReader
	orgSvc       portssvc.OrganizationReaderSvc
	metrics      *metrics.LedgerMetrics
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountMetrics records account writes.
func WithAccountMetrics(m *metrics.LedgerMetrics) AccountServiceOption {
	return func(s *accountService) {
		s.metrics = m
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, taxonomyRepo portsrepo.TaxonomyReader, orgSvc portssvc.OrganizationReaderSvc, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo:  repo,
		taxonomyRepo: taxonomyRepo,
		orgSvc:       orgSvc,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// ListAccounts returns all accounts of an organization ordered by code.
func (s *accountService) ListAccounts(ctx context.Context, organizationID int64) ([]domain.LedgerAccount, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.Int64("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		accounts = []domain.LedgerAccount{}
	}
	return accounts, nil
}

// CreateAccount validates the request and upserts the account keyed on (organization, code).
func (s *accountService) CreateAccount(ctx context.Context, organizationID int64, req dto.CreateAccountRequest) (*domain.LedgerAccount, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, apperrors.NewValidationError("account code is required")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("account name is required")
	}

	org, err := s.orgSvc.GetOrganizationByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	accountType := domain.AccountType("")
	if req.AccountType != nil && strings.TrimSpace(*req.AccountType) != "" {
		accountType = domain.ParseAccountType(*req.AccountType)
	}

	var taxonomyCode *string
	if req.TaxonomyCode != nil && strings.TrimSpace(*req.TaxonomyCode) != "" {
		node, err := s.taxonomyRepo.FindTaxonomyByCode(ctx, strings.TrimSpace(*req.TaxonomyCode))
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationError("unknown taxonomy code %s", strings.TrimSpace(*req.TaxonomyCode))
			}
			s.LogError(ctx, err, "Failed to look up taxonomy code", slog.String("taxonomy_code", *req.TaxonomyCode))
			return nil, fmt.Errorf("failed to look up taxonomy code: %w", err)
		}
		taxonomyCode = &node.Code
		if accountType == "" {
			accountType = node.AccountType
		}
	}
	if accountType == "" {
		accountType = domain.Memo
	}
	if !accountType.IsPostable() {
		return nil, apperrors.NewValidationError("account %s needs a postable type (asset, liability, equity, revenue or expense), got %s", code, accountType)
	}

	requested := ""
	if req.Currency != nil {
		requested = *req.Currency
	}
	currency, ok := domain.NormalizeCurrency(requested, org.Currency)
	if !ok {
		return nil, apperrors.NewValidationError("unknown currency %q", currency)
	}

	account := domain.LedgerAccount{
		OrganizationID: organizationID,
		Code:           code,
		Name:           name,
		Type:           accountType,
		TaxonomyCode:   taxonomyCode,
		Currency:       currency,
		Metadata:       req.Metadata.OrEmpty(),
	}

	saved, err := s.accountRepo.UpsertAccount(ctx, account)
	if err != nil {
		s.LogError(ctx, err, "Failed to upsert account",
			slog.Int64("organization_id", organizationID),
			slog.String("account_code", code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}
	s.metrics.AccountUpserted()

	s.LogInfo(ctx, "Account upserted",
		slog.Int64("organization_id", organizationID),
		slog.Int64("account_id", saved.ID),
		slog.String("account_code", saved.Code),
		slog.String("account_type", string(saved.Type)))
	return saved, nil
}

// ResolveAccount finds a posting account by id first, then by code, within the organization.
func (s *accountService) ResolveAccount(ctx context.Context, organizationID int64, ref dto.AccountRef) (*domain.LedgerAccount, error) {
	if ref.AccountID != nil {
		return s.accountRepo.FindAccountByID(ctx, organizationID, *ref.AccountID)
	}
	if ref.AccountCode != nil {
		if code := strings.TrimSpace(*ref.AccountCode); code != "" {
			return s.accountRepo.FindAccountByCode(ctx, organizationID, code)
		}
	}
	return nil, apperrors.NewValidationError("account_id or account_code is required")
}
