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
)

// organizationService implements the OrganizationSvcFacade interface
type organizationService struct {
	BaseService
	orgRepo         portsrepo.OrganizationRepositoryFacade
	txManager       portsrepo.TransactionManager
	defaultCurrency string
}

// OrganizationServiceOption is a functional option for configuring the organization service
type OrganizationServiceOption func(*organizationService)

// WithOrganizationDefaultCurrency sets the currency used when an upsert names none.
func WithOrganizationDefaultCurrency(code string) OrganizationServiceOption {
	return func(s *organizationService) {
		s.defaultCurrency = code
	}
}

// WithOrganizationTxManager runs upserts inside a transaction.
func WithOrganizationTxManager(tm portsrepo.TransactionManager) OrganizationServiceOption {
	return func(s *organizationService) {
		s.txManager = tm
	}
}

// NewOrganizationService creates a new organization service with the provided options
func NewOrganizationService(repo portsrepo.OrganizationRepositoryFacade, options ...OrganizationServiceOption) portssvc.OrganizationSvcFacade {
	svc := &organizationService{
		orgRepo:         repo,
		defaultCurrency: "EUR",
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.OrganizationSvcFacade = (*organizationService)(nil)

// ListOrganizations returns all organizations ordered by path.
func (s *organizationService) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	orgs, err := s.orgRepo.ListOrganizations(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list organizations")
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	for i := range orgs {
		orgs[i].Metadata = orgs[i].Metadata.OrEmpty()
	}
	return orgs, nil
}

// ListOrganizationTree returns the organizations nested under their parents.
func (s *organizationService) ListOrganizationTree(ctx context.Context) ([]domain.OrganizationNode, error) {
	orgs, err := s.ListOrganizations(ctx)
	if err != nil {
		return nil, err
	}
	return domain.BuildOrganizationTree(orgs), nil
}

// GetOrganizationByCode looks an organization up by code.
func (s *organizationService) GetOrganizationByCode(ctx context.Context, code string) (*domain.Organization, error) {
	normalized := domain.NormalizeOrganizationCode(code)
	if normalized == "" {
		return nil, apperrors.NewValidationError("organization code is required")
	}
	org, err := s.orgRepo.FindOrganizationByCode(ctx, normalized)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find organization", slog.String("organization_code", normalized))
		}
		return nil, err
	}
	org.Metadata = org.Metadata.OrEmpty()
	return org, nil
}

// GetOrganizationByID looks an organization up by id.
func (s *organizationService) GetOrganizationByID(ctx context.Context, organizationID int64) (*domain.Organization, error) {
	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find organization", slog.Int64("organization_id", organizationID))
		}
		return nil, err
	}
	org.Metadata = org.Metadata.OrEmpty()
	return org, nil
}

// GetCurrency returns the default currency of an organization.
func (s *organizationService) GetCurrency(ctx context.Context, organizationID int64) (string, error) {
	org, err := s.GetOrganizationByID(ctx, organizationID)
	if err != nil {
		return "", err
	}
	return org.Currency, nil
}

// UpsertOrganization creates or updates an organization keyed on its code. The parent,
// when named, must already exist.
func (s *organizationService) UpsertOrganization(ctx context.Context, req dto.UpsertOrganizationRequest) (*domain.Organization, error) {
	code := domain.NormalizeOrganizationCode(req.Code)
	if code == "" {
		return nil, apperrors.NewValidationError("organization code is required")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = code
	}
	currency, ok := domain.NormalizeCurrency(req.Currency, s.defaultCurrency)
	if !ok {
		return nil, apperrors.NewValidationError("unknown currency %q for organization %s", currency, code)
	}

	org := domain.Organization{
		Code:     code,
		Name:     name,
		Currency: currency,
		Metadata: req.Metadata.OrEmpty(),
	}

	var saved *domain.Organization
	write := func(ctx context.Context) error {
		parentPath := ""
		if req.ParentCode != nil && strings.TrimSpace(*req.ParentCode) != "" {
			parentCode := domain.NormalizeOrganizationCode(*req.ParentCode)
			if parentCode == code {
				return apperrors.NewValidationError("organization %s cannot be its own parent", code)
			}
			parent, err := s.orgRepo.FindOrganizationByCode(ctx, parentCode)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return apperrors.NewValidationError("unknown parent organization %s", parentCode)
				}
				return err
			}
			existing, err := s.orgRepo.FindOrganizationByCode(ctx, code)
			if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				return err
			}
			if existing != nil && isWithinPath(parent.Path, existing.Path) {
				return apperrors.NewValidationError("organization %s cannot be moved below its own descendant %s", code, parent.Code)
			}
			org.ParentID = &parent.ID
			parentPath = parent.Path
		}

		var err error
		saved, err = s.orgRepo.UpsertOrganization(ctx, org, parentPath)
		return err
	}

	var err error
	if s.txManager != nil {
		err = s.txManager.RunInTransaction(ctx, write)
	} else {
		err = write(ctx)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			s.LogWarn(ctx, err, "Organization upsert rejected", slog.String("organization_code", code))
		} else {
			s.LogError(ctx, err, "Failed to upsert organization", slog.String("organization_code", code))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Organization upserted",
		slog.String("organization_code", saved.Code),
		slog.Int64("organization_id", saved.ID),
		slog.String("path", saved.Path))
	return saved, nil
}

// isWithinPath reports whether path equals root or lies below it.
func isWithinPath(path, root string) bool {
	return path == root || strings.HasPrefix(path, root+".")
}
