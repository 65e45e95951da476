package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// OrganizationReaderSvc defines read operations for the organization directory
type OrganizationReaderSvc interface {
	// ListOrganizations returns all organizations ordered by hierarchy path.
	ListOrganizations(ctx context.Context) ([]domain.Organization, error)

	// ListOrganizationTree returns the same organizations nested under their parents.
	ListOrganizationTree(ctx context.Context) ([]domain.OrganizationNode, error)

	// GetOrganizationByCode looks an organization up by code (case-insensitive).
	GetOrganizationByCode(ctx context.Context, code string) (*domain.Organization, error)

	// GetOrganizationByID looks an organization up by id.
	GetOrganizationByID(ctx context.Context, organizationID int64) (*domain.Organization, error)

	// GetCurrency returns the default currency of an organization.
	GetCurrency(ctx context.Context, organizationID int64) (string, error)
}

// OrganizationWriterSvc defines write operations for the organization directory
type OrganizationWriterSvc interface {
	// UpsertOrganization creates or updates an organization keyed on its code.
	UpsertOrganization(ctx context.Context, req dto.UpsertOrganizationRequest) (*domain.Organization, error)
}

// OrganizationSvcFacade combines all organization-related service interfaces
type OrganizationSvcFacade interface {
	OrganizationReaderSvc
	OrganizationWriterSvc
}
