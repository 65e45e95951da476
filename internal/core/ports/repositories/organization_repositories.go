package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// OrganizationReader defines read operations for organization data
type OrganizationReader interface {
	// ListOrganizations returns every organization ordered by hierarchy path.
	ListOrganizations(ctx context.Context) ([]domain.Organization, error)

	// FindOrganizationByCode retrieves an organization by its (upper-cased) code.
	FindOrganizationByCode(ctx context.Context, code string) (*domain.Organization, error)

	// FindOrganizationByID retrieves an organization by its identifier.
	FindOrganizationByID(ctx context.Context, organizationID int64) (*domain.Organization, error)
}

// OrganizationWriter defines write operations for organization data
type OrganizationWriter interface {
	// UpsertOrganization inserts or updates an organization keyed on its code and
	// recomputes its materialized path (and those of its descendants) below parentPath.
	UpsertOrganization(ctx context.Context, org domain.Organization, parentPath string) (*domain.Organization, error)
}

// OrganizationRepositoryFacade combines all organization-related repository interfaces
type OrganizationRepositoryFacade interface {
	OrganizationReader
	OrganizationWriter
}
