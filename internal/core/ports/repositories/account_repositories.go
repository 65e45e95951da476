package repositories

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves an account by id, scoped to the organization.
	FindAccountByID(ctx context.Context, organizationID, accountID int64) (*domain.LedgerAccount, error)

	// FindAccountByCode retrieves an account by code, scoped to the organization.
	FindAccountByCode(ctx context.Context, organizationID int64, code string) (*domain.LedgerAccount, error)

	// ListAccounts retrieves all accounts of an organization ordered by code.
	ListAccounts(ctx context.Context, organizationID int64) ([]domain.LedgerAccount, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// UpsertAccount inserts the account or, when (organization, code) already exists,
	// replaces its name, type, taxonomy code, currency and metadata. The stored row is returned.
	UpsertAccount(ctx context.Context, account domain.LedgerAccount) (*domain.LedgerAccount, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
