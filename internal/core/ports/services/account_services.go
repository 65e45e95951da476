package services

import (
	"context"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	// ListAccounts returns all accounts of an organization ordered by code.
	ListAccounts(ctx context.Context, organizationID int64) ([]domain.LedgerAccount, error)

	// ResolveAccount finds a posting account by id, or by code when no id is given, within the organization.
	ResolveAccount(ctx context.Context, organizationID int64, ref dto.AccountRef) (*domain.LedgerAccount, error)
}

// AccountWriterSvc defines write operations for the chart of accounts
type AccountWriterSvc interface {
	// CreateAccount validates and upserts an account keyed on (organization, code).
	CreateAccount(ctx context.Context, organizationID int64, req dto.CreateAccountRequest) (*domain.LedgerAccount, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
