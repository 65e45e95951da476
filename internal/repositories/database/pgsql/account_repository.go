package pgsql

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/georgysavva/scany/v2/pgxscan"
)

var accountColumns = []string{
	"id", "organization_id", "code", "name", "account_type", "taxonomy_code", "currency", "metadata", "created_at", "updated_at",
}

// PgxAccountRepository stores the per-organization chart of accounts.
type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(base BaseRepository) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: base}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// FindAccountByID retrieves an account by id within the organization.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, organizationID, accountID int64) (*domain.LedgerAccount, error) {
	return r.findOne(ctx, squirrel.Eq{"organization_id": organizationID, "id": accountID}, accountID)
}

// FindAccountByCode retrieves an account by code within the organization.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, organizationID int64, code string) (*domain.LedgerAccount, error) {
	return r.findOne(ctx, squirrel.Eq{"organization_id": organizationID, "code": code}, code)
}

func (r *PgxAccountRepository) findOne(ctx context.Context, where squirrel.Eq, key any) (*domain.LedgerAccount, error) {
	sql, args, err := r.builder().
		Select(accountColumns...).
		From(accountsTable).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row models.Account
	if err := pgxscan.Get(ctx, r.querier(ctx), &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperrors.NewNotFoundError("account", key)
		}
		return nil, fmt.Errorf("failed to find account %v: %w", key, err)
	}
	account := mapping.ToDomainAccount(row)
	return &account, nil
}

// ListAccounts retrieves all accounts of an organization ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, organizationID int64) ([]domain.LedgerAccount, error) {
	sql, args, err := r.builder().
		Select(accountColumns...).
		From(accountsTable).
		Where(squirrel.Eq{"organization_id": organizationID}).
		OrderBy("code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []models.Account
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("failed to list accounts for organization %d: %w", organizationID, err)
	}
	return mapping.ToDomainAccountSlice(rows), nil
}

// UpsertAccount inserts the account or replaces the mutable columns of the existing
// (organization, code) row, returning the stored row.
func (r *PgxAccountRepository) UpsertAccount(ctx context.Context, account domain.LedgerAccount) (*domain.LedgerAccount, error) {
	m := mapping.ToModelAccount(account)

	sql, args, err := r.builder().
		Insert(accountsTable).
		Columns("organization_id", "code", "name", "account_type", "taxonomy_code", "currency", "metadata").
		Values(m.OrganizationID, m.Code, m.Name, m.AccountType, m.TaxonomyCode, m.Currency, m.Metadata).
		Suffix(`ON CONFLICT (organization_id, code) DO UPDATE SET
			name = EXCLUDED.name,
			account_type = EXCLUDED.account_type,
			taxonomy_code = EXCLUDED.taxonomy_code,
			currency = EXCLUDED.currency,
			metadata = EXCLUDED.metadata,
			updated_at = now()
		RETURNING ` + joinColumns(accountColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row models.Account
	if err := pgxscan.Get(ctx, r.querier(ctx), &row, sql, args...); err != nil {
		return nil, mapWriteError(err, "upsert account "+m.Code)
	}
	saved := mapping.ToDomainAccount(row)
	return &saved, nil
}
