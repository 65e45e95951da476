package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/georgysavva/scany/v2/pgxscan"
)

var organizationColumns = []string{
	"id", "code", "name", "parent_id", "path", "currency", "metadata", "created_at", "updated_at",
}

// PgxOrganizationRepository stores the organization directory.
type PgxOrganizationRepository struct {
	BaseRepository
}

func newPgxOrganizationRepository(base BaseRepository) portsrepo.OrganizationRepositoryFacade {
	return &PgxOrganizationRepository{BaseRepository: base}
}

var _ portsrepo.OrganizationRepositoryFacade = (*PgxOrganizationRepository)(nil)

// ListOrganizations returns every organization ordered by path.
func (r *PgxOrganizationRepository) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	sql, args, err := r.builder().
		Select(organizationColumns...).
		From(organizationsTable).
		OrderBy("path").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []models.Organization
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return mapping.ToDomainOrganizationSlice(rows), nil
}

// FindOrganizationByCode retrieves an organization by its normalized code.
func (r *PgxOrganizationRepository) FindOrganizationByCode(ctx context.Context, code string) (*domain.Organization, error) {
	return r.findOne(ctx, squirrel.Eq{"code": code}, code)
}

// FindOrganizationByID retrieves an organization by its identifier.
func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID int64) (*domain.Organization, error) {
	return r.findOne(ctx, squirrel.Eq{"id": organizationID}, organizationID)
}

func (r *PgxOrganizationRepository) findOne(ctx context.Context, where squirrel.Eq, key any) (*domain.Organization, error) {
	sql, args, err := r.builder().
		Select(organizationColumns...).
		From(organizationsTable).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row models.Organization
	if err := pgxscan.Get(ctx, r.querier(ctx), &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperrors.NewNotFoundError("organization", key)
		}
		return nil, fmt.Errorf("failed to find organization %v: %w", key, err)
	}
	org := mapping.ToDomainOrganization(row)
	return &org, nil
}

// UpsertOrganization inserts or updates the organization keyed on code, then sets its path
// below parentPath and moves the paths of its descendants along with it. Callers run it
// inside a transaction.
func (r *PgxOrganizationRepository) UpsertOrganization(ctx context.Context, org domain.Organization, parentPath string) (*domain.Organization, error) {
	q := r.querier(ctx)
	m := mapping.ToModelOrganization(org)

	var previousPath string
	existing, err := r.FindOrganizationByCode(ctx, m.Code)
	switch {
	case err == nil:
		previousPath = existing.Path
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, err
	}

	sql, args, err := r.builder().
		Insert(organizationsTable).
		Columns("code", "name", "parent_id", "path", "currency", "metadata").
		Values(m.Code, m.Name, m.ParentID, "", m.Currency, m.Metadata).
		Suffix(`ON CONFLICT (code) DO UPDATE SET
			name = EXCLUDED.name,
			parent_id = EXCLUDED.parent_id,
			currency = EXCLUDED.currency,
			metadata = EXCLUDED.metadata,
			updated_at = now()
		RETURNING id`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var id int64
	if err := q.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return nil, mapWriteError(err, "upsert organization "+m.Code)
	}

	path := domain.OrganizationPath(parentPath, id)
	sql, args, err = r.builder().
		Update(organizationsTable).
		Set("path", path).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(organizationColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var row models.Organization
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, mapWriteError(err, "set path of organization "+m.Code)
	}

	if previousPath != "" && previousPath != path {
		sql, args, err = r.builder().
			Update(organizationsTable).
			Set("path", squirrel.Expr("? || substr(path, length(?) + 1)", path, previousPath)).
			Set("updated_at", squirrel.Expr("now()")).
			Where(squirrel.Like{"path": previousPath + ".%"}).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("build query: %w", err)
		}
		if _, err := q.Exec(ctx, sql, args...); err != nil {
			return nil, mapWriteError(err, "move descendants of organization "+m.Code)
		}
	}

	saved := mapping.ToDomainOrganization(row)
	return &saved, nil
}
