package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/georgysavva/scany/v2/pgxscan"
)

var taxonomyColumns = []string{
	"code", "title", "title_en", "level", "parent_code", "account_type", "function_label", "is_postable", "version_tag", "created_at", "updated_at",
}

// PgxTaxonomyRepository stores the reference taxonomy.
type PgxTaxonomyRepository struct {
	BaseRepository
}

func newPgxTaxonomyRepository(base BaseRepository) portsrepo.TaxonomyRepositoryFacade {
	return &PgxTaxonomyRepository{BaseRepository: base}
}

var _ portsrepo.TaxonomyRepositoryFacade = (*PgxTaxonomyRepository)(nil)

// FindTaxonomyByCode performs a case-insensitive exact lookup.
func (r *PgxTaxonomyRepository) FindTaxonomyByCode(ctx context.Context, code string) (*domain.TaxonomyNode, error) {
	sql, args, err := r.builder().
		Select(taxonomyColumns...).
		From(taxonomyTable).
		Where(squirrel.Expr("lower(code) = lower(?)", code)).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row models.TaxonomyNode
	if err := pgxscan.Get(ctx, r.querier(ctx), &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperrors.NewNotFoundError("taxonomy node", code)
		}
		return nil, fmt.Errorf("failed to find taxonomy node %s: %w", code, err)
	}
	node := mapping.ToDomainTaxonomyNode(row)
	return &node, nil
}

// SearchTaxonomy matches term against code and title; an empty term lists from the start.
func (r *PgxTaxonomyRepository) SearchTaxonomy(ctx context.Context, term string, limit int) ([]domain.TaxonomyNode, error) {
	sql, args, err := r.searchQuery(term, limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []models.TaxonomyNode
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("failed to search taxonomy: %w", err)
	}
	return mapping.ToDomainTaxonomyNodeSlice(rows), nil
}

// UpsertTaxonomyNode inserts or overwrites a node keyed on code. inserted is true when
// the row did not exist before.
func (r *PgxTaxonomyRepository) UpsertTaxonomyNode(ctx context.Context, node domain.TaxonomyNode) (bool, error) {
	m := mapping.ToModelTaxonomyNode(node)

	sql, args, err := r.builder().
		Insert(taxonomyTable).
		Columns("code", "title", "title_en", "level", "parent_code", "account_type", "function_label", "is_postable", "version_tag").
		Values(m.Code, m.Title, m.TitleEn, m.Level, m.ParentCode, m.AccountType, m.FunctionLabel, m.IsPostable, m.VersionTag).
		Suffix(`ON CONFLICT (code) DO UPDATE SET
			title = EXCLUDED.title,
			title_en = EXCLUDED.title_en,
			level = EXCLUDED.level,
			parent_code = EXCLUDED.parent_code,
			account_type = EXCLUDED.account_type,
			function_label = EXCLUDED.function_label,
			is_postable = EXCLUDED.is_postable,
			version_tag = EXCLUDED.version_tag,
			updated_at = now()
		RETURNING (xmax = 0) AS inserted`).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var inserted bool
	if err := r.querier(ctx).QueryRow(ctx, sql, args...).Scan(&inserted); err != nil {
		return false, mapWriteError(err, "upsert taxonomy node "+m.Code)
	}
	return inserted, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// searchQuery treats term as a literal substring: LIKE wildcards in it are escaped.
func (r *PgxTaxonomyRepository) searchQuery(term string, limit int) squirrel.SelectBuilder {
	q := r.builder().
		Select(taxonomyColumns...).
		From(taxonomyTable).
		OrderBy("code").
		Limit(uint64(limit))
	if term != "" {
		pattern := "%" + likeEscaper.Replace(term) + "%"
		q = q.Where(squirrel.Or{
			squirrel.Expr(`code ILIKE ? ESCAPE '\'`, pattern),
			squirrel.Expr(`title ILIKE ? ESCAPE '\'`, pattern),
		})
	}
	return q
}
