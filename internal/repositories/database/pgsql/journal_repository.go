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

var entryColumns = []string{
	"id", "organization_id", "entry_date", "status", "reference", "description", "currency", "exchange_rate",
	"intercompany_org_id", "metadata", "posted_at", "created_by", "created_at", "updated_at",
}

var entryLineColumns = []string{
	"id", "entry_id", "organization_id", "node_kind", "path", "account_id", "direction", "amount", "quantity",
	"taxonomy_code", "description", "metadata", "require_balanced",
}

// PgxJournalRepository stores journal entries and their line trees.
type PgxJournalRepository struct {
	BaseRepository
}

func newPgxJournalRepository(base BaseRepository) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: base}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// SaveEntry inserts the entry header and then all line nodes in a single statement.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.EntryLine) (int64, error) {
	q := r.querier(ctx)
	m := mapping.ToModelEntry(entry)

	sql, args, err := r.builder().
		Insert(entriesTable).
		Columns("organization_id", "entry_date", "status", "reference", "description", "currency", "exchange_rate",
			"intercompany_org_id", "metadata", "posted_at", "created_by").
		Values(m.OrganizationID, m.EntryDate, m.Status, m.Reference, m.Description, m.Currency, m.ExchangeRate,
			m.InterCompanyOrgID, m.Metadata, m.PostedAt, m.CreatedBy).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var entryID int64
	if err := q.QueryRow(ctx, sql, args...).Scan(&entryID); err != nil {
		return 0, mapWriteError(err, "insert journal entry")
	}

	if len(lines) == 0 {
		return entryID, nil
	}

	insertLines := r.builder().
		Insert(entryLinesTable).
		Columns("entry_id", "organization_id", "node_kind", "path", "account_id", "direction", "amount", "quantity",
			"taxonomy_code", "description", "metadata", "require_balanced")
	for _, line := range lines {
		l := mapping.ToModelEntryLine(line)
		insertLines = insertLines.Values(entryID, m.OrganizationID, l.NodeKind, l.Path, l.AccountID, l.Direction, l.Amount, l.Quantity,
			l.TaxonomyCode, l.Description, l.Metadata, l.RequireBalanced)
	}
	sql, args, err = insertLines.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}
	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return 0, mapWriteError(err, fmt.Sprintf("insert lines of journal entry %d", entryID))
	}

	return entryID, nil
}

// FindEntryByID retrieves an entry header.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	sql, args, err := r.builder().
		Select(entryColumns...).
		From(entriesTable).
		Where(squirrel.Eq{"id": entryID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row models.Entry
	if err := pgxscan.Get(ctx, r.querier(ctx), &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperrors.NewNotFoundError("journal entry", entryID)
		}
		return nil, fmt.Errorf("failed to find journal entry %d: %w", entryID, err)
	}
	entry := mapping.ToDomainEntry(row)
	return &entry, nil
}

// FindLinesByEntryID retrieves the line tree of an entry ordered by path, with the
// code and name of each line's account.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID int64) ([]domain.EntryLine, error) {
	sql, args, err := r.builder().
		Select(prefixed("l", entryLineColumns)...).
		Columns("a.code AS account_code", "a.name AS account_name").
		From(entryLinesTable + " l").
		LeftJoin(accountsTable + " a ON a.id = l.account_id").
		Where(squirrel.Eq{"l.entry_id": entryID}).
		OrderBy("l.path").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []models.EntryLine
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("failed to load lines of journal entry %d: %w", entryID, err)
	}
	return mapping.ToDomainEntryLineSlice(rows), nil
}

// ListEntries retrieves the latest entries of an organization with totals over their line nodes.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, organizationID int64, limit int) ([]domain.EntrySummary, error) {
	sql, args, err := r.listEntriesQuery(organizationID, limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []models.EntrySummary
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("failed to list journal entries for organization %d: %w", organizationID, err)
	}

	summaries := make([]domain.EntrySummary, len(rows))
	for i, row := range rows {
		summaries[i] = mapping.ToDomainEntrySummary(row)
	}
	return summaries, nil
}

// listEntriesQuery selects the newest entries first (ties broken by id) with totals
// over line nodes only; entries without lines report zero totals.
func (r *PgxJournalRepository) listEntriesQuery(organizationID int64, limit int) squirrel.SelectBuilder {
	return r.builder().
		Select(prefixed("e", entryColumns)...).
		Columns(
			"COALESCE(SUM(l.amount) FILTER (WHERE l.direction = 'debit'), 0) AS total_debit",
			"COALESCE(SUM(l.amount) FILTER (WHERE l.direction = 'credit'), 0) AS total_credit",
		).
		From(entriesTable + " e").
		LeftJoin(entryLinesTable + " l ON l.entry_id = e.id AND l.node_kind = 'line'").
		Where(squirrel.Eq{"e.organization_id": organizationID}).
		GroupBy("e.id").
		OrderBy("e.entry_date DESC", "e.id DESC").
		Limit(uint64(limit))
}

// MarkEntryPosted sets the entry to posted and stamps posted_at with the database clock.
func (r *PgxJournalRepository) MarkEntryPosted(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	sql, args, err := r.builder().
		Update(entriesTable).
		Set("status", string(domain.StatusPosted)).
		Set("posted_at", squirrel.Expr("now()")).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": entryID}).
		Suffix("RETURNING " + joinColumns(entryColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row models.Entry
	if err := pgxscan.Get(ctx, r.querier(ctx), &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperrors.NewNotFoundError("journal entry", entryID)
		}
		return nil, mapWriteError(err, fmt.Sprintf("post journal entry %d", entryID))
	}
	entry := mapping.ToDomainEntry(row)
	return &entry, nil
}
