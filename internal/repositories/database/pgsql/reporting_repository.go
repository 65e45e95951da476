package pgsql

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/georgysavva/scany/v2/pgxscan"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(base BaseRepository) portsrepo.ReportingRepository {
	return &reportingRepository{BaseRepository: base}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// GetTrialBalance sums the line nodes of every account of the organization, regardless
// of entry status. Accounts without lines are reported with zero totals.
func (r *reportingRepository) GetTrialBalance(ctx context.Context, organizationID int64, currency *string) ([]domain.TrialBalanceRow, error) {
	sql, args, err := r.trialBalanceQuery(organizationID, currency).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []models.TrialBalanceRow
	if err := pgxscan.Select(ctx, r.querier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}

	result := make([]domain.TrialBalanceRow, len(rows))
	for i, row := range rows {
		result[i] = mapping.ToDomainTrialBalanceRow(row)
	}
	return result, nil
}

// trialBalanceQuery left-joins line nodes onto every account of the organization, so
// accounts without postings keep a row and group nodes never count.
func (r *reportingRepository) trialBalanceQuery(organizationID int64, currency *string) squirrel.SelectBuilder {
	q := r.builder().
		Select(
			"a.id AS account_id",
			"a.code AS account_code",
			"a.name AS account_name",
			"a.account_type",
			"a.currency",
			"COALESCE(SUM(l.amount) FILTER (WHERE l.direction = 'debit'), 0) AS total_debit",
			"COALESCE(SUM(l.amount) FILTER (WHERE l.direction = 'credit'), 0) AS total_credit",
		).
		From(accountsTable + " a").
		LeftJoin(entryLinesTable + " l ON l.account_id = a.id AND l.node_kind = 'line'").
		Where(squirrel.Eq{"a.organization_id": organizationID}).
		GroupBy("a.id").
		OrderBy("a.code")
	if currency != nil {
		q = q.Where(squirrel.Eq{"a.currency": *currency})
	}
	return q
}
