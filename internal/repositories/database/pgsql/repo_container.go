package pgsql

import (
	"time"

	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every repository to one transaction manager over dbPool.
func NewRepositoryProvider(dbPool *pgxpool.Pool, statementTimeout time.Duration) portsrepo.RepositoryProvider {
	tm := NewTxManager(dbPool, statementTimeout)
	base := BaseRepository{tm: tm}

	return portsrepo.RepositoryProvider{
		OrganizationRepo: newPgxOrganizationRepository(base),
		AccountRepo:      newPgxAccountRepository(base),
		TaxonomyRepo:     newPgxTaxonomyRepository(base),
		JournalRepo:      newPgxJournalRepository(base),
		ReportingRepo:    newReportingRepository(base),
		TxManager:        tm,
	}
}
