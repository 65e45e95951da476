package services

import (
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/metrics"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, m *metrics.LedgerMetrics) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Organizations first: accounts and entries resolve currencies through them
	container.Organization = NewOrganizationService(
		repos.OrganizationRepo,
		WithOrganizationDefaultCurrency(cfg.DefaultCurrency),
		WithOrganizationTxManager(repos.TxManager),
	)

	container.Taxonomy = NewTaxonomyService(
		repos.TaxonomyRepo,
		repos.TxManager,
		WithTaxonomySearchMaxLimit(cfg.TaxonomySearchMaxLimit),
		WithTaxonomyMetrics(m),
	)

	container.Account = NewAccountService(
		repos.AccountRepo,
		repos.TaxonomyRepo,
		container.Organization,
		WithAccountMetrics(m),
	)

	container.Journal = NewJournalService(
		repos.JournalRepo,
		repos.TxManager,
		container.Organization,
		container.Account,
		WithJournalMetrics(m),
	)

	container.Reporting = NewReportingService(
		repos.ReportingRepo,
		container.Organization,
		container.Account,
		container.Journal,
	)

	return container
}
