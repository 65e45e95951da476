package cli

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/pkg/database"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// The mocks embed their facade so that only the methods a command uses need stubbing.

type mockOrganizations struct {
	portssvc.OrganizationSvcFacade
	mock.Mock
}

func (m *mockOrganizations) GetOrganizationByCode(ctx context.Context, code string) (*domain.Organization, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *mockOrganizations) UpsertOrganization(ctx context.Context, req dto.UpsertOrganizationRequest) (*domain.Organization, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

type mockTaxonomy struct {
	portssvc.TaxonomySvcFacade
	mock.Mock
}

func (m *mockTaxonomy) ImportTaxonomy(ctx context.Context, source io.Reader, opts domain.TaxonomyImportOptions) (*domain.TaxonomyImportResult, error) {
	body, err := io.ReadAll(source)
	if err != nil {
		return nil, err
	}
	args := m.Called(ctx, string(body), opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxonomyImportResult), args.Error(1)
}

type mockJournal struct {
	portssvc.JournalSvcFacade
	mock.Mock
}

func (m *mockJournal) CreateEntry(ctx context.Context, organizationID int64, req dto.CreateEntryRequest, actorID *string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, organizationID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *mockJournal) PostEntry(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

type mockReporting struct {
	portssvc.ReportingService
	mock.Mock
}

func (m *mockReporting) GetTrialBalance(ctx context.Context, organizationID int64, currency *string) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, organizationID, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

type fixture struct {
	env       *Env
	out       *bytes.Buffer
	orgs      *mockOrganizations
	taxonomy  *mockTaxonomy
	journal   *mockJournal
	reporting *mockReporting
	released  bool
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fx := &fixture{
		out:       &bytes.Buffer{},
		orgs:      &mockOrganizations{},
		taxonomy:  &mockTaxonomy{},
		journal:   &mockJournal{},
		reporting: &mockReporting{},
	}
	fx.env = &Env{
		Config: &config.Config{TaxonomyCSVDelimiter: ';'},
		Logger: slogDiscard(),
		Out:    fx.out,
		OpenServices: func(context.Context) (*portssvc.ServiceContainer, func(), error) {
			return &portssvc.ServiceContainer{
				Organization: fx.orgs,
				Taxonomy:     fx.taxonomy,
				Journal:      fx.journal,
				Reporting:    fx.reporting,
			}, func() { fx.released = true }, nil
		},
	}
	t.Cleanup(func() {
		fx.orgs.AssertExpectations(t)
		fx.taxonomy.AssertExpectations(t)
		fx.journal.AssertExpectations(t)
		fx.reporting.AssertExpectations(t)
	})
	return fx
}

// run executes one command line against a fresh commander.
func (fx *fixture) run(args ...string) subcommands.ExitStatus {
	fs := flag.NewFlagSet("ledgerctl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	commander := subcommands.NewCommander(fs, "ledgerctl")
	commander.Output = io.Discard
	commander.Error = io.Discard
	Register(commander, fx.env)
	if err := fs.Parse(args); err != nil {
		return subcommands.ExitUsageError
	}
	return commander.Execute(context.Background())
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func acme() *domain.Organization {
	return &domain.Organization{ID: 1, Code: "ACME", Path: "000001", Currency: "EUR"}
}

func TestMigrate(t *testing.T) {
	fx := newFixture(t)
	var got []database.MigrationDirection
	fx.env.Migrate = func(direction database.MigrationDirection) (bool, error) {
		got = append(got, direction)
		return len(got) == 1, nil
	}

	assert.Equal(t, subcommands.ExitSuccess, fx.run("migrate"))
	assert.Equal(t, subcommands.ExitSuccess, fx.run("migrate", "-down"))
	assert.Equal(t, []database.MigrationDirection{database.MigrateUp, database.MigrateDown}, got)
	assert.Equal(t, "migrations applied (up)\nno change\n", fx.out.String())

	fx.env.Migrate = func(database.MigrationDirection) (bool, error) { return false, errors.New("dirty database version 1") }
	assert.Equal(t, subcommands.ExitFailure, fx.run("migrate"))
}

func TestImportTaxonomy(t *testing.T) {
	fx := newFixture(t)
	path := writeFile(t, "rgs.csv", "code|description\nBIva|Activa\n")

	fx.taxonomy.On("ImportTaxonomy", mock.Anything, "code|description\nBIva|Activa\n", mock.MatchedBy(func(opts domain.TaxonomyImportOptions) bool {
		return opts.Delimiter == '|' && opts.VersionTag != nil && *opts.VersionTag == "3.6"
	})).Return(&domain.TaxonomyImportResult{Inserted: 1}, nil).Once()

	status := fx.run("import-taxonomy", "-file", path, "-delimiter", "|", "-version", "3.6")

	assert.Equal(t, subcommands.ExitSuccess, status)
	assert.Equal(t, "inserted 1, updated 0, skipped 0\n", fx.out.String())
	assert.True(t, fx.released)
}

func TestImportTaxonomy_UsesConfiguredDelimiter(t *testing.T) {
	fx := newFixture(t)
	path := writeFile(t, "rgs.csv", "code;description\n")

	fx.taxonomy.On("ImportTaxonomy", mock.Anything, mock.Anything, domain.TaxonomyImportOptions{Delimiter: ';'}).
		Return(nil, apperrors.ErrImport).Once()

	assert.Equal(t, subcommands.ExitFailure, fx.run("import-taxonomy", "-file", path))
}

func TestImportTaxonomy_FlagErrors(t *testing.T) {
	fx := newFixture(t)
	assert.Equal(t, subcommands.ExitUsageError, fx.run("import-taxonomy"))
	assert.Equal(t, subcommands.ExitUsageError, fx.run("import-taxonomy", "-file", "x.csv", "-delimiter", "ab"))
}

func TestSeedOrganizations(t *testing.T) {
	fx := newFixture(t)
	path := writeFile(t, "orgs.yaml", `organizations:
  - code: HOLD
    name: Holding BV
    currency: EUR
  - code: NL
    name: Nederland BV
    parent_code: HOLD
    metadata:
      kvk: "12345678"
`)

	hold := &domain.Organization{ID: 1, Code: "HOLD", Path: "000001", Currency: "EUR"}
	nl := &domain.Organization{ID: 2, Code: "NL", Path: "000001.000002", Currency: "EUR"}
	first := fx.orgs.On("UpsertOrganization", mock.Anything, mock.MatchedBy(func(req dto.UpsertOrganizationRequest) bool {
		return req.Code == "HOLD" && req.ParentCode == nil
	})).Return(hold, nil).Once()
	fx.orgs.On("UpsertOrganization", mock.Anything, mock.MatchedBy(func(req dto.UpsertOrganizationRequest) bool {
		return req.Code == "NL" && req.ParentCode != nil && *req.ParentCode == "HOLD" && req.Metadata["kvk"] == "12345678"
	})).Return(nl, nil).Once().NotBefore(first)

	assert.Equal(t, subcommands.ExitSuccess, fx.run("seed-organizations", "-file", path))
	assert.Equal(t, "HOLD\t000001\tEUR\nNL\t000001.000002\tEUR\n", fx.out.String())
}

func TestSeedOrganizations_StopsAtFirstFailure(t *testing.T) {
	fx := newFixture(t)
	path := writeFile(t, "orgs.yaml", "organizations:\n  - code: NL\n    parent_code: NOPE\n  - code: BE\n")

	fx.orgs.On("UpsertOrganization", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewValidationError("unknown parent organization %q", "NOPE")).Once()

	assert.Equal(t, subcommands.ExitFailure, fx.run("seed-organizations", "-file", path))
	fx.orgs.AssertNumberOfCalls(t, "UpsertOrganization", 1)
}

func TestDecodeSeedFile(t *testing.T) {
	_, err := decodeSeedFile(strings.NewReader(""))
	assert.ErrorContains(t, err, "empty")

	_, err = decodeSeedFile(strings.NewReader("organizations: []\n"))
	assert.ErrorContains(t, err, "no organizations")

	_, err = decodeSeedFile(strings.NewReader("organisations:\n  - code: X\n"))
	assert.Error(t, err)
}

func TestTrialBalance(t *testing.T) {
	fx := newFixture(t)
	rows := []domain.TrialBalanceRow{
		{AccountCode: "1000", AccountName: "Kas", AccountType: domain.Asset, Currency: "EUR",
			TotalDebit: decimal.RequireFromString("100"), TotalCredit: decimal.Zero, Balance: decimal.RequireFromString("100")},
		{AccountCode: "8000", AccountName: "Omzet", AccountType: domain.Revenue, Currency: "EUR",
			TotalDebit: decimal.Zero, TotalCredit: decimal.RequireFromString("100"), Balance: decimal.RequireFromString("-100")},
	}
	fx.orgs.On("GetOrganizationByCode", mock.Anything, "ACME").Return(acme(), nil).Twice()
	fx.reporting.On("GetTrialBalance", mock.Anything, int64(1), (*string)(nil)).Return(rows, nil).Once()
	fx.reporting.On("GetTrialBalance", mock.Anything, int64(1), mock.MatchedBy(func(c *string) bool {
		return c != nil && *c == "EUR"
	})).Return(rows, nil).Once()

	require.Equal(t, subcommands.ExitSuccess, fx.run("trial-balance", "-org", "ACME"))
	plain := fx.out.String()
	assert.Contains(t, plain, "-100.00")
	assert.Contains(t, plain, "TOTAL")

	fx.out.Reset()
	require.Equal(t, subcommands.ExitSuccess, fx.run("trial-balance", "-org", "ACME", "-currency", "EUR", "-natural"))
	natural := fx.out.String()
	assert.NotContains(t, natural, "-100.00")
}

func TestTrialBalance_UnknownOrganization(t *testing.T) {
	fx := newFixture(t)
	fx.orgs.On("GetOrganizationByCode", mock.Anything, "NOPE").Return(nil, apperrors.NewNotFoundError("organization", "NOPE")).Once()

	assert.Equal(t, subcommands.ExitFailure, fx.run("trial-balance", "-org", "NOPE"))
	assert.Equal(t, subcommands.ExitUsageError, fx.run("trial-balance"))
}

func TestWriteTrialBalance_Columns(t *testing.T) {
	var buf bytes.Buffer
	rows := []domain.TrialBalanceRow{{
		AccountCode: "1000", AccountName: "Kas", AccountType: domain.Asset, Currency: "JPY",
		TotalDebit: decimal.RequireFromString("1500"), TotalCredit: decimal.Zero, Balance: decimal.RequireFromString("1500"),
	}}

	require.NoError(t, writeTrialBalance(&buf, rows, false))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "BALANCE")
	assert.Regexp(t, `1000\s+Kas\s+asset\s+JPY\s+1500\s+0\s+1500`, lines[1])
	assert.Contains(t, lines[2], "1500.00")
}

func TestCreateEntry(t *testing.T) {
	fx := newFixture(t)
	path := writeFile(t, "entry.json", `{
		"entry_date": "2024-03-15",
		"lines": [
			{"account_code": "1000", "direction": "debit", "amount": "100.00"},
			{"account_code": "8000", "direction": "credit", "amount": "100.00"}
		]
	}`)

	fx.orgs.On("GetOrganizationByCode", mock.Anything, "ACME").Return(acme(), nil).Once()
	fx.journal.On("CreateEntry", mock.Anything, int64(1), mock.MatchedBy(func(req dto.CreateEntryRequest) bool {
		return req.EntryDate == "2024-03-15" && len(req.Lines) == 2
	}), mock.MatchedBy(func(actor *string) bool {
		return actor != nil && *actor == "ops"
	})).Return(&domain.JournalEntry{
		ID: 9, EntryDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), Status: domain.StatusDraft, Currency: "EUR",
	}, nil).Once()

	assert.Equal(t, subcommands.ExitSuccess, fx.run("create-entry", "-org", "ACME", "-file", path, "-actor", "ops"))
	assert.Equal(t, "entry 9 2024-03-15 draft EUR\n", fx.out.String())
}

func TestCreateEntry_BadFile(t *testing.T) {
	fx := newFixture(t)
	path := writeFile(t, "entry.json", `{"lines": [`)

	assert.Equal(t, subcommands.ExitFailure, fx.run("create-entry", "-org", "ACME", "-file", path))
	assert.Equal(t, subcommands.ExitUsageError, fx.run("create-entry", "-org", "ACME"))
	assert.False(t, fx.released)
}

func TestPostEntry(t *testing.T) {
	fx := newFixture(t)
	debit, credit := domain.Debit, domain.Credit
	amount := decimal.RequireFromString("100")
	fx.journal.On("PostEntry", mock.Anything, int64(9)).Return(&domain.JournalEntry{
		ID: 9, EntryDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), Status: domain.StatusPosted, Currency: "EUR",
		Lines: []domain.EntryLine{
			{NodeKind: domain.NodeGroup, Path: domain.GroupPath(), RequireBalanced: true},
			{NodeKind: domain.NodeLine, Path: domain.LinePath(1), Direction: &debit, Amount: &amount},
			{NodeKind: domain.NodeLine, Path: domain.LinePath(2), Direction: &credit, Amount: &amount},
		},
	}, nil).Once()
	fx.journal.On("PostEntry", mock.Anything, int64(10)).Return(nil, apperrors.NewNotFoundError("entry", 10)).Once()

	assert.Equal(t, subcommands.ExitSuccess, fx.run("post-entry", "-id", "9"))
	assert.Equal(t, "entry 9 2024-03-15 posted EUR\ndebit 100.00 credit 100.00\n", fx.out.String())
	assert.Equal(t, subcommands.ExitFailure, fx.run("post-entry", "-id", "10"))
	assert.Equal(t, subcommands.ExitUsageError, fx.run("post-entry"))
}

func TestOpenServicesFailure(t *testing.T) {
	fx := newFixture(t)
	fx.env.OpenServices = func(context.Context) (*portssvc.ServiceContainer, func(), error) {
		return nil, nil, errors.New("failed to ping database")
	}

	assert.Equal(t, subcommands.ExitFailure, fx.run("post-entry", "-id", "9"))
}

func slogDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
