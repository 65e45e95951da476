package handlers_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/handlers"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock OrganizationService ---
type MockOrganizationService struct {
	mock.Mock
}

func (m *MockOrganizationService) ListOrganizations(ctx context.Context) ([]domain.Organization, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Organization), args.Error(1)
}
func (m *MockOrganizationService) ListOrganizationTree(ctx context.Context) ([]domain.OrganizationNode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrganizationNode), args.Error(1)
}
func (m *MockOrganizationService) GetOrganizationByCode(ctx context.Context, code string) (*domain.Organization, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}
func (m *MockOrganizationService) GetOrganizationByID(ctx context.Context, organizationID int64) (*domain.Organization, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}
func (m *MockOrganizationService) GetCurrency(ctx context.Context, organizationID int64) (string, error) {
	args := m.Called(ctx, organizationID)
	return args.String(0), args.Error(1)
}
func (m *MockOrganizationService) UpsertOrganization(ctx context.Context, req dto.UpsertOrganizationRequest) (*domain.Organization, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

var _ portssvc.OrganizationSvcFacade = (*MockOrganizationService)(nil)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) ListAccounts(ctx context.Context, organizationID int64) ([]domain.LedgerAccount, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerAccount), args.Error(1)
}
func (m *MockAccountService) ResolveAccount(ctx context.Context, organizationID int64, ref dto.AccountRef) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, organizationID, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}
func (m *MockAccountService) CreateAccount(ctx context.Context, organizationID int64, req dto.CreateAccountRequest) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, organizationID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) GetEntry(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) ListEntries(ctx context.Context, organizationID int64, limit int) ([]domain.EntrySummary, error) {
	args := m.Called(ctx, organizationID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntrySummary), args.Error(1)
}
func (m *MockJournalService) CreateEntry(ctx context.Context, organizationID int64, req dto.CreateEntryRequest, actorID *string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, organizationID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) PostEntry(ctx context.Context, entryID int64) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) GetTrialBalance(ctx context.Context, organizationID int64, currency *string) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, organizationID, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}
func (m *MockReportingService) GetSnapshot(ctx context.Context, organizationCode string, entryLimit int) (*domain.Snapshot, error) {
	args := m.Called(ctx, organizationCode, entryLimit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Mock TaxonomyService ---
type MockTaxonomyService struct {
	mock.Mock
}

func (m *MockTaxonomyService) GetTaxonomyByCode(ctx context.Context, code string) (*domain.TaxonomyNode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxonomyNode), args.Error(1)
}
func (m *MockTaxonomyService) SearchTaxonomy(ctx context.Context, term string, limit int) ([]domain.TaxonomyNode, error) {
	args := m.Called(ctx, term, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxonomyNode), args.Error(1)
}

// ImportTaxonomy drains the source so tests can match on its content.
func (m *MockTaxonomyService) ImportTaxonomy(ctx context.Context, source io.Reader, opts domain.TaxonomyImportOptions) (*domain.TaxonomyImportResult, error) {
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

var _ portssvc.TaxonomySvcFacade = (*MockTaxonomyService)(nil)

// --- Router fixture ---

const testJWTSecret = "test-secret-key-that-is-long-enough"

type testServices struct {
	organization *MockOrganizationService
	account      *MockAccountService
	journal      *MockJournalService
	reporting    *MockReportingService
	taxonomy     *MockTaxonomyService
}

func (s *testServices) assertExpectations(t *testing.T) {
	s.organization.AssertExpectations(t)
	s.account.AssertExpectations(t)
	s.journal.AssertExpectations(t)
	s.reporting.AssertExpectations(t)
	s.taxonomy.AssertExpectations(t)
}

// newTestRouter wires every route against fresh mocks. Authentication is enabled
// when jwtSecret is non-empty.
func newTestRouter(t *testing.T, jwtSecret string) (*gin.Engine, *testServices) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svcs := &testServices{
		organization: new(MockOrganizationService),
		account:      new(MockAccountService),
		journal:      new(MockJournalService),
		reporting:    new(MockReportingService),
		taxonomy:     new(MockTaxonomyService),
	}
	container := &portssvc.ServiceContainer{
		Organization: svcs.organization,
		Account:      svcs.account,
		Journal:      svcs.journal,
		Reporting:    svcs.reporting,
		Taxonomy:     svcs.taxonomy,
	}
	cfg := &config.Config{
		JWTSecret:             jwtSecret,
		JWTIssuer:             "ledger-test",
		EntryListDefaultLimit: 25,
		TaxonomyCSVDelimiter:  ';',
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, handlers.RegisterRoutes(r, cfg, container))
	return r, svcs
}

func generateTestToken(t *testing.T, subject string) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Issuer:    "ledger-test",
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func doRequest(r http.Handler, method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func strPtr(s string) *string {
	return &s
}

func acmeOrganization() *domain.Organization {
	return &domain.Organization{ID: 1, Code: "ACME", Name: "Acme BV", Path: "000001", Currency: "EUR"}
}
