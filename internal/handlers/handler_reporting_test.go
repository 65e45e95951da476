package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTrialBalance_Totals(t *testing.T) {
	router, svcs := newTestRouter(t, "")
	defer svcs.assertExpectations(t)

	rows := []domain.TrialBalanceRow{
		{AccountID: 10, AccountCode: "1000", Currency: "EUR", TotalDebit: decimal.RequireFromString("100"), TotalCredit: decimal.Zero, Balance: decimal.RequireFromString("100")},
		{AccountID: 11, AccountCode: "8000", Currency: "EUR", TotalDebit: decimal.Zero, TotalCredit: decimal.RequireFromString("100"), Balance: decimal.RequireFromString("-100")},
	}
	svcs.organization.On("GetOrganizationByCode", mock.Anything, "ACME").Return(acmeOrganization(), nil).Once()
	svcs.reporting.On("GetTrialBalance", mock.Anything, int64(1), (*string)(nil)).Return(rows, nil).Once()

	w := doRequest(router, http.MethodGet, "/api/v1/organizations/ACME/trial-balance", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.TrialBalanceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 2)
	assert.True(t, resp.Items[1].Balance.Equal(decimal.RequireFromString("-100")))
	assert.True(t, resp.Totals.Debit.Equal(resp.Totals.Credit))
}

func TestTrialBalance_CurrencyFilter(t *testing.T) {
	router, svcs := newTestRouter(t, "")
	defer svcs.assertExpectations(t)

	svcs.organization.On("GetOrganizationByCode", mock.Anything, "ACME").Return(acmeOrganization(), nil).Once()
	svcs.reporting.On("GetTrialBalance", mock.Anything, int64(1), mock.MatchedBy(func(c *string) bool {
		return c != nil && *c == "usd"
	})).Return([]domain.TrialBalanceRow{}, nil).Once()

	w := doRequest(router, http.MethodGet, "/api/v1/organizations/ACME/trial-balance?currency=usd", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	svcs.organization.On("GetOrganizationByCode", mock.Anything, "ACME").Return(acmeOrganization(), nil).Once()
	w = doRequest(router, http.MethodGet, "/api/v1/organizations/ACME/trial-balance?currency=ZZZ", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSnapshot(t *testing.T) {
	router, svcs := newTestRouter(t, "")
	defer svcs.assertExpectations(t)

	snapshot := &domain.Snapshot{
		Organization: *acmeOrganization(),
		Accounts:     []domain.LedgerAccount{},
		TrialBalance: []domain.TrialBalanceRow{},
		Entries:      []domain.EntrySummary{},
	}
	svcs.reporting.On("GetSnapshot", mock.Anything, "ACME", 0).Return(snapshot, nil).Once()
	svcs.reporting.On("GetSnapshot", mock.Anything, "GONE", 5).
		Return(nil, apperrors.NewNotFoundError("organization", "GONE")).Once()

	w := doRequest(router, http.MethodGet, "/api/v1/organizations/ACME/snapshot", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body, "trialBalance")
	assert.Contains(t, body, "entries")

	w = doRequest(router, http.MethodGet, "/api/v1/organizations/GONE/snapshot?limit=5", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
