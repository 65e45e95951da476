package accounting

import (
	"testing"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNaturalBalance(t *testing.T) {
	hundred := decimal.NewFromInt(100)

	tests := []struct {
		name        string
		accountType domain.AccountType
		balance     decimal.Decimal
		want        decimal.Decimal
	}{
		{name: "asset debit balance", accountType: domain.Asset, balance: hundred, want: hundred},
		{name: "expense debit balance", accountType: domain.Expense, balance: hundred, want: hundred},
		{name: "revenue credit balance", accountType: domain.Revenue, balance: hundred.Neg(), want: hundred},
		{name: "liability credit balance", accountType: domain.Liability, balance: hundred.Neg(), want: hundred},
		{name: "equity debit balance", accountType: domain.Equity, balance: hundred, want: hundred.Neg()},
		{name: "memo unchanged", accountType: domain.Memo, balance: hundred.Neg(), want: hundred.Neg()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(NaturalBalance(tt.accountType, tt.balance)))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "100.50", FormatAmount(decimal.RequireFromString("100.5"), "EUR"))
	assert.Equal(t, "101", FormatAmount(decimal.RequireFromString("100.5"), "JPY"))
	assert.Equal(t, "-0.01", FormatAmount(decimal.RequireFromString("-0.01"), "USD"))
}
