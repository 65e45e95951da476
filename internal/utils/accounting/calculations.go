package accounting

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// NaturalBalance expresses a debit-minus-credit balance on the account type's normal side:
// asset and expense balances stay as they are, liability, equity and revenue balances are
// negated so that a normal credit balance reads positive. Memo balances are returned unchanged.
func NaturalBalance(accountType domain.AccountType, balance decimal.Decimal) decimal.Decimal {
	if accountType.Nature() == domain.NatureCredit {
		return balance.Neg()
	}
	return balance
}

// FormatAmount renders an amount with the minor-unit precision of its currency.
func FormatAmount(amount decimal.Decimal, currency string) string {
	return amount.StringFixed(int32(domain.CurrencyFractionDigits(currency)))
}
