package domain

import (
	"strings"

	"github.com/Rhymond/go-money"
)

// NormalizeCurrency trims and upper-cases code, substituting fallback when it is empty.
// It reports false when the result is not a known ISO 4217 currency.
func NormalizeCurrency(code, fallback string) (string, bool) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if c == "" {
		c = strings.ToUpper(strings.TrimSpace(fallback))
	}
	if c == "" {
		return "", false
	}
	return c, money.GetCurrency(c) != nil
}

// CurrencyFractionDigits returns the number of minor-unit digits for a currency (2 when unknown).
func CurrencyFractionDigits(code string) int {
	if cur := money.GetCurrency(strings.ToUpper(code)); cur != nil {
		return cur.Fraction
	}
	return 2
}
