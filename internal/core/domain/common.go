package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Timestamps holds standard row timestamps for domain entities.
type Timestamps struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Metadata is an opaque key/value document stored alongside ledger records.
type Metadata map[string]any

// OrEmpty returns m, or an empty document when m is nil, so it always encodes as {}.
func (m Metadata) OrEmpty() Metadata {
	if m == nil {
		return Metadata{}
	}
	return m
}

// Amounts and quantities are stored as NUMERIC(20,5), exchange rates as NUMERIC(18,8).
const (
	AmountScale           int32 = 5
	AmountPrecision       int32 = 20
	ExchangeRateScale     int32 = 8
	ExchangeRatePrecision int32 = 18
)

// FitNumeric rounds d to scale fractional digits and reports whether the result fits a
// NUMERIC(precision, scale) column. The magnitude is checked before rounding, so values
// with extreme exponents are rejected (or collapse to zero) without being expanded.
func FitNumeric(d decimal.Decimal, precision, scale int32) (decimal.Decimal, bool) {
	if d.IsZero() {
		return decimal.Zero, true
	}
	coefficient := d.Coefficient()
	digits := int64(len(coefficient.Abs(coefficient).String()))
	// 10^(magnitude-1) <= |d| < 10^magnitude
	magnitude := digits + int64(d.Exponent())
	if magnitude > int64(precision-scale) {
		return decimal.Zero, false
	}
	if magnitude < -int64(scale) {
		return decimal.Zero, true
	}
	rounded := d.Round(scale)
	if rounded.Abs().GreaterThanOrEqual(decimal.New(1, precision-scale)) {
		return decimal.Zero, false
	}
	return rounded, true
}
