package dto

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Number is a decimal request field that accepts a JSON number or a JSON string.
// The raw text is kept so that non-numeric input can be rejected by the service
// with a message naming the offending line rather than failing the whole decode.
type Number struct {
	raw string
	set bool
}

// NewNumber builds a Number from its textual form.
func NewNumber(raw string) Number {
	return Number{raw: strings.TrimSpace(raw), set: true}
}

// NumberPtr is a convenience for optional fields.
func NumberPtr(raw string) *Number {
	n := NewNumber(raw)
	return &n
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*n = Number{}
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*n = NewNumber(s)
		return nil
	}
	*n = NewNumber(string(trimmed))
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte("null"), nil
	}
	return json.Marshal(n.raw)
}

// IsSet reports whether a value (other than null) was supplied.
func (n Number) IsSet() bool {
	return n.set
}

// String returns the raw text.
func (n Number) String() string {
	return n.raw
}

// Decimal parses the raw text.
func (n Number) Decimal() (decimal.Decimal, error) {
	return decimal.NewFromString(n.raw)
}
