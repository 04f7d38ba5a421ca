// Package money represents currency amounts as int64 values in the smallest
// currency unit, so arithmetic on prices and totals is exact. On the wire the
// amounts appear as plain decimal numbers (29.99), matching the public API.
package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is an amount in the smallest currency unit (e.g. cents).
type Money int64

// FromFloat converts a decimal currency amount like 29.99 into Money.
func FromFloat(f float64) Money {
	return Money(math.Round(f * 100))
}

// FromString parses a decimal currency amount like "29.99".
func FromString(s string) (Money, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid money amount %q: %w", s, err)
	}
	return FromFloat(f), nil
}

// Mul returns the amount multiplied by a quantity.
func (m Money) Mul(quantity int) Money {
	return m * Money(quantity)
}

// String renders the amount with two decimal places.
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON writes the amount as an unquoted decimal number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts both a decimal number and its quoted form.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*m = 0
		return nil
	}
	parsed, err := FromString(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
