// Package money converts between the decimal amount strings used on the wire
// (CSV column, JSON fields) and the signed cents used internally.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Parse converts a decimal amount string such as "12.34" or "-8.55" into
// signed cents. At most two fractional digits are allowed.
func Parse(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	cents := d.Mul(decimal.NewFromInt(100))
	if !cents.IsInteger() {
		return 0, fmt.Errorf("invalid amount %q: more than two decimal places", s)
	}

	return cents.IntPart(), nil
}

// Format renders signed cents with exactly two fractional digits,
// matching the persisted CSV column format.
func Format(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}
