// Package normalize turns raw statement cell text into typed values.
package normalize

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount converts a withdrawal or deposit cell into a non-negative magnitude.
// The second result is false when the cell holds no usable number: empty cells,
// placeholders such as "-", currency symbols, signs and any other text.
// Thousands separators and surrounding whitespace are ignored.
func Amount(cell string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(cell, ",", ""))
	if s == "" {
		return decimal.Zero, false
	}

	digits, points := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			points++
		default:
			return decimal.Zero, false
		}
	}
	if digits == 0 || points > 1 {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
