package calculator

import (
	"github.com/shopspring/decimal"
)

// Shared arithmetic configuration. Set once at init and never mutated,
// so concurrent calculations cannot race on it. Intermediate math runs
// at full precision; rounding to OutputDecimalPlaces happens exactly
// once, at the output boundary.
const (
	// OutputDecimalPlaces is the fixed fractional width of every
	// score and converted value this engine emits.
	OutputDecimalPlaces = 4

	divisionPrecision = 28
)

func init() {
	decimal.DivisionPrecision = divisionPrecision
}

// FormatFixed renders d with exactly OutputDecimalPlaces fractional
// digits, rounding half away from zero at the final digit.
func FormatFixed(d decimal.Decimal) string {
	return d.StringFixed(OutputDecimalPlaces)
}
