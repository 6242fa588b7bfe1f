// Package money converts between commerce minor units and display amounts.
package money

import (
	"github.com/shopspring/decimal"
)

// FromMinor converts an amount in minor units (tetri, cents) to major units.
func FromMinor(minor decimal.Decimal) decimal.Decimal {
	return minor.Shift(-2)
}

// FromMinorInt is FromMinor for integer amounts.
func FromMinorInt(minor int64) decimal.Decimal {
	return decimal.NewFromInt(minor).Shift(-2)
}

// ToMinor converts a major-unit amount back to minor units, rounding half away from zero.
func ToMinor(major decimal.Decimal) int64 {
	return major.Shift(2).Round(0).IntPart()
}

// Sum adds the provided amounts.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
