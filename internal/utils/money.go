package utils

import (
	"fmt"
	"math"
)

// RoundCurrency rounds a monetary value to 2 decimal places, half away from
// zero. Applied after every arithmetic step that produces a currency value so
// unrounded fractions never accumulate.
func RoundCurrency(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatAmount renders an amount with its currency unit for audit display.
func FormatAmount(v float64, currency string) string {
	return fmt.Sprintf("%.2f %s", v, currency)
}

// PeriodsFor returns how many cadence steps fit in durationMonths, rounding up.
func PeriodsFor(durationMonths, stepMonths int) int {
	if stepMonths <= 0 {
		stepMonths = 1
	}
	return int(math.Ceil(float64(durationMonths) / float64(stepMonths)))
}
