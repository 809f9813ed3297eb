package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// -----------------------------------------------------------------------------

// SumDecimals adds exact amounts.
func SumDecimals(values []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// -----------------------------------------------------------------------------

// MaxDecimal returns the largest amount, zero for an empty slice.
func MaxDecimal(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return decimal.Max(values[0], values[1:]...)
}

// -----------------------------------------------------------------------------

// DominantYear returns the most frequent year among timestamps. Ties go to
// the earlier year; an empty input yields 0.
func DominantYear(timestamps []time.Time) int {
	counts := make(map[int]int)
	for _, ts := range timestamps {
		counts[ts.Year()]++
	}

	best, bestCount := 0, 0
	for year, n := range counts {
		if n > bestCount || (n == bestCount && year < best) {
			best, bestCount = year, n
		}
	}
	return best
}
