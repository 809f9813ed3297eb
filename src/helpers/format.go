package helpers

import (
	"math"
	"strconv"
)

// Millify renders large amounts compactly: 1000 -> "1.0K", 3456789 -> "3.5M".
// The scaled value always keeps one decimal, rounded from its exact binary
// value. Values up to 999 are printed as they are, with ".0" on whole numbers.
func Millify(n float64) string {
	if n > 999 {
		if n > 1e6-1 {
			return strconv.FormatFloat(n/1e6, 'f', 1, 64) + "M"
		}
		return strconv.FormatFloat(n/1e3, 'f', 1, 64) + "K"
	}
	if n == math.Trunc(n) {
		return strconv.FormatFloat(n, 'f', 1, 64)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// -----------------------------------------------------------------------------

// RoundPercent rounds a percentage to the nearest integer, halves to even.
func RoundPercent(p float64) int {
	return int(math.RoundToEven(p))
}
