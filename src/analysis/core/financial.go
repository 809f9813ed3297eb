package core

import "github.com/shopspring/decimal"

// -----------------------------------------------------------------------------

// Share returns part / total, 0 when the total is zero.
func Share(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	return part.InexactFloat64() / total.InexactFloat64()
}

// -----------------------------------------------------------------------------

// QuantityShare is Share for integer quantities.
func QuantityShare(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}

// -----------------------------------------------------------------------------

// PerUnit divides an amount by a count, 0 for an empty count.
func PerUnit(amount decimal.Decimal, count int) float64 {
	if count <= 0 {
		return 0
	}
	return amount.InexactFloat64() / float64(count)
}
