package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"sales-report/src/analysis/core"
	"sales-report/src/models"
)

// -----------------------------------------------------------------------------
// ProductTable is the canonical product aggregate. Both consumer orderings are
// views over it produced by the stateless sort functions below.
// -----------------------------------------------------------------------------

type ProductTable struct {
	rows          []models.MProductAggregate // canonical key order
	totalSales    decimal.Decimal
	totalQuantity int64
}

// -----------------------------------------------------------------------------

// AggregateProducts groups order lines by (category, product, unit price) and
// sums quantity and sales. Shares are computed once the totals are known.
func AggregateProducts(lines []models.MOrderLine) *ProductTable {
	groups := make(map[models.MProductKey]*models.MProductAggregate)
	var totalQuantity int64

	for _, line := range lines {
		key := models.MProductKey{
			Category:  line.Category,
			Product:   line.Product,
			UnitPrice: line.UnitPrice.String(),
		}
		agg, ok := groups[key]
		if !ok {
			agg = &models.MProductAggregate{Key: key, UnitPrice: line.UnitPrice, TotalSales: decimal.Zero}
			groups[key] = agg
		}
		agg.TotalSales = agg.TotalSales.Add(line.Sales())
		agg.TotalQuantity += line.Quantity
		totalQuantity += line.Quantity
	}

	sales := make([]decimal.Decimal, 0, len(groups))
	for _, agg := range groups {
		sales = append(sales, agg.TotalSales)
	}
	totalSales := core.SumDecimals(sales)

	rows := make([]models.MProductAggregate, 0, len(groups))
	for _, agg := range groups {
		agg.SalesShare = core.Share(agg.TotalSales, totalSales)
		agg.QuantityShare = core.QuantityShare(agg.TotalQuantity, totalQuantity)
		agg.PercentOfTotalSales = 100 * agg.SalesShare
		rows = append(rows, *agg)
	}
	sort.Slice(rows, func(i, j int) bool { return lessProductKey(rows[i], rows[j]) })

	return &ProductTable{rows: rows, totalSales: totalSales, totalQuantity: totalQuantity}
}

// -----------------------------------------------------------------------------

func (t *ProductTable) Len() int {
	return len(t.rows)
}

func (t *ProductTable) TotalSales() decimal.Decimal {
	return t.totalSales
}

func (t *ProductTable) TotalQuantity() int64 {
	return t.totalQuantity
}

// Rows returns a copy of the aggregates in canonical key order.
func (t *ProductTable) Rows() []models.MProductAggregate {
	return append([]models.MProductAggregate(nil), t.rows...)
}

// ByPriceDescending is the category/product relationship view.
func (t *ProductTable) ByPriceDescending() []models.MProductAggregate {
	return SortProductsByPriceDescending(t.rows)
}

// BySalesAscending is the ranking view.
func (t *ProductTable) BySalesAscending() []models.MProductAggregate {
	return SortProductsBySalesAscending(t.rows)
}

// -----------------------------------------------------------------------------

// SortProductsByPriceDescending returns a sorted copy: unit price descending,
// ties by category then product name.
func SortProductsByPriceDescending(rows []models.MProductAggregate) []models.MProductAggregate {
	out := append([]models.MProductAggregate(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].UnitPrice.Cmp(out[j].UnitPrice); c != 0 {
			return c > 0
		}
		if out[i].Key.Category != out[j].Key.Category {
			return out[i].Key.Category < out[j].Key.Category
		}
		return out[i].Key.Product < out[j].Key.Product
	})
	return out
}

// -----------------------------------------------------------------------------

// SortProductsBySalesAscending returns a sorted copy: total sales ascending,
// ties by product name, then category, then unit price, so the result does
// not depend on input order.
func SortProductsBySalesAscending(rows []models.MProductAggregate) []models.MProductAggregate {
	out := append([]models.MProductAggregate(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].TotalSales.Cmp(out[j].TotalSales); c != 0 {
			return c < 0
		}
		if out[i].Key.Product != out[j].Key.Product {
			return out[i].Key.Product < out[j].Key.Product
		}
		return lessProductKey(out[i], out[j])
	})
	return out
}

// -----------------------------------------------------------------------------

func lessProductKey(a, b models.MProductAggregate) bool {
	if a.Key.Category != b.Key.Category {
		return a.Key.Category < b.Key.Category
	}
	if a.Key.Product != b.Key.Product {
		return a.Key.Product < b.Key.Product
	}
	return a.UnitPrice.LessThan(b.UnitPrice)
}
