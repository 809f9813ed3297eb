package models

import "fmt"

// MLabel is a classification tag attached to a product or city row.
type MLabel string

const (
	LabelLowCost       MLabel = "low-cost"
	LabelHighPriced    MLabel = "high-priced"
	LabelUnclassified  MLabel = "unclassified"
	LabelReferenceCity MLabel = "reference-city"
)

// TopLabel names the positional label of the n best-selling products.
func TopLabel(n int) MLabel {
	return MLabel(fmt.Sprintf("top-%d", n))
}

// BottomLabel names the positional label of the n worst-selling products.
func BottomLabel(n int) MLabel {
	return MLabel(fmt.Sprintf("bottom-%d", n))
}

// -----------------------------------------------------------------------------

// MSubsetSummary totals the products carrying one label.
type MSubsetSummary struct {
	Label         MLabel  `json:"label"`
	Products      int     `json:"products"`
	TotalSales    float64 `json:"total_sales"`
	TotalQuantity int64   `json:"total_quantity"`
	SalesShare    float64 `json:"sales_share"`
	QuantityShare float64 `json:"quantity_share"`
}
