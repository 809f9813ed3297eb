package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MProductKey is the grouping key of a product aggregate. UnitPrice holds the
// canonical decimal string so the key stays comparable.
type MProductKey struct {
	Category  string `json:"category"`
	Product   string `json:"product"`
	UnitPrice string `json:"unit_price"`
}

func (k MProductKey) String() string {
	return fmt.Sprintf("%s/%s@%s", k.Category, k.Product, k.UnitPrice)
}

// -----------------------------------------------------------------------------

// MProductAggregate sums the order lines of one (category, product, price).
type MProductAggregate struct {
	Key                 MProductKey     `json:"key"`
	UnitPrice           decimal.Decimal `json:"unit_price"`
	TotalSales          decimal.Decimal `json:"total_sales"`
	TotalQuantity       int64           `json:"total_quantity"`
	SalesShare          float64         `json:"sales_share"`
	QuantityShare       float64         `json:"quantity_share"`
	PercentOfTotalSales float64         `json:"percent_of_total_sales"`
}

// -----------------------------------------------------------------------------

// MCityAggregate sums the order lines shipped to one city.
type MCityAggregate struct {
	City          string          `json:"city"`
	Latitude      float64         `json:"latitude"`
	Longitude     float64         `json:"longitude"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalQuantity int64           `json:"total_quantity"`
	OrderLines    int             `json:"order_lines"`
	SalesShare    float64         `json:"sales_share"`
}

// -----------------------------------------------------------------------------

// MMonthlyAggregate is one calendar-month bucket (1-12).
type MMonthlyAggregate struct {
	Month               int             `json:"month"`
	Label               string          `json:"label"`
	TotalSales          decimal.Decimal `json:"total_sales"`
	TotalQuantity       int64           `json:"total_quantity"`
	BusinessDays        int             `json:"business_days"`
	SalesPerBusinessDay float64         `json:"sales_per_business_day"`
}

// -----------------------------------------------------------------------------

// MHourlyAggregate is one hour-of-day bucket (0-23).
type MHourlyAggregate struct {
	Hour          int             `json:"hour"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalSales    decimal.Decimal `json:"total_sales"`
}
