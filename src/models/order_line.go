package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MOrderLine is one validated row of the clean order-line table.
type MOrderLine struct {
	ID         string          `json:"id"`
	Product    string          `json:"product"`
	Category   string          `json:"category"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Quantity   int64           `json:"quantity"`
	Timestamp  time.Time       `json:"timestamp"`
	City       string          `json:"city"`
	Latitude   float64         `json:"latitude"`
	Longitude  float64         `json:"longitude"`
	MonthLabel string          `json:"month_label,omitempty"` // display label from the Month column, may be empty
}

// Sales returns quantity * unit price.
func (o MOrderLine) Sales() decimal.Decimal {
	return o.UnitPrice.Mul(decimal.NewFromInt(o.Quantity))
}

// -----------------------------------------------------------------------------

// MRawOrderLine is one row of the raw order-line table, kept for display.
type MRawOrderLine struct {
	ID        string          `json:"id"`
	Product   string          `json:"product"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Date      time.Time       `json:"date"`
	Address   string          `json:"address"`
}

// -----------------------------------------------------------------------------

// MCityReference is one row of the external socio-economic city table.
type MCityReference struct {
	City       string  `json:"city"`
	Income2010 float64 `json:"income_2010"`
	AdsBudget  float64 `json:"ads_budget"`
	Sales      float64 `json:"sales"`
}
