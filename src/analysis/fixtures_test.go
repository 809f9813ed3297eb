package analysis

import (
	"time"

	"github.com/shopspring/decimal"

	"sales-report/src/models"
)

func line(product, category, price string, qty int64, city string, ts time.Time) models.MOrderLine {
	coords := map[string][2]float64{
		"San Francisco": {37.77, -122.42},
		"Dallas":        {32.78, -96.80},
		"Boston":        {42.36, -71.06},
	}[city]
	return models.MOrderLine{
		Product:   product,
		Category:  category,
		UnitPrice: decimal.RequireFromString(price),
		Quantity:  qty,
		Timestamp: ts,
		City:      city,
		Latitude:  coords[0],
		Longitude: coords[1],
	}
}

func at(month time.Month, hour int) time.Time {
	return time.Date(2019, month, 10, hour, 30, 0, 0, time.UTC)
}

func defaultPolicyConfig() models.MPolicyConfig {
	return models.MPolicyConfig{
		HighPricedProducts:    []string{"Macbook Pro", "iPhone XR", "Samsung Galaxy n10", "Dell XPS 13"},
		ReferenceCity:         "San Francisco",
		LowCostPriceThreshold: 25,
		TopCount:              4,
		BottomCount:           5,
	}
}

// tenProducts has ten products with distinct sales, P0 smallest.
func tenProducts() []models.MOrderLine {
	var lines []models.MOrderLine
	for i := 0; i < 10; i++ {
		name := string(rune('A'+i)) + "-product"
		lines = append(lines, line(name, "Accessoire", "10", int64(i+1), "San Francisco", at(time.Month(i%12+1), i)))
	}
	return lines
}
