package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"sales-report/src/analysis/core"
	"sales-report/src/helpers"
	"sales-report/src/models"
)

// -----------------------------------------------------------------------------
// CityTable is the canonical city aggregate, kept in first-appearance order
// for map markers.
// -----------------------------------------------------------------------------

type CityTable struct {
	rows       []models.MCityAggregate
	totalSales decimal.Decimal
	maxSales   decimal.Decimal
}

// -----------------------------------------------------------------------------

// AggregateCities groups order lines by city. Every city must carry a single
// (latitude, longitude) pair; a second pair fails the whole aggregate with
// InconsistentGeoError.
func AggregateCities(lines []models.MOrderLine) (*CityTable, error) {
	index := make(map[string]int)
	coords := make(map[string][][2]float64)
	var rows []models.MCityAggregate

	for _, line := range lines {
		pair := [2]float64{line.Latitude, line.Longitude}
		i, ok := index[line.City]
		if !ok {
			i = len(rows)
			index[line.City] = i
			rows = append(rows, models.MCityAggregate{
				City:       line.City,
				Latitude:   line.Latitude,
				Longitude:  line.Longitude,
				TotalSales: decimal.Zero,
			})
			coords[line.City] = [][2]float64{pair}
		} else if !containsPair(coords[line.City], pair) {
			coords[line.City] = append(coords[line.City], pair)
		}

		rows[i].TotalSales = rows[i].TotalSales.Add(line.Sales())
		rows[i].TotalQuantity += line.Quantity
		rows[i].OrderLines++
	}

	for _, row := range rows {
		if pairs := coords[row.City]; len(pairs) > 1 {
			return nil, helpers.NewInconsistentGeoError(row.City, pairs)
		}
	}

	sales := make([]decimal.Decimal, len(rows))
	for i := range rows {
		sales[i] = rows[i].TotalSales
	}
	totalSales := core.SumDecimals(sales)
	for i := range rows {
		rows[i].SalesShare = core.Share(rows[i].TotalSales, totalSales)
	}

	return &CityTable{rows: rows, totalSales: totalSales, maxSales: core.MaxDecimal(sales)}, nil
}

func containsPair(pairs [][2]float64, p [2]float64) bool {
	for _, q := range pairs {
		if q == p {
			return true
		}
	}
	return false
}

// -----------------------------------------------------------------------------

func (t *CityTable) Len() int {
	return len(t.rows)
}

func (t *CityTable) TotalSales() decimal.Decimal {
	return t.totalSales
}

// MaxSales is the largest city total, the unit of marker scaling.
func (t *CityTable) MaxSales() decimal.Decimal {
	return t.maxSales
}

// Contains reports whether a city has at least one order line.
func (t *CityTable) Contains(city string) bool {
	for _, row := range t.rows {
		if row.City == city {
			return true
		}
	}
	return false
}

// ByMarkerOrder returns a copy in first-appearance order.
func (t *CityTable) ByMarkerOrder() []models.MCityAggregate {
	return append([]models.MCityAggregate(nil), t.rows...)
}

// BySalesAscending is the ranking view.
func (t *CityTable) BySalesAscending() []models.MCityAggregate {
	return SortCitiesBySalesAscending(t.rows)
}

// -----------------------------------------------------------------------------

// SortCitiesBySalesAscending returns a sorted copy, ties by city name.
func SortCitiesBySalesAscending(rows []models.MCityAggregate) []models.MCityAggregate {
	out := append([]models.MCityAggregate(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].TotalSales.Cmp(out[j].TotalSales); c != 0 {
			return c < 0
		}
		return out[i].City < out[j].City
	})
	return out
}
