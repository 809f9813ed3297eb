package analysis

import (
	"time"

	"sales-report/src/analysis/core"
	"sales-report/src/models"
)

// IBusinessDays counts the business days of a calendar month.
type IBusinessDays interface {
	BusinessDaysInMonth(year int, month time.Month) int
}

// TemporalOptions tunes the monthly aggregate. All fields are optional.
type TemporalOptions struct {
	MonthLabels []string // 12 display labels, January first
	Calendar    IBusinessDays
	Year        int // year of the business-day count, dominant data year if 0
}

// -----------------------------------------------------------------------------

// AggregateMonthly returns exactly 12 buckets, January first. The label of a
// month is the data's own Month value when present, then the configured
// label, then the English abbreviation.
func AggregateMonthly(lines []models.MOrderLine, opts TemporalOptions) []models.MMonthlyAggregate {
	totals := monthResampler.Resample(lines)

	dataLabels := make(map[time.Month]string)
	timestamps := make([]time.Time, 0, len(lines))
	for _, line := range lines {
		timestamps = append(timestamps, line.Timestamp)
		if line.MonthLabel == "" {
			continue
		}
		if _, seen := dataLabels[line.Timestamp.Month()]; !seen {
			dataLabels[line.Timestamp.Month()] = line.MonthLabel
		}
	}

	year := opts.Year
	if year == 0 {
		year = core.DominantYear(timestamps)
	}

	out := make([]models.MMonthlyAggregate, len(totals))
	for i, t := range totals {
		month := time.Month(i + 1)
		agg := models.MMonthlyAggregate{
			Month:         i + 1,
			Label:         monthLabel(month, dataLabels, opts.MonthLabels),
			TotalSales:    t.Sales,
			TotalQuantity: t.Quantity,
		}
		if opts.Calendar != nil && year > 0 {
			agg.BusinessDays = opts.Calendar.BusinessDaysInMonth(year, month)
			agg.SalesPerBusinessDay = core.PerUnit(t.Sales, agg.BusinessDays)
		}
		out[i] = agg
	}
	return out
}

func monthLabel(month time.Month, fromData map[time.Month]string, configured []string) string {
	if label, ok := fromData[month]; ok {
		return label
	}
	if len(configured) == 12 && configured[month-1] != "" {
		return configured[month-1]
	}
	return month.String()[:3]
}

// -----------------------------------------------------------------------------

// AggregateHourly returns exactly 24 buckets, hour 0 first.
func AggregateHourly(lines []models.MOrderLine) []models.MHourlyAggregate {
	totals := hourResampler.Resample(lines)

	out := make([]models.MHourlyAggregate, len(totals))
	for h, t := range totals {
		out[h] = models.MHourlyAggregate{Hour: h, TotalQuantity: t.Quantity, TotalSales: t.Sales}
	}
	return out
}
