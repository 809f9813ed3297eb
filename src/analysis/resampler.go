package analysis

import (
	"time"

	"github.com/shopspring/decimal"

	"sales-report/src/models"
)

// bucketTotals is the running sum of one calendar bucket.
type bucketTotals struct {
	Sales    decimal.Decimal
	Quantity int64
	Lines    int
}

// -----------------------------------------------------------------------------

// CalendarResampler splits order lines into a fixed number of calendar
// buckets. Every bucket exists in the output, empty ones with zero totals.
type CalendarResampler struct {
	Buckets int
	Index   func(ts time.Time) int // bucket of a timestamp, 0-based
}

var (
	monthResampler = CalendarResampler{Buckets: 12, Index: func(ts time.Time) int { return int(ts.Month()) - 1 }}
	hourResampler  = CalendarResampler{Buckets: 24, Index: func(ts time.Time) int { return ts.Hour() }}
)

// -----------------------------------------------------------------------------

func (r CalendarResampler) Resample(lines []models.MOrderLine) []bucketTotals {
	out := make([]bucketTotals, r.Buckets)
	for i := range out {
		out[i].Sales = decimal.Zero
	}

	for _, line := range lines {
		i := r.Index(line.Timestamp)
		if i < 0 || i >= r.Buckets {
			continue
		}
		out[i].Sales = out[i].Sales.Add(line.Sales())
		out[i].Quantity += line.Quantity
		out[i].Lines++
	}
	return out
}
