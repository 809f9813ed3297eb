package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestShare(t *testing.T) {
	assert.InDelta(t, 0.25, Share(decimal.NewFromInt(25), decimal.NewFromInt(100)), 1e-12)
	assert.Equal(t, 0.0, Share(decimal.NewFromInt(25), decimal.Zero))
	assert.InDelta(t, 0.5, QuantityShare(3, 6), 1e-12)
	assert.Equal(t, 0.0, QuantityShare(3, 0))
}

func TestPerUnit(t *testing.T) {
	assert.InDelta(t, 10.5, PerUnit(decimal.RequireFromString("210"), 20), 1e-12)
	assert.Equal(t, 0.0, PerUnit(decimal.NewFromInt(5), 0))
}

func TestSumAndMax(t *testing.T) {
	sum := SumDecimals([]decimal.Decimal{decimal.RequireFromString("0.1"), decimal.RequireFromString("0.2")})
	assert.True(t, sum.Equal(decimal.RequireFromString("0.3")))
	assert.Equal(t, "7", MaxDecimal([]decimal.Decimal{decimal.NewFromInt(3), decimal.NewFromInt(7), decimal.NewFromInt(-1)}).String())
	assert.True(t, MaxDecimal(nil).IsZero())
}

func TestDominantYear(t *testing.T) {
	d := func(y int) time.Time { return time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC) }
	assert.Equal(t, 2019, DominantYear([]time.Time{d(2019), d(2020), d(2019)}))
	assert.Equal(t, 2019, DominantYear([]time.Time{d(2020), d(2019)}))
	assert.Equal(t, 0, DominantYear(nil))
}
