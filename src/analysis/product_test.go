package analysis

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-report/src/models"
)

func TestThreeLineExample(t *testing.T) {
	lines := []models.MOrderLine{
		line("ProductA", "X", "10", 2, "San Francisco", at(time.January, 9)),
		line("ProductB", "Y", "100", 1, "San Francisco", at(time.January, 10)),
		line("ProductA", "X", "10", 1, "San Francisco", at(time.February, 11)),
	}
	table := AggregateProducts(lines)
	require.Equal(t, 2, table.Len())

	rows := table.Rows()
	assert.Equal(t, "ProductA", rows[0].Key.Product)
	assert.Equal(t, "30", rows[0].TotalSales.String())
	assert.Equal(t, int64(3), rows[0].TotalQuantity)
	assert.InDelta(t, 0.2308, rows[0].SalesShare, 1e-3)
	assert.Equal(t, "100", rows[1].TotalSales.String())
	assert.InDelta(t, 0.7692, rows[1].SalesShare, 1e-3)
	assert.InDelta(t, 76.92, rows[1].PercentOfTotalSales, 1e-2)
	assert.InDelta(t, 0.75, rows[0].QuantityShare, 1e-12)

	labels := NewPolicy(defaultPolicyConfig()).ClassifyProducts(table)
	assert.Contains(t, labels[rows[0].Key], models.LabelLowCost)
	assert.NotContains(t, labels[rows[1].Key], models.LabelLowCost)
}

func TestGroupingKeyIncludesPrice(t *testing.T) {
	lines := []models.MOrderLine{
		line("Cable", "Accessoire", "11.95", 1, "Dallas", at(time.March, 1)),
		line("Cable", "Accessoire", "11.950", 2, "Dallas", at(time.March, 2)),
		line("Cable", "Accessoire", "12.95", 1, "Dallas", at(time.March, 3)),
	}
	table := AggregateProducts(lines)
	require.Equal(t, 2, table.Len(), "equal decimals share a key, a different price does not")
	assert.Equal(t, int64(3), table.Rows()[0].TotalQuantity)
}

func TestSalesSharesSumToOne(t *testing.T) {
	table := AggregateProducts(tenProducts())
	sum := 0.0
	for _, r := range table.Rows() {
		sum += r.SalesShare
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestOrderingsAreViewsOfOneTable(t *testing.T) {
	lines := []models.MOrderLine{
		line("Monitor", "TV & Moniteur", "150", 1, "Dallas", at(time.May, 1)),
		line("AAA", "Accessoire", "150", 1, "Dallas", at(time.May, 1)),
		line("Laptop", "Ordinateur", "999.99", 1, "Dallas", at(time.May, 1)),
		line("Cable", "Accessoire", "5", 30, "Dallas", at(time.May, 1)),
	}
	table := AggregateProducts(lines)

	var byPrice []string
	for _, r := range table.ByPriceDescending() {
		byPrice = append(byPrice, r.Key.Product)
	}
	assert.Equal(t, []string{"Laptop", "AAA", "Monitor", "Cable"}, byPrice)

	var bySales []string
	for _, r := range table.BySalesAscending() {
		bySales = append(bySales, r.Key.Product)
	}
	// AAA and Cable and Monitor tie at 150; names break the tie.
	assert.Equal(t, []string{"AAA", "Cable", "Monitor", "Laptop"}, bySales)

	assert.ElementsMatch(t, table.Rows(), table.BySalesAscending())
}

func TestSalesAscendingIsInputOrderIndependent(t *testing.T) {
	lines := tenProducts()
	lines = append(lines, line("Tie", "Smartphone", "1", 10, "Dallas", at(time.June, 3)))
	lines = append(lines, line("Tie", "Accessoire", "1", 10, "Dallas", at(time.June, 3)))
	want := AggregateProducts(lines).BySalesAscending()

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]models.MOrderLine(nil), lines...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, AggregateProducts(shuffled).BySalesAscending())
	}
}

func TestSortFunctionsDoNotMutateInput(t *testing.T) {
	table := AggregateProducts(tenProducts())
	rows := table.Rows()
	before := append([]models.MProductAggregate(nil), rows...)
	SortProductsByPriceDescending(rows)
	SortProductsBySalesAscending(rows)
	assert.Equal(t, before, rows)
}
