package analysis

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-report/src/helpers"
	"sales-report/src/logger"
	"sales-report/src/models"
)

func newFacade() *AnalysisFacade {
	cfg := &models.MConfig{
		Data:   models.MDataConfig{PreviewRows: 2},
		Policy: defaultPolicyConfig(),
	}
	return NewAnalysisFacade(cfg, fixedDays(21), logger.NewNopLogger())
}

func TestComputeBuildsFullReport(t *testing.T) {
	records := &models.MRecordSet{
		Raw: []models.MRawOrderLine{
			{ID: "1", Product: "A-product", Quantity: 1, UnitPrice: decimal.NewFromInt(10), Date: at(time.January, 1)},
			{ID: "2", Product: "B-product", Quantity: 2, UnitPrice: decimal.NewFromInt(10), Date: at(time.January, 2)},
			{ID: "3", Product: "C-product", Quantity: 3, UnitPrice: decimal.NewFromInt(10), Date: at(time.January, 3)},
		},
		Clean:  tenProducts(),
		Cities: []models.MCityReference{{City: "San Francisco", Sales: 1}, {City: "Austin", Sales: 2}},
	}

	view, err := newFacade().Compute(records)
	require.NoError(t, err)

	assert.Len(t, view.Preview, 2)
	assert.Len(t, view.Products.Rows, 10)
	assert.Len(t, view.Products.BySalesAscending, 10)
	assert.Len(t, view.Products.ByPriceDescending, 10)
	assert.Len(t, view.Products.Subsets, 4)
	assert.Len(t, view.Monthly, 12)
	assert.Len(t, view.Hourly, 24)
	assert.Equal(t, 10, view.ProcessingMetrics.Products)
	assert.Equal(t, 1, view.ProcessingMetrics.Cities)

	best := view.Products.BySalesAscending[9]
	assert.Equal(t, "J-product", best.Product)
	assert.Equal(t, "18%", best.PercentText)
	worst := view.Products.BySalesAscending[0]
	assert.Empty(t, worst.PercentText)

	require.Len(t, view.Cities.Markers, 1)
	sf := view.Cities.Markers[0]
	assert.Equal(t, 1.0, sf.MarkerScale)
	assert.Equal(t, "550.0", sf.SalesText)
	assert.Equal(t, []models.MLabel{models.LabelReferenceCity}, sf.Labels)

	require.Len(t, view.Cities.References, 2)
	assert.True(t, view.Cities.References[0].IsReference)
	assert.False(t, view.Cities.References[1].IsReference)

	assert.Equal(t, 21, view.Monthly[0].BusinessDays)
}

func TestComputeAbortsOnInconsistentGeo(t *testing.T) {
	lines := tenProducts()
	lines[3].Longitude = 0
	_, err := newFacade().Compute(&models.MRecordSet{Clean: lines})

	var geoErr *helpers.InconsistentGeoError
	assert.True(t, errors.As(err, &geoErr))
}

func TestComputeAbortsOnMissingReferenceInCityTable(t *testing.T) {
	_, err := newFacade().Compute(&models.MRecordSet{
		Clean:  tenProducts(),
		Cities: []models.MCityReference{{City: "Austin"}},
	})
	assert.Equal(t, "reference_not_found", helpers.ErrorKind(err))
}

func TestAssembleContractViolations(t *testing.T) {
	v := &ViewAssembler{}
	_, err := v.Assemble(AssemblyInput{})
	assert.Equal(t, "contract_violation", helpers.ErrorKind(err))

	products := AggregateProducts(tenProducts())
	cities, err := AggregateCities(tenProducts())
	require.NoError(t, err)

	_, err = v.Assemble(AssemblyInput{
		Records:       &models.MRecordSet{},
		Products:      products,
		ProductLabels: ProductLabels{},
		Cities:        cities,
		CityLabels:    CityLabels{"San Francisco": nil},
		Monthly:       make([]models.MMonthlyAggregate, 12),
		Hourly:        make([]models.MHourlyAggregate, 24),
	})
	var contractErr *helpers.ContractViolationError
	require.True(t, errors.As(err, &contractErr))
	assert.Equal(t, "product_labels", contractErr.Field)

	_, err = v.Assemble(AssemblyInput{
		Records:       &models.MRecordSet{},
		Products:      products,
		ProductLabels: ProductLabels{},
		Cities:        cities,
		CityLabels:    CityLabels{},
		Monthly:       make([]models.MMonthlyAggregate, 11),
		Hourly:        make([]models.MHourlyAggregate, 24),
	})
	require.True(t, errors.As(err, &contractErr))
	assert.Equal(t, "monthly", contractErr.Field)
}

func TestComputeNilRecords(t *testing.T) {
	_, err := newFacade().Compute(nil)
	assert.Equal(t, "contract_violation", helpers.ErrorKind(err))
}
