package analysis

import (
	"time"

	"sales-report/src/logger"
	"sales-report/src/models"
)

// AnalysisFacade runs the aggregation pipeline over one record snapshot:
// aggregate, classify, assemble. It keeps no state between runs.
type AnalysisFacade struct {
	Policy      *Policy
	Assembler   *ViewAssembler
	MonthLabels []string
	Calendar    IBusinessDays
	Logger      *logger.Logger
}

// -----------------------------------------------------------------------------

func NewAnalysisFacade(cfg *models.MConfig, cal IBusinessDays, log *logger.Logger) *AnalysisFacade {
	policy := NewPolicy(cfg.Policy)
	return &AnalysisFacade{
		Policy: policy,
		Assembler: &ViewAssembler{
			PreviewRows: cfg.Data.PreviewRows,
			TopLabel:    policy.TopLabel(),
		},
		MonthLabels: cfg.Data.MonthLabels,
		Calendar:    cal,
		Logger:      log,
	}
}

// -----------------------------------------------------------------------------

// Compute builds the report view. Any aggregate- or policy-level failure
// aborts the run; no partial report is returned.
func (a *AnalysisFacade) Compute(records *models.MRecordSet) (*models.MReportView, error) {
	start := time.Now()

	if records == nil {
		return a.Assembler.Assemble(AssemblyInput{})
	}

	products := AggregateProducts(records.Clean)
	productLabels := a.Policy.ClassifyProducts(products)
	subsets := a.Policy.SummarizeSubsets(products, productLabels)

	cities, err := AggregateCities(records.Clean)
	if err != nil {
		return nil, err
	}
	cityLabels, err := a.Policy.ClassifyCities(cities)
	if err != nil {
		return nil, err
	}
	if err := a.Policy.CheckCityReferences(records.Cities); err != nil {
		return nil, err
	}

	monthly := AggregateMonthly(records.Clean, TemporalOptions{MonthLabels: a.MonthLabels, Calendar: a.Calendar})
	hourly := AggregateHourly(records.Clean)

	view, err := a.Assembler.Assemble(AssemblyInput{
		Records:       records,
		Products:      products,
		ProductLabels: productLabels,
		Subsets:       subsets,
		Cities:        cities,
		CityLabels:    cityLabels,
		ReferenceCity: a.Policy.ReferenceCity,
		Monthly:       monthly,
		Hourly:        hourly,
	})
	if err != nil {
		return nil, err
	}

	view.ProcessingMetrics = models.MProcessingMetrics{
		AggregationTimeSeconds: time.Since(start).Seconds(),
		Products:               products.Len(),
		Cities:                 cities.Len(),
		OrderLines:             len(records.Clean),
	}
	a.Logger.Debug("Aggregated %d order lines into %d products and %d cities in %.3fs",
		len(records.Clean), products.Len(), cities.Len(), view.ProcessingMetrics.AggregationTimeSeconds)
	return view, nil
}
