package analysis

import (
	"github.com/shopspring/decimal"

	"sales-report/src/helpers"
	"sales-report/src/models"
)

// ProductLabels maps each product aggregate to its labels.
type ProductLabels map[models.MProductKey][]models.MLabel

// CityLabels maps each city to its labels.
type CityLabels map[string][]models.MLabel

// -----------------------------------------------------------------------------
// Policy labels aggregates. It only reads the tables it is given.
// -----------------------------------------------------------------------------

type Policy struct {
	HighPriced    map[string]struct{}
	ReferenceCity string
	LowCostBelow  decimal.Decimal
	TopCount      int
	BottomCount   int
}

// -----------------------------------------------------------------------------

func NewPolicy(cfg models.MPolicyConfig) *Policy {
	allow := make(map[string]struct{}, len(cfg.HighPricedProducts))
	for _, p := range cfg.HighPricedProducts {
		allow[p] = struct{}{}
	}
	return &Policy{
		HighPriced:    allow,
		ReferenceCity: cfg.ReferenceCity,
		LowCostBelow:  decimal.NewFromFloat(cfg.LowCostPriceThreshold),
		TopCount:      cfg.TopCount,
		BottomCount:   cfg.BottomCount,
	}
}

// TopLabel is the positional label of the best sellers.
func (p *Policy) TopLabel() models.MLabel {
	return models.TopLabel(p.TopCount)
}

// BottomLabel is the positional label of the worst sellers.
func (p *Policy) BottomLabel() models.MLabel {
	return models.BottomLabel(p.BottomCount)
}

// -----------------------------------------------------------------------------

// ClassifyProducts applies, in order: low-cost, high-priced, top-N, bottom-N.
// Top and bottom are positional over the sales-ascending view; with fewer
// products than N, all of them get the label. Unlabeled products are
// "unclassified".
func (p *Policy) ClassifyProducts(t *ProductTable) ProductLabels {
	ranked := t.BySalesAscending()
	n := len(ranked)

	top := make(map[models.MProductKey]bool)
	for i := max(0, n-p.TopCount); i < n && p.TopCount > 0; i++ {
		top[ranked[i].Key] = true
	}
	bottom := make(map[models.MProductKey]bool)
	for i := 0; i < min(n, p.BottomCount); i++ {
		bottom[ranked[i].Key] = true
	}

	labels := make(ProductLabels, n)
	for _, row := range ranked {
		var l []models.MLabel
		if row.UnitPrice.LessThan(p.LowCostBelow) {
			l = append(l, models.LabelLowCost)
		}
		if _, ok := p.HighPriced[row.Key.Product]; ok {
			l = append(l, models.LabelHighPriced)
		}
		if top[row.Key] {
			l = append(l, p.TopLabel())
		}
		if bottom[row.Key] {
			l = append(l, p.BottomLabel())
		}
		if len(l) == 0 {
			l = []models.MLabel{models.LabelUnclassified}
		}
		labels[row.Key] = l
	}
	return labels
}

// -----------------------------------------------------------------------------

// ClassifyCities flags the reference city. It fails with
// ReferenceNotFoundError when the city has no order lines.
func (p *Policy) ClassifyCities(t *CityTable) (CityLabels, error) {
	if !t.Contains(p.ReferenceCity) {
		return nil, helpers.NewReferenceNotFoundError("city aggregate", p.ReferenceCity)
	}

	labels := make(CityLabels, t.Len())
	for _, row := range t.ByMarkerOrder() {
		if row.City == p.ReferenceCity {
			labels[row.City] = []models.MLabel{models.LabelReferenceCity}
		} else {
			labels[row.City] = []models.MLabel{models.LabelUnclassified}
		}
	}
	return labels, nil
}

// -----------------------------------------------------------------------------

// CheckCityReferences verifies the reference city appears in a loaded city
// reference table. An empty table is not checked.
func (p *Policy) CheckCityReferences(refs []models.MCityReference) error {
	if len(refs) == 0 {
		return nil
	}
	for _, r := range refs {
		if r.City == p.ReferenceCity {
			return nil
		}
	}
	return helpers.NewReferenceNotFoundError("city reference table", p.ReferenceCity)
}

// -----------------------------------------------------------------------------

// SummarizeSubsets totals the members of each product label: low-cost,
// high-priced, top-N, bottom-N. Empty subsets are reported with zeros.
func (p *Policy) SummarizeSubsets(t *ProductTable, labels ProductLabels) []models.MSubsetSummary {
	order := []models.MLabel{models.LabelLowCost, models.LabelHighPriced, p.TopLabel(), p.BottomLabel()}
	sums := make(map[models.MLabel]*models.MSubsetSummary, len(order))
	sales := make(map[models.MLabel]decimal.Decimal, len(order))
	for _, l := range order {
		sums[l] = &models.MSubsetSummary{Label: l}
		sales[l] = decimal.Zero
	}

	for _, row := range t.Rows() {
		for _, l := range labels[row.Key] {
			s, ok := sums[l]
			if !ok {
				continue
			}
			s.Products++
			s.TotalQuantity += row.TotalQuantity
			s.SalesShare += row.SalesShare
			s.QuantityShare += row.QuantityShare
			sales[l] = sales[l].Add(row.TotalSales)
		}
	}

	out := make([]models.MSubsetSummary, 0, len(order))
	for _, l := range order {
		s := sums[l]
		s.TotalSales = sales[l].InexactFloat64()
		out = append(out, *s)
	}
	return out
}
