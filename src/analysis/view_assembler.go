package analysis

import (
	"fmt"
	"slices"

	"sales-report/src/helpers"
	"sales-report/src/models"
)

// AssemblyInput gathers everything one report is built from.
type AssemblyInput struct {
	Records       *models.MRecordSet
	Products      *ProductTable
	ProductLabels ProductLabels
	Subsets       []models.MSubsetSummary
	Cities        *CityTable
	CityLabels    CityLabels
	ReferenceCity string
	Monthly       []models.MMonthlyAggregate
	Hourly        []models.MHourlyAggregate
}

// -----------------------------------------------------------------------------
// ViewAssembler converts aggregates into the renderer's report shape.
// -----------------------------------------------------------------------------

type ViewAssembler struct {
	PreviewRows int
	TopLabel    models.MLabel // rows carrying it get a percent text
}

// -----------------------------------------------------------------------------

// Assemble is a pure shape conversion. A missing aggregate or label is a
// ContractViolationError.
func (v *ViewAssembler) Assemble(in AssemblyInput) (*models.MReportView, error) {
	if err := checkContract(in); err != nil {
		return nil, err
	}

	view := &models.MReportView{
		Load:    in.Records.Report,
		Preview: v.preview(in.Records.Raw),
		Monthly: monthlyRows(in.Monthly),
		Hourly:  hourlyRows(in.Hourly),
	}

	var err error
	if view.Products, err = v.productView(in); err != nil {
		return nil, err
	}
	if view.Cities, err = cityView(in); err != nil {
		return nil, err
	}
	return view, nil
}

// -----------------------------------------------------------------------------

func checkContract(in AssemblyInput) error {
	switch {
	case in.Records == nil:
		return helpers.NewContractViolationError("records", "missing record set")
	case in.Products == nil || in.Products.Len() == 0:
		return helpers.NewContractViolationError("products", "empty product aggregate")
	case in.ProductLabels == nil:
		return helpers.NewContractViolationError("product_labels", "missing labels")
	case in.Cities == nil || in.Cities.Len() == 0:
		return helpers.NewContractViolationError("cities", "empty city aggregate")
	case in.CityLabels == nil:
		return helpers.NewContractViolationError("city_labels", "missing labels")
	case len(in.Monthly) != 12:
		return helpers.NewContractViolationError("monthly", fmt.Sprintf("%d buckets, want 12", len(in.Monthly)))
	case len(in.Hourly) != 24:
		return helpers.NewContractViolationError("hourly", fmt.Sprintf("%d buckets, want 24", len(in.Hourly)))
	}
	return nil
}

// -----------------------------------------------------------------------------

func (v *ViewAssembler) preview(raw []models.MRawOrderLine) []models.MRawRow {
	n := max(0, min(v.PreviewRows, len(raw)))
	out := make([]models.MRawRow, 0, n)
	for _, r := range raw[:n] {
		out = append(out, models.MRawRow{
			ID:        r.ID,
			Product:   r.Product,
			Quantity:  r.Quantity,
			UnitPrice: r.UnitPrice.InexactFloat64(),
			Date:      r.Date,
			Address:   r.Address,
		})
	}
	return out
}

// -----------------------------------------------------------------------------

func (v *ViewAssembler) productView(in AssemblyInput) (models.MProductView, error) {
	convert := func(aggs []models.MProductAggregate) ([]models.MProductRow, error) {
		out := make([]models.MProductRow, 0, len(aggs))
		for _, a := range aggs {
			labels, ok := in.ProductLabels[a.Key]
			if !ok {
				return nil, helpers.NewContractViolationError("product_labels", "no labels for "+a.Key.String())
			}
			row := models.MProductRow{
				Category:            a.Key.Category,
				Product:             a.Key.Product,
				UnitPrice:           a.UnitPrice.InexactFloat64(),
				TotalSales:          a.TotalSales.InexactFloat64(),
				TotalQuantity:       a.TotalQuantity,
				SalesShare:          a.SalesShare,
				QuantityShare:       a.QuantityShare,
				PercentOfTotalSales: a.PercentOfTotalSales,
				PercentRounded:      helpers.RoundPercent(a.PercentOfTotalSales),
				Labels:              slices.Clone(labels),
			}
			if v.TopLabel != "" && slices.Contains(labels, v.TopLabel) {
				row.PercentText = fmt.Sprintf("%d%%", row.PercentRounded)
			}
			out = append(out, row)
		}
		return out, nil
	}

	view := models.MProductView{
		TotalSales:    in.Products.TotalSales().InexactFloat64(),
		TotalQuantity: in.Products.TotalQuantity(),
		Subsets:       slices.Clone(in.Subsets),
	}
	var err error
	if view.Rows, err = convert(in.Products.Rows()); err != nil {
		return view, err
	}
	if view.ByPriceDescending, err = convert(in.Products.ByPriceDescending()); err != nil {
		return view, err
	}
	if view.BySalesAscending, err = convert(in.Products.BySalesAscending()); err != nil {
		return view, err
	}
	return view, nil
}

// -----------------------------------------------------------------------------

func cityView(in AssemblyInput) (models.MCityView, error) {
	maxSales := in.Cities.MaxSales()
	convert := func(aggs []models.MCityAggregate) ([]models.MCityRow, error) {
		out := make([]models.MCityRow, 0, len(aggs))
		for _, a := range aggs {
			labels, ok := in.CityLabels[a.City]
			if !ok {
				return nil, helpers.NewContractViolationError("city_labels", "no labels for "+a.City)
			}
			sales := a.TotalSales.InexactFloat64()
			row := models.MCityRow{
				City:          a.City,
				Latitude:      a.Latitude,
				Longitude:     a.Longitude,
				TotalSales:    sales,
				TotalQuantity: a.TotalQuantity,
				OrderLines:    a.OrderLines,
				SalesShare:    a.SalesShare,
				SalesText:     helpers.Millify(sales),
				Labels:        slices.Clone(labels),
			}
			if maxSales.IsPositive() {
				row.MarkerScale = sales / maxSales.InexactFloat64()
			}
			out = append(out, row)
		}
		return out, nil
	}

	view := models.MCityView{TotalSales: in.Cities.TotalSales().InexactFloat64()}
	var err error
	if view.Markers, err = convert(in.Cities.ByMarkerOrder()); err != nil {
		return view, err
	}
	if view.BySalesAscending, err = convert(in.Cities.BySalesAscending()); err != nil {
		return view, err
	}

	for _, r := range in.Records.Cities {
		view.References = append(view.References, models.MCityReferenceRow{
			City:        r.City,
			Income2010:  r.Income2010,
			AdsBudget:   r.AdsBudget,
			Sales:       r.Sales,
			IsReference: r.City == in.ReferenceCity,
		})
	}
	return view, nil
}

// -----------------------------------------------------------------------------

func monthlyRows(aggs []models.MMonthlyAggregate) []models.MMonthlyRow {
	out := make([]models.MMonthlyRow, len(aggs))
	for i, a := range aggs {
		out[i] = models.MMonthlyRow{
			Month:               a.Month,
			Label:               a.Label,
			TotalSales:          a.TotalSales.InexactFloat64(),
			TotalQuantity:       a.TotalQuantity,
			BusinessDays:        a.BusinessDays,
			SalesPerBusinessDay: a.SalesPerBusinessDay,
		}
	}
	return out
}

func hourlyRows(aggs []models.MHourlyAggregate) []models.MHourlyRow {
	out := make([]models.MHourlyRow, len(aggs))
	for i, a := range aggs {
		out[i] = models.MHourlyRow{Hour: a.Hour, TotalQuantity: a.TotalQuantity, TotalSales: a.TotalSales.InexactFloat64()}
	}
	return out
}
