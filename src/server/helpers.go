package server

import (
	"fmt"
	"net/http"

	"sales-report/src/models"
)

// -----------------------------------------------------------------------------

func productRows(view *models.MReportView, order string) ([]models.MProductRow, error) {
	switch order {
	case "", "canonical":
		return view.Products.Rows, nil
	case "price_desc":
		return view.Products.ByPriceDescending, nil
	case "sales_asc":
		return view.Products.BySalesAscending, nil
	}
	return nil, fmt.Errorf("unknown product order %q (canonical, price_desc, sales_asc)", order)
}

// -----------------------------------------------------------------------------

func cityRows(view *models.MReportView, order string) ([]models.MCityRow, error) {
	switch order {
	case "", "markers":
		return view.Cities.Markers, nil
	case "sales_asc":
		return view.Cities.BySalesAscending, nil
	}
	return nil, fmt.Errorf("unknown city order %q (markers, sales_asc)", order)
}

// -----------------------------------------------------------------------------

// viewSection selects one part of a report for a websocket "get" command.
func viewSection(view *models.MReportView, name, order string) (any, error) {
	switch name {
	case "", "report":
		return view, nil
	case "products":
		return productRows(view, order)
	case "cities":
		return cityRows(view, order)
	case "monthly":
		return view.Monthly, nil
	case "hourly":
		return view.Hourly, nil
	case "subsets":
		return view.Products.Subsets, nil
	case "preview":
		return view.Preview, nil
	}
	return nil, fmt.Errorf("unknown view %q", name)
}

// -----------------------------------------------------------------------------

// refreshStatus maps a refresh failure kind to an HTTP status. Input
// problems are the upstream's fault; policy and data-integrity mismatches are
// unprocessable; anything else is ours.
func refreshStatus(kind string) int {
	switch kind {
	case "data_load", "database", "network":
		return http.StatusBadGateway
	case "inconsistent_geo", "reference_not_found", "configuration":
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
