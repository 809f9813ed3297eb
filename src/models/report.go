package models

import "time"

// -----------------------------------------------------------------------------
// Report view: the output contract consumed by the renderer
// -----------------------------------------------------------------------------

type MReportView struct {
	SnapshotID        string             `json:"snapshot_id"`
	GeneratedAt       time.Time          `json:"generated_at"`
	Load              MLoadReport        `json:"load"`
	Preview           []MRawRow          `json:"preview"`
	Products          MProductView       `json:"products"`
	Cities            MCityView          `json:"cities"`
	Monthly           []MMonthlyRow      `json:"monthly"`
	Hourly            []MHourlyRow       `json:"hourly"`
	ProcessingMetrics MProcessingMetrics `json:"processing_metrics"`
}

// -----------------------------------------------------------------------------

type MRawRow struct {
	ID        string    `json:"id"`
	Product   string    `json:"product"`
	Quantity  int64     `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	Date      time.Time `json:"date"`
	Address   string    `json:"address"`
}

// -----------------------------------------------------------------------------

type MProductView struct {
	TotalSales        float64          `json:"total_sales"`
	TotalQuantity     int64            `json:"total_quantity"`
	Rows              []MProductRow    `json:"rows"`                // canonical key order
	ByPriceDescending []MProductRow    `json:"by_price_descending"` // category/product relationship view
	BySalesAscending  []MProductRow    `json:"by_sales_ascending"`  // ranking view
	Subsets           []MSubsetSummary `json:"subsets"`
}

type MProductRow struct {
	Category            string   `json:"category"`
	Product             string   `json:"product"`
	UnitPrice           float64  `json:"unit_price"`
	TotalSales          float64  `json:"total_sales"`
	TotalQuantity       int64    `json:"total_quantity"`
	SalesShare          float64  `json:"sales_share"`
	QuantityShare       float64  `json:"quantity_share"`
	PercentOfTotalSales float64  `json:"percent_of_total_sales"`
	PercentRounded      int      `json:"percent_rounded"`
	PercentText         string   `json:"percent_text,omitempty"`
	Labels              []MLabel `json:"labels"`
}

// -----------------------------------------------------------------------------

type MCityView struct {
	TotalSales       float64             `json:"total_sales"`
	Markers          []MCityRow          `json:"markers"`            // first-appearance order
	BySalesAscending []MCityRow          `json:"by_sales_ascending"` // ranking view
	References       []MCityReferenceRow `json:"references"`
}

type MCityRow struct {
	City          string   `json:"city"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	TotalSales    float64  `json:"total_sales"`
	TotalQuantity int64    `json:"total_quantity"`
	OrderLines    int      `json:"order_lines"`
	SalesShare    float64  `json:"sales_share"`
	SalesText     string   `json:"sales_text"`
	MarkerScale   float64  `json:"marker_scale"`
	Labels        []MLabel `json:"labels"`
}

type MCityReferenceRow struct {
	City        string  `json:"city"`
	Income2010  float64 `json:"income_2010"`
	AdsBudget   float64 `json:"ads_budget"`
	Sales       float64 `json:"sales"`
	IsReference bool    `json:"is_reference"`
}

// -----------------------------------------------------------------------------

type MMonthlyRow struct {
	Month               int     `json:"month"`
	Label               string  `json:"label"`
	TotalSales          float64 `json:"total_sales"`
	TotalQuantity       int64   `json:"total_quantity"`
	BusinessDays        int     `json:"business_days"`
	SalesPerBusinessDay float64 `json:"sales_per_business_day"`
}

type MHourlyRow struct {
	Hour          int     `json:"hour"`
	TotalQuantity int64   `json:"total_quantity"`
	TotalSales    float64 `json:"total_sales"`
}
