package models

// MProcessingMetrics describes the pipeline run that produced a report.
type MProcessingMetrics struct {
	LoadTimeSeconds        float64 `json:"load_time_seconds"`
	AggregationTimeSeconds float64 `json:"aggregation_time_seconds"`
	Products               int     `json:"products"`
	Cities                 int     `json:"cities"`
	OrderLines             int     `json:"order_lines"`
}
