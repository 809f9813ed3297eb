package models

// MTable is an untyped table as produced by a table source: a header row and
// string cells. Rows may be shorter or longer than the header.
type MTable struct {
	Name   string     `json:"name"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// -----------------------------------------------------------------------------

// MLoadReport counts what the record store kept and dropped.
type MLoadReport struct {
	RawRows      int                       `json:"raw_rows"`
	RawDropped   int                       `json:"raw_dropped"`
	CleanRows    int                       `json:"clean_rows"`
	CleanDropped int                       `json:"clean_dropped"`
	CityRows     int                       `json:"city_rows"`
	CityDropped  int                       `json:"city_dropped"`
	DropReasons  map[string]map[string]int `json:"drop_reasons"` // table -> reason -> count
}

// -----------------------------------------------------------------------------

// MRecordSet is the immutable snapshot handed to the aggregators.
type MRecordSet struct {
	Raw    []MRawOrderLine  `json:"raw"`   // ascending by date, stable
	Clean  []MOrderLine     `json:"clean"` // authoritative input of every aggregate
	Cities []MCityReference `json:"cities"`
	Report MLoadReport      `json:"report"`
}
