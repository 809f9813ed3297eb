package storage

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"sales-report/src/helpers"
	"sales-report/src/interfaces"
	"sales-report/src/logger"
	"sales-report/src/models"

	"github.com/shopspring/decimal"
)

// Tables keying MLoadReport.DropReasons.
const (
	TableRaw   = "raw"
	TableClean = "clean"
	TableCity  = "city"
)

// Drop reasons reported in MLoadReport.DropReasons.
const (
	ReasonMalformed       = "malformed_row"
	ReasonEmptyProduct    = "empty_product"
	ReasonBadQuantity     = "invalid_quantity"
	ReasonBadPrice        = "invalid_price"
	ReasonBadDate         = "invalid_date"
	ReasonUnknownCategory = "unknown_category"
	ReasonEmptyCity       = "empty_city"
	ReasonBadCoordinates  = "invalid_coordinates"
	ReasonBadNumber       = "invalid_number"
)

const (
	colID       = "id"
	colProduct  = "product"
	colQuantity = "quantity"
	colPrice    = "price"
	colDate     = "date"
	colAddress  = "address"
	colCategory = "category"
	colCity     = "city"
	colLat      = "lat"
	colLong     = "long"
	colMonth    = "month"
	colIncome   = "income"
	colAds      = "ads"
	colSales    = "sales"
)

// Header aliases after normalization (lower case, no spaces or underscores).
var columnAliases = map[string][]string{
	colID:       {"orderid", "id"},
	colProduct:  {"product"},
	colQuantity: {"quantityordered", "quantity"},
	colPrice:    {"priceeach", "unitprice", "price"},
	colDate:     {"orderdate", "date"},
	colAddress:  {"purchaseaddress", "address"},
	colCategory: {"cat", "category"},
	colCity:     {"city"},
	colLat:      {"lat", "latitude"},
	colLong:     {"long", "lng", "longitude"},
	colMonth:    {"month"},
	colIncome:   {"income2010", "income"},
	colAds:      {"adsbudget", "ads"},
	colSales:    {"sales"},
}

var (
	rawRequired   = []string{colProduct, colQuantity, colPrice, colDate}
	cleanRequired = []string{colProduct, colQuantity, colPrice, colDate, colCategory, colCity, colLat, colLong}
	cityRequired  = []string{colCity, colIncome, colAds, colSales}
)

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"01/02/06 15:04",
	"01/02/2006 15:04",
	time.RFC3339,
	time.RFC3339Nano,
}

// -----------------------------------------------------------------------------

// RecordStore turns untyped tables into validated order lines. Rows that fail
// coercion are dropped and counted; only structural defects are errors.
type RecordStore struct {
	Source     interfaces.ITableSource
	Categories map[string]struct{}
	Logger     *logger.Logger
}

// -----------------------------------------------------------------------------

func NewRecordStore(source interfaces.ITableSource, categories []string, log *logger.Logger) *RecordStore {
	known := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		known[c] = struct{}{}
	}
	return &RecordStore{Source: source, Categories: known, Logger: log}
}

// -----------------------------------------------------------------------------

// LoadSnapshot loads the raw, clean and city tables named in the data config
// under the configured load timeout.
func (r *RecordStore) LoadSnapshot(ctx context.Context, data models.MDataConfig) (*models.MRecordSet, error) {
	if data.LoadTimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(data.LoadTimeoutSeconds)*time.Second)
		defer cancel()
	}

	set, err := r.Load(ctx, data.RawTable, data.CleanTable)
	if err != nil {
		return nil, err
	}

	if data.CityTable != "" {
		cities, reasons, err := r.LoadCityReferences(ctx, data.CityTable)
		if err != nil {
			return nil, err
		}
		set.Cities = cities
		set.Report.CityRows = len(cities)
		set.Report.CityDropped = countDropped(reasons)
		if len(reasons) > 0 {
			set.Report.DropReasons[TableCity] = reasons
		}
	}

	r.Logger.Info("Loaded %d clean rows (%d dropped), %d raw rows (%d dropped), %d city rows (%d dropped)",
		set.Report.CleanRows, set.Report.CleanDropped, set.Report.RawRows, set.Report.RawDropped,
		set.Report.CityRows, set.Report.CityDropped)
	return set, nil
}

// -----------------------------------------------------------------------------

// Load reads the raw and clean order-line tables. The raw table is optional
// (empty ref), only feeds the preview and is sorted by date, stable. The clean
// table must yield at least one valid row.
func (r *RecordStore) Load(ctx context.Context, rawRef, cleanRef string) (*models.MRecordSet, error) {
	set := &models.MRecordSet{Report: models.MLoadReport{DropReasons: map[string]map[string]int{}}}

	if rawRef != "" {
		table, err := r.Source.ReadTable(ctx, rawRef)
		if err != nil {
			return nil, helpers.NewDataLoadError(rawRef, 0, "read failed", err)
		}
		reasons := map[string]int{}
		raw, dropped, err := r.parseRaw(table, reasons)
		if err != nil {
			return nil, err
		}
		if len(raw) == 0 {
			r.Logger.Warning("Raw table %s has no valid rows (%d dropped), preview will be empty", rawRef, dropped)
		}
		sort.SliceStable(raw, func(i, j int) bool { return raw[i].Date.Before(raw[j].Date) })
		set.Raw = raw
		set.Report.RawRows = len(raw)
		set.Report.RawDropped = dropped
		if len(reasons) > 0 {
			set.Report.DropReasons[TableRaw] = reasons
		}
	}

	table, err := r.Source.ReadTable(ctx, cleanRef)
	if err != nil {
		return nil, helpers.NewDataLoadError(cleanRef, 0, "read failed", err)
	}
	reasons := map[string]int{}
	clean, dropped, err := r.parseClean(table, reasons)
	if err != nil {
		return nil, err
	}
	if len(clean) == 0 {
		return nil, helpers.NewDataLoadError(cleanRef, dropped, "no valid rows", nil)
	}
	set.Clean = clean
	set.Report.CleanRows = len(clean)
	set.Report.CleanDropped = dropped

	if dropped > 0 {
		set.Report.DropReasons[TableClean] = reasons
		r.Logger.Warning("Dropped %d of %d rows from %s: %v", dropped, len(table.Rows), cleanRef, reasons)
	}
	return set, nil
}

// -----------------------------------------------------------------------------

// LoadCityReferences reads the socio-economic city table. Invalid rows are
// dropped and counted per reason.
func (r *RecordStore) LoadCityReferences(ctx context.Context, ref string) ([]models.MCityReference, map[string]int, error) {
	table, err := r.Source.ReadTable(ctx, ref)
	if err != nil {
		return nil, nil, helpers.NewDataLoadError(ref, 0, "read failed", err)
	}
	cols, err := resolveColumns(table, cityRequired)
	if err != nil {
		return nil, nil, err
	}

	var out []models.MCityReference
	reasons := map[string]int{}
	for _, row := range table.Rows {
		if len(row) != len(table.Header) {
			reasons[ReasonMalformed]++
			continue
		}
		city := strings.TrimSpace(row[cols[colCity]])
		if city == "" {
			reasons[ReasonEmptyCity]++
			continue
		}
		income, err1 := parseFinite(row[cols[colIncome]])
		ads, err2 := parseFinite(row[cols[colAds]])
		sales, err3 := parseFinite(row[cols[colSales]])
		if err1 != nil || err2 != nil || err3 != nil {
			reasons[ReasonBadNumber]++
			continue
		}
		out = append(out, models.MCityReference{City: city, Income2010: income, AdsBudget: ads, Sales: sales})
	}
	return out, reasons, nil
}

func countDropped(reasons map[string]int) int {
	n := 0
	for _, c := range reasons {
		n += c
	}
	return n
}

// -----------------------------------------------------------------------------

func (r *RecordStore) parseRaw(table *models.MTable, reasons map[string]int) ([]models.MRawOrderLine, int, error) {
	cols, err := resolveColumns(table, rawRequired)
	if err != nil {
		return nil, 0, err
	}

	out := make([]models.MRawOrderLine, 0, len(table.Rows))
	dropped := 0
	for _, row := range table.Rows {
		line, reason := parseRawRow(row, len(table.Header), cols)
		if reason != "" {
			reasons[reason]++
			dropped++
			continue
		}
		out = append(out, line)
	}
	return out, dropped, nil
}

// -----------------------------------------------------------------------------

func (r *RecordStore) parseClean(table *models.MTable, reasons map[string]int) ([]models.MOrderLine, int, error) {
	cols, err := resolveColumns(table, cleanRequired)
	if err != nil {
		return nil, 0, err
	}

	out := make([]models.MOrderLine, 0, len(table.Rows))
	dropped := 0
	for _, row := range table.Rows {
		line, reason := r.parseCleanRow(row, len(table.Header), cols)
		if reason != "" {
			reasons[reason]++
			dropped++
			continue
		}
		out = append(out, line)
	}
	return out, dropped, nil
}

// -----------------------------------------------------------------------------

func parseRawRow(row []string, width int, cols map[string]int) (models.MRawOrderLine, string) {
	var line models.MRawOrderLine
	if len(row) != width {
		return line, ReasonMalformed
	}

	line.Product = strings.TrimSpace(row[cols[colProduct]])
	if line.Product == "" {
		return line, ReasonEmptyProduct
	}
	qty, ok := parseQuantity(row[cols[colQuantity]])
	if !ok {
		return line, ReasonBadQuantity
	}
	price, ok := parsePrice(row[cols[colPrice]])
	if !ok {
		return line, ReasonBadPrice
	}
	date, ok := parseDate(row[cols[colDate]])
	if !ok {
		return line, ReasonBadDate
	}

	line.Quantity = qty
	line.UnitPrice = price
	line.Date = date
	line.ID = optionalCell(row, cols, colID)
	line.Address = optionalCell(row, cols, colAddress)
	return line, ""
}

// -----------------------------------------------------------------------------

func (r *RecordStore) parseCleanRow(row []string, width int, cols map[string]int) (models.MOrderLine, string) {
	var line models.MOrderLine
	if len(row) != width {
		return line, ReasonMalformed
	}

	line.Product = strings.TrimSpace(row[cols[colProduct]])
	if line.Product == "" {
		return line, ReasonEmptyProduct
	}
	qty, ok := parseQuantity(row[cols[colQuantity]])
	if !ok {
		return line, ReasonBadQuantity
	}
	price, ok := parsePrice(row[cols[colPrice]])
	if !ok {
		return line, ReasonBadPrice
	}
	ts, ok := parseDate(row[cols[colDate]])
	if !ok {
		return line, ReasonBadDate
	}
	line.Category = strings.TrimSpace(row[cols[colCategory]])
	if _, known := r.Categories[line.Category]; !known {
		return line, ReasonUnknownCategory
	}
	line.City = strings.TrimSpace(row[cols[colCity]])
	if line.City == "" {
		return line, ReasonEmptyCity
	}
	lat, err1 := parseFinite(row[cols[colLat]])
	long, err2 := parseFinite(row[cols[colLong]])
	if err1 != nil || err2 != nil {
		return line, ReasonBadCoordinates
	}

	line.Quantity = qty
	line.UnitPrice = price
	line.Timestamp = ts
	line.Latitude = lat
	line.Longitude = long
	line.ID = optionalCell(row, cols, colID)
	line.MonthLabel = optionalCell(row, cols, colMonth)
	return line, ""
}

// -----------------------------------------------------------------------------

// resolveColumns maps logical column names to header positions. Every
// alias is resolved; missing required ones fail the whole table.
func resolveColumns(table *models.MTable, required []string) (map[string]int, error) {
	index := make(map[string]int, len(table.Header))
	for i, h := range table.Header {
		key := normalizeHeader(h)
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	cols := make(map[string]int)
	for logical, aliases := range columnAliases {
		for _, alias := range aliases {
			if pos, ok := index[alias]; ok {
				cols[logical] = pos
				break
			}
		}
	}

	var missing []string
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, helpers.NewDataLoadError(table.Name, len(table.Rows),
			fmt.Sprintf("missing required columns %v", missing), nil)
	}
	return cols, nil
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "", "_", "").Replace(h)
}

func optionalCell(row []string, cols map[string]int, name string) string {
	if pos, ok := cols[name]; ok {
		return strings.TrimSpace(row[pos])
	}
	return ""
}

// -----------------------------------------------------------------------------

func parseQuantity(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	q, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Accept integral floats such as "2.0" written by dataframe exports.
		d, derr := decimal.NewFromString(s)
		if derr != nil || !d.IsInteger() {
			return 0, false
		}
		q = d.IntPart()
	}
	return q, q > 0
}

func parsePrice(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero, false
	}
	return d, true
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not finite: %s", s)
	}
	return v, nil
}
