package dataprocessing

import "time"

// Required input columns. Header matching is case-insensitive and
// whitespace-tolerant; extra columns are ignored.
const (
	ColumnDate     = "date"
	ColumnProduct  = "product"
	ColumnCategory = "category"
	ColumnQuantity = "quantity"
	ColumnPrice    = "price"
)

// RequiredColumns lists the columns every input file must provide
func RequiredColumns() []string {
	return []string{ColumnDate, ColumnProduct, ColumnCategory, ColumnQuantity, ColumnPrice}
}

// RawRecord is one input row exactly as read from the CSV, before any
// validation or coercion. Line is the 1-based line number in the source
// file (the header is line 1) for diagnostics.
type RawRecord struct {
	Line     int
	Date     string
	Product  string
	Category string
	Quantity string
	Price    string
}

// RawTable is the loaded input: the normalized header plus every data row.
// Columns records what the file actually provided so the Cleaner can
// enforce the schema.
type RawTable struct {
	Columns []string
	Rows    []RawRecord
}

// HasColumn reports whether the input provided the given normalized column name
func (t *RawTable) HasColumn(name string) bool {
	for _, col := range t.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// CleanRecord is a validated, type-coerced, business-rule-filtered
// transaction row. Every CleanRecord satisfies Quantity > 0, Price >= 0
// and Total == Quantity*Price; Total and Month are derived, never read
// from input.
type CleanRecord struct {
	Date     time.Time
	Product  string
	Category string
	Quantity float64
	Price    float64
	Total    float64
	Month    string // "2006-01"
}

// GroupTotal is one row of an aggregate table: a group key and the sum of
// Total over the clean rows in that group.
type GroupTotal struct {
	Key   string
	Total float64
}

// Metrics is the flat summary record computed from the clean table.
// Pointer fields are nil when the value is absent (only possible when the
// aggregated table is empty, which the Cleaner's non-empty guarantee
// normally rules out).
type Metrics struct {
	TotalRevenue    float64
	TotalUnits      float64
	AvgTicket       *float64
	TopProduct      *string
	TopCategory     *string
	BestDay         *string // ISO date "2006-01-02"
	WorstDay        *string
	MaxSaleRowTotal *float64
	MinSaleRowTotal *float64
}

// Aggregation bundles the three grouped tables and the metrics record
// produced by the Aggregator.
type Aggregation struct {
	Metrics    Metrics
	ByCategory []GroupTotal
	ByProduct  []GroupTotal
	ByDay      []GroupTotal
}
