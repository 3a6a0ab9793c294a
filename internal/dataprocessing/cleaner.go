package dataprocessing

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"salesreport/internal/errors"
)

// dateLayouts are the layouts tried, in order, by permissive date parsing
// when no strict format is configured.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02-Jan-2006",
	"Jan 2, 2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// CleanerConfig holds configuration options for the Cleaner
type CleanerConfig struct {
	// DateFormat, when non-empty, is a strict Go reference-time layout;
	// dates not matching it exactly become missing. Empty enables
	// permissive parsing over dateLayouts.
	DateFormat string
}

// Cleaner validates and transforms a RawTable into clean records:
// schema check, per-value coercion, droppable-row filtering and derived
// field computation. Coercion failures never abort the run; they mark the
// value missing and the row is dropped.
type Cleaner struct {
	logger     *slog.Logger
	dateFormat string
}

// NewCleaner creates a new Cleaner with the given configuration
func NewCleaner(logger *slog.Logger, config CleanerConfig) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{
		logger:     logger,
		dateFormat: config.DateFormat,
	}
}

// coercedRow holds the per-field coercion outcome for one raw row.
// Each numeric/date field carries an explicit validity flag instead of a
// sentinel value.
type coercedRow struct {
	line     int
	date     time.Time
	dateOK   bool
	product  string
	category string
	quantity float64
	qtyOK    bool
	price    float64
	priceOK  bool
}

// missing reports whether any required field failed coercion or is empty
func (r coercedRow) missing() bool {
	return !r.dateOK || !r.qtyOK || !r.priceOK || r.product == "" || r.category == ""
}

// invalid reports whether the row is present but violates the business
// rules: quantity must be strictly positive, price non-negative.
func (r coercedRow) invalid() bool {
	return r.quantity <= 0 || r.price < 0
}

// Clean validates the schema and transforms the raw table into clean
// records. It returns a SchemaError when required columns are absent and
// a NoValidDataError when no row survives cleaning; both are fatal for
// the run.
func (c *Cleaner) Clean(ctx context.Context, table *RawTable) ([]CleanRecord, error) {
	if err := c.checkSchema(table); err != nil {
		return nil, err
	}

	// Coerce every row, then decide droppability in separate passes so a
	// present-but-invalid value is distinguishable from a missing one.
	coerced := make([]coercedRow, 0, len(table.Rows))
	for _, raw := range table.Rows {
		coerced = append(coerced, c.coerce(raw))
	}

	clean := make([]CleanRecord, 0, len(coerced))
	missing, invalid := 0, 0
	for _, row := range coerced {
		if row.missing() {
			missing++
			c.logger.Debug("row dropped: missing values", slog.Int("line", row.line))
			continue
		}
		if row.invalid() {
			invalid++
			c.logger.Debug("row dropped: failed business rules",
				slog.Int("line", row.line),
				slog.Float64("quantity", row.quantity),
				slog.Float64("price", row.price))
			continue
		}
		clean = append(clean, CleanRecord{
			Date:     row.date,
			Product:  row.product,
			Category: row.category,
			Quantity: row.quantity,
			Price:    row.price,
			Total:    row.quantity * row.price,
			Month:    row.date.Format("2006-01"),
		})
	}

	removed := missing + invalid
	if removed > 0 {
		c.logger.Warn("invalid rows removed during cleaning",
			slog.Int("removed_rows", removed),
			slog.Int("missing_values", missing),
			slog.Int("rule_violations", invalid),
			slog.Int("remaining_rows", len(clean)))
	} else {
		c.logger.Info("no invalid rows removed",
			slog.Int("remaining_rows", len(clean)))
	}

	if len(clean) == 0 {
		return nil, errors.NewNoValidDataError(len(table.Rows))
	}

	return clean, nil
}

// checkSchema verifies every required column is present in the input
func (c *Cleaner) checkSchema(table *RawTable) error {
	var missing []string
	for _, required := range RequiredColumns() {
		if !table.HasColumn(required) {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return errors.NewSchemaError(missing)
	}
	return nil
}

// coerce applies per-value type coercion to one raw row
func (c *Cleaner) coerce(raw RawRecord) coercedRow {
	row := coercedRow{
		line:     raw.Line,
		product:  strings.TrimSpace(raw.Product),
		category: strings.TrimSpace(raw.Category),
	}
	row.date, row.dateOK = c.parseDate(raw.Date)
	row.quantity, row.qtyOK = parseNumber(raw.Quantity)
	row.price, row.priceOK = parseNumber(raw.Price)
	return row
}

// parseDate parses a date value, strictly when a format is configured and
// permissively otherwise
func (c *Cleaner) parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if c.dateFormat != "" {
		t, err := time.Parse(c.dateFormat, value)
		return t, err == nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseNumber coerces a free-text value to float64; failure means missing
func parseNumber(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
