package exporter

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"salesreport/internal/dataprocessing"
	"salesreport/internal/errors"
)

// Workbook sheet names, in the order they appear in the file
const (
	SheetRawData    = "Raw Data"
	SheetCleanData  = "Clean Data"
	SheetByCategory = "By Category"
	SheetByProduct  = "By Product"
	SheetByDay      = "By Day"
	SheetMetrics    = "Metrics"
)

// ExcelWriter renders the full report workbook: raw and clean data, the
// three aggregate tables and the metrics record, one sheet each.
type ExcelWriter struct {
	logger *slog.Logger
}

// NewExcelWriter creates a new workbook writer
func NewExcelWriter(logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{logger: logger}
}

// sheetSpec describes one sheet: header row, data rows and which 1-based
// columns carry monetary values (rendered with two decimals).
type sheetSpec struct {
	name      string
	headers   []interface{}
	rows      [][]interface{}
	moneyCols []int
	width     float64
}

// WriteWorkbook writes the complete report workbook to path
func (w *ExcelWriter) WriteWorkbook(path string, raw *dataprocessing.RawTable,
	clean []dataprocessing.CleanRecord, agg dataprocessing.Aggregation) error {

	w.logger.Info("writing report workbook",
		slog.String("path", path),
		slog.Int("raw_rows", len(raw.Rows)),
		slog.Int("clean_rows", len(clean)))

	f := excelize.NewFile()
	defer f.Close()

	sheets := []sheetSpec{
		rawDataSheet(raw),
		cleanDataSheet(clean),
		groupSheet(SheetByCategory, "category", agg.ByCategory),
		groupSheet(SheetByProduct, "product", agg.ByProduct),
		groupSheet(SheetByDay, "date", agg.ByDay),
		metricsSheet(agg.Metrics),
	}

	for _, spec := range sheets {
		if err := w.writeSheet(f, spec); err != nil {
			return errors.NewExportError(path, err)
		}
	}

	// Drop the default sheet so the workbook opens on Raw Data
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return errors.NewExportError(path, err)
	}

	if err := f.SaveAs(path); err != nil {
		return errors.NewExportError(path, err)
	}
	return nil
}

// writeSheet creates one sheet and fills header and data rows
func (w *ExcelWriter) writeSheet(f *excelize.File, spec sheetSpec) error {
	if _, err := f.NewSheet(spec.name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", spec.name, err)
	}

	if err := f.SetSheetRow(spec.name, "A1", &spec.headers); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", spec.name, err)
	}
	for i, row := range spec.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(spec.name, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+2, spec.name, err)
		}
	}

	if err := w.styleSheet(f, spec); err != nil {
		return fmt.Errorf("failed to style sheet %s: %w", spec.name, err)
	}
	return nil
}

// styleSheet applies the bold header, money number format and column widths
func (w *ExcelWriter) styleSheet(f *excelize.File, spec sheetSpec) error {
	lastCol, err := excelize.ColumnNumberToName(len(spec.headers))
	if err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(spec.name, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}

	if len(spec.rows) > 0 && len(spec.moneyCols) > 0 {
		// Built-in number format 2 renders as 0.00
		moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2})
		if err != nil {
			return err
		}
		for _, col := range spec.moneyCols {
			name, err := excelize.ColumnNumberToName(col)
			if err != nil {
				return err
			}
			first := fmt.Sprintf("%s2", name)
			last := fmt.Sprintf("%s%d", name, len(spec.rows)+1)
			if err := f.SetCellStyle(spec.name, first, last, moneyStyle); err != nil {
				return err
			}
		}
	}

	width := spec.width
	if width == 0 {
		width = 16
	}
	return f.SetColWidth(spec.name, "A", lastCol, width)
}

func rawDataSheet(raw *dataprocessing.RawTable) sheetSpec {
	rows := make([][]interface{}, 0, len(raw.Rows))
	for _, r := range raw.Rows {
		rows = append(rows, []interface{}{r.Date, r.Product, r.Category, r.Quantity, r.Price})
	}
	return sheetSpec{
		name:    SheetRawData,
		headers: []interface{}{"date", "product", "category", "quantity", "price"},
		rows:    rows,
	}
}

func cleanDataSheet(clean []dataprocessing.CleanRecord) sheetSpec {
	rows := make([][]interface{}, 0, len(clean))
	for _, r := range clean {
		rows = append(rows, []interface{}{
			r.Date.Format("2006-01-02"), r.Product, r.Category,
			r.Quantity, r.Price, r.Total, r.Month,
		})
	}
	return sheetSpec{
		name:      SheetCleanData,
		headers:   []interface{}{"date", "product", "category", "quantity", "price", "total", "month"},
		rows:      rows,
		moneyCols: []int{5, 6},
	}
}

func groupSheet(name, keyHeader string, table []dataprocessing.GroupTotal) sheetSpec {
	rows := make([][]interface{}, 0, len(table))
	for _, row := range table {
		rows = append(rows, []interface{}{row.Key, row.Total})
	}
	return sheetSpec{
		name:      name,
		headers:   []interface{}{keyHeader, "total"},
		rows:      rows,
		moneyCols: []int{2},
		width:     22,
	}
}

func metricsSheet(m dataprocessing.Metrics) sheetSpec {
	optionalFloat := func(f *float64) interface{} {
		if f == nil {
			return nil
		}
		return *f
	}
	optionalString := func(s *string) interface{} {
		if s == nil {
			return nil
		}
		return *s
	}
	return sheetSpec{
		name:    SheetMetrics,
		headers: []interface{}{"metric", "value"},
		rows: [][]interface{}{
			{"total_revenue", m.TotalRevenue},
			{"total_units", m.TotalUnits},
			{"avg_ticket", optionalFloat(m.AvgTicket)},
			{"top_product", optionalString(m.TopProduct)},
			{"top_category", optionalString(m.TopCategory)},
			{"best_day", optionalString(m.BestDay)},
			{"worst_day", optionalString(m.WorstDay)},
			{"max_sale_row_total", optionalFloat(m.MaxSaleRowTotal)},
			{"min_sale_row_total", optionalFloat(m.MinSaleRowTotal)},
		},
		width: 24,
	}
}
