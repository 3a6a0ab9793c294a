package exporter

import (
	"encoding/csv"
	"log/slog"
	"os"

	"salesreport/internal/dataprocessing"
	"salesreport/internal/errors"
)

// cleanDataHeaders are the columns of the clean-table audit export and
// the Clean Data workbook sheet.
var cleanDataHeaders = []string{"date", "product", "category", "quantity", "price", "total", "month"}

// CSVWriter exports the clean table as a CSV file for downstream tooling
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteCleanData writes the clean table to path, one row per clean record.
// A UTF-8 BOM is prefixed so Excel opens the file correctly.
func (w *CSVWriter) WriteCleanData(path string, records []dataprocessing.CleanRecord) error {
	w.logger.Info("writing clean data CSV",
		slog.String("path", path),
		slog.Int("record_count", len(records)))

	file, err := os.Create(path)
	if err != nil {
		return errors.NewExportError(path, err)
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return errors.NewExportError(path, err)
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(cleanDataHeaders); err != nil {
		return errors.NewExportError(path, err)
	}
	for _, r := range records {
		row := []string{
			r.Date.Format("2006-01-02"),
			r.Product,
			r.Category,
			formatQuantity(r.Quantity),
			formatMoney(r.Price),
			formatMoney(r.Total),
			r.Month,
		}
		if err := writer.Write(row); err != nil {
			return errors.NewExportError(path, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.NewExportError(path, err)
	}
	return nil
}
