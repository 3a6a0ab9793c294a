package dataprocessing

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"strings"

	"salesreport/internal/errors"
)

// Loader reads the raw sales CSV into memory. The file is opened, fully
// read, and closed before cleaning begins; nothing downstream holds a
// file handle.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new CSV loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load reads the CSV file at path into a RawTable.
// It returns a NotFoundError when the path does not exist and a ReadError
// when the file exists but cannot be parsed as CSV (malformed quoting or
// no header row). Schema enforcement is the Cleaner's job; a file whose
// header lacks required columns still loads.
func (l *Loader) Load(ctx context.Context, path string) (*RawTable, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.NewNotFoundError(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewReadError(path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewReadError(path, err)
	}
	if len(records) == 0 {
		return nil, errors.NewReadError(path, io.ErrUnexpectedEOF).
			WithContext("reason", "file has no header row")
	}

	table := buildTable(records)

	l.logger.Info("CSV file loaded",
		slog.String("path", path),
		slog.Int("rows", len(table.Rows)),
		slog.String("columns", strings.Join(table.Columns, ",")))

	return table, nil
}

// buildTable maps the header onto the five known columns and copies each
// data row into a RawRecord. Header names are matched after trimming and
// lower-casing; extra columns are ignored, short rows leave fields empty.
func buildTable(records [][]string) *RawTable {
	header := records[0]
	columns := make([]string, 0, len(header))
	index := make(map[string]int, len(header))
	for i, name := range header {
		normalized := strings.ToLower(strings.TrimSpace(name))
		columns = append(columns, normalized)
		if _, seen := index[normalized]; !seen {
			index[normalized] = i
		}
	}

	field := func(row []string, column string) string {
		i, ok := index[column]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	rows := make([]RawRecord, 0, len(records)-1)
	for n, row := range records[1:] {
		rows = append(rows, RawRecord{
			Line:     n + 2, // header is line 1
			Date:     field(row, ColumnDate),
			Product:  field(row, ColumnProduct),
			Category: field(row, ColumnCategory),
			Quantity: field(row, ColumnQuantity),
			Price:    field(row, ColumnPrice),
		})
	}

	return &RawTable{Columns: columns, Rows: rows}
}
