package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"salesreport/internal/dataprocessing"
	"salesreport/internal/errors"
)

// RunMeta identifies the run a text summary belongs to
type RunMeta struct {
	RunID       string
	SourceFile  string
	GeneratedAt time.Time
}

// TextWriter renders the human-readable plain-text summary
type TextWriter struct {
	logger *slog.Logger
	topN   int
}

// NewTextWriter creates a text summary writer listing the top n category
// and product rows
func NewTextWriter(logger *slog.Logger, topN int) *TextWriter {
	if logger == nil {
		logger = slog.Default()
	}
	if topN <= 0 {
		topN = 5
	}
	return &TextWriter{logger: logger, topN: topN}
}

// WriteSummary writes the text summary to path
func (w *TextWriter) WriteSummary(path string, meta RunMeta, agg dataprocessing.Aggregation) error {
	w.logger.Info("writing text summary", slog.String("path", path))

	content := w.render(meta, agg)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.NewExportError(path, err)
	}
	return nil
}

func (w *TextWriter) render(meta RunMeta, agg dataprocessing.Aggregation) string {
	b := &strings.Builder{}
	rule := strings.Repeat("=", 50)
	m := agg.Metrics

	fmt.Fprintf(b, "%s\nSALES REPORT\n%s\n", rule, rule)
	fmt.Fprintf(b, "%-14s %s\n", "Run ID:", meta.RunID)
	fmt.Fprintf(b, "%-14s %s\n", "Generated:", meta.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(b, "%-14s %s\n", "Source:", meta.SourceFile)

	fmt.Fprintf(b, "\nKey metrics\n%s\n", strings.Repeat("-", 50))
	fmt.Fprintf(b, "%-22s %s\n", "Total revenue:", formatMoney(m.TotalRevenue))
	fmt.Fprintf(b, "%-22s %s\n", "Total units:", formatQuantity(m.TotalUnits))
	fmt.Fprintf(b, "%-22s %s\n", "Average ticket:", formatOptionalMoney(m.AvgTicket))
	fmt.Fprintf(b, "%-22s %s\n", "Top product:", formatOptionalString(m.TopProduct))
	fmt.Fprintf(b, "%-22s %s\n", "Top category:", formatOptionalString(m.TopCategory))
	fmt.Fprintf(b, "%-22s %s\n", "Best day:", formatOptionalString(m.BestDay))
	fmt.Fprintf(b, "%-22s %s\n", "Worst day:", formatOptionalString(m.WorstDay))
	fmt.Fprintf(b, "%-22s %s\n", "Largest sale:", formatOptionalMoney(m.MaxSaleRowTotal))
	fmt.Fprintf(b, "%-22s %s\n", "Smallest sale:", formatOptionalMoney(m.MinSaleRowTotal))

	w.renderTable(b, fmt.Sprintf("Revenue by category (top %d)", w.topN), agg.ByCategory)
	w.renderTable(b, fmt.Sprintf("Revenue by product (top %d)", w.topN), agg.ByProduct)

	if len(agg.ByDay) > 0 {
		first := agg.ByDay[0]
		last := agg.ByDay[len(agg.ByDay)-1]
		fmt.Fprintf(b, "\nDaily revenue\n%s\n", strings.Repeat("-", 50))
		fmt.Fprintf(b, "%-22s %s  %s\n", "First day:", first.Key, formatMoney(first.Total))
		fmt.Fprintf(b, "%-22s %s  %s\n", "Last day:", last.Key, formatMoney(last.Total))
		fmt.Fprintf(b, "%-22s %d\n", "Days with sales:", len(agg.ByDay))
	}

	return b.String()
}

// renderTable prints the first topN rows of an aggregate table
func (w *TextWriter) renderTable(b *strings.Builder, title string, table []dataprocessing.GroupTotal) {
	fmt.Fprintf(b, "\n%s\n%s\n", title, strings.Repeat("-", 50))
	n := w.topN
	if n > len(table) {
		n = len(table)
	}
	for _, row := range table[:n] {
		fmt.Fprintf(b, "%-30s %12s\n", row.Key, formatMoney(row.Total))
	}
}
