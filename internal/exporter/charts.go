package exporter

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"salesreport/internal/dataprocessing"
	"salesreport/internal/errors"
)

const (
	chartWidth  = 1000
	chartHeight = 600
)

// ChartWriter renders the PNG charts from the aggregate tables
type ChartWriter struct {
	logger *slog.Logger
}

// NewChartWriter creates a new chart writer
func NewChartWriter(logger *slog.Logger) *ChartWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChartWriter{logger: logger}
}

// WriteCategoryBar renders revenue by category as a bar chart, categories
// in descending-revenue order as given
func (w *ChartWriter) WriteCategoryBar(path string, byCategory []dataprocessing.GroupTotal) error {
	w.logger.Info("rendering category revenue chart",
		slog.String("path", path),
		slog.Int("categories", len(byCategory)))

	bars := make([]chart.Value, 0, len(byCategory))
	var maxTotal float64
	for _, row := range byCategory {
		bars = append(bars, chart.Value{Label: row.Key, Value: row.Total})
		if row.Total > maxTotal {
			maxTotal = row.Total
		}
	}

	graph := chart.BarChart{
		Title:    "Revenue by Category",
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 60,
		Bars:     bars,
		// Explicit range keeps rendering stable when all bars are equal
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: padRange(maxTotal)},
		},
	}

	return w.renderPNG(path, graph.Render)
}

// WriteDailySeries renders daily revenue as a chronological time series
func (w *ChartWriter) WriteDailySeries(path string, byDay []dataprocessing.GroupTotal) error {
	w.logger.Info("rendering daily revenue chart",
		slog.String("path", path),
		slog.Int("days", len(byDay)))

	times := make([]time.Time, 0, len(byDay))
	values := make([]float64, 0, len(byDay))
	var maxTotal float64
	for _, row := range byDay {
		day, err := time.Parse("2006-01-02", row.Key)
		if err != nil {
			return errors.NewExportError(path, err).WithContext("day_key", row.Key)
		}
		times = append(times, day)
		values = append(values, row.Total)
		if row.Total > maxTotal {
			maxTotal = row.Total
		}
	}

	graph := chart.Chart{
		Title:  "Daily Revenue",
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
			Range:          dayRange(times),
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: padRange(maxTotal)},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "revenue",
				XValues: times,
				YValues: values,
			},
		},
	}

	return w.renderPNG(path, graph.Render)
}

// renderPNG writes a rendered chart to path, removing a partially written
// file when rendering fails
func (w *ChartWriter) renderPNG(path string, render func(chart.RendererProvider, io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.NewExportError(path, err)
	}

	if err := render(chart.PNG, file); err != nil {
		file.Close()
		os.Remove(path)
		return errors.NewExportError(path, err)
	}
	return file.Close()
}

// padRange widens a [0, max] axis so the top data point never sits on the
// chart border; a zero max still yields a valid non-zero range
func padRange(max float64) float64 {
	if max <= 0 {
		return 1
	}
	return max * 1.1
}

// dayRange pads the x-axis by half a day on each side; with a single day
// this also avoids a zero-delta range, which the renderer rejects
func dayRange(times []time.Time) *chart.ContinuousRange {
	first := times[0]
	last := times[len(times)-1]
	pad := 12 * time.Hour
	return &chart.ContinuousRange{
		Min: float64(first.Add(-pad).UnixNano()),
		Max: float64(last.Add(pad).UnixNano()),
	}
}
