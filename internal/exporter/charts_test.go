package exporter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesreport/internal/dataprocessing"
	"salesreport/internal/errors"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func requirePNG(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, pngMagic), "expected PNG magic bytes")
	assert.Greater(t, len(data), 1024, "rendered chart should not be trivially small")
}

func TestChartWriter_WriteCategoryBar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart_revenue_by_category.png")
	byCategory := []dataprocessing.GroupTotal{
		{Key: "Fruit", Total: 25},
		{Key: "Bakery", Total: 12},
		{Key: "Veg", Total: 8},
	}

	require.NoError(t, NewChartWriter(nil).WriteCategoryBar(path, byCategory))
	requirePNG(t, path)
}

func TestChartWriter_WriteCategoryBar_SingleEqualBars(t *testing.T) {
	// All bars equal would give a zero-delta y-range without the
	// explicit axis range
	path := filepath.Join(t.TempDir(), "chart.png")
	byCategory := []dataprocessing.GroupTotal{{Key: "Fruit", Total: 9}}

	require.NoError(t, NewChartWriter(nil).WriteCategoryBar(path, byCategory))
	requirePNG(t, path)
}

func TestChartWriter_WriteDailySeries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart_daily_revenue.png")
	byDay := []dataprocessing.GroupTotal{
		{Key: "2024-01-01", Total: 7},
		{Key: "2024-01-02", Total: 4},
		{Key: "2024-01-05", Total: 11},
	}

	require.NoError(t, NewChartWriter(nil).WriteDailySeries(path, byDay))
	requirePNG(t, path)
}

func TestChartWriter_WriteDailySeries_SingleDay(t *testing.T) {
	// One data point: the padded x-range keeps the renderer happy
	path := filepath.Join(t.TempDir(), "chart.png")
	byDay := []dataprocessing.GroupTotal{{Key: "2024-01-01", Total: 9}}

	require.NoError(t, NewChartWriter(nil).WriteDailySeries(path, byDay))
	requirePNG(t, path)
}

func TestChartWriter_WriteDailySeries_BadDayKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")
	byDay := []dataprocessing.GroupTotal{{Key: "not-a-date", Total: 9}}

	err := NewChartWriter(nil).WriteDailySeries(path, byDay)

	require.Error(t, err)
	assert.True(t, errors.IsExportError(err))
	assert.NoFileExists(t, path)
}

func TestChartWriter_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "chart.png")

	err := NewChartWriter(nil).WriteCategoryBar(path, []dataprocessing.GroupTotal{{Key: "Fruit", Total: 9}})

	require.Error(t, err)
	assert.True(t, errors.IsExportError(err))
}
