// Package exporter renders the already-computed report tables to files.
//
// Nothing in this package recomputes or mutates pipeline data; every
// writer receives finished tables and serializes them. Each writer opens,
// writes and closes its own file, so a failure in one output never
// corrupts another that was already flushed.
//
// ExcelWriter: the multi-sheet report workbook (raw data, clean data, the
// three aggregate tables, metrics).
//
// TextWriter: the plain-text summary with key metrics and top-N tables.
//
// ChartWriter: the revenue-by-category bar chart and the daily-revenue
// time series as PNG images.
//
// CSVWriter: the clean table as a CSV audit export for downstream tooling.
//
// Monetary values are rendered with two decimal places everywhere via the
// shared format helpers.
package exporter
