package report

import (
	"context"
	"log/slog"
	"time"

	"salesreport/internal/config"
	"salesreport/internal/dataprocessing"
	"salesreport/internal/errors"
	"salesreport/internal/exporter"
	"salesreport/internal/infrastructure"
)

// Service orchestrates one complete report run:
// load -> clean -> aggregate -> export. Each run is an independent,
// synchronous batch computation with its own run identifier and log file.
type Service struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewService creates the report service. logger is the console logger used
// until the run's own dual-sink logger exists; nil falls back to
// slog.Default().
func NewService(cfg *config.Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{cfg: cfg, logger: logger}
}

// RunResult carries the resolved output paths and row counts of a
// completed run.
type RunResult struct {
	RunID       string
	Paths       *config.ReportPaths
	RawRows     int
	CleanRows   int
	RemovedRows int
	Metrics     dataprocessing.Metrics
}

// Run executes the pipeline once. Fatal taxonomy errors abort immediately
// with no summary outputs written; the run log, if it was created,
// documents the failure point.
func (s *Service) Run(ctx context.Context) (*RunResult, error) {
	if s.cfg.Input == "" {
		return nil, errors.NewConfigError("no input CSV configured: set input in the config file, SALESREPORT_INPUT, or --input", nil)
	}

	paths := config.NewReportPaths(s.cfg.OutputDir)
	if err := paths.EnsureDir(); err != nil {
		return nil, errors.NewExportError(s.cfg.OutputDir, err)
	}

	logger, closeLog, err := infrastructure.NewRunLogger(paths.LogFile, s.cfg.Verbose)
	if err != nil {
		return nil, errors.NewExportError(paths.LogFile, err)
	}
	defer closeLog()
	logger = logger.With(slog.String("run_id", paths.RunID))

	started := time.Now()
	logger.Info("starting report run",
		slog.String("input", s.cfg.Input),
		slog.String("output_dir", s.cfg.OutputDir),
		slog.String("date_format", s.cfg.DateFormat))

	table, err := dataprocessing.NewLoader(logger).Load(ctx, s.cfg.Input)
	if err != nil {
		return nil, s.fail(logger, "load", err)
	}

	cleaner := dataprocessing.NewCleaner(logger, dataprocessing.CleanerConfig{
		DateFormat: s.cfg.DateFormat,
	})
	clean, err := cleaner.Clean(ctx, table)
	if err != nil {
		return nil, s.fail(logger, "clean", err)
	}

	agg := dataprocessing.NewAggregator(logger).Aggregate(ctx, clean)

	if err := s.export(logger, paths, table, clean, agg); err != nil {
		return nil, s.fail(logger, "export", err)
	}

	result := &RunResult{
		RunID:       paths.RunID,
		Paths:       paths,
		RawRows:     len(table.Rows),
		CleanRows:   len(clean),
		RemovedRows: len(table.Rows) - len(clean),
		Metrics:     agg.Metrics,
	}

	logger.Info("report run complete",
		slog.Int("raw_rows", result.RawRows),
		slog.Int("clean_rows", result.CleanRows),
		slog.Int("removed_rows", result.RemovedRows),
		slog.Duration("elapsed", time.Since(started)))

	return result, nil
}

// export writes every output file. Writers run in a fixed order and each
// closes its own file, so an earlier flushed output survives a later
// failure.
func (s *Service) export(logger *slog.Logger, paths *config.ReportPaths,
	table *dataprocessing.RawTable, clean []dataprocessing.CleanRecord,
	agg dataprocessing.Aggregation) error {

	if err := exporter.NewExcelWriter(logger).
		WriteWorkbook(paths.Workbook, table, clean, agg); err != nil {
		return err
	}

	meta := exporter.RunMeta{
		RunID:       paths.RunID,
		SourceFile:  s.cfg.Input,
		GeneratedAt: time.Now(),
	}
	if err := exporter.NewTextWriter(logger, s.cfg.TopN).
		WriteSummary(paths.TextSummary, meta, agg); err != nil {
		return err
	}

	charts := exporter.NewChartWriter(logger)
	if err := charts.WriteCategoryBar(paths.CategoryChart, agg.ByCategory); err != nil {
		return err
	}
	if err := charts.WriteDailySeries(paths.DailyChart, agg.ByDay); err != nil {
		return err
	}

	return exporter.NewCSVWriter(logger).WriteCleanData(paths.CleanCSV, clean)
}

// fail records the failure point in the run log before propagating
func (s *Service) fail(logger *slog.Logger, stage string, err error) error {
	logger.Error("report run failed",
		slog.String("stage", stage),
		slog.String("error", err.Error()))
	return err
}
