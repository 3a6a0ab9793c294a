package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ReportPaths is the single source of truth for every file a run writes.
// All output filenames carry the run identifier so repeated executions
// never collide.
type ReportPaths struct {
	OutputDir string
	RunID     string

	Workbook      string
	TextSummary   string
	CategoryChart string
	DailyChart    string
	CleanCSV      string
	LogFile       string
}

// NewReportPaths allocates the output paths for a fresh run identifier
func NewReportPaths(outputDir string) *ReportPaths {
	runID := uuid.NewString()
	return &ReportPaths{
		OutputDir: outputDir,
		RunID:     runID,

		Workbook:      filepath.Join(outputDir, fmt.Sprintf("sales_report_%s.xlsx", runID)),
		TextSummary:   filepath.Join(outputDir, fmt.Sprintf("sales_report_%s.txt", runID)),
		CategoryChart: filepath.Join(outputDir, fmt.Sprintf("chart_revenue_by_category_%s.png", runID)),
		DailyChart:    filepath.Join(outputDir, fmt.Sprintf("chart_daily_revenue_%s.png", runID)),
		CleanCSV:      filepath.Join(outputDir, fmt.Sprintf("clean_data_%s.csv", runID)),
		LogFile:       filepath.Join(outputDir, fmt.Sprintf("run_%s.log", runID)),
	}
}

// EnsureDir creates the output directory if it does not exist
func (p *ReportPaths) EnsureDir() error {
	if err := os.MkdirAll(p.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", p.OutputDir, err)
	}
	return nil
}

// ReportFiles lists the summary outputs of a completed run (everything
// except the log file), in the order they are written.
func (p *ReportPaths) ReportFiles() []string {
	return []string{
		p.Workbook,
		p.TextSummary,
		p.CategoryChart,
		p.DailyChart,
		p.CleanCSV,
	}
}
