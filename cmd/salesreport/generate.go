package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"salesreport/internal/config"
	"salesreport/internal/infrastructure"
	"salesreport/internal/report"
)

var (
	inputFlag      string
	outputDirFlag  string
	dateFormatFlag string
)

// generateCmd runs the pipeline once: load, clean, aggregate, export
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run the report pipeline once",
	Long: `Read the input CSV, clean and validate it, compute aggregate metrics
and write the report files to the output directory. Every output filename
carries a fresh run identifier, so repeated runs never collide.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		logger := infrastructure.NewConsoleLogger(cfg.Verbose)
		result, err := report.NewService(cfg, logger).Run(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Report generated (run %s):\n", result.RunID)
		for _, path := range result.Paths.ReportFiles() {
			fmt.Printf("  %s\n", path)
		}
		fmt.Printf("Rows: %d read, %d clean, %d removed\n",
			result.RawRows, result.CleanRows, result.RemovedRows)
		return nil
	},
}

// loadConfig merges the config file, environment and command-line flags
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	// Flags take precedence over file and environment when set
	if cmd.Flags().Changed("input") {
		cfg.Input = inputFlag
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputDir = outputDirFlag
	}
	if cmd.Flags().Changed("date-format") {
		cfg.DateFormat = dateFormatFlag
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = verbose
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func init() {
	generateCmd.Flags().StringVarP(&inputFlag, "input", "i", "",
		"path to the sales transaction CSV")
	generateCmd.Flags().StringVarP(&outputDirFlag, "output", "o", "reports",
		"directory the report files are written to")
	generateCmd.Flags().StringVar(&dateFormatFlag, "date-format", "",
		"strict date layout in Go reference time (e.g. 2006-01-02); empty enables permissive parsing")

	rootCmd.AddCommand(generateCmd)
}
