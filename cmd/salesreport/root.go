package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile is the path to an optional YAML config file (--config)
var cfgFile string

// verbose raises the console log level to full progress output
var verbose bool

// rootCmd is the base command all subcommands attach to
var rootCmd = &cobra.Command{
	Use:   "salesreport",
	Short: "Generate a sales report from a transaction CSV",
	Long: `salesreport ingests a sales transaction CSV, validates and cleans it,
computes aggregate business metrics and writes a multi-sheet spreadsheet,
a text summary, revenue charts and a run log to the output directory.

Example usage:
  salesreport generate --input data/sales.csv
  salesreport generate -i sales.csv -o reports --date-format 2006-01-02
  salesreport generate -i sales.csv --verbose`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// execute runs the root command; fatal errors exit non-zero
func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"path to a YAML config file (default config.yaml if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"show progress output on the console")
}
