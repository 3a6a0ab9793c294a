// Package config loads and validates the application configuration and
// owns the output path layout for a report run.
//
// Configuration is merged from three sources, lowest to highest precedence:
// built-in defaults, an optional YAML config file, and SALESREPORT_*
// environment variables. Command-line flags are applied by the CLI on top
// of the loaded value.
//
// ReportPaths derives every output filename from a single run identifier
// (a UUID) so repeated runs against the same output directory never
// overwrite each other.
package config
