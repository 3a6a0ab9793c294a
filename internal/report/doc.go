// Package report wires the pipeline stages and exporters into a single
// report run.
//
// Service.Run resolves the output paths for a fresh run identifier,
// builds the run's dual-sink logger, executes load -> clean -> aggregate
// and writes every output file. Fatal errors abort the run with no
// summary outputs; the run log documents the failure point.
package report
