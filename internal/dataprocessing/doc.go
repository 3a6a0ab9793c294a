// Package dataprocessing implements the core sales pipeline: loading the
// raw CSV, cleaning and validating it, and aggregating the clean table
// into grouped revenue views and summary metrics.
//
// The pipeline is a one-way transformation executed in three stages:
//
// Loader: reads the input file fully into a RawTable and closes it before
// any processing starts.
//
// Cleaner: enforces the required schema, coerces each value with
// per-value error tolerance, drops rows with missing or rule-violating
// values and computes the derived total and month fields. Zero surviving
// rows is fatal.
//
// Aggregator: pure computation of the by-category, by-product and by-day
// revenue tables plus the Metrics record. Ties on equal revenue keep
// first-seen input order; tied best/worst days resolve to the earliest
// date.
//
// Example usage:
//
//	loader := dataprocessing.NewLoader(logger)
//	table, err := loader.Load(ctx, "sales.csv")
//	if err != nil {
//		return err
//	}
//
//	cleaner := dataprocessing.NewCleaner(logger, dataprocessing.CleanerConfig{})
//	clean, err := cleaner.Clean(ctx, table)
//	if err != nil {
//		return err
//	}
//
//	agg := dataprocessing.NewAggregator(logger).Aggregate(ctx, clean)
package dataprocessing
