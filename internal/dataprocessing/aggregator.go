package dataprocessing

import (
	"context"
	"log/slog"
	"sort"
)

// Aggregator computes the grouped revenue tables and the flat metrics
// record from a clean table. All methods are pure: the input is never
// mutated and the same input always yields the same output.
//
// Tie-break rule: by-category and by-product tables are sorted with a
// stable sort, so groups with equal totals keep their first-seen input
// order. Best/worst day ties resolve to the earliest date.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates a new Aggregator
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger}
}

// Aggregate computes the three grouped tables and the metrics record.
// The clean table is assumed non-empty (the Cleaner guarantees it); an
// empty input yields zero totals and absent optional metrics rather than
// an error.
func (a *Aggregator) Aggregate(ctx context.Context, records []CleanRecord) Aggregation {
	byCategory := groupTotals(records, func(r CleanRecord) string { return r.Category })
	byProduct := groupTotals(records, func(r CleanRecord) string { return r.Product })
	byDay := groupTotals(records, func(r CleanRecord) string { return r.Date.Format("2006-01-02") })

	// Revenue tables descending, stable on first-seen order for ties
	sort.SliceStable(byCategory, func(i, j int) bool { return byCategory[i].Total > byCategory[j].Total })
	sort.SliceStable(byProduct, func(i, j int) bool { return byProduct[i].Total > byProduct[j].Total })
	// Daily table chronological; ISO date keys sort lexicographically
	sort.Slice(byDay, func(i, j int) bool { return byDay[i].Key < byDay[j].Key })

	agg := Aggregation{
		Metrics:    computeMetrics(records, byCategory, byProduct, byDay),
		ByCategory: byCategory,
		ByProduct:  byProduct,
		ByDay:      byDay,
	}

	a.logger.Info("aggregation complete",
		slog.Int("categories", len(byCategory)),
		slog.Int("products", len(byProduct)),
		slog.Int("days", len(byDay)),
		slog.Float64("total_revenue", agg.Metrics.TotalRevenue))

	return agg
}

// groupTotals sums Total per group key, preserving first-seen key order
func groupTotals(records []CleanRecord, key func(CleanRecord) string) []GroupTotal {
	index := make(map[string]int, len(records))
	totals := make([]GroupTotal, 0, len(records))
	for _, r := range records {
		k := key(r)
		i, seen := index[k]
		if !seen {
			index[k] = len(totals)
			totals = append(totals, GroupTotal{Key: k})
			i = len(totals) - 1
		}
		totals[i].Total += r.Total
	}
	return totals
}

// computeMetrics derives the flat summary record from the ungrouped clean
// table and the already-sorted aggregate tables
func computeMetrics(records []CleanRecord, byCategory, byProduct, byDay []GroupTotal) Metrics {
	var m Metrics

	for _, r := range records {
		m.TotalRevenue += r.Total
		m.TotalUnits += r.Quantity
	}

	if m.TotalUnits > 0 {
		avg := m.TotalRevenue / m.TotalUnits
		m.AvgTicket = &avg
	}

	// Tables are sorted descending, so the first row is the top group
	if len(byProduct) > 0 {
		top := byProduct[0].Key
		m.TopProduct = &top
	}
	if len(byCategory) > 0 {
		top := byCategory[0].Key
		m.TopCategory = &top
	}

	// byDay is chronological; strict comparisons make the earliest date
	// win on tied totals
	if len(byDay) > 0 {
		best, worst := byDay[0], byDay[0]
		for _, day := range byDay[1:] {
			if day.Total > best.Total {
				best = day
			}
			if day.Total < worst.Total {
				worst = day
			}
		}
		m.BestDay = &best.Key
		m.WorstDay = &worst.Key
	}

	// Extremes over per-row totals, not the grouped tables
	if len(records) > 0 {
		maxTotal, minTotal := records[0].Total, records[0].Total
		for _, r := range records[1:] {
			if r.Total > maxTotal {
				maxTotal = r.Total
			}
			if r.Total < minTotal {
				minTotal = r.Total
			}
		}
		m.MaxSaleRowTotal = &maxTotal
		m.MinSaleRowTotal = &minTotal
	}

	return m
}
