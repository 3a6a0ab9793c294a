package exporter

import (
	"fmt"
	"strconv"
)

const absentValue = "n/a"

// formatMoney formats a monetary value with exactly 2 decimal places so
// values like 13.4 appear as 13.40 in every output
func formatMoney(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatQuantity formats a quantity without padding; whole quantities
// render without a decimal point
func formatQuantity(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatOptionalMoney renders an absent monetary metric as n/a
func formatOptionalMoney(f *float64) string {
	if f == nil {
		return absentValue
	}
	return formatMoney(*f)
}

// formatOptionalString renders an absent string metric as n/a
func formatOptionalString(s *string) string {
	if s == nil {
		return absentValue
	}
	return *s
}
