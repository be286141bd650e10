package exporter

import (
	"database/sql"
	"strconv"
	"strings"
)

// formatFloat formats an aggregate for tabular output with exactly 4 decimal
// places. Null values are written as an empty cell.
func formatFloat(v sql.NullFloat64) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Float64, 'f', 4, 64)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return strconv.Itoa(i)
}

// formatYears joins years with ';'
func formatYears(years []int) string {
	parts := make([]string, len(years))
	for i, y := range years {
		parts[i] = formatInt(y)
	}
	return strings.Join(parts, ";")
}
