// Package report renders an analysis bundle as a fixed-section text report.
package report

import (
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"hdicli/internal/analytics"
	"hdicli/pkg/contracts/domain"
)

// Title is the first line of every report
const Title = "HDI ANALYSIS REPORT"

// NotAvailable is printed in place of a null statistic
const NotAvailable = "n/a"

// Write renders b to w. The output holds no timestamps, so the same bundle
// always renders to the same bytes.
func Write(w io.Writer, b *analytics.Bundle) error {
	_, err := w.Write(Format(b))
	return err
}

// Format renders b
func Format(b *analytics.Bundle) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s\n", Title)
	fmt.Fprintf(&buf, "%s\n\n", strings.Repeat("=", 60))

	g := b.General
	fmt.Fprintf(&buf, "GENERAL INFORMATION:\n")
	fmt.Fprintf(&buf, "- Period analyzed: %s\n", period(g.Years))
	if b.HasLatestYear {
		fmt.Fprintf(&buf, "- Most recent year: %d\n", b.LatestYear)
	} else {
		fmt.Fprintf(&buf, "- Most recent year: %s\n", NotAvailable)
	}
	fmt.Fprintf(&buf, "- Total records: %d\n", g.TotalRows)
	fmt.Fprintf(&buf, "- National mean HDI: %s\n", fixed(g.Mean))
	fmt.Fprintf(&buf, "- Maximum HDI: %s\n", fixed(g.Max))
	fmt.Fprintf(&buf, "- Minimum HDI: %s\n\n", fixed(g.Min))

	fmt.Fprintf(&buf, "CATEGORY DISTRIBUTION:\n")
	for _, c := range b.CategoryCounts {
		percentage := 0.0
		if g.TotalRows > 0 {
			percentage = float64(c.Count) / float64(g.TotalRows) * 100
		}
		fmt.Fprintf(&buf, "- %s: %d municipalities (%.1f%%)\n", c.Category, c.Count, percentage)
	}
	fmt.Fprintf(&buf, "\n")

	fmt.Fprintf(&buf, "TOP %d MUNICIPALITIES BY HDI:\n", b.TopN)
	b.Top.Each(func(_ int, r domain.Record) {
		fmt.Fprintf(&buf, "- %s (%s): %s\n", r.Municipality, r.State, fixed(r.HDI))
	})
	fmt.Fprintf(&buf, "\n")

	fmt.Fprintf(&buf, "MEAN HDI BY REGION:\n")
	for _, r := range b.Regions {
		fmt.Fprintf(&buf, "- %s: %s\n", r.Region, fixed(r.Mean))
	}
	fmt.Fprintf(&buf, "\n")

	c := b.Components
	fmt.Fprintf(&buf, "HDI COMPONENTS (means):\n")
	fmt.Fprintf(&buf, "- Education (%s): %s\n", domain.ColumnEducation, fixed(c.EducationMean))
	fmt.Fprintf(&buf, "- Longevity (%s): %s\n", domain.ColumnLongevity, fixed(c.LongevityMean))
	fmt.Fprintf(&buf, "- Income (%s): %s\n", domain.ColumnIncome, fixed(c.IncomeMean))
	fmt.Fprintf(&buf, "- Education-Income correlation: %s\n", fixed(c.EducationIncomeCorr))
	fmt.Fprintf(&buf, "- Longevity-Income correlation: %s\n", fixed(c.LongevityIncomeCorr))

	return buf.Bytes()
}

func fixed(v sql.NullFloat64) string {
	if !v.Valid {
		return NotAvailable
	}
	return fmt.Sprintf("%.4f", v.Float64)
}

func period(years []int) string {
	if len(years) == 0 {
		return NotAvailable
	}
	return fmt.Sprintf("%d to %d", years[0], years[len(years)-1])
}
