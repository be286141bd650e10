package exporter

import (
	"hdicli/internal/analytics"
	"hdicli/internal/config"
	"hdicli/pkg/contracts/domain"
)

// DerivedTable is one output table in string form
type DerivedTable struct {
	// Name identifies the table in workbooks and databases
	Name string
	// FileName is the delimited-text file the table is written to
	FileName string
	Headers  []string
	Rows     [][]string
	// TextColumns are stored as text even when every cell looks numeric
	TextColumns []string
}

func (t DerivedTable) isText(col int) bool {
	for _, name := range t.TextColumns {
		if name == t.Headers[col] {
			return true
		}
	}
	return false
}

// BuildTables converts b into its derived tables, in a fixed order.
// Row subsets of the input keep their raw cell text; aggregates use 4 decimals.
func BuildTables(b *analytics.Bundle) []DerivedTable {
	return []DerivedTable{
		classifiedTable(b),
		rawTable("most_recent_year", config.MostRecentYearCSV, b.Recent),
		generalTable(b),
		categoryTable(b),
		topTable(b),
		stateTable(b),
		regionTable(b),
		evolutionTable(b),
		componentsTable(b),
	}
}

func rawRows(t domain.Table) [][]string {
	rows := make([][]string, 0, t.Len())
	t.Each(func(_ int, r domain.Record) {
		rows = append(rows, r.Raw)
	})
	return rows
}

func rawTable(name, file string, t domain.Table) DerivedTable {
	return DerivedTable{
		Name:     name,
		FileName: file,
		Headers:  t.Header(),
		Rows:     rawRows(t),
	}
}

func classifiedTable(b *analytics.Bundle) DerivedTable {
	table := rawTable("classified", config.ClassifiedCSV, b.Classified)
	table.Headers = append(table.Headers, analytics.CategoryColumn)
	for i := range table.Rows {
		table.Rows[i] = append(table.Rows[i], b.Categories[i].String())
	}
	return table
}

func generalTable(b *analytics.Bundle) DerivedTable {
	g := b.General
	return DerivedTable{
		Name:     "general_statistics",
		FileName: config.GeneralStatisticsCSV,
		Headers:  []string{"mean_hdi", "median_hdi", "max_hdi", "min_hdi", "std_hdi", "total_rows", "years"},
		Rows: [][]string{{
			formatFloat(g.Mean),
			formatFloat(g.Median),
			formatFloat(g.Max),
			formatFloat(g.Min),
			formatFloat(g.StdDev),
			formatInt(g.TotalRows),
			formatYears(g.Years),
		}},
		TextColumns: []string{"years"},
	}
}

func categoryTable(b *analytics.Bundle) DerivedTable {
	rows := make([][]string, 0, len(b.CategoryCounts))
	for _, c := range b.CategoryCounts {
		rows = append(rows, []string{c.Category.String(), formatInt(c.Count)})
	}
	return DerivedTable{
		Name:     "category_distribution",
		FileName: config.CategoryDistributionCSV,
		Headers:  []string{"Category", "Quantity"},
		Rows:     rows,
	}
}

// topTable projects the ranked rows onto analytics.TopColumns
func topTable(b *analytics.Bundle) DerivedTable {
	index := make([]int, len(analytics.TopColumns))
	for i, col := range analytics.TopColumns {
		index[i] = b.Top.ColumnIndex(col)
	}

	rows := make([][]string, 0, b.Top.Len())
	b.Top.Each(func(_ int, r domain.Record) {
		row := make([]string, len(index))
		for i, idx := range index {
			row[i] = r.Cell(idx)
		}
		rows = append(rows, row)
	})

	headers := make([]string, len(analytics.TopColumns))
	copy(headers, analytics.TopColumns)
	return DerivedTable{
		Name:     "top_municipalities",
		FileName: config.TopMunicipalitiesCSV,
		Headers:  headers,
		Rows:     rows,
	}
}

func stateTable(b *analytics.Bundle) DerivedTable {
	rows := make([][]string, 0, len(b.States))
	for _, s := range b.States {
		rows = append(rows, []string{
			s.State,
			formatFloat(s.Mean),
			formatFloat(s.Std),
			formatInt(s.Count),
			formatFloat(s.Min),
			formatFloat(s.Max),
			s.Region.String(),
		})
	}
	return DerivedTable{
		Name:     "by_state",
		FileName: config.ByStateCSV,
		Headers:  []string{"state", "mean", "std", "count", "min", "max", "region"},
		Rows:     rows,
	}
}

func regionTable(b *analytics.Bundle) DerivedTable {
	rows := make([][]string, 0, len(b.Regions))
	for _, r := range b.Regions {
		rows = append(rows, []string{
			r.Region.String(),
			formatFloat(r.Mean),
			formatFloat(r.Std),
			formatInt(r.Count),
		})
	}
	return DerivedTable{
		Name:     "by_region",
		FileName: config.ByRegionCSV,
		Headers:  []string{"region", "mean", "std", "count"},
		Rows:     rows,
	}
}

func evolutionTable(b *analytics.Bundle) DerivedTable {
	rows := make([][]string, 0, len(b.Evolution))
	for _, y := range b.Evolution {
		rows = append(rows, []string{formatInt(y.Year), formatFloat(y.Mean), formatInt(y.Count)})
	}
	return DerivedTable{
		Name:     "evolution",
		FileName: config.EvolutionCSV,
		Headers:  []string{"year", "mean", "count"},
		Rows:     rows,
	}
}

func componentsTable(b *analytics.Bundle) DerivedTable {
	c := b.Components
	return DerivedTable{
		Name:     "components",
		FileName: config.ComponentsCSV,
		Headers: []string{
			"hdi_education_mean",
			"hdi_longevity_mean",
			"hdi_income_mean",
			"education_income_correlation",
			"longevity_income_correlation",
		},
		Rows: [][]string{{
			formatFloat(c.EducationMean),
			formatFloat(c.LongevityMean),
			formatFloat(c.IncomeMean),
			formatFloat(c.EducationIncomeCorr),
			formatFloat(c.LongevityIncomeCorr),
		}},
	}
}
