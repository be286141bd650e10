package dataprocessing

import (
	"context"
	"log/slog"

	"hdicli/pkg/contracts/domain"
)

// InputSummary describes a loaded table
type InputSummary struct {
	Rows    int
	Columns int
	// Nulls counts missing values per required column present in the table
	Nulls map[string]int
}

// Summarize counts rows, columns and missing values of t
func Summarize(t domain.Table) InputSummary {
	summary := InputSummary{
		Rows:    t.Len(),
		Columns: len(t.Header()),
		Nulls:   make(map[string]int),
	}

	for _, col := range domain.RequiredColumns {
		idx := t.ColumnIndex(col)
		if idx < 0 {
			continue
		}
		summary.Nulls[col] = 0
		t.Each(func(_ int, r domain.Record) {
			missing := false
			switch col {
			case domain.ColumnHDI:
				missing = !r.HDI.Valid
			case domain.ColumnEducation:
				missing = !r.Education.Valid
			case domain.ColumnLongevity:
				missing = !r.Longevity.Valid
			case domain.ColumnIncome:
				missing = !r.Income.Valid
			default:
				missing = domain.IsNullToken(r.Cell(idx))
			}
			if missing {
				summary.Nulls[col]++
			}
		})
	}

	return summary
}

// LogSummary writes summary at info level
func LogSummary(ctx context.Context, logger *slog.Logger, summary InputSummary) {
	attrs := make([]any, 0, len(domain.RequiredColumns))
	for _, col := range domain.RequiredColumns {
		if n, ok := summary.Nulls[col]; ok {
			attrs = append(attrs, slog.Int(col, n))
		}
	}

	logger.InfoContext(ctx, "Input table loaded",
		slog.Int("rows", summary.Rows),
		slog.Int("columns", summary.Columns),
		slog.Group("nulls", attrs...))
}
