package analytics

import (
	"context"
	"database/sql"
	"log/slog"
	"sort"

	"hdicli/internal/config"
	apperrors "hdicli/internal/errors"
	"hdicli/pkg/contracts/domain"
)

// Engine computes the analysis bundle for an HDI table.
// It holds no state between calls and never modifies its input.
type Engine struct {
	logger *slog.Logger
	topN   int
}

// NewEngine creates an analysis engine
func NewEngine(logger *slog.Logger, opts Options) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.TopN <= 0 {
		opts.TopN = config.DefaultTopN
	}
	return &Engine{logger: logger, topN: opts.TopN}
}

// ValidateSchema returns a SCHEMA error naming every required column t lacks
func ValidateSchema(t domain.Table) error {
	var missing []string
	for _, col := range domain.RequiredColumns {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return apperrors.NewSchemaError(missing)
	}
	return nil
}

func hdiOf(r domain.Record) sql.NullFloat64       { return r.HDI }
func educationOf(r domain.Record) sql.NullFloat64 { return r.Education }
func longevityOf(r domain.Record) sql.NullFloat64 { return r.Longevity }
func incomeOf(r domain.Record) sql.NullFloat64    { return r.Income }

// Analyze runs every analysis over t
func (e *Engine) Analyze(ctx context.Context, t domain.Table) (*Bundle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateSchema(t); err != nil {
		e.logger.ErrorContext(ctx, "Input table failed schema validation",
			slog.String("error", err.Error()))
		return nil, err
	}

	e.logger.InfoContext(ctx, "Analyzing table",
		slog.Int("rows", t.Len()),
		slog.Int("top_n", e.topN))

	rows := t.Rows()
	bundle := &Bundle{
		General: generalStatistics(rows),
	}

	bundle.Classified = t
	bundle.Categories, bundle.CategoryCounts = categorize(rows)

	bundle.LatestYear, bundle.HasLatestYear = latestYear(rows)
	if bundle.HasLatestYear {
		latest := bundle.LatestYear
		bundle.Recent = t.Filter(func(r domain.Record) bool { return r.Year == latest })
	} else {
		bundle.Recent = domain.NewTable(t.Header(), nil)
	}
	recent := bundle.Recent.Rows()

	bundle.Top = domain.NewTable(t.Header(), TopN(recent, e.topN))
	bundle.TopN = e.topN
	bundle.States = byState(recent)
	bundle.Regions = byRegion(bundle.States)
	bundle.Evolution = evolution(rows)
	bundle.Components, bundle.Issues = components(recent)

	for _, issue := range bundle.Issues {
		e.logger.WarnContext(ctx, "Statistic omitted",
			slog.String("error", issue.Error()))
	}

	e.logger.InfoContext(ctx, "Analysis complete",
		slog.Int("latest_year", bundle.LatestYear),
		slog.Int("recent_rows", bundle.Recent.Len()),
		slog.Int("states", len(bundle.States)),
		slog.Int("regions", len(bundle.Regions)),
		slog.Int("issues", len(bundle.Issues)))

	return bundle, nil
}

func generalStatistics(rows []domain.Record) GeneralStatistics {
	s := Summarize(Values(rows, hdiOf))

	seen := make(map[int]bool)
	years := []int{}
	for _, r := range rows {
		if !seen[r.Year] {
			seen[r.Year] = true
			years = append(years, r.Year)
		}
	}
	sort.Ints(years)

	return GeneralStatistics{
		Mean:      s.Mean,
		Median:    s.Median,
		Max:       s.Max,
		Min:       s.Min,
		StdDev:    s.StdDev,
		TotalRows: len(rows),
		Years:     years,
	}
}

// categorize labels each row and counts the labels present, most frequent
// first with ties broken by category priority
func categorize(rows []domain.Record) ([]domain.Category, []CategoryCount) {
	labels := make([]domain.Category, len(rows))
	counts := make(map[domain.Category]int)
	for i, r := range rows {
		labels[i] = domain.Classify(r.HDI)
		counts[labels[i]]++
	}

	result := make([]CategoryCount, 0, len(counts))
	for _, c := range domain.Categories {
		if n := counts[c]; n > 0 {
			result = append(result, CategoryCount{Category: c, Count: n})
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return labels, result
}

func latestYear(rows []domain.Record) (int, bool) {
	if len(rows) == 0 {
		return 0, false
	}
	latest := rows[0].Year
	for _, r := range rows[1:] {
		if r.Year > latest {
			latest = r.Year
		}
	}
	return latest, true
}

// TopN returns up to n rows ordered by hdi descending. Rows with equal hdi
// keep their input order and null hdi sorts after every value.
func TopN(rows []domain.Record, n int) []domain.Record {
	ranked := make([]domain.Record, len(rows))
	copy(ranked, rows)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].HDI, ranked[j].HDI
		if a.Valid != b.Valid {
			return a.Valid
		}
		return a.Valid && a.Float64 > b.Float64
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func byState(rows []domain.Record) []StateStats {
	groups := make(map[string][]domain.Record)
	for _, r := range rows {
		groups[r.State] = append(groups[r.State], r)
	}

	states := make([]string, 0, len(groups))
	for s := range groups {
		states = append(states, s)
	}
	sort.Strings(states)

	result := make([]StateStats, 0, len(states))
	for _, state := range states {
		s := Summarize(Values(groups[state], hdiOf))
		result = append(result, StateStats{
			State:  state,
			Region: domain.RegionOf(state),
			Mean:   s.Mean,
			Std:    s.StdDev,
			Count:  s.N,
			Min:    s.Min,
			Max:    s.Max,
		})
	}
	return result
}

// byRegion aggregates state means. States without a mean are left out.
func byRegion(states []StateStats) []RegionStats {
	groups := make(map[domain.Region][]float64)
	for _, s := range states {
		if s.Mean.Valid {
			groups[s.Region] = append(groups[s.Region], s.Mean.Float64)
		}
	}

	regions := make([]domain.Region, 0, len(groups))
	for r := range groups {
		regions = append(regions, r)
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i] < regions[j] })

	result := make([]RegionStats, 0, len(regions))
	for _, region := range regions {
		means := groups[region]
		result = append(result, RegionStats{
			Region: region,
			Mean:   Mean(means),
			Std:    SampleStdDev(means),
			Count:  len(means),
		})
	}
	return result
}

func evolution(rows []domain.Record) []YearStats {
	groups := make(map[int][]domain.Record)
	for _, r := range rows {
		groups[r.Year] = append(groups[r.Year], r)
	}

	years := make([]int, 0, len(groups))
	for y := range groups {
		years = append(years, y)
	}
	sort.Ints(years)

	result := make([]YearStats, 0, len(years))
	for _, year := range years {
		xs := Values(groups[year], hdiOf)
		result = append(result, YearStats{
			Year:  year,
			Mean:  Mean(xs),
			Count: len(xs),
		})
	}
	return result
}

func column(rows []domain.Record, pick func(domain.Record) sql.NullFloat64) []sql.NullFloat64 {
	col := make([]sql.NullFloat64, len(rows))
	for i, r := range rows {
		col[i] = pick(r)
	}
	return col
}

func components(rows []domain.Record) (Components, []error) {
	c := Components{
		EducationMean: Mean(Values(rows, educationOf)),
		LongevityMean: Mean(Values(rows, longevityOf)),
		IncomeMean:    Mean(Values(rows, incomeOf)),
	}

	var issues []error
	income := column(rows, incomeOf)

	var n int
	c.EducationIncomeCorr, n = Pearson(column(rows, educationOf), income)
	if !c.EducationIncomeCorr.Valid {
		issues = append(issues, apperrors.NewInsufficientDataError("education-income correlation", n))
	}

	c.LongevityIncomeCorr, n = Pearson(column(rows, longevityOf), income)
	if !c.LongevityIncomeCorr.Valid {
		issues = append(issues, apperrors.NewInsufficientDataError("longevity-income correlation", n))
	}

	return c, issues
}
