package analytics

import (
	"database/sql"

	"hdicli/pkg/contracts/domain"
)

// CategoryColumn is the column appended to the classified table
const CategoryColumn = "hdi_category"

// TopColumns are the columns of the ranked most-recent-year subset
var TopColumns = []string{
	domain.ColumnMunicipality,
	domain.ColumnState,
	domain.ColumnHDI,
	domain.ColumnEducation,
	domain.ColumnLongevity,
	domain.ColumnIncome,
}

// Options tunes the engine
type Options struct {
	// TopN is the size of the most-recent-year ranking. Defaults to 10.
	TopN int
}

// GeneralStatistics summarises hdi over every row
type GeneralStatistics struct {
	Mean      sql.NullFloat64
	Median    sql.NullFloat64
	Max       sql.NullFloat64
	Min       sql.NullFloat64
	StdDev    sql.NullFloat64
	TotalRows int
	// Years lists distinct years in ascending order
	Years []int
}

// CategoryCount is the number of rows in one category
type CategoryCount struct {
	Category domain.Category
	Count    int
}

// StateStats aggregates most-recent-year hdi for one state
type StateStats struct {
	State  string
	Region domain.Region
	Mean   sql.NullFloat64
	Std    sql.NullFloat64
	Count  int
	Min    sql.NullFloat64
	Max    sql.NullFloat64
}

// RegionStats aggregates the state means of one region
type RegionStats struct {
	Region domain.Region
	Mean   sql.NullFloat64
	Std    sql.NullFloat64
	Count  int
}

// YearStats is mean hdi for one year
type YearStats struct {
	Year  int
	Mean  sql.NullFloat64
	Count int
}

// Components holds the sub-index means and correlations for the most recent year
type Components struct {
	EducationMean       sql.NullFloat64
	LongevityMean       sql.NullFloat64
	IncomeMean          sql.NullFloat64
	EducationIncomeCorr sql.NullFloat64
	LongevityIncomeCorr sql.NullFloat64
}

// Bundle is the complete result of one analysis
type Bundle struct {
	General GeneralStatistics

	// Classified is the input table; Categories[i] labels Classified.Row(i)
	Classified     domain.Table
	Categories     []domain.Category
	CategoryCounts []CategoryCount

	// LatestYear is valid only when HasLatestYear is true
	LatestYear    int
	HasLatestYear bool
	Recent        domain.Table
	// Top is the ranked subset of Recent, best first, at most TopN rows
	Top  domain.Table
	TopN int

	States     []StateStats
	Regions    []RegionStats
	Evolution  []YearStats
	Components Components

	// Issues lists statistics that could not be computed
	Issues []error
}
