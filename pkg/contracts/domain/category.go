package domain

import (
	"database/sql"
)

// Category is the development band of a composite HDI value
type Category string

const (
	CategoryVeryHigh Category = "Very High"
	CategoryHigh     Category = "High"
	CategoryMedium   Category = "Medium"
	CategoryLow      Category = "Low"
	CategoryMissing  Category = "Missing"
)

// categoryThreshold is an inclusive lower bound for a category
type categoryThreshold struct {
	min      float64
	category Category
}

// categoryThresholds is scanned in order; the first bound met wins
var categoryThresholds = []categoryThreshold{
	{min: 0.800, category: CategoryVeryHigh},
	{min: 0.700, category: CategoryHigh},
	{min: 0.550, category: CategoryMedium},
}

// Categories lists every category in priority order
var Categories = []Category{
	CategoryVeryHigh,
	CategoryHigh,
	CategoryMedium,
	CategoryLow,
	CategoryMissing,
}

// Classify returns the category of a composite HDI value
func Classify(hdi sql.NullFloat64) Category {
	if !hdi.Valid {
		return CategoryMissing
	}
	for _, t := range categoryThresholds {
		if hdi.Float64 >= t.min {
			return t.category
		}
	}
	return CategoryLow
}

// Priority returns the position of c in Categories, or len(Categories) if unknown
func (c Category) Priority() int {
	for i, known := range Categories {
		if known == c {
			return i
		}
	}
	return len(Categories)
}

// String implements fmt.Stringer
func (c Category) String() string {
	return string(c)
}
