package analytics

import (
	"database/sql"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"hdicli/pkg/contracts/domain"
)

// Summary holds null-aware reductions of one numeric column
type Summary struct {
	Mean   sql.NullFloat64
	Median sql.NullFloat64
	Max    sql.NullFloat64
	Min    sql.NullFloat64
	StdDev sql.NullFloat64
	// N is the number of non-null values
	N int
}

func valid(f float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: f, Valid: true}
}

// Values returns the non-null values picked from records, in order
func Values(records []domain.Record, pick func(domain.Record) sql.NullFloat64) []float64 {
	xs := make([]float64, 0, len(records))
	for _, r := range records {
		if v := pick(r); v.Valid {
			xs = append(xs, v.Float64)
		}
	}
	return xs
}

// Summarize reduces xs. Every statistic is null when xs is empty.
// StdDev is the population standard deviation.
func Summarize(xs []float64) Summary {
	s := Summary{N: len(xs)}
	if len(xs) == 0 {
		return s
	}

	s.Mean = valid(stat.Mean(xs, nil))
	s.StdDev = valid(stat.PopStdDev(xs, nil))
	s.Max = valid(floats.Max(xs))
	s.Min = valid(floats.Min(xs))
	s.Median = Median(xs)
	return s
}

// SampleStdDev returns the sample standard deviation of xs, or null with
// fewer than two values
func SampleStdDev(xs []float64) sql.NullFloat64 {
	if len(xs) < 2 {
		return sql.NullFloat64{}
	}
	return valid(stat.StdDev(xs, nil))
}

// Mean returns the arithmetic mean of xs, or null when xs is empty
func Mean(xs []float64) sql.NullFloat64 {
	if len(xs) == 0 {
		return sql.NullFloat64{}
	}
	return valid(stat.Mean(xs, nil))
}

// Median returns the middle value of xs, or the midpoint of the two middle
// values for an even count. xs is not modified.
func Median(xs []float64) sql.NullFloat64 {
	n := len(xs)
	if n == 0 {
		return sql.NullFloat64{}
	}
	sorted := make([]float64, n)
	copy(sorted, xs)
	sort.Float64s(sorted)

	if n%2 == 1 {
		return valid(sorted[n/2])
	}
	return valid((sorted[n/2-1] + sorted[n/2]) / 2)
}

// Pearson returns the correlation over positions where both x and y are
// present, and the number of such pairs. The result is null with fewer
// than two pairs or when either side is constant.
func Pearson(x, y []sql.NullFloat64) (sql.NullFloat64, int) {
	var xs, ys []float64
	for i := range x {
		if i >= len(y) {
			break
		}
		if x[i].Valid && y[i].Valid {
			xs = append(xs, x[i].Float64)
			ys = append(ys, y[i].Float64)
		}
	}

	n := len(xs)
	if n < 2 {
		return sql.NullFloat64{}, n
	}
	if floats.Max(xs) == floats.Min(xs) || floats.Max(ys) == floats.Min(ys) {
		return sql.NullFloat64{}, n
	}
	return valid(stat.Correlation(xs, ys, nil)), n
}
