// Package analytics computes the HDI analysis bundle from a loaded table.
//
// The engine classifies every row, summarises hdi over all rows, ranks the
// most recent year, aggregates that year by state and by region, tracks the
// yearly mean and correlates the sub-indices. Null hdi values are kept as rows
// (category Missing) but skipped by every numeric reduction. Standard
// deviations are population standard deviations.
//
// A statistic that cannot be computed is left null and an INSUFFICIENT_DATA
// error is appended to Bundle.Issues; the rest of the bundle is unaffected.
package analytics
