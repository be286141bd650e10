package domain

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hdi(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: true}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		value sql.NullFloat64
		want  Category
	}{
		{"null", sql.NullFloat64{}, CategoryMissing},
		{"one", hdi(1.0), CategoryVeryHigh},
		{"very high boundary", hdi(0.800), CategoryVeryHigh},
		{"just below very high", hdi(0.7999), CategoryHigh},
		{"high boundary", hdi(0.700), CategoryHigh},
		{"just below high", hdi(0.6999), CategoryMedium},
		{"medium boundary", hdi(0.550), CategoryMedium},
		{"just below medium", hdi(0.5499), CategoryLow},
		{"zero", hdi(0), CategoryLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.value))
		})
	}
}

func TestCategoryPriority(t *testing.T) {
	for i, c := range Categories {
		assert.Equal(t, i, c.Priority())
	}
	assert.Equal(t, len(Categories), Category("Unknown").Priority())
}

func TestRegionOf(t *testing.T) {
	tests := []struct {
		state string
		want  Region
	}{
		{"AM", RegionNorth},
		{"TO", RegionNorth},
		{"BA", RegionNortheast},
		{"SE", RegionNortheast},
		{"DF", RegionCentralWest},
		{"MS", RegionCentralWest},
		{"SP", RegionSoutheast},
		{"ES", RegionSoutheast},
		{"SC", RegionSouth},
		{"ZZ", RegionOther},
		{"", RegionOther},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			assert.Equal(t, tt.want, RegionOf(tt.state))
		})
	}
}

func TestRegionTableCoversAllStates(t *testing.T) {
	counts := make(map[Region]int)
	for _, r := range stateRegions {
		counts[r]++
	}
	assert.Equal(t, 27, len(stateRegions))
	assert.Equal(t, 7, counts[RegionNorth])
	assert.Equal(t, 9, counts[RegionNortheast])
	assert.Equal(t, 4, counts[RegionCentralWest])
	assert.Equal(t, 4, counts[RegionSoutheast])
	assert.Equal(t, 3, counts[RegionSouth])
}

func TestTableIsImmutable(t *testing.T) {
	header := []string{"municipality", "state"}
	rows := []Record{
		{Municipality: "A", State: "SP", Raw: []string{"A", "SP"}},
		{Municipality: "B", State: "RJ", Raw: []string{"B", "RJ"}},
	}
	table := NewTable(header, rows)

	// Mutating the inputs does not reach the table
	header[0] = "changed"
	rows[0].Raw[0] = "changed"
	assert.Equal(t, "municipality", table.Header()[0])
	assert.Equal(t, "A", table.Row(0).Cell(0))

	// Mutating returned copies does not reach the table
	got := table.Rows()
	got[1].Municipality = "Z"
	got[1].Raw[1] = "ZZ"
	assert.Equal(t, "B", table.Row(1).Municipality)
	assert.Equal(t, "RJ", table.Row(1).Cell(1))
}

func TestTableFilter(t *testing.T) {
	table := NewTable([]string{"year"}, []Record{
		{Year: 2010}, {Year: 2000}, {Year: 2010},
	})

	filtered := table.Filter(func(r Record) bool { return r.Year == 2010 })
	require.Equal(t, 2, filtered.Len())
	assert.Equal(t, 3, table.Len())
	assert.True(t, filtered.HasColumn("year"))
	assert.False(t, filtered.HasColumn("hdi"))
	assert.Equal(t, -1, filtered.ColumnIndex("hdi"))
	assert.Equal(t, "", filtered.Row(0).Cell(4))
}

func TestIsNullToken(t *testing.T) {
	for _, s := range []string{"", "NA", "N/A", "NaN", "nan", "null", "None", "  NA "} {
		assert.True(t, IsNullToken(s), "%q", s)
	}
	for _, s := range []string{"0", "0.5", "na", "RO", "-"} {
		assert.False(t, IsNullToken(s), "%q", s)
	}
}
