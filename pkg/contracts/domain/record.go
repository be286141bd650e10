package domain

import (
	"database/sql"
	"strings"
)

// Canonical column names of an HDI dataset
const (
	ColumnMunicipality = "municipality"
	ColumnState        = "state"
	ColumnYear         = "year"
	ColumnHDI          = "hdi"
	ColumnEducation    = "hdi_education"
	ColumnLongevity    = "hdi_longevity"
	ColumnIncome       = "hdi_income"
)

// RequiredColumns lists the columns every input table must carry, in canonical order
var RequiredColumns = []string{
	ColumnMunicipality,
	ColumnState,
	ColumnYear,
	ColumnHDI,
	ColumnEducation,
	ColumnLongevity,
	ColumnIncome,
}

// nullTokens are the cell values read as a missing value
var nullTokens = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"NaN":  true,
	"nan":  true,
	"null": true,
	"None": true,
}

// IsNullToken reports whether the trimmed cell text denotes a missing value
func IsNullToken(s string) bool {
	return nullTokens[strings.TrimSpace(s)]
}

// Record is one municipality-year observation
type Record struct {
	Municipality string          `json:"municipality" db:"municipality"`
	State        string          `json:"state" db:"state"`
	Year         int             `json:"year" db:"year"`
	HDI          sql.NullFloat64 `json:"hdi" db:"hdi"`
	Education    sql.NullFloat64 `json:"hdi_education" db:"hdi_education"`
	Longevity    sql.NullFloat64 `json:"hdi_longevity" db:"hdi_longevity"`
	Income       sql.NullFloat64 `json:"hdi_income" db:"hdi_income"`

	// Raw holds the cell text of every input column, aligned with Table.Header
	Raw []string `json:"-" db:"-"`
}

// Clone returns a deep copy of the record
func (r Record) Clone() Record {
	if r.Raw != nil {
		raw := make([]string, len(r.Raw))
		copy(raw, r.Raw)
		r.Raw = raw
	}
	return r
}

// Cell returns the raw text for the column at index i, or "" if absent
func (r Record) Cell(i int) string {
	if i < 0 || i >= len(r.Raw) {
		return ""
	}
	return r.Raw[i]
}

// Table is an ordered, immutable sequence of records sharing one header.
// Every derivation returns a fresh Table; the receiver is never modified.
type Table struct {
	header []string
	rows   []Record
}

// NewTable builds a table from a header and its rows. Both are copied.
func NewTable(header []string, rows []Record) Table {
	h := make([]string, len(header))
	copy(h, header)

	rs := make([]Record, len(rows))
	for i, r := range rows {
		rs[i] = r.Clone()
	}
	return Table{header: h, rows: rs}
}

// Header returns a copy of the column names in input order
func (t Table) Header() []string {
	h := make([]string, len(t.header))
	copy(h, t.header)
	return h
}

// HasColumn reports whether the header contains name
func (t Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// ColumnIndex returns the position of name in the header, or -1
func (t Table) ColumnIndex(name string) int {
	for i, h := range t.header {
		if h == name {
			return i
		}
	}
	return -1
}

// Len returns the number of rows
func (t Table) Len() int {
	return len(t.rows)
}

// Row returns a copy of the i-th row
func (t Table) Row(i int) Record {
	return t.rows[i].Clone()
}

// Rows returns a copy of all rows
func (t Table) Rows() []Record {
	rs := make([]Record, len(t.rows))
	for i, r := range t.rows {
		rs[i] = r.Clone()
	}
	return rs
}

// Filter returns a new table holding the rows for which keep returns true,
// in their original order
func (t Table) Filter(keep func(Record) bool) Table {
	var kept []Record
	for _, r := range t.rows {
		if keep(r) {
			kept = append(kept, r)
		}
	}
	return NewTable(t.header, kept)
}

// Each calls fn for every row in order. fn receives a copy.
func (t Table) Each(fn func(i int, r Record)) {
	for i, r := range t.rows {
		fn(i, r.Clone())
	}
}
