package dataprocessing

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	apperrors "hdicli/internal/errors"
	"hdicli/pkg/contracts/domain"
)

const utf8BOM = "\ufeff"

// headerAliases maps source column names onto canonical ones.
// Keys are lower-cased and trimmed.
var headerAliases = map[string]string{
	"município": domain.ColumnMunicipality,
	"municipio": domain.ColumnMunicipality,
	"uf":        domain.ColumnState,
	"ano":       domain.ColumnYear,
	"idhm":      domain.ColumnHDI,
	"idhm_e":    domain.ColumnEducation,
	"idhm_l":    domain.ColumnLongevity,
	"idhm_r":    domain.ColumnIncome,
}

// ReaderOptions configures table loading
type ReaderOptions struct {
	// Delimiter separates CSV fields. Defaults to ','.
	Delimiter rune
}

// Reader loads an HDI table from a delimited text file or an Excel workbook
type Reader struct {
	logger    *slog.Logger
	delimiter rune
}

// NewReader creates a table reader
func NewReader(logger *slog.Logger, opts ReaderOptions) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	return &Reader{logger: logger, delimiter: opts.Delimiter}
}

// DelimiterFromString returns the first rune of s, or ',' when s is empty
func DelimiterFromString(s string) rune {
	if s == "" {
		return ','
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

// Load reads the table at path, choosing the format by extension
func (r *Reader) Load(ctx context.Context, path string) (domain.Table, error) {
	r.logger.InfoContext(ctx, "Loading input table",
		slog.String("path", path))

	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readWorkbookRows(path)
	default:
		var f *os.File
		f, err = os.Open(path)
		if err != nil {
			return domain.Table{}, fmt.Errorf("failed to open input %s: %w", path, err)
		}
		defer f.Close()
		rows, err = r.readDelimitedRows(f)
	}
	if err != nil {
		return domain.Table{}, err
	}

	table, err := buildTable(rows)
	if err != nil {
		return domain.Table{}, err
	}

	LogSummary(ctx, r.logger, Summarize(table))
	return table, nil
}

// ReadCSV reads a delimited table from src
func (r *Reader) ReadCSV(src io.Reader) (domain.Table, error) {
	rows, err := r.readDelimitedRows(src)
	if err != nil {
		return domain.Table{}, err
	}
	return buildTable(rows)
}

func (r *Reader) readDelimitedRows(src io.Reader) ([][]string, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read input", err)
	}
	data = bytes.TrimPrefix(data, []byte(utf8BOM))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = r.delimiter
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError("malformed delimited input", err)
	}
	return rows, nil
}

// NormalizeHeader trims, lower-cases and resolves aliases for one column name
func NormalizeHeader(name string) string {
	key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, utf8BOM)))
	if canonical, ok := headerAliases[key]; ok {
		return canonical
	}
	return key
}

// buildTable converts raw rows (header first) into a typed table.
// Required columns that are absent are left for schema validation to report.
func buildTable(rows [][]string) (domain.Table, error) {
	if len(rows) == 0 {
		return domain.Table{}, apperrors.NewParsingError("input has no header row", nil)
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = NormalizeHeader(h)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		if _, seen := index[h]; !seen {
			index[h] = i
		}
	}

	records := make([]domain.Record, 0, len(rows)-1)
	for n, row := range rows[1:] {
		line := n + 2
		if isBlankRow(row) {
			continue
		}
		if len(row) > len(header) {
			return domain.Table{}, apperrors.NewParsingError(
				fmt.Sprintf("row %d has %d fields, header has %d", line, len(row), len(header)), nil).
				WithContext("row", line)
		}

		raw := make([]string, len(header))
		copy(raw, row)

		rec, err := parseRecord(raw, index, line)
		if err != nil {
			return domain.Table{}, err
		}
		records = append(records, rec)
	}

	return domain.NewTable(header, records), nil
}

func parseRecord(raw []string, index map[string]int, line int) (domain.Record, error) {
	rec := domain.Record{Raw: raw}
	cell := func(col string) (string, bool) {
		i, ok := index[col]
		if !ok {
			return "", false
		}
		return strings.TrimSpace(raw[i]), true
	}

	if v, ok := cell(domain.ColumnMunicipality); ok {
		rec.Municipality = v
	}
	if v, ok := cell(domain.ColumnState); ok {
		rec.State = v
	}
	if v, ok := cell(domain.ColumnYear); ok {
		year, err := parseYear(v)
		if err != nil {
			return rec, cellError(line, domain.ColumnYear, v, err)
		}
		rec.Year = year
	}

	numeric := []struct {
		col  string
		dest *sql.NullFloat64
	}{
		{domain.ColumnHDI, &rec.HDI},
		{domain.ColumnEducation, &rec.Education},
		{domain.ColumnLongevity, &rec.Longevity},
		{domain.ColumnIncome, &rec.Income},
	}
	for _, f := range numeric {
		v, ok := cell(f.col)
		if !ok {
			continue
		}
		value, err := ParseNullableFloat(v)
		if err != nil {
			return rec, cellError(line, f.col, v, err)
		}
		*f.dest = value
	}

	return rec, nil
}

// ParseNullableFloat parses a numeric cell. Null tokens yield an invalid NullFloat64.
func ParseNullableFloat(s string) (sql.NullFloat64, error) {
	s = strings.TrimSpace(s)
	if domain.IsNullToken(s) {
		return sql.NullFloat64{}, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return sql.NullFloat64{}, err
	}
	if math.IsNaN(f) {
		return sql.NullFloat64{}, nil
	}
	return sql.NullFloat64{Float64: f, Valid: true}, nil
}

// parseYear accepts integral values, including "2010.0" as written by spreadsheets
func parseYear(s string) (int, error) {
	if domain.IsNullToken(s) {
		return 0, fmt.Errorf("year is missing")
	}
	if y, err := strconv.Atoi(s); err == nil {
		return y, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("year %q is not an integer", s)
	}
	return int(f), nil
}

func cellError(line int, column, value string, cause error) *apperrors.AppError {
	return apperrors.NewParsingError(
		fmt.Sprintf("invalid value %q in column %s at row %d", value, column, line), cause).
		WithContext("row", line).
		WithContext("column", column)
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
