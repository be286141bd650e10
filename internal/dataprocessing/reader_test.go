package dataprocessing

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "hdicli/internal/errors"
	"hdicli/pkg/contracts/domain"
)

const sampleCSV = `municipality,state,year,hdi,hdi_education,hdi_longevity,hdi_income
Alta Floresta D'Oeste,RO,2010,0.641,0.526,0.763,0.657
Ariquemes,RO,2010,0.702,0.600,0.806,0.716
Cabixi,RO,2010,NA,0.559,,0.650
`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestNewReader(t *testing.T) {
	reader := NewReader(nil, ReaderOptions{})
	assert.NotNil(t, reader.logger)
	assert.Equal(t, ',', reader.delimiter)

	reader = NewReader(testLogger(), ReaderOptions{Delimiter: ';'})
	assert.Equal(t, ';', reader.delimiter)
}

func TestDelimiterFromString(t *testing.T) {
	assert.Equal(t, ',', DelimiterFromString(""))
	assert.Equal(t, ';', DelimiterFromString(";"))
	assert.Equal(t, '\t', DelimiterFromString("\t"))
}

func TestReadCSV(t *testing.T) {
	reader := NewReader(testLogger(), ReaderOptions{})

	table, err := reader.ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())
	assert.Equal(t, domain.RequiredColumns, table.Header())

	first := table.Row(0)
	assert.Equal(t, "Alta Floresta D'Oeste", first.Municipality)
	assert.Equal(t, "RO", first.State)
	assert.Equal(t, 2010, first.Year)
	assert.True(t, first.HDI.Valid)
	assert.InDelta(t, 0.641, first.HDI.Float64, 1e-12)
	assert.InDelta(t, 0.657, first.Income.Float64, 1e-12)
	assert.Equal(t, "0.641", first.Cell(3))

	third := table.Row(2)
	assert.False(t, third.HDI.Valid)
	assert.False(t, third.Longevity.Valid)
	assert.True(t, third.Education.Valid)
	assert.Equal(t, "NA", third.Cell(3), "raw cell text is preserved")
}

func TestReadCSV_HeaderNormalization(t *testing.T) {
	input := "\ufeffMunicípio;UF;ANO;IDHM;IDHM_E;IDHM_L;IDHM_R;Extra\n" +
		"Porto Velho;RO;2010;0.736;0.638;0.819;0.764;x\n"

	reader := NewReader(testLogger(), ReaderOptions{Delimiter: ';'})
	table, err := reader.ReadCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, append(append([]string{}, domain.RequiredColumns...), "extra"), table.Header())
	row := table.Row(0)
	assert.Equal(t, "Porto Velho", row.Municipality)
	assert.InDelta(t, 0.736, row.HDI.Float64, 1e-12)
	assert.Equal(t, "x", row.Cell(7))
}

func TestNormalizeHeader(t *testing.T) {
	tests := map[string]string{
		" municipio ":   domain.ColumnMunicipality,
		"uf":            domain.ColumnState,
		"HDI_Income":    domain.ColumnIncome,
		"\ufeffano":     domain.ColumnYear,
		"Population":    "population",
		"idhm_l":        domain.ColumnLongevity,
		"hdi_education": domain.ColumnEducation,
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeHeader(in), in)
	}
}

func TestParseNullableFloat(t *testing.T) {
	for _, token := range []string{"", "NA", "N/A", "NaN", "nan", "null", "None", "  "} {
		v, err := ParseNullableFloat(token)
		require.NoError(t, err, token)
		assert.False(t, v.Valid, token)
	}

	v, err := ParseNullableFloat(" 0.805 ")
	require.NoError(t, err)
	assert.True(t, v.Valid)
	assert.Equal(t, 0.805, v.Float64)

	_, err = ParseNullableFloat("0,805")
	assert.Error(t, err)
}

func TestReadCSV_ParsingErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		row    int
		column string
	}{
		{
			name:   "bad hdi",
			input:  "municipality,state,year,hdi\nA,RO,2010,0.5\nB,RO,2010,high\n",
			row:    3,
			column: domain.ColumnHDI,
		},
		{
			name:   "fractional year",
			input:  "municipality,state,year,hdi\nA,RO,2010.5,0.5\n",
			row:    2,
			column: domain.ColumnYear,
		},
		{
			name:   "missing year",
			input:  "municipality,state,year,hdi\nA,RO,,0.5\n",
			row:    2,
			column: domain.ColumnYear,
		},
	}

	reader := NewReader(testLogger(), ReaderOptions{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := reader.ReadCSV(strings.NewReader(tt.input))
			require.Error(t, err)

			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperrors.ErrTypeParsing, appErr.Type)
			assert.Equal(t, tt.row, appErr.Context["row"])
			assert.Equal(t, tt.column, appErr.Context["column"])
		})
	}
}

func TestReadCSV_YearFromSpreadsheetFloat(t *testing.T) {
	reader := NewReader(testLogger(), ReaderOptions{})
	table, err := reader.ReadCSV(strings.NewReader("year,hdi\n2010.0,0.5\n"))
	require.NoError(t, err)
	assert.Equal(t, 2010, table.Row(0).Year)
}

func TestReadCSV_TooManyFields(t *testing.T) {
	reader := NewReader(testLogger(), ReaderOptions{})
	_, err := reader.ReadCSV(strings.NewReader("year,hdi\n2010,0.5,extra\n"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}

func TestReadCSV_ShortRowsArePadded(t *testing.T) {
	reader := NewReader(testLogger(), ReaderOptions{})
	table, err := reader.ReadCSV(strings.NewReader("year,hdi,hdi_income\n2010,0.5\n"))
	require.NoError(t, err)
	row := table.Row(0)
	assert.Len(t, row.Raw, 3)
	assert.False(t, row.Income.Valid)
}

func TestReadCSV_Empty(t *testing.T) {
	reader := NewReader(testLogger(), ReaderOptions{})
	_, err := reader.ReadCSV(strings.NewReader(""))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))

	table, err := reader.ReadCSV(strings.NewReader("municipality,state\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
}

func TestLoad_CSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idhm.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0644))

	table, err := NewReader(testLogger(), ReaderOptions{}).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())
}

func TestLoad_Workbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idhm.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"município", "uf", "ano", "idhm", "idhm_e", "idhm_l", "idhm_r"},
		{"Ariquemes", "RO", 2010, 0.702, 0.6, 0.806, 0.716},
		{"Cabixi", "RO", 2010, "", 0.559, 0.757, 0.65},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := NewReader(testLogger(), ReaderOptions{}).Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, domain.RequiredColumns, table.Header())

	row := table.Row(0)
	assert.Equal(t, "Ariquemes", row.Municipality)
	assert.Equal(t, 2010, row.Year)
	assert.InDelta(t, 0.702, row.HDI.Float64, 1e-12)
	assert.False(t, table.Row(1).HDI.Valid)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewReader(testLogger(), ReaderOptions{}).Load(context.Background(), filepath.Join(t.TempDir(), "none.csv"))
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	table, err := NewReader(testLogger(), ReaderOptions{}).ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	summary := Summarize(table)
	assert.Equal(t, 3, summary.Rows)
	assert.Equal(t, 7, summary.Columns)
	assert.Equal(t, 1, summary.Nulls[domain.ColumnHDI])
	assert.Equal(t, 1, summary.Nulls[domain.ColumnLongevity])
	assert.Equal(t, 0, summary.Nulls[domain.ColumnMunicipality])

	var buf bytes.Buffer
	LogSummary(context.Background(), slog.New(slog.NewJSONHandler(&buf, nil)), summary)
	assert.Contains(t, buf.String(), `"rows":3`)
	assert.Contains(t, buf.String(), `"nulls":{`)
}
