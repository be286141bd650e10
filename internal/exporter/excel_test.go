package exporter

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "hdicli/internal/errors"
)

func TestExcelWriter_Export(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "analysis.xlsx")
	tables := BuildTables(sampleBundle(t))

	out := NewExcelWriter(path, quietLogger()).Export(context.Background(), nil, tables)
	assert.Equal(t, "excel", out.Sink)
	require.Empty(t, out.Errors)
	assert.Equal(t, []string{path}, out.Written)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Len(t, sheets, len(tables))
	assert.Equal(t, "classified", sheets[0])
	assert.Equal(t, "components", sheets[len(sheets)-1])

	rows, err := f.GetRows("evolution")
	require.NoError(t, err)
	assert.Equal(t, []string{"year", "mean", "count"}, rows[0])
	assert.Equal(t, "2000", rows[1][0])
	assert.Equal(t, "0.6", rows[1][1])

	value, err := f.GetCellValue("general_statistics", "G2")
	require.NoError(t, err)
	assert.Equal(t, "2000;2010", value)
}

func TestExcelWriter_ExportFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	out := NewExcelWriter(filepath.Join(blocker, "analysis.xlsx"), quietLogger()).
		Export(context.Background(), nil, BuildTables(sampleBundle(t)))

	require.Len(t, out.Errors, 1)
	assert.True(t, apperrors.IsType(out.Errors[0], apperrors.ErrTypeExport))
	assert.Empty(t, out.Written)
}

func TestCellValue(t *testing.T) {
	assert.Nil(t, cellValue(""))
	assert.Equal(t, 0.5, cellValue("0.5"))
	assert.Equal(t, "RO", cellValue("RO"))
	assert.Nil(t, cellValue("NaN"))
	assert.Nil(t, cellValue(" NA "))
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "evolution", sheetName("evolution"))
	assert.Equal(t, strings.Repeat("a", maxSheetName), sheetName(strings.Repeat("a", 40)))
}
