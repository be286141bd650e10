package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"hdicli/internal/analytics"
	apperrors "hdicli/internal/errors"
	"hdicli/pkg/contracts/domain"
)

// maxSheetName is the longest sheet name Excel accepts
const maxSheetName = 31

// ExcelWriter writes all derived tables to one workbook, one sheet per table
type ExcelWriter struct {
	path   string
	logger *slog.Logger
}

// NewExcelWriter creates a workbook exporter writing to path
func NewExcelWriter(path string, logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{path: path, logger: logger}
}

// Name implements Sink
func (w *ExcelWriter) Name() string { return "excel" }

// Export implements Sink
func (w *ExcelWriter) Export(ctx context.Context, _ *analytics.Bundle, tables []DerivedTable) Outcome {
	out := Outcome{Sink: w.Name()}
	name := filepath.Base(w.path)

	if err := w.write(tables); err != nil {
		w.logger.ErrorContext(ctx, "Excel export failed",
			slog.String("file", w.path),
			slog.String("error", err.Error()))
		out.Errors = append(out.Errors, apperrors.NewExportError(name, err))
		return out
	}

	w.logger.InfoContext(ctx, "Excel export complete",
		slog.String("file", w.path),
		slog.Int("sheets", len(tables)))
	out.Written = append(out.Written, w.path)
	return out
}

func (w *ExcelWriter) write(tables []DerivedTable) error {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	for i, t := range tables {
		sheet := sheetName(t.Name)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet); err != nil {
				return fmt.Errorf("rename sheet %s: %w", sheet, err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheet, err)
		}

		if err := writeSheet(f, sheet, t); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, t DerivedTable) error {
	header := make([]interface{}, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header of %s: %w", sheet, err)
	}

	for r, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for i, v := range row {
			if i < len(t.Headers) && t.isText(i) {
				cells[i] = v
				continue
			}
			cells[i] = cellValue(v)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("write row %d of %s: %w", r+2, sheet, err)
		}
	}
	return nil
}

// cellValue stores numeric text as a number so spreadsheets can compute with it
func cellValue(s string) interface{} {
	if domain.IsNullToken(s) {
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return s
}

func sheetName(name string) string {
	if len(name) > maxSheetName {
		return name[:maxSheetName]
	}
	return name
}
