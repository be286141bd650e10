package exporter

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"

	"hdicli/internal/analytics"
	apperrors "hdicli/internal/errors"
	"hdicli/internal/files"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVOptions configures delimited output
type CSVOptions struct {
	// Delimiter separates fields. Defaults to ','.
	Delimiter rune
	// BOMPrefix adds a UTF-8 BOM for Excel compatibility
	BOMPrefix bool
}

// CSVWriter writes derived tables as delimited text into the output directory
type CSVWriter struct {
	manager   *files.Manager
	delimiter rune
	bom       bool
	logger    *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(manager *files.Manager, opts CSVOptions, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	return &CSVWriter{
		manager:   manager,
		delimiter: opts.Delimiter,
		bom:       opts.BOMPrefix,
		logger:    logger,
	}
}

// Encode renders headers and records as delimited text
func (w *CSVWriter) Encode(headers []string, records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	if w.bom {
		buf.Write(utf8BOM)
	}

	writer := csv.NewWriter(&buf)
	writer.Comma = w.delimiter

	if len(headers) > 0 {
		if err := writer.Write(headers); err != nil {
			return nil, fmt.Errorf("failed to write headers: %w", err)
		}
	}
	for i, record := range records {
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTable writes t to its file and returns the full path
func (w *CSVWriter) WriteTable(ctx context.Context, t DerivedTable) (string, error) {
	path := w.manager.Path(t.FileName)

	w.logger.DebugContext(ctx, "Writing CSV file",
		slog.String("file_path", path),
		slog.Int("record_count", len(t.Rows)))

	data, err := w.Encode(t.Headers, t.Rows)
	if err != nil {
		return "", apperrors.NewExportError(t.FileName, err)
	}
	if err := w.manager.WriteFile(t.FileName, data); err != nil {
		return "", apperrors.NewExportError(t.FileName, err)
	}
	return path, nil
}

// Name implements Sink
func (w *CSVWriter) Name() string { return "csv" }

// Export implements Sink by writing every table to its own file
func (w *CSVWriter) Export(ctx context.Context, _ *analytics.Bundle, tables []DerivedTable) Outcome {
	out := Outcome{Sink: w.Name()}
	for _, t := range tables {
		if err := ctx.Err(); err != nil {
			out.Errors = append(out.Errors, apperrors.NewExportError(t.FileName, err))
			continue
		}
		path, err := w.WriteTable(ctx, t)
		if err != nil {
			w.logger.ErrorContext(ctx, "CSV export failed",
				slog.String("file", t.FileName),
				slog.String("error", err.Error()))
			out.Errors = append(out.Errors, err)
			continue
		}
		out.Written = append(out.Written, path)
	}

	w.logger.InfoContext(ctx, "CSV export complete",
		slog.Int("written", len(out.Written)),
		slog.Int("failed", len(out.Errors)))
	return out
}
