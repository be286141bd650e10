package exporter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"

	"hdicli/internal/analytics"
	apperrors "hdicli/internal/errors"
	"hdicli/pkg/contracts/domain"
)

// SQLiteWriter stores every derived table in an SQLite database.
// Each table is dropped and recreated, so reruns replace earlier results.
type SQLiteWriter struct {
	path   string
	logger *slog.Logger
}

// NewSQLiteWriter creates a database exporter writing to path
func NewSQLiteWriter(path string, logger *slog.Logger) *SQLiteWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteWriter{path: path, logger: logger}
}

// Name implements Sink
func (w *SQLiteWriter) Name() string { return "sqlite" }

// Export implements Sink. Tables are written one transaction each; a failed
// table is rolled back and reported while the others are still written.
func (w *SQLiteWriter) Export(ctx context.Context, _ *analytics.Bundle, tables []DerivedTable) Outcome {
	out := Outcome{Sink: w.Name()}
	name := filepath.Base(w.path)

	db, err := w.open()
	if err != nil {
		out.Errors = append(out.Errors, apperrors.NewExportError(name, err))
		return out
	}
	defer db.Close()

	written := 0
	for _, t := range tables {
		if err := replaceTable(ctx, db, t); err != nil {
			w.logger.ErrorContext(ctx, "Database export failed",
				slog.String("table", t.Name),
				slog.String("error", err.Error()))
			out.Errors = append(out.Errors,
				apperrors.NewExportError(name+":"+t.Name, err).WithContext("table", t.Name))
			continue
		}
		written++
	}

	if written > 0 {
		out.Written = append(out.Written, w.path)
	}
	w.logger.InfoContext(ctx, "Database export complete",
		slog.String("file", w.path),
		slog.Int("tables", written))
	return out
}

func (w *SQLiteWriter) open() (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return nil, apperrors.NewStorageError("failed to create database directory", err)
	}
	db, err := sql.Open("sqlite", w.path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open database", err).WithContext("path", w.path)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, apperrors.NewStorageError("failed to open database", err).WithContext("path", w.path)
	}
	return db, nil
}

func replaceTable(ctx context.Context, db *sql.DB, t DerivedTable) error {
	types := columnTypes(t)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	table := quoteIdent(t.Name)
	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
		return fmt.Errorf("drop %s: %w", t.Name, err)
	}

	cols := make([]string, len(t.Headers))
	marks := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		cols[i] = quoteIdent(h) + " " + types[i]
		marks[i] = "?"
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("CREATE TABLE %s (%s)", table, strings.Join(cols, ", "))); err != nil {
		return fmt.Errorf("create %s: %w", t.Name, err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s VALUES (%s)", table, strings.Join(marks, ", ")))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	args := make([]interface{}, len(t.Headers))
	for r, row := range t.Rows {
		for i := range args {
			var v string
			if i < len(row) {
				v = row[i]
			}
			args[i] = sqlValue(v, types[i])
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert row %d: %w", r+1, err)
		}
	}

	return tx.Commit()
}

// columnTypes returns REAL for columns whose non-null cells all parse as
// numbers and TEXT otherwise
func columnTypes(t DerivedTable) []string {
	types := make([]string, len(t.Headers))
	for i := range t.Headers {
		if t.isText(i) {
			types[i] = "TEXT"
			continue
		}
		numeric, seen := true, false
		for _, row := range t.Rows {
			if i >= len(row) || domain.IsNullToken(row[i]) {
				continue
			}
			seen = true
			if _, err := strconv.ParseFloat(row[i], 64); err != nil {
				numeric = false
				break
			}
		}
		if numeric && seen {
			types[i] = "REAL"
		} else {
			types[i] = "TEXT"
		}
	}
	return types
}

func sqlValue(v, typ string) interface{} {
	if domain.IsNullToken(v) {
		return nil
	}
	if typ == "REAL" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return v
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
