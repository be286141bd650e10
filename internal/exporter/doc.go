// Package exporter writes the results of an HDI analysis to disk.
//
// BuildTables turns an analytics.Bundle into a fixed, ordered list of
// DerivedTable values. Each Sink then persists those tables in its own format:
//
// CSVWriter: one delimited file per table, with an optional UTF-8 BOM for
// Excel compatibility. Files are written atomically through files.Manager.
//
// ExcelWriter: a single workbook with one sheet per table.
//
// SQLiteWriter: a single database with one table per derived table. Tables
// are dropped and recreated on every run.
//
// ChartWriter: PNG line and bar charts of the yearly and regional means.
//
// Sinks never abort on the first failure. Every failed output is reported in
// the Outcome so the caller can decide whether the run succeeded.
//
// Example usage:
//
//	tables := exporter.BuildTables(bundle)
//	csvWriter := exporter.NewCSVWriter(manager, exporter.CSVOptions{BOMPrefix: true}, logger)
//	outcome := csvWriter.Export(ctx, bundle, tables)
//	for _, err := range outcome.Errors {
//		logger.Error("export failed", "error", err)
//	}
package exporter
