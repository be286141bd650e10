// Package pipeline runs one HDI analysis end to end.
//
// A run discovers the first matching input file in the raw directory, loads
// it, analyzes it and hands the resulting bundle to every enabled export
// sink. Sinks run concurrently; each owns its own files. The text report and
// the manifest are written once all sinks have finished.
//
// Missing input, schema and parse failures abort the run and are returned as
// errors. Failed outputs do not: they are collected in Result.ExportErrors.
package pipeline
