// Package dataprocessing turns an input file into a typed HDI table.
//
// # Formats
//
// Files ending in .xlsx are read from the first sheet of the workbook. Any
// other file is read as delimited text with a configurable delimiter. A UTF-8
// byte order mark is dropped.
//
// # Headers
//
// Column names are trimmed and lower-cased. Portuguese source names are
// accepted as aliases (município, uf, ano, idhm, idhm_e, idhm_l, idhm_r). A
// missing required column is not an error here; the analysis engine reports
// every absent column at once.
//
// # Cells
//
// Numeric cells equal to one of "", NA, N/A, NaN, nan, null or None are null.
// Anything else that does not parse, and any missing or fractional year,
// fails the load with a PARSING error carrying the row and column. Every
// record keeps its raw cell text so derived subsets are written back exactly
// as read.
//
// Usage:
//
//	reader := dataprocessing.NewReader(logger, dataprocessing.ReaderOptions{Delimiter: ';'})
//	table, err := reader.Load(ctx, "data/raw/idhm.csv")
package dataprocessing
