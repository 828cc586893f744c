// Package report provides the RowWriter implementations that persist
// an export run's dataset.
//
// Sinks:
//   - CSVWriter: UTF-8 CSV with a byte order mark, the primary output
//   - ExcelWriter: XLSX workbook for spreadsheet users
//   - SQLiteWriter: queryable SQLite database with run metadata
//
// All sinks write the same five columns in the same order: repository,
// path, size, branch, raw_url. Error rows appear with empty file cells;
// the failure text itself is never written to an output file.
package report
