package report

import (
	"path/filepath"
	"strings"
)

// DefaultCSVPath returns the conventional output file name for an
// account's export.
func DefaultCSVPath(account string) string {
	return account + "-all-raw_urls.csv"
}

// CSVPath forces the .csv extension on the chosen output path, so the
// primary output can never coincide with the spreadsheet path derived
// from it. An out name ending in .xlsx would otherwise be overwritten
// by its own workbook copy.
func CSVPath(path string) string {
	ext := filepath.Ext(path)
	if strings.EqualFold(ext, ".csv") {
		return path
	}
	return strings.TrimSuffix(path, ext) + ".csv"
}

// SpreadsheetPath derives the XLSX path from the CSV path by swapping
// the extension.
func SpreadsheetPath(csvPath string) string {
	ext := filepath.Ext(csvPath)
	return strings.TrimSuffix(csvPath, ext) + ".xlsx"
}
