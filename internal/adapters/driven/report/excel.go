package report

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/rawdex-labs/rawdex-cli/internal/core/domain"
	"github.com/rawdex-labs/rawdex-cli/internal/core/ports/driven"
)

// sheetName is the single worksheet holding the dataset.
const sheetName = "raw_urls"

// ExcelWriter persists rows as an XLSX workbook. The workbook is a
// convenience copy of the CSV; callers treat its failures as warnings
// rather than failing the run.
type ExcelWriter struct {
	path string
}

// Ensure ExcelWriter implements the interface.
var _ driven.RowWriter = (*ExcelWriter)(nil)

// NewExcelWriter creates an XLSX writer targeting the given file path.
func NewExcelWriter(path string) *ExcelWriter {
	return &ExcelWriter{path: path}
}

// Destination returns the workbook file path.
func (w *ExcelWriter) Destination() string {
	return w.path
}

// Write builds the workbook in memory and saves it in one step. Sizes
// are written as numbers so the column sorts and sums correctly.
func (w *ExcelWriter) Write(_ context.Context, _ domain.Report, rows []domain.Row) error {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(columns))
	for i, column := range columns {
		header[i] = column
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("computing cell name: %w", err)
		}

		// A nil cell stays empty, which keeps missing sizes and the
		// file cells of error rows blank instead of zero.
		cells := []any{row.Repository, row.Path, nil, row.Branch, row.RawURL}
		if row.Size != nil {
			cells[2] = *row.Size
		}
		if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
			return fmt.Errorf("writing row for %s: %w", row.Repository, err)
		}
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}
