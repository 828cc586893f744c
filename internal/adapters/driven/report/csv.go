package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/rawdex-labs/rawdex-cli/internal/core/domain"
	"github.com/rawdex-labs/rawdex-cli/internal/core/ports/driven"
)

// utf8BOM marks the file as UTF-8 so spreadsheet applications pick the
// right encoding when opening the CSV directly.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter persists rows as a UTF-8 CSV file with a byte order mark.
// This is the primary sink; a failed write fails the run.
type CSVWriter struct {
	path string
}

// Ensure CSVWriter implements the interface.
var _ driven.RowWriter = (*CSVWriter)(nil)

// NewCSVWriter creates a CSV writer targeting the given file path.
func NewCSVWriter(path string) *CSVWriter {
	return &CSVWriter{path: path}
}

// Destination returns the CSV file path.
func (w *CSVWriter) Destination() string {
	return w.path
}

// Write creates the file, emits the byte order mark and header, then
// streams one record per row.
func (w *CSVWriter) Write(_ context.Context, _ domain.Report, rows []domain.Row) error {
	file, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("creating csv file: %w", err)
	}

	if writeErr := writeCSV(file, rows); writeErr != nil {
		file.Close() //nolint:errcheck,gosec // write error takes precedence
		return writeErr
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("closing csv file: %w", err)
	}
	return nil
}

// writeCSV emits the BOM, the header and all records to out.
func writeCSV(out *os.File, rows []domain.Row) error {
	if _, err := out.Write(utf8BOM); err != nil {
		return fmt.Errorf("writing byte order mark: %w", err)
	}

	cw := csv.NewWriter(out)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(record(row)); err != nil {
			return fmt.Errorf("writing row for %s: %w", row.Repository, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}
