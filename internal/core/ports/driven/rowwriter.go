package driven

import (
	"context"

	"github.com/rawdex-labs/rawdex-cli/internal/core/domain"
)

// RowWriter persists the combined dataset of one export run.
type RowWriter interface {
	// Write persists all rows of the run. Implementations must
	// tolerate error rows (empty path, size and URL) and must not
	// reorder columns.
	Write(ctx context.Context, report domain.Report, rows []domain.Row) error

	// Destination returns the human-readable write target for logs.
	Destination() string
}
