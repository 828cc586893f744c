package driving

import (
	"context"

	"github.com/rawdex-labs/rawdex-cli/internal/core/domain"
)

// Exporter runs the end-to-end raw-URL export for one account.
type Exporter interface {
	// Export lists the account's repositories, walks every tree
	// through a bounded worker pool and returns the combined rows.
	// It fails only when the repository listing itself fails;
	// per-repository failures are folded into the result.
	Export(ctx context.Context, account string) (*ExportResult, error)
}

// ExportResult carries everything one run produced.
type ExportResult struct {
	// Rows is the combined dataset in task-completion order. Order
	// carries no meaning downstream.
	Rows []domain.Row

	// Report summarises the run.
	Report domain.Report
}
