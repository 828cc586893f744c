package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rawdex-labs/rawdex-cli/internal/core/domain"
	"github.com/rawdex-labs/rawdex-cli/internal/logger"
)

// buildRows walks one repository and maps its blobs to output rows.
// A walk failure becomes exactly one error row, so every attempted
// repository stays represented in the dataset. Any other failure is
// returned as the task's error.
func (s *ExportService) buildRows(ctx context.Context, account string, repo domain.Repository) ([]domain.Row, error) {
	branch := repo.Branch()

	tree, err := s.source.FetchTree(ctx, account, repo.Name, branch)
	if err != nil {
		if errors.Is(err, domain.ErrWalkFailed) {
			logger.Error("%s: %v", repo.Name, err)
			return []domain.Row{domain.NewErrorRow(repo.Name, branch, err)}, nil
		}
		return nil, err
	}

	rows := make([]domain.Row, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		if !entry.Type.IsBlob() {
			continue
		}
		rawURL := s.rawURL(account, repo.Name, branch, entry.Path)
		rows = append(rows, domain.NewFileRow(repo.Name, branch, entry.Path, entry.Size, rawURL))
	}
	return rows, nil
}

// rawURL builds the raw-content URL for one blob. The tree path is
// inserted verbatim: the raw host accepts unencoded spaces and unicode,
// and encoding here would corrupt paths that contain literal percent
// signs. Callers that fetch these URLs must encode them themselves.
func (s *ExportService) rawURL(account, repository, branch, path string) string {
	return fmt.Sprintf("%s/%s/%s/%s/%s", s.cfg.RawBaseURL, account, repository, branch, path)
}
