package driven

import (
	"context"

	"github.com/rawdex-labs/rawdex-cli/internal/core/domain"
)

// RepositorySource lists an account's repositories and fetches their
// recursive file trees. The GitHub connector is the only production
// implementation.
type RepositorySource interface {
	// ListRepositories returns every repository of the account in
	// listing order. A failure on any page fails the whole listing;
	// partial results are never returned.
	ListRepositories(ctx context.Context, account string) ([]domain.Repository, error)

	// FetchTree returns the full recursive tree of one repository at
	// the given branch reference. Implementations retry the qualified
	// refs/heads form once when the plain name is not found.
	FetchTree(ctx context.Context, account, repository, branch string) (*domain.Tree, error)
}
