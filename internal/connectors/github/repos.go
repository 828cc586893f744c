package github

import (
	"context"

	gh "github.com/google/go-github/v80/github"

	"github.com/rawdex-labs/rawdex-cli/internal/core/domain"
	"github.com/rawdex-labs/rawdex-cli/internal/logger"
)

// ListRepositories returns every repository of the account in listing
// order: all types, sorted by full name ascending, one page of
// cfg.PageSize at a time starting at page 1. Listing stops when a page
// comes back empty or short. With a token whose scope covers them,
// private repositories are included.
//
// Any page failure fails the whole listing; partial results are never
// returned.
func (c *Client) ListRepositories(ctx context.Context, account string) ([]domain.Repository, error) {
	opts := &gh.RepositoryListByUserOptions{
		Type:        "all",
		Sort:        "full_name",
		Direction:   "asc",
		ListOptions: gh.ListOptions{Page: 1, PerPage: c.cfg.PageSize},
	}

	var all []domain.Repository
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		var page []*gh.Repository
		err := c.call(ctx, "list repositories", func(ctx context.Context) (*gh.Response, error) {
			var resp *gh.Response
			var err error
			page, resp, err = c.gh.Repositories.ListByUser(ctx, account, opts)
			return resp, err
		})
		if err != nil {
			return nil, err
		}

		for _, repo := range page {
			all = append(all, mapRepository(repo))
		}

		// A short page is the last page; stopping here saves the
		// trailing empty request.
		if len(page) < c.cfg.PageSize {
			break
		}
		opts.Page++
	}

	logger.Debug("listed %d repositories for %s", len(all), account)
	return all, nil
}

// mapRepository converts an API repository into the domain record,
// keeping only the fields the export consumes.
func mapRepository(repo *gh.Repository) domain.Repository {
	return domain.Repository{
		Name:          repo.GetName(),
		DefaultBranch: repo.GetDefaultBranch(),
		Private:       repo.GetPrivate(),
		Fork:          repo.GetFork(),
		Archived:      repo.GetArchived(),
	}
}
