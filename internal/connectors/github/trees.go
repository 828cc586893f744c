package github

import (
	"context"
	"fmt"

	gh "github.com/google/go-github/v80/github"

	"github.com/rawdex-labs/rawdex-cli/internal/core/domain"
	"github.com/rawdex-labs/rawdex-cli/internal/logger"
)

// FetchTree returns the full recursive file tree of one repository at
// the given branch. The plain branch name is tried first; on not-found
// the fully-qualified refs/heads form is tried exactly once, since
// branch names that collide with tag or other ref namespaces resolve
// only when qualified. Every node is returned unfiltered; selecting
// blobs is the row builder's responsibility.
func (c *Client) FetchTree(ctx context.Context, account, repository, branch string) (*domain.Tree, error) {
	refs := [2]string{branch, qualifiedRef(branch)}

	var lastErr error
	for i, ref := range refs {
		tree, err := c.getTree(ctx, account, repository, ref)
		if err == nil {
			if tree.Truncated {
				logger.Warn("tree for %s/%s at %s is truncated upstream, inventory will be partial",
					account, repository, branch)
			}
			return tree, nil
		}
		if !IsNotFound(err) {
			return nil, walkError(err)
		}
		lastErr = err
		if i == 0 {
			logger.Debug("tree for %s/%s at %s not found, retrying with %s",
				account, repository, branch, qualifiedRef(branch))
		}
	}

	return nil, walkError(lastErr)
}

// walkError wraps HTTP-level walk failures with domain.ErrWalkFailed,
// the contract the aggregator uses to tell a failed walk (one error
// row) from a failed task (no rows). Transport failures pass through.
func walkError(err error) error {
	if IsAPIError(err) {
		return fmt.Errorf("%w: %w", domain.ErrWalkFailed, err)
	}
	return err
}

// qualifiedRef returns the fully-qualified form of a branch name.
func qualifiedRef(branch string) string {
	return "refs/heads/" + branch
}

// getTree performs one recursive tree request for a single ref.
func (c *Client) getTree(ctx context.Context, account, repository, ref string) (*domain.Tree, error) {
	var tree *gh.Tree
	err := c.call(ctx, "get tree", func(ctx context.Context) (*gh.Response, error) {
		var resp *gh.Response
		var err error
		tree, resp, err = c.gh.Git.GetTree(ctx, account, repository, ref, true) // recursive=true
		return resp, err
	})
	if err != nil {
		return nil, err
	}
	return mapTree(tree), nil
}

// mapTree converts an API tree into the domain document. Size is
// preserved as absent when the upstream omits it.
func mapTree(tree *gh.Tree) *domain.Tree {
	entries := make([]domain.TreeEntry, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		mapped := domain.TreeEntry{
			Path: entry.GetPath(),
			Type: domain.EntryType(entry.GetType()),
			SHA:  entry.GetSHA(),
		}
		if entry.Size != nil {
			size := int64(*entry.Size)
			mapped.Size = &size
		}
		entries = append(entries, mapped)
	}

	return &domain.Tree{
		SHA:       tree.GetSHA(),
		Entries:   entries,
		Truncated: tree.GetTruncated(),
	}
}
