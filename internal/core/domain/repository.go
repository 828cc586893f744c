package domain

// DefaultBranchFallback is the branch reference assumed when the
// upstream listing does not report a default branch.
const DefaultBranchFallback = "main"

// Repository identifies one repository of the exported account.
// Produced by the repository lister; consumed read-only by the tree
// walker and the aggregator. Lives only for the duration of one run.
type Repository struct {
	// Name is the repository name, unique within the account.
	Name string

	// DefaultBranch is the branch the upstream reports as default.
	// Empty when the listing omits it; use Branch instead of reading
	// this field directly.
	DefaultBranch string

	// Private reports whether the repository is non-public.
	Private bool

	// Fork reports whether the repository is a fork.
	Fork bool

	// Archived reports whether the repository is archived upstream.
	Archived bool
}

// Branch returns the branch reference used for tree walks and raw URLs:
// the default branch when known, DefaultBranchFallback otherwise.
func (r Repository) Branch() string {
	if r.DefaultBranch == "" {
		return DefaultBranchFallback
	}
	return r.DefaultBranch
}

// FilterOptions selects which listed repositories take part in an
// export. The zero value keeps everything.
type FilterOptions struct {
	// OnlyPublic drops private repositories.
	OnlyPublic bool

	// SkipForks drops forked repositories.
	SkipForks bool

	// SkipArchived drops repositories archived upstream.
	SkipArchived bool
}

// FilterRepositories returns the repositories that survive opts,
// preserving listing order. The input slice is not modified.
func FilterRepositories(repos []Repository, opts FilterOptions) []Repository {
	filtered := make([]Repository, 0, len(repos))
	for _, repo := range repos {
		if opts.OnlyPublic && repo.Private {
			continue
		}
		if opts.SkipForks && repo.Fork {
			continue
		}
		if opts.SkipArchived && repo.Archived {
			continue
		}
		filtered = append(filtered, repo)
	}
	return filtered
}
