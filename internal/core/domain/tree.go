package domain

// EntryType discriminates the kinds of node a git tree contains.
type EntryType string

const (
	// EntryBlob marks a file.
	EntryBlob EntryType = "blob"

	// EntryTree marks a subdirectory.
	EntryTree EntryType = "tree"

	// EntryCommit marks a submodule link.
	EntryCommit EntryType = "commit"
)

// IsBlob reports whether the entry type denotes a file.
func (t EntryType) IsBlob() bool {
	return t == EntryBlob
}

// TreeEntry is one node of a repository's recursive file tree.
// Owned exclusively by the walk that produced it.
type TreeEntry struct {
	// Path is the repo-relative path of the node.
	Path string

	// Type discriminates file blobs from subtree and submodule markers.
	Type EntryType

	// Size is the blob size in bytes. Nil when the upstream omits it;
	// subtree markers never carry a size.
	Size *int64

	// SHA is the object ID of the node.
	SHA string
}

// Tree is the full recursive file tree of one repository at one branch
// reference.
type Tree struct {
	// SHA identifies the tree object the walk resolved.
	SHA string

	// Entries holds every node, unfiltered. Selecting blobs is the row
	// builder's responsibility.
	Entries []TreeEntry

	// Truncated reports that the upstream cut the recursive listing
	// short. The entries present remain usable.
	Truncated bool
}
