package domain

import "fmt"

// Row is one line of the final dataset: a file mapped to its
// raw-content URL, or a sentinel carrying a repository's walk failure.
//
// Exactly one of two shapes is valid:
//
//   - file row: Path and RawURL set, Err empty
//   - error row: Path, Size and RawURL empty, Err set
//
// Use NewFileRow and NewErrorRow to build rows; hand-built rows can be
// checked with Validate.
type Row struct {
	// Repository is the repository name.
	Repository string

	// Path is the repo-relative file path. Empty on error rows.
	Path string

	// Size is the blob size in bytes, when the upstream reported one.
	Size *int64

	// Branch is the branch reference the walk used.
	Branch string

	// RawURL is the directly-fetchable raw-content URL. Empty on
	// error rows.
	RawURL string

	// Err is the walk-failure description. Empty on file rows. Kept
	// for logs and the run report; never written to the five-column
	// outputs.
	Err string
}

// NewFileRow builds the row for one file blob.
func NewFileRow(repository, branch, path string, size *int64, rawURL string) Row {
	return Row{
		Repository: repository,
		Path:       path,
		Size:       size,
		Branch:     branch,
		RawURL:     rawURL,
	}
}

// NewErrorRow builds the single sentinel row a repository contributes
// when its tree walk fails.
func NewErrorRow(repository, branch string, err error) Row {
	message := "unknown error"
	if err != nil {
		message = err.Error()
	}
	return Row{
		Repository: repository,
		Branch:     branch,
		Err:        message,
	}
}

// IsError reports whether the row is a walk-failure sentinel.
func (r Row) IsError() bool {
	return r.Err != ""
}

// Validate checks the file-row-or-error-row invariant.
func (r Row) Validate() error {
	if r.Repository == "" {
		return fmt.Errorf("%w: missing repository", ErrInvalidRow)
	}
	if r.IsError() {
		if r.Path != "" || r.RawURL != "" || r.Size != nil {
			return fmt.Errorf("%w: error row carries file fields", ErrInvalidRow)
		}
		return nil
	}
	if r.Path == "" || r.RawURL == "" {
		return fmt.Errorf("%w: file row missing path or raw URL", ErrInvalidRow)
	}
	return nil
}
