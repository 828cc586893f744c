// Package domain defines the core business entities for rawdex.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Repository: one repository of the exported account
//   - Tree and TreeEntry: a repository's recursive file tree
//   - Row: one line of the final dataset, a file row or a failure sentinel
//   - Report: the summary of a completed export run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
