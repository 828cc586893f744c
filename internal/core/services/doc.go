// Package services implements the driving port interfaces.
// Services contain the core business logic: the export orchestration,
// the bounded worker pool and the row builder that turns tree entries
// into raw-URL rows.
//
// Services are pure Go with no CGO; their only external dependency is
// the UUID generator used for run identifiers.
package services
