// Package connectors provides implementations of the RepositorySource
// interface. Each connector knows how to enumerate the repositories and
// file trees of a specific upstream (GitHub today).
//
// Connectors map upstream responses into domain types at their
// boundary; nothing outside a connector touches API wire formats.
package connectors
