// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - RepositorySource: lists an account's repositories and fetches
//     recursive file trees
//
// # Optional Interfaces
//
// These are chosen per run by the CLI:
//
//   - RowWriter: persists the combined dataset (CSV, XLSX, SQLite).
//     A run that produces zero rows writes nothing.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
