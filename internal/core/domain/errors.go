package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrEmptyAccount indicates an export was requested without an
	// account identifier.
	ErrEmptyAccount = errors.New("account must not be empty")

	// ErrInvalidRow indicates a row that is neither a valid file row
	// nor a valid error row.
	ErrInvalidRow = errors.New("invalid row")

	// ErrWalkFailed marks a tree walk that failed at the HTTP level
	// after the qualified-ref fallback and retries. Sources wrap
	// such failures with this sentinel so the aggregator can fold them
	// into an error row; transport failures stay unwrapped and kill
	// the task instead.
	ErrWalkFailed = errors.New("tree walk failed")
)
