package domain

import "time"

// Report summarises one export run for logs, the end-of-run summary
// and the optional SQLite sink.
type Report struct {
	// RunID uniquely identifies the run.
	RunID string

	// Account is the exported account.
	Account string

	// Repositories is how many repositories entered the worker pool
	// after filtering.
	Repositories int

	// Walked counts repositories whose tree walk succeeded.
	Walked int

	// Failed counts repositories that contributed an error row.
	Failed int

	// TaskErrors counts worker tasks that died before producing rows.
	TaskErrors int

	// FileRows counts rows carrying a path and raw URL.
	FileRows int

	// ErrorRows counts walk-failure sentinel rows.
	ErrorRows int

	// Duration is the wall-clock time of the run.
	Duration time.Duration
}

// TotalRows returns the number of rows the run produced.
func (r Report) TotalRows() int {
	return r.FileRows + r.ErrorRows
}
