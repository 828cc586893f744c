package report

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/rawdex-labs/rawdex-cli/internal/core/domain"
	"github.com/rawdex-labs/rawdex-cli/internal/core/ports/driven"
)

// schema holds the run metadata and the flat dataset. Re-running an
// export against the same database appends a new run.
const schema = `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		account TEXT NOT NULL,
		repositories INTEGER NOT NULL,
		walked INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		file_rows INTEGER NOT NULL,
		error_rows INTEGER NOT NULL,
		task_errors INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS raw_urls (
		run_id TEXT NOT NULL REFERENCES runs(id),
		repository TEXT NOT NULL,
		path TEXT NOT NULL,
		size INTEGER,
		branch TEXT NOT NULL,
		raw_url TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_raw_urls_run ON raw_urls(run_id);
`

// SQLiteWriter persists rows into a SQLite database so the dataset can
// be queried and joined across runs.
type SQLiteWriter struct {
	path string
}

// Ensure SQLiteWriter implements the interface.
var _ driven.RowWriter = (*SQLiteWriter)(nil)

// NewSQLiteWriter creates a SQLite writer targeting the given database
// file. The file and schema are created on first write.
func NewSQLiteWriter(path string) *SQLiteWriter {
	return &SQLiteWriter{path: path}
}

// Destination returns the database file path.
func (w *SQLiteWriter) Destination() string {
	return w.path
}

// Write records the run metadata and inserts all rows in a single
// transaction.
func (w *SQLiteWriter) Write(ctx context.Context, report domain.Report, rows []domain.Row) error {
	// Open with WAL mode for better concurrency
	db, err := sql.Open("sqlite", w.path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, account, repositories, walked, failed, file_rows, error_rows, task_errors, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, report.RunID, report.Account, report.Repositories, report.Walked, report.Failed,
		report.FileRows, report.ErrorRows, report.TaskErrors,
		report.Duration.Milliseconds(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO raw_urls (run_id, repository, path, size, branch, raw_url)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, report.RunID, row.Repository, row.Path,
			row.Size, row.Branch, row.RawURL); err != nil {
			return fmt.Errorf("saving row for %s: %w", row.Repository, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
