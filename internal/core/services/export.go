package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rawdex-labs/rawdex-cli/internal/core/domain"
	"github.com/rawdex-labs/rawdex-cli/internal/core/ports/driven"
	"github.com/rawdex-labs/rawdex-cli/internal/core/ports/driving"
	"github.com/rawdex-labs/rawdex-cli/internal/logger"
)

const (
	// DefaultRawBaseURL is the public raw-content host.
	DefaultRawBaseURL = "https://raw.githubusercontent.com"

	// DefaultWorkers is the default worker pool size, chosen to stay
	// under GitHub's abuse-detection limits for concurrent requests.
	DefaultWorkers = 6
)

// Config holds the immutable settings of the export service.
// Values are fixed at construction; the service never mutates them.
type Config struct {
	// RawBaseURL is the raw-content host prefix. A trailing slash is
	// stripped. Default: DefaultRawBaseURL.
	RawBaseURL string

	// Workers bounds the number of concurrent tree walks.
	// Default: DefaultWorkers.
	Workers int

	// Filters selects which listed repositories are exported.
	Filters domain.FilterOptions
}

// withDefaults returns a copy of the config with zero values replaced
// by defaults.
func (c Config) withDefaults() Config {
	if c.RawBaseURL == "" {
		c.RawBaseURL = DefaultRawBaseURL
	}
	c.RawBaseURL = strings.TrimSuffix(c.RawBaseURL, "/")
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	return c
}

// ProgressFunc receives one completed repository as tasks finish:
// the number of rows it contributed and, for a task that died before
// producing rows, the task error.
type ProgressFunc func(repository string, rows int, err error)

// taskResult is the result-or-error value one worker task produces.
// Tasks never raise: panics are recovered into the error arm.
type taskResult struct {
	repo domain.Repository
	rows []domain.Row
	err  error
}

// Ensure ExportService implements the interface.
var _ driving.Exporter = (*ExportService)(nil)

// ExportService coordinates the raw-URL export: listing, filtering,
// the bounded fan-out across repositories and the union of results.
type ExportService struct {
	source   driven.RepositorySource
	cfg      Config
	progress ProgressFunc
}

// NewExportService creates a new export service. progress may be nil
// when no per-repository completion feedback is wanted.
func NewExportService(source driven.RepositorySource, cfg Config, progress ProgressFunc) *ExportService {
	return &ExportService{
		source:   source,
		cfg:      cfg.withDefaults(),
		progress: progress,
	}
}

// Export lists the account's repositories, walks every tree through
// the worker pool and returns the combined rows in completion order.
// Only a failed listing fails the run; every per-repository failure is
// folded into the result.
func (s *ExportService) Export(ctx context.Context, account string) (*driving.ExportResult, error) {
	if strings.TrimSpace(account) == "" {
		return nil, domain.ErrEmptyAccount
	}

	start := time.Now()
	report := domain.Report{
		RunID:   uuid.NewString(),
		Account: account,
	}
	logger.Info("export %s: listing repositories for %s", report.RunID, account)

	// 1. List every repository of the account. Failure here is fatal
	// for the whole run; no partial output is produced.
	repos, err := s.source.ListRepositories(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("list repositories: %w", err)
	}

	// 2. Apply the client-side filters.
	repos = domain.FilterRepositories(repos, s.cfg.Filters)
	report.Repositories = len(repos)
	logger.Info("export %s: %d repositories after filtering", report.RunID, len(repos))

	// 3. Fan the walks out across the pool and union results as tasks
	// complete. Completion order is non-deterministic and carries no
	// meaning downstream.
	var rows []domain.Row
	for result := range s.runPool(ctx, account, repos) {
		if result.err != nil {
			report.TaskErrors++
			logger.Error("task %s: %v", result.repo.Name, result.err)
		} else if len(result.rows) == 1 && result.rows[0].IsError() {
			report.Failed++
		} else {
			report.Walked++
		}

		for _, row := range result.rows {
			if row.IsError() {
				report.ErrorRows++
			} else {
				report.FileRows++
			}
		}
		rows = append(rows, result.rows...)

		if s.progress != nil {
			s.progress(result.repo.Name, len(result.rows), result.err)
		}
	}

	// 4. Close the books.
	report.Duration = time.Since(start)
	logger.Info("export %s: %d rows from %d repositories (%d failed walks, %d task errors) in %s",
		report.RunID, report.TotalRows(), report.Repositories, report.Failed, report.TaskErrors,
		report.Duration.Round(time.Millisecond))

	return &driving.ExportResult{Rows: rows, Report: report}, nil
}

// runPool processes one task per repository on a fixed-size pool and
// returns the channel results arrive on. The task queue is the only
// resource shared between tasks; it is pre-filled and closed before
// the workers start draining it.
func (s *ExportService) runPool(ctx context.Context, account string, repos []domain.Repository) <-chan taskResult {
	workers := s.cfg.Workers
	if len(repos) < workers {
		workers = len(repos)
	}

	tasks := make(chan domain.Repository, len(repos))
	for _, repo := range repos {
		tasks <- repo
	}
	close(tasks)

	results := make(chan taskResult)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for repo := range tasks {
				results <- s.runTask(ctx, account, repo)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// runTask walks one repository and builds its rows. A panic inside the
// task is recovered into the error arm so a broken task never takes
// down its siblings or escapes the pool.
func (s *ExportService) runTask(ctx context.Context, account string, repo domain.Repository) (result taskResult) {
	defer func() {
		if r := recover(); r != nil {
			result = taskResult{repo: repo, err: fmt.Errorf("task panicked: %v", r)}
		}
	}()

	rows, err := s.buildRows(ctx, account, repo)
	return taskResult{repo: repo, rows: rows, err: err}
}
