package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rawdex-labs/rawdex-cli/internal/adapters/driven/config/file"
	"github.com/rawdex-labs/rawdex-cli/internal/adapters/driven/report"
	githubconn "github.com/rawdex-labs/rawdex-cli/internal/connectors/github"
	"github.com/rawdex-labs/rawdex-cli/internal/core/domain"
	"github.com/rawdex-labs/rawdex-cli/internal/core/ports/driving"
	"github.com/rawdex-labs/rawdex-cli/internal/core/services"
	"github.com/rawdex-labs/rawdex-cli/internal/logger"
)

// Export flags.
var (
	token        string
	outPath      string
	workers      int
	onlyPublic   bool
	skipForks    bool
	skipArchived bool
	sqlitePath   string
	throttle     float64
)

// exporterFactory builds the exporter for one run. Tests swap it to
// inject a mock.
var exporterFactory = buildExporter

var exportCmd = &cobra.Command{
	Use:   "export <account>",
	Short: "Export every file of an account's repositories",
	Long: `Lists all repositories of the given account, walks each default
branch's full tree and writes one row per file with its raw URL.

Every attempted repository is represented in the output: a repository
whose tree cannot be fetched contributes a single row carrying only
its name and branch. The CSV file is the primary output; the XLSX
copy and the optional SQLite database are best-effort.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&token, "token", "t", "", "GitHub token (defaults to $GITHUB_TOKEN)")
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output CSV path (default <account>-all-raw_urls.csv)")
	exportCmd.Flags().IntVarP(&workers, "workers", "w", services.DefaultWorkers, "concurrent repository walks")
	exportCmd.Flags().BoolVar(&onlyPublic, "only-public", false, "skip private repositories")
	exportCmd.Flags().BoolVar(&skipForks, "skip-forks", false, "skip forked repositories")
	exportCmd.Flags().BoolVar(&skipArchived, "skip-archived", false, "skip archived repositories")
	exportCmd.Flags().StringVar(&sqlitePath, "sqlite", "", "also write the dataset to this SQLite database")
	exportCmd.Flags().Float64Var(&throttle, "throttle", 0, "max API requests per second (0 disables pacing)")
	rootCmd.AddCommand(exportCmd)
}

// runConfig holds the resolved settings for one export run.
type runConfig struct {
	account      string
	token        string
	apiURL       string
	rawURL       string
	out          string
	sqlite       string
	workers      int
	throttle     float64
	onlyPublic   bool
	skipForks    bool
	skipArchived bool
}

// resolveRunConfig merges flags, environment and the settings file.
// Explicit flags win, then the file, then built-in defaults.
func resolveRunConfig(cmd *cobra.Command, account string) (runConfig, error) {
	store, err := file.NewSettingsStore(configPath)
	if err != nil {
		return runConfig{}, fmt.Errorf("locating settings: %w", err)
	}
	settings, err := store.Load()
	if err != nil {
		return runConfig{}, fmt.Errorf("loading settings from %s: %w", store.Path(), err)
	}

	cfg := runConfig{
		account:      account,
		token:        token,
		apiURL:       settings.GitHub.APIURL,
		rawURL:       settings.GitHub.RawURL,
		out:          outPath,
		sqlite:       sqlitePath,
		workers:      workers,
		throttle:     throttle,
		onlyPublic:   onlyPublic,
		skipForks:    skipForks,
		skipArchived: skipArchived,
	}

	if cfg.token == "" {
		cfg.token = os.Getenv("GITHUB_TOKEN")
	}
	if cfg.token == "" {
		cfg.token = settings.GitHub.Token
	}
	if cfg.out == "" {
		cfg.out = report.DefaultCSVPath(account)
	}
	cfg.out = report.CSVPath(cfg.out)
	if !cmd.Flags().Changed("workers") && settings.Export.Workers > 0 {
		cfg.workers = settings.Export.Workers
	}
	if !cmd.Flags().Changed("throttle") && settings.Export.Throttle > 0 {
		cfg.throttle = settings.Export.Throttle
	}

	return cfg, nil
}

// buildExporter wires the GitHub connector into the export service.
func buildExporter(cfg runConfig, progress services.ProgressFunc) (driving.Exporter, error) {
	client, err := githubconn.NewClient(githubconn.Config{
		Token:      cfg.token,
		APIBaseURL: cfg.apiURL,
		Throttle:   cfg.throttle,
	})
	if err != nil {
		return nil, fmt.Errorf("creating github client: %w", err)
	}

	return services.NewExportService(client, services.Config{
		RawBaseURL: cfg.rawURL,
		Workers:    cfg.workers,
		Filters: domain.FilterOptions{
			OnlyPublic:   cfg.onlyPublic,
			SkipForks:    cfg.skipForks,
			SkipArchived: cfg.skipArchived,
		},
	}, progress), nil
}

func runExport(cmd *cobra.Command, args []string) error {
	account := args[0]

	cfg, err := resolveRunConfig(cmd, account)
	if err != nil {
		return err
	}

	if cfg.token == "" {
		logger.Warn("no token configured, unauthenticated requests are limited to 60 per hour")
	}

	exporter, err := exporterFactory(cfg, func(repository string, rows int, err error) {
		// Task errors are already on stderr via the logger; the
		// progress line covers completed repositories only.
		if err == nil {
			cmd.Printf("[OK] %s: %d rows\n", repository, rows)
		}
	})
	if err != nil {
		return err
	}

	cmd.Printf("Exporting repositories of %s...\n", account)

	result, err := exporter.Export(cmd.Context(), account)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if len(result.Rows) == 0 {
		cmd.Println("No rows produced; nothing to write.")
		cmd.Print(renderSummary(result.Report, nil))
		return nil
	}

	csvWriter := report.NewCSVWriter(cfg.out)
	if err := csvWriter.Write(cmd.Context(), result.Report, result.Rows); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	written := []string{csvWriter.Destination()}

	excelWriter := report.NewExcelWriter(report.SpreadsheetPath(cfg.out))
	if err := excelWriter.Write(cmd.Context(), result.Report, result.Rows); err != nil {
		logger.Warn("spreadsheet not written: %v", err)
	} else {
		written = append(written, excelWriter.Destination())
	}

	if cfg.sqlite != "" {
		sqliteWriter := report.NewSQLiteWriter(cfg.sqlite)
		if err := sqliteWriter.Write(cmd.Context(), result.Report, result.Rows); err != nil {
			logger.Warn("sqlite database not written: %v", err)
		} else {
			written = append(written, sqliteWriter.Destination())
		}
	}

	cmd.Print(renderSummary(result.Report, written))
	return nil
}
