package cli

import (
	"github.com/spf13/cobra"

	"github.com/rawdex-labs/rawdex-cli/internal/logger"
)

// version is the build version, overridden at link time via
// -ldflags "-X .../internal/adapters/driving/cli.version=v1.2.3".
var version = "dev"

// Persistent flags shared by all commands.
var (
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "rawdex",
	Short: "Export a GitHub account's files as raw URLs",
	Long: `rawdex walks every repository of a GitHub account and writes one row
per file: repository, path, size, branch and the directly fetchable
raw URL. The dataset lands in a CSV file, with a best-effort XLSX
copy and an optional SQLite database alongside.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

// Execute runs the root command. Errors are printed by cobra; the
// caller only decides the exit status.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.rawdex/config.toml)")
}
