package file

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Settings are the optional file-backed defaults for an export run.
// Explicit flags always win over file values; file values win over the
// built-in defaults.
type Settings struct {
	GitHub GitHubSettings `toml:"github"`
	Export ExportSettings `toml:"export"`
}

// GitHubSettings configure the API connection.
type GitHubSettings struct {
	// APIURL overrides the API endpoint, for GitHub Enterprise hosts.
	APIURL string `toml:"api_url"`

	// RawURL overrides the raw-content host.
	RawURL string `toml:"raw_url"`

	// Token is the fallback personal access token.
	Token string `toml:"token"`
}

// ExportSettings configure the run itself.
type ExportSettings struct {
	// Workers overrides the default pool size.
	Workers int `toml:"workers"`

	// Throttle paces requests at the given rate per second when set.
	Throttle float64 `toml:"throttle"`
}

// SettingsStore reads settings from a TOML file.
type SettingsStore struct {
	filePath string
}

// NewSettingsStore creates a settings store for the given file path.
// If path is empty, defaults to ~/.rawdex/config.toml.
func NewSettingsStore(path string) (*SettingsStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir := filepath.Join(home, ".rawdex")

		// Ensure directory exists
		if err := os.MkdirAll(configDir, 0700); err != nil {
			return nil, err
		}
		path = filepath.Join(configDir, "config.toml")
	}

	return &SettingsStore{filePath: path}, nil
}

// Load parses the settings file. A missing file is not an error; it
// yields zero-value settings so the built-in defaults apply.
func (s *SettingsStore) Load() (*Settings, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, err
	}

	var settings Settings
	if err := toml.Unmarshal(data, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Path returns the settings file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}
