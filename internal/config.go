package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/clipfetch/clipfetch/internal/api"
	"github.com/clipfetch/clipfetch/internal/convert"
	"github.com/clipfetch/clipfetch/internal/database"
	"github.com/clipfetch/clipfetch/internal/fetch"
	"github.com/clipfetch/clipfetch/internal/janitor"
	"github.com/ilyakaznacheev/cleanenv"
)

// ClipfetchConfig is the struct used to contain the various user
// config supplied by file or environment.
type ClipfetchConfig struct {
	Fetch    fetch.Config            `yaml:"fetch"`
	Convert  convert.Config          `yaml:"convert"`
	Database database.DatabaseConfig `yaml:"database"`
	Janitor  janitor.Config          `yaml:"janitor"`
	Rest     api.RestConfig          `yaml:"api"`

	// DownloadRoot is the directory beneath which session workspaces
	// are created. Defaults to a location under the OS temp dir.
	DownloadRoot string `yaml:"download_root" env:"DOWNLOAD_ROOT"`

	// OutcomeLogEnabled toggles best-effort persistence of fetch and
	// conversion records. The service is fully functional without it.
	OutcomeLogEnabled bool `yaml:"outcome_log" env:"OUTCOME_LOG_ENABLED" env-default:"true"`
}

const downloadRootDirName = "clipfetch"

// LoadFromFile loads a YAML configuration file into this config,
// applying environment overrides on top.
func (config *ClipfetchConfig) LoadFromFile(configPath string) error {
	if err := cleanenv.ReadConfig(configPath, config); err != nil {
		return fmt.Errorf("failed to load configuration from %s: %w", configPath, err)
	}

	config.applyDefaults()
	return nil
}

// LoadFromEnv populates this config from the process environment only.
func (config *ClipfetchConfig) LoadFromEnv() error {
	if err := cleanenv.ReadEnv(config); err != nil {
		return fmt.Errorf("failed to load configuration from environment: %w", err)
	}

	config.applyDefaults()
	return nil
}

func (config *ClipfetchConfig) applyDefaults() {
	if config.DownloadRoot == "" {
		config.DownloadRoot = filepath.Join(os.TempDir(), downloadRootDirName)
	}
}
