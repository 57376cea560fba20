// ABOUTME: Nutrition pipeline configuration: source URL, file layout, database and table.
// ABOUTME: Loads a YAML file, then .env and NUTRITION_* environment overrides.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/nutrition/internal/storage"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultSourceURL is the public nutrition survey dataset.
const DefaultSourceURL = "https://raw.githubusercontent.com/fivethirtyeight/data/master/nutrition-studies/raw_anonymized_data.csv"

// Environment variables that override file settings.
const (
	EnvSourceURL   = "NUTRITION_SOURCE_URL"
	EnvDataDir     = "NUTRITION_DATA_DIR"
	EnvDBPath      = "NUTRITION_DB"
	EnvTable       = "NUTRITION_TABLE"
	EnvRowLimit    = "NUTRITION_ROW_LIMIT"
	EnvHTTPTimeout = "NUTRITION_HTTP_TIMEOUT"
)

// Config stores pipeline configuration. Every component receives the
// values it needs from here rather than from package-level state.
type Config struct {
	// SourceURL is the remote CSV dataset.
	SourceURL string `yaml:"source_url,omitempty"`

	// DataDir holds the raw download and the derived subset file.
	DataDir string `yaml:"data_dir,omitempty"`

	RawFile    string `yaml:"raw_file,omitempty"`
	SubsetFile string `yaml:"subset_file,omitempty"`

	// DBPath is the SQLite database file. Supports ~ expansion.
	DBPath string `yaml:"db_path,omitempty"`
	Table  string `yaml:"table,omitempty"`

	// RowLimit caps the number of data rows copied into the subset file.
	RowLimit int `yaml:"row_limit,omitempty"`

	// HTTPTimeout bounds the download; zero waits indefinitely.
	HTTPTimeout time.Duration `yaml:"http_timeout,omitempty"`
}

// Default returns the built-in configuration: everything relative to
// the working directory, matching the dataset's conventional layout.
func Default() *Config {
	return &Config{
		SourceURL:  DefaultSourceURL,
		DataDir:    "data",
		RawFile:    "Nutrition.csv",
		SubsetFile: "Nutrition_subset.csv",
		DBPath:     "Nutrition.db",
		Table:      storage.DefaultTable,
		RowLimit:   100,
	}
}

// RawPath returns where the downloaded dataset is written.
func (c *Config) RawPath() string {
	return filepath.Join(ExpandPath(c.DataDir), c.RawFile)
}

// SubsetPath returns where the projected subset file is written.
func (c *Config) SubsetPath() string {
	return filepath.Join(ExpandPath(c.DataDir), c.SubsetFile)
}

// DatabasePath returns the database file path with ~ expanded.
func (c *Config) DatabasePath() string {
	return ExpandPath(c.DBPath)
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	switch {
	case c.SourceURL == "":
		return errors.New("source_url must not be empty")
	case c.DataDir == "":
		return errors.New("data_dir must not be empty")
	case c.RawFile == "" || c.SubsetFile == "":
		return errors.New("raw_file and subset_file must not be empty")
	case c.DBPath == "":
		return errors.New("db_path must not be empty")
	case !storage.ValidTableName(c.Table):
		return fmt.Errorf("invalid table name %q", c.Table)
	case c.RowLimit <= 0:
		return fmt.Errorf("row_limit must be positive, got %d", c.RowLimit)
	case c.HTTPTimeout < 0:
		return fmt.Errorf("http_timeout must not be negative, got %s", c.HTTPTimeout)
	}
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// GetConfigPath returns the default config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "nutrition", "config.yaml")
}

// Load builds the configuration from defaults, the YAML file at path
// (GetConfigPath when empty; a missing file is not an error), a .env file
// in the working directory, and NUTRITION_* environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = GetConfigPath()
	}
	if err := cfg.mergeFile(path); err != nil {
		return nil, err
	}

	_ = godotenv.Load()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvSourceURL); v != "" {
		c.SourceURL = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv(EnvDBPath); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv(EnvTable); v != "" {
		c.Table = v
	}
	if v := os.Getenv(EnvRowLimit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRowLimit, err)
		}
		c.RowLimit = n
	}
	if v := os.Getenv(EnvHTTPTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvHTTPTimeout, err)
		}
		c.HTTPTimeout = d
	}
	return nil
}

// Save writes the configuration to path as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
