package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the workspace configuration file.
const FileName = "tally.yaml"

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Environment overrides.
const (
	EnvStorageBackend = "TALLY_STORAGE_BACKEND"
	EnvLogLevel       = "TALLY_LOG_LEVEL"
	EnvReportMonths   = "TALLY_REPORT_MONTHS"
)

// Config represents the top-level tally.yaml configuration.
type Config struct {
	Business BusinessConfig `yaml:"business"`
	Storage  StorageConfig  `yaml:"storage"`
	Reports  ReportsConfig  `yaml:"reports"`
	Git      GitConfig      `yaml:"git"`
	Log      LogConfig      `yaml:"log"`
}

// BusinessConfig identifies the freelancer's business.
type BusinessConfig struct {
	Name  string `yaml:"name"`
	Owner string `yaml:"owner,omitempty"`
}

// StorageConfig selects where the document lives. Paths are relative to the
// workspace root.
type StorageConfig struct {
	Backend    string `yaml:"backend"`
	File       string `yaml:"file"`
	SQLitePath string `yaml:"sqlite_path"`
}

// ReportsConfig controls report windows.
type ReportsConfig struct {
	Months int `yaml:"months"`
	TopN   int `yaml:"top_n"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// LogConfig sets the log level (debug, info, warn, error).
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads a tally.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadWorkspace reads <root>/tally.yaml, then applies <root>/.env and the
// process environment on top of it, and validates the result.
func LoadWorkspace(root string) (*Config, error) {
	cfg, err := Load(filepath.Join(root, FileName))
	if err != nil {
		return nil, err
	}
	// A missing .env is normal.
	_ = godotenv.Load(filepath.Join(root, ".env"))
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new workspace.
func Default(businessName string) *Config {
	return &Config{
		Business: BusinessConfig{Name: businessName},
		Storage: StorageConfig{
			Backend:    BackendFile,
			File:       filepath.Join("data", "tally.json"),
			SQLitePath: filepath.Join("data", "tally.db"),
		},
		Reports: ReportsConfig{Months: 6, TopN: 5},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Tally",
			AuthorEmail: "tally@localhost",
		},
		Log: LogConfig{Level: "warn"},
	}
}

// ApplyEnv overrides file values with TALLY_* environment variables.
func (c *Config) ApplyEnv() {
	c.Storage.Backend = getEnv(EnvStorageBackend, c.Storage.Backend)
	c.Log.Level = getEnv(EnvLogLevel, c.Log.Level)
	c.Reports.Months = getEnvInt(EnvReportMonths, c.Reports.Months)
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var problems []string

	switch c.Storage.Backend {
	case BackendFile:
		if c.Storage.File == "" {
			problems = append(problems, "storage.file cannot be empty when using the file backend")
		}
	case BackendSQLite:
		if c.Storage.SQLitePath == "" {
			problems = append(problems, "storage.sqlite_path cannot be empty when using the sqlite backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid storage backend %q: must be one of [%s %s]", c.Storage.Backend, BackendFile, BackendSQLite))
	}

	if c.Reports.Months < 1 || c.Reports.Months > 120 {
		problems = append(problems, fmt.Sprintf("invalid reports.months %d: must be between 1 and 120", c.Reports.Months))
	}
	if c.Reports.TopN < 1 {
		problems = append(problems, fmt.Sprintf("invalid reports.top_n %d: must be at least 1", c.Reports.TopN))
	}

	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level %q", c.Log.Level))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// StoragePath returns the active backend's path resolved against root.
func (c *Config) StoragePath(root string) string {
	p := c.Storage.File
	if c.Storage.Backend == BackendSQLite {
		p = c.Storage.SQLitePath
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
