// Package config provides CLI configuration management for the rhymebook
// command-line tool. It supports loading configuration from YAML files and
// environment variables, with command-line flags layered on top by cmd.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rhymebook/rhymebook-cli/pkg/db"
)

// OutputFormat defines the supported output formats for CLI results.
type OutputFormat string

const (
	// OutputFormatText is human-readable plain text output.
	OutputFormatText OutputFormat = "text"
	// OutputFormatJSON is JSON-formatted output for machine processing.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatYAML is YAML-formatted output for machine processing.
	OutputFormatYAML OutputFormat = "yaml"
)

// Default configuration values.
const (
	DefaultSourceURL     = "https://www.therightrhymes.com"
	DefaultSourceTimeout = 30 * time.Second
	DefaultOwner         = "rhymebook"
	DefaultOutputFormat  = OutputFormatText
	DefaultConfigDir     = ".rhymebook"
	DefaultConfigFile    = "config.yaml"
)

// CLIConfig holds the CLI configuration settings.
type CLIConfig struct {
	// SourceURL is the base URL of the remote dictionary source that seed
	// commands fetch random records from.
	SourceURL string `yaml:"source_url"`

	// SourceTimeout bounds each fetch against the remote source.
	SourceTimeout time.Duration `yaml:"source_timeout"`

	// Owner is the principal that ingested records are created under.
	Owner string `yaml:"owner"`

	// OutputFormat specifies the default output format for commands.
	OutputFormat OutputFormat `yaml:"output_format"`

	// Debug enables verbose debug logging.
	Debug bool `yaml:"debug,omitempty"`

	// Database holds the PostgreSQL connection settings. When unset (no
	// host), commands fall back to the in-memory store.
	Database *db.Config `yaml:"database,omitempty"`
}

// DefaultConfig returns a CLIConfig with default values.
func DefaultConfig() *CLIConfig {
	return &CLIConfig{
		SourceURL:     DefaultSourceURL,
		SourceTimeout: DefaultSourceTimeout,
		Owner:         DefaultOwner,
		OutputFormat:  DefaultOutputFormat,
	}
}

// ConfigDir returns the configuration directory path.
// Uses $RHYMEBOOK_CONFIG_DIR if set, otherwise ~/.rhymebook
func ConfigDir() (string, error) {
	if dir := os.Getenv("RHYMEBOOK_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	return filepath.Join(home, DefaultConfigDir), nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultConfigFile), nil
}

// LoadConfig loads the CLI configuration from file and environment
// variables. Configuration is loaded in this order (later sources override
// earlier):
// 1. Default values
// 2. Config file (~/.rhymebook/config.yaml or $RHYMEBOOK_CONFIG_DIR/config.yaml)
// 3. Environment variables (RHYMEBOOK_SOURCE_URL, RHYMEBOOK_OWNER, ...)
func LoadConfig() (*CLIConfig, error) {
	cfg := DefaultConfig()

	configPath, err := ConfigPath()
	if err != nil {
		return nil, fmt.Errorf("getting config path: %w", err)
	}

	if _, err := os.Stat(configPath); err == nil {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
	}

	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(cfg *CLIConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	// We need a temp struct for unmarshaling duration as string.
	type configFile struct {
		SourceURL     string       `yaml:"source_url"`
		SourceTimeout string       `yaml:"source_timeout"`
		Owner         string       `yaml:"owner"`
		OutputFormat  OutputFormat `yaml:"output_format"`
		Debug         bool         `yaml:"debug"`
		Database      *db.Config   `yaml:"database"`
	}

	var fileCfg configFile
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	if fileCfg.SourceURL != "" {
		cfg.SourceURL = fileCfg.SourceURL
	}
	if fileCfg.SourceTimeout != "" {
		timeout, err := time.ParseDuration(fileCfg.SourceTimeout)
		if err != nil {
			return fmt.Errorf("parsing source_timeout: %w", err)
		}
		cfg.SourceTimeout = timeout
	}
	if fileCfg.Owner != "" {
		cfg.Owner = fileCfg.Owner
	}
	if fileCfg.OutputFormat != "" {
		cfg.OutputFormat = fileCfg.OutputFormat
	}
	if fileCfg.Database != nil {
		cfg.Database = withDatabaseDefaults(fileCfg.Database)
	}
	cfg.Debug = fileCfg.Debug

	return nil
}

// withDatabaseDefaults fills fields the YAML left unset, so a minimal
// database section (host/user/password) still yields a usable config.
func withDatabaseDefaults(fileCfg *db.Config) *db.Config {
	cfg := db.DefaultConfig()
	defaults := *cfg
	*cfg = *fileCfg
	if cfg.Host == "" {
		cfg.Host = defaults.Host
	}
	if cfg.Port == 0 {
		cfg.Port = defaults.Port
	}
	if cfg.Database == "" {
		cfg.Database = defaults.Database
	}
	if cfg.User == "" {
		cfg.User = defaults.User
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = defaults.SSLMode
	}
	if cfg.MaxConns == 0 {
		cfg.MaxConns = defaults.MaxConns
	}
	if cfg.MinConns == 0 {
		cfg.MinConns = defaults.MinConns
	}
	if cfg.MaxConnLifetime == 0 {
		cfg.MaxConnLifetime = defaults.MaxConnLifetime
	}
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = defaults.ConnectTimeout
	}
	return cfg
}

// loadFromEnv overlays environment variables onto the configuration.
func loadFromEnv(cfg *CLIConfig) {
	if v := os.Getenv("RHYMEBOOK_SOURCE_URL"); v != "" {
		cfg.SourceURL = v
	}

	if v := os.Getenv("RHYMEBOOK_SOURCE_TIMEOUT"); v != "" {
		if timeout, err := time.ParseDuration(v); err == nil {
			cfg.SourceTimeout = timeout
		}
	}

	if v := os.Getenv("RHYMEBOOK_OWNER"); v != "" {
		cfg.Owner = v
	}

	if v := os.Getenv("RHYMEBOOK_OUTPUT_FORMAT"); v != "" {
		cfg.OutputFormat = OutputFormat(v)
	}

	if v := os.Getenv("RHYMEBOOK_DEBUG"); v == "true" || v == "1" {
		cfg.Debug = true
	}

	// Database env vars can both fill in an existing section and stand up
	// one on their own.
	if cfg.Database == nil && os.Getenv("RHYMEBOOK_DB_HOST") != "" {
		cfg.Database = db.DefaultConfig()
	}
	if cfg.Database != nil {
		cfg.Database.ApplyEnv()
	}
}

// Validate checks that the configuration is valid.
func (c *CLIConfig) Validate() error {
	if c.SourceURL == "" {
		return fmt.Errorf("source_url is required")
	}

	if c.SourceTimeout <= 0 {
		return fmt.Errorf("source_timeout must be positive")
	}

	if c.Owner == "" {
		return fmt.Errorf("owner is required")
	}

	if !c.OutputFormat.IsValid() {
		return fmt.Errorf("invalid output_format: %q (must be text, json, or yaml)", c.OutputFormat)
	}

	if c.Database != nil {
		if err := c.Database.Validate(); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}

	return nil
}

// HasDatabase reports whether a PostgreSQL backend is configured.
func (c *CLIConfig) HasDatabase() bool {
	return c.Database != nil && c.Database.Host != ""
}

// IsValid checks if the output format is valid.
func (f OutputFormat) IsValid() bool {
	switch f {
	case OutputFormatText, OutputFormatJSON, OutputFormatYAML:
		return true
	default:
		return false
	}
}

// String returns the string representation of the output format.
func (f OutputFormat) String() string {
	return string(f)
}

// SaveConfig saves the configuration to the config file.
func SaveConfig(cfg *CLIConfig) error {
	configDir, err := ConfigDir()
	if err != nil {
		return fmt.Errorf("getting config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(configDir, DefaultConfigFile)

	// Convert to YAML-friendly format with duration as string.
	type configFile struct {
		SourceURL     string       `yaml:"source_url"`
		SourceTimeout string       `yaml:"source_timeout"`
		Owner         string       `yaml:"owner"`
		OutputFormat  OutputFormat `yaml:"output_format"`
		Debug         bool         `yaml:"debug,omitempty"`
		Database      *db.Config   `yaml:"database,omitempty"`
	}

	fileCfg := configFile{
		SourceURL:     cfg.SourceURL,
		SourceTimeout: cfg.SourceTimeout.String(),
		Owner:         cfg.Owner,
		OutputFormat:  cfg.OutputFormat,
		Debug:         cfg.Debug,
		Database:      cfg.Database,
	}

	data, err := yaml.Marshal(&fileCfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// EnsureConfigDir creates the configuration directory if it doesn't exist.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}
