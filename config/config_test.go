package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhymebook/rhymebook-cli/pkg/db"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultSourceURL, cfg.SourceURL)
	assert.Equal(t, DefaultSourceTimeout, cfg.SourceTimeout)
	assert.Equal(t, DefaultOwner, cfg.Owner)
	assert.Equal(t, OutputFormatText, cfg.OutputFormat)
	assert.False(t, cfg.HasDatabase())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigDefaultsWhenNoFile(t *testing.T) {
	t.Setenv("RHYMEBOOK_CONFIG_DIR", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultSourceURL, cfg.SourceURL)
	assert.Equal(t, DefaultOwner, cfg.Owner)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RHYMEBOOK_CONFIG_DIR", dir)

	content := `source_url: http://localhost:8000
source_timeout: 5s
owner: ejlarsen
output_format: json
debug: true
database:
  host: db.internal
  port: 5432
  database: rhymebook
  user: rhymebook
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte(content), 0600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.SourceURL)
	assert.Equal(t, 5*time.Second, cfg.SourceTimeout)
	assert.Equal(t, "ejlarsen", cfg.Owner)
	assert.Equal(t, OutputFormatJSON, cfg.OutputFormat)
	assert.True(t, cfg.Debug)
	require.True(t, cfg.HasDatabase())
	assert.Equal(t, "db.internal", cfg.Database.Host)
}

func TestLoadConfigPartialDatabaseSection(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RHYMEBOOK_CONFIG_DIR", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile),
		[]byte("database:\n  host: db.internal\n"), 0600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.True(t, cfg.HasDatabase())
	assert.Equal(t, "db.internal", cfg.Database.Host)
	// Unset fields fall back to the database defaults.
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "rhymebook", cfg.Database.Database)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("RHYMEBOOK_CONFIG_DIR", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile),
		[]byte("owner: from-file\n"), 0600))

	t.Setenv("RHYMEBOOK_OWNER", "from-env")
	t.Setenv("RHYMEBOOK_SOURCE_TIMEOUT", "2s")
	t.Setenv("RHYMEBOOK_OUTPUT_FORMAT", "yaml")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Owner)
	assert.Equal(t, 2*time.Second, cfg.SourceTimeout)
	assert.Equal(t, OutputFormatYAML, cfg.OutputFormat)
}

func TestLoadConfigDatabaseFromEnvOnly(t *testing.T) {
	t.Setenv("RHYMEBOOK_CONFIG_DIR", t.TempDir())
	t.Setenv("RHYMEBOOK_DB_HOST", "env-db")
	t.Setenv("RHYMEBOOK_DB_PASSWORD", "hunter2")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.True(t, cfg.HasDatabase())
	assert.Equal(t, "env-db", cfg.Database.Host)
	assert.Equal(t, "hunter2", cfg.Database.Password)
}

func TestLoadConfigInvalidFormat(t *testing.T) {
	t.Setenv("RHYMEBOOK_CONFIG_DIR", t.TempDir())
	t.Setenv("RHYMEBOOK_OUTPUT_FORMAT", "xml")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output_format")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CLIConfig)
		wantErr string
	}{
		{"valid", func(c *CLIConfig) {}, ""},
		{"missing source", func(c *CLIConfig) { c.SourceURL = "" }, "source_url"},
		{"bad timeout", func(c *CLIConfig) { c.SourceTimeout = 0 }, "source_timeout"},
		{"missing owner", func(c *CLIConfig) { c.Owner = "" }, "owner"},
		{"bad format", func(c *CLIConfig) { c.OutputFormat = "csv" }, "output_format"},
		{"bad database", func(c *CLIConfig) {
			c.Database = &db.Config{Host: "h"} // missing database/user
		}, "database"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestSaveAndReloadConfig(t *testing.T) {
	t.Setenv("RHYMEBOOK_CONFIG_DIR", t.TempDir())

	cfg := DefaultConfig()
	cfg.Owner = "ejlarsen"
	cfg.SourceTimeout = 12 * time.Second
	require.NoError(t, SaveConfig(cfg))

	loaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "ejlarsen", loaded.Owner)
	assert.Equal(t, 12*time.Second, loaded.SourceTimeout)
}

func TestOutputFormat(t *testing.T) {
	assert.True(t, OutputFormatText.IsValid())
	assert.True(t, OutputFormatJSON.IsValid())
	assert.True(t, OutputFormatYAML.IsValid())
	assert.False(t, OutputFormat("csv").IsValid())
	assert.Equal(t, "json", OutputFormatJSON.String())
}
