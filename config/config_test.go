package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefault verifies the built-in configuration
func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 25*time.Second, cfg.Timeout())
	assert.Equal(t, 5, cfg.Fetch.MaxRetries)
	assert.Equal(t, "catalog.db", cfg.Storage.CatalogDSN)
	assert.Equal(t, "snapshots", cfg.Storage.SnapshotsDir)
}

// TestLoadFilePartialOverride verifies file values layer over defaults
func TestLoadFilePartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
fetch:
  timeout_seconds: 10
  user_agent: custom-agent
storage:
  snapshots_dir: /tmp/snapshots
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.Timeout())
	assert.Equal(t, "custom-agent", cfg.Fetch.UserAgent)
	assert.Equal(t, 5, cfg.Fetch.MaxRetries, "unset keys keep defaults")
	assert.Equal(t, "/tmp/snapshots", cfg.Storage.SnapshotsDir)
	assert.Equal(t, "catalog.db", cfg.Storage.CatalogDSN)
}

// TestLoadFileMissing verifies an explicit path must exist
func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

// TestLoadFileInvalid verifies malformed YAML is an error
func TestLoadFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fetch: [not a map"), 0o600))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

// TestEnvOverrides verifies the storage env vars win over file values
func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  catalog_dsn: file.db\n"), 0o600))

	t.Setenv("CHARTFED_CATALOG_DSN", "env.db")
	t.Setenv("CHARTFED_SNAPSHOTS_DIR", "/env/snapshots")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "env.db", cfg.Storage.CatalogDSN)
	assert.Equal(t, "/env/snapshots", cfg.Storage.SnapshotsDir)
}
