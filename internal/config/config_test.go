package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv clears key for the test and restores it afterwards.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestRoundTrip(t *testing.T) {
	cfg := Default("Studio Nord")
	cfg.Business.Owner = "Ana"
	cfg.Storage.Backend = BackendSQLite
	cfg.Reports.Months = 12

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default("My Studio")

	assert.Equal(t, "My Studio", cfg.Business.Name)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, filepath.Join("data", "tally.json"), cfg.Storage.File)
	assert.Equal(t, 6, cfg.Reports.Months)
	assert.Equal(t, 5, cfg.Reports.TopN)
	assert.True(t, cfg.Git.AutoCommit)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFillsMissingSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("business:\n  name: Solo\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Solo", cfg.Business.Name)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.Equal(t, 6, cfg.Reports.Months)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default("Test Biz")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Test Biz")
	assert.Contains(t, contents, "backend: file")
	assert.Contains(t, contents, "months: 6")
	assert.Contains(t, contents, "auto_commit: true")
}

func TestValidate(t *testing.T) {
	cfg := Default("x")
	cfg.Storage.Backend = "postgres"
	cfg.Reports.Months = 0
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid storage backend "postgres"`)
	assert.Contains(t, err.Error(), "invalid reports.months 0")
	assert.Contains(t, err.Error(), `invalid log level "loud"`)

	cfg = Default("x")
	cfg.Storage.Backend = BackendSQLite
	cfg.Storage.SQLitePath = ""
	assert.ErrorContains(t, cfg.Validate(), "sqlite_path")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvStorageBackend, BackendSQLite)
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvReportMonths, "12")

	cfg := Default("x")
	cfg.ApplyEnv()
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 12, cfg.Reports.Months)

	t.Setenv(EnvReportMonths, "many")
	cfg = Default("x")
	cfg.ApplyEnv()
	assert.Equal(t, 6, cfg.Reports.Months, "unparseable values are ignored")
}

func TestLoadWorkspaceDotEnv(t *testing.T) {
	unsetEnv(t, EnvStorageBackend)
	unsetEnv(t, EnvLogLevel)
	unsetEnv(t, EnvReportMonths)

	root := t.TempDir()
	require.NoError(t, Save(filepath.Join(root, FileName), Default("x")))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("TALLY_REPORT_MONTHS=3\n"), 0o644))

	cfg, err := LoadWorkspace(root)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Reports.Months)
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
}

func TestLoadWorkspaceInvalid(t *testing.T) {
	t.Setenv(EnvStorageBackend, "memory")

	root := t.TempDir()
	require.NoError(t, Save(filepath.Join(root, FileName), Default("x")))

	_, err := LoadWorkspace(root)
	assert.ErrorContains(t, err, "configuration validation failed")
}

func TestStoragePath(t *testing.T) {
	cfg := Default("x")
	assert.Equal(t, filepath.Join("/w", "data", "tally.json"), cfg.StoragePath("/w"))

	cfg.Storage.Backend = BackendSQLite
	assert.Equal(t, filepath.Join("/w", "data", "tally.db"), cfg.StoragePath("/w"))

	cfg.Storage.SQLitePath = "/var/tally.db"
	assert.Equal(t, "/var/tally.db", cfg.StoragePath("/w"))
}
