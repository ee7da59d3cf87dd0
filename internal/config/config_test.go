package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Store.Backend = "sqlite"
	cfg.Store.Path = "data/mappings.db"
	cfg.Statement.DateLayouts = []string{"02/01/2006"}
	cfg.Git.AutoCommit = true

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "csv", cfg.Store.Backend)
	assert.Equal(t, "known_recipients.csv", cfg.Store.Path)
	assert.Equal(t, []string{"Date", "Remarks"}, cfg.Statement.HeaderTokens)
	assert.Equal(t, "Debit", cfg.Statement.DebitColumn)
	assert.Equal(t, 2, cfg.Statement.MaxTrailingMissing)
	assert.False(t, cfg.Git.AutoCommit)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("statement:\n  debit_column: Withdrawal Amt.\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Withdrawal Amt.", cfg.Statement.DebitColumn)
	assert.Equal(t, "Remarks", cfg.Statement.RemarksColumn)
	assert.Equal(t, "csv", cfg.Store.Backend)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Store.Backend = "redis"
	cfg.Statement.DebitColumn = ""
	cfg.Statement.MaxTrailingMissing = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid store backend "redis"`)
	assert.Contains(t, err.Error(), "debit_column cannot be empty")
	assert.Contains(t, err.Error(), "max_trailing_missing cannot be negative")
}

func TestValidate_MemoryNeedsNoPath(t *testing.T) {
	cfg := Default()
	cfg.Store.Backend = "memory"
	cfg.Store.Path = ""
	assert.NoError(t, cfg.Validate())
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "backend: csv")
	assert.Contains(t, contents, "path: known_recipients.csv")
	assert.Contains(t, contents, "remarks_column: Remarks")
	assert.Contains(t, contents, "auto_commit: false")
}
