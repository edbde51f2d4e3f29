package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tubesift/tubesift/internal/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, "data/tubesift.db", cfg.Database.Path)
	assert.Equal(t, "exports", cfg.Export.OutputDir)
	assert.Equal(t, 50, cfg.Export.HistoryLimit)
	assert.Equal(t, "or", cfg.Filter.MatchPolicy)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
database:
  path: /var/lib/tubesift/records.db
export:
  output_dir: /srv/exports
  history_limit: 10
filter:
  match_policy: and
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/tubesift/records.db", cfg.Database.Path)
	assert.Equal(t, "/srv/exports", cfg.Export.OutputDir)
	assert.Equal(t, 10, cfg.Export.HistoryLimit)
	assert.Equal(t, "and", cfg.Filter.MatchPolicy)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("TUBESIFT_DATA_DIR", "/data/tubesift")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
database:
  path: ${TUBESIFT_DATA_DIR}/records.db
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/tubesift/records.db", cfg.Database.Path)
	// Unset fields still fall back to defaults.
	assert.Equal(t, "exports", cfg.Export.OutputDir)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
