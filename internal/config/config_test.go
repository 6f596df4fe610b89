// ABOUTME: Tests for config loading, env overrides and saving.
// ABOUTME: Isolates XDG directories and the environment per test.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, k := range []string{"NOTELY_BACKEND", "NOTELY_SQLITE_PATH", "NOTELY_BADGER_DIR", "NOTELY_POSTGRES_DSN", "NOTELY_MAX_RETRIES", "NOTELY_LOG_LEVEL", "NOTELY_LOG_FILE"} {
		t.Setenv(k, "")
	}
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, filepath.Join(dir, "data", "notely", "notely.db"), cfg.SQLite.Path)
	assert.Equal(t, filepath.Join(dir, "data", "notely", "badger"), cfg.Badger.Dir)
	assert.Equal(t, 16, cfg.Engine.MaxRetries)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadYAML(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "notely.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
backend: badger
badger:
  in_memory: true
engine:
  max_retries: 4
log:
  level: debug
  format: json
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, BackendBadger, cfg.Backend)
	assert.True(t, cfg.Badger.InMemory)
	assert.Equal(t, 4, cfg.Engine.MaxRetries)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 10, cfg.Log.MaxSize, "unset keys keep defaults")
}

func TestLoadBadYAML(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: [unterminated"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("NOTELY_BACKEND=postgres\nNOTELY_POSTGRES_DSN=host=from-dotenv\nNOTELY_LOG_LEVEL=error\n"), 0600))
	t.Setenv("NOTELY_POSTGRES_DSN", "host=from-env")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, BackendPostgres, cfg.Backend)
	assert.Equal(t, "host=from-env", cfg.Postgres.DSN, "process env beats .env")
	assert.Equal(t, "error", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Backend = "mongo"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Backend = BackendPostgres
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Backend = BackendBadger
	cfg.Badger.Dir = ""
	assert.Error(t, cfg.Validate())
	cfg.Badger.InMemory = true
	assert.NoError(t, cfg.Validate())

	cfg.Log.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	isolate(t)
	cfg := Default()
	cfg.Backend = BackendBadger
	cfg.Log.File = "/tmp/notely.log"
	require.NoError(t, Save(cfg, ""))

	info, err := os.Stat(ConfigPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
