package storage

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFileWritesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "navsurf", "config.json")

	cfg, err := LoadConfigFile(path, map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Mode, cfg.Mode)
	assert.Equal(t, path, cfg.Path())

	_, err = os.Stat(path)
	assert.NoError(t, err, "defaults are saved")
}

func TestLoadConfigFileEnvOverridesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"mode":"hash","basename":"/app","hash_type":"noslash","key_length":8}`), 0o644))

	cfg, err := LoadConfigFile(path, map[string]string{
		"NAVSURF_HASH_TYPE":  "hashbang",
		"NAVSURF_KEY_LENGTH": "12",
		"UNRELATED":          "x",
	})
	require.NoError(t, err)

	assert.Equal(t, ModeHash, cfg.Mode)
	assert.Equal(t, "/app", cfg.Basename)
	assert.Equal(t, "hashbang", cfg.HashType)
	assert.Equal(t, 12, cfg.KeyLength)
	assert.Equal(t, "default", cfg.Theme, "unset keys keep defaults")
}

func TestLoadConfigFileRejectsInvalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")

	_, err := LoadConfigFile(path, map[string]string{"NAVSURF_MODE": "tabs"})
	assert.ErrorContains(t, err, "invalid mode")

	_, err = LoadConfigFile(path, map[string]string{"NAVSURF_KEY_LENGTH": "40"})
	assert.ErrorContains(t, err, "invalid key length")

	_, err = LoadConfigFile(path, map[string]string{"NAVSURF_KEY_LENGTH": "many"})
	assert.ErrorContains(t, err, "parsing environment")
}

func TestLoadConfigFileBadJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o644))

	_, err := LoadConfigFile(path, map[string]string{})
	assert.ErrorContains(t, err, "parsing config")
}

func TestLoadConfigFileLogsSaveFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	// The link target lives in a directory that does not exist, so reading
	// finds no file and writing the defaults fails.
	if err := os.Symlink(filepath.Join(dir, "missing", "config.json"), path); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	cfg, err := LoadConfigFile(path, map[string]string{})
	require.NoError(t, err, "a config that cannot be saved still loads")
	assert.Equal(t, DefaultConfig().Mode, cfg.Mode)
	assert.Contains(t, buf.String(), "saving default config")
	assert.Contains(t, buf.String(), path)
}
