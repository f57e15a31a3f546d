package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestLoggerLevelChanges(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, "warn")

	l.Info("hidden")
	assert.Zero(t, buf.Len())

	l.SetLevel("info")
	assert.Equal(t, slog.LevelInfo, l.Level())
	l.Info("shown", "path", "/a")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "/a", rec["path"])
}

func TestOpenAppendsToFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "navsurf.log")

	l, err := Open(path, "info")
	require.NoError(t, err)
	l.Warn("first")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"first"`)
}
