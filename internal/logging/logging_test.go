// ABOUTME: Tests for logger construction.
// ABOUTME: Covers level fallback, JSON output and the rotating file.

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/harper/notely/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFallback(t *testing.T) {
	l, err := newLogger(config.LogConfig{Level: "chatty"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())

	l, err = New(config.LogConfig{Level: "debug"})
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l, err := newLogger(config.LogConfig{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)

	l.WithField("note", "n1").Info("note deleted")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "note deleted", entry["msg"])
	assert.Equal(t, "n1", entry["note"])
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "notely.log")
	var console bytes.Buffer
	l, err := newLogger(config.LogConfig{Level: "warn", File: path, MaxSize: 1}, &console)
	require.NoError(t, err)

	l.Info("hidden")
	l.Warn("fanout failed")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "fanout failed")
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, console.String(), "fanout failed")
}
