package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerMethods(t *testing.T) {
	assert.NoError(t, os.Setenv("APP_ENV", "dev"))
	defer func() { assert.NoError(t, os.Unsetenv("APP_ENV")) }()
	l := NewZerologLogger("test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestZerologLoggerLevelAndFields(t *testing.T) {
	require.True(t, SetLevel("debug"))
	t.Cleanup(func() { SetLevel("info") })
	assert.False(t, SetLevel("loud"))

	var buf bytes.Buffer
	l := NewZerologLoggerWithWriter("engine", &buf)
	l.Debugw("allocation", map[string]any{"brigade": "B1", "committed": 110.0})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "engine", line["component"])
	assert.Equal(t, "B1", line["brigade"])
	assert.Equal(t, "debug", line["level"])
}

func TestZerologLoggerFiltersBelowLevel(t *testing.T) {
	require.True(t, SetLevel("warn"))
	t.Cleanup(func() { SetLevel("info") })
	var buf bytes.Buffer
	l := NewZerologLoggerWithWriter("engine", &buf)
	l.Infof("hidden")
	l.Debugw("hidden", map[string]any{"k": 1})
	l.Warnf("shown")
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestRotatingOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "brigade.log")
	w, err := NewRotatingWriter(path, 1, 2, 1)
	require.NoError(t, err)
	SetOutput(w)
	t.Cleanup(func() { SetOutput(nil) })

	NewZerologLogger("driver").Infof("day %d done", 1)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"driver"`)
	assert.Contains(t, string(data), "day 1 done")
}
