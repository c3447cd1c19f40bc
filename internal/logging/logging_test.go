package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger := For(New(Options{Level: slog.LevelInfo, Format: FormatJSON, Output: &buf}), "plan")
	logger.Debug("hidden")
	logger.Info("planned", "members", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "planned", entry["msg"])
	assert.Equal(t, "plan", entry["subsystem"])
	assert.InDelta(t, 3, entry["members"], 0)
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestDumpSource(t *testing.T) {
	var buf bytes.Buffer

	src := []byte("package adapters\n\nvar x = 1\n")

	DumpSource(context.Background(), New(Options{Level: slog.LevelInfo, Output: &buf}), "a.go", src)
	assert.Empty(t, buf.String(), "only at debug level")

	DumpSource(context.Background(), New(Options{Level: slog.LevelDebug, Output: &buf}), "a.go", src)
	assert.Contains(t, buf.String(), "unit=a.go")
	assert.Contains(t, buf.String(), "3  var x = 1")
}
