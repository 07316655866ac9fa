package logutils

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/fitsel/internal/core/logging"
)

func TestNew_InvalidLevel(t *testing.T) {
	_, closer, err := New("loud", "")
	require.Error(t, err)
	closer()
}

func TestNew_WritesJsonWithContextFields(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "fitsel.log")

	logger, closer, err := New("debug", file)
	require.NoError(t, err)

	ctx := logging.WithTabID(logging.WithRequestID(context.Background(), "req-1"), "caltab")
	logger.Info().Ctx(ctx).Msg("loaded")
	logger.Debug().Msg("plain")
	closer()

	data, err := os.ReadFile(file)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "loaded", first["message"])
	assert.Equal(t, "req-1", first["request_id"])
	assert.Equal(t, "caltab", first["tab_id"])
	assert.Contains(t, first, "time")

	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.NotContains(t, second, "request_id")
}

func TestNew_LevelFilters(t *testing.T) {
	file := filepath.Join(t.TempDir(), "fitsel.log")

	logger, closer, err := New("warn", file)
	require.NoError(t, err)
	logger.Info().Msg("dropped")
	logger.Warn().Msg("kept")
	closer()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}
