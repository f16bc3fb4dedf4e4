package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// categoryLogFile finds the dated log file for a category under stateDir/logs.
func categoryLogFile(t *testing.T, stateDir string, category Category) string {
	t.Helper()
	logsDir := filepath.Join(stateDir, "logs")
	entries, err := os.ReadDir(logsDir)
	require.NoError(t, err)
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), "_"+string(category)+".log") {
			return filepath.Join(logsDir, e.Name())
		}
	}
	t.Fatalf("no %s log file in %s", category, logsDir)
	return ""
}

func resetLogging(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		Close()
		require.NoError(t, Initialize("", Options{}))
	})
}

func TestLogging_DisabledIsNoOp(t *testing.T) {
	resetLogging(t)
	require.NoError(t, Initialize(t.TempDir(), Options{DebugMode: false}))

	assert.False(t, IsCategoryEnabled(CategoryAgents))

	// Writes through a no-op logger must not panic or create files.
	l := Get(CategoryAgents)
	l.Debug("debug %d", 1)
	l.Info("info")
	l.Warn("warn")
	l.Error("error")
}

func TestLogging_DebugModeWritesCategoryFiles(t *testing.T) {
	resetLogging(t)
	stateDir := t.TempDir()
	require.NoError(t, Initialize(stateDir, Options{DebugMode: true, Level: "debug"}))

	Get(CategoryPipeline).Info("step started: %s", "research")
	Get(CategoryPipeline).Debug("fine detail")

	data, err := os.ReadFile(categoryLogFile(t, stateDir, CategoryPipeline))
	require.NoError(t, err)
	assert.Contains(t, string(data), "[INFO] step started: research")
	assert.Contains(t, string(data), "[DEBUG] fine detail")
}

func TestLogging_LevelFiltering(t *testing.T) {
	resetLogging(t)
	stateDir := t.TempDir()
	require.NoError(t, Initialize(stateDir, Options{DebugMode: true, Level: "warn"}))

	l := Get(CategoryLLM)
	l.Info("should be dropped")
	l.Warn("should appear")

	data, err := os.ReadFile(categoryLogFile(t, stateDir, CategoryLLM))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "should be dropped")
	assert.Contains(t, string(data), "[WARN] should appear")
}

func TestLogging_CategoryToggle(t *testing.T) {
	resetLogging(t)
	require.NoError(t, Initialize(t.TempDir(), Options{
		DebugMode:  true,
		Categories: map[string]bool{"websearch": false},
	}))

	assert.False(t, IsCategoryEnabled(CategoryWebSearch))
	// Categories absent from the map stay enabled.
	assert.True(t, IsCategoryEnabled(CategoryDocstore))
}

func TestLogging_DebugModeRequiresStateDir(t *testing.T) {
	resetLogging(t)
	err := Initialize("", Options{DebugMode: true})
	assert.Error(t, err)
}
