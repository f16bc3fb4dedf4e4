package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("STUDYMATE_LLM_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, "duckduckgo", cfg.WebSearch.Provider)
	assert.True(t, cfg.TTS.Enabled)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Setenv("STUDYMATE_LLM_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
llm:
  provider: anthropic
  model: claude-sonnet-4-20250514
  timeout: 90s
web_search:
  provider: tavily
  api_key: tvly-file-key
logging:
  debug_mode: true
  level: debug
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.LLM.Model)
	assert.Equal(t, "tavily", cfg.WebSearch.Provider)
	assert.Equal(t, "tvly-file-key", cfg.WebSearch.APIKey)
	assert.True(t, cfg.Logging.DebugMode)
	// Untouched sections keep defaults.
	assert.Equal(t, "duckduckgo", DefaultConfig().WebSearch.Provider)
	assert.Equal(t, ".studymate", cfg.StateDir)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm: [not a map"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestApplyEnv(t *testing.T) {
	t.Run("dedicated key wins over OPENAI_API_KEY", func(t *testing.T) {
		t.Setenv("STUDYMATE_LLM_API_KEY", "sm-key")
		t.Setenv("OPENAI_API_KEY", "oa-key")

		cfg := DefaultConfig()
		cfg.applyEnv()
		assert.Equal(t, "sm-key", cfg.LLM.APIKey)
	})

	t.Run("OPENAI_API_KEY fills empty key", func(t *testing.T) {
		t.Setenv("STUDYMATE_LLM_API_KEY", "")
		t.Setenv("OPENAI_API_KEY", "oa-key")

		cfg := DefaultConfig()
		cfg.applyEnv()
		assert.Equal(t, "oa-key", cfg.LLM.APIKey)
	})

	t.Run("TTS key falls back to LLM key", func(t *testing.T) {
		t.Setenv("STUDYMATE_LLM_API_KEY", "sm-key")
		t.Setenv("STUDYMATE_TTS_API_KEY", "")

		cfg := DefaultConfig()
		cfg.applyEnv()
		assert.Equal(t, "sm-key", cfg.TTS.APIKey)
	})

	t.Run("dedicated TTS key wins", func(t *testing.T) {
		t.Setenv("STUDYMATE_LLM_API_KEY", "sm-key")
		t.Setenv("STUDYMATE_TTS_API_KEY", "tts-key")

		cfg := DefaultConfig()
		cfg.applyEnv()
		assert.Equal(t, "tts-key", cfg.TTS.APIKey)
	})
}

func TestTimeouts(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 120*time.Second, cfg.LLMTimeout())
	assert.Equal(t, 30*time.Second, cfg.WebSearchTimeout())

	cfg.LLM.Timeout = "45s"
	assert.Equal(t, 45*time.Second, cfg.LLMTimeout())

	cfg.LLM.Timeout = "garbage"
	assert.Equal(t, 120*time.Second, cfg.LLMTimeout())

	cfg.WebSearch.Timeout = "-5s"
	assert.Equal(t, 30*time.Second, cfg.WebSearchTimeout())
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("STUDYMATE_LLM_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Name = "custom"
	cfg.LLM.Model = "gpt-4o"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", loaded.Name)
	assert.Equal(t, "gpt-4o", loaded.LLM.Model)
}
