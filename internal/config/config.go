// Package config loads studymate configuration from YAML with environment
// variable overrides for secrets.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all studymate configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// StateDir is where logs, the document database, and generated
	// podcasts live. Defaults to .studymate in the working directory.
	StateDir string `yaml:"state_dir"`

	LLM       LLMConfig       `yaml:"llm"`
	WebSearch WebSearchConfig `yaml:"web_search"`
	Docstore  DocstoreConfig  `yaml:"docstore"`
	TTS       TTSConfig       `yaml:"tts"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LLMConfig configures the LLM provider client.
type LLMConfig struct {
	Provider string `yaml:"provider"` // openai, anthropic, gemini
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	BaseURL  string `yaml:"base_url"`
	Timeout  string `yaml:"timeout"`
}

// WebSearchConfig configures the web search provider.
type WebSearchConfig struct {
	Provider string `yaml:"provider"` // duckduckgo, tavily
	APIKey   string `yaml:"api_key"`  // tavily only
	Timeout  string `yaml:"timeout"`
}

// DocstoreConfig configures the local document library.
type DocstoreConfig struct {
	DatabasePath string `yaml:"database_path"`

	// Embedding provider: "genai" or "" for the keyword fallback.
	EmbeddingProvider string `yaml:"embedding_provider"`
	EmbeddingAPIKey   string `yaml:"embedding_api_key"`
	EmbeddingModel    string `yaml:"embedding_model"`
}

// TTSConfig configures podcast audio synthesis.
type TTSConfig struct {
	Enabled bool   `yaml:"enabled"`
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	OutDir  string `yaml:"out_dir"`
}

// LoggingConfig configures the category file logger.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug_mode"`
	Level      string          `yaml:"level"`
	Categories map[string]bool `yaml:"categories"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Name:     "studymate",
		Version:  "1.0.0",
		StateDir: ".studymate",
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
			Timeout:  "120s",
		},
		WebSearch: WebSearchConfig{
			Provider: "duckduckgo",
			Timeout:  "30s",
		},
		Docstore: DocstoreConfig{
			DatabasePath:   filepath.Join(".studymate", "documents.db"),
			EmbeddingModel: "gemini-embedding-001",
		},
		TTS: TTSConfig{
			Enabled: true,
			BaseURL: "https://api.openai.com/v1",
			Model:   "tts-1",
			OutDir:  filepath.Join(".studymate", "podcasts"),
		},
		Logging: LoggingConfig{
			DebugMode: false,
			Level:     "info",
		},
	}
}

// Load reads configuration from a YAML file, applying defaults for missing
// fields and environment overrides for API keys. A missing file is not an
// error: defaults plus environment are returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overrides secrets from the environment. Environment wins over the
// file so keys never have to be committed.
func (c *Config) applyEnv() {
	if v := os.Getenv("STUDYMATE_LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" && c.LLM.APIKey == "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("STUDYMATE_TAVILY_API_KEY"); v != "" {
		c.WebSearch.APIKey = v
	}
	if v := os.Getenv("STUDYMATE_EMBEDDING_API_KEY"); v != "" {
		c.Docstore.EmbeddingAPIKey = v
	}
	if v := os.Getenv("STUDYMATE_TTS_API_KEY"); v != "" {
		c.TTS.APIKey = v
	}
	if c.TTS.APIKey == "" {
		c.TTS.APIKey = c.LLM.APIKey
	}
}

// LLMTimeout parses the LLM timeout, falling back to two minutes.
func (c *Config) LLMTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil || d <= 0 {
		return 120 * time.Second
	}
	return d
}

// WebSearchTimeout parses the web search timeout, falling back to 30s.
func (c *Config) WebSearchTimeout() time.Duration {
	d, err := time.ParseDuration(c.WebSearch.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// Save writes the config to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
