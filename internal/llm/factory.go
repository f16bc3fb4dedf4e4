package llm

import (
	"fmt"
	"time"

	"studymate/internal/config"
)

// NewClient constructs a provider client from configuration.
// Supported providers: openai (and any OpenAI-compatible endpoint via
// base_url), anthropic, gemini.
func NewClient(cfg config.LLMConfig) (Client, error) {
	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil || timeout <= 0 {
		timeout = 120 * time.Second
	}

	switch cfg.Provider {
	case "openai", "":
		return NewOpenAIClientWithConfig(OpenAIConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: timeout,
		}), nil
	case "anthropic":
		return NewAnthropicClientWithConfig(AnthropicConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: timeout,
		}), nil
	case "gemini":
		return NewGeminiClientWithConfig(GeminiConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
			Timeout: timeout,
		}), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %q (use openai, anthropic, or gemini)", cfg.Provider)
	}
}
