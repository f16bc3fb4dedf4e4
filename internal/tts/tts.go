// Package tts converts podcast scripts into audio via the OpenAI speech API.
// Synthesis is strictly a side effect: callers treat failures as degradations,
// never as fatal errors.
package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"studymate/internal/logging"
)

// Supported voices and formats for the OpenAI speech endpoint.
var (
	SupportedVoices  = []string{"alloy", "echo", "fable", "onyx", "nova", "shimmer"}
	SupportedFormats = []string{"mp3", "opus", "aac", "flac"}
)

// Synthesizer converts a script into an audio file and returns its path.
type Synthesizer interface {
	Synthesize(ctx context.Context, script, voice, format string) (string, error)
}

// OpenAIClient implements Synthesizer against the /audio/speech endpoint.
type OpenAIClient struct {
	apiKey     string
	baseURL    string
	model      string
	outDir     string
	httpClient *http.Client
}

// Config holds TTS client configuration.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	OutDir  string
	Timeout time.Duration
}

// NewOpenAIClient creates a speech client.
func NewOpenAIClient(cfg Config) *OpenAIClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "tts-1"
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "podcasts"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 300 * time.Second
	}
	return &OpenAIClient{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		outDir:  cfg.OutDir,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type speechRequest struct {
	Model          string `json:"model"`
	Voice          string `json:"voice"`
	Input          string `json:"input"`
	ResponseFormat string `json:"response_format"`
}

// Synthesize generates an audio file from the script. [PAUSE] markers are
// stripped before synthesis.
func (c *OpenAIClient) Synthesize(ctx context.Context, script, voice, format string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("TTS API key not configured")
	}

	cleaned := strings.ReplaceAll(script, "[PAUSE]", ". ")

	payload, err := json.Marshal(speechRequest{
		Model:          c.model,
		Voice:          voice,
		Input:          cleaned,
		ResponseFormat: format,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/audio/speech", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("speech request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("speech API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := os.MkdirAll(c.outDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	filename := fmt.Sprintf("podcast_%s.%s", time.Now().Format("20060102_150405"), format)
	outPath := filepath.Join(c.outDir, filename)
	file, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to create audio file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, resp.Body); err != nil {
		os.Remove(outPath)
		return "", fmt.Errorf("failed to write audio file: %w", err)
	}

	logging.Get(logging.CategoryTTS).Info("audio generated: %s (voice=%s, format=%s)", outPath, voice, format)
	return outPath, nil
}

// ValidVoice reports whether the voice is supported.
func ValidVoice(voice string) bool {
	for _, v := range SupportedVoices {
		if v == voice {
			return true
		}
	}
	return false
}

// ValidFormat reports whether the audio format is supported.
func ValidFormat(format string) bool {
	for _, f := range SupportedFormats {
		if f == format {
			return true
		}
	}
	return false
}
