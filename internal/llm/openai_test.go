package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAITestClient(url string) *OpenAIClient {
	return NewOpenAIClientWithConfig(OpenAIConfig{APIKey: "sk-test", BaseURL: url})
}

func TestOpenAIClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req openAIRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, RoleSystem, req.Messages[0].Role)
		assert.InDelta(t, 0.3, req.Temperature, 1e-9)
		assert.Equal(t, 2000, req.MaxTokens)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"model": "gpt-4o-mini-2024-07-18",
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "  hello  "}, "finish_reason": "stop"},
			},
			"usage": map[string]any{"prompt_tokens": 42, "completion_tokens": 7},
		})
	}))
	defer srv.Close()

	c := openAITestClient(srv.URL)
	resp, err := c.Generate(context.Background(), []Message{
		{Role: RoleSystem, Content: "be terse"},
		{Role: RoleUser, Content: "hi"},
	}, Options{Temperature: 0.3, MaxTokens: 2000})
	require.NoError(t, err)

	assert.Equal(t, "hello", resp.Text)
	assert.Equal(t, 42, resp.TokensIn)
	assert.Equal(t, 7, resp.TokensOut)
	assert.Equal(t, "gpt-4o-mini-2024-07-18", resp.Model)
}

func TestOpenAIClient_Errors(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		c := NewOpenAIClientWithConfig(OpenAIConfig{})
		_, err := c.Generate(context.Background(), nil, Options{})

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, ErrKindAuth, apiErr.Kind)
	})

	t.Run("auth status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		_, err := openAITestClient(srv.URL).Generate(context.Background(), nil, Options{})
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, ErrKindAuth, apiErr.Kind)
		assert.Equal(t, 401, apiErr.StatusCode)
	})

	t.Run("rate limit status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := openAITestClient(srv.URL).Generate(context.Background(), nil, Options{})
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, ErrKindRateLimit, apiErr.Kind)
	})

	t.Run("connection refused", func(t *testing.T) {
		_, err := openAITestClient("http://127.0.0.1:1").Generate(context.Background(), nil, Options{})
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, ErrKindConnection, apiErr.Kind)
	})

	t.Run("empty choices", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[],"usage":{}}`))
		}))
		defer srv.Close()

		_, err := openAITestClient(srv.URL).Generate(context.Background(), nil, Options{})
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, ErrKindRuntime, apiErr.Kind)
	})
}

func TestClassifyStatus(t *testing.T) {
	assert.Equal(t, ErrKindAuth, classifyStatus(401))
	assert.Equal(t, ErrKindAuth, classifyStatus(403))
	assert.Equal(t, ErrKindRateLimit, classifyStatus(429))
	assert.Equal(t, ErrKindRuntime, classifyStatus(500))
	assert.Equal(t, ErrKindRuntime, classifyStatus(400))
}
