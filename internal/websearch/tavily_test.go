package websearch

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

func TestTavily_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req tavilyRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "quantum computing", req.Query)
		assert.Equal(t, "tvly-test", req.APIKey)
		assert.True(t, req.IncludeAnswer)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"answer": "Quantum computers use qubits.",
			"results": []map[string]any{
				{"title": "Intro", "url": "https://example.org/qc", "content": "Qubits explained.", "score": 0.9},
				{"title": "Hardware", "url": "https://example.org/hw", "content": "Superconducting circuits.", "score": 0.7},
			},
		})
	}))
	defer srv.Close()

	tav := NewTavilyWithClient("tvly-test", srv.Client())
	tav.SetEndpoint(srv.URL)

	result, err := tav.Search(context.Background(), "quantum computing", Options{})
	require.NoError(t, err)

	assert.Contains(t, result.Text, "Quantum computers use qubits.")
	assert.Contains(t, result.Text, "Intro: Qubits explained.")
	require.Len(t, result.Citations, 2)
	assert.Equal(t, "https://example.org/qc", result.Citations[0].URL)
	require.Len(t, result.Sources, 2)
	assert.Equal(t, "web", result.Sources[1].Type)
}

func TestTavily_MissingKey(t *testing.T) {
	tav := NewTavily("  ")
	_, err := tav.Search(context.Background(), "q", Options{})
	require.Error(t, err)

	var searchErr *SearchError
	require.True(t, errors.As(err, &searchErr))
	assert.Equal(t, "tavily", searchErr.Provider)
}

func TestTavily_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid api key"}`))
	}))
	defer srv.Close()

	tav := NewTavilyWithClient("bad", srv.Client())
	tav.SetEndpoint(srv.URL)

	_, err := tav.Search(context.Background(), "q", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestSearchError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &SearchError{Provider: "tavily", Query: "q", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "tavily")
}
