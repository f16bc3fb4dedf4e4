package websearch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ddgPage = `<html><body>
<div class="result">
  <a class="result__a" href="https://duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.org%2Fcells&rut=abc">How cells divide</a>
  <a class="result__snippet" href="#">Mitosis is the process by which cells divide.</a>
</div>
<div class="result">
  <a class="result__a" href="https://plain.example.com/page">Cell biology basics</a>
  <a class="result__snippet" href="#">An introduction to the cell cycle.</a>
</div>
</body></html>`

func TestDuckDuckGo_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "how do cells divide", r.URL.Query().Get("q"))
		assert.Contains(t, r.Header.Get("User-Agent"), "studymate")
		_, _ = w.Write([]byte(ddgPage))
	}))
	defer srv.Close()

	d := NewDuckDuckGoWithClient(srv.Client())
	d.SetEndpoint(srv.URL)

	result, err := d.Search(context.Background(), "how do cells divide", Options{})
	require.NoError(t, err)

	require.Len(t, result.Citations, 2)
	// Redirect links are unwrapped, plain links pass through.
	assert.Equal(t, "https://example.org/cells", result.Citations[0].URL)
	assert.Equal(t, "How cells divide", result.Citations[0].Title)
	assert.Equal(t, "https://plain.example.com/page", result.Citations[1].URL)

	assert.Contains(t, result.Text, "[1] How cells divide: Mitosis is the process")
	assert.Contains(t, result.Text, "[2] Cell biology basics")

	// Citation offsets address the digest text.
	for _, c := range result.Citations {
		assert.Equal(t, byte('['), result.Text[c.StartIndex])
		assert.True(t, c.EndIndex <= len(result.Text)+1)
	}

	require.Len(t, result.Sources, 2)
	assert.Equal(t, "web", result.Sources[0].Type)
}

func TestDuckDuckGo_MaxResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(ddgPage))
	}))
	defer srv.Close()

	d := NewDuckDuckGoWithClient(srv.Client())
	d.SetEndpoint(srv.URL)

	result, err := d.Search(context.Background(), "q", Options{MaxResults: 1})
	require.NoError(t, err)
	assert.Len(t, result.Citations, 1)
}

func TestDuckDuckGo_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	d := NewDuckDuckGoWithClient(srv.Client())
	d.SetEndpoint(srv.URL)

	_, err := d.Search(context.Background(), "q", Options{})
	require.Error(t, err)

	var searchErr *SearchError
	require.True(t, errors.As(err, &searchErr))
	assert.Equal(t, "duckduckgo", searchErr.Provider)
	assert.Equal(t, "q", searchErr.Query)
}

func TestDuckDuckGo_EmptyPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>No results.</body></html>"))
	}))
	defer srv.Close()

	d := NewDuckDuckGoWithClient(srv.Client())
	d.SetEndpoint(srv.URL)

	result, err := d.Search(context.Background(), "q", Options{})
	require.NoError(t, err)
	assert.Empty(t, result.Citations)
	assert.Empty(t, result.Text)
}

func TestResolveRedirect(t *testing.T) {
	assert.Equal(t, "https://example.org/x",
		resolveRedirect("https://duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.org%2Fx"))
	assert.Equal(t, "https://example.org/plain", resolveRedirect("https://example.org/plain"))
	assert.Equal(t, "", resolveRedirect(""))
}
