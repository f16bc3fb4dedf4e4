package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"studymate/internal/logging"
)

// Tavily calls the Tavily search API. Unlike DuckDuckGo it returns a
// synthesized answer alongside ranked results.
type Tavily struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewTavily constructs a Tavily search provider.
func NewTavily(apiKey string) *Tavily {
	return NewTavilyWithClient(apiKey, &http.Client{Timeout: 30 * time.Second})
}

// NewTavilyWithClient constructs a Tavily provider with a custom HTTP client.
func NewTavilyWithClient(apiKey string, client *http.Client) *Tavily {
	return &Tavily{
		apiKey:   apiKey,
		endpoint: "https://api.tavily.com/search",
		client:   client,
	}
}

// SetEndpoint overrides the API endpoint. Used by tests.
func (t *Tavily) SetEndpoint(endpoint string) { t.endpoint = endpoint }

type tavilyRequest struct {
	Query         string `json:"query"`
	APIKey        string `json:"api_key"`
	MaxResults    int    `json:"max_results,omitempty"`
	IncludeAnswer bool   `json:"include_answer"`
}

type tavilyResponse struct {
	Answer  string `json:"answer"`
	Results []struct {
		Title   string  `json:"title"`
		URL     string  `json:"url"`
		Content string  `json:"content"`
		Score   float64 `json:"score"`
	} `json:"results"`
}

// Search posts the query to Tavily and maps the response.
func (t *Tavily) Search(ctx context.Context, query string, opts Options) (*Result, error) {
	if strings.TrimSpace(t.apiKey) == "" {
		return nil, &SearchError{Provider: "tavily", Query: query, Err: errors.New("API key is missing")}
	}

	payload, err := json.Marshal(tavilyRequest{
		Query:         query,
		APIKey:        t.apiKey,
		MaxResults:    opts.MaxResults,
		IncludeAnswer: true,
	})
	if err != nil {
		return nil, &SearchError{Provider: "tavily", Query: query, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, "POST", t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &SearchError{Provider: "tavily", Query: query, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &SearchError{Provider: "tavily", Query: query, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &SearchError{Provider: "tavily", Query: query, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &SearchError{
			Provider: "tavily",
			Query:    query,
			Err:      fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body)),
		}
	}

	var parsed tavilyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &SearchError{Provider: "tavily", Query: query, Err: err}
	}

	logging.Get(logging.CategoryWebSearch).Debug("tavily: %d results for %q", len(parsed.Results), query)

	out := &Result{}
	var text strings.Builder
	if parsed.Answer != "" {
		text.WriteString(parsed.Answer)
	}
	for _, r := range parsed.Results {
		if text.Len() > 0 {
			text.WriteString("\n")
		}
		start := text.Len()
		fmt.Fprintf(&text, "%s: %s", r.Title, r.Content)
		end := text.Len()

		out.Citations = append(out.Citations, Citation{
			URL:        r.URL,
			Title:      r.Title,
			StartIndex: start,
			EndIndex:   end,
		})
		out.Sources = append(out.Sources, Source{URL: r.URL, Type: "web"})
	}
	out.Text = text.String()
	return out, nil
}
