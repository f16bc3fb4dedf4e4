// Package websearch provides web search providers behind a uniform Searcher
// interface. Results carry a synthesized answer text plus citation and source
// attribution that the agent layer folds into its evidence blocks.
package websearch

import (
	"context"
	"fmt"
)

// Options are per-query knobs.
type Options struct {
	MaxResults int // 0 means provider default
}

// Citation points into the result text.
type Citation struct {
	URL        string
	Title      string
	StartIndex int
	EndIndex   int
}

// Source is a consulted location.
type Source struct {
	URL  string
	Type string // e.g. "web", "news"
}

// Result is the uniform web search outcome.
type Result struct {
	Text      string
	Citations []Citation
	Sources   []Source
}

// Searcher executes a web query.
type Searcher interface {
	Search(ctx context.Context, query string, opts Options) (*Result, error)
}

// SearchError is a typed web search failure. The agent core propagates it
// unless document evidence allows the degraded path.
type SearchError struct {
	Provider string
	Query    string
	Err      error
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("%s search failed for %q: %v", e.Provider, e.Query, e.Err)
}

func (e *SearchError) Unwrap() error { return e.Err }
