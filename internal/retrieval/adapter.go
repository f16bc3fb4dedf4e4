// Package retrieval presents document search and web search as two
// independently-failing, independently-optional knowledge sources.
//
// Document search degrades: a missing backend, an empty library, or a backend
// error all yield an empty passage list, recorded in the retrieval log but
// never surfaced to the caller. Web search propagates its failures; whether a
// failed web search is fatal depends on the calling agent's evidence state.
package retrieval

import (
	"context"

	"studymate/internal/docstore"
	"studymate/internal/logging"
	"studymate/internal/websearch"
)

// DocumentSearcher is the document knowledge source contract.
type DocumentSearcher interface {
	Search(ctx context.Context, query string, opts docstore.SearchOptions) ([]docstore.Passage, error)
	HasDocuments(ctx context.Context) bool
}

// WebSearcher is the web knowledge source contract.
type WebSearcher interface {
	Search(ctx context.Context, query string, opts websearch.Options) (*websearch.Result, error)
}

// Adapter bundles both knowledge sources. Either may be nil: a nil document
// searcher always degrades to no passages, a nil web searcher makes SearchWeb
// return a configuration error via the websearch.SearchError type.
type Adapter struct {
	docs DocumentSearcher
	web  WebSearcher
}

// New constructs an adapter with explicit collaborators.
func New(docs DocumentSearcher, web WebSearcher) *Adapter {
	return &Adapter{docs: docs, web: web}
}

// HasWebSearch reports whether a web searcher is configured.
func (a *Adapter) HasWebSearch() bool { return a.web != nil }

// SearchDocuments queries the document library. Never returns an error:
// unavailable or failing backends degrade to an empty result, logged under
// the retrieval category.
func (a *Adapter) SearchDocuments(ctx context.Context, query string, maxResults int, similarityThreshold float64) []docstore.Passage {
	return a.SearchDocumentsIn(ctx, query, maxResults, similarityThreshold, nil)
}

// SearchDocumentsIn is SearchDocuments restricted to specific document IDs.
func (a *Adapter) SearchDocumentsIn(ctx context.Context, query string, maxResults int, similarityThreshold float64, documentIDs []string) []docstore.Passage {
	log := logging.Get(logging.CategoryRetrieval)

	if a.docs == nil {
		log.Debug("document search skipped: no backend configured")
		return nil
	}
	if !a.docs.HasDocuments(ctx) {
		log.Debug("document search skipped: library is empty")
		return nil
	}

	passages, err := a.docs.Search(ctx, query, docstore.SearchOptions{
		MaxResults:          maxResults,
		SimilarityThreshold: similarityThreshold,
		DocumentIDs:         documentIDs,
	})
	if err != nil {
		// Degrade, never abort: the agent proceeds on web evidence alone.
		log.Warn("document search failed for %q, continuing without documents: %v", query, err)
		return nil
	}
	return passages
}

// SearchWeb queries the web source. Errors propagate to the caller.
func (a *Adapter) SearchWeb(ctx context.Context, query string, opts websearch.Options) (*websearch.Result, error) {
	if a.web == nil {
		return nil, &websearch.SearchError{
			Provider: "none",
			Query:    query,
			Err:      errNoWebSearcher,
		}
	}
	return a.web.Search(ctx, query, opts)
}

type noWebSearcherError struct{}

func (noWebSearcherError) Error() string { return "no web search backend configured" }

var errNoWebSearcher = noWebSearcherError{}
