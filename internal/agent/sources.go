package agent

import (
	"net/url"

	"studymate/internal/docstore"
	"studymate/internal/websearch"
)

// sourceList accumulates numbered sources. IDs are assigned on append so the
// final list is always contiguous 1..N, document sources before web sources.
type sourceList struct {
	sources []Source
}

func (l *sourceList) addDocuments(passages []docstore.Passage, limit int) {
	for i, p := range passages {
		if i >= limit {
			break
		}
		l.sources = append(l.sources, Source{
			ID:        len(l.sources) + 1,
			Origin:    originDocument,
			Title:     p.DocumentTitle + " (Uploaded Document)",
			URL:       "document://" + p.DocumentID,
			Page:      p.PageNumber,
			Relevance: p.SimilarityScore,
		})
	}
}

func (l *sourceList) addWebSources(sources []websearch.Source, limit int, category string) {
	for i, s := range sources {
		if i >= limit {
			break
		}
		l.sources = append(l.sources, Source{
			ID:       len(l.sources) + 1,
			Origin:   originWeb,
			Title:    hostOf(s.URL, s.Type),
			URL:      s.URL,
			Category: category,
		})
	}
}

func (l *sourceList) addWebCitations(citations []websearch.Citation, limit int, category string) {
	for i, c := range citations {
		if i >= limit {
			break
		}
		l.sources = append(l.sources, Source{
			ID:       len(l.sources) + 1,
			Origin:   originWeb,
			Title:    c.Title,
			URL:      c.URL,
			Category: category,
		})
	}
}

func (l *sourceList) list() []Source { return l.sources }

// hostOf derives a display title from a URL, falling back to the source type.
func hostOf(raw, fallback string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return fallback
	}
	return u.Host
}
