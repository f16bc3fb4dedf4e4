package agent

import (
	"fmt"
	"strings"

	"studymate/internal/docstore"
	"studymate/internal/websearch"
)

// Evidence blocks are assembled in a fixed order: prior findings, document
// passages, web results. Citation ordinals run continuously across blocks so
// the model never sees two sources with the same number.

// formatDocumentPassages renders document evidence with the given block
// header, numbering passages from 1.
func formatDocumentPassages(passages []docstore.Passage, header, label string) string {
	if len(passages) == 0 {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n=== %s (%d passages) ===\n", header, len(passages))
	for i, p := range passages {
		fmt.Fprintf(&sb, "\n[%s %d: %s]", label, i+1, p.DocumentTitle)
		if p.PageNumber > 0 {
			fmt.Fprintf(&sb, "\n(Page %d)", p.PageNumber)
		}
		fmt.Fprintf(&sb, "\n%s\n", p.Content)
		fmt.Fprintf(&sb, "Relevance: %.2f\n", p.SimilarityScore)
	}
	return sb.String()
}

// formatWebResult renders a search result's answer and citations, numbering
// citations from startOrdinal.
func formatWebResult(result *websearch.Result, startOrdinal int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Search Answer: %s\n", result.Text)
	if len(result.Citations) > 0 {
		sb.WriteString("\nCitations:\n")
		for i, c := range result.Citations {
			fmt.Fprintf(&sb, "[%d] %s: %s\n", startOrdinal+i, c.Title, c.URL)
		}
	}
	if len(result.Sources) > 0 {
		sb.WriteString("\nSources Consulted:\n")
		for i, s := range result.Sources {
			fmt.Fprintf(&sb, "  %d. %s (%s)\n", i+1, s.URL, s.Type)
		}
	}
	return sb.String()
}

// webEvidenceHeader names the web block depending on whether document
// evidence precedes it.
func webEvidenceHeader(usedDocuments bool, withDocs, withoutDocs string) string {
	if usedDocuments {
		return withDocs
	}
	return withoutDocs
}
