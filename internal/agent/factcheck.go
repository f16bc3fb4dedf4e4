package agent

import (
	"context"
	"fmt"
	"strings"

	"studymate/internal/docstore"
	"studymate/internal/llm"
	"studymate/internal/retrieval"
	"studymate/internal/websearch"
)

const (
	factCheckDocMaxResults = 3
	factCheckDocThreshold  = 0.65
	factCheckWebSourceCap  = 5
)

// FactCheckAgent verifies a claim against document evidence, supporting web
// evidence, and deliberately-sought counter-evidence, then reports a verdict
// with a confidence score.
type FactCheckAgent struct {
	base
}

// NewFactCheckAgent builds a fact-check agent with the standard configuration.
func NewFactCheckAgent(client llm.Client, adapter *retrieval.Adapter) *FactCheckAgent {
	return &FactCheckAgent{base: newBase(factCheckConfig, client, adapter)}
}

// counterQuery reframes a claim to surface debunkings and alternative views.
func counterQuery(claim string) string {
	return claim + " debunked false myth"
}

func (a *FactCheckAgent) Process(ctx context.Context, query string, ec *ExecutionContext) (*Response, error) {
	if err := a.requireWebSearch(); err != nil {
		return nil, err
	}

	passages := a.retrieval.SearchDocuments(ctx, query, factCheckDocMaxResults, factCheckDocThreshold)
	usedDocuments := len(passages) > 0

	primary, err := a.retrieval.SearchWeb(ctx, query, websearch.Options{})
	if err != nil {
		if !usedDocuments {
			return nil, fmt.Errorf("fact-check of %q found no evidence: %w", query, err)
		}
		a.log.Warn("web search failed for claim %q, verifying on document evidence alone: %v", query, err)
		primary = &websearch.Result{}
	}

	counter, err := a.retrieval.SearchWeb(ctx, counterQuery(query), websearch.Options{})
	if err != nil {
		// Counter-evidence is supplementary, its absence never blocks the verdict.
		a.log.Warn("counter-evidence search failed for claim %q: %v", query, err)
		counter = &websearch.Result{}
	}

	prompt := a.buildPrompt(query, passages, primary, counter, usedDocuments)
	gen, err := a.generate(ctx, prompt, ec)
	if err != nil {
		return nil, err
	}

	var srcs sourceList
	srcs.addDocuments(passages, factCheckDocMaxResults)
	srcs.addWebSources(primary.Sources, factCheckWebSourceCap, "supporting")
	srcs.addWebSources(counter.Sources, factCheckWebSourceCap, "alternative")

	meta := map[string]any{
		"claim":               query,
		"num_sources_checked": len(srcs.list()),
		"model":               gen.Model,
		"used_documents":      usedDocuments,
		"document_results":    len(passages),
		"web_sources":         len(primary.Sources) + len(counter.Sources),
	}
	return a.respond(gen.Text, gen, srcs.list(), meta), nil
}

func (a *FactCheckAgent) buildPrompt(claim string, passages []docstore.Passage, primary, counter *websearch.Result, usedDocuments bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Claim to Verify: %s\n", claim)

	docOrdinals := 0
	if usedDocuments {
		sb.WriteString(formatDocumentPassages(passages, "EVIDENCE FROM UPLOADED DOCUMENTS", "Document Evidence"))
		docOrdinals = len(passages)
	}
	fmt.Fprintf(&sb, "\n=== %s ===\n", webEvidenceHeader(usedDocuments, "ADDITIONAL WEB EVIDENCE", "WEB EVIDENCE"))

	sb.WriteString("PRIMARY EVIDENCE:\n")
	sb.WriteString(formatWebResult(primary, docOrdinals+1))
	sb.WriteString("\nCOUNTER-EVIDENCE / ALTERNATIVE VIEWS:\n")
	sb.WriteString(formatWebResult(counter, docOrdinals+len(primary.Citations)+1))

	sb.WriteString(`
Provide a fact-check report with:
1. Clear verdict (TRUE/FALSE/UNCERTAIN)
2. Confidence score (0-100%)
3. Supporting evidence with quotes and sources
4. Any contradictions or caveats
5. Show your receipts - be specific about evidence

IMPORTANT:
- If evidence came from uploaded documents, explicitly mention it
- Documents may contain course-specific or authoritative information
- Consider both document evidence and web sources in your verdict
- Prioritize document evidence if it's from authoritative sources

Use the structured format from your system prompt.`)
	return sb.String()
}
