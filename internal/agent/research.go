package agent

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"studymate/internal/docstore"
	"studymate/internal/llm"
	"studymate/internal/retrieval"
	"studymate/internal/websearch"
)

const (
	researchDocMaxResults = 5
	researchDocThreshold  = 0.6
	researchWebSourceCap  = 10
)

// ResearchAgent gathers evidence from the document library and the web, then
// synthesizes a cited research summary. Document passages are preferred
// evidence; web results supplement them.
type ResearchAgent struct {
	base
}

// NewResearchAgent builds a research agent with the standard configuration.
func NewResearchAgent(client llm.Client, adapter *retrieval.Adapter) *ResearchAgent {
	return &ResearchAgent{base: newBase(researchConfig, client, adapter)}
}

func (a *ResearchAgent) Process(ctx context.Context, query string, ec *ExecutionContext) (*Response, error) {
	if err := a.requireWebSearch(); err != nil {
		return nil, err
	}

	// Both knowledge sources are queried concurrently. Document search
	// degrades internally, so only the web error is carried out of the
	// group, and whether it is fatal depends on the document result.
	var (
		passages  []docstore.Passage
		webResult *websearch.Result
		webErr    error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		passages = a.retrieval.SearchDocuments(gctx, query, researchDocMaxResults, researchDocThreshold)
		return nil
	})
	g.Go(func() error {
		webResult, webErr = a.retrieval.SearchWeb(gctx, query, websearch.Options{})
		return nil
	})
	_ = g.Wait()

	usedDocuments := len(passages) > 0
	if webErr != nil {
		if !usedDocuments {
			// No evidence at all, nothing to synthesize from.
			return nil, fmt.Errorf("research for %q found no evidence: %w", query, webErr)
		}
		a.log.Warn("web search failed for %q, proceeding on document evidence alone: %v", query, webErr)
		webResult = &websearch.Result{}
	}

	prompt := a.buildPrompt(query, passages, webResult, usedDocuments)
	gen, err := a.generate(ctx, prompt, ec)
	if err != nil {
		return nil, err
	}

	var srcs sourceList
	srcs.addDocuments(passages, researchDocMaxResults)
	srcs.addWebSources(webResult.Sources, researchWebSourceCap, "")

	meta := map[string]any{
		"search_query":     query,
		"num_sources":      len(srcs.list()),
		"model":            gen.Model,
		"used_documents":   usedDocuments,
		"document_results": len(passages),
		"web_sources":      len(webResult.Sources),
		"has_citations":    len(webResult.Citations) > 0,
	}
	return a.respond(gen.Text, gen, srcs.list(), meta), nil
}

func (a *ResearchAgent) buildPrompt(query string, passages []docstore.Passage, webResult *websearch.Result, usedDocuments bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Research Question: %s\n", query)

	docOrdinals := 0
	if usedDocuments {
		sb.WriteString(formatDocumentPassages(passages, "INFORMATION FROM UPLOADED DOCUMENTS", "Document Source"))
		docOrdinals = len(passages)
	}
	fmt.Fprintf(&sb, "\n=== %s ===\n", webEvidenceHeader(usedDocuments, "ADDITIONAL WEB SEARCH RESULTS", "WEB SEARCH RESULTS"))
	sb.WriteString(formatWebResult(webResult, docOrdinals+1))

	sb.WriteString(`
Provide a comprehensive research summary with:
1. Key findings (clearly cite whether from documents or web)
2. Main themes and patterns
3. Important statistics or data points
4. Areas of consensus and disagreement
5. Gaps or areas needing further investigation

IMPORTANT:
- If information came from uploaded documents, mention it explicitly
- Prioritize information from uploaded documents as it may be more relevant to the student
- Use web sources to supplement or provide additional context
`)
	return sb.String()
}
