package agent

import (
	"context"
	"fmt"
	"strings"

	"studymate/internal/llm"
	"studymate/internal/retrieval"
	"studymate/internal/websearch"
)

const analystWebSourceCap = 5

// BusinessAnalystAgent produces consulting-style strategic analysis backed
// by a general search and a dedicated market intelligence search.
type BusinessAnalystAgent struct {
	base
}

// NewBusinessAnalystAgent builds a business analyst agent with the standard
// configuration.
func NewBusinessAnalystAgent(client llm.Client, adapter *retrieval.Adapter) *BusinessAnalystAgent {
	return &BusinessAnalystAgent{base: newBase(businessAnalystConfig, client, adapter)}
}

// marketQuery reframes a business question toward competitive context.
func marketQuery(question string) string {
	return question + " market analysis competitors trends"
}

func (a *BusinessAnalystAgent) Process(ctx context.Context, query string, ec *ExecutionContext) (*Response, error) {
	if err := a.requireWebSearch(); err != nil {
		return nil, err
	}

	primary, err := a.retrieval.SearchWeb(ctx, query, websearch.Options{})
	if err != nil {
		return nil, fmt.Errorf("business data search for %q failed: %w", query, err)
	}

	market, err := a.retrieval.SearchWeb(ctx, marketQuery(query), websearch.Options{})
	if err != nil {
		a.log.Warn("market intelligence search failed for %q, analyzing on primary data alone: %v", query, err)
		market = &websearch.Result{}
	}

	prompt := a.buildPrompt(query, primary, market, ec)
	gen, err := a.generate(ctx, prompt, ec)
	if err != nil {
		return nil, err
	}

	var srcs sourceList
	srcs.addWebCitations(primary.Citations, analystWebSourceCap, "business_data")
	srcs.addWebCitations(market.Citations, analystWebSourceCap, "market_intelligence")

	meta := map[string]any{
		"query":         query,
		"framework":     "SWOT + Strategic Analysis",
		"num_sources":   len(srcs.list()),
		"model":         gen.Model,
		"analysis_type": "consulting-style",
	}
	return a.respond(gen.Text, gen, srcs.list(), meta), nil
}

func (a *BusinessAnalystAgent) buildPrompt(query string, primary, market *websearch.Result, ec *ExecutionContext) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Business Question: %s\n\nMarket & Business Data:\n", query)

	if ec != nil && ec.ResearchSummary != "" {
		sb.WriteString("PRIOR RESEARCH FINDINGS:\n")
		sb.WriteString(ec.ResearchSummary)
		sb.WriteString("\n\n")
	}

	sb.WriteString("PRIMARY BUSINESS DATA:\n")
	sb.WriteString(formatWebResult(primary, 1))
	sb.WriteString("\nMARKET & COMPETITIVE INTELLIGENCE:\n")
	sb.WriteString(formatWebResult(market, len(primary.Citations)+1))

	sb.WriteString(`
Provide a strategic analysis with:
1. Executive Summary (2-3 sentences)
2. SWOT Analysis (or other appropriate framework)
3. Key Strategic Insights backed by data
4. Actionable Recommendations
5. Risk Assessment

Use consulting-quality structure and cite data sources.`)
	return sb.String()
}
