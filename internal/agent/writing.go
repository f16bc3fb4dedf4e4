package agent

import (
	"context"
	"fmt"
	"strings"

	"studymate/internal/llm"
	"studymate/internal/retrieval"
)

// DocumentFormat is the writing agent's output shape, detected from the task.
type DocumentFormat string

const (
	FormatProfessionalEmail   DocumentFormat = "Professional Email"
	FormatExecutiveSummary    DocumentFormat = "Executive Summary"
	FormatComprehensiveReport DocumentFormat = "Comprehensive Report"
	FormatBusinessMemo        DocumentFormat = "Business Memo"
	FormatPresentationBrief   DocumentFormat = "Presentation Brief"
	FormatProfessionalReport  DocumentFormat = "Professional Report"
)

// formatKeywords is checked in order, first group with a hit wins.
var formatKeywords = []struct {
	words  []string
	format DocumentFormat
}{
	{[]string{"email", "message", "letter"}, FormatProfessionalEmail},
	{[]string{"executive", "summary", "brief"}, FormatExecutiveSummary},
	{[]string{"report", "document", "analysis"}, FormatComprehensiveReport},
	{[]string{"memo", "memorandum"}, FormatBusinessMemo},
	{[]string{"presentation", "slide", "deck"}, FormatPresentationBrief},
}

// DetectFormat maps a writing task to a document format.
func DetectFormat(task string) DocumentFormat {
	lower := strings.ToLower(task)
	for _, group := range formatKeywords {
		for _, word := range group.words {
			if strings.Contains(lower, word) {
				return group.format
			}
		}
	}
	return FormatProfessionalReport
}

// WritingAgent turns prior agents' findings, or a bare instruction, into a
// polished document. It performs no retrieval of its own.
type WritingAgent struct {
	base
}

// NewWritingAgent builds a writing agent with the standard configuration.
func NewWritingAgent(client llm.Client, adapter *retrieval.Adapter) *WritingAgent {
	return &WritingAgent{base: newBase(writingConfig, client, adapter)}
}

func (a *WritingAgent) Process(ctx context.Context, query string, ec *ExecutionContext) (*Response, error) {
	format := DetectFormat(query)

	var (
		prompt         string
		sources        []Source
		sourceAgent    string
		transformation string
	)
	if ec != nil && ec.Content != "" {
		prompt = a.transformPrompt(query, format, ec.Content)
		sources = ec.Sources
		sourceAgent = ec.Identity.String()
		transformation = "analysis_to_document"
	} else {
		prompt = a.originalPrompt(query, format)
		sourceAgent = "direct"
		transformation = "original_content"
	}

	gen, err := a.generate(ctx, prompt, ec)
	if err != nil {
		return nil, err
	}

	meta := map[string]any{
		"task":            query,
		"document_format": string(format),
		"source_agent":    sourceAgent,
		"model":           gen.Model,
		"transformation":  transformation,
	}
	return a.respond(gen.Text, gen, sources, meta), nil
}

func (a *WritingAgent) transformPrompt(task string, format DocumentFormat, content string) string {
	return fmt.Sprintf(`Writing Task: %s
Document Format: %s

Source Content to Transform:
━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
%s
━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━

Transform this content into a %s that is:
- Clear and well-structured
- Professional yet friendly
- Appropriate for the target audience
- Includes key points from the source material
- Properly formatted for %s

Maintain any important citations or data points.`, task, format, content, format, format)
}

func (a *WritingAgent) originalPrompt(task string, format DocumentFormat) string {
	return fmt.Sprintf(`Writing Task: %s
Document Format: %s

Create a %s that addresses the following:
%s

The document should be:
- Clear and well-structured
- Professional yet friendly
- Appropriate for the target audience
- Properly formatted for %s
- Complete and actionable

Generate high-quality content that fully addresses the request.`, task, format, format, task, format)
}
