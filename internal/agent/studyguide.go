package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"studymate/internal/docstore"
	"studymate/internal/llm"
	"studymate/internal/retrieval"
)

const studyGuideDocMaxResults = 5

// StudyGuideAgent generates structured markdown study guides from the
// document library or general knowledge.
type StudyGuideAgent struct {
	base
}

// NewStudyGuideAgent builds a study guide agent with the standard
// configuration.
func NewStudyGuideAgent(client llm.Client, adapter *retrieval.Adapter) *StudyGuideAgent {
	return &StudyGuideAgent{base: newBase(studyGuideConfig, client, adapter)}
}

func (a *StudyGuideAgent) Process(ctx context.Context, query string, ec *ExecutionContext) (*Response, error) {
	opts := normalizeStudyGuideOptions(ec)

	passages := a.retrieval.SearchDocuments(ctx, query, studyGuideDocMaxResults, 0)

	prompt := a.buildPrompt(query, passages, opts)
	gen, err := a.generate(ctx, prompt, ec)
	if err != nil {
		return nil, err
	}

	var srcs sourceList
	srcs.addDocuments(passages, studyGuideDocMaxResults)

	meta := map[string]any{
		"topic":              query,
		"difficulty":         opts.Difficulty,
		"includes_questions": opts.IncludeQuestions,
		"generated_at":       time.Now().Format(time.RFC3339),
		"word_count":         len(strings.Fields(gen.Text)),
		"used_documents":     len(passages) > 0,
		"source_count":       len(passages),
	}
	return a.respond(gen.Text, gen, srcs.list(), meta), nil
}

func normalizeStudyGuideOptions(ec *ExecutionContext) StudyGuideOptions {
	if ec != nil && ec.StudyGuide != nil {
		opts := *ec.StudyGuide
		if opts.Difficulty == "" {
			opts.Difficulty = "intermediate"
		}
		return opts
	}
	return StudyGuideOptions{Difficulty: "intermediate", IncludeQuestions: true}
}

func (a *StudyGuideAgent) buildPrompt(topic string, passages []docstore.Passage, opts StudyGuideOptions) string {
	includeQuestions := "No"
	if opts.IncludeQuestions {
		includeQuestions = "Yes"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Create a comprehensive study guide for: %s\n\n", topic)
	fmt.Fprintf(&sb, "Difficulty Level: %s\n", opts.Difficulty)
	fmt.Fprintf(&sb, "Include Practice Questions: %s\n", includeQuestions)

	if len(passages) > 0 {
		sb.WriteString("\nRelevant Source Material:\n")
		for i, p := range passages {
			fmt.Fprintf(&sb, "\nSource %d: %s\n", i+1, p.Content)
		}
	} else {
		sb.WriteString("\nNote: Generate study guide based on general knowledge of this topic.\n")
	}

	sb.WriteString(`
Please structure the study guide with:
- Clear section headers
- Bullet points for key concepts
- Numbered steps for processes
- Examples in code blocks or quotes where appropriate
- Practice questions at the end (if requested)

Make it engaging and student-friendly!`)
	return sb.String()
}
