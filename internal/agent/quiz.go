package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"studymate/internal/docstore"
	"studymate/internal/llm"
	"studymate/internal/retrieval"
)

const quizDocMaxResults = 5

// QuizQuestion is a single generated question with its answer key.
type QuizQuestion struct {
	ID            int      `json:"id"`
	Type          string   `json:"type"`
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
	Topic         string   `json:"topic"`
}

// Quiz is the parsed quiz payload. When the model's output is not valid
// JSON, Questions is empty and RawContent carries the text verbatim.
type Quiz struct {
	Questions  []QuizQuestion `json:"questions"`
	RawContent string         `json:"raw_content,omitempty"`
}

// QuizAgent generates practice quizzes grounded in the document library when
// it has relevant content, general knowledge otherwise.
type QuizAgent struct {
	base
}

// NewQuizAgent builds a quiz agent with the standard configuration.
func NewQuizAgent(client llm.Client, adapter *retrieval.Adapter) *QuizAgent {
	return &QuizAgent{base: newBase(quizConfig, client, adapter)}
}

func (a *QuizAgent) Process(ctx context.Context, query string, ec *ExecutionContext) (*Response, error) {
	opts := normalizeQuizOptions(ec)

	var passages []docstore.Passage
	if opts.DocumentID != "" {
		passages = a.retrieval.SearchDocumentsIn(ctx, query, quizDocMaxResults, 0, []string{opts.DocumentID})
	} else {
		passages = a.retrieval.SearchDocuments(ctx, query, quizDocMaxResults, 0)
	}

	prompt := a.buildPrompt(query, passages, opts)
	gen, err := a.generate(ctx, prompt, ec)
	if err != nil {
		return nil, err
	}

	quiz := a.parseQuiz(gen.Text)
	content, err := json.MarshalIndent(quiz, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding quiz: %w", err)
	}

	var srcs sourceList
	srcs.addDocuments(passages, quizDocMaxResults)

	meta := map[string]any{
		"topic":          query,
		"num_questions":  opts.NumQuestions,
		"question_types": opts.QuestionTypes,
		"difficulty":     opts.Difficulty,
		"generated_at":   time.Now().Format(time.RFC3339),
		"used_documents": len(passages) > 0,
		"source_count":   len(passages),
		"quiz_data":      quiz,
	}
	return a.respond(string(content), gen, srcs.list(), meta), nil
}

func normalizeQuizOptions(ec *ExecutionContext) QuizOptions {
	var opts QuizOptions
	if ec != nil && ec.Quiz != nil {
		opts = *ec.Quiz
	}
	if opts.NumQuestions <= 0 {
		opts.NumQuestions = 5
	}
	if len(opts.QuestionTypes) == 0 {
		opts.QuestionTypes = []string{"multiple_choice", "true_false"}
	}
	if opts.Difficulty == "" {
		opts.Difficulty = "intermediate"
	}
	return opts
}

func (a *QuizAgent) buildPrompt(topic string, passages []docstore.Passage, opts QuizOptions) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Create a quiz with %d questions about: %s\n\n", opts.NumQuestions, topic)
	fmt.Fprintf(&sb, "Question Types: %s\n", strings.Join(opts.QuestionTypes, ", "))
	fmt.Fprintf(&sb, "Difficulty Level: %s\n", opts.Difficulty)

	if len(passages) > 0 {
		sb.WriteString("\nBased on this content:\n")
		for i, p := range passages {
			fmt.Fprintf(&sb, "\nSource %d: %s\n", i+1, p.Content)
		}
	} else {
		sb.WriteString("\nGenerate questions based on general knowledge of this topic.\n")
	}

	fmt.Fprintf(&sb, `
Create %d questions total.

For multiple_choice questions:
- Provide 4 options (A, B, C, D)
- One correct answer
- Include clear explanation

For true_false questions:
- Clear statement that is definitively true or false
- Include explanation

For short_answer questions:
- Question requiring 1-3 sentence answer
- Provide model answer
- Key points that should be included

Return ONLY valid JSON. No additional text before or after.`, opts.NumQuestions)
	return sb.String()
}

// parseQuiz decodes model output, tolerating markdown code fences. Output
// that is not valid JSON is preserved raw instead of failing the step.
func (a *QuizAgent) parseQuiz(text string) Quiz {
	cleaned := stripCodeFence(strings.TrimSpace(text))
	var quiz Quiz
	if err := json.Unmarshal([]byte(cleaned), &quiz); err != nil {
		// Models sometimes narrate around the JSON despite instructions.
		a.log.Warn("quiz output was not valid JSON, keeping raw content: %v", err)
		return Quiz{Questions: []QuizQuestion{}, RawContent: cleaned}
	}
	if quiz.Questions == nil {
		quiz.Questions = []QuizQuestion{}
	}
	return quiz
}

// stripCodeFence removes a surrounding markdown code fence, including an
// optional json language tag.
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	parts := strings.SplitN(text, "```", 3)
	if len(parts) < 2 {
		return text
	}
	inner := parts[1]
	inner = strings.TrimPrefix(inner, "json")
	return strings.TrimSpace(inner)
}
