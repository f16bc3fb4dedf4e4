package agent

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studymate/internal/docstore"
	"studymate/internal/llm"
	"studymate/internal/retrieval"
)

const validQuizJSON = `{
  "questions": [
    {
      "id": 1,
      "type": "multiple_choice",
      "question": "What phase follows prophase?",
      "options": ["A) Telophase", "B) Metaphase", "C) Anaphase", "D) Interphase"],
      "correct_answer": "B",
      "explanation": "Metaphase follows prophase in mitosis.",
      "difficulty": "intermediate",
      "topic": "Cell division"
    }
  ]
}`

func quizLLM(text string) *MockLLM {
	return &MockLLM{
		GenerateFunc: func(ctx context.Context, messages []llm.Message, opts llm.Options) (*llm.Response, error) {
			return &llm.Response{Text: text, TokensIn: 200, TokensOut: 300, Model: "gpt-4o-mini"}, nil
		},
	}
}

func TestQuizAgent_ParsesJSON(t *testing.T) {
	a := NewQuizAgent(quizLLM(validQuizJSON), retrieval.New(&MockDocSearcher{}, nil))

	resp, err := a.Process(context.Background(), "mitosis", nil)
	require.NoError(t, err)

	var quiz Quiz
	require.NoError(t, json.Unmarshal([]byte(resp.Content), &quiz))
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, "B", quiz.Questions[0].CorrectAnswer)
	assert.Empty(t, quiz.RawContent)

	data, ok := resp.Metadata["quiz_data"].(Quiz)
	require.True(t, ok)
	assert.Len(t, data.Questions, 1)
}

func TestQuizAgent_StripsCodeFence(t *testing.T) {
	fenced := "```json\n" + validQuizJSON + "\n```"
	a := NewQuizAgent(quizLLM(fenced), retrieval.New(&MockDocSearcher{}, nil))

	resp, err := a.Process(context.Background(), "mitosis", nil)
	require.NoError(t, err)

	data, ok := resp.Metadata["quiz_data"].(Quiz)
	require.True(t, ok)
	require.Len(t, data.Questions, 1)
	assert.Equal(t, "What phase follows prophase?", data.Questions[0].Question)
}

func TestQuizAgent_InvalidJSONDegrades(t *testing.T) {
	a := NewQuizAgent(quizLLM("Sure! Here are your questions:\n1. What is mitosis?"), retrieval.New(&MockDocSearcher{}, nil))

	resp, err := a.Process(context.Background(), "mitosis", nil)
	require.NoError(t, err)

	data, ok := resp.Metadata["quiz_data"].(Quiz)
	require.True(t, ok)
	assert.Empty(t, data.Questions)
	assert.Contains(t, data.RawContent, "What is mitosis?")
}

func TestQuizAgent_Defaults(t *testing.T) {
	mock := quizLLM(validQuizJSON)
	a := NewQuizAgent(mock, retrieval.New(&MockDocSearcher{}, nil))

	resp, err := a.Process(context.Background(), "mitosis", nil)
	require.NoError(t, err)

	assert.Equal(t, 5, resp.Metadata["num_questions"])
	assert.Equal(t, []string{"multiple_choice", "true_false"}, resp.Metadata["question_types"])
	assert.Equal(t, "intermediate", resp.Metadata["difficulty"])

	prompt := mock.LastPrompt()
	assert.Contains(t, prompt, "Create a quiz with 5 questions about: mitosis")
	assert.Contains(t, prompt, "Generate questions based on general knowledge")
}

func TestQuizAgent_DocumentScoped(t *testing.T) {
	var captured docstore.SearchOptions
	docs := &MockDocSearcher{
		SearchFunc: func(ctx context.Context, query string, opts docstore.SearchOptions) ([]docstore.Passage, error) {
			captured = opts
			return []docstore.Passage{passage("doc-9", "Lecture Notes", "Mitosis has four phases.", 2, 0.8)}, nil
		},
	}
	mock := quizLLM(validQuizJSON)
	a := NewQuizAgent(mock, retrieval.New(docs, nil))

	ec := &ExecutionContext{Quiz: &QuizOptions{NumQuestions: 3, Difficulty: "advanced", DocumentID: "doc-9"}}
	resp, err := a.Process(context.Background(), "mitosis", ec)
	require.NoError(t, err)

	assert.Equal(t, []string{"doc-9"}, captured.DocumentIDs)
	assert.Equal(t, true, resp.Metadata["used_documents"])
	assert.Equal(t, 1, resp.Metadata["source_count"])
	assert.Contains(t, mock.LastPrompt(), "Create a quiz with 3 questions")
	assert.Contains(t, mock.LastPrompt(), "Mitosis has four phases.")
	require.Len(t, resp.Sources, 1)
	assert.Equal(t, 1, resp.Sources[0].ID)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence(`{"a":1}`))
	assert.Equal(t, "plain text", stripCodeFence("plain text"))
}
