package agent

import (
	"context"
	"sync"

	"studymate/internal/docstore"
	"studymate/internal/llm"
	"studymate/internal/websearch"
)

// --- MockLLM ---

type MockLLM struct {
	mu           sync.Mutex
	GenerateFunc func(ctx context.Context, messages []llm.Message, opts llm.Options) (*llm.Response, error)

	Calls   int
	Prompts []string
	Opts    []llm.Options
}

func (m *MockLLM) Generate(ctx context.Context, messages []llm.Message, opts llm.Options) (*llm.Response, error) {
	m.mu.Lock()
	m.Calls++
	if len(messages) > 0 {
		m.Prompts = append(m.Prompts, messages[len(messages)-1].Content)
	}
	m.Opts = append(m.Opts, opts)
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, messages, opts)
	}
	return &llm.Response{Text: "generated text", TokensIn: 100, TokensOut: 50, Model: "gpt-4o-mini"}, nil
}

func (m *MockLLM) Model() string { return "gpt-4o-mini" }

func (m *MockLLM) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Prompts) == 0 {
		return ""
	}
	return m.Prompts[len(m.Prompts)-1]
}

// --- MockDocSearcher ---

type MockDocSearcher struct {
	mu         sync.Mutex
	SearchFunc func(ctx context.Context, query string, opts docstore.SearchOptions) ([]docstore.Passage, error)
	Empty      bool

	Calls   int
	Queries []string
}

func (m *MockDocSearcher) Search(ctx context.Context, query string, opts docstore.SearchOptions) ([]docstore.Passage, error) {
	m.mu.Lock()
	m.Calls++
	m.Queries = append(m.Queries, query)
	m.mu.Unlock()

	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, opts)
	}
	return nil, nil
}

func (m *MockDocSearcher) HasDocuments(ctx context.Context) bool { return !m.Empty }

// --- MockWebSearcher ---

type MockWebSearcher struct {
	mu         sync.Mutex
	SearchFunc func(ctx context.Context, query string, opts websearch.Options) (*websearch.Result, error)

	Calls   int
	Queries []string
}

func (m *MockWebSearcher) Search(ctx context.Context, query string, opts websearch.Options) (*websearch.Result, error) {
	m.mu.Lock()
	m.Calls++
	m.Queries = append(m.Queries, query)
	m.mu.Unlock()

	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, opts)
	}
	return &websearch.Result{Text: "web answer"}, nil
}

// --- MockSynthesizer ---

type MockSynthesizer struct {
	SynthesizeFunc func(ctx context.Context, script, voice, format string) (string, error)

	Calls int
}

func (m *MockSynthesizer) Synthesize(ctx context.Context, script, voice, format string) (string, error) {
	m.Calls++
	if m.SynthesizeFunc != nil {
		return m.SynthesizeFunc(ctx, script, voice, format)
	}
	return "podcasts/podcast_test.mp3", nil
}

// --- helpers ---

func passage(docID, title, content string, page int, score float64) docstore.Passage {
	return docstore.Passage{
		DocumentID:      docID,
		DocumentTitle:   title,
		Content:         content,
		PageNumber:      page,
		SimilarityScore: score,
	}
}

func webResult(text string, urls ...string) *websearch.Result {
	result := &websearch.Result{Text: text}
	for _, u := range urls {
		result.Citations = append(result.Citations, websearch.Citation{URL: u, Title: u})
		result.Sources = append(result.Sources, websearch.Source{URL: u, Type: "web"})
	}
	return result
}
