package agent

import (
	"context"
	"fmt"

	"studymate/internal/llm"
	"studymate/internal/logging"
	"studymate/internal/retrieval"
)

// Config is the static description of an agent: prompts, sampling
// parameters, and display metadata. Configs are fixed tables, not user input.
type Config struct {
	Name         string
	Identity     Identity
	Description  string
	SystemPrompt string
	Personality  string
	Temperature  float64
	MaxTokens    int
	UsesSearch   bool
	Emoji        string
	Color        string
}

// Source is a numbered evidence reference attached to a response. IDs are
// assigned contiguously from 1, document sources before web sources.
type Source struct {
	ID        int     `json:"id"`
	Origin    string  `json:"origin"` // "document" or "web"
	Title     string  `json:"title"`
	URL       string  `json:"url,omitempty"`
	Page      int     `json:"page,omitempty"`
	Relevance float64 `json:"relevance,omitempty"`
	Category  string  `json:"category,omitempty"`
}

const (
	originDocument = "document"
	originWeb      = "web"
)

// Response is the uniform result every agent produces.
type Response struct {
	AgentName       string         `json:"agent_name"`
	Identity        Identity       `json:"-"`
	Content         string         `json:"content"`
	Sources         []Source       `json:"sources,omitempty"`
	ConfidenceScore *float64       `json:"confidence_score,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	TokensIn        int            `json:"tokens_in"`
	TokensOut       int            `json:"tokens_out"`
	TokensUsed      int            `json:"tokens_used"`
	CostUSD         float64        `json:"cost_usd"`
	Model           string         `json:"model,omitempty"`
}

// GenOverrides lets a caller replace the configured sampling parameters for
// a single step.
type GenOverrides struct {
	Temperature *float64
	MaxTokens   *int
}

// QuizOptions controls quiz generation.
type QuizOptions struct {
	NumQuestions  int
	QuestionTypes []string
	Difficulty    string
	DocumentID    string
}

// StudyGuideOptions controls study guide generation.
type StudyGuideOptions struct {
	Difficulty       string
	IncludeQuestions bool
}

// PodcastOptions controls podcast script and audio generation.
type PodcastOptions struct {
	DocumentID     string
	ChapterID      string
	Style          string
	Voice          string
	Format         string
	DurationTarget int // minutes
}

// ExecutionContext carries state between pipeline steps. Each agent reads
// the fields left by its predecessors and records its own before handing
// the context to the next step.
type ExecutionContext struct {
	// Content is the full text produced by the previous agent.
	Content string
	// Sources is the previous step's source list, replaced after every step
	// so ordinals stay contiguous when a later agent adopts them.
	Sources []Source
	// Identity names the agent that produced Content.
	Identity Identity
	// PriorAgents lists every agent that has run, in order.
	PriorAgents []string
	// ResearchSummary is the research agent's content, kept verbatim so
	// later steps can quote it even after Content is overwritten.
	ResearchSummary string
	// FactCheckConfidence is the fact-check agent's extracted score.
	FactCheckConfidence *float64
	// Metadata is the previous response's metadata, replaced after every step.
	Metadata map[string]any

	Gen        *GenOverrides
	Quiz       *QuizOptions
	StudyGuide *StudyGuideOptions
	Podcast    *PodcastOptions
}

// record derives the next step's context from the response just produced.
// Content, sources, identity, and metadata are replaced wholesale; only
// PriorAgents and the extension fields carry forward.
func (ec *ExecutionContext) record(resp *Response) {
	ec.Content = resp.Content
	ec.Identity = resp.Identity
	ec.PriorAgents = append(ec.PriorAgents, resp.AgentName)
	ec.Sources = resp.Sources
	ec.Metadata = resp.Metadata
	if resp.Identity == IdentityResearch {
		ec.ResearchSummary = resp.Content
	}
	if resp.Identity == IdentityFactCheck && resp.ConfidenceScore != nil {
		ec.FactCheckConfidence = resp.ConfidenceScore
	}
}

// Agent is the contract every pipeline step implements.
type Agent interface {
	// Process runs the agent's retrieval-then-generate protocol for one
	// query. ec may be nil when the agent runs standalone.
	Process(ctx context.Context, query string, ec *ExecutionContext) (*Response, error)
	Config() Config
}

// base carries the collaborators and helpers shared by all agents.
type base struct {
	cfg       Config
	llm       llm.Client
	retrieval *retrieval.Adapter
	log       *logging.Logger
}

func newBase(cfg Config, client llm.Client, adapter *retrieval.Adapter) base {
	return base{
		cfg:       cfg,
		llm:       client,
		retrieval: adapter,
		log:       logging.Get(logging.CategoryAgents),
	}
}

func (b *base) Config() Config { return b.cfg }

// requireWebSearch guards agents whose protocol cannot produce evidence
// without a web backend. A missing backend is a configuration error raised
// before any retrieval, never a degradable search failure.
func (b *base) requireWebSearch() error {
	if b.retrieval.HasWebSearch() {
		return nil
	}
	return &ConfigError{Agent: b.cfg.Name, Missing: "a web search backend"}
}

// generate performs the single LLM call of the protocol. Exactly two
// messages are sent: the system prompt and the assembled user prompt.
func (b *base) generate(ctx context.Context, userPrompt string, ec *ExecutionContext) (*llm.Response, error) {
	opts := llm.Options{
		Temperature: b.cfg.Temperature,
		MaxTokens:   b.cfg.MaxTokens,
	}
	if ec != nil && ec.Gen != nil {
		if ec.Gen.Temperature != nil {
			opts.Temperature = *ec.Gen.Temperature
		}
		if ec.Gen.MaxTokens != nil {
			opts.MaxTokens = *ec.Gen.MaxTokens
		}
	}
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: b.cfg.SystemPrompt},
		{Role: llm.RoleUser, Content: userPrompt},
	}
	b.log.Debug("%s generating (temp=%.2f max_tokens=%d prompt_len=%d)",
		b.cfg.Name, opts.Temperature, opts.MaxTokens, len(userPrompt))
	resp, err := b.llm.Generate(ctx, messages, opts)
	if err != nil {
		return nil, fmt.Errorf("%s generation failed: %w", b.cfg.Name, err)
	}
	return resp, nil
}

// respond assembles the uniform Response from a finished generation.
func (b *base) respond(text string, gen *llm.Response, sources []Source, meta map[string]any) *Response {
	resp := &Response{
		AgentName:       b.cfg.Name,
		Identity:        b.cfg.Identity,
		Content:         text,
		Sources:         sources,
		ConfidenceScore: extractConfidence(text),
		Metadata:        meta,
	}
	if gen != nil {
		resp.TokensIn = gen.TokensIn
		resp.TokensOut = gen.TokensOut
		resp.TokensUsed = gen.TokensIn + gen.TokensOut
		resp.Model = gen.Model
	}
	return resp
}

// priorContext renders the prior step's findings for inclusion in a prompt.
func priorContext(ec *ExecutionContext) string {
	if ec == nil || ec.Content == "" {
		return ""
	}
	return fmt.Sprintf("Previous agent (%s) findings:\n%s\n\n", ec.Identity, ec.Content)
}
