package agent

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"studymate/internal/llm"
	"studymate/internal/logging"
	"studymate/internal/retrieval"
	"studymate/internal/tts"
)

// Pricer converts a finished generation into a dollar cost. A nil pricer
// reports every step as free.
type Pricer func(model string, tokensIn, tokensOut int) float64

// USD per million tokens for the models we route to by default.
var defaultRates = map[string][2]float64{
	"gpt-4o-mini":      {0.15, 0.60},
	"gpt-4o":           {2.50, 10.00},
	"gemini-2.5-flash": {0.30, 2.50},
}

// DefaultPricer prices known models and reports unknown models as free.
func DefaultPricer(model string, tokensIn, tokensOut int) float64 {
	rates, ok := defaultRates[model]
	if !ok {
		return 0
	}
	return float64(tokensIn)/1e6*rates[0] + float64(tokensOut)/1e6*rates[1]
}

// Step is one pipeline stage. An empty Query means "use the pipeline's
// initial query".
type Step struct {
	Agent Identity
	Query string
}

// StepError wraps a failed pipeline stage with its position and agent.
type StepError struct {
	Index int
	Agent Identity
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("pipeline step %d (%s): %v", e.Index+1, e.Agent, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// PipelineResult is the record of one pipeline run: every agent response in
// execution order plus run-level accounting.
type PipelineResult struct {
	RunID        string      `json:"run_id"`
	Query        string      `json:"query"`
	Responses    []*Response `json:"responses"`
	TotalTokens  int         `json:"total_tokens"`
	TotalCostUSD float64     `json:"total_cost_usd"`
	StartedAt    time.Time   `json:"started_at"`
	FinishedAt   time.Time   `json:"finished_at"`
}

// AgentInfo is the public listing entry for an agent.
type AgentInfo struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Personality string `json:"personality"`
	Avatar      string `json:"avatar"`
	Color       string `json:"color"`
}

// Orchestrator sequences agents over a shared execution context. Agents are
// created on first use and reused; the orchestrator is safe for concurrent
// callers.
type Orchestrator struct {
	llm       llm.Client
	retrieval *retrieval.Adapter
	synth     tts.Synthesizer
	pricer    Pricer
	log       *logging.Logger

	mu     sync.Mutex
	agents map[Identity]Agent
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithSynthesizer enables podcast audio generation.
func WithSynthesizer(s tts.Synthesizer) Option {
	return func(o *Orchestrator) { o.synth = s }
}

// WithPricer sets the cost model applied to every response.
func WithPricer(p Pricer) Option {
	return func(o *Orchestrator) { o.pricer = p }
}

// NewOrchestrator builds an orchestrator over shared collaborators.
func NewOrchestrator(client llm.Client, adapter *retrieval.Adapter, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		llm:       client,
		retrieval: adapter,
		pricer:    DefaultPricer,
		log:       logging.Get(logging.CategoryPipeline),
		agents:    make(map[Identity]Agent),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Agent returns the instance for an identity, creating it on first use.
func (o *Orchestrator) Agent(id Identity) (Agent, error) {
	if !id.Valid() {
		return nil, &UnknownAgentError{Name: id.String(), Valid: ValidAgentNames()}
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if a, ok := o.agents[id]; ok {
		return a, nil
	}
	a := o.build(id)
	o.agents[id] = a
	return a, nil
}

func (o *Orchestrator) build(id Identity) Agent {
	switch id {
	case IdentityResearch:
		return NewResearchAgent(o.llm, o.retrieval)
	case IdentityFactCheck:
		return NewFactCheckAgent(o.llm, o.retrieval)
	case IdentityBusinessAnalyst:
		return NewBusinessAnalystAgent(o.llm, o.retrieval)
	case IdentityWriting:
		return NewWritingAgent(o.llm, o.retrieval)
	case IdentityPodcast:
		return NewPodcastAgent(o.llm, o.retrieval, o.synth)
	case IdentityQuiz:
		return NewQuizAgent(o.llm, o.retrieval)
	case IdentityStudyGuide:
		return NewStudyGuideAgent(o.llm, o.retrieval)
	}
	panic(fmt.Sprintf("agent: no constructor for identity %v", id))
}

// RunSingleAgent runs one agent standalone or with a caller-provided context.
func (o *Orchestrator) RunSingleAgent(ctx context.Context, id Identity, query string, ec *ExecutionContext) (*Response, error) {
	a, err := o.Agent(id)
	if err != nil {
		return nil, err
	}
	resp, err := a.Process(ctx, query, ec)
	if err != nil {
		return nil, err
	}
	o.price(resp)
	return resp, nil
}

// RunByName resolves a free-text agent name and runs it. Unknown names fail
// before any collaborator is touched.
func (o *Orchestrator) RunByName(ctx context.Context, name, query string, ec *ExecutionContext) (*Response, error) {
	id, err := ParseIdentity(name)
	if err != nil {
		return nil, err
	}
	return o.RunSingleAgent(ctx, id, query, ec)
}

// RunPipeline executes steps strictly in order, threading one execution
// context through them. The first failing step aborts the run.
func (o *Orchestrator) RunPipeline(ctx context.Context, steps []Step, initialQuery string) (*PipelineResult, error) {
	result := &PipelineResult{
		RunID:     uuid.NewString(),
		Query:     initialQuery,
		StartedAt: time.Now(),
	}
	o.log.Info("pipeline %s starting with %d steps for %q", result.RunID, len(steps), initialQuery)

	ec := &ExecutionContext{}
	for i, step := range steps {
		query := step.Query
		if query == "" {
			query = initialQuery
		}
		o.log.Info("pipeline %s step %d/%d: %s", result.RunID, i+1, len(steps), step.Agent)

		resp, err := o.RunSingleAgent(ctx, step.Agent, query, ec)
		if err != nil {
			o.log.Error("pipeline %s aborted at step %d (%s): %v", result.RunID, i+1, step.Agent, err)
			return nil, &StepError{Index: i, Agent: step.Agent, Err: err}
		}
		result.Responses = append(result.Responses, resp)
		result.TotalTokens += resp.TokensUsed
		result.TotalCostUSD += resp.CostUSD
		ec.record(resp)
	}

	result.FinishedAt = time.Now()
	o.log.Info("pipeline %s finished: %d responses, %d tokens", result.RunID, len(result.Responses), result.TotalTokens)
	return result, nil
}

// RunStandardPipeline runs Research, Fact-Check, Business Analyst, Writing
// over one query. outputFormat shapes the final document, defaulting to a
// report.
func (o *Orchestrator) RunStandardPipeline(ctx context.Context, query, outputFormat string) (*PipelineResult, error) {
	if outputFormat == "" {
		outputFormat = "report"
	}
	steps := []Step{
		{Agent: IdentityResearch, Query: query},
		{Agent: IdentityFactCheck, Query: fmt.Sprintf("Verify the key claims about: %s", query)},
		{Agent: IdentityBusinessAnalyst, Query: fmt.Sprintf("Analyze the business implications of: %s", query)},
		{Agent: IdentityWriting, Query: fmt.Sprintf("Write a professional %s summarizing the findings", outputFormat)},
	}
	return o.RunPipeline(ctx, steps, query)
}

// ListAvailableAgents describes every agent in declaration order.
func (o *Orchestrator) ListAvailableAgents() []AgentInfo {
	infos := make([]AgentInfo, 0, len(configsByIdentity))
	for _, id := range Identities() {
		cfg := configsByIdentity[id]
		infos = append(infos, AgentInfo{
			Type:        id.String(),
			Name:        cfg.Name,
			Description: cfg.Description,
			Personality: cfg.Personality,
			Avatar:      cfg.Emoji,
			Color:       cfg.Color,
		})
	}
	return infos
}

func (o *Orchestrator) price(resp *Response) {
	if o.pricer == nil {
		return
	}
	resp.CostUSD = o.pricer(resp.Model, resp.TokensIn, resp.TokensOut)
}
