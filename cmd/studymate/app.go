package main

import (
	"fmt"

	"go.uber.org/zap"

	"studymate/internal/agent"
	"studymate/internal/config"
	"studymate/internal/docstore"
	"studymate/internal/llm"
	"studymate/internal/retrieval"
	"studymate/internal/tts"
	"studymate/internal/websearch"
)

// app bundles the wired collaborators behind every command.
type app struct {
	orchestrator *agent.Orchestrator
	store        *docstore.Store
}

func (a *app) close() {
	if a.store != nil {
		_ = a.store.Close()
	}
}

// newApp wires the orchestrator from config. The document store and TTS are
// optional: commands work without them, with degraded retrieval.
func newApp(cfg *config.Config) (*app, error) {
	client, err := llm.NewClient(cfg.LLM)
	if err != nil {
		return nil, err
	}

	store, err := openStore(cfg)
	if err != nil {
		// Document search always degrades, so a broken store is not fatal.
		logger.Warn("document store unavailable, continuing without documents", zap.Error(err))
		store = nil
	}

	searcher, err := newWebSearcher(cfg)
	if err != nil {
		return nil, err
	}

	var docs retrieval.DocumentSearcher
	if store != nil {
		docs = store
	}
	adapter := retrieval.New(docs, searcher)

	opts := []agent.Option{}
	if cfg.TTS.Enabled && cfg.TTS.APIKey != "" {
		opts = append(opts, agent.WithSynthesizer(tts.NewOpenAIClient(tts.Config{
			APIKey:  cfg.TTS.APIKey,
			BaseURL: cfg.TTS.BaseURL,
			Model:   cfg.TTS.Model,
			OutDir:  cfg.TTS.OutDir,
		})))
	}

	return &app{
		orchestrator: agent.NewOrchestrator(client, adapter, opts...),
		store:        store,
	}, nil
}

func openStore(cfg *config.Config) (*docstore.Store, error) {
	if cfg.Docstore.DatabasePath == "" {
		return nil, nil
	}
	store, err := docstore.Open(cfg.Docstore.DatabasePath)
	if err != nil {
		return nil, err
	}
	if cfg.Docstore.EmbeddingAPIKey != "" {
		engine, err := docstore.NewGenAIEngine(cfg.Docstore.EmbeddingAPIKey, cfg.Docstore.EmbeddingModel)
		if err != nil {
			logger.Warn("embedding engine unavailable, falling back to keyword search", zap.Error(err))
		} else {
			store.SetEmbeddingEngine(engine)
		}
	}
	return store, nil
}

func newWebSearcher(cfg *config.Config) (websearch.Searcher, error) {
	switch cfg.WebSearch.Provider {
	case "", "duckduckgo":
		return websearch.NewDuckDuckGo(), nil
	case "tavily":
		if cfg.WebSearch.APIKey == "" {
			return nil, fmt.Errorf("tavily web search requires an API key")
		}
		return websearch.NewTavily(cfg.WebSearch.APIKey), nil
	default:
		return nil, fmt.Errorf("unsupported web search provider: %q (use duckduckgo or tavily)", cfg.WebSearch.Provider)
	}
}
