// Package llm provides provider clients for chat completion.
// Providers are interchangeable behind the Client interface; the agent core
// never talks to a provider API directly.
package llm

import (
	"context"
	"fmt"
)

// Role constants for messages.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options are per-call generation parameters. Zero values fall back to the
// provider defaults.
type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string
}

// Response is the standardized result of a generate call.
type Response struct {
	Text      string
	TokensIn  int
	TokensOut int
	Model     string
}

// Client is implemented by all LLM providers.
type Client interface {
	Generate(ctx context.Context, messages []Message, opts Options) (*Response, error)
	Model() string
}

// ErrorKind classifies provider failures. The orchestration layer propagates
// these without retrying; classification exists for the boundary layer.
type ErrorKind int

const (
	ErrKindConnection ErrorKind = iota
	ErrKindAuth
	ErrKindRateLimit
	ErrKindRuntime
)

// APIError is a typed provider failure.
type APIError struct {
	Kind       ErrorKind
	Provider   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s (status %d)", e.Provider, e.Message, e.StatusCode)
}

// classifyStatus maps an HTTP status code to an error kind.
func classifyStatus(status int) ErrorKind {
	switch {
	case status == 401 || status == 403:
		return ErrKindAuth
	case status == 429:
		return ErrKindRateLimit
	default:
		return ErrKindRuntime
	}
}
