// Package llm wraps the hosted model APIs used to score journal entries.
//
// Every provider answers a single-turn Request with JSON that has been
// checked against the request's Schema. Providers are composed with the
// Recorder and Retrier decorators by New.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates schema-constrained JSON from a prompt.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	// ModelID is the resolved model identifier, e.g. "gpt-4o-mini".
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	System string
	Prompt string

	// Schema, when set, switches the provider to its native structured
	// output mode and the reply is validated before it is returned.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Schema is a named JSON Schema document.
type Schema struct {
	// Name is kebab-case; OpenAI requires it and the validator caches by it.
	Name        string
	Description string
	Definition  map[string]any
}

// Response is a provider reply.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	// Model is the model that actually served the request.
	Model string
}

// Usage is the token accounting for one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total is input plus output tokens.
func (u Usage) Total() int { return u.InputTokens + u.OutputTokens }
