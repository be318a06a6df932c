// Package llm provides a narrow structured-text-generation capability used
// by the extraction provider. The interface isolates network access and model
// non-determinism behind one seam so the orchestrator's fallback decision has
// a single failure point to observe.
package llm

import (
	"context"
	"fmt"
)

// Provider identifies a generation backend.
type Provider string

// Supported generation backends.
const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

// Params are the sampling controls for one generation call.
type Params struct {
	Temperature     float32
	TopP            float32
	TopK            int32
	MaxOutputTokens int32
}

// DefaultParams returns the deterministic-leaning parameters used for
// structured extraction: low randomness, bounded output.
func DefaultParams() Params {
	return Params{
		Temperature:     0.1,
		TopP:            0.8,
		TopK:            40,
		MaxOutputTokens: 1024,
	}
}

// Client is the minimal generation interface the extraction core needs.
// Implementations return the model's raw text reply; callers strip code
// fences and parse.
type Client interface {
	// GenerateJSON sends the prompt expecting a single JSON object back.
	GenerateJSON(ctx context.Context, prompt string, params Params) (string, error)
	// Model returns the configured model name for health reporting.
	Model() string
	// Close releases any resources held by the client.
	Close() error
}

// NewClient creates a generation client for the given provider.
func NewClient(ctx context.Context, provider Provider, apiKey, model string) (Client, error) {
	switch provider {
	case ProviderOpenAI:
		return NewOpenAIClient(apiKey, model)
	case ProviderGemini, "":
		return NewGeminiClient(ctx, apiKey, model)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", provider)
	}
}
