// Package llm implements language model provider abstractions for the
// groundwater assistant.
package llm

import "context"

// Provider defines the interface for LLM backends. One call, one prompt,
// one text completion; no streaming.
type Provider interface {
	// Complete sends a prompt to the model and returns the full text
	// response.
	Complete(ctx context.Context, prompt string) (string, error)

	// Name returns the provider name for logging and display.
	Name() string

	// Model returns the model identifier being used.
	Model() string
}

// Config contains common configuration for providers.
type Config struct {
	// Model is the model identifier (e.g., "claude-sonnet-4-5-20250929").
	Model string

	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64
}

// DefaultConfig returns sensible defaults for routing and extraction.
func DefaultConfig() Config {
	return Config{
		Model:       "claude-sonnet-4-5-20250929",
		MaxTokens:   4096,
		Temperature: 0.0, // Deterministic for structured-output calls
	}
}
