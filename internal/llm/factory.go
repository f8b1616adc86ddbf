package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/ArYaNDaNy/ingres-proto-model/internal/config"
)

// NewFromConfig builds a Provider from application configuration. API
// keys come from the environment only.
func NewFromConfig(ctx context.Context, cfg config.LLMConfig) (Provider, error) {
	pc := Config{
		Model:       cfg.Model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}

	switch cfg.Provider {
	case "anthropic":
		if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
			return NewAnthropicProviderWithKey(key, pc)
		}
		return NewAnthropicProvider(pc)
	case "gemini":
		return NewGeminiProvider(ctx, os.Getenv("GEMINI_API_KEY"), pc)
	case "ollama":
		return NewOllamaProvider(cfg.OllamaBaseURL, pc), nil
	case "mock":
		if cfg.MockScriptPath != "" {
			return LoadMockScript(cfg.MockScriptPath)
		}
		m := NewMockProvider()
		m.SetFallback("mock response")
		return m, nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", cfg.Provider)
	}
}
