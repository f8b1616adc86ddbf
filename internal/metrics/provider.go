package metrics

import (
	"context"

	"github.com/ArYaNDaNy/ingres-proto-model/internal/llm"
)

// InstrumentedProvider wraps an llm.Provider, counting calls and
// failures without changing behavior.
type InstrumentedProvider struct {
	inner llm.Provider
	m     *Metrics
}

// Instrument wraps a provider with call/failure counters.
func Instrument(inner llm.Provider, m *Metrics) *InstrumentedProvider {
	return &InstrumentedProvider{inner: inner, m: m}
}

// Complete implements llm.Provider.
func (p *InstrumentedProvider) Complete(ctx context.Context, prompt string) (string, error) {
	p.m.LLMCallsTotal.Inc()
	text, err := p.inner.Complete(ctx, prompt)
	if err != nil {
		p.m.LLMFailuresTotal.Inc()
	}
	return text, err
}

// Name implements llm.Provider.
func (p *InstrumentedProvider) Name() string { return p.inner.Name() }

// Model implements llm.Provider.
func (p *InstrumentedProvider) Model() string { return p.inner.Model() }
