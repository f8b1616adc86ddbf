package responder

import (
	"context"
	"fmt"

	"github.com/ArYaNDaNy/ingres-proto-model/internal/llm"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/logging"
)

// Policy generates a word-bounded policy brief for government officials
// from the analysis text already in the shared context.
type Policy struct {
	provider llm.Provider
	logger   *logging.Logger
}

// NewPolicy creates the policy responder.
func NewPolicy(provider llm.Provider) *Policy {
	return &Policy{
		provider: provider,
		logger:   logging.GetLogger("responder.policy"),
	}
}

// Name implements Responder.
func (p *Policy) Name() Key { return KeyPolicy }

// Requires implements Responder.
func (p *Policy) Requires() []Key { return []Key{KeyAnalysis} }

// Respond implements Responder. A missing analysis result falls back to
// the placeholder text rather than failing.
func (p *Policy) Respond(ctx context.Context, req Request, rc *Context) Result {
	prompt := fmt.Sprintf(policyPromptTemplate, rc.AnalysisText(), req.Query)

	text, err := p.provider.Complete(ctx, prompt)
	if err != nil {
		p.logger.Error("policy brief generation failed: %v", err)
		return Result{Text: fmt.Sprintf("Error generating policy recommendations: %v", err)}
	}
	return Result{Text: text}
}
