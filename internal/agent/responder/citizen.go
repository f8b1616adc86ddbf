package responder

import (
	"context"
	"fmt"

	"github.com/ArYaNDaNy/ingres-proto-model/internal/llm"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/logging"
)

// CitizenSummary rewrites the analysis into a plain-language brief for
// the general public.
type CitizenSummary struct {
	provider llm.Provider
	logger   *logging.Logger
}

// NewCitizenSummary creates the citizen-summary responder.
func NewCitizenSummary(provider llm.Provider) *CitizenSummary {
	return &CitizenSummary{
		provider: provider,
		logger:   logging.GetLogger("responder.citizen"),
	}
}

// Name implements Responder.
func (c *CitizenSummary) Name() Key { return KeyCitizenSummary }

// Requires implements Responder.
func (c *CitizenSummary) Requires() []Key { return []Key{KeyAnalysis} }

// Respond implements Responder.
func (c *CitizenSummary) Respond(ctx context.Context, req Request, rc *Context) Result {
	prompt := fmt.Sprintf(citizenPromptTemplate, rc.AnalysisText(), req.Query)

	text, err := c.provider.Complete(ctx, prompt)
	if err != nil {
		c.logger.Error("citizen summary generation failed: %v", err)
		return Result{Text: fmt.Sprintf("Error generating citizen summary: %v", err)}
	}
	return Result{Text: text}
}
