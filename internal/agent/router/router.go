// Package router decides, per request, which responders run and in what
// order. The decision is delegated to the model; the validation is
// deterministic and never fails past this boundary.
package router

import (
	"context"
	"fmt"

	"github.com/ArYaNDaNy/ingres-proto-model/internal/agent/decode"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/agent/responder"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/llm"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/logging"
)

// Router produces an ordered responder sequence via one LLM call.
type Router struct {
	provider llm.Provider
	logger   *logging.Logger
}

// New creates a Router backed by the given provider.
func New(provider llm.Provider) *Router {
	return &Router{
		provider: provider,
		logger:   logging.GetLogger("router"),
	}
}

// Route returns the ordered subset of responders to run. Every failure
// path — call error, malformed JSON, non-array payload — yields the
// single-element fallback [analysis]. Unknown names are dropped
// silently, preserving the order of the rest.
func (r *Router) Route(ctx context.Context, query, role string) []responder.Key {
	prompt := buildPrompt(query, role)

	raw, err := r.provider.Complete(ctx, prompt)
	if err != nil {
		r.logger.Warn("routing call failed, falling back to [analysis]: %v", err)
		return []responder.Key{responder.KeyAnalysis}
	}

	var names []string
	if err := decode.Array(raw, &names); err != nil {
		r.logger.Warn("routing response parse failed, falling back to [analysis]: %v", err)
		return []responder.Key{responder.KeyAnalysis}
	}

	validated := make([]responder.Key, 0, len(names))
	for _, name := range names {
		key := responder.Key(name)
		if responder.IsValid(key) {
			validated = append(validated, key)
		} else {
			r.logger.Debug("dropping unknown responder name %q", name)
		}
	}
	return validated
}

const routePromptTemplate = `You are an expert router agent for a groundwater management system. Your job is to analyze the user's query and their role, then determine which responders should run and in what sequence.

**USER INFORMATION:**
- Query: "%s"
- Role: %s

**AVAILABLE RESPONDERS:**
- **analysis**: Analyzes groundwater extraction data including rainfall, recharge, extraction rates, and stage of extraction. Use this as the FIRST responder for almost all groundwater-related queries to get comprehensive data insights.
- **policy**: Generates concise policy briefs and recommendations for government officials. Use when role=government OR when the user asks for policy recommendations, government actions, or administrative decisions.
- **citizen-summary**: Provides simplified, citizen-friendly summaries for the general public. Use when role=citizen OR when the user needs easy-to-understand explanations without technical jargon.
- **visualization**: Creates structured JSON data for charts and graphs (bar charts, line charts, pie charts, maps). Use ONLY when the user explicitly requests a "chart", "graph", "visualization", "plot", or "show me visually".

**ROUTING RULES:**

1. **Analysis First**: Almost always start with analysis to fetch and analyze data.

2. **Role-Based Routing**:
- If role is "government", use policy for the final summary.
- If role is "citizen" or "other", use citizen-summary for the final summary.
- If role is "researcher", only use analysis (detailed output).

3. **Visualization Rules**:
- ONLY include visualization if the query contains words like: "chart", "graph", "plot", "visualize", "show graph", "create chart".
- Visualization comes AFTER analysis.

**YOUR TASK:**
Return ONLY a JSON array of responder names in execution order. No explanations, no markdown, no extra text.

**Examples:**

Query: "Compare groundwater extraction in Punjab and Haryana"
Role: government
Response: ["analysis", "policy"]

Query: "Show me a bar chart of rainfall data"
Role: citizen
Response: ["analysis", "visualization"]

Query: "Which districts have critical groundwater levels?"
Role: citizen
Response: ["analysis", "citizen-summary"]

Query: "Analyze groundwater recharge patterns"
Role: researcher
Response: ["analysis"]

Now process the user's query and return the responder sequence:`

func buildPrompt(query, role string) string {
	return fmt.Sprintf(routePromptTemplate, query, role)
}
