// Package extract converts a free-text groundwater question into a
// structured filter specification with exactly one LLM call.
package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/ArYaNDaNy/ingres-proto-model/internal/agent/decode"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/dataset"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/llm"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/logging"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/tabular"
)

// Extractor turns queries into tabular.Spec values.
type Extractor struct {
	provider llm.Provider
	logger   *logging.Logger
}

// New creates an Extractor backed by the given provider.
func New(provider llm.Provider) *Extractor {
	return &Extractor{
		provider: provider,
		logger:   logging.GetLogger("extract"),
	}
}

// Extract asks the model for filter parameters and normalizes the
// result. Any failure — call error, malformed JSON — yields the safe
// default spec; the filter engine never sees a malformed spec.
func (e *Extractor) Extract(ctx context.Context, t *dataset.Table, query string) tabular.Spec {
	prompt := buildPrompt(t.Columns(), query)

	raw, err := e.provider.Complete(ctx, prompt)
	if err != nil {
		e.logger.Warn("parameter extraction call failed, using default spec: %v", err)
		return tabular.DefaultSpec()
	}

	var spec tabular.Spec
	if err := decode.Object(raw, &spec); err != nil {
		e.logger.Warn("parameter extraction parse failed, using default spec: %v", err)
		return tabular.DefaultSpec()
	}

	normalize(&spec)
	return spec
}

// normalize forces the dataset's storage conventions onto the spec
// regardless of what the model produced.
func normalize(spec *tabular.Spec) {
	for i, s := range spec.States {
		spec.States[i] = strings.ToUpper(s)
	}
	for i, d := range spec.Districts {
		spec.Districts[i] = strings.ToUpper(d)
	}
	if spec.Stage.Category == "" {
		spec.Stage.Category = tabular.StageNone
	}
	if spec.SortOrder == "" {
		spec.SortOrder = "desc"
	}
}

const extractPromptTemplate = `Extract filtering parameters from this groundwater query.

Available columns in dataset:
%s

User Query: "%s"

Return ONLY a valid JSON object with these keys:
{
    "states": ["list of state names in UPPERCASE if mentioned, or empty array"],
    "districts": ["list of district names if mentioned, or empty array"],
    "years": [list of years as integers, or empty array],
    "stage_filter": {
        "type": "over-exploited/critical/semi-critical/safe/none",
        "min": number or null,
        "max": number or null
    },
    "columns_to_show": ["list of column names to display from available columns"],
    "sort_by": "column name or null",
    "sort_order": "asc or desc",
    "limit": number or null
}

CRITICAL RULES:
- State names MUST be in UPPERCASE (e.g., "PUNJAB", "HARYANA", "RAJASTHAN")
- over-exploited: Stage > 100
- critical: Stage 90-100
- semi-critical: Stage 70-90
- safe: Stage < 70
- Use EXACT column names from the available columns list
- Always include STATE, DISTRICT, YEAR in columns_to_show

Return ONLY valid JSON, no explanation.`

func buildPrompt(columns []string, query string) string {
	return fmt.Sprintf(extractPromptTemplate, strings.Join(columns, ", "), query)
}
