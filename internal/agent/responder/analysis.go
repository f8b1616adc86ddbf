package responder

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ArYaNDaNy/ingres-proto-model/internal/agent/extract"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/dataset"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/llm"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/logging"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/tabular"
)

// analysisMaxRetries bounds the model-call retry loop.
const analysisMaxRetries = 3

// evidenceRowCap caps how many filtered rows are embedded in the
// analysis prompt.
const evidenceRowCap = 50

// Analysis is the data-analysis responder. It is the only responder
// allowed to read the dataset directly: it optimizes the query, gathers
// matching rows through the filter engine, and asks the model for a
// structured analysis of that evidence.
type Analysis struct {
	provider  llm.Provider
	table     *dataset.Table
	extractor *extract.Extractor
	logger    *logging.Logger
}

// NewAnalysis creates the analysis responder.
func NewAnalysis(provider llm.Provider, table *dataset.Table) *Analysis {
	return &Analysis{
		provider:  provider,
		table:     table,
		extractor: extract.New(provider),
		logger:    logging.GetLogger("responder.analysis"),
	}
}

// Name implements Responder.
func (a *Analysis) Name() Key { return KeyAnalysis }

// Requires implements Responder. Analysis is a pure producer.
func (a *Analysis) Requires() []Key { return nil }

// Respond implements Responder. Failures are contained: after the retry
// budget is spent, an error-text result is returned instead of a fault.
func (a *Analysis) Respond(ctx context.Context, req Request, _ *Context) Result {
	optimized := a.optimizeQuery(ctx, req.Query)
	evidence := a.gatherEvidence(ctx, optimized, req.Query)

	prompt := fmt.Sprintf(analysisPromptTemplate,
		a.table.NumRows(), len(a.table.Columns()), optimized, evidence)

	var lastErr error
	for attempt := 1; attempt <= analysisMaxRetries; attempt++ {
		text, err := a.provider.Complete(ctx, prompt)
		if err == nil {
			return Result{Text: text}
		}
		lastErr = err
		a.logger.Warn("analysis call failed (attempt %d/%d): %v", attempt, analysisMaxRetries, err)
	}

	return Result{Text: fmt.Sprintf("Error generating analysis: %v", lastErr)}
}

// optimizeQuery rewrites the user query against the live column list.
// On failure the raw query is used as-is.
func (a *Analysis) optimizeQuery(ctx context.Context, query string) string {
	prompt := fmt.Sprintf(optimizerPromptTemplate, strings.Join(a.table.Columns(), ", "), query)
	optimized, err := a.provider.Complete(ctx, prompt)
	if err != nil {
		a.logger.Warn("query optimization failed, using original query: %v", err)
		return query
	}
	optimized = strings.TrimSpace(optimized)
	if optimized == "" {
		return query
	}
	return optimized
}

// gatherEvidence runs the extractor and filter engine to pull the rows
// relevant to the query, rendered compactly for the analysis prompt.
func (a *Analysis) gatherEvidence(ctx context.Context, optimized, original string) string {
	spec := a.extractor.Extract(ctx, a.table, optimized)
	if spec.Limit <= 0 || spec.Limit > evidenceRowCap {
		spec.Limit = evidenceRowCap
	}

	result := tabular.Apply(a.table, spec, original)
	if !result.Success {
		return "No rows matched the extracted filters; analyze at the dataset level instead."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Rows matched: %d\n", result.Metadata.TotalRecords)
	fmt.Fprintf(&b, "Columns: %s\n", strings.Join(result.Metadata.Columns, ", "))
	for _, record := range result.Data {
		line, err := json.Marshal(record)
		if err != nil {
			continue
		}
		b.Write(line)
		b.WriteByte('\n')
	}
	return b.String()
}
