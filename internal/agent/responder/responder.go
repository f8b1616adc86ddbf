// Package responder implements the four specialized responders and the
// shared request context they communicate through.
package responder

import (
	"context"
	"encoding/json"

	"github.com/ArYaNDaNy/ingres-proto-model/internal/tabular"
)

// Key identifies a responder and doubles as its result key in the shared
// context. The set is closed; router output is validated against it.
type Key string

const (
	KeyAnalysis       Key = "analysis"
	KeyPolicy         Key = "policy"
	KeyCitizenSummary Key = "citizen-summary"
	KeyVisualization  Key = "visualization"
)

// ValidKeys returns the closed responder name set in priority-neutral
// declaration order.
func ValidKeys() []Key {
	return []Key{KeyAnalysis, KeyPolicy, KeyCitizenSummary, KeyVisualization}
}

// IsValid reports whether k names a known responder.
func IsValid(k Key) bool {
	switch k {
	case KeyAnalysis, KeyPolicy, KeyCitizenSummary, KeyVisualization:
		return true
	}
	return false
}

// Request carries the immutable per-run inputs.
type Request struct {
	Query string
	Role  string
}

// Result is a responder output: free text for the narrative responders,
// a structured table payload for visualization.
type Result struct {
	Text  string
	Table *tabular.Result
}

// MarshalJSON renders the result the way the host response expects: the
// table payload when present, the bare text otherwise.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Table != nil {
		return json.Marshal(r.Table)
	}
	return json.Marshal(r.Text)
}

// Responder is a pure function of (request, shared context). Responders
// contain their own failures: Respond returns an error-text or
// structured-error result, never panics or propagates.
type Responder interface {
	// Name returns the responder's key in the closed name set.
	Name() Key

	// Requires lists result keys this responder reads from the shared
	// context. The coordinator orders execution so producers present in
	// the routed sequence run first.
	Requires() []Key

	// Respond produces this responder's result.
	Respond(ctx context.Context, req Request, rc *Context) Result
}
