// Package pipeline implements the coordinator that owns one request's
// shared context: it routes, executes responders in order, and selects
// the final user-facing output.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ArYaNDaNy/ingres-proto-model/internal/agent/responder"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/agent/router"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/logging"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/metrics"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/tabular"
)

// selectionPriority is the fixed priority order for the final output.
var selectionPriority = []responder.Key{
	responder.KeyPolicy,
	responder.KeyCitizenSummary,
	responder.KeyAnalysis,
	responder.KeyVisualization,
}

// Coordinator runs the routing/execution/selection state machine over
// one request at a time. The dataset behind the responders is read-only,
// so one Coordinator may serve concurrent requests.
type Coordinator struct {
	router   *router.Router
	registry map[responder.Key]responder.Responder
	metrics  *metrics.Metrics
	logger   *logging.Logger
}

// Outcome is the result of one pipeline run.
type Outcome struct {
	RunID string
	Query string
	Role  string

	// SelectedKey names the result chosen by the priority rule; empty
	// when no responder produced output.
	SelectedKey responder.Key
	Selected    *responder.Result

	// Visualization is carried separately whenever it was produced,
	// regardless of the selection rule.
	Visualization *tabular.Result

	// Results holds every responder output keyed by responder name.
	Results map[responder.Key]responder.Result
}

// New creates a Coordinator. Metrics may be nil.
func New(rt *router.Router, responders []responder.Responder, m *metrics.Metrics) *Coordinator {
	registry := make(map[responder.Key]responder.Responder, len(responders))
	for _, r := range responders {
		registry[r.Name()] = r
	}
	return &Coordinator{
		router:   rt,
		registry: registry,
		metrics:  m,
		logger:   logging.GetLogger("pipeline"),
	}
}

// Run executes the full pipeline for one request. It never returns an
// error: responders contain their own failures and the router always
// yields a valid (possibly empty) sequence.
func (c *Coordinator) Run(ctx context.Context, query, role string) *Outcome {
	start := time.Now()
	runID := uuid.NewString()
	log := c.logger.WithField("run_id", runID)

	if c.metrics != nil {
		c.metrics.RequestsTotal.WithLabelValues(role).Inc()
		defer func() {
			c.metrics.RequestDuration.Observe(time.Since(start).Seconds())
		}()
	}

	outcome := &Outcome{
		RunID:   runID,
		Query:   query,
		Role:    role,
		Results: make(map[responder.Key]responder.Result),
	}

	// Routing
	routed := c.router.Route(ctx, query, role)
	ordered := c.orderByDependencies(routed, log)
	log.InfoWithFields("responders routed",
		logging.Field("role", role),
		logging.Field("responders", keysToStrings(ordered)),
	)

	// Executing
	req := responder.Request{Query: query, Role: role}
	rc := responder.NewContext()
	for _, key := range ordered {
		impl, ok := c.registry[key]
		if !ok {
			// Validated upstream; a miss here means a registry gap.
			log.Warn("no responder registered for %q, skipping", key)
			continue
		}

		result := impl.Respond(ctx, req, rc)
		rc.Set(key, result)
		outcome.Results[key] = result

		if c.metrics != nil {
			c.metrics.ResponderRunsTotal.WithLabelValues(string(key)).Inc()
		}
		log.Debug("responder %q finished", key)
	}

	// Selecting
	for _, key := range selectionPriority {
		if result, ok := outcome.Results[key]; ok {
			outcome.SelectedKey = key
			outcome.Selected = &result
			break
		}
	}
	if viz, ok := outcome.Results[responder.KeyVisualization]; ok {
		outcome.Visualization = viz.Table
	}

	log.InfoWithFields("pipeline complete",
		logging.Field("selected", string(outcome.SelectedKey)),
		logging.Field("duration_ms", time.Since(start).Milliseconds()),
	)
	return outcome
}

// orderByDependencies stably reorders the routed sequence so that every
// responder runs after the producers it declares, when those producers
// are present in the sequence. Missing producers are not injected; the
// responder will fall back to its placeholder input.
func (c *Coordinator) orderByDependencies(routed []responder.Key, log *logging.Logger) []responder.Key {
	inRouted := make(map[responder.Key]bool, len(routed))
	for _, k := range routed {
		inRouted[k] = true
	}

	placed := make(map[responder.Key]bool, len(routed))
	ordered := make([]responder.Key, 0, len(routed))

	var place func(k responder.Key)
	place = func(k responder.Key) {
		if placed[k] {
			return
		}
		placed[k] = true
		if impl, ok := c.registry[k]; ok {
			for _, dep := range impl.Requires() {
				if inRouted[dep] {
					place(dep)
				} else {
					log.Warn("responder %q routed without its producer %q; placeholder input will be used", k, dep)
				}
			}
		}
		ordered = append(ordered, k)
	}

	for _, k := range routed {
		place(k)
	}
	return ordered
}

func keysToStrings(keys []responder.Key) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out
}
