// Package metrics holds Prometheus metrics for pipeline observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the query pipeline.
type Metrics struct {
	RequestsTotal      *prometheus.CounterVec // Pipeline runs, labeled by requester role
	ResponderRunsTotal *prometheus.CounterVec // Responder executions, labeled by responder name
	LLMCallsTotal      prometheus.Counter     // Model calls issued
	LLMFailuresTotal   prometheus.Counter     // Model calls that returned an error
	RequestDuration    prometheus.Histogram   // End-to-end pipeline latency
}

// New creates and registers pipeline metrics. The registerer parameter
// allows flexible registration (global registry, test registry).
func New(reg prometheus.Registerer) *Metrics {
	requestsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ingres_pipeline_requests_total",
		Help: "Total number of pipeline runs",
	}, []string{"role"})

	responderRunsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ingres_pipeline_responder_runs_total",
		Help: "Total number of responder executions",
	}, []string{"responder"})

	llmCallsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ingres_llm_calls_total",
		Help: "Total number of language model calls issued",
	})

	llmFailuresTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ingres_llm_failures_total",
		Help: "Total number of language model calls that failed",
	})

	requestDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ingres_pipeline_request_duration_seconds",
		Help:    "End-to-end pipeline run duration in seconds",
		Buckets: prometheus.DefBuckets,
	})

	reg.MustRegister(requestsTotal)
	reg.MustRegister(responderRunsTotal)
	reg.MustRegister(llmCallsTotal)
	reg.MustRegister(llmFailuresTotal)
	reg.MustRegister(requestDuration)

	return &Metrics{
		RequestsTotal:      requestsTotal,
		ResponderRunsTotal: responderRunsTotal,
		LLMCallsTotal:      llmCallsTotal,
		LLMFailuresTotal:   llmFailuresTotal,
		RequestDuration:    requestDuration,
	}
}
