package api

import (
	"encoding/json"
	"net/http"

	"github.com/ArYaNDaNy/ingres-proto-model/internal/agent/pipeline"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/agent/responder"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/logging"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/tabular"
)

// QueryRequest is the inbound payload for the query route.
type QueryRequest struct {
	Query string `json:"query"`
	Role  string `json:"role"`
}

// QueryResponse is the outbound envelope. VisualizationContext rides
// alongside the narrative selection whenever visualization ran; Results
// exposes every responder output so consumers are not limited to the
// priority rule's pick.
type QueryResponse struct {
	Query                string                             `json:"query"`
	Role                 string                             `json:"role"`
	VisualizationContext *tabular.Result                    `json:"visualization_context"`
	MainOutput           interface{}                        `json:"main_output"`
	Results              map[responder.Key]responder.Result `json:"results,omitempty"`
}

// QueryHandler handles query pipeline requests.
type QueryHandler struct {
	coordinator *pipeline.Coordinator
	logger      *logging.Logger
}

// NewQueryHandler creates a query handler. A nil coordinator signals
// that the dataset failed to load; requests then get 503.
func NewQueryHandler(coordinator *pipeline.Coordinator, logger *logging.Logger) *QueryHandler {
	return &QueryHandler{
		coordinator: coordinator,
		logger:      logger,
	}
}

// Handle runs the pipeline for one request.
func (qh *QueryHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if qh.coordinator == nil {
		WriteError(w, http.StatusServiceUnavailable, "DATASET_UNAVAILABLE",
			"Data server is unavailable: groundwater dataset failed to load")
		return
	}

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "INVALID_REQUEST", "Missing or malformed JSON payload in request")
		return
	}
	if req.Query == "" || req.Role == "" {
		WriteError(w, http.StatusBadRequest, "INVALID_REQUEST", "Missing 'query' or 'role' parameter in the request")
		return
	}

	outcome := qh.coordinator.Run(r.Context(), req.Query, req.Role)

	response := QueryResponse{
		Query:                req.Query,
		Role:                 req.Role,
		VisualizationContext: outcome.Visualization,
		MainOutput:           mainOutput(outcome),
		Results:              outcome.Results,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = WriteJSON(w, response)

	qh.logger.InfoWithFields("query handled",
		logging.Field("run_id", outcome.RunID),
		logging.Field("role", req.Role),
		logging.Field("selected", string(outcome.SelectedKey)),
	)
}

// mainOutput shapes the selected result: narrative text is wrapped as a
// summary object, structured payloads pass through, and an empty
// selection falls back to the full results map.
func mainOutput(outcome *pipeline.Outcome) interface{} {
	if outcome.Selected == nil {
		return outcome.Results
	}
	if outcome.Selected.Table != nil {
		return outcome.Selected.Table
	}
	return map[string]string{"summary_text": outcome.Selected.Text}
}
