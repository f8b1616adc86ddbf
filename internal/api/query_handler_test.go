package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArYaNDaNy/ingres-proto-model/internal/agent/pipeline"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/agent/responder"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/agent/router"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/dataset"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/llm"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/logging"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/tabular"
)

func testCoordinator(routerResponse string) *pipeline.Coordinator {
	mock := llm.NewMockProvider()
	mock.Script("expert router agent", routerResponse)
	mock.Script("query optimizer", "optimized")
	mock.Script("Extract filtering parameters",
		`{"states": [], "stage_filter": {"type": "none"}, "sort_order": "desc", "limit": 20}`)
	mock.Script("expert data analyst", "ANALYSIS TEXT")
	mock.Script("policy advisor for groundwater management", "POLICY TEXT")
	mock.Script("helping farmers and citizens", "CITIZEN TEXT")

	table := dataset.New(
		[]string{tabular.ColState, tabular.ColDistrict, tabular.ColYear, tabular.ColStage},
		[]map[string]interface{}{
			{tabular.ColState: "PUNJAB", tabular.ColDistrict: "AMRITSAR", tabular.ColYear: 2023, tabular.ColStage: 165.3},
		},
	)

	return pipeline.New(
		router.New(mock),
		[]responder.Responder{
			responder.NewAnalysis(mock, table),
			responder.NewPolicy(mock),
			responder.NewCitizenSummary(mock),
			responder.NewVisualization(mock, table),
		},
		nil,
	)
}

func post(t *testing.T, handler *QueryHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/run_agent", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)
	return rec
}

func TestHandle_NilCoordinatorReturns503(t *testing.T) {
	handler := NewQueryHandler(nil, logging.GetLogger("test"))

	rec := post(t, handler, `{"query": "anything", "role": "citizen"}`)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "DATASET_UNAVAILABLE", body["error"])
}

func TestHandle_MalformedJSONReturns400(t *testing.T) {
	handler := NewQueryHandler(testCoordinator(`["analysis"]`), logging.GetLogger("test"))

	rec := post(t, handler, `{"query": `)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_MissingFieldsReturn400(t *testing.T) {
	handler := NewQueryHandler(testCoordinator(`["analysis"]`), logging.GetLogger("test"))

	for _, body := range []string{
		`{"role": "citizen"}`,
		`{"query": "how much water"}`,
		`{}`,
	} {
		rec := post(t, handler, body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var payload map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.Equal(t, "INVALID_REQUEST", payload["error"])
	}
}

func TestHandle_NarrativeSelectionWrappedAsSummary(t *testing.T) {
	handler := NewQueryHandler(testCoordinator(`["analysis", "policy"]`), logging.GetLogger("test"))

	rec := post(t, handler, `{"query": "compare extraction", "role": "government"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Query                string                     `json:"query"`
		Role                 string                     `json:"role"`
		VisualizationContext *tabular.Result            `json:"visualization_context"`
		MainOutput           map[string]string          `json:"main_output"`
		Results              map[string]json.RawMessage `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "compare extraction", body.Query)
	assert.Equal(t, "government", body.Role)
	assert.Nil(t, body.VisualizationContext)
	assert.Equal(t, "POLICY TEXT", body.MainOutput["summary_text"])
	assert.Contains(t, body.Results, "analysis")
	assert.Contains(t, body.Results, "policy")
}

func TestHandle_VisualizationRidesAlongside(t *testing.T) {
	handler := NewQueryHandler(
		testCoordinator(`["analysis", "citizen-summary", "visualization"]`),
		logging.GetLogger("test"))

	rec := post(t, handler, `{"query": "chart the stages", "role": "citizen"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		VisualizationContext *tabular.Result   `json:"visualization_context"`
		MainOutput           map[string]string `json:"main_output"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	require.NotNil(t, body.VisualizationContext)
	assert.True(t, body.VisualizationContext.Success)
	assert.Equal(t, "CITIZEN TEXT", body.MainOutput["summary_text"])
}

func TestHandle_StructuredSelectionPassesThrough(t *testing.T) {
	handler := NewQueryHandler(testCoordinator(`["visualization"]`), logging.GetLogger("test"))

	rec := post(t, handler, `{"query": "just the payload", "role": "researcher"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		MainOutput *tabular.Result `json:"main_output"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	require.NotNil(t, body.MainOutput)
	assert.True(t, body.MainOutput.Success)
	assert.Equal(t, "just the payload", body.MainOutput.Query)
}
