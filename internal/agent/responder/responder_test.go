package responder

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArYaNDaNy/ingres-proto-model/internal/dataset"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/llm"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/tabular"
)

func testTable() *dataset.Table {
	columns := []string{tabular.ColState, tabular.ColDistrict, tabular.ColYear, tabular.ColStage}
	rows := []map[string]interface{}{
		{tabular.ColState: "PUNJAB", tabular.ColDistrict: "AMRITSAR", tabular.ColYear: 2023, tabular.ColStage: 165.3},
		{tabular.ColState: "MAHARASHTRA", tabular.ColDistrict: "PUNE", tabular.ColYear: 2023, tabular.ColStage: 55.0},
	}
	return dataset.New(columns, rows)
}

func emptySpecJSON() string {
	return `{"states": [], "districts": [], "years": [], "stage_filter": {"type": "none"}, "columns_to_show": [], "sort_by": "", "sort_order": "desc", "limit": 20}`
}

func TestContext_AnalysisTextPlaceholder(t *testing.T) {
	rc := NewContext()

	assert.Equal(t, NoAnalysisPlaceholder, rc.AnalysisText())

	rc.Set(KeyAnalysis, Result{Text: "Extraction is rising."})
	assert.Equal(t, "Extraction is rising.", rc.AnalysisText())
}

func TestResult_MarshalJSON(t *testing.T) {
	text, err := json.Marshal(Result{Text: "plain answer"})
	require.NoError(t, err)
	assert.Equal(t, `"plain answer"`, string(text))

	table, err := json.Marshal(Result{Table: &tabular.Result{Success: true, Data: []map[string]interface{}{}}})
	require.NoError(t, err)
	assert.Contains(t, string(table), `"success":true`)
}

func TestPolicy_UsesAnalysisFromContext(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.Script("policy advisor for groundwater management", "**EXECUTIVE SUMMARY** cut extraction now")

	rc := NewContext()
	rc.Set(KeyAnalysis, Result{Text: "Punjab extraction exceeds recharge by 65%."})

	result := NewPolicy(mock).Respond(context.Background(), Request{Query: "what should we do", Role: "government"}, rc)

	assert.Contains(t, result.Text, "EXECUTIVE SUMMARY")
	requests := mock.Requests()
	require.Len(t, requests, 1)
	assert.Contains(t, requests[0], "Punjab extraction exceeds recharge by 65%.")
}

func TestPolicy_MissingAnalysisGetsPlaceholder(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.SetFallback("brief")

	NewPolicy(mock).Respond(context.Background(), Request{Query: "advise", Role: "government"}, NewContext())

	requests := mock.Requests()
	require.Len(t, requests, 1)
	assert.Contains(t, requests[0], NoAnalysisPlaceholder)
}

func TestPolicy_CallFailureIsContained(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.FailAlways(errors.New("rate limited"))

	result := NewPolicy(mock).Respond(context.Background(), Request{Query: "advise", Role: "government"}, NewContext())

	assert.Contains(t, result.Text, "Error generating policy recommendations:")
	assert.Contains(t, result.Text, "rate limited")
}

func TestCitizenSummary_CallFailureIsContained(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.FailAlways(errors.New("rate limited"))

	result := NewCitizenSummary(mock).Respond(context.Background(), Request{Query: "explain", Role: "citizen"}, NewContext())

	assert.Contains(t, result.Text, "Error generating citizen summary:")
}

func TestAnalysis_HappyPathEmbedsEvidence(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.Script("query optimizer", "Compare 'Stage of Ground Water Extraction (%)' across STATE values")
	mock.Script("Extract filtering parameters", emptySpecJSON())
	mock.Script("expert data analyst", "**Data Overview**: two rows analyzed")

	result := NewAnalysis(mock, testTable()).Respond(context.Background(),
		Request{Query: "compare stages", Role: "researcher"}, NewContext())

	assert.Equal(t, "**Data Overview**: two rows analyzed", result.Text)

	requests := mock.Requests()
	require.Len(t, requests, 3)
	analysisPrompt := requests[2]
	assert.Contains(t, analysisPrompt, "Rows matched: 2")
	assert.Contains(t, analysisPrompt, `"state":"PUNJAB"`)
}

func TestAnalysis_RetriesThenSucceeds(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.Script("expert data analyst", "recovered analysis")
	// First three calls fail: the optimizer falls back to the raw query,
	// the extractor falls back to the default spec, and the first
	// analysis attempt burns one retry.
	mock.FailTimes(3, errors.New("transient"))

	result := NewAnalysis(mock, testTable()).Respond(context.Background(),
		Request{Query: "compare stages", Role: "researcher"}, NewContext())

	assert.Equal(t, "recovered analysis", result.Text)
	assert.Len(t, mock.Requests(), 4)
}

func TestAnalysis_RetryExhaustionIsContained(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.FailAlways(errors.New("api down"))

	result := NewAnalysis(mock, testTable()).Respond(context.Background(),
		Request{Query: "compare stages", Role: "researcher"}, NewContext())

	assert.Contains(t, result.Text, "Error generating analysis:")
	assert.Contains(t, result.Text, "api down")
	// optimizer + extractor + three analysis attempts
	assert.Len(t, mock.Requests(), 5)
}

func TestAnalysis_NoMatchingRowsStillAnalyzes(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.Script("query optimizer", "stage data for GOA")
	mock.Script("Extract filtering parameters",
		`{"states": ["GOA"], "stage_filter": {"type": "none"}, "sort_order": "desc", "limit": 20}`)
	mock.Script("expert data analyst", "dataset-level analysis")

	result := NewAnalysis(mock, testTable()).Respond(context.Background(),
		Request{Query: "goa stages", Role: "researcher"}, NewContext())

	assert.Equal(t, "dataset-level analysis", result.Text)
	requests := mock.Requests()
	require.Len(t, requests, 3)
	assert.Contains(t, requests[2], "No rows matched the extracted filters")
}

func TestVisualization_BuildsChartPayload(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.Script("Extract filtering parameters", emptySpecJSON())

	result := NewVisualization(mock, testTable()).Respond(context.Background(),
		Request{Query: "bar chart of stages", Role: "citizen"}, NewContext())

	require.NotNil(t, result.Table)
	assert.True(t, result.Table.Success)
	assert.Equal(t, 2, result.Table.Metadata.TotalRecords)
	assert.Empty(t, result.Text)
}

func TestVisualization_ExtractionFailureFallsBackToDefaults(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.FailAlways(errors.New("api down"))

	result := NewVisualization(mock, testTable()).Respond(context.Background(),
		Request{Query: "chart", Role: "citizen"}, NewContext())

	require.NotNil(t, result.Table)
	assert.True(t, result.Table.Success)
	assert.Equal(t, 2, result.Table.Metadata.TotalRecords)
}

func TestVisualization_PanicBecomesStructuredError(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.SetFallback(emptySpecJSON())

	result := NewVisualization(mock, nil).Respond(context.Background(),
		Request{Query: "chart", Role: "citizen"}, NewContext())

	require.NotNil(t, result.Table)
	assert.False(t, result.Table.Success)
	assert.NotEmpty(t, result.Table.Error)
	assert.Empty(t, result.Table.Data)
}

func TestResponderNamesAndDependencies(t *testing.T) {
	mock := llm.NewMockProvider()
	table := testTable()

	assert.Equal(t, KeyAnalysis, NewAnalysis(mock, table).Name())
	assert.Equal(t, KeyPolicy, NewPolicy(mock).Name())
	assert.Equal(t, KeyCitizenSummary, NewCitizenSummary(mock).Name())
	assert.Equal(t, KeyVisualization, NewVisualization(mock, table).Name())

	assert.Nil(t, NewAnalysis(mock, table).Requires())
	assert.Equal(t, []Key{KeyAnalysis}, NewPolicy(mock).Requires())
	assert.Equal(t, []Key{KeyAnalysis}, NewCitizenSummary(mock).Requires())
	assert.Nil(t, NewVisualization(mock, table).Requires())
}

func TestIsValidKeySet(t *testing.T) {
	for _, k := range ValidKeys() {
		assert.True(t, IsValid(k))
	}
	assert.False(t, IsValid(Key("oracle")))
	assert.False(t, IsValid(Key("")))
	assert.True(t, strings.Contains(string(KeyCitizenSummary), "-"))
}
