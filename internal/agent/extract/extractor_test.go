package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ArYaNDaNy/ingres-proto-model/internal/dataset"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/llm"
	"github.com/ArYaNDaNy/ingres-proto-model/internal/tabular"
)

func testTable() *dataset.Table {
	return dataset.New(
		[]string{tabular.ColState, tabular.ColDistrict, tabular.ColYear, tabular.ColStage},
		nil,
	)
}

func TestExtract_ParsesAndNormalizes(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.Script("Extract filtering parameters", `{
		"states": ["punjab", "Haryana"],
		"districts": ["amritsar"],
		"years": [2023],
		"stage_filter": {"type": "", "min": null, "max": null},
		"columns_to_show": ["STATE", "DISTRICT", "YEAR"],
		"sort_by": "YEAR",
		"sort_order": "",
		"limit": 10
	}`)

	spec := New(mock).Extract(context.Background(), testTable(), "punjab and haryana in 2023")

	assert.Equal(t, []string{"PUNJAB", "HARYANA"}, spec.States)
	assert.Equal(t, []string{"AMRITSAR"}, spec.Districts)
	assert.Equal(t, []int{2023}, spec.Years)
	assert.Equal(t, tabular.StageNone, spec.Stage.Category)
	assert.Equal(t, "desc", spec.SortOrder)
	assert.Equal(t, 10, spec.Limit)
}

func TestExtract_FencedResponse(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.Script("Extract filtering parameters",
		"```json\n{\"states\": [\"PUNJAB\"], \"stage_filter\": {\"type\": \"critical\"}}\n```")

	spec := New(mock).Extract(context.Background(), testTable(), "critical blocks in punjab")

	assert.Equal(t, []string{"PUNJAB"}, spec.States)
	assert.Equal(t, tabular.StageCritical, spec.Stage.Category)
}

func TestExtract_CallFailureYieldsDefault(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.FailAlways(errors.New("api unreachable"))

	spec := New(mock).Extract(context.Background(), testTable(), "anything")

	assert.Equal(t, tabular.DefaultSpec(), spec)
}

func TestExtract_MalformedResponseYieldsDefault(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.SetFallback("I cannot produce JSON today, sorry.")

	spec := New(mock).Extract(context.Background(), testTable(), "anything")

	assert.Equal(t, tabular.DefaultSpec(), spec)
}

func TestExtract_PromptCarriesLiveColumns(t *testing.T) {
	mock := llm.NewMockProvider()
	mock.SetFallback(`{"states": []}`)

	New(mock).Extract(context.Background(), testTable(), "show everything")

	requests := mock.Requests()
	require.Len(t, requests, 1)
	assert.Contains(t, requests[0], tabular.ColStage)
	assert.Contains(t, requests[0], `"show everything"`)
}
