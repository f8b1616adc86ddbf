// Package tabular implements the deterministic filter, projection, sort
// and aggregation pipeline that turns the groundwater table into a
// chart-ready payload. It performs no external calls.
package tabular

// Well-known dataset columns.
const (
	ColState      = "STATE"
	ColDistrict   = "DISTRICT"
	ColYear       = "YEAR"
	ColExtraction = "Ground Water Extraction for all uses (ha.m)"
	ColStage      = "Stage of Ground Water Extraction (%)"
)

// StageCategory is a categorical band over the extraction-stage measure.
type StageCategory string

const (
	StageOverExploited StageCategory = "over-exploited"
	StageCritical      StageCategory = "critical"
	StageSemiCritical  StageCategory = "semi-critical"
	StageSafe          StageCategory = "safe"
	StageNone          StageCategory = "none"
)

// StageFilter restricts rows by extraction-stage percentage. Category
// membership wins over Min; Max applies whenever set.
type StageFilter struct {
	Category StageCategory `json:"type"`
	Min      *float64      `json:"min"`
	Max      *float64      `json:"max"`
}

// Spec is the structured filter specification produced by the parameter
// extractor.
type Spec struct {
	States    []string    `json:"states"`
	Districts []string    `json:"districts"`
	Years     []int       `json:"years"`
	Stage     StageFilter `json:"stage_filter"`
	Columns   []string    `json:"columns_to_show"`
	SortBy    string      `json:"sort_by"`
	SortOrder string      `json:"sort_order"`
	Limit     int         `json:"limit"`
}

// DefaultSpec is the safe fallback used when parameter extraction fails:
// no filters, identifier columns, descending order, 20 rows.
func DefaultSpec() Spec {
	return Spec{
		States:    []string{},
		Districts: []string{},
		Years:     []int{},
		Stage:     StageFilter{Category: StageNone},
		Columns:   []string{ColState, ColDistrict, ColYear},
		SortOrder: "desc",
		Limit:     20,
	}
}

// defaultProjection is the fallback column set when none of the requested
// columns exist in the table.
var defaultProjection = []string{ColState, ColDistrict, ColYear, ColExtraction, ColStage}

// Result is the structured payload returned by the engine.
type Result struct {
	Success  bool                     `json:"success"`
	Query    string                   `json:"query"`
	Message  string                   `json:"message,omitempty"`
	Error    string                   `json:"error,omitempty"`
	Data     []map[string]interface{} `json:"data"`
	Metadata *Metadata                `json:"metadata,omitempty"`
}

// Metadata describes the rows and filters behind a Result.
type Metadata struct {
	TotalRecords   int            `json:"total_records"`
	Columns        []string       `json:"columns,omitempty"`
	FiltersApplied FiltersApplied `json:"filters_applied"`
}

// FiltersApplied echoes the filters that produced a Result.
type FiltersApplied struct {
	States      []string      `json:"states"`
	Districts   []string      `json:"districts"`
	Years       []int         `json:"years"`
	StageFilter StageCategory `json:"stage_filter"`
}

func (s Spec) filtersApplied() FiltersApplied {
	fa := FiltersApplied{
		States:      s.States,
		Districts:   s.Districts,
		Years:       s.Years,
		StageFilter: s.Stage.Category,
	}
	if fa.States == nil {
		fa.States = []string{}
	}
	if fa.Districts == nil {
		fa.Districts = []string{}
	}
	if fa.Years == nil {
		fa.Years = []int{}
	}
	if fa.StageFilter == "" {
		fa.StageFilter = StageNone
	}
	return fa
}
