package tabular

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ArYaNDaNy/ingres-proto-model/internal/dataset"
)

// Apply runs the full pipeline over the table: filter, project, round,
// sort, limit, rename. A zero-row outcome is a defined empty-success
// result, not an error.
func Apply(t *dataset.Table, spec Spec, query string) Result {
	rows := filterRows(t, spec)

	if len(rows) == 0 {
		return Result{
			Success: false,
			Query:   query,
			Message: "No data found matching the query criteria",
			Data:    []map[string]interface{}{},
			Metadata: &Metadata{
				TotalRecords:   0,
				FiltersApplied: spec.filtersApplied(),
			},
		}
	}

	columns := projectColumns(t, spec.Columns)
	records := buildRecords(rows, columns)
	sortRecords(records, spec, columns)

	if spec.Limit > 0 && len(records) > spec.Limit {
		records = records[:spec.Limit]
	}

	outputKeys := make([]string, len(columns))
	for i, col := range columns {
		outputKeys[i] = ColumnKey(col)
	}

	data := make([]map[string]interface{}, len(records))
	for i, rec := range records {
		renamed := make(map[string]interface{}, len(rec))
		for j, col := range columns {
			if v, ok := rec[col]; ok {
				renamed[outputKeys[j]] = v
			}
		}
		data[i] = renamed
	}

	return Result{
		Success: true,
		Query:   query,
		Data:    data,
		Metadata: &Metadata{
			TotalRecords:   len(data),
			Columns:        outputKeys,
			FiltersApplied: spec.filtersApplied(),
		},
	}
}

// filterRows keeps rows matching every active dimension. Empty sets are
// no-op filters.
func filterRows(t *dataset.Table, spec Spec) []map[string]interface{} {
	states := upperSet(spec.States)
	districts := upperSet(spec.Districts)
	years := make(map[int]bool, len(spec.Years))
	for _, y := range spec.Years {
		years[y] = true
	}

	var rows []map[string]interface{}
	for i := 0; i < t.NumRows(); i++ {
		row := t.Row(i)

		if len(states) > 0 && !states[upperString(row[ColState])] {
			continue
		}
		if len(districts) > 0 && !districts[upperString(row[ColDistrict])] {
			continue
		}
		if len(years) > 0 {
			y, ok := intValue(row[ColYear])
			if !ok || !years[y] {
				continue
			}
		}
		if !matchesStage(row, spec.Stage) {
			continue
		}

		rows = append(rows, row)
	}
	return rows
}

// matchesStage checks the categorical band first; explicit Min applies
// only for category "none", explicit Max applies whenever set. Rows
// without a numeric stage value are excluded once any stage constraint is
// active.
func matchesStage(row map[string]interface{}, sf StageFilter) bool {
	category := sf.Category
	if category == "" {
		category = StageNone
	}
	if category == StageNone && sf.Min == nil && sf.Max == nil {
		return true
	}

	v, ok := floatValue(row[ColStage])
	if !ok {
		return false
	}

	switch category {
	case StageOverExploited:
		if v <= 100 {
			return false
		}
	case StageCritical:
		if v < 90 || v > 100 {
			return false
		}
	case StageSemiCritical:
		if v < 70 || v >= 90 {
			return false
		}
	case StageSafe:
		if v >= 70 {
			return false
		}
	default:
		if sf.Min != nil && v < *sf.Min {
			return false
		}
	}

	if sf.Max != nil && v > *sf.Max {
		return false
	}
	return true
}

// projectColumns keeps requested columns that exist; when none exist it
// falls back to the default projection intersected with the table.
func projectColumns(t *dataset.Table, requested []string) []string {
	var valid []string
	for _, col := range requested {
		if t.HasColumn(col) {
			valid = append(valid, col)
		}
	}
	if len(valid) > 0 {
		return valid
	}
	for _, col := range defaultProjection {
		if t.HasColumn(col) {
			valid = append(valid, col)
		}
	}
	return valid
}

// buildRecords copies the projected columns out of each row, rounding
// floats to two decimals. The year column keeps full precision.
func buildRecords(rows []map[string]interface{}, columns []string) []map[string]interface{} {
	records := make([]map[string]interface{}, len(rows))
	for i, row := range rows {
		rec := make(map[string]interface{}, len(columns))
		for _, col := range columns {
			v, ok := row[col]
			if !ok {
				continue
			}
			if f, isFloat := v.(float64); isFloat && col != ColYear {
				v = math.Round(f*100) / 100
			}
			rec[col] = v
		}
		records[i] = rec
	}
	return records
}

// sortRecords sorts in place when SortBy names a projected column;
// otherwise input order is preserved. Default order is descending.
func sortRecords(records []map[string]interface{}, spec Spec, columns []string) {
	if spec.SortBy == "" {
		return
	}
	found := false
	for _, col := range columns {
		if col == spec.SortBy {
			found = true
			break
		}
	}
	if !found {
		return
	}

	ascending := spec.SortOrder == "asc"
	sort.SliceStable(records, func(i, j int) bool {
		less := lessValue(records[i][spec.SortBy], records[j][spec.SortBy])
		if ascending {
			return less
		}
		return lessValue(records[j][spec.SortBy], records[i][spec.SortBy])
	})
}

// lessValue orders numbers numerically and everything else lexically.
func lessValue(a, b interface{}) bool {
	fa, aok := floatValue(a)
	fb, bok := floatValue(b)
	if aok && bok {
		return fa < fb
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}

func upperSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToUpper(v)] = true
	}
	return set
}

func upperString(v interface{}) string {
	if v == nil {
		return ""
	}
	return strings.ToUpper(fmt.Sprint(v))
}

func intValue(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	}
	return 0, false
}

func floatValue(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
