package tabular

import "strings"

// columnKeys maps raw dataset column headers to stable machine-friendly
// output keys.
var columnKeys = map[string]string{
	"YEAR":     "year",
	"STATE":    "state",
	"DISTRICT": "district",
	"Rainfall (mm)": "rainfall_mm",
	"Ground Water Extraction for all uses (ha.m)":                  "gw_extraction_ham",
	"Stage of Ground Water Extraction (%)":                         "extraction_stage_percent",
	"Annual Extractable Ground water Resource (ham)":               "extractable_resource_ham",
	"Annual Ground water Recharge (ham)":                           "annual_recharge_ham",
	"Net Annual Ground Water Availability for Future Use (ham)":    "future_availability_ham",
	"Ground Water Extraction for all uses (ha.m) - Domestic.3":     "domestic_extraction_ham",
	"Ground Water Extraction for all uses (ha.m) - Industrial.3":   "industrial_extraction_ham",
	"Ground Water Extraction for all uses (ha.m) - Irrigation.3":   "irrigation_extraction_ham",
	"Environmental Flows (ham)":                                    "environmental_flows_ham",
	"Total Geographical Area (ha)":                                 "total_geographical_area_ha",
	"Ground Water Recharge (ham)":                                  "gw_recharge_ham",
}

// ColumnKey returns the output key for a raw column header. Columns
// absent from the lookup table get a derived key: lowercase, spaces and
// dashes to underscores, parentheses and dots removed. The mapping is
// total and deterministic.
func ColumnKey(column string) string {
	if key, ok := columnKeys[column]; ok {
		return key
	}
	clean := strings.ToLower(column)
	clean = strings.ReplaceAll(clean, " ", "_")
	clean = strings.ReplaceAll(clean, "(", "")
	clean = strings.ReplaceAll(clean, ")", "")
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, "-", "_")
	return strings.Trim(clean, "_")
}
