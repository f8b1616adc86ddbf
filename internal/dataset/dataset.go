// Package dataset loads the groundwater assessment table into memory.
//
// The table is loaded once at process start and is never mutated
// afterwards; all downstream filtering produces new derived views.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Table is an immutable in-memory groundwater table.
type Table struct {
	columns []string
	rows    []map[string]interface{}
}

// Load reads a CSV file into a Table. The first record is the header.
// Cell values are typed on load: integers, then floats, then strings.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %q: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset %q is empty", path)
	}

	columns := records[0]
	rows := make([]map[string]interface{}, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			if i >= len(record) {
				break
			}
			row[col] = typedValue(record[i])
		}
		rows = append(rows, row)
	}

	return New(columns, rows), nil
}

// New builds a Table from pre-parsed columns and rows. Used by tests and
// by Load.
func New(columns []string, rows []map[string]interface{}) *Table {
	return &Table{columns: columns, rows: rows}
}

// Columns returns a copy of the ordered column names.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.columns {
		if c == name {
			return true
		}
	}
	return false
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// Row returns the i-th row. Callers must treat the returned map as
// read-only.
func (t *Table) Row(i int) map[string]interface{} {
	return t.rows[i]
}

// typedValue parses a CSV cell into int, float64 or string.
func typedValue(cell string) interface{} {
	if cell == "" {
		return ""
	}
	if n, err := strconv.Atoi(cell); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f
	}
	return cell
}
