package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "groundwater.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_TypesCellsOnLoad(t *testing.T) {
	path := writeCSV(t, "STATE,YEAR,Rainfall (mm),NOTE\nPUNJAB,2023,650.5,dry\n")

	table, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"STATE", "YEAR", "Rainfall (mm)", "NOTE"}, table.Columns())
	require.Equal(t, 1, table.NumRows())

	row := table.Row(0)
	assert.Equal(t, "PUNJAB", row["STATE"])
	assert.Equal(t, 2023, row["YEAR"])
	assert.Equal(t, 650.5, row["Rainfall (mm)"])
	assert.Equal(t, "dry", row["NOTE"])
}

func TestLoad_EmptyCellsStayEmptyStrings(t *testing.T) {
	path := writeCSV(t, "STATE,YEAR\nPUNJAB,\n")

	table, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "", table.Row(0)["YEAR"])
}

func TestLoad_ShortRecordsTolerated(t *testing.T) {
	path := writeCSV(t, "STATE,DISTRICT,YEAR\nPUNJAB,AMRITSAR,2023\nHARYANA\n")

	table, err := Load(path)

	require.NoError(t, err)
	require.Equal(t, 2, table.NumRows())
	assert.Equal(t, "HARYANA", table.Row(1)["STATE"])
	_, ok := table.Row(1)["DISTRICT"]
	assert.False(t, ok)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))

	assert.Error(t, err)
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeCSV(t, "")

	_, err := Load(path)

	assert.Error(t, err)
}

func TestTable_ColumnsReturnsCopy(t *testing.T) {
	table := New([]string{"STATE"}, nil)

	cols := table.Columns()
	cols[0] = "MUTATED"

	assert.Equal(t, []string{"STATE"}, table.Columns())
}

func TestTable_HasColumn(t *testing.T) {
	table := New([]string{"STATE", "YEAR"}, nil)

	assert.True(t, table.HasColumn("YEAR"))
	assert.False(t, table.HasColumn("year"))
}
