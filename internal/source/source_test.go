package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeCSV(t, "lookup.csv",
		"SOLRIS_Code, Solris_Class ,description\n90,Forest,Deciduous forest\n193,Tilled,\n")

	table, err := ReadCSV(path)
	require.NoError(t, err)
	require.Len(t, table.Records, 2)

	// Header matching is case-insensitive and trims whitespace.
	require.NoError(t, table.Require("solris_code", "SOLRIS_CLASS", "Description"))
	assert.Equal(t, "90", table.Get(table.Records[0], "solris_code"))
	assert.Equal(t, "Forest", table.Get(table.Records[0], "solris_class"))
	assert.Equal(t, "", table.Get(table.Records[1], "description"))
}

func TestReadCSV_RaggedRecords(t *testing.T) {
	path := writeCSV(t, "ragged.csv", "a,b,c\n1,2\n")

	table, err := ReadCSV(path)
	require.NoError(t, err)
	// A cell past the record's end reads as null.
	assert.Equal(t, "", table.Get(table.Records[0], "c"))
}

func TestReadCSV_Missing(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestReadCSV_Empty(t *testing.T) {
	path := writeCSV(t, "empty.csv", "")
	_, err := ReadCSV(path)
	assert.ErrorContains(t, err, "is empty")
}

func TestRequire_ReportsAllMissing(t *testing.T) {
	path := writeCSV(t, "partial.csv", "a,b\n1,2\n")
	table, err := ReadCSV(path)
	require.NoError(t, err)

	err = table.Require("a", "c", "d")
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, []string{"c", "d"}, schemaErr.Missing)
	assert.Contains(t, schemaErr.Error(), "missing required columns: c, d")
}
