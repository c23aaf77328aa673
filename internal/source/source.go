// Package source reads the tabular inputs of the pipeline: the SOLRIS lookup
// CSV, the polygon area summary XLSX, the wetland-value CSV, and the annual
// social-cost-of-carbon schedule CSV. Each reader returns typed rows with a
// known schema; anything beyond header mapping and cell parsing is out of
// scope here.
package source

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// SchemaError reports required columns absent from an input source. It is
// fatal: callers abort before any store mutation.
type SchemaError struct {
	Source  string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required columns: %s", e.Source, strings.Join(e.Missing, ", "))
}

// Table is a parsed tabular source: a case-insensitive column index over the
// header plus the raw string records. Empty cells are nulls.
type Table struct {
	Name    string
	columns map[string]int
	Records [][]string
}

// mapColumns builds a case-insensitive column name to index map.
func mapColumns(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, col := range header {
		m[strings.ToLower(strings.TrimSpace(col))] = i
	}
	return m
}

// Require returns a SchemaError naming every listed column absent from the
// header, or nil when all are present.
func (t *Table) Require(columns ...string) error {
	var missing []string
	for _, col := range columns {
		if _, ok := t.columns[strings.ToLower(col)]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Source: t.Name, Missing: missing}
	}
	return nil
}

// Get returns a cell by column name, empty string when the column or cell is
// absent from the record.
func (t *Table) Get(record []string, column string) string {
	idx, ok := t.columns[strings.ToLower(column)]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// ReadCSV parses a CSV file into a Table. The first row is the header.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "source: open %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	all, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrapf(err, "source: read %s", path)
	}
	if len(all) == 0 {
		return nil, eris.Errorf("source: %s is empty", path)
	}

	return &Table{
		Name:    path,
		columns: mapColumns(all[0]),
		Records: all[1:],
	}, nil
}
