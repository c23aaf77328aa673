// Package reference loads and validates the SOLRIS lookup table: schema
// validation, per-code overrides, and the silent null-row filter. Replacement
// of the persisted table is the store's job.
package reference

import (
	"sort"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/WangNatalie/dzcibimpact/internal/model"
	"github.com/WangNatalie/dzcibimpact/internal/source"
)

// RequiredColumns is the fixed lookup-source schema. A source missing any of
// them fails with a SchemaError before anything is mutated.
var RequiredColumns = []string{
	"solris_code",
	"solris_class",
	"biocapacity_category",
	"biocapacity_conversion_factor",
	"lulc_category",
	"agc_tc_ha",
	"bgc_tc_ha",
	"soc_tc_ha",
	"deoc_tc_ha",
	"naturalness",
	"description",
}

// numericColumns are the override-patchable coefficient columns.
var numericColumns = map[string]bool{
	"biocapacity_conversion_factor": true,
	"agc_tc_ha":                     true,
	"bgc_tc_ha":                     true,
	"soc_tc_ha":                     true,
	"deoc_tc_ha":                    true,
	"naturalness":                   true,
}

// Overrides patches individual coefficient cells by land-cover code before
// the null filter runs, so a single factor can be adjusted without
// re-authoring the whole source.
type Overrides map[int]map[string]float64

// Result is the outcome of a load: the entries to persist plus data-quality
// counts. Dropped rows are a silent filter, reported only as a count.
type Result struct {
	Entries []model.ReferenceEntry
	Read    int
	Dropped int
}

// Load validates the lookup table schema, applies overrides, drops rows with
// any null cell, and parses the survivors.
func Load(table *source.Table, overrides Overrides) (*Result, error) {
	if err := table.Require(RequiredColumns...); err != nil {
		return nil, err
	}

	log := zap.L().With(zap.String("component", "reference"))

	res := &Result{Read: len(table.Records)}
	for _, record := range table.Records {
		cells := make(map[string]string, len(RequiredColumns))
		for _, col := range RequiredColumns {
			cells[col] = table.Get(record, col)
		}

		applyOverrides(cells, overrides, log)

		if hasNull(cells) {
			res.Dropped++
			continue
		}

		entry, err := parseEntry(cells)
		if err != nil {
			return nil, err
		}
		res.Entries = append(res.Entries, entry)
	}

	log.Info("lookup table loaded",
		zap.Int("read", res.Read),
		zap.Int("loaded", len(res.Entries)),
		zap.Int("dropped", res.Dropped),
	)
	return res, nil
}

// applyOverrides patches coefficient cells in place when the record's code
// matches an override entry. Unknown or non-numeric column names are skipped
// with a warning; codes without a matching record are silently inert.
func applyOverrides(cells map[string]string, overrides Overrides, log *zap.Logger) {
	if len(overrides) == 0 {
		return
	}
	code, err := strconv.Atoi(cells["solris_code"])
	if err != nil {
		return
	}
	fields, ok := overrides[code]
	if !ok {
		return
	}

	// Deterministic application order for logging.
	cols := make([]string, 0, len(fields))
	for col := range fields {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	for _, col := range cols {
		if !numericColumns[col] {
			log.Warn("ignoring override for non-coefficient column",
				zap.Int("solris_code", code), zap.String("column", col))
			continue
		}
		cells[col] = strconv.FormatFloat(fields[col], 'f', -1, 64)
		log.Info("applied override",
			zap.Int("solris_code", code), zap.String("column", col), zap.Float64("value", fields[col]))
	}
}

func hasNull(cells map[string]string) bool {
	for _, col := range RequiredColumns {
		if cells[col] == "" {
			return true
		}
	}
	return false
}

func parseEntry(cells map[string]string) (model.ReferenceEntry, error) {
	var entry model.ReferenceEntry
	var err error

	if entry.Code, err = strconv.Atoi(cells["solris_code"]); err != nil {
		return entry, eris.Wrapf(err, "reference: bad solris_code %q", cells["solris_code"])
	}
	entry.Class = cells["solris_class"]
	entry.BiocapacityCategory = cells["biocapacity_category"]
	entry.LULCCategory = cells["lulc_category"]
	entry.Description = cells["description"]

	numeric := []struct {
		col string
		dst *float64
	}{
		{"biocapacity_conversion_factor", &entry.ConversionFactor},
		{"agc_tc_ha", &entry.AGC},
		{"bgc_tc_ha", &entry.BGC},
		{"soc_tc_ha", &entry.SOC},
		{"deoc_tc_ha", &entry.DeOC},
		{"naturalness", &entry.Naturalness},
	}
	for _, n := range numeric {
		if *n.dst, err = strconv.ParseFloat(cells[n.col], 64); err != nil {
			return entry, eris.Wrapf(err, "reference: code %d: bad %s %q", entry.Code, n.col, cells[n.col])
		}
	}
	return entry, nil
}
