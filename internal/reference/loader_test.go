package reference

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WangNatalie/dzcibimpact/internal/source"
)

const lookupHeader = "solris_code,solris_class,biocapacity_category,biocapacity_conversion_factor,lulc_category,agc_tc_ha,bgc_tc_ha,soc_tc_ha,deoc_tc_ha,naturalness,description\n"

func writeLookupCSV(t *testing.T, body string) *source.Table {
	t.Helper()
	path := filepath.Join(t.TempDir(), "solris_lookup.csv")
	require.NoError(t, os.WriteFile(path, []byte(lookupHeader+body), 0o644))
	table, err := source.ReadCSV(path)
	require.NoError(t, err)
	return table
}

func TestLoad(t *testing.T) {
	table := writeLookupCSV(t,
		"90,Forest,Forest Land,1.28,Forest,104.8,26.2,71.0,9.5,5,Deciduous forest\n"+
			"193,Tilled,Cropland,2.51,Agriculture,2.3,0.5,58.0,0,2,Annual row crops\n")

	res, err := Load(table, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Read)
	assert.Equal(t, 0, res.Dropped)
	require.Len(t, res.Entries, 2)

	e := res.Entries[0]
	assert.Equal(t, 90, e.Code)
	assert.Equal(t, "Forest", e.Class)
	assert.Equal(t, "Forest Land", e.BiocapacityCategory)
	assert.InDelta(t, 1.28, e.ConversionFactor, 1e-9)
	assert.InDelta(t, 104.8, e.AGC, 1e-9)
	assert.InDelta(t, 5.0, e.Naturalness, 1e-9)
	assert.Equal(t, "Deciduous forest", e.Description)
}

func TestLoad_DropsNullRows(t *testing.T) {
	table := writeLookupCSV(t,
		"90,Forest,Forest Land,1.28,Forest,104.8,26.2,71.0,9.5,5,Deciduous forest\n"+
			"131,Transportation,,,Built,,,,,1,Roads\n"+
			"150,Swamp,Wetlands,0.47,Wetland,77.5,19.4,143.0,12.1,5,\n")

	res, err := Load(table, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Read)
	// Both the blank-coefficient row and the blank-description row drop.
	assert.Equal(t, 2, res.Dropped)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, 90, res.Entries[0].Code)
}

func TestLoad_Overrides(t *testing.T) {
	table := writeLookupCSV(t,
		"90,Forest,Forest Land,1.28,Forest,104.8,26.2,71.0,9.5,5,Deciduous forest\n")

	res, err := Load(table, Overrides{
		90: {
			"biocapacity_conversion_factor": 1.5,
			"soc_tc_ha":                     80,
			"solris_class":                  7, // not a coefficient: ignored
		},
		999: {"agc_tc_ha": 1}, // no matching record: inert
	})
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)

	e := res.Entries[0]
	assert.InDelta(t, 1.5, e.ConversionFactor, 1e-9)
	assert.InDelta(t, 80.0, e.SOC, 1e-9)
	assert.Equal(t, "Forest", e.Class)
	assert.InDelta(t, 104.8, e.AGC, 1e-9)
}

func TestLoad_OverrideFillsNullCellBeforeFilter(t *testing.T) {
	table := writeLookupCSV(t,
		"131,Transportation,Built-up,0.1,Built,,0.1,0.1,0.1,1,Roads\n")

	// Patching the null cell makes the row loadable.
	res, err := Load(table, Overrides{131: {"agc_tc_ha": 0}})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Dropped)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, 0.0, res.Entries[0].AGC)
}

func TestLoad_MissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("solris_code,solris_class\n90,Forest\n"), 0o644))
	table, err := source.ReadCSV(path)
	require.NoError(t, err)

	_, err = Load(table, nil)
	var schemaErr *source.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Contains(t, schemaErr.Missing, "biocapacity_category")
	assert.Contains(t, schemaErr.Missing, "naturalness")
}

func TestLoad_BadNumeric(t *testing.T) {
	table := writeLookupCSV(t,
		"90,Forest,Forest Land,abc,Forest,104.8,26.2,71.0,9.5,5,Deciduous forest\n")

	_, err := Load(table, nil)
	assert.ErrorContains(t, err, "bad biocapacity_conversion_factor")
}
