package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WangNatalie/dzcibimpact/internal/cost"
	"github.com/WangNatalie/dzcibimpact/internal/model"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteBiocapacity(t *testing.T) {
	path := filepath.Join(t.TempDir(), "biocapacity_results_carolinian_zone.csv")

	rows := []model.BiocapacityRow{
		{Code: 193, Class: "Tilled", Category: "Cropland", AreaHa: 60, ConversionFactor: 2.51, BiocapacityGha: 150.6, PercentOfTotal: 54.056},
		{Code: 999, Class: "", AreaHa: 25},
	}
	require.NoError(t, WriteBiocapacity(path, rows))

	records := readCSV(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, biocapacityHeader, records[0])
	assert.Equal(t, []string{"Tilled", "193", "Cropland", "60", "2.51", "150.6", "54.056"}, records[1])
	// Rows without a reference match export an empty code cell.
	assert.Equal(t, "", records[2][1])
}

func TestWriteCarbon_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "carbon.csv")

	rows := []model.CarbonRow{{
		Code: 90, Class: "Forest", AreaHa: 50,
		AGC: 104.8, BGC: 26.2, SOC: 71.0, DeOC: 9.5,
		TotalCarbonTC: 100, SSC: 0.0252, SSCDensity: 0.000504, PercentOfTotal: 100,
	}}
	require.NoError(t, WriteCarbon(path, rows))

	records := readCSV(t, path)
	require.Len(t, records, 2)

	// Every numeric cell parses back to the exact value written.
	got := records[1]
	for i, want := range []float64{50, 104.8, 26.2, 71, 9.5, 100, 0.0252, 0.000504, 100} {
		v, err := strconv.ParseFloat(got[i+2], 64)
		require.NoError(t, err)
		assert.Equal(t, want, v, "column %s", carbonHeader[i+2])
	}
}

func TestWriteAesthetic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aesthetic.csv")

	rows := []model.AestheticRow{
		{Code: 150, Class: "Swamp", AreaHa: 1, Naturalness: 5, RarityScore: 5, AestheticScore: 5},
	}
	require.NoError(t, WriteAesthetic(path, rows))

	records := readCSV(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"Swamp", "150", "1", "5", "5", "5"}, records[1])
}

func TestWriteProjection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "discounted_ssc.csv")

	series := []cost.YearValue{
		{Year: 2020, Value: 5.3298},
		{Year: 2021, Value: 5.2253},
	}
	require.NoError(t, WriteProjection(path, series))

	records := readCSV(t, path)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"year", "discounted_ssc_millions"}, records[0])
	assert.Equal(t, []string{"2020", "5.3298"}, records[1])
	assert.Equal(t, []string{"2021", "5.2253"}, records[2])
}

func TestWrite_BadPath(t *testing.T) {
	err := WriteWater(filepath.Join(t.TempDir(), "missing", "water.csv"), nil)
	assert.ErrorContains(t, err, "export: create")
}
