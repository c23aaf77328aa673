package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chTempDir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/carolinian_zone", cfg.Store.DatabaseURL)
	assert.Equal(t, int32(4), cfg.Store.MaxConns)
	assert.Equal(t, int32(1), cfg.Store.MinConns)
	assert.Equal(t, "solris_lookup.csv", cfg.Reference.CSVPath)
	assert.Equal(t, "carolinian_polygon_summary.xlsx", cfg.Sources.AreaXLSX)
	assert.Equal(t, "water_filtration_lookup.csv", cfg.Sources.WaterCSV)
	assert.Equal(t, "annual-scc.csv", cfg.Sources.SCCCSV)
	assert.Equal(t, "carolinian_zone", cfg.Report.StudyArea)
	assert.Equal(t, 2020, cfg.Projection.StartYear)
	assert.Equal(t, 2080, cfg.Projection.EndYear)
	assert.InDelta(t, 0.02, cfg.Projection.DiscountRate, 0.001)
	assert.Equal(t, ".", cfg.Export.Dir)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chTempDir(t)

	yaml := `
store:
  database_url: postgres://db.internal:5432/solris
reference:
  csv_path: /data/lookup.csv
  overrides:
    "90":
      soc_tc_ha: 80
projection:
  discount_rate: 0.03
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://db.internal:5432/solris", cfg.Store.DatabaseURL)
	assert.Equal(t, "/data/lookup.csv", cfg.Reference.CSVPath)
	assert.InDelta(t, 0.03, cfg.Projection.DiscountRate, 0.001)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Defaults still apply for unset values
	assert.Equal(t, 2080, cfg.Projection.EndYear)

	overrides, err := cfg.Reference.ParsedOverrides()
	require.NoError(t, err)
	assert.InDelta(t, 80.0, overrides[90]["soc_tc_ha"], 0.001)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chTempDir(t)

	t.Setenv("DZCIB_STORE_DATABASE_URL", "postgres://env:5432/zone")
	t.Setenv("DZCIB_REPORT_STUDY_AREA", "norfolk_sand_plain")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://env:5432/zone", cfg.Store.DatabaseURL)
	assert.Equal(t, "norfolk_sand_plain", cfg.Report.StudyArea)
}

func TestParsedOverrides_BadCode(t *testing.T) {
	r := ReferenceConfig{Overrides: map[string]map[string]float64{
		"forest": {"soc_tc_ha": 80},
	}}
	_, err := r.ParsedOverrides()
	assert.ErrorContains(t, err, `bad override code "forest"`)
}

func TestParsedOverrides_Empty(t *testing.T) {
	overrides, err := ReferenceConfig{}.ParsedOverrides()
	require.NoError(t, err)
	assert.Nil(t, overrides)
}

func TestValidate(t *testing.T) {
	chTempDir(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())

	cfg.Store.DatabaseURL = ""
	cfg.Projection.EndYear = cfg.Projection.StartYear - 1
	cfg.Projection.DiscountRate = -0.5

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.database_url is required")
	assert.Contains(t, err.Error(), "projection.end_year must not precede")
	assert.Contains(t, err.Error(), "projection.discount_rate must be >= 0")
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
