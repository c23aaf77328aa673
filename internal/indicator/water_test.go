package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WangNatalie/dzcibimpact/internal/model"
)

func TestWater(t *testing.T) {
	wetland := map[string]float64{
		"Swamp":  7438.82,
		"Forest": 431.19,
	}
	areas := []model.AreaRow{
		{Code: 90, AreaHa: 12.5},
		{Code: 150, AreaHa: 3.3333},
		{Code: 193, AreaHa: 40}, // Tilled: not in the wetland table
	}

	rows := Water(areas, refTable(), wetland)
	require.Len(t, rows, 3)

	assert.InDelta(t, 431.19, rows[0].ValuePerHa, 1e-9)
	assert.InDelta(t, 5389.875, rows[0].TotalValue, 1e-9)
	// 3.3333 * 7438.82 = 24795.818706, rounded to four decimals.
	assert.InDelta(t, 24795.8187, rows[1].TotalValue, 1e-9)

	// A class with no wetland value contributes a silent zero.
	assert.Equal(t, 0.0, rows[2].ValuePerHa)
	assert.Equal(t, 0.0, rows[2].TotalValue)
	assert.Equal(t, 0.0, rows[2].PercentOfTotal)

	sum := 0.0
	for _, r := range rows {
		sum += r.PercentOfTotal
	}
	assert.InDelta(t, 100.0, sum, 1e-6)
}

func TestWater_UnmatchedCodeDefaultsToZero(t *testing.T) {
	rows := Water([]model.AreaRow{{Code: 999, AreaHa: 10}}, refTable(), map[string]float64{"Forest": 431.19})
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Class)
	assert.Equal(t, 0.0, rows[0].TotalValue)
	assert.Equal(t, 0.0, rows[0].PercentOfTotal)
}
