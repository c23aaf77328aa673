package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WangNatalie/dzcibimpact/internal/model"
)

func refTable() map[int]model.ReferenceEntry {
	return map[int]model.ReferenceEntry{
		90: {
			Code: 90, Class: "Forest", BiocapacityCategory: "Forest Land",
			ConversionFactor: 1.28,
			AGC:              104.8, BGC: 26.2, SOC: 71.0, DeOC: 9.5,
			Naturalness: 5,
		},
		150: {
			Code: 150, Class: "Swamp", BiocapacityCategory: "Wetlands",
			ConversionFactor: 0.47,
			AGC:              77.5, BGC: 19.4, SOC: 143.0, DeOC: 12.1,
			Naturalness: 5,
		},
		193: {
			Code: 193, Class: "Tilled", BiocapacityCategory: "Cropland",
			ConversionFactor: 2.51,
			AGC:              2.3, BGC: 0.5, SOC: 58.0, DeOC: 0,
			Naturalness: 2,
		},
	}
}

func TestBiocapacity(t *testing.T) {
	areas := []model.AreaRow{
		{Code: 90, AreaHa: 100},
		{Code: 150, AreaHa: 40},
		{Code: 193, AreaHa: 60},
	}

	rows, missing := Biocapacity(areas, refTable())
	require.Len(t, rows, 3)
	assert.Empty(t, missing)

	assert.Equal(t, "Forest", rows[0].Class)
	assert.Equal(t, "Forest Land", rows[0].Category)
	assert.InDelta(t, 128.0, rows[0].BiocapacityGha, 1e-9)
	assert.InDelta(t, 18.8, rows[1].BiocapacityGha, 1e-9)
	assert.InDelta(t, 150.6, rows[2].BiocapacityGha, 1e-9)

	sum := 0.0
	for _, r := range rows {
		sum += r.PercentOfTotal
	}
	assert.InDelta(t, 100.0, sum, 1e-6)
}

func TestBiocapacity_UnmatchedCodeKept(t *testing.T) {
	areas := []model.AreaRow{
		{Code: 90, AreaHa: 100},
		{Code: 999, AreaHa: 25},
	}

	rows, missing := Biocapacity(areas, refTable())
	require.Len(t, rows, 2)
	assert.Equal(t, []int{999}, missing)

	// The unmatched row survives with undefined coefficients.
	assert.Equal(t, "", rows[1].Class)
	assert.True(t, math.IsNaN(rows[1].ConversionFactor))
	assert.True(t, math.IsNaN(rows[1].BiocapacityGha))
	assert.True(t, math.IsNaN(rows[1].PercentOfTotal))

	// The matched row shares over the defined total only.
	assert.InDelta(t, 100.0, rows[0].PercentOfTotal, 1e-9)
}
