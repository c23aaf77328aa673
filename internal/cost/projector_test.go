package cost

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject(t *testing.T) {
	schedule := map[int]float64{
		2020: 252,
		2021: 256,
		2025: 270,
	}

	// aggregate 504 => scaling 2.0
	series, err := Project(504, schedule, 2020, 2023, 0.02)
	require.NoError(t, err)
	require.Len(t, series, 4)

	assert.Equal(t, 2020, series[0].Year)
	assert.InDelta(t, 504.0, series[0].Value, 1e-9)
	assert.InDelta(t, 2*256/1.02, series[1].Value, 1e-9)
	// 2022 and 2023 fall back to the 2021 price.
	assert.InDelta(t, 2*256/math.Pow(1.02, 2), series[2].Value, 1e-9)
	assert.InDelta(t, 2*256/math.Pow(1.02, 3), series[3].Value, 1e-9)
}

func TestProject_ZeroRate(t *testing.T) {
	series, err := Project(252, map[int]float64{2020: 100}, 2020, 2022, 0)
	require.NoError(t, err)
	for _, yv := range series {
		assert.InDelta(t, 100.0, yv.Value, 1e-9)
	}
}

func TestProject_Errors(t *testing.T) {
	schedule := map[int]float64{2025: 270}

	_, err := Project(252, schedule, 2030, 2020, 0.02)
	assert.ErrorContains(t, err, "end year")

	_, err = Project(252, nil, 2020, 2030, 0.02)
	assert.ErrorContains(t, err, "empty price schedule")

	// No schedule year at or before the start of the range.
	_, err = Project(252, schedule, 2020, 2030, 0.02)
	assert.ErrorContains(t, err, "no schedule price at or before year 2020")
}
