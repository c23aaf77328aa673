package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSCCSchedule(t *testing.T) {
	path := writeCSV(t, "scc.csv",
		"Year,SCC\n2020,\"$1,234.00\"\n2021,$252\n2025,270.50\n,\n")

	schedule, err := ReadSCCSchedule(path)
	require.NoError(t, err)
	assert.Equal(t, map[int]float64{
		2020: 1234,
		2021: 252,
		2025: 270.5,
	}, schedule)
}

func TestReadSCCSchedule_BadYear(t *testing.T) {
	path := writeCSV(t, "scc.csv", "Year,SCC\ntwenty,252\n")

	_, err := ReadSCCSchedule(path)
	assert.ErrorContains(t, err, `bad year "twenty"`)
}

func TestReadSCCSchedule_BadPrice(t *testing.T) {
	path := writeCSV(t, "scc.csv", "Year,SCC\n2020,$two\n")

	_, err := ReadSCCSchedule(path)
	assert.ErrorContains(t, err, "bad SCC for year 2020")
}

func TestParseCurrency(t *testing.T) {
	cases := map[string]float64{
		"$1,234.56": 1234.56,
		"252":       252,
		"$ 270.50":  270.5,
	}
	for in, want := range cases {
		got, err := parseCurrency(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}
