// Package indicator holds the four ecosystem-service calculators. Every
// calculator is a pure transform from aggregated area rows plus the reference
// map to a result row set; persistence and reporting live elsewhere.
//
// The calculators deliberately diverge in how they treat a code without a
// reference entry: biocapacity and carbon keep the row (with undefined
// coefficients, returned as a missing-code warning), aesthetic drops it, and
// water defaults the class-name join to a zero dollar value. The divergence
// mirrors the system this replaces and is preserved rather than unified.
package indicator

import (
	"math"
	"sort"

	"github.com/WangNatalie/dzcibimpact/internal/model"
)

// SumAreaByCode collapses raw area rows to one row per land-cover code,
// summing duplicate codes. Output is sorted by code so every downstream row
// set is deterministic.
func SumAreaByCode(rows []model.AreaRow) []model.AreaRow {
	byCode := make(map[int]float64, len(rows))
	for _, r := range rows {
		byCode[r.Code] += r.AreaHa
	}

	agg := make([]model.AreaRow, 0, len(byCode))
	for code, area := range byCode {
		agg = append(agg, model.AreaRow{Code: code, AreaHa: area})
	}
	sort.Slice(agg, func(i, j int) bool { return agg[i].Code < agg[j].Code })
	return agg
}

// missingCodes returns the sorted codes from agg that have no reference entry.
func missingCodes(agg []model.AreaRow, ref map[int]model.ReferenceEntry) []int {
	var missing []int
	for _, r := range agg {
		if _, ok := ref[r.Code]; !ok {
			missing = append(missing, r.Code)
		}
	}
	return missing
}

// zeroIfNaN maps NaN to 0 so a missing carbon stock component never makes the
// total undefined.
func zeroIfNaN(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func round(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}
