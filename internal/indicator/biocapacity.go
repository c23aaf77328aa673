package indicator

import (
	"math"

	"github.com/WangNatalie/dzcibimpact/internal/model"
)

// Biocapacity computes biocapacity_gha = area_ha x conversion factor for each
// aggregated code. Codes without a reference entry are kept with NaN
// coefficients and reported in the returned missing slice; callers log them
// as a warning but do not exclude them.
//
// Percentages share over the total of the defined rows; nothing is clamped,
// so a zero total leaves the column undefined.
func Biocapacity(areas []model.AreaRow, ref map[int]model.ReferenceEntry) ([]model.BiocapacityRow, []int) {
	agg := SumAreaByCode(areas)

	rows := make([]model.BiocapacityRow, 0, len(agg))
	total := 0.0
	for _, a := range agg {
		row := model.BiocapacityRow{Code: a.Code, AreaHa: a.AreaHa}
		if entry, ok := ref[a.Code]; ok {
			row.Class = entry.Class
			row.Category = entry.BiocapacityCategory
			row.ConversionFactor = entry.ConversionFactor
		} else {
			row.ConversionFactor = math.NaN()
		}

		row.BiocapacityGha = row.AreaHa * row.ConversionFactor
		if !math.IsNaN(row.BiocapacityGha) {
			total += row.BiocapacityGha
		}
		rows = append(rows, row)
	}

	for i := range rows {
		rows[i].PercentOfTotal = rows[i].BiocapacityGha / total * 100
	}

	return rows, missingCodes(agg, ref)
}
