package indicator

import (
	"math"

	"github.com/WangNatalie/dzcibimpact/internal/model"
)

// SCCReferencePrice is the 2021 present-value price of carbon in dollars per
// tonne. The calculator monetizes total carbon with it, and the cost
// projector scales the annual schedule against it.
const SCCReferencePrice = 252.0

// Carbon computes total_carbon_tc = (agc+bgc+soc+deoc) x area_ha and its
// social cost for each aggregated code. Codes without a reference entry keep
// NaN stock densities (reported via the missing slice) but contribute a zero,
// never undefined, total because each missing component counts as zero.
//
// Row SSC is in raw dollars here; the store persists it in millions. Unlike
// biocapacity, a zero set-wide carbon total defines every percentage as 0.
func Carbon(areas []model.AreaRow, ref map[int]model.ReferenceEntry) ([]model.CarbonRow, []int) {
	agg := SumAreaByCode(areas)

	rows := make([]model.CarbonRow, 0, len(agg))
	total := 0.0
	for _, a := range agg {
		row := model.CarbonRow{Code: a.Code, AreaHa: a.AreaHa}
		if entry, ok := ref[a.Code]; ok {
			row.Class = entry.Class
			row.AGC, row.BGC, row.SOC, row.DeOC = entry.AGC, entry.BGC, entry.SOC, entry.DeOC
		} else {
			nan := math.NaN()
			row.AGC, row.BGC, row.SOC, row.DeOC = nan, nan, nan, nan
		}

		row.TotalCarbonTC = (zeroIfNaN(row.AGC) + zeroIfNaN(row.BGC) + zeroIfNaN(row.SOC) + zeroIfNaN(row.DeOC)) * row.AreaHa
		row.SSC = row.TotalCarbonTC * SCCReferencePrice
		total += row.TotalCarbonTC
		rows = append(rows, row)
	}

	for i := range rows {
		if total != 0 {
			rows[i].PercentOfTotal = rows[i].TotalCarbonTC / total * 100
		}
	}

	return rows, missingCodes(agg, ref)
}
