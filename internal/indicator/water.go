package indicator

import (
	"github.com/WangNatalie/dzcibimpact/internal/model"
)

// Water computes the water-filtration dollar value for each aggregated code.
// The join runs in two hops: code to class name through the reference table,
// then class name to a per-hectare value from the wetland-value table. A
// class absent from the wetland table (or a code absent from the reference
// table) contributes a silent zero value; no warning is raised.
func Water(areas []model.AreaRow, ref map[int]model.ReferenceEntry, wetlandValues map[string]float64) []model.WaterRow {
	agg := SumAreaByCode(areas)

	rows := make([]model.WaterRow, 0, len(agg))
	total := 0.0
	for _, a := range agg {
		row := model.WaterRow{Code: a.Code, AreaHa: a.AreaHa}
		if entry, ok := ref[a.Code]; ok {
			row.Class = entry.Class
		}
		row.ValuePerHa = wetlandValues[row.Class]

		row.TotalValue = round(row.AreaHa*row.ValuePerHa, 4)
		total += row.TotalValue
		rows = append(rows, row)
	}

	for i := range rows {
		if total != 0 {
			rows[i].PercentOfTotal = rows[i].TotalValue / total * 100
		}
	}

	return rows
}
