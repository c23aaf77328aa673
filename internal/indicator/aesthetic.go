package indicator

import (
	"github.com/WangNatalie/dzcibimpact/internal/model"
)

// Fixed aesthetic score weights.
const (
	naturalnessWeight = 0.67
	rarityWeight      = 0.33
)

// Aesthetic scores each land-cover class by weighted naturalness and rarity.
// This is the one calculator that excludes unmatched codes: rows without a
// reference entry are dropped before the study-area total is taken, so rarity
// shares are computed over the retained rows only.
func Aesthetic(areas []model.AreaRow, ref map[int]model.ReferenceEntry) []model.AestheticRow {
	agg := SumAreaByCode(areas)

	rows := make([]model.AestheticRow, 0, len(agg))
	totalArea := 0.0
	for _, a := range agg {
		entry, ok := ref[a.Code]
		if !ok {
			continue
		}
		rows = append(rows, model.AestheticRow{
			Code:        a.Code,
			Class:       entry.Class,
			AreaHa:      a.AreaHa,
			Naturalness: entry.Naturalness,
		})
		totalArea += a.AreaHa
	}

	for i := range rows {
		share := rows[i].AreaHa / totalArea * 100
		rows[i].RarityScore = rarityScore(share)
		rows[i].AestheticScore = rows[i].Naturalness*naturalnessWeight + float64(rows[i].RarityScore)*rarityWeight
	}

	return rows
}

// rarityScore bins an area share (percent of total study area) into the five
// ordinal rarity classes. Boundaries are right-inclusive: exactly 1% is still
// the rarest bin, exactly 30% is still bin 2.
func rarityScore(sharePercent float64) int {
	switch {
	case sharePercent <= 1:
		return 5
	case sharePercent <= 5:
		return 4
	case sharePercent <= 15:
		return 3
	case sharePercent <= 30:
		return 2
	default:
		return 1
	}
}
