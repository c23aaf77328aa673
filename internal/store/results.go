package store

import (
	"context"
	"math"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/WangNatalie/dzcibimpact/internal/db"
	"github.com/WangNatalie/dzcibimpact/internal/model"
)

// Clear drops exactly the indicator's result table. It fails if the table
// does not exist; callers are expected to know the current state.
func (s *PostgresStore) Clear(ctx context.Context, ind model.Indicator) error {
	if _, err := s.pool.Exec(ctx, "DROP TABLE "+ind.Table()); err != nil {
		return eris.Wrapf(err, "postgres: clear %s", ind.Table())
	}
	zap.L().Info("cleared result table", zap.String("table", ind.Table()))
	return nil
}

var (
	biocapacityColumns = []string{
		"solris_code", "solris_class", "biocapacity_category", "area_hectares",
		"biocapacity_conversion_factor", "biocapacity_gha", "percentage_of_total",
	}
	carbonColumns = []string{
		"solris_code", "solris_class", "area_hectares",
		"agc_tc_ha", "bgc_tc_ha", "soc_tc_ha", "deoc_tc_ha",
		"total_carbon_tc", "ssc", "ssc_density", "percentage_of_total",
	}
	waterColumns = []string{
		"solris_code", "solris_class", "area_hectares",
		"wf_value_per_ha", "total_wf_value", "percentage_of_total",
	}
	aestheticColumns = []string{
		"solris_code", "solris_class", "area_hectares",
		"naturalness_score", "rarity_score", "aesthetic_quality_score",
	}
)

// PersistBiocapacity appends the row set after ensuring the table exists.
// There is no implicit clear; replace semantics require Clear first.
func (s *PostgresStore) PersistBiocapacity(ctx context.Context, rows []model.BiocapacityRow) error {
	records := make([][]any, 0, len(rows))
	for _, r := range rows {
		records = append(records, []any{
			codeOrNull(r.Code, r.Class), r.Class, r.Category, round4(r.AreaHa),
			r.ConversionFactor, r.BiocapacityGha, r.PercentOfTotal,
		})
	}
	return s.persist(ctx, model.Biocapacity, biocapacityColumns, records)
}

// PersistCarbon appends the row set. SSC arrives from the calculator in raw
// dollars and is stored in millions (4dp); density is millions per hectare
// (6dp) with the degenerate zero-area case mapped to 0.
func (s *PostgresStore) PersistCarbon(ctx context.Context, rows []model.CarbonRow) error {
	records := make([][]any, 0, len(rows))
	for _, r := range rows {
		sscMillions := round4(r.SSC / 1e6)
		density := sscMillions / r.AreaHa
		if math.IsInf(density, 0) || math.IsNaN(density) {
			density = 0
		}
		records = append(records, []any{
			codeOrNull(r.Code, r.Class), r.Class, round4(r.AreaHa),
			r.AGC, r.BGC, r.SOC, r.DeOC,
			r.TotalCarbonTC, sscMillions, round6(density), r.PercentOfTotal,
		})
	}
	return s.persist(ctx, model.Carbon, carbonColumns, records)
}

// PersistWater appends the row set.
func (s *PostgresStore) PersistWater(ctx context.Context, rows []model.WaterRow) error {
	records := make([][]any, 0, len(rows))
	for _, r := range rows {
		records = append(records, []any{
			codeOrNull(r.Code, r.Class), r.Class, round4(r.AreaHa),
			r.ValuePerHa, r.TotalValue, r.PercentOfTotal,
		})
	}
	return s.persist(ctx, model.Water, waterColumns, records)
}

// PersistAesthetic appends the row set. Aesthetic rows always carry a real
// code because the calculator drops unmatched codes.
func (s *PostgresStore) PersistAesthetic(ctx context.Context, rows []model.AestheticRow) error {
	records := make([][]any, 0, len(rows))
	for _, r := range rows {
		records = append(records, []any{
			r.Code, r.Class, round4(r.AreaHa),
			r.Naturalness, r.RarityScore, r.AestheticScore,
		})
	}
	return s.persist(ctx, model.Aesthetic, aestheticColumns, records)
}

func (s *PostgresStore) persist(ctx context.Context, ind model.Indicator, columns []string, records [][]any) error {
	if _, err := s.pool.Exec(ctx, resultDDL(ind)); err != nil {
		return eris.Wrapf(err, "postgres: ensure %s", ind.Table())
	}
	n, err := db.CopyFrom(ctx, s.pool, ind.Table(), columns, records)
	if err != nil {
		return eris.Wrapf(err, "postgres: persist %s", ind.Table())
	}
	zap.L().Info("results saved", zap.String("table", ind.Table()), zap.Int64("rows", n))
	return nil
}

// codeOrNull persists NULL for rows whose code has no reference entry (the
// class name is empty exactly in that case), so the foreign key admits them.
func codeOrNull(code int, class string) any {
	if class == "" {
		return nil
	}
	return code
}

func round4(v float64) float64 { return roundTo(v, 4) }
func round6(v float64) float64 { return roundTo(v, 6) }

func roundTo(v float64, decimals int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}
