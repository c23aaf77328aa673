package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/WangNatalie/dzcibimpact/internal/model"
)

// BiocapacityClassSummary is one class-grouped row of the biocapacity report.
type BiocapacityClassSummary struct {
	Class          string
	TotalAreaHa    float64
	TotalBiocapGha float64
}

// CarbonClassSummary is one class-grouped row of the carbon report. Stock
// densities are per-hectare averages; SSC figures are in millions of dollars.
type CarbonClassSummary struct {
	Class           string
	TotalAreaHa     float64
	TotalCarbonTC   float64
	AvgAGC          float64
	AvgBGC          float64
	AvgSOC          float64
	AvgDeOC         float64
	TotalSSC        float64
	TotalSSCDensity float64
}

// WaterClassSummary is one class-grouped row of the water filtration report.
type WaterClassSummary struct {
	Class       string
	TotalAreaHa float64
	ValuePerHa  float64
	TotalValue  float64
}

// BiocapacitySummary groups persisted biocapacity rows by class, ordered by
// total biocapacity descending.
func (s *PostgresStore) BiocapacitySummary(ctx context.Context) ([]BiocapacityClassSummary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT solris_class,
		       SUM(area_hectares) AS total_area_hectares,
		       SUM(biocapacity_gha) AS total_biocapacity_gha
		FROM biocapacity_results
		GROUP BY solris_class
		ORDER BY total_biocapacity_gha DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: biocapacity summary")
	}
	defer rows.Close()

	var out []BiocapacityClassSummary
	for rows.Next() {
		var r BiocapacityClassSummary
		if err := rows.Scan(&r.Class, &r.TotalAreaHa, &r.TotalBiocapGha); err != nil {
			return nil, eris.Wrap(err, "postgres: scan biocapacity summary")
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate biocapacity summary")
}

// CarbonSummary groups persisted carbon rows by class, ordered by total
// carbon descending.
func (s *PostgresStore) CarbonSummary(ctx context.Context) ([]CarbonClassSummary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT solris_class,
		       SUM(area_hectares) AS total_area_hectares,
		       SUM(total_carbon_tc) AS total_carbon_tc,
		       AVG(agc_tc_ha) AS avg_agc_tc_ha,
		       AVG(bgc_tc_ha) AS avg_bgc_tc_ha,
		       AVG(soc_tc_ha) AS avg_soc_tc_ha,
		       AVG(deoc_tc_ha) AS avg_deoc_tc_ha,
		       SUM(ssc) AS total_ssc,
		       SUM(ssc_density) AS total_ssc_density
		FROM carbon_sequestration_results
		GROUP BY solris_class
		ORDER BY total_carbon_tc DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: carbon summary")
	}
	defer rows.Close()

	var out []CarbonClassSummary
	for rows.Next() {
		var r CarbonClassSummary
		if err := rows.Scan(&r.Class, &r.TotalAreaHa, &r.TotalCarbonTC,
			&r.AvgAGC, &r.AvgBGC, &r.AvgSOC, &r.AvgDeOC,
			&r.TotalSSC, &r.TotalSSCDensity); err != nil {
			return nil, eris.Wrap(err, "postgres: scan carbon summary")
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate carbon summary")
}

// WaterSummary groups persisted water rows by class, ordered by total value
// descending.
func (s *PostgresStore) WaterSummary(ctx context.Context) ([]WaterClassSummary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT solris_class,
		       SUM(area_hectares) AS total_area_hectares,
		       AVG(wf_value_per_ha) AS wf_value_per_ha,
		       SUM(total_wf_value) AS total_wf_value
		FROM water_filtration_results
		GROUP BY solris_class
		ORDER BY total_wf_value DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: water summary")
	}
	defer rows.Close()

	var out []WaterClassSummary
	for rows.Next() {
		var r WaterClassSummary
		if err := rows.Scan(&r.Class, &r.TotalAreaHa, &r.ValuePerHa, &r.TotalValue); err != nil {
			return nil, eris.Wrap(err, "postgres: scan water summary")
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate water summary")
}

// TotalCarbonSSC returns the aggregate social cost of the persisted carbon
// run in millions of dollars; 0 when the table is empty.
func (s *PostgresStore) TotalCarbonSSC(ctx context.Context) (float64, error) {
	var total float64
	err := s.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(ssc), 0) FROM carbon_sequestration_results`,
	).Scan(&total)
	return total, eris.Wrap(err, "postgres: total carbon ssc")
}

// ListBiocapacity returns the persisted biocapacity rows ordered by
// biocapacity descending, the export order.
func (s *PostgresStore) ListBiocapacity(ctx context.Context) ([]model.BiocapacityRow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT solris_code, solris_class, biocapacity_category, area_hectares,
		       biocapacity_conversion_factor, biocapacity_gha, percentage_of_total
		FROM biocapacity_results
		ORDER BY biocapacity_gha DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list biocapacity")
	}
	defer rows.Close()

	var out []model.BiocapacityRow
	for rows.Next() {
		var r model.BiocapacityRow
		var code *int
		if err := rows.Scan(&code, &r.Class, &r.Category, &r.AreaHa,
			&r.ConversionFactor, &r.BiocapacityGha, &r.PercentOfTotal); err != nil {
			return nil, eris.Wrap(err, "postgres: scan biocapacity row")
		}
		if code != nil {
			r.Code = *code
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate biocapacity rows")
}

// ListCarbon returns the persisted carbon rows ordered by total carbon
// descending. SSC fields are in the stored millions units.
func (s *PostgresStore) ListCarbon(ctx context.Context) ([]model.CarbonRow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT solris_code, solris_class, area_hectares,
		       agc_tc_ha, bgc_tc_ha, soc_tc_ha, deoc_tc_ha,
		       total_carbon_tc, ssc, ssc_density, percentage_of_total
		FROM carbon_sequestration_results
		ORDER BY total_carbon_tc DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list carbon")
	}
	defer rows.Close()

	var out []model.CarbonRow
	for rows.Next() {
		var r model.CarbonRow
		var code *int
		if err := rows.Scan(&code, &r.Class, &r.AreaHa,
			&r.AGC, &r.BGC, &r.SOC, &r.DeOC,
			&r.TotalCarbonTC, &r.SSC, &r.SSCDensity, &r.PercentOfTotal); err != nil {
			return nil, eris.Wrap(err, "postgres: scan carbon row")
		}
		if code != nil {
			r.Code = *code
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate carbon rows")
}

// ListWater returns the persisted water rows ordered by total value
// descending.
func (s *PostgresStore) ListWater(ctx context.Context) ([]model.WaterRow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT solris_code, solris_class, area_hectares,
		       wf_value_per_ha, total_wf_value, percentage_of_total
		FROM water_filtration_results
		ORDER BY total_wf_value DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list water")
	}
	defer rows.Close()

	var out []model.WaterRow
	for rows.Next() {
		var r model.WaterRow
		var code *int
		if err := rows.Scan(&code, &r.Class, &r.AreaHa,
			&r.ValuePerHa, &r.TotalValue, &r.PercentOfTotal); err != nil {
			return nil, eris.Wrap(err, "postgres: scan water row")
		}
		if code != nil {
			r.Code = *code
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate water rows")
}

// ListAesthetic returns the persisted aesthetic rows ordered by score
// descending. The aesthetic report renders these directly; there is no
// class-grouped summary for this indicator.
func (s *PostgresStore) ListAesthetic(ctx context.Context) ([]model.AestheticRow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT solris_code, solris_class, area_hectares,
		       naturalness_score, rarity_score, aesthetic_quality_score
		FROM aesthetic_quality_results
		ORDER BY aesthetic_quality_score DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list aesthetic")
	}
	defer rows.Close()

	var out []model.AestheticRow
	for rows.Next() {
		var r model.AestheticRow
		if err := rows.Scan(&r.Code, &r.Class, &r.AreaHa,
			&r.Naturalness, &r.RarityScore, &r.AestheticScore); err != nil {
			return nil, eris.Wrap(err, "postgres: scan aesthetic row")
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate aesthetic rows")
}
