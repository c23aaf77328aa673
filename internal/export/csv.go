// Package export writes result sets and the discounted cost series as CSV,
// one file per indicator, mirroring the result table columns in the store's
// descending primary-metric order.
package export

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/WangNatalie/dzcibimpact/internal/cost"
	"github.com/WangNatalie/dzcibimpact/internal/model"
)

var (
	biocapacityHeader = []string{
		"solris_class", "solris_code", "biocapacity_category", "area_hectares",
		"biocapacity_conversion_factor", "biocapacity_gha", "percentage_of_total",
	}
	carbonHeader = []string{
		"solris_class", "solris_code", "area_hectares",
		"agc_tc_ha", "bgc_tc_ha", "soc_tc_ha", "deoc_tc_ha",
		"total_carbon_tc", "ssc", "ssc_density", "percentage_of_total",
	}
	waterHeader = []string{
		"solris_class", "solris_code", "area_hectares",
		"wf_value_per_ha", "total_wf_value", "percentage_of_total",
	}
	aestheticHeader = []string{
		"solris_class", "solris_code", "area_hectares",
		"naturalness_score", "rarity_score", "aesthetic_quality_score",
	}
)

// WriteBiocapacity exports biocapacity rows to path.
func WriteBiocapacity(path string, rows []model.BiocapacityRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Class, codeCell(r.Code, r.Class), r.Category, num(r.AreaHa),
			num(r.ConversionFactor), num(r.BiocapacityGha), num(r.PercentOfTotal),
		})
	}
	return write(path, model.Biocapacity, biocapacityHeader, records)
}

// WriteCarbon exports carbon rows to path. SSC fields are expected in the
// stored millions units.
func WriteCarbon(path string, rows []model.CarbonRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Class, codeCell(r.Code, r.Class), num(r.AreaHa),
			num(r.AGC), num(r.BGC), num(r.SOC), num(r.DeOC),
			num(r.TotalCarbonTC), num(r.SSC), num(r.SSCDensity), num(r.PercentOfTotal),
		})
	}
	return write(path, model.Carbon, carbonHeader, records)
}

// WriteWater exports water filtration rows to path.
func WriteWater(path string, rows []model.WaterRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Class, codeCell(r.Code, r.Class), num(r.AreaHa),
			num(r.ValuePerHa), num(r.TotalValue), num(r.PercentOfTotal),
		})
	}
	return write(path, model.Water, waterHeader, records)
}

// WriteAesthetic exports aesthetic quality rows to path.
func WriteAesthetic(path string, rows []model.AestheticRow) error {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.Class, strconv.Itoa(r.Code), num(r.AreaHa),
			num(r.Naturalness), strconv.Itoa(r.RarityScore), num(r.AestheticScore),
		})
	}
	return write(path, model.Aesthetic, aestheticHeader, records)
}

// WriteProjection exports the discounted social-cost series to path.
func WriteProjection(path string, series []cost.YearValue) error {
	records := make([][]string, 0, len(series))
	for _, p := range series {
		records = append(records, []string{strconv.Itoa(p.Year), num(p.Value)})
	}
	return write(path, model.Carbon, []string{"year", "discounted_ssc_millions"}, records)
}

func write(path string, ind model.Indicator, header []string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return eris.Wrapf(err, "export: write header %s", path)
	}
	for _, record := range records {
		if err := w.Write(record); err != nil {
			return eris.Wrapf(err, "export: write row %s", path)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrapf(err, "export: flush %s", path)
	}

	zap.L().Info("results exported",
		zap.String("indicator", ind.String()),
		zap.String("path", path),
		zap.Int("rows", len(records)),
	)
	return nil
}

// num renders a float with the minimal digits that round-trip exactly, so an
// exported file re-imports to identical values.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// codeCell renders the land-cover code, empty for rows persisted with a NULL
// code (no reference match).
func codeCell(code int, class string) string {
	if class == "" {
		return ""
	}
	return strconv.Itoa(code)
}
