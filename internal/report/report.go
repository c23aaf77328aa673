// Package report renders the per-indicator analysis reports from persisted,
// class-grouped results. Rendering is deterministic for a fixed timestamp;
// every division is guarded so an empty result set yields 0 percentages
// instead of a fault.
package report

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/WangNatalie/dzcibimpact/internal/model"
	"github.com/WangNatalie/dzcibimpact/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

// printer formats figures with thousands separators.
var printer = message.NewPrinter(language.English)

func header(b *strings.Builder, title, studyArea string, now time.Time, width int) {
	rule := strings.Repeat("=", width)
	fmt.Fprintf(b, "%s\n", title)
	fmt.Fprintf(b, "Study Area: %s\n", studyArea)
	fmt.Fprintf(b, "Generated: %s\n\n", now.Format(timeLayout))
	fmt.Fprintf(b, "%s\nSUMMARY BY SOLRIS CLASS\n%s\n", rule, rule)
}

func footer(b *strings.Builder, width int) {
	rule := strings.Repeat("=", width)
	fmt.Fprintf(b, "\n%s\nTOTALS\n%s\n", rule, rule)
}

// pct returns part/total*100, 0 when total is zero.
func pct(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * 100
}

// ratio returns num/den, 0 when den is zero.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// Biocapacity renders the biocapacity report from class-grouped results.
func Biocapacity(studyArea string, now time.Time, classes []store.BiocapacityClassSummary) string {
	var totalArea, totalGha float64
	for _, c := range classes {
		totalArea += c.TotalAreaHa
		totalGha += c.TotalBiocapGha
	}

	var b strings.Builder
	header(&b, "BIOCAPACITY ANALYSIS REPORT", studyArea, now, 50)

	for _, c := range classes {
		fmt.Fprintf(&b, "\n%s:\n", c.Class)
		printer.Fprintf(&b, "  Area: %.2f hectares (%.1f%% of total)\n",
			c.TotalAreaHa, pct(c.TotalAreaHa, totalArea))
		printer.Fprintf(&b, "  Biocapacity: %.2f global hectares (%.1f%% of total)\n",
			c.TotalBiocapGha, pct(c.TotalBiocapGha, totalGha))
	}

	footer(&b, 50)
	printer.Fprintf(&b, "Total Area: %.2f hectares\n", totalArea)
	printer.Fprintf(&b, "Total Biocapacity: %.2f global hectares\n", totalGha)
	fmt.Fprintf(&b, "Biocapacity per Hectare: %.3f gha/ha\n", ratio(totalGha, totalArea))
	return b.String()
}

// Carbon renders the carbon sequestration report from class-grouped results.
func Carbon(studyArea string, now time.Time, classes []store.CarbonClassSummary) string {
	var totalArea, totalCarbon, totalSSC float64
	for _, c := range classes {
		totalArea += c.TotalAreaHa
		totalCarbon += c.TotalCarbonTC
		totalSSC += c.TotalSSC
	}

	var b strings.Builder
	header(&b, "CARBON SEQUESTRATION ANALYSIS REPORT", studyArea, now, 60)

	for _, c := range classes {
		fmt.Fprintf(&b, "\n%s:\n", c.Class)
		printer.Fprintf(&b, "  Area: %.2f hectares (%.1f%% of total)\n",
			c.TotalAreaHa, pct(c.TotalAreaHa, totalArea))
		printer.Fprintf(&b, "  Total Carbon: %.2f tonnes C (%.1f%% of total)\n",
			c.TotalCarbonTC, pct(c.TotalCarbonTC, totalCarbon))
		fmt.Fprintf(&b, "  Carbon Density: %.2f tC/ha\n", ratio(c.TotalCarbonTC, c.TotalAreaHa))
		fmt.Fprintf(&b, "  Breakdown per hectare:\n")
		fmt.Fprintf(&b, "    - AGC: %.2f tC/ha\n", c.AvgAGC)
		fmt.Fprintf(&b, "    - BGC: %.2f tC/ha\n", c.AvgBGC)
		fmt.Fprintf(&b, "    - SOC: %.2f tC/ha\n", c.AvgSOC)
		fmt.Fprintf(&b, "    - DeOC: %.2f tC/ha\n", c.AvgDeOC)
		fmt.Fprintf(&b, "    - SSC: $%.2f CAD/ha\n", 1e6*c.TotalSSCDensity)
		printer.Fprintf(&b, "  Total SSC: $%.6f million CAD\n", c.TotalSSC)
	}

	footer(&b, 60)
	printer.Fprintf(&b, "Total Area: %.2f hectares\n", totalArea)
	printer.Fprintf(&b, "Total Carbon Sequestration: %.2f tonnes C\n", totalCarbon)
	fmt.Fprintf(&b, "Average Carbon Density: %.2f tC/ha\n", ratio(totalCarbon, totalArea))
	printer.Fprintf(&b, "Total SSC: $%.2f million CAD\n", totalSSC)
	return b.String()
}

// Water renders the water filtration report from class-grouped results.
func Water(studyArea string, now time.Time, classes []store.WaterClassSummary) string {
	var totalArea, totalValue float64
	for _, c := range classes {
		totalArea += c.TotalAreaHa
		totalValue += c.TotalValue
	}

	var b strings.Builder
	header(&b, "WATER FILTRATION ANALYSIS REPORT", studyArea, now, 60)

	for _, c := range classes {
		fmt.Fprintf(&b, "\n%s:\n", c.Class)
		printer.Fprintf(&b, "  Area: %.2f hectares (%.1f%% of total)\n",
			c.TotalAreaHa, pct(c.TotalAreaHa, totalArea))
		printer.Fprintf(&b, "  WF Value($)/ha: %.2f\n", c.ValuePerHa)
		printer.Fprintf(&b, "  Total WF Value($): %.2f (%.1f%% of total)\n",
			c.TotalValue, pct(c.TotalValue, totalValue))
	}

	footer(&b, 60)
	printer.Fprintf(&b, "Total Area: %.2f hectares\n", totalArea)
	printer.Fprintf(&b, "Total Water Filtration Value ($ millions CAD): %.6f\n", totalValue/1e6)
	return b.String()
}

// Aesthetic renders the aesthetic quality report. Unlike the other three it
// reads flat rows (already ordered by score descending) and closes with an
// area-weighted average score.
func Aesthetic(studyArea string, now time.Time, rows []model.AestheticRow) string {
	var totalArea, weighted float64
	for _, r := range rows {
		totalArea += r.AreaHa
		weighted += r.AestheticScore * r.AreaHa
	}

	var b strings.Builder
	header(&b, "AESTHETIC QUALITY ANALYSIS REPORT", studyArea, now, 60)

	for _, r := range rows {
		fmt.Fprintf(&b, "\n%s:\n", r.Class)
		fmt.Fprintf(&b, "  Aesthetic Score: %.2f\n", r.AestheticScore)
		printer.Fprintf(&b, "    - Area: %.2f hectares (%.1f%% of total)\n",
			r.AreaHa, pct(r.AreaHa, totalArea))
		fmt.Fprintf(&b, "    - Naturalness Score: %.2f\n", r.Naturalness)
		fmt.Fprintf(&b, "    - Rarity Score: %d (5=rarest, 1=most common)\n", r.RarityScore)
	}

	footer(&b, 60)
	printer.Fprintf(&b, "Total Area: %.2f hectares\n", totalArea)
	fmt.Fprintf(&b, "Area-Weighted Average Aesthetic Score: %.2f\n", ratio(weighted, totalArea))
	return b.String()
}
