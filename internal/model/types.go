package model

// ReferenceEntry is one row of the SOLRIS lookup table, keyed by land-cover
// code. Code is the sole join key for the biocapacity, carbon, and aesthetic
// indicators; the water indicator joins on Class name and so inherits that
// name's collision behavior.
type ReferenceEntry struct {
	Code                int
	Class               string
	BiocapacityCategory string
	ConversionFactor    float64 // gha per ha
	LULCCategory        string
	AGC                 float64 // above-ground carbon, tC/ha
	BGC                 float64 // below-ground carbon, tC/ha
	SOC                 float64 // soil organic carbon, tC/ha
	DeOC                float64 // deadwood organic carbon, tC/ha
	Naturalness         float64
	Description         string
}

// AreaRow is one raw area tally from the polygon summary source
// (gridcode, SUM_Area_Ha). Duplicate codes are summed during aggregation,
// never rejected.
type AreaRow struct {
	Code   int
	AreaHa float64
}

// BiocapacityRow is one computed biocapacity result. Rows whose code has no
// reference entry carry NaN coefficients; they are kept in the set.
type BiocapacityRow struct {
	Code             int
	Class            string
	Category         string
	AreaHa           float64
	ConversionFactor float64
	BiocapacityGha   float64
	PercentOfTotal   float64
}

// CarbonRow is one computed carbon sequestration result. The calculator fills
// SSC in raw dollars; the store persists and reads it back in millions, with
// SSCDensity in million $ per hectare.
type CarbonRow struct {
	Code           int
	Class          string
	AreaHa         float64
	AGC            float64
	BGC            float64
	SOC            float64
	DeOC           float64
	TotalCarbonTC  float64
	SSC            float64
	SSCDensity     float64
	PercentOfTotal float64
}

// WaterRow is one computed water filtration result. Classes absent from the
// wetland-value table carry a zero ValuePerHa.
type WaterRow struct {
	Code           int
	Class          string
	AreaHa         float64
	ValuePerHa     float64
	TotalValue     float64
	PercentOfTotal float64
}

// AestheticRow is one computed aesthetic quality result. Codes with no
// reference entry are excluded from the set entirely.
type AestheticRow struct {
	Code           int
	Class          string
	AreaHa         float64
	Naturalness    float64
	RarityScore    int // ordinal 1-5, 5 = rarest
	AestheticScore float64
}
