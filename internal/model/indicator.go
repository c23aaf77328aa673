// Package model defines the land-cover reference entry, the four indicator
// result row families, and the closed set of indicator variants.
package model

import "fmt"

// Indicator identifies one of the four ecosystem-service indicator families.
// It is a closed set: code that varies per indicator selects behavior with an
// exhaustive switch, never by string comparison.
type Indicator int

const (
	Biocapacity Indicator = iota
	Carbon
	Water
	Aesthetic
)

// Indicators lists every variant in cascade-clear order (any order works for
// clearing; this one mirrors the result-table dependency listing).
var Indicators = []Indicator{Biocapacity, Carbon, Water, Aesthetic}

func (i Indicator) String() string {
	switch i {
	case Biocapacity:
		return "biocapacity"
	case Carbon:
		return "carbon_sequestration"
	case Water:
		return "water_filtration"
	case Aesthetic:
		return "aesthetic_quality"
	default:
		return fmt.Sprintf("Indicator(%d)", int(i))
	}
}

// Table returns the result table owned by the indicator.
func (i Indicator) Table() string {
	switch i {
	case Biocapacity:
		return "biocapacity_results"
	case Carbon:
		return "carbon_sequestration_results"
	case Water:
		return "water_filtration_results"
	case Aesthetic:
		return "aesthetic_quality_results"
	default:
		return ""
	}
}
