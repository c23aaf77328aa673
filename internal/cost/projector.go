// Package cost projects the aggregate social cost of carbon over a year range
// using an annual price schedule and a compounding discount rate.
package cost

import (
	"math"
	"sort"

	"github.com/rotisserie/eris"

	"github.com/WangNatalie/dzcibimpact/internal/indicator"
)

// YearValue is one point of the discounted series, in millions of dollars.
type YearValue struct {
	Year  int
	Value float64
}

// Project scales the annual SCC schedule by aggregateSSCMillions relative to
// the reference-year price, then discounts each year back to startYear:
//
//	value(y) = scaling x price(y) / (1+rate)^(y-startYear)
//
// A year absent from the schedule uses the latest schedule year at or before
// it; prices are never interpolated or taken from a later year. The requested
// range is inclusive and must be covered by at least one schedule year at or
// before startYear.
func Project(aggregateSSCMillions float64, schedule map[int]float64, startYear, endYear int, rate float64) ([]YearValue, error) {
	if endYear < startYear {
		return nil, eris.Errorf("cost: end year %d before start year %d", endYear, startYear)
	}
	if len(schedule) == 0 {
		return nil, eris.New("cost: empty price schedule")
	}

	years := make([]int, 0, len(schedule))
	for y := range schedule {
		years = append(years, y)
	}
	sort.Ints(years)

	scaling := aggregateSSCMillions / indicator.SCCReferencePrice

	series := make([]YearValue, 0, endYear-startYear+1)
	for year := startYear; year <= endYear; year++ {
		price, ok := priceAtOrBefore(schedule, years, year)
		if !ok {
			return nil, eris.Errorf("cost: no schedule price at or before year %d", year)
		}
		discounted := scaling * price / math.Pow(1+rate, float64(year-startYear))
		series = append(series, YearValue{Year: year, Value: discounted})
	}
	return series, nil
}

// priceAtOrBefore returns the schedule price for year, falling back to the
// latest schedule year <= year. sortedYears must be ascending.
func priceAtOrBefore(schedule map[int]float64, sortedYears []int, year int) (float64, bool) {
	if price, ok := schedule[year]; ok {
		return price, true
	}
	idx := sort.SearchInts(sortedYears, year)
	if idx == 0 {
		return 0, false
	}
	return schedule[sortedYears[idx-1]], true
}
