package source

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// ReadSCCSchedule reads the annual social-cost-of-carbon schedule (Year,SCC)
// and returns prices keyed by year. SCC cells are currency-formatted
// ("$1,234.00"); the symbol and thousands separators are stripped before
// parsing.
func ReadSCCSchedule(path string) (map[int]float64, error) {
	table, err := ReadCSV(path)
	if err != nil {
		return nil, err
	}
	if err := table.Require("Year", "SCC"); err != nil {
		return nil, err
	}

	schedule := make(map[int]float64, len(table.Records))
	for _, record := range table.Records {
		yearCell := table.Get(record, "Year")
		if yearCell == "" {
			continue
		}
		year, err := strconv.Atoi(yearCell)
		if err != nil {
			return nil, eris.Wrapf(err, "source: %s: bad year %q", path, yearCell)
		}

		price, err := parseCurrency(table.Get(record, "SCC"))
		if err != nil {
			return nil, eris.Wrapf(err, "source: %s: bad SCC for year %d", path, year)
		}
		schedule[year] = price
	}
	return schedule, nil
}

func parseCurrency(s string) (float64, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	return strconv.ParseFloat(cleaned, 64)
}
