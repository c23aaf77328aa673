package source

import (
	"strconv"

	"github.com/rotisserie/eris"
)

// ReadWetlandValues reads the wetland water-filtration value table
// (wetland_type,value) and returns per-hectare dollar values keyed by class
// name. The water indicator joins on this key; classes absent from the map
// default to zero downstream.
func ReadWetlandValues(path string) (map[string]float64, error) {
	table, err := ReadCSV(path)
	if err != nil {
		return nil, err
	}
	if err := table.Require("wetland_type", "value"); err != nil {
		return nil, err
	}

	values := make(map[string]float64, len(table.Records))
	for _, record := range table.Records {
		class := table.Get(record, "wetland_type")
		if class == "" {
			continue
		}
		v, err := strconv.ParseFloat(table.Get(record, "value"), 64)
		if err != nil {
			return nil, eris.Wrapf(err, "source: %s: bad value for %q", path, class)
		}
		values[class] = v
	}
	return values, nil
}
