package source

import (
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/WangNatalie/dzcibimpact/internal/model"
)

// Columns every polygon area summary must carry.
const (
	areaCodeColumn = "gridcode"
	areaHaColumn   = "SUM_Area_Ha"
)

// ReadAreaXLSX reads the polygon summary workbook (first sheet) and returns
// one AreaRow per record. Blank rows are skipped; a record with an
// unparseable code or area fails the whole read.
func ReadAreaXLSX(path string) ([]model.AreaRow, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "source: open xlsx %s", path)
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("source: %s has no sheets", path)
	}
	sheet := f.Sheets[0]
	if len(sheet.Rows) == 0 {
		return nil, eris.Errorf("source: %s sheet %q is empty", path, sheet.Name)
	}

	table := &Table{Name: path, columns: mapColumns(rowToStrings(sheet.Rows[0]))}
	if err := table.Require(areaCodeColumn, areaHaColumn); err != nil {
		return nil, err
	}

	var rows []model.AreaRow
	for _, row := range sheet.Rows[1:] {
		record := rowToStrings(row)

		codeCell := table.Get(record, areaCodeColumn)
		areaCell := table.Get(record, areaHaColumn)
		if codeCell == "" && areaCell == "" {
			continue
		}

		code, err := strconv.Atoi(codeCell)
		if err != nil {
			return nil, eris.Wrapf(err, "source: %s: bad %s %q", path, areaCodeColumn, codeCell)
		}
		area, err := strconv.ParseFloat(areaCell, 64)
		if err != nil {
			return nil, eris.Wrapf(err, "source: %s: bad %s %q", path, areaHaColumn, areaCell)
		}

		rows = append(rows, model.AreaRow{Code: code, AreaHa: area})
	}

	return rows, nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for i, cell := range row.Cells {
		cells[i] = cell.String()
	}
	return cells
}
