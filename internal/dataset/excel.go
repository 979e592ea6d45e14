package dataset

import (
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// loadExcel reads the first sheet of an xlsx workbook. The first row is
// the header; cells come back as their formatted string values.
func loadExcel(path string) (*Table, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return &Table{}, nil
	}
	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &Table{}, nil
	}

	table := &Table{Columns: rows[0]}
	for _, record := range rows[1:] {
		row := make([]Cell, len(table.Columns))
		for i := range row {
			if i < len(record) && record[i] != "" {
				row[i] = Cell{Text: record[i]}
			} else {
				row[i] = Cell{Null: true}
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// writeExcel writes the table as a single-sheet xlsx workbook.
func (t *Table) writeExcel(path string) error {
	file := excelize.NewFile()
	defer file.Close()

	header := make([]interface{}, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col
	}
	if err := file.SetSheetRow(defaultSheet, "A1", &header); err != nil {
		return err
	}

	for i, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			if cell.Null {
				cells[j] = nil
			} else {
				cells[j] = cell.Text
			}
		}
		ref, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := file.SetSheetRow(defaultSheet, ref, &cells); err != nil {
			return err
		}
	}

	return file.SaveAs(path)
}
