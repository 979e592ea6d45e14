package dataset

import "strings"

// Cell is one table value.
//
// Cells loaded from delimited text and spreadsheets are plain text; empty
// fields load as nulls (the way a dataframe library reads them). Cells
// loaded from JSON keep non-string values as raw JSON literals so numbers,
// booleans and nested values round-trip verbatim.
type Cell struct {
	// Text is the cell content. For Raw cells it holds a JSON literal.
	Text string

	// Null marks a missing value.
	Null bool

	// Raw marks Text as a raw JSON literal rather than plain text.
	Raw bool
}

// Table is an in-memory dataset: ordered column names plus rows of cells.
//
// Every row has exactly len(Columns) cells; loaders pad short rows with
// nulls and drop fields past the last header column. Column order is the
// source order (first-seen order for JSON records).
type Table struct {
	Columns []string
	Rows    [][]Cell
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, col := range t.Columns {
		if col == name {
			return i, true
		}
	}
	return 0, false
}

// trimColumns strips surrounding whitespace from every column name.
func (t *Table) trimColumns() {
	for i, col := range t.Columns {
		t.Columns[i] = strings.TrimSpace(col)
	}
}

// padRow extends row with null cells until it has width cells.
func padRow(row []Cell, width int) []Cell {
	for len(row) < width {
		row = append(row, Cell{Null: true})
	}
	return row
}
