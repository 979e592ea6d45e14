package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// loadJSON reads a dataset stored as a JSON array of flat record objects.
//
// Columns appear in first-seen key order across the whole array; keys
// missing from a record load as nulls. String values become plain text
// cells; every other value (numbers, booleans, nested structures) is kept
// as a raw JSON literal so it round-trips byte for byte.
func loadJSON(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	name := filepath.Base(path)
	dec := json.NewDecoder(file)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("parse %s: expected a JSON array of records", name)
	}

	table := &Table{}
	index := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		if delim, ok := tok.(json.Delim); !ok || delim != '{' {
			return nil, fmt.Errorf("parse %s: expected a record object", name)
		}

		row := make([]Cell, 0, len(table.Columns))
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", name, err)
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("parse %s: expected an object key", name)
			}

			var raw json.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return nil, fmt.Errorf("parse %s: %w", name, err)
			}

			col, known := index[key]
			if !known {
				col = len(table.Columns)
				index[key] = col
				table.Columns = append(table.Columns, key)
			}
			row = padRow(row, col+1)
			row[col] = cellFromJSON(raw)
		}
		if _, err := dec.Token(); err != nil { // closing '}'
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		table.Rows = append(table.Rows, row)
	}
	if _, err := dec.Token(); err != nil { // closing ']'
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	for i, row := range table.Rows {
		table.Rows[i] = padRow(row, len(table.Columns))
	}
	return table, nil
}

func cellFromJSON(raw json.RawMessage) Cell {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return Cell{Null: true}
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return Cell{Text: s}
		}
	}
	return Cell{Text: string(raw), Raw: true}
}

func cellJSON(cell Cell) ([]byte, error) {
	switch {
	case cell.Null:
		return []byte("null"), nil
	case cell.Raw:
		return []byte(cell.Text), nil
	default:
		return json.Marshal(cell.Text)
	}
}

// jsonRecord marshals one row as an object with keys in column order.
type jsonRecord struct {
	columns []string
	cells   []Cell
}

func (r jsonRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		cell := Cell{Null: true}
		if i < len(r.cells) {
			cell = r.cells[i]
		}
		value, err := cellJSON(cell)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// writeJSON writes the table as an indented JSON array of records.
func (t *Table) writeJSON(path string) error {
	records := make([]jsonRecord, len(t.Rows))
	for i, row := range t.Rows {
		records[i] = jsonRecord{columns: t.Columns, cells: row}
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
