package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// loadText reads a delimited-text dataset (csv or tsv). The file's byte
// encoding is detected and decoded before parsing; the first record is the
// header.
func loadText(path string, comma rune) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decoded, _, err := decodeText(data)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}

	table := &Table{Columns: records[0]}
	for _, record := range records[1:] {
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

// writeText writes the table as delimited text, UTF-8 with BOM (the form
// spreadsheet tools open without mangling non-ASCII labels).
func (t *Table) writeText(path string, comma rune) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err := file.Write(utf8BOM); err != nil {
		file.Close()
		return err
	}

	writer := csv.NewWriter(file)
	writer.Comma = comma

	if err := writer.Write(t.Columns); err != nil {
		file.Close()
		return err
	}
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i := range record {
			if i < len(row) && !row[i].Null {
				record[i] = row[i].Text
			} else {
				record[i] = ""
			}
		}
		if err := writer.Write(record); err != nil {
			file.Close()
			return err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
