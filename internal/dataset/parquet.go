package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/parquet-go/parquet-go"
)

// loadParquet reads every row group of a parquet file. Leaf values render
// to text cells: byte arrays as-is, numeric and boolean values as raw
// literals, nulls preserved.
func loadParquet(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	fields := pf.Schema().Fields()
	table := &Table{Columns: make([]string, len(fields))}
	for i, field := range fields {
		table.Columns[i] = field.Name()
	}

	for _, group := range pf.RowGroups() {
		rows := group.Rows()
		if err := readRowGroup(table, rows); err != nil {
			rows.Close()
			return nil, err
		}
		if err := rows.Close(); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func readRowGroup(table *Table, rows parquet.Rows) error {
	buf := make([]parquet.Row, 64)
	for {
		n, err := rows.ReadRows(buf)
		for _, prow := range buf[:n] {
			row := make([]Cell, len(table.Columns))
			for i := range row {
				row[i] = Cell{Null: true}
			}
			for _, value := range prow {
				ci := value.Column()
				if ci < 0 || ci >= len(row) || value.IsNull() {
					continue
				}
				row[ci] = cellFromParquet(value)
			}
			table.Rows = append(table.Rows, row)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if n == 0 {
			return nil
		}
	}
}

func cellFromParquet(v parquet.Value) Cell {
	switch v.Kind() {
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return Cell{Text: string(v.ByteArray())}
	case parquet.Boolean:
		return Cell{Text: strconv.FormatBool(v.Boolean()), Raw: true}
	case parquet.Int32:
		return Cell{Text: strconv.FormatInt(int64(v.Int32()), 10), Raw: true}
	case parquet.Int64:
		return Cell{Text: strconv.FormatInt(v.Int64(), 10), Raw: true}
	case parquet.Float:
		return Cell{Text: strconv.FormatFloat(float64(v.Float()), 'g', -1, 32), Raw: true}
	case parquet.Double:
		return Cell{Text: strconv.FormatFloat(v.Double(), 'g', -1, 64), Raw: true}
	default:
		return Cell{Text: v.String()}
	}
}

// writeParquet writes the table with every column as an optional string.
// The parquet schema orders fields alphabetically; the column set is
// preserved, the physical order is not.
func (t *Table) writeParquet(path string) error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("write %s: table has no columns", filepath.Base(path))
	}

	group := parquet.Group{}
	for _, col := range t.Columns {
		group[col] = parquet.Optional(parquet.String())
	}
	schema := parquet.NewSchema("dataset", group)

	leafIndex := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		leaf, ok := schema.Lookup(col)
		if !ok {
			return fmt.Errorf("write %s: no leaf column for %q", filepath.Base(path), col)
		}
		leafIndex[i] = leaf.ColumnIndex
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}

	writer := parquet.NewWriter(file, schema)
	builder := parquet.NewRowBuilder(schema)
	for _, row := range t.Rows {
		builder.Reset()
		for i, cell := range row {
			if i >= len(leafIndex) || cell.Null {
				continue
			}
			builder.Add(leafIndex[i], parquet.ByteArrayValue([]byte(cell.Text)))
		}
		if _, err := writer.WriteRows([]parquet.Row{builder.Row()}); err != nil {
			file.Close()
			return err
		}
	}
	if err := writer.Close(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
