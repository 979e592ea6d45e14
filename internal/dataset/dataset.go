package dataset

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for file extensions no loader or writer
// handles. Match it with errors.Is.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// ErrMissingColumns is returned when a table lacks columns the caller
// requires. The wrapping error names them. Match it with errors.Is.
var ErrMissingColumns = errors.New("missing required columns")

// Format identifies a supported dataset file format.
type Format int

const (
	FormatXLSX Format = iota
	FormatCSV
	FormatTSV
	FormatJSON
	FormatParquet
)

// String returns the canonical extension for the format, without the dot.
func (f Format) String() string {
	switch f {
	case FormatXLSX:
		return "xlsx"
	case FormatCSV:
		return "csv"
	case FormatTSV:
		return "tsv"
	case FormatJSON:
		return "json"
	case FormatParquet:
		return "parquet"
	default:
		return "unknown"
	}
}

// DetectFormat maps a file path to its Format by extension,
// case-insensitively.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	case ".tsv":
		return FormatTSV, nil
	case ".json":
		return FormatJSON, nil
	case ".parquet":
		return FormatParquet, nil
	default:
		return 0, fmt.Errorf("%w %q: want .xlsx, .csv, .tsv, .json, or .parquet",
			ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads the dataset file at path, dispatching on its extension.
// Column names are whitespace-trimmed after load.
func Load(path string) (*Table, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	var table *Table
	switch format {
	case FormatXLSX:
		table, err = loadExcel(path)
	case FormatCSV:
		table, err = loadText(path, ',')
	case FormatTSV:
		table, err = loadText(path, '\t')
	case FormatJSON:
		table, err = loadJSON(path)
	case FormatParquet:
		table, err = loadParquet(path)
	}
	if err != nil {
		return nil, err
	}

	table.trimColumns()
	return table, nil
}

// Write writes the table to path in the format matching path's extension.
func (t *Table) Write(path string) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}

	switch format {
	case FormatXLSX:
		return t.writeExcel(path)
	case FormatCSV:
		return t.writeText(path, ',')
	case FormatTSV:
		return t.writeText(path, '\t')
	case FormatJSON:
		return t.writeJSON(path)
	case FormatParquet:
		return t.writeParquet(path)
	}
	return fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
}

// WithSuffix returns path with suffix inserted before the extension:
// WithSuffix("data/train.csv", "_resampled") is "data/train_resampled.csv".
func WithSuffix(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}
