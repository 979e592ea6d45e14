package manifest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/haneulkim-dev/corpuskit/internal/dataset"
	"github.com/haneulkim-dev/corpuskit/internal/model"
)

// Column names a manifest must carry. Matching is exact after the loader's
// whitespace trim.
const (
	ColumnOrganization = "organization"
	ColumnTitle        = "title"
	ColumnFileName     = "file_name"
	ColumnURL          = "file_download_link"
)

// RequiredColumns lists the manifest columns in report order.
var RequiredColumns = []string{ColumnOrganization, ColumnTitle, ColumnFileName, ColumnURL}

// Read loads the manifest at path and maps its rows, in source order, to
// download rows.
//
// Manifests are .xlsx, .csv, or .tsv files; anything else is rejected with
// dataset.ErrUnsupportedFormat before touching the file. Text manifests go
// through the same byte-encoding detection as every other dataset, so a
// CP949 csv reads the same as a UTF-8 one.
func Read(path string) ([]model.ManifestRow, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".csv", ".tsv":
	default:
		return nil, fmt.Errorf("%w %q: a manifest must be .xlsx, .csv, or .tsv",
			dataset.ErrUnsupportedFormat, filepath.Ext(path))
	}

	table, err := dataset.Load(path)
	if err != nil {
		return nil, err
	}
	return extract(table)
}

func extract(table *dataset.Table) ([]model.ManifestRow, error) {
	index := make(map[string]int, len(RequiredColumns))
	var missing []string
	for _, col := range RequiredColumns {
		i, ok := table.ColumnIndex(col)
		if !ok {
			missing = append(missing, col)
			continue
		}
		index[col] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("manifest is %w: %s", dataset.ErrMissingColumns, strings.Join(missing, ", "))
	}

	rows := make([]model.ManifestRow, len(table.Rows))
	for i, row := range table.Rows {
		rows[i] = model.ManifestRow{
			Organization: cellText(row, index[ColumnOrganization]),
			Title:        cellText(row, index[ColumnTitle]),
			FileName:     cellText(row, index[ColumnFileName]),
			URL:          cellText(row, index[ColumnURL]),
		}
	}
	return rows, nil
}

func cellText(row []dataset.Cell, i int) string {
	if i >= len(row) || row[i].Null {
		return ""
	}
	return row[i].Text
}
