package model

import "strings"

// ManifestRow is one row of a download manifest.
//
// A manifest is a table listing the files to collect. Each row carries the
// publishing organization, the document title, the file name to save under,
// and the download URL. Rows have no identity beyond their position in the
// manifest; source order is preserved end to end.
//
// Example:
//
//	row := model.ManifestRow{
//	    Organization: "Ministry of Education",
//	    Title:        "2023 Annual Report",
//	    FileName:     "report.pdf",
//	    URL:          "https://data.example.org/report.pdf",
//	}
type ManifestRow struct {
	// Organization is the publishing organization, used as the top-level
	// folder name after sanitization.
	Organization string

	// Title is the document title, used (with its ordinal) as the
	// second-level folder name after sanitization.
	Title string

	// FileName is the name to save the downloaded file under, after
	// sanitization.
	FileName string

	// URL is the download link. Blank is allowed; rows without a URL are
	// skipped rather than treated as errors.
	URL string
}

// HasURL reports whether the row carries a non-blank download link.
func (r ManifestRow) HasURL() bool {
	return strings.TrimSpace(r.URL) != ""
}
