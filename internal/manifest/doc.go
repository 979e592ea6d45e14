// Package manifest reads download manifests.
//
// A manifest is a spreadsheet or delimited-text table with one row per
// file to fetch. It must carry the organization, title, file_name and
// file_download_link columns; extra columns are ignored and the download
// link may be blank (blank rows are skipped by the download manager, not
// treated as errors).
package manifest
