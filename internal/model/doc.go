// Package model defines the core data structures used throughout
// corpuskit.
//
// # Manifest Rows
//
// ManifestRow is one entry of a download manifest, in source order:
//
//	row := model.ManifestRow{Organization: "Org", Title: "Title", FileName: "f.pdf", URL: url}
//	if row.HasURL() { ... }
//
// # Jobs
//
// Job is a manifest row bound to its sanitized on-disk destination:
//
//	job := model.NewJob("/downloads", 1, row)
//	fmt.Println(job.Path)      // Where the file will be saved
//	fmt.Println(job.RelPath()) // Its slash path inside the zip archive
//
// Destination layout: <base>/<organization>/<NNNNN>_<title>/<filename>,
// all components sanitized by the policies in the ioutils package.
package model
