package model

import (
	"fmt"
	"path"
	"path/filepath"

	ioutils "github.com/haneulkim-dev/corpuskit/internal/io"
)

// Job is one planned download: a manifest row plus its computed, sanitized
// destination under the output root.
//
// Paths are computed once at construction via NewJob. The destination
// layout is
//
//	<base>/<organization>/<NNNNN>_<title>/<filename>
//
// where NNNNN is the job's ordinal, zero-padded to five digits. The
// ordinal counts successful downloads, so it is dense on disk: a failed
// job leaves its (empty) folder behind and the next attempt reuses the
// same number.
//
// Example:
//
//	job := model.NewJob("/downloads", 1, row)
//	// job.Path = "/downloads/Ministry_of_Education/00001_2023_Annual_Report/report.pdf"
type Job struct {
	// Row is the manifest row this job was built from.
	Row ManifestRow

	// Index is the job's 1-based ordinal, also the folder prefix.
	Index int

	// OrganizationDir is the sanitized top-level folder name.
	OrganizationDir string

	// TitleDir is the sanitized "<NNNNN>_<title>" folder name.
	TitleDir string

	// FileName is the sanitized file name.
	FileName string

	// Dir is the computed destination directory.
	Dir string

	// Path is the computed destination file path.
	Path string
}

// NewJob creates a Job for row with computed paths under base.
//
// Folder names go through the folder sanitization policy, the file name
// through the file policy; see the ioutils package for the exact rules.
func NewJob(base string, index int, row ManifestRow) *Job {
	job := &Job{
		Row:             row,
		Index:           index,
		OrganizationDir: ioutils.SanitizeFolderName(row.Organization),
		FileName:        ioutils.SanitizeFileName(row.FileName),
	}
	job.TitleDir = fmt.Sprintf("%05d_%s", index, ioutils.SanitizeFolderName(row.Title))
	job.Dir = filepath.Join(base, job.OrganizationDir, job.TitleDir)
	job.Path = filepath.Join(job.Dir, job.FileName)
	return job
}

// RelPath returns the destination path relative to the output root,
// slash-separated. This is the form used in log messages and the form the
// file takes inside the final zip archive.
func (j *Job) RelPath() string {
	return path.Join(j.OrganizationDir, j.TitleDir, j.FileName)
}
