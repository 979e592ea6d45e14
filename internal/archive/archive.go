package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Build zips the directory tree rooted at root into memory.
//
// Entry names are slash-separated paths relative to root, so the archive
// unpacks back to the exact layout the downloader produced. Directories
// themselves get no entries; an empty directory (a job that failed before
// its file arrived) leaves no trace in the archive.
//
// Example:
//
//	data, err := archive.Build(settings.DownloadsPath)
//	if err != nil {
//		return err
//	}
//	os.WriteFile(archive.Name(manifestPath), data, 0644)
func Build(root string) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		entry, err := w.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		file, err := os.Open(path)
		if err != nil {
			return err
		}
		if _, err := io.Copy(entry, file); err != nil {
			file.Close()
			return err
		}
		return file.Close()
	})
	if walkErr != nil {
		w.Close()
		return nil, fmt.Errorf("archive %s: %w", root, walkErr)
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Name returns the archive filename for a manifest: the manifest's stem
// with a .zip extension. Name("data/민원목록.xlsx") is "민원목록.zip".
func Name(manifestPath string) string {
	base := filepath.Base(manifestPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".zip"
}
