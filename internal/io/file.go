package ioutils

import (
	"os"
)

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
//
// Example:
//
//	err := EnsureDir("/downloads/Org/00001_Title")
//	// Creates /downloads, /downloads/Org, ... if needed
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// ResetDir removes a directory tree and recreates it empty.
//
// A path that does not exist yet is not an error; the directory is simply
// created. Used to give every download run a clean output tree.
//
// Example:
//
//	err := ResetDir("/downloads")
func ResetDir(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return err
	}
	return EnsureDir(path)
}
