// Package ioutils provides file system utilities for corpuskit.
//
// This package contains functions for:
//   - Name sanitization for cross-platform compatibility
//   - Directory creation and resetting
//
// # Name Sanitization
//
// One configurable engine covers every name the downloader writes. A Policy
// holds the disallowed character set; two ready-made policies cover the two
// kinds of names that occur:
//
//	folder := ioutils.SanitizeFolderName("Org: R&D / 2023") // "Org__R&D___2023"
//	file := ioutils.SanitizeFileName("data.csv (backup)")   // "data.csv"
//
// Every sanitized name is free of its policy's disallowed characters, has
// no leading or trailing dot, and is at most MaxNameLength characters.
//
// # File Operations
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/downloads/Org/00001_Title")
//
//	// Start a run with a clean tree
//	err := ioutils.ResetDir("/downloads")
package ioutils
