package ioutils

import (
	"regexp"
	"strings"
)

// MaxNameLength is the longest name Sanitize produces. Most filesystems
// cap a path component at 255.
const MaxNameLength = 255

// firstExtension matches the first ".ext" run in a raw file name.
// Manifest file names sometimes carry junk after the real extension
// ("report.pdf (final)(1)"), which gets cut here.
var firstExtension = regexp.MustCompile(`\.\w+`)

// A Policy describes how one kind of name is made filesystem-safe.
//
// All policies share the same pipeline: optionally cut the name after its
// first extension, replace every disallowed character, then trim edge dots
// and trailing whitespace and truncate to MaxNameLength characters. Only
// the disallowed set and the extension handling vary per policy.
type Policy struct {
	// Disallowed matches each character to replace with Replacement.
	Disallowed *regexp.Regexp

	// Replacement substitutes disallowed characters, one for one.
	Replacement string

	// KeepFirstExtension truncates the name immediately after the first
	// ".ext" sequence before any replacement happens.
	KeepFirstExtension bool
}

// FolderPolicy sanitizes directory names (organizations, titles).
//
// Disallowed: the Windows-reserved set, whitespace, dots, and control
// characters. Dots are disallowed so a title like "v1.2.3" cannot smuggle
// relative-path components into the tree.
var FolderPolicy = Policy{
	Disallowed:  regexp.MustCompile(`[<>:"/\\|?*\s.\x00-\x1f]`),
	Replacement: "_",
}

// FilePolicy sanitizes file names. The name is cut after its first
// extension, then punctuation and path characters are replaced. Dots and
// internal whitespace survive so "annual report 2023.pdf" stays readable.
var FilePolicy = Policy{
	Disallowed:         regexp.MustCompile(`[!@#$%^&*()+\-=\[\]{}|\\:;"'<>,/?\x00-\x1f]`),
	Replacement:        "_",
	KeepFirstExtension: true,
}

// Sanitize applies the policy to name.
//
// The result contains no disallowed character, never starts or ends with
// a dot, never ends with whitespace, and is at most MaxNameLength
// characters long. The result may be empty if nothing safe remains.
//
// Example:
//
//	FolderPolicy.Sanitize("A/B: C")          // "A_B__C"
//	FilePolicy.Sanitize("data.csv (backup)") // "data.csv"
func (p Policy) Sanitize(name string) string {
	if p.KeepFirstExtension {
		if loc := firstExtension.FindStringIndex(name); loc != nil {
			name = name[:loc[1]]
		}
	}

	name = p.Disallowed.ReplaceAllString(name, p.Replacement)

	if runes := []rune(name); len(runes) > MaxNameLength {
		name = string(runes[:MaxNameLength])
	}

	name = strings.TrimRight(name, ". ")
	name = strings.TrimLeft(name, ".")

	return name
}

// SanitizeFolderName makes a directory name safe using FolderPolicy.
func SanitizeFolderName(name string) string {
	return FolderPolicy.Sanitize(name)
}

// SanitizeFileName makes a file name safe using FilePolicy.
func SanitizeFileName(name string) string {
	return FilePolicy.Sanitize(name)
}
