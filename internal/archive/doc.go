// Package archive bundles a finished download tree into a zip held in
// memory, ready to be written next to the manifest or offered for upload.
package archive
