// Package config provides configuration management for corpuskit.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//   - Struct-tag validation of loaded and flag-overridden settings
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Downloads to ./downloads
//	// Success counter starts at 0
//	// Label column "분류", grouping column "message_tree_id"
//
// # Loading from File
//
//	settings, err := config.Load(config.DefaultPath)
//	if err != nil {
//	    // Uses defaults if the file doesn't exist
//	}
//
// # Saving Settings
//
//	settings.DownloadsPath = "/data/downloads"
//	err := settings.Save(config.DefaultPath)
//
// # Validation
//
// Settings are validated on load. Command-line tools that override fields
// from flags call Validate() again afterwards:
//
//	settings.StartIndex = *startIndex
//	if err := settings.Validate(); err != nil { ... }
package config
