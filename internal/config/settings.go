package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// DefaultPath is where the command-line tools look for settings when no
// -config flag is given.
const DefaultPath = "corpuskit.json"

// Settings holds all configuration options.
type Settings struct {
	// Download settings
	DownloadsPath  string `json:"downloads_path" validate:"required"`
	UserAgent      string `json:"user_agent"`
	TimeoutSeconds int    `json:"timeout_seconds" validate:"min=0"`
	StartIndex     int    `json:"start_index" validate:"min=0"`
	KeepExisting   bool   `json:"keep_existing"`

	// Rebalance settings
	LabelColumn string `json:"label_column" validate:"required"`
	GroupColumn string `json:"group_column"`
}

var validate = validator.New()

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		DownloadsPath:  "downloads",
		UserAgent:      "corpuskit/1.0",
		TimeoutSeconds: 0,
		StartIndex:     0,
		KeepExisting:   false,

		LabelColumn: "분류",
		GroupColumn: "message_tree_id",
	}
}

// Load reads settings from a JSON file.
//
// A missing file is not an error; defaults are returned. Values present in
// the file override defaults field by field. The result is validated
// before it is returned.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks the settings against their struct tags. Flag overrides
// applied after Load should be re-validated by calling this again.
func (s *Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}
