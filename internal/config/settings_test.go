package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultSettings_Valid(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("default settings must validate, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for missing file", err)
	}

	defaults := DefaultSettings()
	if settings.DownloadsPath != defaults.DownloadsPath {
		t.Errorf("DownloadsPath = %q, want default %q", settings.DownloadsPath, defaults.DownloadsPath)
	}
	if settings.LabelColumn != "분류" {
		t.Errorf("LabelColumn = %q, want %q", settings.LabelColumn, "분류")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "corpuskit.json")

	settings := DefaultSettings()
	settings.DownloadsPath = "/data/out"
	settings.StartIndex = 2087
	settings.GroupColumn = "thread_id"

	if err := settings.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.DownloadsPath != "/data/out" {
		t.Errorf("DownloadsPath = %q, want %q", loaded.DownloadsPath, "/data/out")
	}
	if loaded.StartIndex != 2087 {
		t.Errorf("StartIndex = %d, want 2087", loaded.StartIndex)
	}
	if loaded.GroupColumn != "thread_id" {
		t.Errorf("GroupColumn = %q, want %q", loaded.GroupColumn, "thread_id")
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"negative timeout", func(s *Settings) { s.TimeoutSeconds = -1 }},
		{"negative start index", func(s *Settings) { s.StartIndex = -5 }},
		{"empty downloads path", func(s *Settings) { s.DownloadsPath = "" }},
		{"empty label column", func(s *Settings) { s.LabelColumn = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultSettings()
			tt.mutate(settings)
			if err := settings.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}
