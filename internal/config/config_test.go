package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{
		APIBaseURL:   "http://localhost:8080",
		JournalTable: "/tmp/journals.yaml",
		YearMin:      1900,
		YearMax:      2030,
		FuzzyDefault: true,
	}
	if err := cfg.Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != (Config{}) {
		t.Errorf("missing file must yield the zero config, got %+v", cfg)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(ConfigPath(dir), []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("malformed config must fail to load")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", InspireciteDir)
	if err := (&Config{YearMin: 1800, YearMax: 2100}).Save(dir); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(ConfigPath(dir)); err != nil {
		t.Errorf("config file not written: %v", err)
	}
}

func TestDirEnvOverride(t *testing.T) {
	t.Setenv("INSPIRECITE_DIR", "/custom/dir")
	if got := Dir(); got != "/custom/dir" {
		t.Errorf("Dir() = %s, want /custom/dir", got)
	}
}

func TestValidateJournalTable(t *testing.T) {
	if err := ValidateJournalTable(""); err != nil {
		t.Errorf("empty path must be valid: %v", err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "journals.yaml")
	if err := ValidateJournalTable(path); err == nil {
		t.Error("missing file must fail validation")
	}
	if err := os.WriteFile(path, []byte("journals: {}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := ValidateJournalTable(path); err != nil {
		t.Errorf("existing file must pass: %v", err)
	}
	if err := ValidateJournalTable(dir); err == nil {
		t.Error("directory must fail validation")
	}
}

func TestValidateYearRange(t *testing.T) {
	tests := []struct {
		min, max int
		ok       bool
	}{
		{0, 0, true},
		{1900, 2030, true},
		{2030, 1900, false},
		{2000, 2000, false},
		{500, 2000, false},
		{1900, 3500, false},
	}
	for _, tt := range tests {
		err := ValidateYearRange(tt.min, tt.max)
		if (err == nil) != tt.ok {
			t.Errorf("ValidateYearRange(%d, %d) = %v, want ok=%v", tt.min, tt.max, err, tt.ok)
		}
	}
}
