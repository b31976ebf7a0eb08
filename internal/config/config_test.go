package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LedgerFilename != "ledger.csv" {
		t.Errorf("LedgerFilename = %q, want default", cfg.LedgerFilename)
	}
	if cfg.HistoryPageSize != 20 {
		t.Errorf("HistoryPageSize = %d, want 20", cfg.HistoryPageSize)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `{"ledger_filename": "habitos.csv", "disabled_tools": ["habit_export"]}`
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LedgerFilename != "habitos.csv" {
		t.Errorf("LedgerFilename = %q, want habitos.csv", cfg.LedgerFilename)
	}
	if cfg.ArchiveFilename != "archive.db" {
		t.Errorf("ArchiveFilename = %q, want default preserved", cfg.ArchiveFilename)
	}
	if len(cfg.DisabledTools) != 1 || cfg.DisabledTools[0] != "habit_export" {
		t.Errorf("DisabledTools = %v", cfg.DisabledTools)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("Load should fail on invalid JSON")
	}
}

func TestMergeDeduplicatesArrays(t *testing.T) {
	base := &Config{AllowedPaths: []string{"/a", "/b"}}
	overlay := &Config{AllowedPaths: []string{" /b ", "/c", ""}}
	merged := Merge(base, overlay)

	want := []string{"/a", "/b", "/c"}
	if len(merged.AllowedPaths) != len(want) {
		t.Fatalf("AllowedPaths = %v, want %v", merged.AllowedPaths, want)
	}
	for i, p := range want {
		if merged.AllowedPaths[i] != p {
			t.Errorf("AllowedPaths[%d] = %q, want %q", i, merged.AllowedPaths[i], p)
		}
	}
}

func TestMergeBooleanOverlayWins(t *testing.T) {
	merged := Merge(&Config{}, &Config{AllowUnsafePaths: true})
	if !merged.AllowUnsafePaths {
		t.Error("AllowUnsafePaths should be true after merge")
	}
}
