package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoadConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("VIDEOPARTITIONER_HOME", home)

	if !IsFirstRun() {
		t.Fatalf("expected first run without config file")
	}
	if err := SetDefaultOutputDir("/srv/parts"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := SetDefaultTargetGb(3.99); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := MarkFirstRunDone(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultOutputDir != "/srv/parts" || cfg.DefaultTargetGb != 3.99 || !cfg.FirstRunCompleted {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if GetDefaultOutputDir() != "/srv/parts" || GetDefaultTargetGb() != 3.99 {
		t.Fatalf("unexpected getters")
	}

	entries, err := os.ReadDir(home)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "config.json" {
		t.Fatalf("expected only config.json after atomic save, got %v", entries)
	}
}

func TestLoadConfigIgnoresBrokenFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("VIDEOPARTITIONER_HOME", home)
	if err := os.WriteFile(filepath.Join(home, "config.json"), []byte("{broken"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	cfg, err := LoadConfig()
	if err != nil || cfg.DefaultOutputDir != "" {
		t.Fatalf("expected empty config, got %+v (%v)", cfg, err)
	}
}

func TestLogPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("VIDEOPARTITIONER_HOME", home)
	p, err := LogPath()
	if err != nil || p != filepath.Join(home, "videopartitioner.log") {
		t.Fatalf("unexpected log path: %s (%v)", p, err)
	}
}
