package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ScrollCount != 50 {
		t.Errorf("ScrollCount = %d, want 50", cfg.ScrollCount)
	}
	if cfg.MinCaptures != 10 {
		t.Errorf("MinCaptures = %d, want 10", cfg.MinCaptures)
	}
	if cfg.StrictScreen {
		t.Error("strict classification should be off by default")
	}
	if cfg.BootTimeout != 5*time.Minute {
		t.Errorf("BootTimeout = %s, want 5m", cfg.BootTimeout)
	}
}

func TestLoadFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "collector.yaml")
	content := "app_package: com.other.app\nscroll_count: 12\nstrict_screen: true\nmanual_wait: 1m\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.AppPackage != "com.other.app" {
		t.Errorf("AppPackage = %q, want com.other.app", cfg.AppPackage)
	}
	if cfg.ScrollCount != 12 {
		t.Errorf("ScrollCount = %d, want 12", cfg.ScrollCount)
	}
	if !cfg.StrictScreen {
		t.Error("expected strict classification enabled")
	}
	if cfg.ManualWait != time.Minute {
		t.Errorf("ManualWait = %s, want 1m", cfg.ManualWait)
	}
	// Untouched keys keep their defaults.
	if cfg.MinCaptures != 10 {
		t.Errorf("MinCaptures = %d, want 10", cfg.MinCaptures)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for an explicitly named missing file")
	}
}
