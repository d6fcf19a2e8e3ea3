package model

import (
	"fmt"
	"testing"
)

func TestDefaultAppConfigMatchesDefaultSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultSettings()

	if cfg.DefaultStrategy != defaults.Strategy {
		t.Errorf("Strategy mismatch: config=%s settings=%s", cfg.DefaultStrategy, defaults.Strategy)
	}
	if cfg.DefaultFillGaps != defaults.FillGaps {
		t.Errorf("FillGaps mismatch: config=%v settings=%v", cfg.DefaultFillGaps, defaults.FillGaps)
	}
	if cfg.DefaultFormat != FormatChars {
		t.Errorf("expected default format %s, got %s", FormatChars, cfg.DefaultFormat)
	}
	if cfg.Theme != "system" {
		t.Errorf("expected default theme=system, got %s", cfg.Theme)
	}
	if cfg.RecentFiles == nil {
		t.Error("RecentFiles should not be nil")
	}
}

func TestApplyToSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultStrategy = StrategyDense
	cfg.DefaultFillGaps = false

	s := DefaultSettings()
	cfg.ApplyToSettings(&s)

	if s.Strategy != StrategyDense {
		t.Errorf("expected Strategy=dense, got %s", s.Strategy)
	}
	if s.FillGaps {
		t.Error("expected FillGaps=false")
	}
}

func TestApplyToSettingsKeepsStrategyWhenUnset(t *testing.T) {
	cfg := AppConfig{DefaultFillGaps: true}
	s := PlanSettings{Strategy: StrategyDense}
	cfg.ApplyToSettings(&s)

	if s.Strategy != StrategyDense {
		t.Errorf("expected Strategy to stay dense, got %s", s.Strategy)
	}
}

func TestAddRecentFile(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentFile("a.in")
	cfg.AddRecentFile("b.in")
	cfg.AddRecentFile("a.in")

	if len(cfg.RecentFiles) != 2 {
		t.Fatalf("expected 2 recent files, got %d", len(cfg.RecentFiles))
	}
	if cfg.RecentFiles[0] != "a.in" || cfg.RecentFiles[1] != "b.in" {
		t.Errorf("unexpected order %v", cfg.RecentFiles)
	}

	for i := 0; i < 20; i++ {
		cfg.AddRecentFile(fmt.Sprintf("f%d.in", i))
	}
	if len(cfg.RecentFiles) != maxRecentFiles {
		t.Errorf("expected list trimmed to %d, got %d", maxRecentFiles, len(cfg.RecentFiles))
	}
	if cfg.RecentFiles[0] != "f19.in" {
		t.Errorf("expected newest first, got %s", cfg.RecentFiles[0])
	}
}
