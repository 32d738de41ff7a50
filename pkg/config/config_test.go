package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"volview/pkg/render"
)

// TestDefaultConfig verifies the stock values
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Viewer.InitialMode != render.Slice {
		t.Errorf("Expected initial mode slice, got %v", cfg.Viewer.InitialMode)
	}
	if cfg.Viewer.SubPaneScale != 0.4 || cfg.Viewer.PaneGap != 0.05 {
		t.Errorf("Expected pane scale 0.4 and gap 0.05, got %f and %f", cfg.Viewer.SubPaneScale, cfg.Viewer.PaneGap)
	}
	if cfg.Window.Center != 40 || cfg.Window.Width != 400 {
		t.Errorf("Expected window (40, 400), got (%f, %f)", cfg.Window.Center, cfg.Window.Width)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected default config to be valid, got %v", err)
	}

	opts := cfg.Options()
	if opts.AngleLimit != 180 || opts.TranslateLimit != 200 || !opts.ShowCrosshairs {
		t.Errorf("Unexpected options %+v", opts)
	}
}

// TestLoadMissingConfig verifies that a missing file yields defaults
func TestLoadMissingConfig(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Failed to load missing config: %v", err)
	}
	if cfg.Viewer.SubPaneScale != 0.4 {
		t.Errorf("Expected default sub pane scale, got %f", cfg.Viewer.SubPaneScale)
	}
}

// TestLoadConfig verifies partial YAML overrides
func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "volview.yaml")
	content := `
viewer:
  initialMode: multiview
  subPaneScale: 0.5
volume:
  spacing: {z: 2.5, y: 0.7, x: 0.7}
window:
  auto: true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Viewer.InitialMode != render.MultiView {
		t.Errorf("Expected initial mode multiview, got %v", cfg.Viewer.InitialMode)
	}
	if cfg.Viewer.SubPaneScale != 0.5 || cfg.Viewer.PaneGap != 0.05 {
		t.Errorf("Expected scale 0.5 and default gap, got %f and %f", cfg.Viewer.SubPaneScale, cfg.Viewer.PaneGap)
	}
	if cfg.Volume.Spacing.Array() != [3]float64{2.5, 0.7, 0.7} {
		t.Errorf("Unexpected spacing %+v", cfg.Volume.Spacing)
	}
	if !cfg.Window.Auto || cfg.Window.Center != 40 {
		t.Errorf("Expected auto window with default center, got %+v", cfg.Window)
	}
}

// TestLoadInvalidConfig verifies that bad values are rejected
func TestLoadInvalidConfig(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	os.WriteFile(bad, []byte("volume:\n  spacing: {z: 0, y: 1, x: 1}\n"), 0644)
	if _, err := LoadConfig(bad); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}

	window := filepath.Join(dir, "window.yaml")
	os.WriteFile(window, []byte("window:\n  width: 0\n"), 0644)
	if _, err := LoadConfig(window); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for zero window width, got %v", err)
	}

	mode := filepath.Join(dir, "mode.yaml")
	os.WriteFile(mode, []byte("viewer:\n  initialMode: hologram\n"), 0644)
	if _, err := LoadConfig(mode); err == nil {
		t.Error("Expected error for unknown mode, got nil")
	}
}

// TestSaveConfigRoundTrip verifies that a saved config loads back
func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "volview.yaml")
	cfg := DefaultConfig()
	cfg.Viewer.InitialMode = render.Ortho
	cfg.Output.PixelsPerMM = 3

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}
	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}
	if loaded.Viewer.InitialMode != render.Ortho || loaded.Output.PixelsPerMM != 3 {
		t.Errorf("Saved values not restored: %+v", loaded.Viewer)
	}

	cfg.Output.PixelsPerMM = 0
	if err := SaveConfig(cfg, path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected invalid config to be refused, got %v", err)
	}
}
