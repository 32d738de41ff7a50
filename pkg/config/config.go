// Package config provides configuration loading and management for volview.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"volview/internal/models"
	"volview/pkg/modes"
	"volview/pkg/render"
)

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid config")

// Spacing is a physical voxel size in mm
type Spacing struct {
	Z float64 `yaml:"z"`
	Y float64 `yaml:"y"`
	X float64 `yaml:"x"`
}

// Array returns the spacing in volume order (z, y, x)
func (s Spacing) Array() [3]float64 {
	return [3]float64{s.Z, s.Y, s.X}
}

// Config represents the application configuration loaded from YAML
type Config struct {
	// Viewer parameters
	Viewer struct {
		// InitialMode is the mode shown after startup
		InitialMode render.Mode `yaml:"initialMode"`

		// SubPaneScale shrinks the two MultiView sub panes
		SubPaneScale float64 `yaml:"subPaneScale"`

		// PaneGap is the MultiView gap as a fraction of the main pane
		PaneGap float64 `yaml:"paneGap"`

		ShowCrosshairs bool       `yaml:"showCrosshairs"`
		ShowVolume     bool       `yaml:"showVolume"`
		CameraAngles   [3]float64 `yaml:"cameraAngles"`
	} `yaml:"viewer"`

	// Contrast window parameters
	Window struct {
		Center float64 `yaml:"center"`
		Width  float64 `yaml:"width"`

		// Auto derives the window from intensity percentiles instead
		Auto bool `yaml:"auto"`
	} `yaml:"window"`

	// Volume parameters
	Volume struct {
		// Spacing is used when the source carries no spacing metadata
		Spacing Spacing `yaml:"spacing"`
	} `yaml:"volume"`

	// VolumeRender slider bounds
	Transform struct {
		TranslateLimit float64 `yaml:"translateLimit"`
		AngleLimit     float64 `yaml:"angleLimit"`
	} `yaml:"transform"`

	// Output parameters
	Output struct {
		// Verbose enables debug logging
		Verbose bool `yaml:"verbose"`

		// SnapshotDir is where snapshots are written
		SnapshotDir string `yaml:"snapshotDir"`

		// PixelsPerMM scales snapshots of physical layouts
		PixelsPerMM float64 `yaml:"pixelsPerMM"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	opts := modes.DefaultOptions()
	cfg.Viewer.InitialMode = render.Slice
	cfg.Viewer.SubPaneScale = opts.SubPaneScale
	cfg.Viewer.PaneGap = opts.PaneGap
	cfg.Viewer.ShowCrosshairs = opts.ShowCrosshairs
	cfg.Viewer.ShowVolume = opts.ShowVolume
	cfg.Viewer.CameraAngles = opts.CameraAngles

	cfg.Window.Center = models.DefaultWindowCenter
	cfg.Window.Width = models.DefaultWindowWidth

	cfg.Volume.Spacing = Spacing{Z: 1, Y: 1, X: 1}

	cfg.Transform.TranslateLimit = opts.TranslateLimit
	cfg.Transform.AngleLimit = opts.AngleLimit

	cfg.Output.Verbose = false
	cfg.Output.SnapshotDir = "snapshots"
	cfg.Output.PixelsPerMM = 1

	return cfg
}

// Options converts the viewer settings into mode options
func (c *Config) Options() modes.Options {
	return modes.Options{
		SubPaneScale:   c.Viewer.SubPaneScale,
		PaneGap:        c.Viewer.PaneGap,
		ShowCrosshairs: c.Viewer.ShowCrosshairs,
		ShowVolume:     c.Viewer.ShowVolume,
		CameraAngles:   c.Viewer.CameraAngles,
		TranslateLimit: c.Transform.TranslateLimit,
		AngleLimit:     c.Transform.AngleLimit,
	}
}

// Validate checks value ranges
func (c *Config) Validate() error {
	for name, s := range map[string]float64{"z": c.Volume.Spacing.Z, "y": c.Volume.Spacing.Y, "x": c.Volume.Spacing.X} {
		if !(s > 0) {
			return fmt.Errorf("%w: volume.spacing.%s must be > 0, got %v", ErrInvalidConfig, name, s)
		}
	}
	if !(c.Viewer.SubPaneScale > 0) {
		return fmt.Errorf("%w: viewer.subPaneScale must be > 0, got %v", ErrInvalidConfig, c.Viewer.SubPaneScale)
	}
	if c.Viewer.PaneGap < 0 {
		return fmt.Errorf("%w: viewer.paneGap must be >= 0, got %v", ErrInvalidConfig, c.Viewer.PaneGap)
	}
	if !(c.Window.Width > 0) {
		return fmt.Errorf("%w: window.width must be > 0, got %v", ErrInvalidConfig, c.Window.Width)
	}
	if c.Transform.TranslateLimit < 0 || c.Transform.AngleLimit < 0 {
		return fmt.Errorf("%w: transform limits must be >= 0", ErrInvalidConfig)
	}
	if !(c.Output.PixelsPerMM > 0) {
		return fmt.Errorf("%w: output.pixelsPerMM must be > 0, got %v", ErrInvalidConfig, c.Output.PixelsPerMM)
	}
	return nil
}

// LoadConfig reads configPath over the defaults. A missing file yields the
// defaults; a present one must validate.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return cfg, nil
	case err != nil:
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return cfg, nil
}

// SaveConfig validates cfg and writes it to configPath, creating parent
// directories as needed
func SaveConfig(cfg *Config, configPath string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	return os.WriteFile(configPath, data, 0644)
}

// CreateDefaultConfigFile writes the defaults to configPath
func CreateDefaultConfigFile(configPath string) error {
	return SaveConfig(DefaultConfig(), configPath)
}
