// Package script replays YAML interaction scripts against a controller so
// a viewing session can run without a display.
package script

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"volview/internal/logging"
	"volview/internal/models"
	"volview/pkg/axis"
	"volview/pkg/modes"
	"volview/pkg/render"
)

// ErrInvalidStep is returned for steps that set no action or more than one
var ErrInvalidStep = errors.New("invalid script step")

// PlaneStep moves one Ortho or MultiView plane
type PlaneStep struct {
	Axis     axis.Axis `yaml:"axis"`
	Position int       `yaml:"position"`
}

// ClipStep sets the clip range of one axis
type ClipStep struct {
	Axis  axis.Axis `yaml:"axis"`
	Range [2]int    `yaml:"range"`
}

// WindowStep sets the display window. Auto and Reset take precedence over
// explicit values, in that order.
type WindowStep struct {
	Center float64 `yaml:"center"`
	Width  float64 `yaml:"width"`
	Auto   bool    `yaml:"auto,omitempty"`
	Reset  bool    `yaml:"reset,omitempty"`
}

// Step is one scripted user action. Exactly one field must be set.
type Step struct {
	Mode        *render.Mode `yaml:"mode,omitempty"`
	Axis        *axis.Axis   `yaml:"axis,omitempty"`
	Cursor      *[3]int      `yaml:"cursor,omitempty"`
	Plane       *PlaneStep   `yaml:"plane,omitempty"`
	Rotation    *[3]float64  `yaml:"rotation,omitempty"`
	Translation *[3]float64  `yaml:"translation,omitempty"`
	Clip        *ClipStep    `yaml:"clip,omitempty"`
	Window      *WindowStep  `yaml:"window,omitempty"`
	Crosshairs  *bool        `yaml:"crosshairs,omitempty"`
	ShowVolume  *bool        `yaml:"showVolume,omitempty"`
	Reset       bool         `yaml:"reset,omitempty"`
	Snapshot    string       `yaml:"snapshot,omitempty"`
}

// Sink receives the current bundle at every snapshot step
type Sink func(name string, b *render.Bundle) error

func (s Step) actions() int {
	n := 0
	for _, set := range []bool{
		s.Mode != nil, s.Axis != nil, s.Cursor != nil, s.Plane != nil,
		s.Rotation != nil, s.Translation != nil, s.Clip != nil, s.Window != nil,
		s.Crosshairs != nil, s.ShowVolume != nil, s.Reset, s.Snapshot != "",
	} {
		if set {
			n++
		}
	}
	return n
}

// Validate checks that the step names exactly one action
func (s Step) Validate() error {
	if n := s.actions(); n != 1 {
		return fmt.Errorf("%w: expected one action, got %d", ErrInvalidStep, n)
	}
	return nil
}

// Parse decodes a YAML list of steps
func Parse(data []byte) ([]Step, error) {
	var steps []Step
	if err := yaml.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("error parsing script: %w", err)
	}
	for i, s := range steps {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return steps, nil
}

// Load reads and decodes a script file
func Load(path string) ([]Step, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading script: %w", err)
	}
	return Parse(data)
}

// Run applies steps in order. A nil sink skips snapshot steps.
func Run(ctrl *modes.Controller, steps []Step, sink Sink) error {
	for i, s := range steps {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		b := apply(ctrl, s)
		logging.Logger().Debug("script step", "step", i+1, "mode", ctrl.Machine().Active(), "version", b.Version)

		if s.Snapshot == "" || sink == nil {
			continue
		}
		if err := sink(s.Snapshot, ctrl.Last()); err != nil {
			return fmt.Errorf("step %d: snapshot %q: %w", i+1, s.Snapshot, err)
		}
	}
	return nil
}

func apply(ctrl *modes.Controller, s Step) *render.Bundle {
	switch {
	case s.Mode != nil:
		return ctrl.SwitchMode(*s.Mode)
	case s.Axis != nil:
		return ctrl.SetMainAxis(int(*s.Axis))
	case s.Cursor != nil:
		return ctrl.SetCursor(models.Cursor(*s.Cursor))
	case s.Plane != nil:
		return ctrl.SetPlane(s.Plane.Axis, s.Plane.Position)
	case s.Rotation != nil:
		r := s.Rotation
		return ctrl.SetRotation(r[0], r[1], r[2])
	case s.Translation != nil:
		t := s.Translation
		return ctrl.SetTranslation(t[0], t[1], t[2])
	case s.Clip != nil:
		return ctrl.SetClip(s.Clip.Axis, s.Clip.Range[0], s.Clip.Range[1])
	case s.Window != nil:
		switch {
		case s.Window.Auto:
			return ctrl.AutoWindow()
		case s.Window.Reset:
			return ctrl.ResetWindow()
		}
		return ctrl.SetWindow(s.Window.Center, s.Window.Width)
	case s.Crosshairs != nil:
		return ctrl.SetShowCrosshairs(*s.Crosshairs)
	case s.ShowVolume != nil:
		return ctrl.SetShowVolume(*s.ShowVolume)
	case s.Reset:
		return ctrl.Reset()
	}
	return ctrl.Last()
}
