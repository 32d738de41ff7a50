// Package render defines the output of a recompute: the render bundle and
// the surface that consumes it.
package render

import (
	"volview/internal/models"
	"volview/pkg/axis"
)

// Pane places one slice in the shared MultiView layout space. Layout
// coordinates are physical (mm) and ordered (row, col).
type Pane struct {
	Axis axis.Axis
	Main bool

	// Size is the slice shape in pixels as (rows, cols)
	Size [2]int

	// Scale maps pane pixels to layout units; Translate is the pane origin
	Scale     [2]float64
	Translate [2]float64

	// Ratio is the zoom relative to the slice's physical size
	Ratio   float64
	Opacity float64
}

// ToLayout maps a point in the pane's index frame into layout space
func (p Pane) ToLayout(pt Point2) Point2 {
	return Point2{pt[0]*p.Scale[0] + p.Translate[0], pt[1]*p.Scale[1] + p.Translate[1]}
}

// Extent returns the pane's (height, width) in layout units
func (p Pane) Extent() [2]float64 {
	return [2]float64{float64(p.Size[0]) * p.Scale[0], float64(p.Size[1]) * p.Scale[1]}
}

// Label is a text placement in layout space
type Label struct {
	Text     string
	Position Point2
}

// Slider is the canonical state of one control of the active mode. Range
// sliders use Value and Upper.
type Slider struct {
	Name  string
	Min   float64
	Max   float64
	Value float64
	Upper float64
	Range bool
}

// Bundle is everything a surface needs to draw one frame. It is built fresh
// on every recompute and never mutated afterwards.
type Bundle struct {
	Mode     Mode
	NDisplay int

	// CameraAngles is set for 3D modes
	CameraAngles *[3]float64

	// Slices are the 2D buffers: one for Slice, three for MultiView and Ortho
	Slices []*models.Slice

	// Volume is set when the whole volume is rendered
	Volume     *models.Volume
	ShowVolume bool

	Planes     []PlaneCut
	Overlays2D []Polyline2
	Overlays3D []Polyline3
	Panes      []Pane
	Labels     []Label
	Affine     *Affine
	ClipPlanes []ClipPlane

	ContrastLimits [2]float64
	Sliders        []Slider

	// Version is the session version the bundle was computed from. Any
	// change to cursor, window or mode view state yields a higher version.
	Version uint64
}

// Empty reports whether the bundle carries nothing to draw
func (b *Bundle) Empty() bool {
	return b == nil || (len(b.Slices) == 0 && b.Volume == nil)
}

// Slider returns the named slider state
func (b *Bundle) Slider(name string) (Slider, bool) {
	for _, s := range b.Sliders {
		if s.Name == name {
			return s, true
		}
	}
	return Slider{}, false
}

// Pane returns the layout of the pane showing a
func (b *Bundle) Pane(a axis.Axis) (Pane, bool) {
	for _, p := range b.Panes {
		if p.Axis == a {
			return p, true
		}
	}
	return Pane{}, false
}

// Surface consumes render bundles
type Surface interface {
	Present(b *Bundle)
}

// SurfaceFunc adapts a function to a Surface
type SurfaceFunc func(b *Bundle)

// Present calls f(b)
func (f SurfaceFunc) Present(b *Bundle) {
	f(b)
}
