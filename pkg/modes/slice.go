package modes

import (
	"volview/internal/models"
	"volview/pkg/axis"
	"volview/pkg/render"
	"volview/pkg/session"
	"volview/pkg/visualization"
)

// SliceEngine shows one slice perpendicular to the main axis
type SliceEngine struct {
	sess           *session.Session
	mainAxis       axis.Axis
	showCrosshairs bool
}

func newSliceEngine(sess *session.Session, opts Options) *SliceEngine {
	return &SliceEngine{sess: sess, showCrosshairs: opts.ShowCrosshairs}
}

func (e *SliceEngine) activate() {
	e.SetMainAxis(int(axis.Axial))
}

// MainAxis returns the viewing axis
func (e *SliceEngine) MainAxis() axis.Axis {
	return e.mainAxis
}

// SetMainAxis selects the viewing axis, clamping i to a valid axis. The
// cursor component on the new axis is pulled down to the axis maximum if
// it exceeds it.
func (e *SliceEngine) SetMainAxis(i int) {
	if a := axis.Clamp(i); a != e.mainAxis {
		e.mainAxis = a
		e.sess.Touch()
	}
	e.sess.SetAxisPosition(e.mainAxis, e.sess.Position()[e.mainAxis])
}

// MaxIndex is the largest selectable slice on the main axis
func (e *SliceEngine) MaxIndex() int {
	return e.sess.MaxIndex(e.mainAxis)
}

// SetSliceIndex moves the cursor along the main axis
func (e *SliceEngine) SetSliceIndex(i int) bool {
	return e.sess.SetAxisPosition(e.mainAxis, i)
}

// ResetSlice moves to the middle slice of the main axis
func (e *SliceEngine) ResetSlice() bool {
	if max := e.MaxIndex(); max > 0 {
		return e.SetSliceIndex(max / 2)
	}
	return false
}

// SetShowCrosshairs toggles the overlay lines
func (e *SliceEngine) SetShowCrosshairs(show bool) {
	if show != e.showCrosshairs {
		e.showCrosshairs = show
		e.sess.Touch()
	}
}

// CurrentSlice returns the slice at the cursor along the main axis, or nil
// when no volume is bound
func (e *SliceEngine) CurrentSlice() *models.Slice {
	if !e.sess.Bound() {
		return nil
	}
	return visualization.NewViewer(e.sess.Volume()).ExtractSlice(e.mainAxis, e.sess.Position()[e.mainAxis])
}

// CrosshairLines returns the two cut lines of the other axes in the
// displayed slice's own frame
func (e *SliceEngine) CrosshairLines() []render.Polyline2 {
	if !e.showCrosshairs {
		return nil
	}
	return crosshair(e.sess, e.mainAxis)
}

func (e *SliceEngine) compute(b *render.Bundle) {
	b.Slices = []*models.Slice{e.CurrentSlice()}
	if e.showCrosshairs {
		b.Overlays2D = append(b.Overlays2D, border(e.sess, e.mainAxis))
		b.Overlays2D = append(b.Overlays2D, e.CrosshairLines()...)
	}
	b.Sliders = []render.Slider{{
		Name:  SliderSlice,
		Max:   float64(e.MaxIndex()),
		Value: float64(e.sess.Position()[e.mainAxis]),
	}}
}

func (e *SliceEngine) applySlider(name string, values []float64) bool {
	if name != SliderSlice || len(values) == 0 {
		return false
	}
	return e.SetSliceIndex(int(values[0]))
}
