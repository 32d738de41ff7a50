package modes

import (
	"volview/internal/models"
	"volview/pkg/axis"
	"volview/pkg/render"
	"volview/pkg/session"
	"volview/pkg/visualization"
)

// MultiViewEngine shows the three orthogonal slices at once: the main axis
// enlarged, the other two scaled down beside it. All placement derives from
// physical extents (voxels times spacing) so any aspect ratio lays out
// correctly.
type MultiViewEngine struct {
	sess     *session.Session
	mainAxis axis.Axis
	subScale float64
	gap      float64
}

func newMultiViewEngine(sess *session.Session, opts Options) *MultiViewEngine {
	return &MultiViewEngine{sess: sess, subScale: opts.SubPaneScale, gap: opts.PaneGap}
}

func (e *MultiViewEngine) activate() {
	e.SetMainAxis(int(axis.Axial))
}

// MainAxis returns the axis shown in the enlarged pane
func (e *MultiViewEngine) MainAxis() axis.Axis {
	return e.mainAxis
}

// SetMainAxis selects the enlarged pane, clamping i to a valid axis
func (e *MultiViewEngine) SetMainAxis(i int) {
	if a := axis.Clamp(i); a != e.mainAxis {
		e.mainAxis = a
		e.sess.Touch()
	}
}

// Slices returns one slice per axis, in axis order, each taken at the
// cursor value of that axis
func (e *MultiViewEngine) Slices() []*models.Slice {
	if !e.sess.Bound() {
		return nil
	}
	v := visualization.NewViewer(e.sess.Volume())
	pos := e.sess.Position()
	out := make([]*models.Slice, 0, axis.Count)
	for _, a := range axis.All {
		out = append(out, v.ExtractSlice(a, pos[a]))
	}
	return out
}

// Layout places the three panes in axis order. The main pane sits at the
// origin at physical scale; the sub panes are scaled by the sub-pane
// factor and stacked in a column to its right.
func (e *MultiViewEngine) Layout() []render.Pane {
	if !e.sess.Bound() {
		return nil
	}
	panes := make([]render.Pane, axis.Count)

	main := e.pane(e.mainAxis, 1)
	main.Main = true
	panes[e.mainAxis] = main

	ext := main.Extent()
	gap := e.gap * ext[0]
	left := ext[1] + e.gap*ext[1]

	top := 0.0
	subA, subB := e.mainAxis.Others()
	for _, a := range []axis.Axis{subA, subB} {
		p := e.pane(a, e.subScale)
		p.Translate = [2]float64{top, left}
		panes[a] = p
		top += p.Extent()[0] + gap
	}
	return panes
}

func (e *MultiViewEngine) pane(a axis.Axis, ratio float64) render.Pane {
	rowAxis, colAxis := a.Others()
	return render.Pane{
		Axis:    a,
		Size:    [2]int{e.sess.Dimension(rowAxis), e.sess.Dimension(colAxis)},
		Scale:   [2]float64{ratio * e.sess.SpacingOf(rowAxis), ratio * e.sess.SpacingOf(colAxis)},
		Ratio:   ratio,
		Opacity: 1,
	}
}

// Labels anchors each pane's plane name at the pane origin
func (e *MultiViewEngine) Labels(panes []render.Pane) []render.Label {
	out := make([]render.Label, 0, len(panes))
	for _, p := range panes {
		out = append(out, render.Label{Text: p.Axis.Label(), Position: render.Point2(p.Translate)})
	}
	return out
}

// CrosshairFor returns the cursor lines of the other two axes in the index
// frame of the pane showing a
func (e *MultiViewEngine) CrosshairFor(a axis.Axis) []render.Polyline2 {
	return crosshair(e.sess, a)
}

func (e *MultiViewEngine) compute(b *render.Bundle) {
	b.Slices = e.Slices()
	b.Panes = e.Layout()
	b.Labels = e.Labels(b.Panes)
	for _, a := range axis.All {
		b.Overlays2D = append(b.Overlays2D, e.CrosshairFor(a)...)
	}
	b.Sliders = cursorSliders(e.sess)
}

func (e *MultiViewEngine) applySlider(name string, values []float64) bool {
	return applyCursorSlider(e.sess, name, values)
}

func applyCursorSlider(sess *session.Session, name string, values []float64) bool {
	if len(values) == 0 {
		return false
	}
	for _, a := range axis.All {
		if cursorSlider(a) == name {
			return sess.SetAxisPosition(a, int(values[0]))
		}
	}
	return false
}
