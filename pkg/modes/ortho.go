package modes

import (
	"volview/internal/models"
	"volview/pkg/axis"
	"volview/pkg/render"
	"volview/pkg/session"
	"volview/pkg/visualization"
)

// OrthoEngine shows three movable cutting planes in 3D. Plane positions are
// the shared cursor.
type OrthoEngine struct {
	sess       *session.Session
	showVolume bool
}

func newOrthoEngine(sess *session.Session, opts Options) *OrthoEngine {
	return &OrthoEngine{sess: sess, showVolume: opts.ShowVolume}
}

// PlanePosition is the offset of a's plane along its normal in index space
func (e *OrthoEngine) PlanePosition(a axis.Axis) float64 {
	return float64(e.sess.Position()[a])
}

// SetPlane moves a's plane, clamped into the volume
func (e *OrthoEngine) SetPlane(a axis.Axis, position int) bool {
	return e.sess.SetAxisPosition(a, position)
}

// ResetPlane moves a's plane to the middle of the volume
func (e *OrthoEngine) ResetPlane(a axis.Axis) bool {
	if max := e.sess.MaxIndex(a); max > 0 {
		return e.SetPlane(a, max/2)
	}
	return false
}

// SetShowVolume toggles the full-volume render behind the planes
func (e *OrthoEngine) SetShowVolume(show bool) {
	if show != e.showVolume {
		e.showVolume = show
		e.sess.Touch()
	}
}

// Planes returns the three cutting planes in axis order
func (e *OrthoEngine) Planes() []render.PlaneCut {
	out := make([]render.PlaneCut, 0, axis.Count)
	for _, a := range axis.All {
		n := render.Unit(a)
		out = append(out, render.PlaneCut{Axis: a, Position: n.Scale(e.PlanePosition(a)), Normal: n})
	}
	return out
}

// FrameOutline returns the closed rectangle where a's plane meets the
// volume's bounding box
func (e *OrthoEngine) FrameOutline(a axis.Axis) render.Polyline3 {
	rowAxis, colAxis := a.Others()
	d1 := float64(e.sess.Dimension(rowAxis))
	d2 := float64(e.sess.Dimension(colAxis))

	corners := [5][2]float64{{0, 0}, {d1, 0}, {d1, d2}, {0, d2}, {0, 0}}
	pts := make([]render.Vec3, len(corners))
	for i, c := range corners {
		pts[i][a] = e.PlanePosition(a)
		pts[i][rowAxis] = c[0]
		pts[i][colAxis] = c[1]
	}
	return render.Polyline3{Plane: a, Points: pts}
}

// FrameOutlines returns all three outlines in axis order
func (e *OrthoEngine) FrameOutlines() []render.Polyline3 {
	out := make([]render.Polyline3, 0, axis.Count)
	for _, a := range axis.All {
		out = append(out, e.FrameOutline(a))
	}
	return out
}

func (e *OrthoEngine) compute(b *render.Bundle) {
	v := visualization.NewViewer(e.sess.Volume())
	pos := e.sess.Position()
	b.Slices = make([]*models.Slice, 0, axis.Count)
	for _, a := range axis.All {
		b.Slices = append(b.Slices, v.ExtractSlice(a, pos[a]))
	}
	b.Planes = e.Planes()
	b.Overlays3D = e.FrameOutlines()
	b.ShowVolume = e.showVolume
	if e.showVolume {
		b.Volume = e.sess.Volume()
	}
	b.Sliders = cursorSliders(e.sess)
}

func (e *OrthoEngine) applySlider(name string, values []float64) bool {
	return applyCursorSlider(e.sess, name, values)
}
