package modes

import (
	"strings"

	"volview/pkg/axis"
	"volview/pkg/render"
	"volview/pkg/session"
)

func cursorSlider(a axis.Axis) string {
	return a.Label()
}

func clipSlider(a axis.Axis) string {
	return "clip-" + strings.ToLower(a.Letter())
}

// crosshair returns, in the index frame of the slice perpendicular to pane,
// one line per other axis at that axis's cursor value. Each line carries the
// tag of the axis it represents.
func crosshair(sess *session.Session, pane axis.Axis) []render.Polyline2 {
	if !sess.Bound() {
		return nil
	}
	rowAxis, colAxis := pane.Others()
	rows := float64(sess.Dimension(rowAxis))
	cols := float64(sess.Dimension(colAxis))
	pos := sess.Position()
	r, c := float64(pos[rowAxis]), float64(pos[colAxis])

	return []render.Polyline2{
		{Plane: rowAxis, Pane: pane, Points: []render.Point2{{r, 0}, {r, cols}}},
		{Plane: colAxis, Pane: pane, Points: []render.Point2{{0, c}, {rows, c}}},
	}
}

// border returns the closed outline of the slice perpendicular to pane,
// drawn in the pane's own color
func border(sess *session.Session, pane axis.Axis) render.Polyline2 {
	rowAxis, colAxis := pane.Others()
	rows := float64(sess.Dimension(rowAxis))
	cols := float64(sess.Dimension(colAxis))
	return render.Polyline2{
		Plane: pane,
		Pane:  pane,
		Points: []render.Point2{
			{0, 0}, {rows, 0}, {rows, cols}, {0, cols}, {0, 0},
		},
	}
}

func cursorSliders(sess *session.Session) []render.Slider {
	pos := sess.Position()
	out := make([]render.Slider, 0, axis.Count)
	for _, a := range axis.All {
		out = append(out, render.Slider{
			Name:  cursorSlider(a),
			Max:   float64(sess.MaxIndex(a)),
			Value: float64(pos[a]),
		})
	}
	return out
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
