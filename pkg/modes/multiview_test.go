package modes

import (
	"math"
	"testing"

	"volview/pkg/axis"
	"volview/pkg/render"
	"volview/pkg/session"
)

const eps = 1e-9

// TestMultiViewSlices verifies one slice per axis at the cursor
func TestMultiViewSlices(t *testing.T) {
	m := newTestMachine(t)
	slices := m.MultiViewEngine().Slices()
	if len(slices) != 3 {
		t.Fatalf("Expected 3 slices, got %d", len(slices))
	}
	pos := m.Session().Position()
	for i, a := range axis.All {
		if slices[i].Axis != a || slices[i].Index != pos[a] {
			t.Errorf("Expected slice %d on %v at %d, got %v at %d", i, a, pos[a], slices[i].Axis, slices[i].Index)
		}
	}
}

// TestMultiViewLayout checks the reference layout for an axial main pane
func TestMultiViewLayout(t *testing.T) {
	m := newTestMachine(t)
	panes := m.MultiViewEngine().Layout()

	main := panes[axis.Axial]
	if !main.Main || main.Translate != [2]float64{0, 0} || main.Scale != [2]float64{1, 1} {
		t.Errorf("Unexpected main pane %+v", main)
	}

	coronal := panes[axis.Coronal]
	if math.Abs(coronal.Scale[0]-0.8) > eps || math.Abs(coronal.Scale[1]-0.4) > eps {
		t.Errorf("Expected coronal scale (0.8, 0.4), got %v", coronal.Scale)
	}
	if math.Abs(coronal.Translate[0]) > eps || math.Abs(coronal.Translate[1]-31.5) > eps {
		t.Errorf("Expected coronal translate (0, 31.5), got %v", coronal.Translate)
	}

	sagittal := panes[axis.Sagittal]
	if math.Abs(sagittal.Translate[0]-9) > eps || math.Abs(sagittal.Translate[1]-31.5) > eps {
		t.Errorf("Expected sagittal translate (9, 31.5), got %v", sagittal.Translate)
	}
}

// TestMultiViewLayoutInvariants checks every main axis over several volumes
func TestMultiViewLayoutInvariants(t *testing.T) {
	volumes := []struct {
		shape   [3]int
		spacing [3]float64
	}{
		{[3]int{10, 20, 30}, [3]float64{2, 1, 1}},
		{[3]int{1, 64, 8}, [3]float64{5, 0.5, 0.7}},
		{[3]int{33, 3, 17}, [3]float64{0.3, 3, 1.2}},
	}

	for _, v := range volumes {
		sess := session.New()
		m := NewMachine(sess, DefaultOptions())
		m.Bind(newTestVolume(t, v.shape, v.spacing))
		e := m.MultiViewEngine()

		for _, mainAxis := range axis.All {
			e.SetMainAxis(int(mainAxis))
			panes := e.Layout()

			main := panes[mainAxis]
			if !main.Main || main.Translate != [2]float64{0, 0} {
				t.Errorf("%v: expected main pane at origin, got %+v", mainAxis, main)
			}

			subA, subB := mainAxis.Others()
			first, second := panes[subA], panes[subB]
			gap := second.Translate[0] - (first.Translate[0] + first.Extent()[0])
			if want := 0.05 * main.Extent()[0]; math.Abs(gap-want) > eps {
				t.Errorf("%v %v: expected vertical gap %f, got %f", v.shape, mainAxis, want, gap)
			}
			if want := 1.05 * main.Extent()[1]; math.Abs(first.Translate[1]-want) > eps {
				t.Errorf("%v %v: expected sub pane column %f, got %f", v.shape, mainAxis, want, first.Translate[1])
			}

			sum := 0.0
			for _, p := range panes {
				sum += p.Ratio
			}
			if math.Abs(sum-1.8) > eps {
				t.Errorf("%v: expected ratio sum 1.8, got %f", mainAxis, sum)
			}
		}
	}
}

// TestMultiViewLabels verifies labels sit at the pane origins
func TestMultiViewLabels(t *testing.T) {
	m := newTestMachine(t)
	b := m.Activate(render.MultiView)

	if len(b.Labels) != 3 {
		t.Fatalf("Expected 3 labels, got %d", len(b.Labels))
	}
	for i, l := range b.Labels {
		if l.Text != b.Panes[i].Axis.Label() || l.Position != render.Point2(b.Panes[i].Translate) {
			t.Errorf("Label %d %+v does not match pane %+v", i, l, b.Panes[i])
		}
	}
	if len(b.Overlays2D) != 6 {
		t.Errorf("Expected 2 crosshair lines per pane, got %d", len(b.Overlays2D))
	}
}

// TestMultiViewCrosshair verifies that each pane shows the other two axes
func TestMultiViewCrosshair(t *testing.T) {
	m := newTestMachine(t)
	e := m.MultiViewEngine()
	for _, a := range axis.All {
		lines := e.CrosshairFor(a)
		if len(lines) != 2 {
			t.Fatalf("Expected 2 lines for %v, got %d", a, len(lines))
		}
		for _, l := range lines {
			if l.Plane == a || l.Pane != a {
				t.Errorf("Pane %v: unexpected line for %v in pane %v", a, l.Plane, l.Pane)
			}
		}
	}
}
