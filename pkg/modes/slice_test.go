package modes

import (
	"testing"

	"volview/internal/models"
	"volview/pkg/axis"
	"volview/pkg/render"
)

// TestSliceEndToEnd follows the reference scenario: bind, switch to the
// sagittal axis and check the slice shape and range
func TestSliceEndToEnd(t *testing.T) {
	m := newTestMachine(t)
	if m.Session().Position() != (models.Cursor{5, 10, 15}) {
		t.Fatalf("Expected cursor (5,10,15), got %v", m.Session().Position())
	}

	e := m.SliceEngine()
	e.SetMainAxis(2)

	s := e.CurrentSlice()
	if s.Shape() != [2]int{10, 20} {
		t.Errorf("Expected slice shape (10,20), got %v", s.Shape())
	}
	if e.MaxIndex() != 29 {
		t.Errorf("Expected max index 29, got %d", e.MaxIndex())
	}
	if s.Index != 15 {
		t.Errorf("Expected slice at X=15, got %d", s.Index)
	}
	// voxel (z=3, y=7, x=15)
	if got := s.At(3, 7); got != 3*10000+7*100+15 {
		t.Errorf("Expected value %d at (3,7), got %f", 3*10000+7*100+15, got)
	}
}

// TestSliceShapes verifies the free-axis convention for every main axis
func TestSliceShapes(t *testing.T) {
	m := newTestMachine(t)
	e := m.SliceEngine()

	expected := map[axis.Axis][2]int{
		axis.Axial:    {20, 30},
		axis.Coronal:  {10, 30},
		axis.Sagittal: {10, 20},
	}
	for a, shape := range expected {
		e.SetMainAxis(int(a))
		if got := e.CurrentSlice().Shape(); got != shape {
			t.Errorf("%v: expected shape %v, got %v", a, shape, got)
		}
	}
}

// TestSetMainAxisClampsAxis verifies that axis input is clamped, not rejected
func TestSetMainAxisClampsAxis(t *testing.T) {
	m := newTestMachine(t)
	e := m.SliceEngine()

	e.SetMainAxis(7)
	if e.MainAxis() != axis.Sagittal {
		t.Errorf("Expected Sagittal, got %v", e.MainAxis())
	}
	e.SetMainAxis(-1)
	if e.MainAxis() != axis.Axial {
		t.Errorf("Expected Axial, got %v", e.MainAxis())
	}
}

// TestSliceIndexClamp verifies slider values beyond the range are clamped
func TestSliceIndexClamp(t *testing.T) {
	m := newTestMachine(t)
	e := m.SliceEngine()
	e.SetMainAxis(int(axis.Sagittal))

	e.SetSliceIndex(100)
	if got := m.Session().Position()[axis.Sagittal]; got != 29 {
		t.Errorf("Expected X clamped to 29, got %d", got)
	}

	e.SetMainAxis(int(axis.Axial))
	e.SetSliceIndex(100)
	if got := m.Session().Position()[axis.Axial]; got != 9 {
		t.Errorf("Expected Z clamped to 9, got %d", got)
	}
	if got := m.Session().Position()[axis.Sagittal]; got != 29 {
		t.Errorf("Expected X to stay at 29, got %d", got)
	}
}

// TestCrosshairLines verifies line placement and colors in the slice frame
func TestCrosshairLines(t *testing.T) {
	m := newTestMachine(t)
	e := m.SliceEngine()

	lines := e.CrosshairLines()
	if len(lines) != 2 {
		t.Fatalf("Expected 2 crosshair lines, got %d", len(lines))
	}

	// Axial view: row line at y=10 in coronal green, col line at x=15 in sagittal red
	row, col := lines[0], lines[1]
	if row.Plane != axis.Coronal || row.Tag().Name != "green" {
		t.Errorf("Expected row line for Coronal (green), got %v (%s)", row.Plane, row.Tag().Name)
	}
	if row.Points[0] != (render.Point2{10, 0}) || row.Points[1] != (render.Point2{10, 30}) {
		t.Errorf("Unexpected row line %v", row.Points)
	}
	if col.Plane != axis.Sagittal || col.Tag().Name != "red" {
		t.Errorf("Expected col line for Sagittal (red), got %v (%s)", col.Plane, col.Tag().Name)
	}
	if col.Points[0] != (render.Point2{0, 15}) || col.Points[1] != (render.Point2{20, 15}) {
		t.Errorf("Unexpected col line %v", col.Points)
	}

	e.SetMainAxis(int(axis.Coronal))
	lines = e.CrosshairLines()
	if lines[0].Plane != axis.Axial || lines[0].Points[0] != (render.Point2{5, 0}) {
		t.Errorf("Expected axial row line at z=5, got %v at %v", lines[0].Plane, lines[0].Points)
	}
}

// TestCrosshairToggle verifies that hiding crosshairs removes all overlays
func TestCrosshairToggle(t *testing.T) {
	m := newTestMachine(t)
	m.SliceEngine().SetShowCrosshairs(false)

	b := m.Recompute()
	if len(b.Overlays2D) != 0 {
		t.Errorf("Expected no overlays, got %d", len(b.Overlays2D))
	}

	m.SliceEngine().SetShowCrosshairs(true)
	b = m.Recompute()
	if len(b.Overlays2D) != 3 {
		t.Errorf("Expected border plus 2 crosshair lines, got %d", len(b.Overlays2D))
	}
	if !b.Overlays2D[0].Closed() {
		t.Error("Expected the slice border to be closed")
	}
}

// TestResetSlice verifies the reset goes to the slider midpoint
func TestResetSlice(t *testing.T) {
	m := newTestMachine(t)
	e := m.SliceEngine()
	e.SetMainAxis(int(axis.Sagittal))
	e.SetSliceIndex(0)

	e.ResetSlice()
	if got := m.Session().Position()[axis.Sagittal]; got != 14 {
		t.Errorf("Expected reset to 29/2 = 14, got %d", got)
	}
}

// TestSliceSlider verifies the slider state follows the main axis
func TestSliceSlider(t *testing.T) {
	m := newTestMachine(t)
	m.SliceEngine().SetMainAxis(int(axis.Sagittal))

	s, ok := m.Recompute().Slider(SliderSlice)
	if !ok {
		t.Fatal("Expected slice slider in bundle")
	}
	if s.Max != 29 || s.Value != 15 {
		t.Errorf("Expected slider (max 29, value 15), got (%f, %f)", s.Max, s.Value)
	}
}
