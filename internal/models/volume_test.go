package models

import (
	"errors"
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"volview/pkg/axis"
)

// TestNewVolume verifies that a valid volume keeps its shape and spacing
func TestNewVolume(t *testing.T) {
	data := make([]float64, 10*20*30)
	vol, err := NewVolume(data, [3]int{10, 20, 30}, [3]float64{2, 1, 1})
	if err != nil {
		t.Fatalf("Failed to create volume: %v", err)
	}

	if vol.Dim(axis.Axial) != 10 || vol.Dim(axis.Coronal) != 20 || vol.Dim(axis.Sagittal) != 30 {
		t.Errorf("Expected shape (10,20,30), got %v", vol.Shape())
	}
	if vol.SpacingOf(axis.Axial) != 2 {
		t.Errorf("Expected Z spacing 2, got %f", vol.SpacingOf(axis.Axial))
	}
	if vol.Extent(axis.Axial) != 20 {
		t.Errorf("Expected Z extent 20, got %f", vol.Extent(axis.Axial))
	}
	if vol.WindowCenter != DefaultWindowCenter || vol.WindowWidth != DefaultWindowWidth {
		t.Errorf("Expected default window, got (%f, %f)", vol.WindowCenter, vol.WindowWidth)
	}
}

// TestNewVolumeRejectsInvalid verifies shape, spacing and length validation
func TestNewVolumeRejectsInvalid(t *testing.T) {
	testCases := []struct {
		name    string
		n       int
		shape   [3]int
		spacing [3]float64
	}{
		{"zero dimension", 0, [3]int{0, 2, 2}, [3]float64{1, 1, 1}},
		{"zero spacing", 8, [3]int{2, 2, 2}, [3]float64{1, 0, 1}},
		{"negative spacing", 8, [3]int{2, 2, 2}, [3]float64{1, 1, -1}},
		{"NaN spacing", 8, [3]int{2, 2, 2}, [3]float64{math.NaN(), 1, 1}},
		{"length mismatch", 7, [3]int{2, 2, 2}, [3]float64{1, 1, 1}},
	}

	for _, tc := range testCases {
		_, err := NewVolume(make([]float64, tc.n), tc.shape, tc.spacing)
		if !errors.Is(err, ErrInvalidVolume) {
			t.Errorf("%s: expected ErrInvalidVolume, got %v", tc.name, err)
		}
	}
}

// TestVolumeIndex verifies row-major (z, y, x) addressing
func TestVolumeIndex(t *testing.T) {
	depth, height, width := 3, 4, 5
	data := make([]float64, depth*height*width)
	for i := range data {
		data[i] = float64(i)
	}
	vol, err := NewVolume(data, [3]int{depth, height, width}, [3]float64{1, 1, 1})
	if err != nil {
		t.Fatalf("Failed to create volume: %v", err)
	}

	if got := vol.At(2, 3, 4); got != float64(2*width*height+3*width+4) {
		t.Errorf("Expected At(2,3,4) = %d, got %f", 2*width*height+3*width+4, got)
	}
}

// TestStats verifies intensity statistics
func TestStats(t *testing.T) {
	data := make([]float64, 100)
	for i := range data {
		data[i] = float64(i)
	}
	vol, err := NewVolume(data, [3]int{1, 10, 10}, [3]float64{1, 1, 1})
	if err != nil {
		t.Fatalf("Failed to create volume: %v", err)
	}

	s := vol.Stats()
	if s.Min != 0 || s.Max != 99 {
		t.Errorf("Expected range [0, 99], got [%f, %f]", s.Min, s.Max)
	}
	if math.Abs(s.Mean-49.5) > 1e-9 {
		t.Errorf("Expected mean 49.5, got %f", s.Mean)
	}
	if s.P01 > s.P99 {
		t.Errorf("Expected P01 <= P99, got %f > %f", s.P01, s.P99)
	}
}

// TestNewTagTruncates verifies that long tag values are shortened
func TestNewTagTruncates(t *testing.T) {
	tag := NewTag("(0008,103E)", "Series Description", "LO", strings.Repeat("a", 60))
	if len(tag.Value) != 53 || !strings.HasSuffix(tag.Value, "...") {
		t.Errorf("Expected truncated value of length 53, got %d (%q)", len(tag.Value), tag.Value)
	}

	// a two-byte rune straddling byte 50 must stay whole
	tag = NewTag("(0010,0010)", "Patient's Name", "PN", strings.Repeat("a", 49)+"é"+"tail")
	expected := strings.Repeat("a", 49) + "é..."
	if !utf8.ValidString(tag.Value) || tag.Value != expected {
		t.Errorf("Expected %q, got %q", expected, tag.Value)
	}

	short := strings.Repeat("é", 50)
	if tag = NewTag("", "", "", short); tag.Value != short {
		t.Errorf("Expected 50-character value to be kept, got %q", tag.Value)
	}
}

// TestSummary verifies the viewer summary text
func TestSummary(t *testing.T) {
	vol, _ := NewVolume(make([]float64, 2*3*4), [3]int{2, 3, 4}, [3]float64{1.5, 1, 1})
	expected := "Size: 4 x 3\nThickness: 1.5 mm\nCount: 2 slices"
	if vol.Summary() != expected {
		t.Errorf("Expected summary %q, got %q", expected, vol.Summary())
	}
}
