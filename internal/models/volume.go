package models

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"unicode/utf8"

	"gonum.org/v1/gonum/stat"

	"volview/pkg/axis"
)

// Default window used when the source carries no windowing metadata
const (
	DefaultWindowCenter = 40.0
	DefaultWindowWidth  = 400.0
)

// ErrInvalidVolume is returned when a volume's shape, spacing or data disagree
var ErrInvalidVolume = errors.New("invalid volume")

// Tag is one row of the source's metadata table
type Tag struct {
	Tag   string `yaml:"tag"`
	Name  string `yaml:"name"`
	VR    string `yaml:"vr"`
	Value string `yaml:"value"`
}

// maxTagValue is the display length after which tag values are truncated
const maxTagValue = 50

// NewTag builds a metadata row, truncating values longer than
// maxTagValue characters
func NewTag(tag, name, vr, value string) Tag {
	if utf8.RuneCountInString(value) > maxTagValue {
		value = string([]rune(value)[:maxTagValue]) + "..."
	}
	return Tag{Tag: tag, Name: name, VR: vr, Value: value}
}

// Volume represents a stack of grayscale slices. It is immutable once built.
type Volume struct {
	// Data holds the intensities in row-major (z, y, x) order
	Data []float64

	// Depth, Height and Width are the Z, Y and X dimensions in voxels
	Depth  int
	Height int
	Width  int

	// Spacing is the physical voxel size in mm along (z, y, x)
	Spacing [3]float64

	// Description is the series name shown in titles
	Description string

	// WindowCenter and WindowWidth are the source's suggested contrast window
	WindowCenter float64
	WindowWidth  float64

	// Tags is the source's metadata table
	Tags []Tag
}

// NewVolume validates and wraps data of the given (Z, Y, X) shape
func NewVolume(data []float64, shape [3]int, spacing [3]float64) (*Volume, error) {
	for i, d := range shape {
		if d < 1 {
			return nil, fmt.Errorf("%w: dimension %d is %d, must be >= 1", ErrInvalidVolume, i, d)
		}
	}
	for i, s := range spacing {
		if !(s > 0) || math.IsInf(s, 0) {
			return nil, fmt.Errorf("%w: spacing %d is %v, must be > 0", ErrInvalidVolume, i, s)
		}
	}
	if n := shape[0] * shape[1] * shape[2]; len(data) != n {
		return nil, fmt.Errorf("%w: expected %d voxels, got %d", ErrInvalidVolume, n, len(data))
	}
	return &Volume{
		Data:         data,
		Depth:        shape[0],
		Height:       shape[1],
		Width:        shape[2],
		Spacing:      spacing,
		WindowCenter: DefaultWindowCenter,
		WindowWidth:  DefaultWindowWidth,
	}, nil
}

// Shape returns (Z, Y, X)
func (v *Volume) Shape() [3]int {
	return [3]int{v.Depth, v.Height, v.Width}
}

// Dim returns the number of voxels along a
func (v *Volume) Dim(a axis.Axis) int {
	return v.Shape()[a]
}

// SpacingOf returns the physical voxel size along a
func (v *Volume) SpacingOf(a axis.Axis) float64 {
	return v.Spacing[a]
}

// Extent returns the physical length of the volume along a
func (v *Volume) Extent(a axis.Axis) float64 {
	return float64(v.Dim(a)) * v.Spacing[a]
}

// Index returns the offset of voxel (z, y, x) in Data
func (v *Volume) Index(z, y, x int) int {
	return z*v.Width*v.Height + y*v.Width + x
}

// At returns the intensity at (z, y, x)
func (v *Volume) At(z, y, x int) float64 {
	return v.Data[v.Index(z, y, x)]
}

// Summary returns the short description shown next to the viewer
func (v *Volume) Summary() string {
	return fmt.Sprintf("Size: %d x %d\nThickness: %g mm\nCount: %d slices",
		v.Width, v.Height, v.Spacing[axis.Axial], v.Depth)
}

// Stats summarizes the intensity distribution
type Stats struct {
	Min, Max  float64
	Mean, Std float64
	P01, P99  float64
}

// Stats computes intensity statistics over the whole volume
func (v *Volume) Stats() Stats {
	sorted := make([]float64, len(v.Data))
	copy(sorted, v.Data)
	sort.Float64s(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	if math.IsNaN(std) {
		std = 0
	}
	return Stats{
		Min:  sorted[0],
		Max:  sorted[len(sorted)-1],
		Mean: mean,
		Std:  std,
		P01:  stat.Quantile(0.01, stat.Empirical, sorted, nil),
		P99:  stat.Quantile(0.99, stat.Empirical, sorted, nil),
	}
}
