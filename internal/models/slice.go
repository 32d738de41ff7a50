package models

import "volview/pkg/axis"

// Cursor is a voxel position in (z, y, x) order
type Cursor [3]int

// Slice is a 2D cut through a volume perpendicular to Axis
type Slice struct {
	// Axis is the fixed axis and Index its position
	Axis  axis.Axis
	Index int

	// Rows and Cols are the sizes of the two free axes, in Axis.Others() order
	Rows int
	Cols int

	// RowSpacing and ColSpacing are the physical pixel sizes in mm
	RowSpacing float64
	ColSpacing float64

	// Data holds Rows*Cols intensities in row-major order
	Data []float64
}

// At returns the intensity at (row, col)
func (s *Slice) At(row, col int) float64 {
	return s.Data[row*s.Cols+col]
}

// Shape returns (Rows, Cols)
func (s *Slice) Shape() [2]int {
	return [2]int{s.Rows, s.Cols}
}

// Name is the layer name a render surface shows for the slice
func (s *Slice) Name() string {
	return s.Axis.Label() + " Slice"
}
