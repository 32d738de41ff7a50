package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"volview/pkg/axis"
)

// Vec3 is a point or direction in volume order (z, y, x)
type Vec3 [3]float64

// Unit returns the positive unit vector along a
func Unit(a axis.Axis) Vec3 {
	var v Vec3
	v[a] = 1
	return v
}

// Scale multiplies every component by k
func (v Vec3) Scale(k float64) Vec3 {
	return Vec3{v[0] * k, v[1] * k, v[2] * k}
}

// Sub returns v - w
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v[0] - w[0], v[1] - w[1], v[2] - w[2]}
}

// Dot returns the dot product
func (v Vec3) Dot(w Vec3) float64 {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2]
}

// Point2 is a point in a 2D frame as (row, col)
type Point2 [2]float64

// Polyline2 is a 2D overlay path. Points live in the index frame of the pane
// showing Pane; Plane is the anatomical plane the line represents and
// decides its color.
type Polyline2 struct {
	Plane  axis.Axis
	Pane   axis.Axis
	Points []Point2
}

// Tag returns the color tag of the line
func (p Polyline2) Tag() axis.Tag {
	return p.Plane.Tag()
}

// Closed reports whether the path ends where it starts
func (p Polyline2) Closed() bool {
	n := len(p.Points)
	return n > 1 && p.Points[0] == p.Points[n-1]
}

// Polyline3 is a 3D overlay path in volume index space
type Polyline3 struct {
	Plane  axis.Axis
	Points []Vec3
}

// Tag returns the color tag of the line
func (p Polyline3) Tag() axis.Tag {
	return p.Plane.Tag()
}

// Closed reports whether the path ends where it starts
func (p Polyline3) Closed() bool {
	n := len(p.Points)
	return n > 1 && p.Points[0] == p.Points[n-1]
}

// PlaneCut places a cutting plane through the volume. The plane holds the
// full extent of the two other axes.
type PlaneCut struct {
	Axis     axis.Axis
	Position Vec3
	Normal   Vec3
}

// Offset is the plane's position along its normal axis
func (p PlaneCut) Offset() float64 {
	return p.Position[p.Axis]
}

// ClipPlane is a half-space boundary. Geometry on the negative side of
// (Position, Normal) is discarded.
type ClipPlane struct {
	Axis     axis.Axis
	Position Vec3
	Normal   Vec3
}

// Offset is the plane's position along its axis
func (c ClipPlane) Offset() float64 {
	return c.Position[c.Axis]
}

// Keeps reports whether p lies on the kept side of the plane
func (c ClipPlane) Keeps(p Vec3) bool {
	return p.Sub(c.Position).Dot(c.Normal) >= 0
}

// Affine is a 4x4 homogeneous transform acting on (z, y, x, 1) column vectors
type Affine [4][4]float64

// Identity returns the identity transform
func Identity() Affine {
	return Affine{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
}

// Apply multiplies the column vector v by the matrix
func (m Affine) Apply(v [4]float64) [4]float64 {
	var out [4]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i] += m[i][j] * v[j]
		}
	}
	return out
}

// Translation returns the translation column
func (m Affine) Translation() Vec3 {
	return Vec3{m[0][3], m[1][3], m[2][3]}
}

// GL returns the matrix in column-major single precision for GL consumers
func (m Affine) GL() mgl32.Mat4 {
	var g mgl32.Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			g[col*4+row] = float32(m[row][col])
		}
	}
	return g
}
