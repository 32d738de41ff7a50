// Package axis maps volume axes to the orthogonal axis pair, display label
// and overlay color shared by every viewing mode.
//
// Axes are indexed in volume order: 0 is Z (Axial), 1 is Y (Coronal) and
// 2 is X (Sagittal).
package axis

import (
	"fmt"
	"image/color"
)

// Axis identifies one of the three volume dimensions
type Axis int

const (
	Axial    Axis = iota // Z
	Coronal              // Y
	Sagittal             // X
)

// Count is the number of volume axes
const Count = 3

// All lists the axes in fixed volume order
var All = [Count]Axis{Axial, Coronal, Sagittal}

// Tag is the color tag an anatomical plane is drawn with in every mode
type Tag struct {
	Name string
	RGBA color.RGBA
}

var (
	Blue  = Tag{Name: "blue", RGBA: color.RGBA{R: 0, G: 0, B: 255, A: 255}}
	Green = Tag{Name: "green", RGBA: color.RGBA{R: 0, G: 128, B: 0, A: 255}}
	Red   = Tag{Name: "red", RGBA: color.RGBA{R: 255, G: 0, B: 0, A: 255}}
)

type entry struct {
	others [2]Axis
	label  string
	letter string
	tag    Tag
}

var table = [Count]entry{
	Axial:    {others: [2]Axis{Coronal, Sagittal}, label: "Axial", letter: "Z", tag: Blue},
	Coronal:  {others: [2]Axis{Axial, Sagittal}, label: "Coronal", letter: "Y", tag: Green},
	Sagittal: {others: [2]Axis{Axial, Coronal}, label: "Sagittal", letter: "X", tag: Red},
}

// Valid reports whether a is one of the three volume axes
func (a Axis) Valid() bool {
	return a >= Axial && a <= Sagittal
}

func (a Axis) lookup() entry {
	if !a.Valid() {
		panic(fmt.Sprintf("axis: invalid axis %d", int(a)))
	}
	return table[a]
}

// Others returns the two remaining axes in ascending order. They are the
// (row, col) axes of a slice taken perpendicular to a.
func (a Axis) Others() (Axis, Axis) {
	e := a.lookup()
	return e.others[0], e.others[1]
}

// Label returns the anatomical plane name
func (a Axis) Label() string {
	return a.lookup().label
}

// Letter returns the coordinate letter (Z, Y or X)
func (a Axis) Letter() string {
	return a.lookup().letter
}

// Tag returns the overlay color tag
func (a Axis) Tag() Tag {
	return a.lookup().tag
}

func (a Axis) String() string {
	if !a.Valid() {
		return fmt.Sprintf("Axis(%d)", int(a))
	}
	return fmt.Sprintf("%s (%s)", table[a].label, table[a].letter)
}

// Clamp converts an untrusted index into an axis, clamping it to [0, 2].
// UI input goes through Clamp; internal callers use Axis values directly.
func Clamp(i int) Axis {
	switch {
	case i < int(Axial):
		return Axial
	case i > int(Sagittal):
		return Sagittal
	}
	return Axis(i)
}

// Parse accepts a label ("axial"), a letter ("z") or an index ("0")
func Parse(s string) (Axis, error) {
	switch s {
	case "0", "z", "Z", "axial", "Axial":
		return Axial, nil
	case "1", "y", "Y", "coronal", "Coronal":
		return Coronal, nil
	case "2", "x", "X", "sagittal", "Sagittal":
		return Sagittal, nil
	}
	return Axial, fmt.Errorf("invalid axis: %s (must be z, y, x or a plane name)", s)
}

// UnmarshalText lets axes appear by name in YAML and flags
func (a *Axis) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// MarshalText writes the plane label
func (a Axis) MarshalText() ([]byte, error) {
	return []byte(a.Label()), nil
}
