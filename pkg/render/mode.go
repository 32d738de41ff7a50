package render

import "fmt"

// Mode is one of the four viewing modes. Exactly one is active at a time.
type Mode int

const (
	Slice Mode = iota
	MultiView
	Ortho
	VolumeRender
)

// Modes lists every mode in menu order
var Modes = [...]Mode{Slice, MultiView, Ortho, VolumeRender}

var modeNames = [...]string{
	Slice:        "slice",
	MultiView:    "multiview",
	Ortho:        "ortho",
	VolumeRender: "volume",
}

func (m Mode) String() string {
	if m < Slice || m > VolumeRender {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// NDisplay is the number of displayed dimensions the surface should use
func (m Mode) NDisplay() int {
	if m == Ortho || m == VolumeRender {
		return 3
	}
	return 2
}

// ParseMode accepts the names produced by String
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if modeNames[m] == s {
			return m, nil
		}
	}
	return Slice, fmt.Errorf("invalid mode: %q (must be slice, multiview, ortho or volume)", s)
}

// UnmarshalText lets modes appear by name in YAML
func (m *Mode) UnmarshalText(text []byte) error {
	v, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// MarshalText writes the mode name
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}
