// Package session owns the loaded volume and the single authoritative
// cursor shared by all viewing modes.
//
// Every mutation is a clamped write of one field. Out-of-range input is
// never rejected: slider ranges can briefly disagree with a just-loaded
// volume, so values are pulled back inside the volume bounds instead.
package session

import (
	"volview/internal/logging"
	"volview/internal/models"
	"volview/pkg/axis"
)

// Session holds the bound volume, the cursor and the contrast window
type Session struct {
	vol    *models.Volume
	cursor models.Cursor
	window Window

	// version increases on every successful mutation
	version uint64
}

// New returns an unbound session
func New() *Session {
	return &Session{window: Window{Center: models.DefaultWindowCenter, Width: models.DefaultWindowWidth}}
}

// Bind replaces the volume and moves the cursor to its geometric center.
// Binding nil unbinds the session.
func (s *Session) Bind(vol *models.Volume) {
	s.vol = vol
	s.cursor = models.Cursor{}
	if vol != nil {
		s.cursor = models.Cursor{vol.Depth / 2, vol.Height / 2, vol.Width / 2}
		s.window = NewWindow(vol.WindowCenter, vol.WindowWidth)
		logging.Logger().Info("volume bound",
			"shape", vol.Shape(), "spacing", vol.Spacing, "description", vol.Description)
	}
	s.version++
}

// Bound reports whether a volume is loaded
func (s *Session) Bound() bool {
	return s.vol != nil
}

// Volume returns the bound volume, or nil
func (s *Session) Volume() *models.Volume {
	return s.vol
}

// Version returns a counter that changes whenever the session changes
func (s *Session) Version() uint64 {
	return s.version
}

// Touch bumps the version for a change in view state kept outside the
// session, such as a mode's transform or main axis
func (s *Session) Touch() {
	s.version++
}

// Position returns the current cursor
func (s *Session) Position() models.Cursor {
	return s.cursor
}

// Dimension returns the volume size along a, or 0 when unbound
func (s *Session) Dimension(a axis.Axis) int {
	if s.vol == nil {
		return 0
	}
	return s.vol.Dim(a)
}

// SpacingOf returns the voxel spacing along a, or 0 when unbound
func (s *Session) SpacingOf(a axis.Axis) float64 {
	if s.vol == nil {
		return 0
	}
	return s.vol.SpacingOf(a)
}

// MaxIndex returns the largest valid cursor value along a
func (s *Session) MaxIndex(a axis.Axis) int {
	if s.vol == nil {
		return 0
	}
	return s.vol.Dim(a) - 1
}

// Clamp pulls value into [0, MaxIndex(a)]
func (s *Session) Clamp(a axis.Axis, value int) int {
	return clamp(value, 0, s.MaxIndex(a))
}

// SetAxisPosition clamps value into the volume and stores it as the cursor
// component for a. It reports whether the cursor changed; an unbound
// session ignores the call.
func (s *Session) SetAxisPosition(a axis.Axis, value int) bool {
	if s.vol == nil {
		return false
	}
	v := s.Clamp(a, value)
	if v != value {
		logging.Logger().Debug("cursor clamped", "axis", a.Label(), "requested", value, "value", v)
	}
	if s.cursor[a] == v {
		return false
	}
	s.cursor[a] = v
	s.version++
	return true
}

// SetPosition writes all three cursor components
func (s *Session) SetPosition(c models.Cursor) bool {
	changed := false
	for _, a := range axis.All {
		if s.SetAxisPosition(a, c[a]) {
			changed = true
		}
	}
	return changed
}

// Window returns the contrast window
func (s *Session) Window() Window {
	return s.window
}

// SetWindow replaces the contrast window
func (s *Session) SetWindow(center, width float64) {
	w := NewWindow(center, width)
	if w == s.window {
		return
	}
	s.window = w
	s.version++
}

// ResetWindow restores the bound volume's suggested window
func (s *Session) ResetWindow() {
	if s.vol == nil {
		return
	}
	s.SetWindow(s.vol.WindowCenter, s.vol.WindowWidth)
}

// AutoWindow sets the window to span the 1st..99th intensity percentiles
func (s *Session) AutoWindow() {
	if s.vol == nil {
		return
	}
	st := s.vol.Stats()
	s.SetWindow((st.P01+st.P99)/2, st.P99-st.P01)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
