// Package modes implements the four viewing modes and the state machine
// that switches between them.
//
// Every engine borrows the shared session: it reads the volume and moves the
// cursor through the session's clamped setters and never keeps a private
// copy, so switching modes cannot desynchronize state. Every change is
// followed by a synchronous recompute that produces a fresh render.Bundle.
package modes

// Options are the tunables of the viewing modes
type Options struct {
	// SubPaneScale shrinks the two MultiView sub panes
	SubPaneScale float64
	// PaneGap is the MultiView gap and margin as a fraction of the main pane
	PaneGap float64

	ShowCrosshairs bool
	ShowVolume     bool

	// CameraAngles is the initial camera orientation for 3D modes
	CameraAngles [3]float64

	// TranslateLimit and AngleLimit bound the VolumeRender sliders
	TranslateLimit float64
	AngleLimit     float64
}

// DefaultOptions returns the stock viewer settings
func DefaultOptions() Options {
	return Options{
		SubPaneScale:   0.4,
		PaneGap:        0.05,
		ShowCrosshairs: true,
		ShowVolume:     false,
		CameraAngles:   [3]float64{135, -45, 135},
		TranslateLimit: 200,
		AngleLimit:     180,
	}
}

// Slider names used in bundles and accepted from the surface
const (
	SliderSlice = "slice"

	SliderTX    = "tx"
	SliderTY    = "ty"
	SliderTZ    = "tz"
	SliderRoll  = "roll"
	SliderPitch = "pitch"
	SliderYaw   = "yaw"
)
