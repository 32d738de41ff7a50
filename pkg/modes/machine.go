package modes

import (
	"fmt"

	"volview/internal/logging"
	"volview/internal/models"
	"volview/pkg/render"
	"volview/pkg/session"
)

// engine is the behavior shared by the four mode engines
type engine interface {
	compute(b *render.Bundle)
	applySlider(name string, values []float64) bool
}

// Machine holds exactly one active mode. All engines share one session.
type Machine struct {
	sess   *session.Session
	opts   Options
	active render.Mode

	slice  *SliceEngine
	multi  *MultiViewEngine
	ortho  *OrthoEngine
	volume *VolumeEngine
}

// NewMachine creates a machine over sess, starting in Slice mode
func NewMachine(sess *session.Session, opts Options) *Machine {
	m := &Machine{
		sess:   sess,
		opts:   opts,
		slice:  newSliceEngine(sess, opts),
		multi:  newMultiViewEngine(sess, opts),
		ortho:  newOrthoEngine(sess, opts),
		volume: newVolumeEngine(sess, opts),
	}
	m.volume.bind()
	m.Activate(render.Slice)
	return m
}

// Session returns the shared session
func (m *Machine) Session() *session.Session { return m.sess }

// Active returns the active mode
func (m *Machine) Active() render.Mode { return m.active }

// SliceEngine returns the Slice mode engine
func (m *Machine) SliceEngine() *SliceEngine { return m.slice }

// MultiViewEngine returns the MultiView mode engine
func (m *Machine) MultiViewEngine() *MultiViewEngine { return m.multi }

// OrthoEngine returns the Ortho mode engine
func (m *Machine) OrthoEngine() *OrthoEngine { return m.ortho }

// VolumeEngine returns the VolumeRender mode engine
func (m *Machine) VolumeEngine() *VolumeEngine { return m.volume }

func (m *Machine) engine() engine {
	switch m.active {
	case render.Slice:
		return m.slice
	case render.MultiView:
		return m.multi
	case render.Ortho:
		return m.ortho
	case render.VolumeRender:
		return m.volume
	}
	panic(fmt.Sprintf("modes: invalid mode %d", int(m.active)))
}

// Activate switches to mode and resets its view parameters. The cursor is
// kept; the new engine re-derives everything from the session.
func (m *Machine) Activate(mode render.Mode) *render.Bundle {
	if mode < render.Slice || mode > render.VolumeRender {
		panic(fmt.Sprintf("modes: invalid mode %d", int(mode)))
	}
	if mode != m.active {
		m.active = mode
		m.sess.Touch()
	}
	switch mode {
	case render.Slice:
		m.slice.activate()
	case render.MultiView:
		m.multi.activate()
	case render.Ortho:
	case render.VolumeRender:
		m.volume.activate()
	}
	logging.Logger().Info("mode activated", "mode", mode.String())
	return m.Recompute()
}

// Bind loads a new volume into the session and refreshes the active mode
func (m *Machine) Bind(vol *models.Volume) *render.Bundle {
	m.sess.Bind(vol)
	m.volume.bind()
	return m.Activate(m.active)
}

// ApplySlider routes a named slider value to the active engine. Range
// sliders take two values. It reports whether any state changed.
func (m *Machine) ApplySlider(name string, values ...float64) bool {
	if !m.sess.Bound() {
		return false
	}
	return m.engine().applySlider(name, values)
}

// Recompute derives a fresh bundle for the active mode. Without a volume the
// bundle is empty apart from the mode and display hints.
func (m *Machine) Recompute() *render.Bundle {
	lower, upper := m.sess.Window().Limits()
	b := &render.Bundle{
		Mode:           m.active,
		NDisplay:       m.active.NDisplay(),
		ContrastLimits: [2]float64{lower, upper},
		Version:        m.sess.Version(),
	}
	if b.NDisplay == 3 {
		angles := m.opts.CameraAngles
		b.CameraAngles = &angles
	}
	if !m.sess.Bound() {
		return b
	}
	m.engine().compute(b)
	logging.Logger().Debug("recompute",
		"mode", m.active.String(),
		"cursor", m.sess.Position(),
		"slices", len(b.Slices),
		"overlays", len(b.Overlays2D)+len(b.Overlays3D))
	return b
}
