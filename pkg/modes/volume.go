package modes

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/mat"

	"volview/internal/logging"
	"volview/pkg/axis"
	"volview/pkg/render"
	"volview/pkg/session"
)

// Transform positions the rendered volume. Translation is in physical units;
// Roll, Pitch and Yaw are degrees about the Z, Y and X axes.
type Transform struct {
	TX, TY, TZ       float64
	Roll, Pitch, Yaw float64
}

// ClipRange is a per-axis index range with 0 <= Min <= Max <= dimension
type ClipRange struct {
	Min, Max int
}

// VolumeEngine renders the whole volume under a rigid transform, cropped to
// an axis-aligned sub-box
type VolumeEngine struct {
	sess      *session.Session
	transform Transform
	clip      [axis.Count]ClipRange

	translateLimit float64
	angleLimit     float64
}

func newVolumeEngine(sess *session.Session, opts Options) *VolumeEngine {
	return &VolumeEngine{
		sess:           sess,
		translateLimit: opts.TranslateLimit,
		angleLimit:     opts.AngleLimit,
	}
}

func (e *VolumeEngine) activate() {
	e.ResetTransform()
}

// bind opens the clip ranges to the full new volume
func (e *VolumeEngine) bind() {
	for _, a := range axis.All {
		e.ResetClip(a)
	}
}

// Transform returns the current transform
func (e *VolumeEngine) Transform() Transform {
	return e.transform
}

// SetTranslation sets the translation, clamped to the slider limit
func (e *VolumeEngine) SetTranslation(tx, ty, tz float64) {
	l := e.translateLimit
	t := e.transform
	t.TX = clampFloat(tx, -l, l)
	t.TY = clampFloat(ty, -l, l)
	t.TZ = clampFloat(tz, -l, l)
	e.setTransform(t)
}

// SetRotation sets the Euler angles in degrees, clamped to the slider limit
func (e *VolumeEngine) SetRotation(roll, pitch, yaw float64) {
	l := e.angleLimit
	t := e.transform
	t.Roll = clampFloat(roll, -l, l)
	t.Pitch = clampFloat(pitch, -l, l)
	t.Yaw = clampFloat(yaw, -l, l)
	e.setTransform(t)
}

// ResetTransform zeroes translation and rotation
func (e *VolumeEngine) ResetTransform() {
	e.setTransform(Transform{})
}

func (e *VolumeEngine) setTransform(t Transform) {
	if t != e.transform {
		e.transform = t
		e.sess.Touch()
	}
}

// Clip returns a's clip range
func (e *VolumeEngine) Clip(a axis.Axis) ClipRange {
	return e.clip[a]
}

// SetClip sets a's clip range. Bounds are clamped to [0, dimension] and
// swapped if given in the wrong order.
func (e *VolumeEngine) SetClip(a axis.Axis, lo, hi int) {
	if lo > hi {
		logging.Logger().Warn("clip range swapped", "axis", a.Label(), "min", lo, "max", hi)
		lo, hi = hi, lo
	}
	dim := e.sess.Dimension(a)
	e.setClip(a, ClipRange{Min: clampInt(lo, 0, dim), Max: clampInt(hi, 0, dim)})
}

// ResetClip opens a's range to the whole volume
func (e *VolumeEngine) ResetClip(a axis.Axis) {
	e.setClip(a, ClipRange{Min: 0, Max: e.sess.Dimension(a)})
}

func (e *VolumeEngine) setClip(a axis.Axis, r ClipRange) {
	if r != e.clip[a] {
		e.clip[a] = r
		e.sess.Touch()
	}
}

// AffineMatrix composes Rz(roll)·Ry(pitch)·Rx(yaw) into the upper-left 3×3
// of a homogeneous matrix and puts (tz, ty, tx) in the translation column.
// Rows and columns are in volume order (z, y, x), so Rz turns the (y, x)
// components, Ry the (z, x) components and Rx the (z, y) components.
func (e *VolumeEngine) AffineMatrix() render.Affine {
	t := e.transform

	c, s := sincos(t.Roll)
	rz := mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	})
	c, s = sincos(t.Pitch)
	ry := mat.NewDense(4, 4, []float64{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	})
	c, s = sincos(t.Yaw)
	rx := mat.NewDense(4, 4, []float64{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})

	var m mat.Dense
	m.Product(rz, ry, rx)
	m.Set(0, 3, t.TZ)
	m.Set(1, 3, t.TY)
	m.Set(2, 3, t.TX)

	var out render.Affine
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i][j] = m.At(i, j)
		}
	}
	return out
}

// ClippingPlanes returns two planes per axis in axis order: the positive
// normal at the range minimum and the negated normal at the maximum
func (e *VolumeEngine) ClippingPlanes() []render.ClipPlane {
	out := make([]render.ClipPlane, 0, 2*axis.Count)
	for _, a := range axis.All {
		n := render.Unit(a)
		r := e.clip[a]
		out = append(out,
			render.ClipPlane{Axis: a, Position: n.Scale(float64(r.Min)), Normal: n},
			render.ClipPlane{Axis: a, Position: n.Scale(float64(r.Max)), Normal: n.Scale(-1)},
		)
	}
	return out
}

func (e *VolumeEngine) compute(b *render.Bundle) {
	b.Volume = e.sess.Volume()
	b.ShowVolume = true
	m := e.AffineMatrix()
	b.Affine = &m
	b.ClipPlanes = e.ClippingPlanes()

	t := e.transform
	tl, al := e.translateLimit, e.angleLimit
	b.Sliders = []render.Slider{
		{Name: SliderTX, Min: -tl, Max: tl, Value: t.TX},
		{Name: SliderTY, Min: -tl, Max: tl, Value: t.TY},
		{Name: SliderTZ, Min: -tl, Max: tl, Value: t.TZ},
		{Name: SliderRoll, Min: -al, Max: al, Value: t.Roll},
		{Name: SliderPitch, Min: -al, Max: al, Value: t.Pitch},
		{Name: SliderYaw, Min: -al, Max: al, Value: t.Yaw},
	}
	for _, a := range axis.All {
		r := e.clip[a]
		b.Sliders = append(b.Sliders, render.Slider{
			Name:  clipSlider(a),
			Max:   float64(e.sess.Dimension(a)),
			Value: float64(r.Min),
			Upper: float64(r.Max),
			Range: true,
		})
	}
}

func (e *VolumeEngine) applySlider(name string, values []float64) bool {
	if len(values) == 0 {
		return false
	}
	prevT, prevClip := e.transform, e.clip
	t := e.transform
	v := values[0]
	switch name {
	case SliderTX:
		e.SetTranslation(v, t.TY, t.TZ)
	case SliderTY:
		e.SetTranslation(t.TX, v, t.TZ)
	case SliderTZ:
		e.SetTranslation(t.TX, t.TY, v)
	case SliderRoll:
		e.SetRotation(v, t.Pitch, t.Yaw)
	case SliderPitch:
		e.SetRotation(t.Roll, v, t.Yaw)
	case SliderYaw:
		e.SetRotation(t.Roll, t.Pitch, v)
	default:
		a, ok := clipAxis(name)
		if !ok || len(values) < 2 {
			return false
		}
		e.SetClip(a, int(math.Round(values[0])), int(math.Round(values[1])))
	}
	return e.transform != prevT || e.clip != prevClip
}

func clipAxis(name string) (axis.Axis, bool) {
	for _, a := range axis.All {
		if clipSlider(a) == name {
			return a, true
		}
	}
	return axis.Axial, false
}

func sincos(deg float64) (c, s float64) {
	s, c = math.Sincos(mgl64.DegToRad(deg))
	return c, s
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
