package modes

import (
	"volview/internal/logging"
	"volview/internal/models"
	"volview/pkg/axis"
	"volview/pkg/render"
)

// Controller is the single entry point for user input. Each request changes
// state through the machine, recomputes, and pushes the canonical bundle to
// the surface. Values echoed back by the surface while a push is in flight
// are dropped so a push can never trigger another push.
type Controller struct {
	m       *Machine
	surface render.Surface
	pushing bool
	last    *render.Bundle
}

// NewController wires m to surface and presents the initial bundle
func NewController(m *Machine, surface render.Surface) *Controller {
	c := &Controller{m: m, surface: surface}
	c.push(m.Recompute())
	return c
}

// Machine returns the underlying state machine
func (c *Controller) Machine() *Machine { return c.m }

// Last returns the most recently pushed bundle
func (c *Controller) Last() *render.Bundle { return c.last }

// Pushing reports whether a bundle is being presented right now
func (c *Controller) Pushing() bool { return c.pushing }

func (c *Controller) push(b *render.Bundle) *render.Bundle {
	c.pushing = true
	defer func() { c.pushing = false }()
	c.last = b
	if c.surface != nil {
		c.surface.Present(b)
	}
	return b
}

func (c *Controller) refresh() *render.Bundle {
	return c.push(c.m.Recompute())
}

// owns reports whether one of owners is active. Requests for an inactive
// engine are dropped so only the active mode moves shared state.
func (c *Controller) owns(request string, owners ...render.Mode) bool {
	active := c.m.Active()
	for _, m := range owners {
		if m == active {
			return true
		}
	}
	logging.Logger().Warn("ignored request for inactive mode", "request", request, "active", active.String())
	return false
}

// Bind loads a new volume
func (c *Controller) Bind(vol *models.Volume) *render.Bundle {
	return c.push(c.m.Bind(vol))
}

// SwitchMode activates mode
func (c *Controller) SwitchMode(mode render.Mode) *render.Bundle {
	return c.push(c.m.Activate(mode))
}

// SetMainAxis selects the main axis of the Slice or MultiView mode
func (c *Controller) SetMainAxis(i int) *render.Bundle {
	if !c.owns("main axis", render.Slice, render.MultiView) {
		return c.last
	}
	switch c.m.Active() {
	case render.Slice:
		c.m.slice.SetMainAxis(i)
	case render.MultiView:
		c.m.multi.SetMainAxis(i)
	}
	return c.refresh()
}

// MoveCursor sets one cursor component
func (c *Controller) MoveCursor(a axis.Axis, value int) *render.Bundle {
	c.m.sess.SetAxisPosition(a, value)
	return c.refresh()
}

// SetCursor sets the whole cursor
func (c *Controller) SetCursor(pos models.Cursor) *render.Bundle {
	c.m.sess.SetPosition(pos)
	return c.refresh()
}

// SetSliceIndex moves along the Slice mode's main axis
func (c *Controller) SetSliceIndex(i int) *render.Bundle {
	if !c.owns("slice index", render.Slice) {
		return c.last
	}
	c.m.slice.SetSliceIndex(i)
	return c.refresh()
}

// SetPlane moves an Ortho cutting plane, or a MultiView slice
func (c *Controller) SetPlane(a axis.Axis, position int) *render.Bundle {
	if !c.owns("plane", render.MultiView, render.Ortho) {
		return c.last
	}
	c.m.ortho.SetPlane(a, position)
	return c.refresh()
}

// SetRotation sets the VolumeRender Euler angles in degrees
func (c *Controller) SetRotation(roll, pitch, yaw float64) *render.Bundle {
	if !c.owns("rotation", render.VolumeRender) {
		return c.last
	}
	c.m.volume.SetRotation(roll, pitch, yaw)
	return c.refresh()
}

// SetTranslation sets the VolumeRender translation
func (c *Controller) SetTranslation(tx, ty, tz float64) *render.Bundle {
	if !c.owns("translation", render.VolumeRender) {
		return c.last
	}
	c.m.volume.SetTranslation(tx, ty, tz)
	return c.refresh()
}

// SetClip sets one VolumeRender clip range
func (c *Controller) SetClip(a axis.Axis, lo, hi int) *render.Bundle {
	if !c.owns("clip", render.VolumeRender) {
		return c.last
	}
	c.m.volume.SetClip(a, lo, hi)
	return c.refresh()
}

// SetWindow sets the contrast window
func (c *Controller) SetWindow(center, width float64) *render.Bundle {
	c.m.sess.SetWindow(center, width)
	return c.refresh()
}

// ResetWindow restores the volume's suggested contrast window
func (c *Controller) ResetWindow() *render.Bundle {
	c.m.sess.ResetWindow()
	return c.refresh()
}

// AutoWindow derives the contrast window from the intensity distribution
func (c *Controller) AutoWindow() *render.Bundle {
	c.m.sess.AutoWindow()
	return c.refresh()
}

// SetShowCrosshairs toggles the Slice mode overlay
func (c *Controller) SetShowCrosshairs(show bool) *render.Bundle {
	if !c.owns("crosshairs", render.Slice) {
		return c.last
	}
	c.m.slice.SetShowCrosshairs(show)
	return c.refresh()
}

// SetShowVolume toggles the Ortho full-volume render
func (c *Controller) SetShowVolume(show bool) *render.Bundle {
	if !c.owns("show volume", render.Ortho) {
		return c.last
	}
	c.m.ortho.SetShowVolume(show)
	return c.refresh()
}

// Reset runs the reset action of the active mode: the slice or planes go
// back to the middle, the transform to zero and the clip ranges open up.
func (c *Controller) Reset() *render.Bundle {
	switch c.m.Active() {
	case render.Slice:
		c.m.slice.ResetSlice()
	case render.MultiView, render.Ortho:
		for _, a := range axis.All {
			c.m.ortho.ResetPlane(a)
		}
	case render.VolumeRender:
		c.m.volume.ResetTransform()
		for _, a := range axis.All {
			c.m.volume.ResetClip(a)
		}
	}
	return c.refresh()
}

// OnSurfaceCursor handles a cursor change reported by the surface. Echoes
// of our own push and values equal to the current cursor are ignored. It
// reports whether the event was applied.
func (c *Controller) OnSurfaceCursor(pos models.Cursor) bool {
	if c.pushing {
		logging.Logger().Warn("ignored cursor echo", "cursor", pos)
		return false
	}
	if !c.m.sess.SetPosition(pos) {
		return false
	}
	c.refresh()
	return true
}

// OnSurfaceSlider handles a slider change reported by the surface, with the
// same echo rules as OnSurfaceCursor
func (c *Controller) OnSurfaceSlider(name string, values ...float64) bool {
	if c.pushing {
		logging.Logger().Warn("ignored slider echo", "slider", name, "values", values)
		return false
	}
	if !c.m.ApplySlider(name, values...) {
		return false
	}
	c.refresh()
	return true
}
