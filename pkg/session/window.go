package session

// MinWindowWidth is the narrowest contrast window accepted
const MinWindowWidth = 1.0

// Window is a linear contrast window
type Window struct {
	Center float64 `yaml:"center"`
	Width  float64 `yaml:"width"`
}

// NewWindow builds a window, widening it to MinWindowWidth if needed
func NewWindow(center, width float64) Window {
	if !(width >= MinWindowWidth) {
		width = MinWindowWidth
	}
	return Window{Center: center, Width: width}
}

// Limits returns the intensities mapped to black and white
func (w Window) Limits() (lower, upper float64) {
	return w.Center - w.Width/2, w.Center + w.Width/2
}
