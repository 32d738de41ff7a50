package render

// Summary is a serializable digest of a bundle
type Summary struct {
	Mode           Mode               `yaml:"mode"`
	NDisplay       int                `yaml:"ndisplay"`
	Version        uint64             `yaml:"version"`
	Slices         map[string][2]int  `yaml:"slices,omitempty"`
	Overlays       int                `yaml:"overlays"`
	Labels         []string           `yaml:"labels,omitempty"`
	Affine         *Affine            `yaml:"affine,omitempty"`
	GLMatrix       []float32          `yaml:"glMatrix,omitempty,flow"`
	ClipOffsets    []float64          `yaml:"clipOffsets,omitempty"`
	ContrastLimits [2]float64         `yaml:"contrastLimits"`
	Sliders        map[string]float64 `yaml:"sliders,omitempty"`
}

// Summarize digests b
func Summarize(b *Bundle) Summary {
	s := Summary{
		Mode:           b.Mode,
		NDisplay:       b.NDisplay,
		Version:        b.Version,
		Overlays:       len(b.Overlays2D) + len(b.Overlays3D),
		Affine:         b.Affine,
		ContrastLimits: b.ContrastLimits,
	}
	if len(b.Slices) > 0 {
		s.Slices = make(map[string][2]int, len(b.Slices))
		for _, sl := range b.Slices {
			s.Slices[sl.Name()] = sl.Shape()
		}
	}
	if b.Affine != nil {
		gl := b.Affine.GL()
		s.GLMatrix = gl[:]
	}
	for _, l := range b.Labels {
		s.Labels = append(s.Labels, l.Text)
	}
	for _, c := range b.ClipPlanes {
		s.ClipOffsets = append(s.ClipOffsets, c.Offset())
	}
	if len(b.Sliders) > 0 {
		s.Sliders = make(map[string]float64, len(b.Sliders))
		for _, sl := range b.Sliders {
			s.Sliders[sl.Name] = sl.Value
		}
	}
	return s
}
