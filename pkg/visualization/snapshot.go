package visualization

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"volview/internal/models"
	"volview/pkg/axis"
	"volview/pkg/render"
)

// ErrEmptyBundle is returned when a bundle has nothing to draw
var ErrEmptyBundle = errors.New("empty bundle")

var (
	background = color.RGBA{A: 255}
	labelColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Snapshot rasterizes the 2D content of a bundle. Physical layouts are
// drawn at pxPerMM pixels per millimeter. 3D modes are shown as flat
// previews: Ortho as its three plane slices side by side, VolumeRender as
// a maximum intensity projection of the clipped box along Z.
func Snapshot(b *render.Bundle, pxPerMM float64) (*image.RGBA, error) {
	if b.Empty() {
		return nil, ErrEmptyBundle
	}
	if !(pxPerMM > 0) {
		return nil, fmt.Errorf("pixels per mm must be > 0, got %v", pxPerMM)
	}

	switch b.Mode {
	case render.Slice:
		p := physicalPane(b.Slices[0], 0, 0)
		return composite(b, []render.Pane{p}, b.Slices, pxPerMM, true), nil
	case render.MultiView:
		return composite(b, b.Panes, b.Slices, pxPerMM, true), nil
	case render.Ortho:
		return composite(b, sideBySide(b.Slices), b.Slices, pxPerMM, false), nil
	case render.VolumeRender:
		mip, err := projectClipped(b)
		if err != nil {
			return nil, err
		}
		slices := []*models.Slice{mip}
		return composite(b, sideBySide(slices), slices, pxPerMM, false), nil
	}
	return nil, fmt.Errorf("unsupported mode %v", b.Mode)
}

// physicalPane places a slice at its physical size with its origin at (top, left)
func physicalPane(s *models.Slice, top, left float64) render.Pane {
	return render.Pane{
		Axis:      s.Axis,
		Main:      true,
		Size:      s.Shape(),
		Scale:     [2]float64{s.RowSpacing, s.ColSpacing},
		Translate: [2]float64{top, left},
		Ratio:     1,
		Opacity:   1,
	}
}

// sideBySide lays slices out left to right at physical scale
func sideBySide(slices []*models.Slice) []render.Pane {
	panes := make([]render.Pane, 0, len(slices))
	left := 0.0
	for _, s := range slices {
		p := physicalPane(s, 0, left)
		panes = append(panes, p)
		left += p.Extent()[1] * 1.05
	}
	return panes
}

func composite(b *render.Bundle, panes []render.Pane, slices []*models.Slice, ppm float64, overlays bool) *image.RGBA {
	var w, h float64
	for _, p := range panes {
		ext := p.Extent()
		h = math.Max(h, (p.Translate[0]+ext[0])*ppm)
		w = math.Max(w, (p.Translate[1]+ext[1])*ppm)
	}
	canvas := image.NewRGBA(image.Rect(0, 0, int(math.Ceil(w)), int(math.Ceil(h))))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	lower, upper := b.ContrastLimits[0], b.ContrastLimits[1]
	byAxis := make(map[axis.Axis]render.Pane, len(panes))
	for i, p := range panes {
		byAxis[p.Axis] = p
		src := RenderSlice(slices[i], lower, upper)
		xdraw.NearestNeighbor.Scale(canvas, paneRect(p, ppm), src, src.Bounds(), draw.Src, nil)
	}

	if overlays {
		for _, line := range b.Overlays2D {
			p, ok := byAxis[line.Pane]
			if !ok {
				continue
			}
			for i := 1; i < len(line.Points); i++ {
				a := toPixel(p.ToLayout(line.Points[i-1]), ppm, canvas.Bounds())
				c := toPixel(p.ToLayout(line.Points[i]), ppm, canvas.Bounds())
				drawLine(canvas, a, c, line.Tag().RGBA)
			}
		}
	}

	labels := b.Labels
	if len(labels) == 0 {
		for _, p := range panes {
			labels = append(labels, render.Label{Text: p.Axis.Label(), Position: render.Point2(p.Translate)})
		}
	}
	for _, l := range labels {
		drawLabel(canvas, l.Text, toPixel(l.Position, ppm, canvas.Bounds()))
	}
	return canvas
}

func paneRect(p render.Pane, ppm float64) image.Rectangle {
	ext := p.Extent()
	x0 := int(math.Round(p.Translate[1] * ppm))
	y0 := int(math.Round(p.Translate[0] * ppm))
	x1 := int(math.Round((p.Translate[1] + ext[1]) * ppm))
	y1 := int(math.Round((p.Translate[0] + ext[0]) * ppm))
	return image.Rect(x0, y0, x1, y1)
}

// toPixel maps a layout point (row, col) to a pixel inside bounds
func toPixel(pt render.Point2, ppm float64, bounds image.Rectangle) image.Point {
	x := int(math.Round(pt[1] * ppm))
	y := int(math.Round(pt[0] * ppm))
	if x >= bounds.Max.X {
		x = bounds.Max.X - 1
	}
	if y >= bounds.Max.Y {
		y = bounds.Max.Y - 1
	}
	return image.Pt(x, y)
}

// drawLine draws a one pixel wide segment with a DDA walk
func drawLine(img *image.RGBA, a, b image.Point, c color.RGBA) {
	dx, dy := b.X-a.X, b.Y-a.Y
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		img.SetRGBA(a.X, a.Y, c)
		return
	}
	for i := 0; i <= steps; i++ {
		x := a.X + int(math.Round(float64(dx*i)/float64(steps)))
		y := a.Y + int(math.Round(float64(dy*i)/float64(steps)))
		img.SetRGBA(x, y, c)
	}
}

func drawLabel(img *image.RGBA, text string, at image.Point) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelColor),
		Face: face,
		Dot:  fixed.P(at.X+2, at.Y+face.Ascent+2),
	}
	d.DrawString(text)
}

// projectClipped projects the voxels kept by every clip plane of a
// VolumeRender bundle along Z
func projectClipped(b *render.Bundle) (*models.Slice, error) {
	if len(b.ClipPlanes) != 2*axis.Count {
		return nil, fmt.Errorf("expected %d clip planes, got %d", 2*axis.Count, len(b.ClipPlanes))
	}
	var box Box
	for _, a := range axis.All {
		lower, upper := b.ClipPlanes[2*a], b.ClipPlanes[2*a+1]
		dim := b.Volume.Dim(a)
		box.Min[a], box.Max[a] = -1, -1
		for i := 0; i < dim; i++ {
			p := render.Unit(a).Scale(float64(i))
			if lower.Keeps(p) && upper.Keeps(p) {
				if box.Min[a] < 0 {
					box.Min[a] = i
				}
				box.Max[a] = i + 1
			}
		}
		// a range past the last voxel still shows the last layer
		if box.Min[a] < 0 {
			box.Min[a], box.Max[a] = dim-1, dim
		}
	}
	return NewViewer(b.Volume).Project(axis.Axial, box)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
