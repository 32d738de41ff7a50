package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"volview/internal/models"
	"volview/pkg/axis"
)

// Viewer cuts 2D slices and sub-boxes out of a volume
type Viewer struct {
	vol     *models.Volume
	workers int
}

// NewViewer creates a viewer over vol that exports with one worker per CPU
func NewViewer(vol *models.Volume) *Viewer {
	return &Viewer{vol: vol, workers: runtime.NumCPU()}
}

// SetWorkers sets the number of goroutines used by SaveSliceSequence
func (v *Viewer) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	v.workers = n
}

// Volume returns the viewed volume
func (v *Viewer) Volume() *models.Volume {
	return v.vol
}

// ExtractSlice fixes the volume at position along a and keeps the two other
// axes as (row, col). Position is clamped into the volume.
func (v *Viewer) ExtractSlice(a axis.Axis, position int) *models.Slice {
	rowAxis, colAxis := a.Others()
	position = clampIndex(position, v.vol.Dim(a))

	s := &models.Slice{
		Axis:       a,
		Index:      position,
		Rows:       v.vol.Dim(rowAxis),
		Cols:       v.vol.Dim(colAxis),
		RowSpacing: v.vol.SpacingOf(rowAxis),
		ColSpacing: v.vol.SpacingOf(colAxis),
	}
	s.Data = make([]float64, s.Rows*s.Cols)

	var p [3]int
	p[a] = position
	for r := 0; r < s.Rows; r++ {
		p[rowAxis] = r
		for c := 0; c < s.Cols; c++ {
			p[colAxis] = c
			s.Data[r*s.Cols+c] = v.vol.At(p[0], p[1], p[2])
		}
	}
	return s
}

// Box is a half-open voxel range [Min, Max) per axis in (z, y, x) order
type Box struct {
	Min, Max [3]int
}

// Size returns the number of voxels along each axis
func (b Box) Size() [3]int {
	return [3]int{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1], b.Max[2] - b.Min[2]}
}

// ExtractRegion copies the voxels inside box into a new volume with the
// same spacing
func (v *Viewer) ExtractRegion(box Box) (*models.Volume, error) {
	shape := v.vol.Shape()
	for i := 0; i < 3; i++ {
		if box.Min[i] < 0 {
			return nil, fmt.Errorf("start coordinates must be non-negative")
		}
		if box.Max[i] <= box.Min[i] {
			return nil, fmt.Errorf("size dimensions must be positive")
		}
		if box.Max[i] > shape[i] {
			return nil, fmt.Errorf("region extends beyond volume boundaries")
		}
	}

	size := box.Size()
	region := make([]float64, size[0]*size[1]*size[2])
	for z := 0; z < size[0]; z++ {
		for y := 0; y < size[1]; y++ {
			src := v.vol.Index(box.Min[0]+z, box.Min[1]+y, box.Min[2])
			dst := z*size[1]*size[2] + y*size[2]
			copy(region[dst:dst+size[2]], v.vol.Data[src:src+size[2]])
		}
	}
	return models.NewVolume(region, size, v.vol.Spacing)
}

// Project returns the maximum intensity projection of box along a
func (v *Viewer) Project(a axis.Axis, box Box) (*models.Slice, error) {
	region, err := v.ExtractRegion(box)
	if err != nil {
		return nil, err
	}
	rv := NewViewer(region)
	out := rv.ExtractSlice(a, 0)
	out.Index = box.Min[a]
	for i := 1; i < region.Dim(a); i++ {
		s := rv.ExtractSlice(a, i)
		for j, val := range s.Data {
			if val > out.Data[j] {
				out.Data[j] = val
			}
		}
	}
	return out, nil
}

// RenderSlice maps intensities through the linear window [lower, upper]
// into a 16-bit grayscale image
func RenderSlice(s *models.Slice, lower, upper float64) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, s.Cols, s.Rows))
	span := upper - lower
	if span <= 0 {
		span = 1
	}
	for r := 0; r < s.Rows; r++ {
		for c := 0; c < s.Cols; c++ {
			t := (s.At(r, c) - lower) / span
			value := uint16(math.Max(0, math.Min(65535, t*65535)))
			img.SetGray16(c, r, color.Gray16{Y: value})
		}
	}
	return img
}

// SaveImage encodes img as PNG or JPEG depending on the file extension
func SaveImage(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(file, img, &jpeg.Options{Quality: 90})
	default:
		err = png.Encode(file, img)
	}
	if err != nil {
		file.Close()
		return fmt.Errorf("encode %s: %w", filename, err)
	}
	return file.Close()
}

// SaveSliceSequence writes every slice along a, windowed to [lower, upper].
// Slices are split into contiguous ranges, one per worker.
func (v *Viewer) SaveSliceSequence(a axis.Axis, outputDir string, lower, upper float64) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	letter := strings.ToLower(a.Letter())
	numSlices := v.vol.Dim(a)
	slicesPerWorker := (numSlices + v.workers - 1) / v.workers

	var wg sync.WaitGroup
	errs := make([]error, v.workers)
	for w := 0; w < v.workers; w++ {
		start := w * slicesPerWorker
		end := min(start+slicesPerWorker, numSlices)
		if start >= end {
			break
		}

		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			for pos := start; pos < end; pos++ {
				img := RenderSlice(v.ExtractSlice(a, pos), lower, upper)
				filename := filepath.Join(outputDir, fmt.Sprintf("slice_%s_%03d.png", letter, pos))
				if err := SaveImage(img, filename); err != nil {
					errs[w] = err
					return
				}
			}
		}(w, start, end)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}
