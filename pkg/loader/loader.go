// Package loader builds a volume from a directory of 2D grayscale slice
// images, ordered by the number embedded in each filename.
package loader

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	"gopkg.in/yaml.v3"

	"volview/internal/logging"
	"volview/internal/models"
)

// MetadataFile is the optional sidecar describing the series
const MetadataFile = "volume.yaml"

var (
	// ErrNoImages is returned when the directory holds no slice images
	ErrNoImages = errors.New("no slice images found")

	// ErrSizeMismatch is returned when slices differ in size
	ErrSizeMismatch = errors.New("slice size mismatch")
)

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true,
	".tif": true, ".tiff": true, ".bmp": true,
}

// Metadata is the sidecar content. Zero values fall back to the defaults.
type Metadata struct {
	Description  string       `yaml:"description"`
	Spacing      *[3]float64  `yaml:"spacing"`
	WindowCenter *float64     `yaml:"windowCenter"`
	WindowWidth  *float64     `yaml:"windowWidth"`
	Tags         []models.Tag `yaml:"tags"`
}

// Defaults are the volume properties used where the sidecar is silent. A
// zero WindowWidth keeps the built-in window.
type Defaults struct {
	Spacing      [3]float64
	WindowCenter float64
	WindowWidth  float64
}

// LoadDirectory reads every slice image in dir into a volume. Sidecar
// values take precedence over defaults.
func LoadDirectory(dir string, defaults Defaults) (*models.Volume, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var imageFiles []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExts[strings.ToLower(filepath.Ext(entry.Name()))] {
			imageFiles = append(imageFiles, entry.Name())
		}
	}
	if len(imageFiles) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoImages)
	}

	// Slice order follows the number in the filename; names break ties
	sort.Slice(imageFiles, func(i, j int) bool {
		numI := extractNumber(imageFiles[i])
		numJ := extractNumber(imageFiles[j])
		if numI != numJ {
			return numI < numJ
		}
		return imageFiles[i] < imageFiles[j]
	})

	var (
		data          []float64
		width, height int
	)
	for i, filename := range imageFiles {
		img, err := loadImage(filepath.Join(dir, filename))
		if err != nil {
			return nil, fmt.Errorf("failed to load image %s: %w", filename, err)
		}

		bounds := img.Bounds()
		if i == 0 {
			width, height = bounds.Dx(), bounds.Dy()
			data = make([]float64, 0, width*height*len(imageFiles))
		} else if bounds.Dx() != width || bounds.Dy() != height {
			return nil, fmt.Errorf("%s is %dx%d, expected %dx%d: %w",
				filename, bounds.Dx(), bounds.Dy(), width, height, ErrSizeMismatch)
		}
		data = appendIntensities(data, img)
	}

	meta, err := readMetadata(dir)
	if err != nil {
		return nil, err
	}
	spacing := defaults.Spacing
	if meta.Spacing != nil {
		spacing = *meta.Spacing
	}

	vol, err := models.NewVolume(data, [3]int{len(imageFiles), height, width}, spacing)
	if err != nil {
		return nil, err
	}
	vol.Description = meta.Description
	if vol.Description == "" {
		vol.Description = filepath.Base(filepath.Clean(dir))
	}
	if defaults.WindowWidth > 0 {
		vol.WindowCenter, vol.WindowWidth = defaults.WindowCenter, defaults.WindowWidth
	}
	if meta.WindowCenter != nil {
		vol.WindowCenter = *meta.WindowCenter
	}
	if meta.WindowWidth != nil {
		vol.WindowWidth = *meta.WindowWidth
	}
	for _, t := range meta.Tags {
		vol.Tags = append(vol.Tags, models.NewTag(t.Tag, t.Name, t.VR, t.Value))
	}

	logging.Logger().Info("loaded slices",
		"dir", dir, "count", len(imageFiles), "width", width, "height", height, "spacing", spacing)
	return vol, nil
}

func readMetadata(dir string) (Metadata, error) {
	var meta Metadata
	data, err := os.ReadFile(filepath.Join(dir, MetadataFile))
	if errors.Is(err, os.ErrNotExist) {
		return meta, nil
	}
	if err != nil {
		return meta, fmt.Errorf("error reading metadata: %w", err)
	}
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return meta, fmt.Errorf("error parsing metadata: %w", err)
	}
	return meta, nil
}

// extractNumber extracts the numeric part from a filename
func extractNumber(filename string) int {
	base := filepath.Base(filename)
	var numStr strings.Builder
	for _, c := range base {
		if c >= '0' && c <= '9' {
			numStr.WriteRune(c)
		}
	}

	if numStr.Len() > 0 {
		num, err := strconv.Atoi(numStr.String())
		if err == nil {
			return num
		}
	}
	return 0
}

func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	return img, err
}

// appendIntensities appends the 16-bit luminance of every pixel in row-major order
func appendIntensities(dst []float64, img image.Image) []float64 {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			g := color.Gray16Model.Convert(img.At(x, y)).(color.Gray16)
			dst = append(dst, float64(g.Y))
		}
	}
	return dst
}
