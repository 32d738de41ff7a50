package modes

import (
	"testing"

	"volview/internal/models"
	"volview/pkg/session"
)

// newTestVolume creates a volume whose voxel values encode their position
func newTestVolume(t *testing.T, shape [3]int, spacing [3]float64) *models.Volume {
	t.Helper()
	data := make([]float64, shape[0]*shape[1]*shape[2])
	for z := 0; z < shape[0]; z++ {
		for y := 0; y < shape[1]; y++ {
			for x := 0; x < shape[2]; x++ {
				data[z*shape[1]*shape[2]+y*shape[2]+x] = float64(z*10000 + y*100 + x)
			}
		}
	}
	vol, err := models.NewVolume(data, shape, spacing)
	if err != nil {
		t.Fatalf("Failed to create volume: %v", err)
	}
	return vol
}

// newTestMachine binds the reference (10, 20, 30) volume with spacing (2, 1, 1)
func newTestMachine(t *testing.T) *Machine {
	t.Helper()
	sess := session.New()
	m := NewMachine(sess, DefaultOptions())
	m.Bind(newTestVolume(t, [3]int{10, 20, 30}, [3]float64{2, 1, 1}))
	return m
}
