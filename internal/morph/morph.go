// Package morph cleans corridor masks with OpenCV morphology. Scanned floor
// plans carry speckle noise and hairline gaps that break line-of-sight
// sampling; a close pass bridges the gaps and an open pass drops the noise.
package morph

import (
	"image"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"floornav/internal/floorplan"
)

// Filter applies close-then-open morphology to a corridor mask.
type Filter struct {
	iterations int
}

// NewFilter creates a mask filter. Iteration counts below 1 are clamped.
func NewFilter(iterations int) *Filter {
	if iterations < 1 {
		iterations = 1
	}
	return &Filter{iterations: iterations}
}

// Clean runs the morphology passes and returns a new mask of the same size.
func (f *Filter) Clean(mask *floorplan.CorridorMask) (*floorplan.CorridorMask, error) {
	if mask.Width <= 0 || mask.Height <= 0 {
		return mask, nil
	}

	m := gocv.NewMatWithSize(mask.Height, mask.Width, gocv.MatTypeCV8U)
	defer m.Close()
	if m.Empty() {
		return nil, errors.New("allocating mask mat")
	}
	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			if mask.At(x, y) {
				m.SetUCharAt(y, x, 255)
			}
		}
	}

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{3, 3})
	defer kernel.Close()

	for i := 0; i < f.iterations; i++ {
		gocv.MorphologyEx(m, &m, gocv.MorphClose, kernel)
	}
	for i := 0; i < f.iterations; i++ {
		gocv.MorphologyEx(m, &m, gocv.MorphOpen, kernel)
	}

	out := floorplan.NewCorridorMask(mask.Width, mask.Height)
	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			if m.GetUCharAt(y, x) > 0 {
				out.Set(x, y, true)
			}
		}
	}
	return out, nil
}
