package floorplan

// Pixel classification thresholds. Booths print as bright white fills;
// corridors print as a mid-brightness brown/neutral wash.
const (
	boothBrightThreshold = 230

	corridorBandLow  = 100
	corridorBandHigh = 180
	corridorDiffTol  = 60
)

// PixelClass labels a single pixel.
type PixelClass int

const (
	ClassNone PixelClass = iota
	ClassBooth
	ClassCorridor
)

// BoothLike reports whether a pixel is bright enough to belong to a booth fill.
func BoothLike(r, g, b uint8) bool {
	return r > boothBrightThreshold && g > boothBrightThreshold && b > boothBrightThreshold
}

// CorridorLike reports whether a pixel matches the corridor color heuristic:
// red channel in the mid brightness band with near-neutral channel spread.
func CorridorLike(r, g, b uint8) bool {
	if r < corridorBandLow || r > corridorBandHigh {
		return false
	}
	dRG := int(r) - int(g)
	if dRG < 0 {
		dRG = -dRG
	}
	dGB := int(g) - int(b)
	if dGB < 0 {
		dGB = -dGB
	}
	return dRG <= corridorDiffTol && dGB <= corridorDiffTol
}

// Classify labels a pixel. Booth takes precedence; the two classes cannot
// overlap given the thresholds above, but the ordering makes that explicit.
func Classify(r, g, b uint8) PixelClass {
	if BoothLike(r, g, b) {
		return ClassBooth
	}
	if CorridorLike(r, g, b) {
		return ClassCorridor
	}
	return ClassNone
}

// CorridorMask is a boolean grid marking walkable pixels. It is a transient
// detection artifact and is never persisted.
type CorridorMask struct {
	Width  int
	Height int
	cells  []bool
}

// NewCorridorMask allocates an all-false mask.
func NewCorridorMask(width, height int) *CorridorMask {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &CorridorMask{
		Width:  width,
		Height: height,
		cells:  make([]bool, width*height),
	}
}

// BuildCorridorMask classifies every pixel of the buffer. A malformed buffer
// yields an empty mask rather than an error.
func BuildCorridorMask(buf *PixelBuffer) *CorridorMask {
	if !buf.Valid() {
		return NewCorridorMask(0, 0)
	}

	mask := NewCorridorMask(buf.Width, buf.Height)
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			r, g, b := buf.RGB(x, y)
			if CorridorLike(r, g, b) {
				mask.cells[y*buf.Width+x] = true
			}
		}
	}
	return mask
}

// At reports whether (x,y) is a corridor pixel; out-of-bounds is false.
func (m *CorridorMask) At(x, y int) bool {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return false
	}
	return m.cells[y*m.Width+x]
}

// Set marks or clears a cell; out-of-bounds writes are ignored.
func (m *CorridorMask) Set(x, y int, v bool) {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return
	}
	m.cells[y*m.Width+x] = v
}

// Count returns the number of corridor pixels.
func (m *CorridorMask) Count() int {
	n := 0
	for _, c := range m.cells {
		if c {
			n++
		}
	}
	return n
}

// Coverage returns the walkable fraction of the image, 0 when empty.
func (m *CorridorMask) Coverage() float64 {
	total := m.Width * m.Height
	if total == 0 {
		return 0
	}
	return float64(m.Count()) / float64(total)
}
