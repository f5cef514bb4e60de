// Package floorplan classifies floor-plan pixels and extracts contiguous
// regions from them. It operates on already-decoded RGBA buffers; image
// decoding belongs to the caller.
package floorplan

import (
	"image"

	"floornav/pkg/colorutil"
)

// PixelBuffer is a decoded raster image, 4 bytes (RGBA) per pixel.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// FromImage copies an image.Image into a PixelBuffer.
func FromImage(img image.Image) *PixelBuffer {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	buf := &PixelBuffer{
		Width:  w,
		Height: h,
		Pix:    make([]uint8, w*h*4),
	}

	i := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			buf.Pix[i] = uint8(r >> 8)
			buf.Pix[i+1] = uint8(g >> 8)
			buf.Pix[i+2] = uint8(b >> 8)
			buf.Pix[i+3] = uint8(a >> 8)
			i += 4
		}
	}

	return buf
}

// Valid reports whether the buffer dimensions are positive and consistent
// with the pixel data length.
func (b *PixelBuffer) Valid() bool {
	if b == nil || b.Width <= 0 || b.Height <= 0 {
		return false
	}
	return len(b.Pix) >= b.Width*b.Height*4
}

// RGB returns the color channels at (x,y). The caller must ensure the
// coordinate is in bounds.
func (b *PixelBuffer) RGB(x, y int) (r, g, bl uint8) {
	i := (y*b.Width + x) * 4
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2]
}

// Stats summarizes overall image characteristics, used to warn about images
// that are unlikely to classify well (near-black scans, grayscale plans).
type Stats struct {
	MeanBrightness float64
	WhiteRatio     float64
	MeanSaturation float64
}

// ComputeStats scans the buffer once and returns aggregate color statistics.
func (b *PixelBuffer) ComputeStats() Stats {
	if !b.Valid() {
		return Stats{}
	}

	total := b.Width * b.Height
	var brightnessSum, saturationSum float64
	white := 0

	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			r, g, bl := b.RGB(x, y)
			lum := colorutil.Luminance(r, g, bl)
			brightnessSum += lum
			if lum > 200 {
				white++
			}
			_, s, _ := colorutil.RGBToHSV(float64(r), float64(g), float64(bl))
			saturationSum += s
		}
	}

	return Stats{
		MeanBrightness: brightnessSum / float64(total),
		WhiteRatio:     float64(white) / float64(total),
		MeanSaturation: saturationSum / float64(total),
	}
}
