// Package colorutil provides shared color utilities for floor-plan analysis.
package colorutil

import (
	"math"
)

// Luminance returns perceived brightness in the 0-255 range using BT.601 weights.
func Luminance(r, g, b uint8) float64 {
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}

// RGBToHSV converts RGB (0-255) to HSV in the OpenCV convention:
// H 0-180, S 0-255, V 0-255. Saturation of the corridor wash drives the
// grayscale-scan warning in image stats.
func RGBToHSV(r, g, b float64) (h, s, v float64) {
	r /= 255.0
	g /= 255.0
	b /= 255.0

	cmax := math.Max(r, math.Max(g, b))
	cmin := math.Min(r, math.Min(g, b))
	chroma := cmax - cmin

	v = cmax * 255.0
	if cmax > 0 {
		s = (chroma / cmax) * 255.0
	}

	switch {
	case chroma == 0:
		h = 0
	case cmax == r:
		h = 60 * math.Mod((g-b)/chroma, 6)
	case cmax == g:
		h = 60 * ((b-r)/chroma + 2)
	default:
		h = 60 * ((r-g)/chroma + 4)
	}
	if h < 0 {
		h += 360
	}

	// Halve into OpenCV's 0-180 hue range.
	return h / 2, s, v
}
