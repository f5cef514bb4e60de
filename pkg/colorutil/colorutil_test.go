package colorutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLuminance(t *testing.T) {
	assert.InDelta(t, 255, Luminance(255, 255, 255), 1e-9)
	assert.InDelta(t, 0, Luminance(0, 0, 0), 1e-9)
	// Green dominates perceived brightness.
	assert.Greater(t, Luminance(0, 255, 0), Luminance(255, 0, 0))
	assert.Greater(t, Luminance(255, 0, 0), Luminance(0, 0, 255))
}

func TestRGBToHSV(t *testing.T) {
	h, s, v := RGBToHSV(255, 0, 0)
	assert.InDelta(t, 0, h, 1e-9)
	assert.InDelta(t, 255, s, 1e-9)
	assert.InDelta(t, 255, v, 1e-9)

	// Gray has no saturation and an undefined hue reported as 0.
	h, s, v = RGBToHSV(128, 128, 128)
	assert.InDelta(t, 0, h, 1e-9)
	assert.InDelta(t, 0, s, 1e-9)
	assert.InDelta(t, 128, v, 1e-9)

	// Pure green sits a third of the way around the 0-180 hue circle.
	h, _, _ = RGBToHSV(0, 255, 0)
	assert.InDelta(t, 60, h, 1e-9)
}
