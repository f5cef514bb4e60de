// Package ocr reads booth labels off floor-plan images with Tesseract.
package ocr

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"github.com/pkg/errors"

	"floornav/internal/floorplan"
)

// regionPadding grows the OCR crop so text hugging the booth border is not
// clipped, in pixels.
const regionPadding = 4

// Engine wraps a Tesseract client for booth label recognition.
type Engine struct {
	client *gosseract.Client
}

// NewEngine creates an OCR engine configured for short alphanumeric labels.
func NewEngine() (*Engine, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "setting OCR language")
	}
	// Booth labels are names and numbers, not prose. Disabling dictionary
	// correction keeps Tesseract from rewriting "B12" into a word.
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")

	return &Engine{client: client}, nil
}

// Close releases Tesseract resources.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// Label crops the region from the buffer and runs text recognition on it.
// Whitespace runs are collapsed; an empty string with nil error means the
// region holds no readable text.
func (e *Engine) Label(buf *floorplan.PixelBuffer, region floorplan.Region) (string, error) {
	if !buf.Valid() {
		return "", errors.New("empty image buffer")
	}

	x0 := max(region.MinX-regionPadding, 0)
	y0 := max(region.MinY-regionPadding, 0)
	x1 := min(region.MaxX+regionPadding+1, buf.Width)
	y1 := min(region.MaxY+regionPadding+1, buf.Height)
	if x1 <= x0 || y1 <= y0 {
		return "", errors.New("region outside image")
	}

	crop := image.NewRGBA(image.Rect(0, 0, x1-x0, y1-y0))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r, g, b := buf.RGB(x, y)
			crop.SetRGBA(x-x0, y-y0, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}

	var encoded bytes.Buffer
	if err := png.Encode(&encoded, crop); err != nil {
		return "", errors.Wrap(err, "encoding OCR crop")
	}

	if err := e.client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", errors.Wrap(err, "setting page segmentation mode")
	}
	if err := e.client.SetImageFromBytes(encoded.Bytes()); err != nil {
		return "", errors.Wrap(err, "loading OCR image")
	}

	text, err := e.client.Text()
	if err != nil {
		return "", errors.Wrap(err, "recognizing text")
	}
	return strings.Join(strings.Fields(text), " "), nil
}
