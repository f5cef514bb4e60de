// Command floorscan analyzes a floor-plan image and prints the detected
// navigation graph as JSON.
//
// Usage: floorscan [flags] <image>
//
// Two modes are supported: the default feature-detection mode emits booth,
// junction, and entrance candidates with line-of-sight edges; grid mode
// (-grid) emits booth destinations plus a dense routing lattice.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"

	"floornav/config"
	"floornav/internal/detect"
	"floornav/internal/floorplan"
	"floornav/internal/logs"
	"floornav/internal/morph"
	"floornav/internal/ocr"
	"floornav/internal/version"
)

func main() {
	var (
		gridMode   = flag.Bool("grid", false, "emit a dense routing grid instead of detected features")
		spacing    = flag.Int("spacing", 0, "grid spacing in pixels (grid mode, 0 = config default)")
		enableOCR  = flag.Bool("ocr", false, "read booth labels with Tesseract")
		cleanup    = flag.Int("cleanup", 0, "corridor mask morphology iterations (0 = config default)")
		configName = flag.String("config", "", "config document name (default: built-in defaults)")
		outPath    = flag.String("o", "", "write JSON to file instead of stdout")
		showVer    = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVer {
		fmt.Println(version.String())
		return
	}

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <image>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := loadConfig(*configName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *enableOCR {
		cfg.Detection.EnableOCR = true
	}
	if *cleanup > 0 {
		cfg.Detection.MaskCleanupIterations = *cleanup
	}
	if *spacing > 0 {
		cfg.Detection.GridSpacing = *spacing
	}

	logger, err := logs.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building logger: %v\n", err)
		os.Exit(1)
	}

	img, err := decodeImage(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding image: %v\n", err)
		os.Exit(1)
	}
	img = downscale(img, cfg.Detection.MaxImageDimension)
	buf := floorplan.FromImage(img)

	opts := []detect.Option{
		detect.WithLogger(logger),
		detect.WithConfidenceThreshold(cfg.Detection.ConfidenceThreshold),
	}
	if cfg.Detection.MaskCleanupIterations > 0 {
		opts = append(opts, detect.WithMaskFilter(morph.NewFilter(cfg.Detection.MaskCleanupIterations)))
	}
	if cfg.Detection.EnableOCR {
		engine, err := ocr.NewEngine()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error starting OCR engine: %v\n", err)
			os.Exit(1)
		}
		defer engine.Close()
		opts = append(opts, detect.WithLabeler(engine))
	}
	detector := detect.NewDetector(opts...)

	var out any
	if *gridMode {
		out = detector.GenerateGrid(buf, cfg.Detection.GridSpacing)
	} else {
		out = detector.Analyze(buf)
	}

	if err := writeJSON(out, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig prefers the default config document when present and falls back
// to built-in defaults when it is not.
func loadConfig(name string) (*config.Config, error) {
	if name != "" {
		return config.LoadWithEnv(name, "config", ".")
	}
	cfg, err := config.New()
	if errors.Is(err, config.ErrNotFound) {
		return config.Default(), nil
	}
	return cfg, err
}

// decodeImage reads PNG, JPEG, or BMP, sniffing the registered formats.
func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

// downscale resizes the image so neither dimension exceeds maxDim, keeping
// aspect ratio. Oversized scans otherwise dominate analysis time.
func downscale(img image.Image, maxDim int) image.Image {
	if maxDim <= 0 {
		return img
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	scale := float64(maxDim) / float64(w)
	if h > w {
		scale = float64(maxDim) / float64(h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Over, nil)
	return dst
}

func writeJSON(v any, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
