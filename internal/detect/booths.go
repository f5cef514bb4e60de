package detect

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/stat"

	"floornav/internal/floorplan"
	"floornav/internal/nav"
)

// Booth acceptance rules, in pixels.
const (
	minBoothPixels = 400
	maxBoothPixels = 50000
	maxBBoxFrac    = 0.95
	minFillRatio   = 0.3

	// Pixel counts in this sub-range match the footprint of a typical
	// exhibition booth and earn a confidence bonus.
	typicalMinPixels = 800
	typicalMaxPixels = 10000
)

// Size categories relative to the median booth area.
const (
	roomAreaFactor  = 3.0
	kioskAreaFactor = 0.3
)

// detectBooths labels bright regions and scores the ones that pass the size
// and shape rules.
func (d *Detector) detectBooths(buf *floorplan.PixelBuffer) []DetectedNode {
	regions := floorplan.LabelBoothRegions(buf)

	var accepted []floorplan.Region
	for _, r := range regions {
		if !boothSizeValid(r, buf.Width, buf.Height) {
			continue
		}
		if r.FillRatio() < minFillRatio {
			continue
		}
		accepted = append(accepted, r)
	}
	if len(accepted) == 0 {
		return nil
	}

	categories := categorizeByArea(accepted)
	counters := map[string]int{}

	nodes := make([]DetectedNode, 0, len(accepted))
	for i, r := range accepted {
		cat := categories[i]
		counters[cat]++
		name := fmt.Sprintf("%s %d", cat, counters[cat])

		if d.labeler != nil {
			if text, err := d.labeler.Label(buf, r); err == nil {
				if text = strings.TrimSpace(text); text != "" {
					name = text
				}
			}
		}

		nodes = append(nodes, DetectedNode{
			ID:         uuid.NewString(),
			Name:       name,
			Type:       nav.NodeBooth,
			Position:   orb.Point{r.CenterX(), r.CenterY()},
			Confidence: boothConfidence(r),
			Flags:      NodeFlags{SizeValid: true, PositionValid: true, IsolationCheck: true},
			Booth: &BoothDetail{
				Bounds: orb.Bound{
					Min: orb.Point{float64(r.MinX), float64(r.MinY)},
					Max: orb.Point{float64(r.MaxX), float64(r.MaxY)},
				},
				FillRatio: r.FillRatio(),
				Pixels:    r.PixelCount,
			},
		})
	}
	return nodes
}

func boothSizeValid(r floorplan.Region, imgW, imgH int) bool {
	if r.PixelCount < minBoothPixels || r.PixelCount > maxBoothPixels {
		return false
	}
	if float64(r.Width()) >= maxBBoxFrac*float64(imgW) {
		return false
	}
	if float64(r.Height()) >= maxBBoxFrac*float64(imgH) {
		return false
	}
	return true
}

// boothConfidence blends fill ratio with a shape score. Extreme aspect
// ratios usually mean a corridor strip or wall segment, not a booth.
func boothConfidence(r floorplan.Region) float64 {
	aspect := float64(r.Width()) / float64(r.Height())
	aspectScore := 0.5
	if aspect > 0.3 && aspect < 3 {
		aspectScore = 1
	}

	conf := 0.6*r.FillRatio() + 0.4*aspectScore
	if r.PixelCount >= typicalMinPixels && r.PixelCount <= typicalMaxPixels {
		conf += 0.1
	}
	if conf > 1 {
		conf = 1
	}
	if conf < 0 {
		conf = 0
	}
	return conf
}

// categorizeByArea names each region Room, Kiosk, or Booth by comparing its
// pixel area against the median of the batch.
func categorizeByArea(regions []floorplan.Region) []string {
	areas := make([]float64, len(regions))
	for i, r := range regions {
		areas[i] = float64(r.PixelCount)
	}
	sorted := append([]float64(nil), areas...)
	sort.Float64s(sorted)
	median := stat.Quantile(0.5, stat.Empirical, sorted, nil)

	out := make([]string, len(regions))
	for i, a := range areas {
		switch {
		case median > 0 && a > roomAreaFactor*median:
			out[i] = "Room"
		case median > 0 && a < kioskAreaFactor*median:
			out[i] = "Kiosk"
		default:
			out[i] = "Booth"
		}
	}
	return out
}
