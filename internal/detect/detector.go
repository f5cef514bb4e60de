package detect

import (
	"fmt"
	"log/slog"
	"time"

	"gonum.org/v1/gonum/stat"

	"floornav/internal/floorplan"
	"floornav/internal/nav"
)

// defaultConfidenceThreshold filters low-quality candidates from the final
// node list.
const defaultConfidenceThreshold = 0.5

// MaskFilter post-processes a corridor mask, typically with morphological
// open/close passes to drop speckle noise.
type MaskFilter interface {
	Clean(mask *floorplan.CorridorMask) (*floorplan.CorridorMask, error)
}

// Labeler reads display text from a booth region. Implementations are
// optional; detection falls back to generated names.
type Labeler interface {
	Label(buf *floorplan.PixelBuffer, region floorplan.Region) (string, error)
}

// Detector runs the full image-to-graph analysis.
type Detector struct {
	logger     *slog.Logger
	threshold  float64
	maskFilter MaskFilter
	labeler    Labeler
}

// Option configures a Detector.
type Option func(*Detector)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Detector) { d.logger = l }
}

// WithConfidenceThreshold overrides the node acceptance threshold.
func WithConfidenceThreshold(v float64) Option {
	return func(d *Detector) { d.threshold = v }
}

// WithMaskFilter enables corridor mask cleanup.
func WithMaskFilter(f MaskFilter) Option {
	return func(d *Detector) { d.maskFilter = f }
}

// WithLabeler enables OCR naming of booth regions.
func WithLabeler(l Labeler) Option {
	return func(d *Detector) { d.labeler = l }
}

// NewDetector builds a detector with defaults applied.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		logger:    slog.Default(),
		threshold: defaultConfidenceThreshold,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Analyze extracts nodes and edges from a decoded pixel buffer. It never
// returns an error for malformed or featureless images; those degrade to an
// empty result with warnings in the metadata.
func (d *Detector) Analyze(buf *floorplan.PixelBuffer) Result {
	started := time.Now()
	res := Result{}

	if !buf.Valid() {
		res.Metadata.Warnings = append(res.Metadata.Warnings, "image buffer is empty or malformed")
		res.Metadata.AnalysisTimeMs = time.Since(started).Milliseconds()
		return res
	}
	res.Metadata.ImageWidth = buf.Width
	res.Metadata.ImageHeight = buf.Height

	stats := buf.ComputeStats()
	if stats.MeanBrightness < 10 {
		res.Metadata.Warnings = append(res.Metadata.Warnings, "image is nearly black")
	}
	if stats.WhiteRatio > 0.98 {
		res.Metadata.Warnings = append(res.Metadata.Warnings, "image is nearly blank")
	}
	// Grayscale scans have no corridor hue to classify on.
	if stats.MeanSaturation < 1.0 {
		res.Metadata.Warnings = append(res.Metadata.Warnings, "image appears grayscale")
	}

	mask := floorplan.BuildCorridorMask(buf)
	if d.maskFilter != nil {
		cleaned, err := d.maskFilter.Clean(mask)
		if err != nil {
			res.Metadata.Warnings = append(res.Metadata.Warnings,
				fmt.Sprintf("mask cleanup failed, using raw mask: %v", err))
		} else {
			mask = cleaned
		}
	}

	booths := d.detectBooths(buf)
	junctions := detectJunctions(mask)
	entrances := detectEntrances(mask)

	if len(booths) == 0 {
		res.Metadata.Warnings = append(res.Metadata.Warnings, "no booth regions found")
	}
	if mask.Count() == 0 {
		res.Metadata.Warnings = append(res.Metadata.Warnings, "no corridor pixels found")
	}

	nodes := make([]DetectedNode, 0, len(booths)+len(junctions)+len(entrances))
	nodes = append(nodes, booths...)
	nodes = append(nodes, junctions...)
	nodes = append(nodes, entrances...)

	validateNodes(nodes, buf.Width, buf.Height)
	nodes = d.filterByConfidence(nodes)
	edges := inferEdges(nodes, mask)

	for _, n := range nodes {
		switch n.Type {
		case nav.NodeBooth:
			res.Metadata.BoothCount++
		case nav.NodeIntersection:
			res.Metadata.JunctionCount++
		case nav.NodeEntrance:
			res.Metadata.EntranceCount++
		}
	}
	res.Nodes = nodes
	res.Edges = edges
	res.Metadata.EdgeCount = len(edges)
	res.Metadata.AverageConfidence = meanConfidence(nodes)
	res.QualityScore = qualityScore(nodes, edges)
	res.Metadata.AnalysisTimeMs = time.Since(started).Milliseconds()

	d.logger.Info("analysis complete",
		"booths", res.Metadata.BoothCount,
		"junctions", res.Metadata.JunctionCount,
		"entrances", res.Metadata.EntranceCount,
		"edges", res.Metadata.EdgeCount,
		"quality", res.QualityScore,
		"elapsed_ms", res.Metadata.AnalysisTimeMs)
	return res
}

func (d *Detector) filterByConfidence(nodes []DetectedNode) []DetectedNode {
	kept := nodes[:0]
	for _, n := range nodes {
		if n.Confidence >= d.threshold {
			kept = append(kept, n)
		}
	}
	return kept
}

func meanConfidence(nodes []DetectedNode) float64 {
	if len(nodes) == 0 {
		return 0
	}
	confs := make([]float64, len(nodes))
	for i, n := range nodes {
		confs[i] = n.Confidence
	}
	return stat.Mean(confs, nil)
}

// qualityScore grades a detection run on node confidence and graph density.
func qualityScore(nodes []DetectedNode, edges []DetectedEdge) float64 {
	if len(nodes) == 0 {
		return 0
	}
	density := float64(len(edges)) / (2 * float64(len(nodes)))
	if density > 1 {
		density = 1
	}
	connected := 0.0
	if len(edges) > 0 {
		connected = 1
	}
	return (0.5*meanConfidence(nodes) + 0.3*density + 0.2*connected) * 100
}
