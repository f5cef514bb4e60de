// Package detect extracts a navigation graph from a decoded floor-plan
// image: booth regions, corridor junctions, entrances, and line-of-sight
// edges, each with a confidence score. Output is transient; callers filter
// and persist it through their own store.
package detect

import (
	"github.com/paulmach/orb"

	"floornav/internal/nav"
)

// NodeFlags records the validation checks applied to a detected node.
type NodeFlags struct {
	SizeValid      bool `json:"sizeValid"`
	PositionValid  bool `json:"positionValid"`
	IsolationCheck bool `json:"isolationCheck"`
}

// BoothDetail carries the region geometry behind a booth detection.
type BoothDetail struct {
	Bounds    orb.Bound `json:"bounds"`
	FillRatio float64   `json:"fillRatio"`
	Pixels    int       `json:"pixels"`
}

// DetectedNode is a candidate graph node produced by image analysis.
type DetectedNode struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Type       nav.NodeType `json:"type"`
	Position   orb.Point    `json:"position"`
	Confidence float64      `json:"confidence"`
	Flags      NodeFlags    `json:"flags"`
	Booth      *BoothDetail `json:"booth,omitempty"`
}

// EdgeFlags records the validation checks applied to a detected edge.
type EdgeFlags struct {
	PathClear          bool `json:"pathClear"`
	DistanceReasonable bool `json:"distanceReasonable"`
	AngleValid         bool `json:"angleValid"`
}

// DetectedEdge is a candidate connection between two detected nodes,
// referenced by node name.
type DetectedEdge struct {
	From       string    `json:"fromNode"`
	To         string    `json:"toNode"`
	Distance   float64   `json:"distance"`
	Confidence float64   `json:"confidence"`
	Flags      EdgeFlags `json:"flags"`
}

// Metadata summarizes a detection run.
type Metadata struct {
	ImageWidth        int      `json:"imageWidth"`
	ImageHeight       int      `json:"imageHeight"`
	BoothCount        int      `json:"boothCount"`
	JunctionCount     int      `json:"junctionCount"`
	EntranceCount     int      `json:"entranceCount"`
	EdgeCount         int      `json:"edgeCount"`
	AverageConfidence float64  `json:"averageConfidence"`
	AnalysisTimeMs    int64    `json:"analysisTimeMs"`
	Warnings          []string `json:"warnings,omitempty"`
}

// Result is the full output of a detection run.
type Result struct {
	Nodes        []DetectedNode `json:"nodes"`
	Edges        []DetectedEdge `json:"edges"`
	Metadata     Metadata       `json:"metadata"`
	QualityScore float64        `json:"qualityScore"`
}
