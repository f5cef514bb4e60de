package detect

import (
	"github.com/paulmach/orb/planar"

	"floornav/internal/nav"
)

// Minimum same-type separation, in pixels. Two booths closer than this are
// probably one booth detected twice.
const (
	boothMinSeparation = 40.0
	otherMinSeparation = 20.0

	isolationPenalty = 0.8
)

func minSeparation(t nav.NodeType) float64 {
	if t == nav.NodeBooth {
		return boothMinSeparation
	}
	return otherMinSeparation
}

// validateNodes applies position and isolation checks in place. A node
// outside the image is worthless regardless of how it scored; a node
// crowding a same-type neighbor keeps a reduced score.
func validateNodes(nodes []DetectedNode, imgW, imgH int) {
	for i := range nodes {
		n := &nodes[i]

		if n.Position[0] < 0 || n.Position[0] >= float64(imgW) ||
			n.Position[1] < 0 || n.Position[1] >= float64(imgH) {
			n.Flags.PositionValid = false
			n.Confidence = 0
			continue
		}

		sep := minSeparation(n.Type)
		for j := range nodes {
			if i == j || nodes[j].Type != n.Type {
				continue
			}
			if planar.Distance(n.Position, nodes[j].Position) < sep {
				n.Flags.IsolationCheck = false
				n.Confidence *= isolationPenalty
				break
			}
		}
	}
}
