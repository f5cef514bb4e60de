package detect

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"floornav/internal/floorplan"
)

// Edge inference parameters.
const (
	maxEdgeDistance = 200.0
	losSampleCount  = 20

	// losMinRatio is intentionally strict so edges never cut through walls.
	losMinRatio = 0.95

	// angleTolerance accepts edges roughly aligned with the eight principal
	// directions; floor-plan corridors rarely run at odd angles.
	angleTolerance = 10.0
)

// lineOfSight samples n points along the segment and returns the fraction
// that land on corridor pixels.
func lineOfSight(mask *floorplan.CorridorMask, a, b orb.Point, n int) float64 {
	if n <= 0 {
		return 0
	}
	hits := 0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n+1)
		x := int(math.Round(a[0] + (b[0]-a[0])*t))
		y := int(math.Round(a[1] + (b[1]-a[1])*t))
		if mask.At(x, y) {
			hits++
		}
	}
	return float64(hits) / float64(n)
}

// angleValid reports whether the segment runs close to a horizontal,
// vertical, or 45 degree diagonal.
func angleValid(a, b orb.Point) bool {
	bearing := math.Abs(math.Mod(bearingDegrees(a, b), 45))
	return bearing <= angleTolerance || bearing >= 45-angleTolerance
}

// inferEdges connects node pairs that are close together and joined by a
// clear corridor line of sight.
func inferEdges(nodes []DetectedNode, mask *floorplan.CorridorMask) []DetectedEdge {
	var edges []DetectedEdge
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			a, b := nodes[i], nodes[j]
			dist := planar.Distance(a.Position, b.Position)
			if dist > maxEdgeDistance {
				continue
			}
			ratio := lineOfSight(mask, a.Position, b.Position, losSampleCount)
			if ratio < losMinRatio {
				continue
			}
			edges = append(edges, DetectedEdge{
				From:       a.Name,
				To:         b.Name,
				Distance:   dist,
				Confidence: ratio,
				Flags: EdgeFlags{
					PathClear:          true,
					DistanceReasonable: true,
					AngleValid:         angleValid(a.Position, b.Position),
				},
			})
		}
	}
	return edges
}
