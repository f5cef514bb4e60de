package detect

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"floornav/internal/floorplan"
	"floornav/internal/nav"
)

// Junction and entrance scan parameters, in pixels.
const (
	junctionStride      = 20
	junctionProbeOffset = 15
	junctionMinArms     = 3
	junctionMergeRadius = 30

	entranceStride      = 10
	entranceMergeRadius = 50
	entranceConfidence  = 0.8
)

type candidate struct {
	pos  orb.Point
	conf float64
}

// detectJunctions samples the corridor mask on a fixed grid and probes the
// four cardinal directions at each corridor point. Three or more corridor
// arms make an intersection.
func detectJunctions(mask *floorplan.CorridorMask) []DetectedNode {
	var cands []candidate
	for y := junctionStride; y < mask.Height; y += junctionStride {
		for x := junctionStride; x < mask.Width; x += junctionStride {
			if !mask.At(x, y) {
				continue
			}
			arms := 0
			if mask.At(x, y-junctionProbeOffset) {
				arms++
			}
			if mask.At(x+junctionProbeOffset, y) {
				arms++
			}
			if mask.At(x, y+junctionProbeOffset) {
				arms++
			}
			if mask.At(x-junctionProbeOffset, y) {
				arms++
			}
			if arms >= junctionMinArms {
				cands = append(cands, candidate{
					pos:  orb.Point{float64(x), float64(y)},
					conf: float64(arms) / 4,
				})
			}
		}
	}

	merged := mergeCandidates(cands, junctionMergeRadius)
	nodes := make([]DetectedNode, 0, len(merged))
	for i, c := range merged {
		nodes = append(nodes, DetectedNode{
			ID:         uuid.NewString(),
			Name:       fmt.Sprintf("Junction %d", i+1),
			Type:       nav.NodeIntersection,
			Position:   c.pos,
			Confidence: c.conf,
			Flags:      NodeFlags{SizeValid: true, PositionValid: true, IsolationCheck: true},
		})
	}
	return nodes
}

// detectEntrances walks the four image borders and marks corridor pixels
// that touch the edge of the plan.
func detectEntrances(mask *floorplan.CorridorMask) []DetectedNode {
	var cands []candidate
	add := func(x, y int) {
		if mask.At(x, y) {
			cands = append(cands, candidate{
				pos:  orb.Point{float64(x), float64(y)},
				conf: entranceConfidence,
			})
		}
	}
	for x := 0; x < mask.Width; x += entranceStride {
		add(x, 0)
		add(x, mask.Height-1)
	}
	for y := 0; y < mask.Height; y += entranceStride {
		add(0, y)
		add(mask.Width-1, y)
	}

	merged := mergeCandidates(cands, entranceMergeRadius)
	nodes := make([]DetectedNode, 0, len(merged))
	for i, c := range merged {
		nodes = append(nodes, DetectedNode{
			ID:         uuid.NewString(),
			Name:       fmt.Sprintf("Entrance %d", i+1),
			Type:       nav.NodeEntrance,
			Position:   c.pos,
			Confidence: c.conf,
			Flags:      NodeFlags{SizeValid: true, PositionValid: true, IsolationCheck: true},
		})
	}
	return nodes
}

// mergeCandidates deduplicates candidates within radius of each other,
// keeping the highest-confidence instance. Candidates are ordered before the
// greedy pass so the survivors do not depend on scan order.
func mergeCandidates(cands []candidate, radius float64) []candidate {
	sorted := append([]candidate(nil), cands...)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.conf != b.conf {
			return a.conf > b.conf
		}
		if a.pos[1] != b.pos[1] {
			return a.pos[1] < b.pos[1]
		}
		return a.pos[0] < b.pos[0]
	})

	var kept []candidate
	for _, c := range sorted {
		tooClose := false
		for _, k := range kept {
			if planar.Distance(c.pos, k.pos) < radius {
				tooClose = true
				break
			}
		}
		if !tooClose {
			kept = append(kept, c)
		}
	}

	// Stable presentation order, top-left first.
	sort.Slice(kept, func(i, j int) bool {
		if kept[i].pos[1] != kept[j].pos[1] {
			return kept[i].pos[1] < kept[j].pos[1]
		}
		return kept[i].pos[0] < kept[j].pos[0]
	})
	return kept
}

// bearingDegrees is shared by edge validation and grid linking.
func bearingDegrees(a, b orb.Point) float64 {
	return math.Atan2(b[1]-a[1], b[0]-a[0]) * 180 / math.Pi
}
