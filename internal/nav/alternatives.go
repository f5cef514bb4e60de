package nav

import (
	"sort"
)

// Alternative-route generation parameters.
const (
	// basePenalty and penaltyStep inflate edges into already-used interior
	// nodes; the factor grows each attempt to push the search further away.
	basePenalty = 1.5
	penaltyStep = 0.5

	// minDetourRatio: a candidate must be >5% longer than the shortest route
	// or visit new interior ground to count as a distinct alternative.
	minDetourRatio = 1.05
)

type candidatePath struct {
	ids      []string
	distance float64
}

// alternativePaths returns up to k distinct paths from start to goal, the
// true shortest always first, sorted ascending by true distance.
func (g *Graph) alternativePaths(start, goal string, k int) []candidatePath {
	ids, dist, ok := g.shortestPath(start, goal)
	if !ok {
		return nil
	}

	routes := []candidatePath{{ids: ids, distance: dist}}
	used := make(map[string]bool)
	markInterior(used, ids)

	for attempt := 0; len(routes) < k; attempt++ {
		if attempt >= k-1 {
			break
		}
		factor := basePenalty + penaltyStep*float64(attempt)
		penalty := func(toID string) float64 {
			if used[toID] {
				return factor
			}
			return 1
		}

		altIDs, altDist, found := g.shortestPathPenalized(start, goal, penalty)
		if !found {
			break
		}

		if !acceptAlternative(altIDs, altDist, dist, used) {
			continue
		}

		routes = append(routes, candidatePath{ids: altIDs, distance: altDist})
		markInterior(used, altIDs)
	}

	sort.SliceStable(routes, func(i, j int) bool {
		return routes[i].distance < routes[j].distance
	})
	return routes
}

// markInterior records a path's interior nodes, skipping the two positions
// at each end so endpoints and their immediate approaches stay penalty-free.
func markInterior(used map[string]bool, ids []string) {
	for i := 2; i <= len(ids)-3; i++ {
		used[ids[i]] = true
	}
}

// acceptAlternative applies the distinctness rule: meaningfully longer than
// the shortest route, or covering at least one previously unused interior
// node.
func acceptAlternative(ids []string, dist, shortest float64, used map[string]bool) bool {
	if dist > shortest*minDetourRatio {
		return true
	}
	for i := 2; i <= len(ids)-3; i++ {
		if !used[ids[i]] {
			return true
		}
	}
	return false
}
