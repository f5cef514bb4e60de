package nav

import (
	"container/heap"
)

// shortestPath runs standard A* from start to goal. Booth-type nodes are
// terminal-only: they are never relaxed as an interior neighbor unless they
// are the goal itself. Returns the vertex sequence and total distance, or
// ok=false when the queue empties without reaching the goal.
func (g *Graph) shortestPath(start, goal string) ([]string, float64, bool) {
	return g.shortestPathPenalized(start, goal, nil)
}

// shortestPathPenalized is A* with an optional per-destination cost multiplier
// used by alternative-route generation. The search is ordered by penalized
// cost while the true distance is tracked separately and returned.
func (g *Graph) shortestPathPenalized(start, goal string, penalty func(toID string) float64) ([]string, float64, bool) {
	if _, ok := g.nodes[start]; !ok {
		return nil, 0, false
	}
	if _, ok := g.nodes[goal]; !ok {
		return nil, 0, false
	}

	gScore := map[string]float64{start: 0}
	trueDist := map[string]float64{start: 0}
	cameFrom := make(map[string]string)
	closed := make(map[string]bool)

	open := &searchQueue{}
	heap.Init(open)
	heap.Push(open, &searchItem{id: start, f: g.heuristic(start, goal)})

	for open.Len() > 0 {
		current := heap.Pop(open).(*searchItem)

		if current.id == goal {
			return reconstructPath(cameFrom, goal), trueDist[goal], true
		}
		if closed[current.id] {
			continue
		}
		closed[current.id] = true

		for _, nb := range g.adjacent[current.id] {
			if closed[nb.id] {
				continue
			}
			// Booths are destinations, never corridors.
			if nb.id != goal && g.nodes[nb.id].Type == NodeBooth {
				continue
			}

			cost := nb.distance
			if penalty != nil {
				cost *= penalty(nb.id)
			}

			tentative := gScore[current.id] + cost
			if known, seen := gScore[nb.id]; !seen || tentative < known {
				gScore[nb.id] = tentative
				trueDist[nb.id] = trueDist[current.id] + nb.distance
				cameFrom[nb.id] = current.id
				heap.Push(open, &searchItem{
					id: nb.id,
					f:  tentative + g.heuristic(nb.id, goal),
				})
			}
		}
	}

	return nil, 0, false
}

// reconstructPath walks back-pointers from end to the search origin and
// reverses the result.
func reconstructPath(cameFrom map[string]string, end string) []string {
	path := []string{end}
	for {
		prev, ok := cameFrom[path[len(path)-1]]
		if !ok {
			break
		}
		path = append(path, prev)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
