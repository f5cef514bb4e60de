package nav

import (
	"container/heap"
	"math"
)

// bidirectionalThreshold is the node count above which FindPath switches to
// the two-sided search.
const bidirectionalThreshold = 100

// iterationCapFactor bounds a bidirectional search to factor×nodeCount pops
// as a runaway guard.
const iterationCapFactor = 4

// searchSide holds the independent state of one direction of a bidirectional
// search. terminal is this side's own target: the heuristic aims at it and
// the booth-exclusion rule admits it.
type searchSide struct {
	terminal string
	gScore   map[string]float64
	cameFrom map[string]string
	closed   map[string]bool
	open     *searchQueue
}

func newSearchSide(g *Graph, origin, terminal string) *searchSide {
	s := &searchSide{
		terminal: terminal,
		gScore:   map[string]float64{origin: 0},
		cameFrom: make(map[string]string),
		closed:   make(map[string]bool),
		open:     &searchQueue{},
	}
	heap.Init(s.open)
	heap.Push(s.open, &searchItem{id: origin, f: g.heuristic(origin, terminal)})
	return s
}

func (s *searchSide) relax(g *Graph, from string) {
	for _, nb := range g.adjacent[from] {
		if s.closed[nb.id] {
			continue
		}
		if nb.id != s.terminal && g.nodes[nb.id].Type == NodeBooth {
			continue
		}
		tentative := s.gScore[from] + nb.distance
		if known, seen := s.gScore[nb.id]; !seen || tentative < known {
			s.gScore[nb.id] = tentative
			s.cameFrom[nb.id] = from
			heap.Push(s.open, &searchItem{id: nb.id, f: tentative + g.heuristic(nb.id, s.terminal)})
		}
	}
}

// shortestPathBidirectional runs two A* searches toward each other and stops
// once no unexpanded node can improve on the best meeting distance.
func (g *Graph) shortestPathBidirectional(start, goal string) ([]string, float64, bool) {
	if _, ok := g.nodes[start]; !ok {
		return nil, 0, false
	}
	if _, ok := g.nodes[goal]; !ok {
		return nil, 0, false
	}
	if start == goal {
		return []string{start}, 0, true
	}

	forward := newSearchSide(g, start, goal)
	backward := newSearchSide(g, goal, start)

	best := math.Inf(1)
	meeting := ""

	maxIterations := iterationCapFactor * len(g.nodes)

	for iter := 0; iter < maxIterations; iter++ {
		if forward.open.Len() == 0 && backward.open.Len() == 0 {
			break
		}

		// Expand the side with the smaller frontier.
		side, other := forward, backward
		if forward.open.Len() == 0 ||
			(backward.open.Len() != 0 && backward.open.Len() < forward.open.Len()) {
			side, other = backward, forward
		}

		current := heap.Pop(side.open).(*searchItem)

		// No remaining node can beat the best meeting point.
		if current.f >= best {
			break
		}
		if side.closed[current.id] {
			continue
		}
		side.closed[current.id] = true

		if other.closed[current.id] {
			total := side.gScore[current.id] + other.gScore[current.id]
			if total < best {
				best = total
				meeting = current.id
			}
		}

		side.relax(g, current.id)
	}

	if meeting == "" {
		return nil, 0, false
	}

	// Forward half: start..meeting. Backward half: the backward search's
	// predecessor chain from the meeting node leads to the goal.
	path := reconstructPath(forward.cameFrom, meeting)
	for id, ok := backward.cameFrom[meeting]; ok; id, ok = backward.cameFrom[id] {
		path = append(path, id)
	}

	return path, best, true
}
