package nav

import (
	"fmt"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// squareGraph is a corridor loop with a booth hanging off two opposite
// corners:
//
//	a - w1 - w2
//	      |    |
//	     w4 - w3 - b
func squareGraph() *Graph {
	nodes := []Node{
		{ID: "a", VenueID: "v1", Name: "Booth A", Type: NodeBooth, Position: orb.Point{0, -10}},
		{ID: "b", VenueID: "v1", Name: "Booth B", Type: NodeBooth, Position: orb.Point{100, 110}},
		{ID: "w1", VenueID: "v1", Type: NodeWaypoint, Position: orb.Point{0, 0}},
		{ID: "w2", VenueID: "v1", Type: NodeWaypoint, Position: orb.Point{100, 0}},
		{ID: "w3", VenueID: "v1", Type: NodeWaypoint, Position: orb.Point{100, 100}},
		{ID: "w4", VenueID: "v1", Type: NodeWaypoint, Position: orb.Point{0, 100}},
	}
	edges := []Edge{
		{ID: "e1", From: "w1", To: "w2", Distance: 100},
		{ID: "e2", From: "w2", To: "w3", Distance: 100},
		{ID: "e3", From: "w3", To: "w4", Distance: 100},
		{ID: "e4", From: "w4", To: "w1", Distance: 100},
		{ID: "e5", From: "a", To: "w1", Distance: 10},
		{ID: "e6", From: "b", To: "w3", Distance: 10},
	}
	return BuildGraph(nodes, edges)
}

// latticeGraph builds an n by n waypoint grid with unit spacing 10 and
// 4-neighbor edges.
func latticeGraph(n int) *Graph {
	var nodes []Node
	var edges []Edge
	id := func(x, y int) string { return fmt.Sprintf("n%d_%d", x, y) }
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			nodes = append(nodes, Node{
				ID:       id(x, y),
				VenueID:  "v1",
				Type:     NodeWaypoint,
				Position: orb.Point{float64(x * 10), float64(y * 10)},
			})
			if x > 0 {
				edges = append(edges, Edge{ID: id(x, y) + "h", From: id(x-1, y), To: id(x, y), Distance: 10})
			}
			if y > 0 {
				edges = append(edges, Edge{ID: id(x, y) + "v", From: id(x, y-1), To: id(x, y), Distance: 10})
			}
		}
	}
	return BuildGraph(nodes, edges)
}

func TestShortestPathFindsOptimalRoute(t *testing.T) {
	g := squareGraph()

	ids, dist, ok := g.shortestPath("a", "b")
	require.True(t, ok)
	assert.InDelta(t, 220, dist, 1e-9)
	assert.Equal(t, "a", ids[0])
	assert.Equal(t, "b", ids[len(ids)-1])
	assert.Len(t, ids, 5)
}

func TestShortestPathSkipsInteriorBooths(t *testing.T) {
	nodes := []Node{
		{ID: "w1", VenueID: "v1", Type: NodeWaypoint, Position: orb.Point{0, 0}},
		{ID: "w2", VenueID: "v1", Type: NodeWaypoint, Position: orb.Point{200, 0}},
		{ID: "m", VenueID: "v1", Name: "Middle", Type: NodeBooth, Position: orb.Point{100, 0}},
	}
	edges := []Edge{
		{ID: "e1", From: "w1", To: "w2", Distance: 200},
		{ID: "e2", From: "w1", To: "m", Distance: 100},
		{ID: "e3", From: "m", To: "w2", Distance: 100},
	}
	g := BuildGraph(nodes, edges)

	ids, dist, ok := g.shortestPath("w1", "w2")
	require.True(t, ok)
	assert.InDelta(t, 200, dist, 1e-9)
	assert.Equal(t, []string{"w1", "w2"}, ids)

	// The booth stays reachable as a destination.
	_, dist, ok = g.shortestPath("w1", "m")
	require.True(t, ok)
	assert.InDelta(t, 100, dist, 1e-9)
}

func TestShortestPathNoRoute(t *testing.T) {
	nodes := []Node{
		{ID: "w1", VenueID: "v1", Type: NodeWaypoint, Position: orb.Point{0, 0}},
		{ID: "w2", VenueID: "v1", Type: NodeWaypoint, Position: orb.Point{50, 0}},
	}
	g := BuildGraph(nodes, nil)

	_, _, ok := g.shortestPath("w1", "w2")
	assert.False(t, ok)
}

func TestBuildGraphSkipsDanglingEdges(t *testing.T) {
	nodes := []Node{
		{ID: "w1", VenueID: "v1", Type: NodeWaypoint, Position: orb.Point{0, 0}},
	}
	edges := []Edge{
		{ID: "e1", From: "w1", To: "ghost", Distance: 10},
		{ID: "e2", From: "ghost", To: "w1", Distance: 10},
	}
	g := BuildGraph(nodes, edges)

	assert.Empty(t, g.Neighbors("w1"))
	assert.Empty(t, g.IncidentEdges("w1"))
}

func TestBidirectionalMatchesStandardDistance(t *testing.T) {
	g := latticeGraph(12) // 144 nodes, above the bidirectional threshold
	require.Greater(t, g.NodeCount(), bidirectionalThreshold)

	pairs := [][2]string{
		{"n0_0", "n11_11"},
		{"n0_11", "n11_0"},
		{"n3_7", "n9_2"},
		{"n5_5", "n5_6"},
	}
	for _, p := range pairs {
		_, want, ok := g.shortestPath(p[0], p[1])
		require.True(t, ok)

		ids, got, ok := g.shortestPathBidirectional(p[0], p[1])
		require.True(t, ok, "bidirectional %s -> %s", p[0], p[1])
		assert.InDelta(t, want, got, 1e-9)
		assert.Equal(t, p[0], ids[0])
		assert.Equal(t, p[1], ids[len(ids)-1])
	}
}

func TestBidirectionalRespectsBoothExclusion(t *testing.T) {
	g := squareGraph()

	ids, dist, ok := g.shortestPathBidirectional("a", "b")
	require.True(t, ok)
	assert.InDelta(t, 220, dist, 1e-9)
	for _, id := range ids[1 : len(ids)-1] {
		n, ok := g.Node(id)
		require.True(t, ok)
		assert.NotEqual(t, NodeBooth, n.Type, "interior node %s", id)
	}
}

func TestAlternativePathsSortedAndDistinct(t *testing.T) {
	g := squareGraph()

	cands := g.alternativePaths("a", "b", 3)
	require.NotEmpty(t, cands)
	assert.InDelta(t, 220, cands[0].distance, 1e-9)

	seen := map[string]bool{}
	for i, c := range cands {
		key := fmt.Sprint(c.ids)
		assert.False(t, seen[key], "duplicate route %v", c.ids)
		seen[key] = true
		if i > 0 {
			assert.GreaterOrEqual(t, c.distance, cands[i-1].distance)
		}
	}
}
