package nav

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateReportsFragmentedGraph(t *testing.T) {
	nodes := []Node{
		wp("a1", 0, 0), wp("a2", 10, 0),
		wp("b1", 500, 500), wp("b2", 510, 500),
		wp("lone", 900, 900),
	}
	edges := []Edge{
		{ID: "e1", From: "a1", To: "a2", Distance: 10},
		{ID: "e2", From: "b1", To: "b2", Distance: 10},
	}
	g := BuildGraph(nodes, edges)

	report := g.validate()
	assert.Equal(t, 5, report.NodeCount)
	assert.Equal(t, 2, report.EdgeCount)
	assert.Equal(t, [][]string{{"a1", "a2"}, {"b1", "b2"}, {"lone"}}, report.Components)
	assert.Equal(t, 2, report.LargestComponent)
	assert.Equal(t, []string{"lone"}, report.IsolatedNodes)
	assert.False(t, report.Connected)

	// The components partition the node id set: every id exactly once.
	seen := map[string]int{}
	for _, comp := range report.Components {
		for _, id := range comp {
			seen[id]++
		}
	}
	assert.Len(t, seen, report.NodeCount)
	for id, n := range seen {
		assert.Equal(t, 1, n, "node %s appears in multiple components", id)
	}
}

func TestValidateConnectedGraph(t *testing.T) {
	g := squareGraph()

	report := g.validate()
	assert.True(t, report.Connected)
	require.Len(t, report.Components, 1)
	assert.Equal(t, []string{"a", "b", "w1", "w2", "w3", "w4"}, report.Components[0])
	assert.Equal(t, 6, report.LargestComponent)
	assert.Empty(t, report.IsolatedNodes)
}

func TestReachableFromStopsAtBooths(t *testing.T) {
	// w1 - booth - w2: the booth is reachable but cannot be passed through.
	nodes := []Node{
		wp("w1", 0, 0),
		{ID: "m", VenueID: "v1", Name: "Middle", Type: NodeBooth, Position: orb.Point{50, 0}},
		wp("w2", 100, 0),
	}
	edges := []Edge{
		{ID: "e1", From: "w1", To: "m", Distance: 50},
		{ID: "e2", From: "m", To: "w2", Distance: 50},
	}
	g := BuildGraph(nodes, edges)

	assert.Equal(t, []string{"m", "w1"}, g.reachableFrom("w1"))

	// Starting at the booth itself expands normally.
	assert.Equal(t, []string{"m", "w1", "w2"}, g.reachableFrom("m"))
}

func TestReachableFromUnknownNode(t *testing.T) {
	g := squareGraph()
	require.Nil(t, g.reachableFrom("missing"))
}
