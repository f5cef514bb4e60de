// Package nav builds in-memory navigation graphs from persisted node/edge
// snapshots and answers route and connectivity queries over them.
package nav

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// NodeType is the closed set of navigation node kinds.
type NodeType string

const (
	NodeBooth        NodeType = "booth"
	NodeEntrance     NodeType = "entrance"
	NodeIntersection NodeType = "intersection"
	NodeWaypoint     NodeType = "waypoint"
)

// Routable reports whether a node may appear in the interior of a path.
// Booths are destinations only.
func (t NodeType) Routable() bool { return t != NodeBooth }

// Node is a navigation graph vertex.
type Node struct {
	ID       string    `json:"id"`
	VenueID  string    `json:"venueId"`
	Name     string    `json:"name"`
	Type     NodeType  `json:"type"`
	Position orb.Point `json:"position"`
}

// Edge is a logically undirected connection between two nodes. Distance is
// in the same units as node coordinates.
type Edge struct {
	ID       string  `json:"id"`
	From     string  `json:"fromNode"`
	To       string  `json:"toNode"`
	Distance float64 `json:"distance"`
}

type neighbor struct {
	id       string
	distance float64
}

// Graph is a query-scoped adjacency view over a node/edge snapshot. It is
// immutable after construction and safe for concurrent reads.
type Graph struct {
	nodes    map[string]Node
	adjacent map[string][]neighbor
	incident map[string][]Edge
	ids      []string // sorted, for deterministic traversal order
}

// BuildGraph materializes both traversal directions for every edge. Edges
// referencing missing nodes are silently skipped.
func BuildGraph(nodes []Node, edges []Edge) *Graph {
	g := &Graph{
		nodes:    make(map[string]Node, len(nodes)),
		adjacent: make(map[string][]neighbor),
		incident: make(map[string][]Edge),
	}

	for _, n := range nodes {
		if _, dup := g.nodes[n.ID]; !dup {
			g.ids = append(g.ids, n.ID)
		}
		g.nodes[n.ID] = n
	}
	sort.Strings(g.ids)

	for _, e := range edges {
		if _, ok := g.nodes[e.From]; !ok {
			continue
		}
		if _, ok := g.nodes[e.To]; !ok {
			continue
		}
		g.adjacent[e.From] = append(g.adjacent[e.From], neighbor{id: e.To, distance: e.Distance})
		g.adjacent[e.To] = append(g.adjacent[e.To], neighbor{id: e.From, distance: e.Distance})
		g.incident[e.From] = append(g.incident[e.From], e)
		g.incident[e.To] = append(g.incident[e.To], e)
	}

	return g
}

// Node returns the node with the given id.
func (g *Graph) Node(id string) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// NodeIDs returns all node ids in sorted order.
func (g *Graph) NodeIDs() []string { return g.ids }

// Neighbors returns the adjacency list of a node.
func (g *Graph) Neighbors(id string) []neighbor { return g.adjacent[id] }

// IncidentEdges returns the edge records touching a node.
func (g *Graph) IncidentEdges(id string) []Edge { return g.incident[id] }

// Booths returns all booth-type nodes.
func (g *Graph) Booths() []Node {
	var booths []Node
	for _, id := range g.ids {
		if n := g.nodes[id]; n.Type == NodeBooth {
			booths = append(booths, n)
		}
	}
	return booths
}

// heuristic is the straight-line distance between two nodes; admissible as
// long as edges are not drawn shorter than their geometry.
func (g *Graph) heuristic(fromID, toID string) float64 {
	return planar.Distance(g.nodes[fromID].Position, g.nodes[toID].Position)
}
