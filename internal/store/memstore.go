// Package store provides graph persistence backends. The in-memory
// implementation backs the CLI and tests; a database-backed one can replace
// it behind the same interface.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"floornav/internal/nav"
)

// ErrNotFound is returned for lookups of unknown node ids.
var ErrNotFound = errors.New("not found")

// MemStore holds venue graphs in memory. Safe for concurrent use.
type MemStore struct {
	mu    sync.RWMutex
	nodes map[string]nav.Node   // by node id
	edges map[string][]nav.Edge // by venue id
}

// NewMemStore returns an empty store.
func NewMemStore() *MemStore {
	return &MemStore{
		nodes: make(map[string]nav.Node),
		edges: make(map[string][]nav.Edge),
	}
}

// PutNodes inserts or replaces nodes by id.
func (m *MemStore) PutNodes(nodes ...nav.Node) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range nodes {
		m.nodes[n.ID] = n
	}
}

// PutEdges appends edges to a venue.
func (m *MemStore) PutEdges(venueID string, edges ...nav.Edge) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edges[venueID] = append(m.edges[venueID], edges...)
}

// DeleteVenue removes every node and edge of a venue.
func (m *MemStore) DeleteVenue(venueID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.edges, venueID)
	for id, n := range m.nodes {
		if n.VenueID == venueID {
			delete(m.nodes, id)
		}
	}
}

// NodesByVenue returns the venue's nodes sorted by id.
func (m *MemStore) NodesByVenue(_ context.Context, venueID string) ([]nav.Node, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []nav.Node
	for _, n := range m.nodes {
		if n.VenueID == venueID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// EdgesByVenue returns the venue's edges in insertion order.
func (m *MemStore) EdgesByVenue(_ context.Context, venueID string) ([]nav.Edge, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]nav.Edge, len(m.edges[venueID]))
	copy(out, m.edges[venueID])
	return out, nil
}

// Node looks up a single node by id.
func (m *MemStore) Node(_ context.Context, nodeID string) (nav.Node, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n, ok := m.nodes[nodeID]
	if !ok {
		return nav.Node{}, errors.Wrapf(ErrNotFound, "node %s", nodeID)
	}
	return n, nil
}
