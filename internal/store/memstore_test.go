package store

import (
	"context"
	"testing"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floornav/internal/nav"
)

func TestMemStoreRoundTrip(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	s.PutNodes(
		nav.Node{ID: "b", VenueID: "v1", Name: "Booth B", Type: nav.NodeBooth, Position: orb.Point{1, 2}},
		nav.Node{ID: "a", VenueID: "v1", Name: "Booth A", Type: nav.NodeBooth, Position: orb.Point{0, 0}},
		nav.Node{ID: "x", VenueID: "v2", Type: nav.NodeWaypoint},
	)
	s.PutEdges("v1", nav.Edge{ID: "e1", From: "a", To: "b", Distance: 5})

	nodes, err := s.NodesByVenue(ctx, "v1")
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "a", nodes[0].ID, "sorted by id")

	edges, err := s.EdgesByVenue(ctx, "v1")
	require.NoError(t, err)
	assert.Len(t, edges, 1)

	n, err := s.Node(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "Booth B", n.Name)

	_, err = s.Node(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemStoreDeleteVenue(t *testing.T) {
	s := NewMemStore()
	ctx := context.Background()

	s.PutNodes(
		nav.Node{ID: "a", VenueID: "v1", Type: nav.NodeWaypoint},
		nav.Node{ID: "x", VenueID: "v2", Type: nav.NodeWaypoint},
	)
	s.PutEdges("v1", nav.Edge{ID: "e1", From: "a", To: "a"})

	s.DeleteVenue("v1")

	nodes, err := s.NodesByVenue(ctx, "v1")
	require.NoError(t, err)
	assert.Empty(t, nodes)
	edges, err := s.EdgesByVenue(ctx, "v1")
	require.NoError(t, err)
	assert.Empty(t, edges)

	// Other venues are untouched.
	nodes, err = s.NodesByVenue(ctx, "v2")
	require.NoError(t, err)
	assert.Len(t, nodes, 1)
}
