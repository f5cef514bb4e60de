package nav

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wp(id string, x, y float64) Node {
	return Node{ID: id, VenueID: "v1", Type: NodeWaypoint, Position: orb.Point{x, y}}
}

func TestSmoothPathIsIdentity(t *testing.T) {
	path := []Node{wp("a", 0, 0), wp("b", 10, 0), wp("c", 10, 10)}
	assert.Equal(t, path, SmoothPath(path))
	assert.Nil(t, SmoothPath(nil))
}

func TestSynthesizeDirectionsStraightLine(t *testing.T) {
	path := []Node{
		wp("a", 0, 0),
		wp("b", 50, 0),
		{ID: "c", Name: "Booth C", Type: NodeBooth, Position: orb.Point{100, 0}},
	}

	steps, summary := SynthesizeDirections(path, nil)
	assert.Equal(t, "walk straight to Booth C", summary)
	require.Len(t, steps, 2)
	assert.Equal(t, "Start at start location", steps[0].Action)
	assert.Equal(t, "Arrive at Booth C", steps[1].Action)
	assert.InDelta(t, 100, steps[1].Distance, 1e-9)
}

func TestSynthesizeDirectionsSingleTurn(t *testing.T) {
	// Heading east then south; in image coordinates y grows downward, so a
	// positive bearing delta reads as a right turn.
	path := []Node{
		wp("a", 0, 0),
		wp("b", 100, 0),
		{ID: "c", Name: "Booth C", Type: NodeBooth, Position: orb.Point{100, 100}},
	}
	booths := []Node{
		{ID: "l", Name: "Coffee Stand", Type: NodeBooth, Position: orb.Point{110, 10}},
	}

	steps, summary := SynthesizeDirections(path, booths)
	assert.Equal(t, "turn right (near Coffee Stand) and continue to Booth C", summary)
	require.Len(t, steps, 3)
	assert.Equal(t, "right", steps[1].Turn)
	assert.Equal(t, "Coffee Stand", steps[1].Landmark)
	assert.InDelta(t, 100, steps[1].Distance, 1e-9)
}

func TestSynthesizeDirectionsIgnoresDistantLandmarks(t *testing.T) {
	path := []Node{
		wp("a", 0, 0),
		wp("b", 100, 0),
		wp("c", 100, 100),
	}
	booths := []Node{
		{ID: "l", Name: "Far Booth", Type: NodeBooth, Position: orb.Point{500, 500}},
	}

	_, summary := SynthesizeDirections(path, booths)
	assert.Equal(t, "turn right and continue to your destination", summary)
}

func TestSynthesizeDirectionsTwoTurns(t *testing.T) {
	path := []Node{
		wp("a", 0, 0),
		wp("b", 100, 0),
		wp("c", 100, 100),
		{ID: "d", Name: "Booth D", Type: NodeBooth, Position: orb.Point{0, 100}},
	}

	_, summary := SynthesizeDirections(path, nil)
	assert.Equal(t, "turn right, then right to Booth D", summary)
}

func TestSynthesizeDirectionsAggregatesRepeatedTurns(t *testing.T) {
	// A spiral: three right turns in a row, then a left.
	path := []Node{
		wp("a", 0, 0),
		wp("b", 100, 0),
		wp("c", 100, 100),
		wp("d", 0, 100),
		wp("e", 0, 50),
		{ID: "f", Name: "Booth F", Type: NodeBooth, Position: orb.Point{-50, 50}},
	}

	_, summary := SynthesizeDirections(path, nil)
	assert.Equal(t, "Take the 3rd right, then turn left to Booth F", summary)
}

func TestGetOrdinal(t *testing.T) {
	cases := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th",
		11: "11th", 12: "12th", 13: "13th",
		21: "21st", 22: "22nd", 101: "101st",
	}
	for n, want := range cases {
		assert.Equal(t, want, getOrdinal(n), "n=%d", n)
	}
}

func TestEstimateWalkSeconds(t *testing.T) {
	assert.Equal(t, 100, EstimateWalkSeconds(140, 1))
	assert.Equal(t, 50, EstimateWalkSeconds(140, 0.5))
	assert.Equal(t, 0, EstimateWalkSeconds(0, 1))
	assert.Equal(t, 0, EstimateWalkSeconds(-5, 1))
}

func TestWrapAngle(t *testing.T) {
	assert.InDelta(t, -90, wrapAngle(270), 1e-9)
	assert.InDelta(t, 90, wrapAngle(-270), 1e-9)
	assert.InDelta(t, 180, wrapAngle(180), 1e-9)
	assert.InDelta(t, 0, wrapAngle(360), 1e-9)
}
