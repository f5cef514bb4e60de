package detect

import (
	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"floornav/internal/floorplan"
	"floornav/internal/nav"
)

// Grid generation parameters. The grid path trades precision for density:
// links tolerate more off-corridor samples than detected edges do, and may
// span up to gridLinkFactor grid cells.
const (
	defaultGridSpacing = 50
	gridLinkFactor     = 2.5
	gridMinLOSRatio    = 0.8
)

// GridNode is a node in the dense routing grid. Booth nodes carry the
// originating detection id and name.
type GridNode struct {
	ID        string       `json:"id"`
	Type      nav.NodeType `json:"type"`
	X         float64      `json:"x"`
	Y         float64      `json:"y"`
	BoothID   string       `json:"boothId,omitempty"`
	BoothName string       `json:"boothName,omitempty"`
}

// GridEdge links two grid nodes.
type GridEdge struct {
	FromID   string  `json:"fromId"`
	ToID     string  `json:"toId"`
	Distance float64 `json:"distance"`
}

// GridResult is the output of grid-mode graph generation.
type GridResult struct {
	Nodes  []GridNode     `json:"nodes"`
	Edges  []GridEdge     `json:"edges"`
	Booths []DetectedNode `json:"booths"`
}

// GenerateGrid builds a two-tier navigation graph: booth destinations plus
// regular waypoints on corridor pixels, linked by line of sight. spacing
// values below 1 fall back to the default.
func (d *Detector) GenerateGrid(buf *floorplan.PixelBuffer, spacing int) GridResult {
	if spacing < 1 {
		spacing = defaultGridSpacing
	}
	res := GridResult{}
	if !buf.Valid() {
		return res
	}

	mask := floorplan.BuildCorridorMask(buf)
	if d.maskFilter != nil {
		if cleaned, err := d.maskFilter.Clean(mask); err == nil {
			mask = cleaned
		}
	}

	booths := d.detectBooths(buf)
	validateNodes(booths, buf.Width, buf.Height)
	booths = d.filterByConfidence(booths)
	res.Booths = booths

	// Line of sight for grid links runs over walkable pixels: corridors plus
	// booth interiors, so a booth can reach the corridor past its own
	// footprint.
	walkable := floorplan.NewCorridorMask(buf.Width, buf.Height)
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			r, g, b := buf.RGB(x, y)
			walkable.Set(x, y, mask.At(x, y) || floorplan.BoothLike(r, g, b))
		}
	}

	// Waypoints on a regular lattice, corridor cells only.
	cols := buf.Width / spacing
	rows := buf.Height / spacing
	grid := make([][]string, rows+1)
	for gy := 0; gy <= rows; gy++ {
		grid[gy] = make([]string, cols+1)
		for gx := 0; gx <= cols; gx++ {
			x, y := gx*spacing, gy*spacing
			if !mask.At(x, y) {
				continue
			}
			id := uuid.NewString()
			grid[gy][gx] = id
			res.Nodes = append(res.Nodes, GridNode{
				ID:   id,
				Type: nav.NodeWaypoint,
				X:    float64(x),
				Y:    float64(y),
			})
		}
	}

	maxLink := gridLinkFactor * float64(spacing)
	link := func(fromID string, from orb.Point, toID string, to orb.Point) {
		dist := planar.Distance(from, to)
		if dist > maxLink {
			return
		}
		if lineOfSight(walkable, from, to, losSampleCount) < gridMinLOSRatio {
			return
		}
		res.Edges = append(res.Edges, GridEdge{FromID: fromID, ToID: toID, Distance: dist})
	}

	// Horizontal and vertical lattice links.
	for gy := 0; gy <= rows; gy++ {
		for gx := 0; gx <= cols; gx++ {
			id := grid[gy][gx]
			if id == "" {
				continue
			}
			from := orb.Point{float64(gx * spacing), float64(gy * spacing)}
			if gx < cols && grid[gy][gx+1] != "" {
				link(id, from, grid[gy][gx+1], orb.Point{float64((gx + 1) * spacing), from[1]})
			}
			if gy < rows && grid[gy+1][gx] != "" {
				link(id, from, grid[gy+1][gx], orb.Point{from[0], float64((gy + 1) * spacing)})
			}
		}
	}

	// Booth destinations hook into every nearby reachable waypoint.
	for _, b := range booths {
		res.Nodes = append(res.Nodes, GridNode{
			ID:        b.ID,
			Type:      nav.NodeBooth,
			X:         b.Position[0],
			Y:         b.Position[1],
			BoothID:   b.ID,
			BoothName: b.Name,
		})
		for gy := 0; gy <= rows; gy++ {
			for gx := 0; gx <= cols; gx++ {
				id := grid[gy][gx]
				if id == "" {
					continue
				}
				wp := orb.Point{float64(gx * spacing), float64(gy * spacing)}
				link(b.ID, b.Position, id, wp)
			}
		}
	}

	d.logger.Info("grid generated",
		"spacing", spacing,
		"waypoints", len(res.Nodes)-len(booths),
		"booths", len(booths),
		"edges", len(res.Edges))
	return res
}
