package nav

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"
)

// Sentinel errors for route requests.
var (
	ErrNodeNotFound  = errors.New("node not found")
	ErrVenueMismatch = errors.New("node belongs to a different venue")
	ErrNoRoute       = errors.New("no route between nodes")
)

// suspiciousDetourRatio flags booth pairs whose path is much longer than the
// straight-line distance, usually a sign of missing corridor edges.
const suspiciousDetourRatio = 2.0

// Store supplies the persisted graph primitives for a venue.
type Store interface {
	NodesByVenue(ctx context.Context, venueID string) ([]Node, error)
	EdgesByVenue(ctx context.Context, venueID string) ([]Edge, error)
	Node(ctx context.Context, nodeID string) (Node, error)
}

// Route is a resolved path with derived presentation data.
type Route struct {
	Nodes            []Node          `json:"nodes"`
	Distance         float64         `json:"distance"`
	EstimatedSeconds int             `json:"estimated_seconds"`
	Steps            []DirectionStep `json:"steps"`
	Summary          string          `json:"summary"`
}

// Service answers pathfinding queries over venue graphs. Graphs are built
// lazily from the store and cached per venue until invalidated.
type Service struct {
	store     Store
	logger    *slog.Logger
	unitScale float64

	mu     sync.RWMutex
	graphs map[string]*Graph
}

// NewService wires a pathfinding service. unitScale converts graph distance
// units to meters for time estimates; values <= 0 fall back to 1.
func NewService(store Store, logger *slog.Logger, unitScale float64) *Service {
	if unitScale <= 0 {
		unitScale = 1
	}
	return &Service{
		store:     store,
		logger:    logger,
		unitScale: unitScale,
		graphs:    make(map[string]*Graph),
	}
}

// InvalidateVenue drops the cached graph so the next query rebuilds it.
func (s *Service) InvalidateVenue(venueID string) {
	s.mu.Lock()
	delete(s.graphs, venueID)
	s.mu.Unlock()
	s.logger.Debug("graph cache invalidated", "venue", venueID)
}

func (s *Service) graph(ctx context.Context, venueID string) (*Graph, error) {
	s.mu.RLock()
	g, ok := s.graphs[venueID]
	s.mu.RUnlock()
	if ok {
		return g, nil
	}

	nodes, err := s.store.NodesByVenue(ctx, venueID)
	if err != nil {
		return nil, errors.Wrapf(err, "loading nodes for venue %s", venueID)
	}
	edges, err := s.store.EdgesByVenue(ctx, venueID)
	if err != nil {
		return nil, errors.Wrapf(err, "loading edges for venue %s", venueID)
	}
	g = BuildGraph(nodes, edges)

	s.mu.Lock()
	// Another goroutine may have rebuilt concurrently; last write wins, both
	// are equivalent snapshots of the same store state.
	s.graphs[venueID] = g
	s.mu.Unlock()

	s.logger.Info("graph built",
		"venue", venueID,
		"nodes", g.NodeCount(),
		"edges", len(edges))
	return g, nil
}

// resolveEndpoints checks that both nodes exist and belong to the venue.
func (s *Service) resolveEndpoints(ctx context.Context, venueID, fromID, toID string) (Node, Node, error) {
	from, err := s.store.Node(ctx, fromID)
	if err != nil {
		return Node{}, Node{}, errors.Wrapf(ErrNodeNotFound, "from node %s", fromID)
	}
	to, err := s.store.Node(ctx, toID)
	if err != nil {
		return Node{}, Node{}, errors.Wrapf(ErrNodeNotFound, "to node %s", toID)
	}
	if from.VenueID != venueID {
		return Node{}, Node{}, errors.Wrapf(ErrVenueMismatch, "node %s", fromID)
	}
	if to.VenueID != venueID {
		return Node{}, Node{}, errors.Wrapf(ErrVenueMismatch, "node %s", toID)
	}
	return from, to, nil
}

// FindPath computes the shortest route between two nodes of a venue. Graphs
// above the size threshold use the bidirectional search.
func (s *Service) FindPath(ctx context.Context, venueID, fromID, toID string) (Route, error) {
	from, _, err := s.resolveEndpoints(ctx, venueID, fromID, toID)
	if err != nil {
		return Route{}, err
	}
	if fromID == toID {
		return Route{
			Nodes:   []Node{from},
			Summary: "you are already at your destination",
		}, nil
	}

	g, err := s.graph(ctx, venueID)
	if err != nil {
		return Route{}, err
	}

	var (
		ids  []string
		dist float64
		ok   bool
	)
	if g.NodeCount() > bidirectionalThreshold {
		ids, dist, ok = g.shortestPathBidirectional(fromID, toID)
	} else {
		ids, dist, ok = g.shortestPath(fromID, toID)
	}
	if !ok {
		return Route{}, errors.Wrapf(ErrNoRoute, "%s to %s", fromID, toID)
	}
	return s.buildRoute(g, ids, dist), nil
}

// FindAlternativeRoutes returns up to k routes sorted by distance, the
// shortest first. k below 1 is treated as 1.
func (s *Service) FindAlternativeRoutes(ctx context.Context, venueID, fromID, toID string, k int) ([]Route, error) {
	if k < 1 {
		k = 1
	}
	if _, _, err := s.resolveEndpoints(ctx, venueID, fromID, toID); err != nil {
		return nil, err
	}
	if fromID == toID {
		r, err := s.FindPath(ctx, venueID, fromID, toID)
		if err != nil {
			return nil, err
		}
		return []Route{r}, nil
	}

	g, err := s.graph(ctx, venueID)
	if err != nil {
		return nil, err
	}
	candidates := g.alternativePaths(fromID, toID, k)
	if len(candidates) == 0 {
		return nil, errors.Wrapf(ErrNoRoute, "%s to %s", fromID, toID)
	}

	routes := make([]Route, 0, len(candidates))
	for _, c := range candidates {
		routes = append(routes, s.buildRoute(g, c.ids, c.distance))
	}
	return routes, nil
}

// FindReachableNodes lists every node reachable from the given start.
func (s *Service) FindReachableNodes(ctx context.Context, venueID, fromID string) ([]string, error) {
	from, err := s.store.Node(ctx, fromID)
	if err != nil {
		return nil, errors.Wrapf(ErrNodeNotFound, "node %s", fromID)
	}
	if from.VenueID != venueID {
		return nil, errors.Wrapf(ErrVenueMismatch, "node %s", fromID)
	}
	g, err := s.graph(ctx, venueID)
	if err != nil {
		return nil, err
	}
	return g.reachableFrom(fromID), nil
}

// ValidateGraph reports connectivity statistics for a venue graph.
func (s *Service) ValidateGraph(ctx context.Context, venueID string) (ValidationReport, error) {
	g, err := s.graph(ctx, venueID)
	if err != nil {
		return ValidationReport{}, err
	}
	report := g.validate()
	if !report.Connected {
		s.logger.Warn("graph is fragmented",
			"venue", venueID,
			"components", len(report.Components),
			"isolated", len(report.IsolatedNodes))
	}
	return report, nil
}

// PairFailure records a booth pair with no route between them.
type PairFailure struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// SuspiciousPair is a connected booth pair whose route detours far beyond
// the straight-line distance.
type SuspiciousPair struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Ratio    float64 `json:"ratio"`
	Distance float64 `json:"distance"`
}

// PairTestReport aggregates the exhaustive booth-pair sweep.
type PairTestReport struct {
	Booths     int              `json:"booths"`
	Pairs      int              `json:"pairs"`
	Failures   []PairFailure    `json:"failures,omitempty"`
	Suspicious []SuspiciousPair `json:"suspicious,omitempty"`
}

// TestAllBoothPairs routes between every booth pair of a venue, tallying
// unreachable pairs and ones with suspiciously long detours. Intended as an
// offline health check after graph generation.
func (s *Service) TestAllBoothPairs(ctx context.Context, venueID string) (PairTestReport, error) {
	g, err := s.graph(ctx, venueID)
	if err != nil {
		return PairTestReport{}, err
	}

	// One representative per display name keeps duplicate detections from
	// inflating the pair count.
	byName := make(map[string]Node)
	for _, b := range g.Booths() {
		name := b.Name
		if name == "" {
			name = b.ID
		}
		if _, ok := byName[name]; !ok {
			byName[name] = b
		}
	}
	booths := make([]Node, 0, len(byName))
	for _, b := range byName {
		booths = append(booths, b)
	}
	sort.Slice(booths, func(i, j int) bool { return booths[i].ID < booths[j].ID })

	report := PairTestReport{Booths: len(booths)}
	for i := 0; i < len(booths); i++ {
		for j := i + 1; j < len(booths); j++ {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			report.Pairs++
			a, b := booths[i], booths[j]
			_, dist, ok := g.shortestPath(a.ID, b.ID)
			if !ok {
				report.Failures = append(report.Failures, PairFailure{From: a.ID, To: b.ID})
				continue
			}
			straight := planar.Distance(a.Position, b.Position)
			if straight > 0 && dist/straight > suspiciousDetourRatio {
				report.Suspicious = append(report.Suspicious, SuspiciousPair{
					From:     a.ID,
					To:       b.ID,
					Ratio:    dist / straight,
					Distance: dist,
				})
			}
		}
	}

	sort.Slice(report.Suspicious, func(i, j int) bool {
		return report.Suspicious[i].Ratio > report.Suspicious[j].Ratio
	})

	s.logger.Info("booth pair sweep complete",
		"venue", venueID,
		"pairs", report.Pairs,
		"failures", len(report.Failures),
		"suspicious", len(report.Suspicious))
	return report, nil
}

func (s *Service) buildRoute(g *Graph, ids []string, dist float64) Route {
	nodes := make([]Node, 0, len(ids))
	for _, id := range ids {
		nodes = append(nodes, g.nodes[id])
	}
	nodes = SmoothPath(nodes)
	steps, summary := SynthesizeDirections(nodes, g.Booths())
	return Route{
		Nodes:            nodes,
		Distance:         dist,
		EstimatedSeconds: EstimateWalkSeconds(dist, s.unitScale),
		Steps:            steps,
		Summary:          summary,
	}
}
