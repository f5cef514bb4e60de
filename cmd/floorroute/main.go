// Command floorroute loads a venue graph from a JSON file and answers a
// route query between two nodes.
//
// Usage: floorroute [flags] <graph-json> <from-id> <to-id>
//
// The graph file holds {"venueId": ..., "nodes": [...], "edges": [...]}
// using the persisted node/edge shapes.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"floornav/config"
	"floornav/internal/logs"
	"floornav/internal/nav"
	"floornav/internal/store"
	"floornav/internal/version"
)

type graphFile struct {
	VenueID string     `json:"venueId"`
	Nodes   []nav.Node `json:"nodes"`
	Edges   []nav.Edge `json:"edges"`
}

func main() {
	var (
		alternatives = flag.Int("alt", 0, "number of alternative routes to request")
		validate     = flag.Bool("validate", false, "print a connectivity report instead of routing")
		sweep        = flag.Bool("sweep", false, "route between every booth pair and report defects")
		showVer      = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVer {
		fmt.Println(version.String())
		return
	}

	diagnosticMode := *validate || *sweep
	if (diagnosticMode && flag.NArg() != 1) || (!diagnosticMode && flag.NArg() != 3) {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <graph-json> <from-id> <to-id>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.New()
	if errors.Is(err, config.ErrNotFound) {
		cfg, err = config.Default(), nil
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger, err := logs.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building logger: %v\n", err)
		os.Exit(1)
	}

	gf, err := loadGraph(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading graph: %v\n", err)
		os.Exit(1)
	}

	mem := store.NewMemStore()
	mem.PutNodes(gf.Nodes...)
	mem.PutEdges(gf.VenueID, gf.Edges...)
	svc := nav.NewService(mem, logger, cfg.Routing.UnitScale)
	ctx := context.Background()

	var out any
	switch {
	case *validate:
		out, err = svc.ValidateGraph(ctx, gf.VenueID)
	case *sweep:
		out, err = svc.TestAllBoothPairs(ctx, gf.VenueID)
	case *alternatives > 1:
		k := cfg.Routing.ClampAlternatives(*alternatives)
		out, err = svc.FindAlternativeRoutes(ctx, gf.VenueID, flag.Arg(1), flag.Arg(2), k)
	default:
		out, err = svc.FindPath(ctx, gf.VenueID, flag.Arg(1), flag.Arg(2))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

func loadGraph(path string) (*graphFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	gf := new(graphFile)
	if err := json.Unmarshal(data, gf); err != nil {
		return nil, err
	}
	return gf, nil
}
