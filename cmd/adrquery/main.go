// cmd/adrquery/main.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// adrquery is a small command-line consumer exercising the full
// query-API surface end to end: it opens a Database, builds a Graph at
// a given instant, tokenizes an item-15 route string with pkg/route,
// resolves each waypoint to a vertex with find_ident, and prints the
// shortest level-valid path linking each consecutive pair.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mmp/adrcore/pkg/cdr"
	"github.com/mmp/adrcore/pkg/config"
	"github.com/mmp/adrcore/pkg/database"
	"github.com/mmp/adrcore/pkg/graph"
	"github.com/mmp/adrcore/pkg/log"
	"github.com/mmp/adrcore/pkg/object"
	"github.com/mmp/adrcore/pkg/route"
	"github.com/mmp/adrcore/pkg/search"
	adruuid "github.com/mmp/adrcore/pkg/uuid"
)

func main() {
	var cfg config.Config
	cfg.RegisterFlags(flag.CommandLine)
	instant := flag.Uint64("t", 0, "instant (seconds since epoch) the Graph is built at")
	level := flag.Int("level", 18000, "flight level the path search runs at")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: adrquery [flags] <item-15 route string>\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	routeStr := strings.Join(flag.Args(), " ")

	lg := log.New(false, cfg.LogLevel, cfg.LogDir)

	db, err := database.Open(cfg.StoreDir, lg, cfg.CacheSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", cfg.StoreDir, err)
		os.Exit(1)
	}
	defer db.Close()

	g, err := buildGraph(db, *instant, cfg.LevelsOrDefault(), lg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "building graph: %v\n", err)
		os.Exit(1)
	}

	isAirway := func(ident string) bool { return isRouteIdent(g, ident) }
	waypoints, err := route.Parse(routeStr, isAirway)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if err := expandRoute(g, waypoints, int32(*level)); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// buildGraph loads every object in the store, adding it to a fresh
// Graph at instant t, then evaluates per-level metrics.
func buildGraph(db *database.Database, t uint64, levels []int32, lg *log.Logger) (*graph.Graph, error) {
	objs, err := db.FindAll(database.LinkNone, t, t+1, object.TypeGenericIdent, object.TypeAirspaceBorder, 0)
	if err != nil {
		return nil, err
	}

	resolve := func(id adruuid.UUID) (object.Object, bool) {
		obj, err := db.Load(id, database.LinkNone)
		if err != nil {
			return nil, false
		}
		return obj, true
	}

	g := graph.New(t, levels, cdr.NewAUPStore(lg))
	for _, obj := range objs {
		g.Add(obj, resolve)
	}
	g.EvaluateMetrics()
	return g, nil
}

// isRouteIdent reports whether ident names a Route object (as opposed
// to a point-like vertex that merely happens to share the string), the
// distinction pkg/route's Parse needs to tell an airway token from a
// waypoint token.
func isRouteIdent(g *graph.Graph, ident string) bool {
	for _, obj := range g.FindIdent(ident) {
		if g.IsRoute(obj) {
			return true
		}
	}
	return false
}

// findVertex resolves ident to a single matching point-like vertex
// UUID, erroring out if it's ambiguous or unknown — a real route-planner
// consumer would run its own least-cost candidate assignment instead
// (§4.8); this CLI just picks uniquely or gives up.
func findVertex(g *graph.Graph, ident string) (adruuid.UUID, error) {
	var found []adruuid.UUID
	for _, obj := range g.FindIdent(ident) {
		if g.IsRoute(obj) {
			continue // a Route's own ident, not a point
		}
		found = append(found, obj.UUID())
	}
	switch len(found) {
	case 0:
		return adruuid.UUID{}, fmt.Errorf("%s: no matching vertex", ident)
	case 1:
		return found[0], nil
	default:
		return adruuid.UUID{}, fmt.Errorf("%s: %d ambiguous matches", ident, len(found))
	}
}

// expandRoute walks consecutive waypoint pairs, running a lateral path
// search restricted to each pair's named airway (or DCT), and prints the
// expanded route and its total distance.
func expandRoute(g *graph.Graph, waypoints []route.Waypoint, level int32) error {
	from, err := findVertex(g, waypoints[0].Ident)
	if err != nil {
		return err
	}
	fmt.Print(waypoints[0].Ident)

	var total float32
	for i := 1; i < len(waypoints); i++ {
		to, err := findVertex(g, waypoints[i].Ident)
		if err != nil {
			return err
		}

		p, err := search.ShortestLateralPath(g, from, to, level, waypoints[i].Airway)
		if err != nil {
			return fmt.Errorf("%s to %s at FL%d: %w", waypoints[i-1].Ident, waypoints[i].Ident, level, err)
		}

		for _, e := range p.Edges {
			if ident, ok := g.RouteIdent(e); ok {
				fmt.Printf(" %s", ident)
			} else {
				fmt.Printf(" DCT")
			}
			fmt.Printf(" %s", identOf(g, e.To))
		}
		total += p.DistNM
		from = to
	}
	fmt.Printf("\ntotal distance: %.1f nm\n", total)
	return nil
}

func identOf(g *graph.Graph, id adruuid.UUID) string {
	v, ok := g.FindVertex(id)
	if !ok {
		return id.String()
	}
	if ident, ok := v.Ident(); ok {
		return ident
	}
	return id.String()
}
