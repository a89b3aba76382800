// pkg/graph/graph.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package graph builds the projected routing view over a Database at a
// single instant t: vertices for point-like objects (navaids,
// designated points, airports), directed edges for route segments and
// SID/STAR legs, each edge carrying a fixed-size per-level metric array
// filled in by pkg/cdr. It is grounded on the teacher's adjacency model
// in pkg/aviation/route.go (WaypointArray sequencing, the Airways
// lookup table in pkg/aviation/db.go) generalised from a fixed
// point-to-point waypoint chain to a UUID-keyed, time-projected graph.
package graph

import (
	"github.com/mmp/adrcore/pkg/cdr"
	"github.com/mmp/adrcore/pkg/math"
	"github.com/mmp/adrcore/pkg/object"
	"github.com/mmp/adrcore/pkg/timeslice"
	adruuid "github.com/mmp/adrcore/pkg/uuid"
)

// MatchAll is the reserved UUID that FindEdge treats as "any vertex
// matches", letting path clients query "is there an edge from u to
// anything" without enumerating candidates themselves.
var MatchAll = adruuid.FromName(adruuid.NamespaceADR, "matchall")

// Vertex is a point-like Object projected at the Graph's build instant:
// an Object plus the index of the slice valid at t.
type Vertex struct {
	Obj        object.Object
	SliceIndex int
}

func (v Vertex) slice() object.TimeSlice { return v.Obj.At(v.SliceIndex) }

func (v Vertex) coord() (math.Point2LL, bool) {
	switch ts := v.slice().(type) {
	case *timeslice.NavaidTimeSlice:
		return ts.Coord, true
	case *timeslice.DesignatedPointTimeSlice:
		return ts.Coord, true
	case *timeslice.AirportTimeSlice:
		return ts.Coord, true
	case *timeslice.PointIdentTimeSlice:
		return ts.Coord, true
	case *timeslice.ElevPointIdentTimeSlice:
		return ts.Coord, true
	default:
		return math.Point2LL{}, false
	}
}

// Edge is a directed connection between two vertices, backed by a
// Segment/RouteSegment/DepartureLeg/ArrivalLeg Object. Metric holds one
// cost entry per flight level in the Graph's level table; InvalidMetric
// (pkg/cdr) marks a level the edge doesn't reach.
type Edge struct {
	Obj        object.Object
	SliceIndex int

	From, To adruuid.UUID

	DistNM       float32
	TrueTrackDeg float32
	Metric       []float32

	// Solution marks an edge selected by a consumer's path search; the
	// core never sets it, only clears it on construction, per §4.8's
	// "the core's guarantee is only that find_ident/find_edge/
	// is_valid_connection are correct" — path selection is a consumer
	// concern.
	Solution bool
	// NoRoute marks an edge that exists topologically but is not open
	// to routing (every level in Metric is InvalidMetric after
	// evaluation). The core never sets it: EvaluateMetrics removes such
	// edges from the Graph instead.
	NoRoute bool
}

func (e *Edge) IsEmpty() bool {
	for _, m := range e.Metric {
		if m != cdr.InvalidMetric {
			return false
		}
	}
	return true
}

// edgeKey identifies one directed edge by its backing object, the
// dedup key §4.5 specifies ("duplicate edges (same UUID from u to v)
// are suppressed"). Distinct objects — an airway segment and a DCT leg,
// say — may both connect the same ordered vertex pair; pairEdges is
// the lookup index for that (§4.7/S6 needs exactly this: a parallel
// DCT edge alongside an airway edge between the same two vertices).
type edgeKey struct {
	from, to adruuid.UUID
	obj      adruuid.UUID
}

type pairKey struct {
	from, to adruuid.UUID
}

// Graph is the projected view built from a Database's objects at a
// single instant t. It owns no Database reference: add() is fed
// objects by the caller (typically the result of Database.FindAll/
// FindByBBox), keeping the determinism the spec requires — the Graph's
// own vertex/edge order depends only on add's call order, which the
// caller controls by iterating a UUID-sorted find_all result (§5).
type Graph struct {
	T      uint64
	Levels []int32 // flight levels (ft) the edge metric arrays are indexed over

	vertices  map[adruuid.UUID]*Vertex
	edges     []*Edge
	byKey     map[edgeKey]*Edge
	pairEdges map[pairKey][]*Edge
	outEdges  map[adruuid.UUID][]*Edge

	// idents maps an ident string to every object registered under it,
	// in registration order, backing FindIdent.
	idents map[string][]object.Object

	// revDeps mirrors Database's reverse-dependency index but scoped to
	// this Graph's own add() calls, so find_dependson-style traversal
	// stays meaningful after objects have been projected into vertices
	// and edges rather than left as raw Database records.
	revDeps map[adruuid.UUID]map[adruuid.UUID]struct{}

	// restrictions indexes every added FlightRestriction by the UUID of
	// each object it Restricts, so EvaluateMetrics can look up the
	// restrictions bearing on a given segment without a reverse-dependency
	// scan per edge.
	restrictions     map[adruuid.UUID][]*timeslice.FlightRestrictionTimeSlice
	restrictionAdded map[adruuid.UUID]bool

	aupStore *cdr.AUPStore
}

// New constructs an empty Graph for instant t, indexed over levels
// (flight levels in feet, ascending). aup may be nil to evaluate
// without any AUP overrides in force.
func New(t uint64, levels []int32, aup *cdr.AUPStore) *Graph {
	return &Graph{
		T:                t,
		Levels:           levels,
		vertices:         make(map[adruuid.UUID]*Vertex),
		byKey:            make(map[edgeKey]*Edge),
		pairEdges:        make(map[pairKey][]*Edge),
		outEdges:         make(map[adruuid.UUID][]*Edge),
		idents:           make(map[string][]object.Object),
		revDeps:          make(map[adruuid.UUID]map[adruuid.UUID]struct{}),
		restrictions:     make(map[adruuid.UUID][]*timeslice.FlightRestrictionTimeSlice),
		restrictionAdded: make(map[adruuid.UUID]bool),
		aupStore:         aup,
	}
}

// FindVertex returns the vertex registered for id, if any.
func (g *Graph) FindVertex(id adruuid.UUID) (*Vertex, bool) {
	v, ok := g.vertices[id]
	return v, ok
}

// FindEdge returns the first edge from u to v, if one exists; v may be
// MatchAll to return the first edge out of u regardless of its
// destination, in registration order. Use Graph.EdgesBetween to reach
// every parallel edge between u and v rather than only the first.
func (g *Graph) FindEdge(u, v adruuid.UUID) (*Edge, bool) {
	if v == MatchAll {
		out := g.outEdges[u]
		if len(out) == 0 {
			return nil, false
		}
		return out[0], true
	}
	es := g.pairEdges[pairKey{u, v}]
	if len(es) == 0 {
		return nil, false
	}
	return es[0], true
}

// EdgesBetween returns every edge from u to v, in add order.
func (g *Graph) EdgesBetween(u, v adruuid.UUID) []*Edge {
	return g.pairEdges[pairKey{u, v}]
}

// FindIdent returns every object registered under ident, in the order
// they were added to the Graph.
func (g *Graph) FindIdent(ident string) []object.Object {
	return g.idents[ident]
}

// Edges returns every edge currently in the Graph, in add order.
func (g *Graph) Edges() []*Edge { return g.edges }

// OutEdges returns every edge leaving vertex id, in add order.
func (g *Graph) OutEdges(id adruuid.UUID) []*Edge { return g.outEdges[id] }

func (g *Graph) addDependency(from, to adruuid.UUID) {
	set, ok := g.revDeps[to]
	if !ok {
		set = make(map[adruuid.UUID]struct{})
		g.revDeps[to] = set
	}
	set[from] = struct{}{}
}

func (g *Graph) registerIdent(obj object.Object, ident string) {
	if ident == "" {
		return
	}
	for _, existing := range g.idents[ident] {
		if existing.UUID() == obj.UUID() {
			return
		}
	}
	g.idents[ident] = append(g.idents[ident], obj)
}

// Add classifies obj by its slice valid at the Graph's instant t and
// projects it into vertices/edges, recursing into whatever obj
// references (§4.5). It returns the number of new vertices and edges
// this call contributed; duplicates (an object, or an edge from the same
// backing object between the same ordered pair, already present) are
// no-ops and contribute 0. An edge from a different object between the
// same pair is added as a parallel edge.
func (g *Graph) Add(obj object.Object, resolve func(adruuid.UUID) (object.Object, bool)) (newVertices, newEdges int) {
	ts, ok := obj.TimeSliceAt(g.T)
	if !ok {
		return 0, 0
	}

	switch v := ts.(type) {
	case *timeslice.NavaidTimeSlice:
		return g.addVertex(obj, ts, v.Ident), 0
	case *timeslice.DesignatedPointTimeSlice:
		return g.addVertex(obj, ts, v.Ident), 0
	case *timeslice.AirportTimeSlice:
		return g.addVertex(obj, ts, v.Ident), 0
	case *timeslice.PointIdentTimeSlice:
		return g.addVertex(obj, ts, v.Ident), 0
	case *timeslice.ElevPointIdentTimeSlice:
		return g.addVertex(obj, ts, v.Ident), 0

	case *timeslice.RouteSegmentTimeSlice:
		return g.addSegmentLike(obj, ts, v.Route, v.Start, v.End, resolve)
	case *timeslice.DepartureLegTimeSlice:
		return g.addSegmentLike(obj, ts, object.Link{}, v.Start, v.End, resolve)
	case *timeslice.ArrivalLegTimeSlice:
		return g.addSegmentLike(obj, ts, object.Link{}, v.Start, v.End, resolve)

	case *timeslice.SIDTimeSlice:
		return g.addProcedure(obj, v.Airport, v.ConnectionPoints, object.Link{}, resolve)
	case *timeslice.STARTimeSlice:
		return g.addProcedure(obj, v.Airport, v.ConnectionPoints, v.IAF, resolve)

	case *timeslice.RouteTimeSlice:
		g.registerIdent(obj, v.Ident)
		return 0, 0

	case *timeslice.FlightRestrictionTimeSlice:
		g.addRestriction(obj, v)
		return 0, 0

	default:
		return 0, 0
	}
}

// addRestriction indexes r by every UUID it Restricts, so EvaluateMetrics
// can look up the restrictions bearing on a segment directly rather than
// walking every restriction in the Graph per edge. A restriction object
// already indexed (obj.Add called on it twice) is a no-op, matching Add's
// general duplicate-is-no-op contract.
func (g *Graph) addRestriction(obj object.Object, r *timeslice.FlightRestrictionTimeSlice) {
	if g.restrictionAdded[obj.UUID()] {
		return
	}
	g.restrictionAdded[obj.UUID()] = true
	for _, link := range r.Restricts {
		id := link.UUID()
		g.restrictions[id] = append(g.restrictions[id], r)
	}
}

// RestrictionsFor returns every FlightRestriction registered against id,
// in add order.
func (g *Graph) RestrictionsFor(id adruuid.UUID) []*timeslice.FlightRestrictionTimeSlice {
	return g.restrictions[id]
}

func (g *Graph) addVertex(obj object.Object, ts object.TimeSlice, ident string) int {
	if _, dup := g.vertices[obj.UUID()]; dup {
		g.registerIdent(obj, ident)
		return 0
	}
	idx := sliceIndexOf(obj, ts)
	g.vertices[obj.UUID()] = &Vertex{Obj: obj, SliceIndex: idx}
	g.registerIdent(obj, ident)
	return 1
}

// sliceIndexOf returns the index of ts within obj's slice list, used
// since object.Object exposes slices by index rather than by identity.
func sliceIndexOf(obj object.Object, ts object.TimeSlice) int {
	for i := 0; i < obj.Size(); i++ {
		if obj.At(i) == ts {
			return i
		}
	}
	return 0
}

func resolveOrLink(link object.Link, resolve func(adruuid.UUID) (object.Object, bool)) (object.Object, bool) {
	if link.UUID().IsNil() {
		return nil, false
	}
	if target, ok := link.Object(); ok {
		return target, true
	}
	if resolve == nil {
		return nil, false
	}
	return resolve(link.UUID())
}

// addSegmentLike implements §4.5's segment-like rule: recursively add
// the owning route (if any), the start and end points, then one or two
// directed edges per the slice's forward/backward flags.
func (g *Graph) addSegmentLike(obj object.Object, ts object.TimeSlice, route, start, end object.Link, resolve func(adruuid.UUID) (object.Object, bool)) (newVertices, newEdges int) {
	if !route.UUID().IsNil() {
		if routeObj, ok := resolveOrLink(route, resolve); ok {
			nv, ne := g.Add(routeObj, resolve)
			newVertices += nv
			newEdges += ne
		}
	}

	startObj, startOK := resolveOrLink(start, resolve)
	if startOK {
		nv, _ := g.Add(startObj, resolve)
		newVertices += nv
	}
	endObj, endOK := resolveOrLink(end, resolve)
	if endOK {
		nv, _ := g.Add(endObj, resolve)
		newVertices += nv
	}
	if !startOK || !endOK {
		return newVertices, newEdges
	}

	forward, backward := directionFlags(ts)

	g.addDependency(obj.UUID(), start.UUID())
	g.addDependency(obj.UUID(), end.UUID())
	if !route.UUID().IsNil() {
		g.addDependency(obj.UUID(), route.UUID())
	}

	if forward {
		if g.addDirectedEdge(obj, ts, start.UUID(), end.UUID()) {
			newEdges++
		}
	}
	if backward {
		if g.addDirectedEdge(obj, ts, end.UUID(), start.UUID()) {
			newEdges++
		}
	}
	return newVertices, newEdges
}

func directionFlags(ts object.TimeSlice) (forward, backward bool) {
	switch v := ts.(type) {
	case *timeslice.RouteSegmentTimeSlice:
		return v.Forward, v.Backward
	case *timeslice.DepartureLegTimeSlice:
		return v.Forward, v.Backward
	case *timeslice.ArrivalLegTimeSlice:
		return v.Forward, v.Backward
	default:
		return false, false
	}
}

// addDirectedEdge suppresses a duplicate (same UUID, same direction)
// edge and otherwise builds a new Edge: dist/track are precomputed from
// the endpoint vertices' coordinates (§4.5's GraphEdge constructor); the
// metric array starts all-invalid and is filled later by
// EvaluateMetrics.
func (g *Graph) addDirectedEdge(obj object.Object, ts object.TimeSlice, from, to adruuid.UUID) bool {
	key := edgeKey{from, to, obj.UUID()}
	if _, dup := g.byKey[key]; dup {
		return false
	}

	e := &Edge{
		Obj:        obj,
		SliceIndex: sliceIndexOf(obj, ts),
		From:       from,
		To:         to,
		Metric:     newInvalidMetric(len(g.Levels)),
	}
	if fv, ok := g.vertices[from]; ok {
		if tv, ok := g.vertices[to]; ok {
			if fc, ok := fv.coord(); ok {
				if tc, ok := tv.coord(); ok {
					e.DistNM = math.NMDistance2LL(fc, tc)
					e.TrueTrackDeg = math.Heading2LL(fc, tc, 60, 0)
				}
			}
		}
	}

	g.byKey[key] = e
	g.edges = append(g.edges, e)
	g.outEdges[from] = append(g.outEdges[from], e)
	pk := pairKey{from, to}
	g.pairEdges[pk] = append(g.pairEdges[pk], e)
	return true
}

func newInvalidMetric(n int) []float32 {
	m := make([]float32, n)
	for i := range m {
		m[i] = cdr.InvalidMetric
	}
	return m
}

// addProcedure implements §4.5's SID/STAR rule: recursively add the
// airport and every connection point (plus the IAF, for a STAR), and
// register no edges of its own — legs are added separately through
// their own Add calls, each referencing the SID/STAR via its own Link.
func (g *Graph) addProcedure(obj object.Object, airport object.Link, connectionPoints []object.Link, iaf object.Link, resolve func(adruuid.UUID) (object.Object, bool)) (newVertices, newEdges int) {
	if airportObj, ok := resolveOrLink(airport, resolve); ok {
		nv, _ := g.Add(airportObj, resolve)
		newVertices += nv
		g.addDependency(obj.UUID(), airport.UUID())
	}
	for _, cp := range connectionPoints {
		if cpObj, ok := resolveOrLink(cp, resolve); ok {
			nv, _ := g.Add(cpObj, resolve)
			newVertices += nv
			g.addDependency(obj.UUID(), cp.UUID())
		}
	}
	if !iaf.UUID().IsNil() {
		if iafObj, ok := resolveOrLink(iaf, resolve); ok {
			nv, _ := g.Add(iafObj, resolve)
			newVertices += nv
			g.addDependency(obj.UUID(), iaf.UUID())
		}
	}
	return newVertices, newEdges
}

// PruneEmptyEdges removes every edge whose metric array is entirely
// InvalidMetric, returning the count removed. The query-API surface no
// longer exposes this as a caller-invoked step (kill_empty_edges):
// EvaluateMetrics calls it automatically after filling every edge's
// metric array, since a metric-less edge is never independently useful
// to a consumer and leaving the choice to the caller only invited
// stale, half-evaluated graphs.
func (g *Graph) PruneEmptyEdges() int {
	kept := g.edges[:0]
	removed := 0
	for _, e := range g.edges {
		if e.IsEmpty() {
			delete(g.byKey, edgeKey{e.From, e.To, e.Obj.UUID()})
			g.outEdges[e.From] = removeEdge(g.outEdges[e.From], e)
			pk := pairKey{e.From, e.To}
			g.pairEdges[pk] = removeEdge(g.pairEdges[pk], e)
			removed++
			continue
		}
		kept = append(kept, e)
	}
	g.edges = kept
	return removed
}

func removeEdge(edges []*Edge, target *Edge) []*Edge {
	out := edges[:0]
	for _, e := range edges {
		if e != target {
			out = append(out, e)
		}
	}
	return out
}
