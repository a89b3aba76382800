// pkg/graph/ident.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package graph

import (
	"github.com/mmp/adrcore/pkg/object"
	"github.com/mmp/adrcore/pkg/timeslice"
)

// RouteIdent returns the ident of the Route a RouteSegment-backed edge
// belongs to, if its Route Link is resolved and has a slice valid at
// the Graph's instant t. Edges backed by a DepartureLeg, ArrivalLeg, or
// bare Segment have no owning Route and so never return true — pkg/search
// treats them as DCT-eligible rather than airway-eligible for exactly
// this reason (§4.8's "a sub-graph filtered to a particular airway ...
// or to DCT edges").
func (g *Graph) RouteIdent(e *Edge) (string, bool) {
	seg, ok := e.Obj.At(e.SliceIndex).(*timeslice.RouteSegmentTimeSlice)
	if !ok {
		return "", false
	}
	routeObj, ok := seg.Route.Object()
	if !ok {
		return "", false
	}
	ts, ok := routeObj.TimeSliceAt(g.T)
	if !ok {
		return "", false
	}
	route, ok := ts.(*timeslice.RouteTimeSlice)
	if !ok {
		return "", false
	}
	return route.Ident, route.Ident != ""
}

// IsRoute reports whether obj's slice at the Graph's instant t is a
// RouteTimeSlice — i.e. obj is an airway's own identity record, not a
// point-like vertex that happens to share its ident string.
func (g *Graph) IsRoute(obj object.Object) bool {
	ts, ok := obj.TimeSliceAt(g.T)
	if !ok {
		return false
	}
	_, ok = ts.(*timeslice.RouteTimeSlice)
	return ok
}

// Ident returns the point-like identifier of a vertex, if its backing
// slice carries one (Navaid/DesignatedPoint/PointIdent/ElevPointIdent
// all embed identFields; Airport has its own Ident field directly).
func (v Vertex) Ident() (string, bool) {
	switch ts := v.slice().(type) {
	case *timeslice.NavaidTimeSlice:
		return ts.Ident, ts.Ident != ""
	case *timeslice.DesignatedPointTimeSlice:
		return ts.Ident, ts.Ident != ""
	case *timeslice.AirportTimeSlice:
		return ts.Ident, ts.Ident != ""
	case *timeslice.PointIdentTimeSlice:
		return ts.Ident, ts.Ident != ""
	case *timeslice.ElevPointIdentTimeSlice:
		return ts.Ident, ts.Ident != ""
	default:
		return "", false
	}
}
