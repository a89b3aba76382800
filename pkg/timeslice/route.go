// pkg/timeslice/route.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package timeslice

import "github.com/mmp/adrcore/pkg/object"

// RouteTimeSlice is the parent record a RouteSegmentTimeSlice's Route
// link points at; the graph layer registers ident -> object for these
// without adding vertices/edges of its own (§4.5).
type RouteTimeSlice struct {
	object.Base
	identFields
}

var invalidRoute = &RouteTimeSlice{Base: object.NewBase(object.TypeInvalid, 0, 0)}

func AsRoute(ts object.TimeSlice) *RouteTimeSlice {
	if v, ok := ts.(*RouteTimeSlice); ok {
		return v
	}
	return invalidRoute
}

func (s *RouteTimeSlice) archiveFields(a object.Archive) {
	encodeBase(a, &s.Base)
	encodeIdent(a, &s.identFields)
}
