// pkg/timeslice/designatedpoint.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package timeslice

import "github.com/mmp/adrcore/pkg/object"

type DesignatedPointKind uint8

const (
	DesignatedPointInvalid DesignatedPointKind = iota
	DesignatedPointICAO
	DesignatedPointTerminal
	DesignatedPointCoordDerived
	DesignatedPointADRBoundary
	DesignatedPointUser
)

// DesignatedPointTimeSlice is a named fix that is not itself a navaid:
// an ICAO five-letter name-code point, a terminal (SID/STAR-local)
// point, a point whose ident is derived from its coordinate, an ADR
// FIR-boundary crossing point, or a user-defined point.
type DesignatedPointTimeSlice struct {
	object.Base
	pointFields
	Kind DesignatedPointKind
}

var invalidDesignatedPoint = &DesignatedPointTimeSlice{Base: object.NewBase(object.TypeInvalid, 0, 0)}

func AsDesignatedPoint(ts object.TimeSlice) *DesignatedPointTimeSlice {
	if v, ok := ts.(*DesignatedPointTimeSlice); ok {
		return v
	}
	return invalidDesignatedPoint
}

func (s *DesignatedPointTimeSlice) archiveFields(a object.Archive) {
	encodeBase(a, &s.Base)
	encodePoint(a, &s.pointFields)
	kind := uint8(s.Kind)
	a.U8(&kind)
	if !a.Saving() {
		s.Kind = DesignatedPointKind(kind)
	}
}
