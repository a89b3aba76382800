// pkg/timeslice/airspace.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package timeslice

import (
	"github.com/mmp/adrcore/pkg/altitude"
	"github.com/mmp/adrcore/pkg/math"
	"github.com/mmp/adrcore/pkg/object"
)

type AirspaceClass uint8

const (
	AirspaceClassInvalid AirspaceClass = iota
	AirspaceClassA
	AirspaceClassB
	AirspaceClassC
	AirspaceClassD
	AirspaceClassE
	AirspaceClassF
	AirspaceClassG
)

// AirspaceTimeSlice carries a class, a floor/ceiling AltRange, a
// polygon boundary, and a controlling-unit Link, per SPEC_FULL §3.9.
type AirspaceTimeSlice struct {
	object.Base
	identFields
	Class           AirspaceClass
	Alt             altitude.AltRange
	Boundary        []math.Point2LL
	ControllingUnit object.Link
}

var invalidAirspace = &AirspaceTimeSlice{Base: object.NewBase(object.TypeInvalid, 0, 0)}

func AsAirspace(ts object.TimeSlice) *AirspaceTimeSlice {
	if v, ok := ts.(*AirspaceTimeSlice); ok {
		return v
	}
	return invalidAirspace
}

func (s *AirspaceTimeSlice) Links() []*object.Link { return []*object.Link{&s.ControllingUnit} }

func (s *AirspaceTimeSlice) BBox() math.Extent2D {
	return math.Extent2DFromP2LLs(s.Boundary)
}

func (s *AirspaceTimeSlice) archiveFields(a object.Archive) {
	encodeBase(a, &s.Base)
	encodeIdent(a, &s.identFields)
	class := uint8(s.Class)
	a.U8(&class)
	if !a.Saving() {
		s.Class = AirspaceClass(class)
	}

	a.I32(&s.Alt.LowerAlt)
	a.I32(&s.Alt.UpperAlt)
	lm, um := uint8(s.Alt.LowerMode), uint8(s.Alt.UpperMode)
	a.U8(&lm)
	a.U8(&um)
	if !a.Saving() {
		s.Alt.LowerMode, s.Alt.UpperMode = altitude.Mode(lm), altitude.Mode(um)
	}

	n := len(s.Boundary)
	a.Len(&n)
	if !a.Saving() {
		s.Boundary = make([]math.Point2LL, n)
	}
	for i := range s.Boundary {
		lon, lat := s.Boundary[i].Longitude(), s.Boundary[i].Latitude()
		a.F32(&lon)
		a.F32(&lat)
		if !a.Saving() {
			s.Boundary[i] = math.Point2LL{lon, lat}
		}
	}

	unit := s.ControllingUnit.UUID()
	a.UUID(&unit)
	if !a.Saving() {
		s.ControllingUnit = object.NewLink(unit)
	}
}

///////////////////////////////////////////////////////////////////////////
// AirspaceBorderTimeSlice [SUPPLEMENT]

// AirspaceBorderTimeSlice carries the list of country/FIR border
// segments an airspace boundary follows, supplementing the variant
// list with a record present in original_source/ but only mentioned in
// passing by the distilled spec.
type AirspaceBorderTimeSlice struct {
	object.Base
	identFields
	Segments []math.Point2LL
}

var invalidAirspaceBorder = &AirspaceBorderTimeSlice{Base: object.NewBase(object.TypeInvalid, 0, 0)}

func AsAirspaceBorder(ts object.TimeSlice) *AirspaceBorderTimeSlice {
	if v, ok := ts.(*AirspaceBorderTimeSlice); ok {
		return v
	}
	return invalidAirspaceBorder
}

func (s *AirspaceBorderTimeSlice) archiveFields(a object.Archive) {
	encodeBase(a, &s.Base)
	encodeIdent(a, &s.identFields)
	n := len(s.Segments)
	a.Len(&n)
	if !a.Saving() {
		s.Segments = make([]math.Point2LL, n)
	}
	for i := range s.Segments {
		lon, lat := s.Segments[i].Longitude(), s.Segments[i].Latitude()
		a.F32(&lon)
		a.F32(&lat)
		if !a.Saving() {
			s.Segments[i] = math.Point2LL{lon, lat}
		}
	}
}

///////////////////////////////////////////////////////////////////////////
// UnitTimeSlice [SUPPLEMENT]

// UnitTimeSlice is an ATC unit/organisation-authority identity record,
// referenced by AirportTimeSlice and AirspaceTimeSlice for "controlling
// unit". Grounded on the ARTCC/TRACON identity records in the
// teacher's NASR loader rather than its radio-facility Controller type
// (that one models a live ATC position, not a standing organisation).
type UnitTimeSlice struct {
	object.Base
	identFields
	Name string
}

var invalidUnit = &UnitTimeSlice{Base: object.NewBase(object.TypeInvalid, 0, 0)}

func AsUnit(ts object.TimeSlice) *UnitTimeSlice {
	if v, ok := ts.(*UnitTimeSlice); ok {
		return v
	}
	return invalidUnit
}

func (s *UnitTimeSlice) archiveFields(a object.Archive) {
	encodeBase(a, &s.Base)
	encodeIdent(a, &s.identFields)
	a.String(&s.Name)
}
