// pkg/timeslice/ident.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package timeslice

import "github.com/mmp/adrcore/pkg/object"

///////////////////////////////////////////////////////////////////////////
// IdentTimeSlice

type IdentTimeSlice struct {
	object.Base
	identFields
}

var invalidIdent = &IdentTimeSlice{Base: object.NewBase(object.TypeInvalid, 0, 0)}

// AsIdent downcasts ts to *IdentTimeSlice, returning the shared invalid
// sentinel (never nil) if ts is not one.
func AsIdent(ts object.TimeSlice) *IdentTimeSlice {
	if v, ok := ts.(*IdentTimeSlice); ok {
		return v
	}
	return invalidIdent
}

func (s *IdentTimeSlice) archiveFields(a object.Archive) {
	encodeBase(a, &s.Base)
	encodeIdent(a, &s.identFields)
}

///////////////////////////////////////////////////////////////////////////
// PointIdentTimeSlice

type PointIdentTimeSlice struct {
	object.Base
	pointFields
}

var invalidPointIdent = &PointIdentTimeSlice{Base: object.NewBase(object.TypeInvalid, 0, 0)}

func AsPointIdent(ts object.TimeSlice) *PointIdentTimeSlice {
	if v, ok := ts.(*PointIdentTimeSlice); ok {
		return v
	}
	return invalidPointIdent
}

func (s *PointIdentTimeSlice) archiveFields(a object.Archive) {
	encodeBase(a, &s.Base)
	encodePoint(a, &s.pointFields)
}

///////////////////////////////////////////////////////////////////////////
// ElevPointIdentTimeSlice

type ElevPointIdentTimeSlice struct {
	object.Base
	elevPointFields
}

var invalidElevPointIdent = &ElevPointIdentTimeSlice{Base: object.NewBase(object.TypeInvalid, 0, 0), elevPointFields: elevPointFields{ElevFt: ElevUnknown}}

func AsElevPointIdent(ts object.TimeSlice) *ElevPointIdentTimeSlice {
	if v, ok := ts.(*ElevPointIdentTimeSlice); ok {
		return v
	}
	return invalidElevPointIdent
}

func (s *ElevPointIdentTimeSlice) archiveFields(a object.Archive) {
	encodeBase(a, &s.Base)
	encodeElevPoint(a, &s.elevPointFields)
}
