// pkg/timeslice/sidstar.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package timeslice

import "github.com/mmp/adrcore/pkg/object"

type ProcedureStatus uint8

const (
	ProcedureStatusInvalid ProcedureStatus = iota
	ProcedureStatusUsable
	ProcedureStatusUnusable
	ProcedureStatusPermanentlyClosed
)

// standardInstrumentFields is shared by SIDTimeSlice and STARTimeSlice,
// the two StandardInstrumentTimeSlice specializations named in the
// spec: an airport link, an ident, a list of connection points (where
// the procedure joins the en-route structure), and a usability status.
type standardInstrumentFields struct {
	identFields
	Airport         object.Link
	ConnectionPoints []object.Link
	Status          ProcedureStatus
}

func encodeStandardInstrument(a object.Archive, f *standardInstrumentFields) {
	encodeIdent(a, &f.identFields)
	airport := f.Airport.UUID()
	a.UUID(&airport)
	if !a.Saving() {
		f.Airport = object.NewLink(airport)
	}

	n := len(f.ConnectionPoints)
	a.Len(&n)
	if !a.Saving() {
		f.ConnectionPoints = make([]object.Link, n)
	}
	for i := range f.ConnectionPoints {
		id := f.ConnectionPoints[i].UUID()
		a.UUID(&id)
		if !a.Saving() {
			f.ConnectionPoints[i] = object.NewLink(id)
		}
	}

	status := uint8(f.Status)
	a.U8(&status)
	if !a.Saving() {
		f.Status = ProcedureStatus(status)
	}
}

func standardInstrumentLinks(f *standardInstrumentFields) []*object.Link {
	links := []*object.Link{&f.Airport}
	for i := range f.ConnectionPoints {
		links = append(links, &f.ConnectionPoints[i])
	}
	return links
}

///////////////////////////////////////////////////////////////////////////
// SIDTimeSlice

type SIDTimeSlice struct {
	object.Base
	standardInstrumentFields
}

var invalidSID = &SIDTimeSlice{Base: object.NewBase(object.TypeInvalid, 0, 0)}

func AsSID(ts object.TimeSlice) *SIDTimeSlice {
	if v, ok := ts.(*SIDTimeSlice); ok {
		return v
	}
	return invalidSID
}

func (s *SIDTimeSlice) Links() []*object.Link { return standardInstrumentLinks(&s.standardInstrumentFields) }

func (s *SIDTimeSlice) archiveFields(a object.Archive) {
	encodeBase(a, &s.Base)
	encodeStandardInstrument(a, &s.standardInstrumentFields)
}

///////////////////////////////////////////////////////////////////////////
// STARTimeSlice

type STARTimeSlice struct {
	object.Base
	standardInstrumentFields
	IAF object.Link // initial approach fix, if the STAR has one
}

var invalidSTAR = &STARTimeSlice{Base: object.NewBase(object.TypeInvalid, 0, 0)}

func AsSTAR(ts object.TimeSlice) *STARTimeSlice {
	if v, ok := ts.(*STARTimeSlice); ok {
		return v
	}
	return invalidSTAR
}

func (s *STARTimeSlice) Links() []*object.Link {
	return append(standardInstrumentLinks(&s.standardInstrumentFields), &s.IAF)
}

func (s *STARTimeSlice) archiveFields(a object.Archive) {
	encodeBase(a, &s.Base)
	encodeStandardInstrument(a, &s.standardInstrumentFields)
	iaf := s.IAF.UUID()
	a.UUID(&iaf)
	if !a.Saving() {
		s.IAF = object.NewLink(iaf)
	}
}
