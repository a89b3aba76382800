// pkg/timeslice/restriction.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package timeslice

import "github.com/mmp/adrcore/pkg/object"

type RestrictionRuleType uint8

const (
	RestrictionInvalid RestrictionRuleType = iota
	RestrictionMDR             // mandatory/minimum route
	RestrictionProhibitedArea
	RestrictionRestrictedArea
)

// FlightRestrictionTimeSlice carries a rule type, an applicability
// timetable, and the set of segment/airspace Links it restricts; the
// CDR evaluation in pkg/cdr unions its exclusions with the AUP override
// when computing a segment's per-level validity.
type FlightRestrictionTimeSlice struct {
	object.Base
	identFields
	RuleType  RestrictionRuleType
	Timetable Timetable
	Restricts []object.Link
}

var invalidFlightRestriction = &FlightRestrictionTimeSlice{Base: object.NewBase(object.TypeInvalid, 0, 0)}

func AsFlightRestriction(ts object.TimeSlice) *FlightRestrictionTimeSlice {
	if v, ok := ts.(*FlightRestrictionTimeSlice); ok {
		return v
	}
	return invalidFlightRestriction
}

func (s *FlightRestrictionTimeSlice) Links() []*object.Link {
	links := make([]*object.Link, len(s.Restricts))
	for i := range s.Restricts {
		links[i] = &s.Restricts[i]
	}
	return links
}

func (s *FlightRestrictionTimeSlice) archiveFields(a object.Archive) {
	encodeBase(a, &s.Base)
	encodeIdent(a, &s.identFields)
	rt := uint8(s.RuleType)
	a.U8(&rt)
	if !a.Saving() {
		s.RuleType = RestrictionRuleType(rt)
	}
	a.U64(&s.Timetable.StartTime)
	a.U64(&s.Timetable.EndTime)

	n := len(s.Restricts)
	a.Len(&n)
	if !a.Saving() {
		s.Restricts = make([]object.Link, n)
	}
	for i := range s.Restricts {
		id := s.Restricts[i].UUID()
		a.UUID(&id)
		if !a.Saving() {
			s.Restricts[i] = object.NewLink(id)
		}
	}
}
