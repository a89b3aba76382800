// pkg/timeslice/segment.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package timeslice

import (
	"github.com/mmp/adrcore/pkg/altitude"
	"github.com/mmp/adrcore/pkg/math"
	"github.com/mmp/adrcore/pkg/object"
)

// segmentFields is shared by SegmentTimeSlice, RouteSegmentTimeSlice,
// DepartureLegTimeSlice, and ArrivalLegTimeSlice: a directed span
// between two points, with a bounding box, an owning route, and
// terrain/corridor elevation used by the DCT minimum-altitude rule in
// pkg/cdr.
type segmentFields struct {
	BBox             math.Extent2D
	Route            object.Link
	Start, End       object.Link
	Alt              altitude.AltRange
	TerrainElevFt    int32
	Corridor5ElevFt  int32
	Forward, Backward bool
}

func encodeSegment(a object.Archive, f *segmentFields) {
	p0, p1 := f.BBox.P0, f.BBox.P1
	a.F32(&p0[0])
	a.F32(&p0[1])
	a.F32(&p1[0])
	a.F32(&p1[1])
	f.BBox = math.Extent2D{P0: p0, P1: p1}

	route := f.Route.UUID()
	a.UUID(&route)
	start := f.Start.UUID()
	a.UUID(&start)
	end := f.End.UUID()
	a.UUID(&end)
	if !a.Saving() {
		f.Route = object.NewLink(route)
		f.Start = object.NewLink(start)
		f.End = object.NewLink(end)
	}

	a.I32(&f.Alt.LowerAlt)
	lm, um := uint8(f.Alt.LowerMode), uint8(f.Alt.UpperMode)
	a.U8(&lm)
	a.U8(&um)
	a.I32(&f.Alt.UpperAlt)
	if !a.Saving() {
		f.Alt.LowerMode, f.Alt.UpperMode = altitude.Mode(lm), altitude.Mode(um)
	}

	a.I32(&f.TerrainElevFt)
	a.I32(&f.Corridor5ElevFt)

	var dir uint8
	if a.Saving() {
		if f.Forward {
			dir |= 1
		}
		if f.Backward {
			dir |= 2
		}
	}
	a.U8(&dir)
	if !a.Saving() {
		f.Forward, f.Backward = dir&1 != 0, dir&2 != 0
	}
}

func segmentLinks(f *segmentFields) []*object.Link {
	return []*object.Link{&f.Route, &f.Start, &f.End}
}

///////////////////////////////////////////////////////////////////////////
// SegmentTimeSlice (generic, undifferentiated segment)

type SegmentTimeSlice struct {
	object.Base
	segmentFields
}

var invalidSegment = &SegmentTimeSlice{Base: object.NewBase(object.TypeInvalid, 0, 0)}

func AsSegment(ts object.TimeSlice) *SegmentTimeSlice {
	if v, ok := ts.(*SegmentTimeSlice); ok {
		return v
	}
	return invalidSegment
}

func (s *SegmentTimeSlice) Links() []*object.Link { return segmentLinks(&s.segmentFields) }

func (s *SegmentTimeSlice) archiveFields(a object.Archive) {
	encodeBase(a, &s.Base)
	encodeSegment(a, &s.segmentFields)
}

///////////////////////////////////////////////////////////////////////////
// DepartureLegTimeSlice / ArrivalLegTimeSlice

type DepartureLegTimeSlice struct {
	object.Base
	segmentFields
	SID object.Link
}

var invalidDepartureLeg = &DepartureLegTimeSlice{Base: object.NewBase(object.TypeInvalid, 0, 0)}

func AsDepartureLeg(ts object.TimeSlice) *DepartureLegTimeSlice {
	if v, ok := ts.(*DepartureLegTimeSlice); ok {
		return v
	}
	return invalidDepartureLeg
}

func (s *DepartureLegTimeSlice) Links() []*object.Link {
	return append(segmentLinks(&s.segmentFields), &s.SID)
}

func (s *DepartureLegTimeSlice) archiveFields(a object.Archive) {
	encodeBase(a, &s.Base)
	encodeSegment(a, &s.segmentFields)
	sid := s.SID.UUID()
	a.UUID(&sid)
	if !a.Saving() {
		s.SID = object.NewLink(sid)
	}
}

type ArrivalLegTimeSlice struct {
	object.Base
	segmentFields
	STAR object.Link
}

var invalidArrivalLeg = &ArrivalLegTimeSlice{Base: object.NewBase(object.TypeInvalid, 0, 0)}

func AsArrivalLeg(ts object.TimeSlice) *ArrivalLegTimeSlice {
	if v, ok := ts.(*ArrivalLegTimeSlice); ok {
		return v
	}
	return invalidArrivalLeg
}

func (s *ArrivalLegTimeSlice) Links() []*object.Link {
	return append(segmentLinks(&s.segmentFields), &s.STAR)
}

func (s *ArrivalLegTimeSlice) archiveFields(a object.Archive) {
	encodeBase(a, &s.Base)
	encodeSegment(a, &s.segmentFields)
	star := s.STAR.UUID()
	a.UUID(&star)
	if !a.Saving() {
		s.STAR = object.NewLink(star)
	}
}

///////////////////////////////////////////////////////////////////////////
// RouteSegmentTimeSlice

// AvailabilityStatus encodes whether an Availability contributes
// nothing, its altrange unconditionally, or its altrange subject to a
// CDR category.
type AvailabilityStatus uint8

const (
	AvailabilityInvalid AvailabilityStatus = iota
	AvailabilityClosed
	AvailabilityOpen
	AvailabilityConditional
)

// Availability is RouteSegmentTimeSlice::Availability from the spec: a
// (levels_link, timetable, altrange, flags) record.
type Availability struct {
	Levels    object.Link
	Timetable Timetable
	Alt       altitude.AltRange
	Status    AvailabilityStatus
	CDR       uint8 // 0..3; >=3 means excluded
	Forward   bool
	Backward  bool
}

// Timetable is a single [StartTime, EndTime) applicability window;
// IsInside answers whether instant t falls inside it. It has no
// day-of-week or time-of-day rules, and IsInside takes no position
// argument.
type Timetable struct {
	// StartTime/EndTime bound overall applicability; Unlimited end
	// means no expiry, matching object.Unlimited.
	StartTime, EndTime uint64
}

func (tt Timetable) IsInside(t uint64) bool {
	return t >= tt.StartTime && t < tt.EndTime
}

type RouteSegmentTimeSlice struct {
	object.Base
	segmentFields
	Availabilities []Availability
	Levels         []int32 // flight levels this segment is indexed over
}

var invalidRouteSegment = &RouteSegmentTimeSlice{Base: object.NewBase(object.TypeInvalid, 0, 0)}

func AsRouteSegment(ts object.TimeSlice) *RouteSegmentTimeSlice {
	if v, ok := ts.(*RouteSegmentTimeSlice); ok {
		return v
	}
	return invalidRouteSegment
}

func (s *RouteSegmentTimeSlice) Links() []*object.Link {
	links := segmentLinks(&s.segmentFields)
	for i := range s.Availabilities {
		links = append(links, &s.Availabilities[i].Levels)
	}
	return links
}

func (s *RouteSegmentTimeSlice) archiveFields(a object.Archive) {
	encodeBase(a, &s.Base)
	encodeSegment(a, &s.segmentFields)

	n := len(s.Availabilities)
	a.Len(&n)
	if !a.Saving() {
		s.Availabilities = make([]Availability, n)
	}
	for i := range s.Availabilities {
		av := &s.Availabilities[i]
		levels := av.Levels.UUID()
		a.UUID(&levels)
		a.U64(&av.Timetable.StartTime)
		a.U64(&av.Timetable.EndTime)
		a.I32(&av.Alt.LowerAlt)
		a.I32(&av.Alt.UpperAlt)
		lm, um := uint8(av.Alt.LowerMode), uint8(av.Alt.UpperMode)
		a.U8(&lm)
		a.U8(&um)
		status := uint8(av.Status)
		a.U8(&status)
		a.U8(&av.CDR)
		var dir uint8
		if a.Saving() {
			if av.Forward {
				dir |= 1
			}
			if av.Backward {
				dir |= 2
			}
		}
		a.U8(&dir)
		if !a.Saving() {
			av.Levels = object.NewLink(levels)
			av.Alt.LowerMode, av.Alt.UpperMode = altitude.Mode(lm), altitude.Mode(um)
			av.Status = AvailabilityStatus(status)
			av.Forward, av.Backward = dir&1 != 0, dir&2 != 0
		}
	}

	ln := len(s.Levels)
	a.Len(&ln)
	if !a.Saving() {
		s.Levels = make([]int32, ln)
	}
	for i := range s.Levels {
		a.I32(&s.Levels[i])
	}
}
