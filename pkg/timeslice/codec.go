// pkg/timeslice/codec.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package timeslice

import (
	"github.com/mmp/adrcore/pkg/adrerr"
	"github.com/mmp/adrcore/pkg/object"
)

// archivable is satisfied by every concrete TimeSlice variant in this
// package: archiveFields visits its fields in a fixed order, reading
// them when a is a *object.Decoder and writing them when a is a
// *object.Encoder (object.Archive.Saving reports which).
type archivable interface {
	object.TimeSlice
	archiveFields(a object.Archive)
}

// Encode writes ts to a, prefixed with its single type-tag byte, per
// §4.3's unchanged on-disk object format. The tag is written once per
// slice here; archiveFields itself only ever visits Start/End via
// encodeBase, never the tag.
func Encode(a object.Archive, ts object.TimeSlice) error {
	v, ok := ts.(archivable)
	if !ok {
		return adrerr.BadTypeTag
	}
	tag := uint8(v.TypeTag())
	a.U8(&tag)
	v.archiveFields(a)
	return a.Err()
}

// Decode reads one type tag from a, constructs the matching variant,
// and lets its archiveFields consume the rest of the body (including
// Start/End, via encodeBase). Returns adrerr.BadTypeTag for an unknown
// tag.
func Decode(a object.Archive) (object.TimeSlice, error) {
	var tagByte uint8
	a.U8(&tagByte)
	if err := a.Err(); err != nil {
		return nil, err
	}
	tag := object.TypeTag(tagByte)

	ts := newZeroValue(tag)
	if ts == nil {
		return nil, adrerr.BadTypeTag
	}
	ts.archiveFields(a)
	setTag(ts, tag)
	if err := a.Err(); err != nil {
		return nil, err
	}
	return ts, nil
}

// setTag stamps the decoded tag onto the variant's embedded Base, since
// archiveFields never visits object.Base.Tag itself (only Start/End).
func setTag(ts archivable, tag object.TypeTag) {
	switch v := ts.(type) {
	case *IdentTimeSlice:
		v.Tag = tag
	case *PointIdentTimeSlice:
		v.Tag = tag
	case *ElevPointIdentTimeSlice:
		v.Tag = tag
	case *UnitTimeSlice:
		v.Tag = tag
	case *SIDTimeSlice:
		v.Tag = tag
	case *STARTimeSlice:
		v.Tag = tag
	case *RouteTimeSlice:
		v.Tag = tag
	case *FlightRestrictionTimeSlice:
		v.Tag = tag
	case *NavaidTimeSlice:
		v.Tag = tag
	case *DesignatedPointTimeSlice:
		v.Tag = tag
	case *SegmentTimeSlice:
		v.Tag = tag
	case *DepartureLegTimeSlice:
		v.Tag = tag
	case *ArrivalLegTimeSlice:
		v.Tag = tag
	case *RouteSegmentTimeSlice:
		v.Tag = tag
	case *AirspaceTimeSlice:
		v.Tag = tag
	case *AirportTimeSlice:
		v.Tag = tag
	case *AirspaceBorderTimeSlice:
		v.Tag = tag
	}
}

func newZeroValue(tag object.TypeTag) archivable {
	switch tag {
	case object.TypeGenericIdent:
		return &IdentTimeSlice{}
	case object.TypeAirportCollocation:
		return &PointIdentTimeSlice{}
	case object.TypeBeacon:
		return &ElevPointIdentTimeSlice{elevPointFields: elevPointFields{ElevFt: ElevUnknown}}
	case object.TypeUnit:
		return &UnitTimeSlice{}
	case object.TypeSID:
		return &SIDTimeSlice{}
	case object.TypeSTAR:
		return &STARTimeSlice{}
	case object.TypeRoute:
		return &RouteTimeSlice{}
	case object.TypeFlightRestriction:
		return &FlightRestrictionTimeSlice{}
	case object.TypeNavaid:
		return &NavaidTimeSlice{}
	case object.TypeDesignatedPoint:
		return &DesignatedPointTimeSlice{}
	case object.TypeSegment:
		return &SegmentTimeSlice{}
	case object.TypeDepartureLeg:
		return &DepartureLegTimeSlice{}
	case object.TypeArrivalLeg:
		return &ArrivalLegTimeSlice{}
	case object.TypeRouteSegment:
		return &RouteSegmentTimeSlice{}
	case object.TypeAirspace:
		return &AirspaceTimeSlice{}
	case object.TypeAirport:
		return &AirportTimeSlice{elevPointFields: elevPointFields{ElevFt: ElevUnknown}}
	case object.TypeAirspaceBorder:
		return &AirspaceBorderTimeSlice{}
	default:
		return nil
	}
}
