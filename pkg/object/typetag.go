// pkg/object/typetag.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package object

// TypeTag is the single byte prefixed to every archived object,
// identifying which concrete TimeSlice variant its fields decode into.
// The tag byte on the wire is always the plain TypeTag value: Airport's
// civ/mil/depifr/arrifr flags are not packed into it, but archived in a
// separate body byte (see pkg/timeslice/airport.go).
type TypeTag uint8

const (
	TypeInvalid TypeTag = iota
	TypeGenericIdent        // IdentTimeSlice: bare ident, e.g. a calendar/special-date entry
	TypeAirportCollocation  // PointIdentTimeSlice: an ident+coordinate marker collocated with an airport
	TypeBeacon              // ElevPointIdentTimeSlice: a generic elevated point marker (e.g. angle/distance indicator)
	TypeUnit
	TypeSID
	TypeSTAR
	TypeRoute
	TypeFlightRestriction
	TypeNavaid
	TypeDesignatedPoint
	TypeSegment
	TypeDepartureLeg
	TypeArrivalLeg
	TypeRouteSegment
	TypeAirspace
	TypeAirport
	TypeAirspaceBorder
)

func (t TypeTag) String() string {
	switch t {
	case TypeGenericIdent:
		return "GenericIdent"
	case TypeAirportCollocation:
		return "AirportCollocation"
	case TypeBeacon:
		return "Beacon"
	case TypeUnit:
		return "Unit"
	case TypeSID:
		return "SID"
	case TypeSTAR:
		return "STAR"
	case TypeRoute:
		return "Route"
	case TypeFlightRestriction:
		return "FlightRestriction"
	case TypeNavaid:
		return "Navaid"
	case TypeDesignatedPoint:
		return "DesignatedPoint"
	case TypeSegment:
		return "Segment"
	case TypeDepartureLeg:
		return "DepartureLeg"
	case TypeArrivalLeg:
		return "ArrivalLeg"
	case TypeRouteSegment:
		return "RouteSegment"
	case TypeAirspace:
		return "Airspace"
	case TypeAirport:
		return "Airport"
	case TypeAirspaceBorder:
		return "AirspaceBorder"
	default:
		return "Invalid"
	}
}
