// pkg/timeslice/airport.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package timeslice

import "github.com/mmp/adrcore/pkg/object"

// AirportTimeSlice carries an aerodrome's name/IATA/served-cities and
// its civil/military/instrument-approach flags; name + coordinate +
// elevation live in the embedded elevPointFields.
type AirportTimeSlice struct {
	object.Base
	elevPointFields
	IATA          string
	Name          string
	ServedCities  []string
	Civil         bool
	Military      bool
	DepartureIFR  bool
	ArrivalIFR    bool
	ControllingUnit object.Link
}

var invalidAirport = &AirportTimeSlice{Base: object.NewBase(object.TypeInvalid, 0, 0), elevPointFields: elevPointFields{ElevFt: ElevUnknown}}

func AsAirport(ts object.TimeSlice) *AirportTimeSlice {
	if v, ok := ts.(*AirportTimeSlice); ok {
		return v
	}
	return invalidAirport
}

func (s *AirportTimeSlice) Links() []*object.Link {
	return []*object.Link{&s.ControllingUnit}
}

func (s *AirportTimeSlice) archiveFields(a object.Archive) {
	encodeBase(a, &s.Base)
	encodeElevPoint(a, &s.elevPointFields)
	a.String(&s.IATA)
	a.String(&s.Name)

	n := len(s.ServedCities)
	a.Len(&n)
	if !a.Saving() {
		s.ServedCities = make([]string, n)
	}
	for i := range s.ServedCities {
		if a.Saving() && i >= len(s.ServedCities) {
			break
		}
		a.String(&s.ServedCities[i])
	}

	var flags uint8
	if a.Saving() {
		flags = packAirportFlags(s.Civil, s.Military, s.DepartureIFR, s.ArrivalIFR)
	}
	a.U8(&flags)
	if !a.Saving() {
		s.Civil, s.Military, s.DepartureIFR, s.ArrivalIFR = unpackAirportFlags(flags)
	}

	unit := s.ControllingUnit.UUID()
	a.UUID(&unit)
	if !a.Saving() {
		s.ControllingUnit = object.NewLink(unit)
	}
}

// packAirportFlags/unpackAirportFlags pack the four airport flags into
// the low nibble of the flags byte archiveFields writes after the
// served-cities list; the type tag byte written by codec.go does not
// carry them.
func packAirportFlags(civ, mil, depifr, arrifr bool) uint8 {
	var f uint8
	if civ {
		f |= 1 << 0
	}
	if mil {
		f |= 1 << 1
	}
	if depifr {
		f |= 1 << 2
	}
	if arrifr {
		f |= 1 << 3
	}
	return f
}

func unpackAirportFlags(f uint8) (civ, mil, depifr, arrifr bool) {
	return f&(1<<0) != 0, f&(1<<1) != 0, f&(1<<2) != 0, f&(1<<3) != 0
}
