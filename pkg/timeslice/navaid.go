// pkg/timeslice/navaid.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package timeslice

import "github.com/mmp/adrcore/pkg/object"

type NavaidKind uint8

const (
	NavaidInvalid NavaidKind = iota
	NavaidVOR
	NavaidVORDME
	NavaidVORTAC
	NavaidTACAN
	NavaidDME
	NavaidNDB
	NavaidNDBDME
	NavaidILS
	NavaidLOC
	NavaidMarker
)

func (k NavaidKind) String() string {
	switch k {
	case NavaidVOR:
		return "VOR"
	case NavaidVORDME:
		return "VOR-DME"
	case NavaidVORTAC:
		return "VORTAC"
	case NavaidTACAN:
		return "TACAN"
	case NavaidDME:
		return "DME"
	case NavaidNDB:
		return "NDB"
	case NavaidNDBDME:
		return "NDB-DME"
	case NavaidILS:
		return "ILS"
	case NavaidLOC:
		return "LOC"
	case NavaidMarker:
		return "Marker"
	default:
		return "Invalid"
	}
}

// NavaidTimeSlice covers the VOR/VOR-DME/VORTAC/TACAN/DME/NDB/NDB-DME/
// ILS/LOC/marker family: a single Kind field distinguishes them rather
// than one Go type per kind, since they share every field (ident,
// coordinate, elevation, frequency) and differ only in what the
// frequency/channel means.
type NavaidTimeSlice struct {
	object.Base
	elevPointFields
	Kind      NavaidKind
	Frequency float32 // MHz for VOR/ILS/LOC family, kHz for NDB family
}

var invalidNavaid = &NavaidTimeSlice{Base: object.NewBase(object.TypeInvalid, 0, 0), elevPointFields: elevPointFields{ElevFt: ElevUnknown}}

func AsNavaid(ts object.TimeSlice) *NavaidTimeSlice {
	if v, ok := ts.(*NavaidTimeSlice); ok {
		return v
	}
	return invalidNavaid
}

func (s *NavaidTimeSlice) archiveFields(a object.Archive) {
	encodeBase(a, &s.Base)
	encodeElevPoint(a, &s.elevPointFields)
	kind := uint8(s.Kind)
	a.U8(&kind)
	if !a.Saving() {
		s.Kind = NavaidKind(kind)
	}
	a.F32(&s.Frequency)
}
