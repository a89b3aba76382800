// pkg/timeslice/base.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package timeslice implements the concrete TimeSlice variants of the
// ADR object model as a tagged union: one Go struct per variant,
// sharing field groups by plain composition (Go has no inheritance),
// each embedding object.Base for the common start/end/type-tag
// bookkeeping. Callers downcast a object.TimeSlice via the As* family
// below rather than a type switch, matching the "accessors are total"
// design note: a failed downcast returns a shared, immutable sentinel
// rather than nil, so call sites never need a null check.
package timeslice

import (
	"github.com/mmp/adrcore/pkg/math"
	"github.com/mmp/adrcore/pkg/object"
)

// ElevUnknown is the sentinel elevation value meaning "no data".
const ElevUnknown int32 = -1 << 31

// identFields is embedded by every variant that carries an ident string.
type identFields struct {
	Ident string
}

// pointFields is embedded by every variant that additionally carries a
// geographic coordinate.
type pointFields struct {
	identFields
	Coord math.Point2LL
}

// elevPointFields adds ground elevation to pointFields.
type elevPointFields struct {
	pointFields
	ElevFt int32
}

// encodeBase visits a slice's start/end time. The type tag itself is
// written by Encode in codec.go, once per slice, ahead of the fields
// archiveFields visits.
func encodeBase(a object.Archive, b *object.Base) {
	start, end := b.Start, b.End
	a.U64(&start)
	a.U64(&end)
	b.Start, b.End = start, end
}

func encodeIdent(a object.Archive, f *identFields) {
	a.String(&f.Ident)
}

func encodePoint(a object.Archive, f *pointFields) {
	encodeIdent(a, &f.identFields)
	lon, lat := f.Coord.Longitude(), f.Coord.Latitude()
	a.F32(&lon)
	a.F32(&lat)
	f.Coord = math.Point2LL{lon, lat}
}

func encodeElevPoint(a object.Archive, f *elevPointFields) {
	encodePoint(a, &f.pointFields)
	a.I32(&f.ElevFt)
}
