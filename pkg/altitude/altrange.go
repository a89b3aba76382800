// pkg/altitude/altrange.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package altitude implements the integer altitude-interval algebra used
// throughout the ADR core: AltRange, a single mode-tagged band with
// inclusive floor/ceiling bounds (a "FL180 to FL350" clearance includes
// FL350), and IntervalSet, a canonical union of half-open intervals used
// to accumulate per-level validity once an AltRange's inclusive upper
// bound has been converted to an exclusive one.
package altitude

import "math"

// Mode identifies the altimeter datum (or lack of one) a bound is
// expressed against.
type Mode uint8

const (
	ModeInvalid Mode = iota
	ModeQNH
	ModeSTD
	ModeHeight
	ModeFloor
	ModeCeiling
)

func (m Mode) String() string {
	switch m {
	case ModeQNH:
		return "QNH"
	case ModeSTD:
		return "STD"
	case ModeHeight:
		return "HEIGHT"
	case ModeFloor:
		return "FLOOR"
	case ModeCeiling:
		return "CEILING"
	default:
		return "INVALID"
	}
}

// isHard reports whether m pins both an altitude and a datum, as
// opposed to FLOOR/CEILING, which only bound a modeless half of a range.
func (m Mode) isHard() bool {
	return m == ModeQNH || m == ModeSTD || m == ModeHeight
}

// Sentinel altitude values, in feet.
const (
	AltMax     int32 = math.MaxInt32
	AltIgnore  int32 = math.MinInt32 + 1
	AltInvalid int32 = math.MinInt32
)

// AltRange is a single altitude band: (lower_alt, lower_mode, upper_alt,
// upper_mode). It corresponds to the segment/SID/STAR/airspace
// floor-ceiling fields in the object model.
type AltRange struct {
	LowerAlt  int32
	LowerMode Mode
	UpperAlt  int32
	UpperMode Mode
}

// Full spans the entire representable altitude range with FLOOR/CEILING
// (modeless) bounds, the identity element for Intersect.
var Full = AltRange{
	LowerAlt:  0,
	LowerMode: ModeFloor,
	UpperAlt:  AltMax,
	UpperMode: ModeCeiling,
}

// Invalid is the empty/invalid sentinel range.
var Invalid = AltRange{
	LowerAlt:  AltInvalid,
	LowerMode: ModeInvalid,
	UpperAlt:  AltInvalid,
	UpperMode: ModeInvalid,
}

// IsEmpty reports whether the range contains no altitude.
func (r AltRange) IsEmpty() bool {
	if r.LowerMode == ModeInvalid || r.UpperMode == ModeInvalid {
		return true
	}
	return r.LowerAlt > r.UpperAlt
}

// IsInside reports whether alt lies within [LowerAlt, UpperAlt]; both
// bounds are inclusive feet values, matching real altitude-block
// convention (a clearance "FL180 to FL350" includes FL350) rather than
// the half-open convention used for time and slice windows elsewhere.
func (r AltRange) IsInside(alt int32) bool {
	if r.IsEmpty() {
		return false
	}
	return alt >= r.LowerAlt && alt <= r.UpperAlt
}

// IsOverlap reports whether r and o share at least one altitude.
func (r AltRange) IsOverlap(o AltRange) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return r.LowerAlt <= o.UpperAlt && o.LowerAlt <= r.UpperAlt
}

// combineLower resolves the lower bound of an intersection or merge.
// pickMax selects whichever alt is larger (intersect: narrow); passing
// pickMax=false selects the smaller (merge: widen). A FLOOR mode paired
// with a hard mode always defers to the hard mode, which then carries
// the numerically selected alt, since FLOOR itself bounds a modeless half.
func combineLower(aMode Mode, aAlt int32, bMode Mode, bAlt int32, pickMax bool) (Mode, int32) {
	aHard, bHard := aMode.isHard(), bMode.isHard()
	switch {
	case aHard && !bHard:
		if pickMax == (aAlt >= bAlt) {
			return aMode, aAlt
		}
		return aMode, bAlt
	case bHard && !aHard:
		if pickMax == (aAlt >= bAlt) {
			return bMode, aAlt
		}
		return bMode, bAlt
	case aHard && bHard:
		if pickMax == (aAlt >= bAlt) {
			return aMode, aAlt
		}
		return bMode, bAlt
	default:
		// Both modeless (FLOOR): take the numerically selected bound,
		// mode stays FLOOR.
		if pickMax == (aAlt >= bAlt) {
			return ModeFloor, aAlt
		}
		return ModeFloor, bAlt
	}
}

func combineUpper(aMode Mode, aAlt int32, bMode Mode, bAlt int32, pickMin bool) (Mode, int32) {
	aHard, bHard := aMode.isHard(), bMode.isHard()
	switch {
	case aHard && !bHard:
		if pickMin == (aAlt <= bAlt) {
			return aMode, aAlt
		}
		return aMode, bAlt
	case bHard && !aHard:
		if pickMin == (aAlt <= bAlt) {
			return bMode, aAlt
		}
		return bMode, bAlt
	case aHard && bHard:
		if pickMin == (aAlt <= bAlt) {
			return aMode, aAlt
		}
		return bMode, bAlt
	default:
		if pickMin == (aAlt <= bAlt) {
			return ModeCeiling, aAlt
		}
		return ModeCeiling, bAlt
	}
}

// Intersect returns the narrower of r and o: the larger of the two
// lower bounds and the smaller of the two upper bounds, with mode
// promotion such that intersecting FLOOR with a hard mode yields the
// hard mode at the max (resp. min) of the two bounds.
func (r AltRange) Intersect(o AltRange) AltRange {
	if r.IsEmpty() || o.IsEmpty() {
		return Invalid
	}
	lm, la := combineLower(r.LowerMode, r.LowerAlt, o.LowerMode, o.LowerAlt, true)
	um, ua := combineUpper(r.UpperMode, r.UpperAlt, o.UpperMode, o.UpperAlt, true)
	result := AltRange{LowerAlt: la, LowerMode: lm, UpperAlt: ua, UpperMode: um}
	if result.IsEmpty() {
		return Invalid
	}
	return result
}

// Merge returns the wider of r and o: the smaller of the two lower
// bounds and the larger of the two upper bounds.
func (r AltRange) Merge(o AltRange) AltRange {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	lm, la := combineLower(r.LowerMode, r.LowerAlt, o.LowerMode, o.LowerAlt, false)
	um, ua := combineUpper(r.UpperMode, r.UpperAlt, o.UpperMode, o.UpperAlt, false)
	return AltRange{LowerAlt: la, LowerMode: lm, UpperAlt: ua, UpperMode: um}
}

// ToIntervalSet projects the range onto the [0,AltMax) universe as an
// IntervalSet[int32], the representation used by the CDR/AUP evaluation
// in pkg/cdr. IntervalSet itself is half-open; converting r's inclusive
// UpperAlt into its exclusive bound is the +1 here, skipped at AltMax to
// avoid overflowing the sentinel "no ceiling" value.
func (r AltRange) ToIntervalSet() *IntervalSet[int32] {
	s := NewIntervalSet[int32](0, AltMax)
	if !r.IsEmpty() {
		hi := r.UpperAlt
		if hi < AltMax {
			hi++
		}
		s.union(r.LowerAlt, hi)
	}
	return s
}
