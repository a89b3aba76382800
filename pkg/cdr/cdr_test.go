// pkg/cdr/cdr_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package cdr

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mmp/adrcore/pkg/altitude"
	"github.com/mmp/adrcore/pkg/log"
	"github.com/mmp/adrcore/pkg/object"
	"github.com/mmp/adrcore/pkg/timeslice"
	"github.com/mmp/adrcore/pkg/uuid"
)

func testLogger() *log.Logger {
	return &log.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func s5Segment() *timeslice.RouteSegmentTimeSlice {
	return &timeslice.RouteSegmentTimeSlice{
		Base: object.NewBase(object.TypeRouteSegment, 0, object.Unlimited),
		Availabilities: []timeslice.Availability{
			{
				Timetable: timeslice.Timetable{StartTime: 0, EndTime: object.Unlimited},
				Alt:       altitude.AltRange{LowerMode: altitude.ModeSTD, LowerAlt: 18000, UpperMode: altitude.ModeSTD, UpperAlt: 28000},
				Status:    timeslice.AvailabilityOpen,
				Forward:   true,
			},
			{
				Timetable: timeslice.Timetable{StartTime: 0, EndTime: object.Unlimited},
				Alt:       altitude.AltRange{LowerMode: altitude.ModeSTD, LowerAlt: 28000, UpperMode: altitude.ModeSTD, UpperAlt: 35000},
				Status:    timeslice.AvailabilityConditional,
				CDR:       2,
				Forward:   true,
			},
		},
	}
}

// TestGetAltRangeUnionsOpenAndConditional is S5's first assertion: with
// no AUP override, the CDR 2 conditional availability still unions into
// the result alongside the open one, yielding the single contiguous
// band [18000, 35000] (represented half-open as [18000, 35001)).
func TestGetAltRangeUnionsOpenAndConditional(t *testing.T) {
	seg := s5Segment()
	objID := uuid.FromName(uuid.NamespaceADR, "UL602-S1")
	store := NewAUPStore(testLogger())

	result, _ := GetAltRange(objID, seg, true, 0, store, nil)
	require.True(t, result.IsInside(18000))
	require.True(t, result.IsInside(28000))
	require.True(t, result.IsInside(35000))
	require.False(t, result.IsInside(35001))
	require.False(t, result.IsInside(17999))
}

// TestGetAltRangeExcludesOverriddenCDR is S5's second assertion: an AUP
// override raising the conditional availability's CDR to 3 (excludedCDR)
// removes its contribution, leaving only the open availability's band
// [18000, 28000] (half-open [18000, 28001)).
func TestGetAltRangeExcludesOverriddenCDR(t *testing.T) {
	seg := s5Segment()
	objID := uuid.FromName(uuid.NamespaceADR, "UL602-S1")
	store := NewAUPStore(testLogger())
	store.Set(AvailKey{Segment: objID, Index: 1}, Override{CDR: 3, Until: object.Unlimited})

	result, _ := GetAltRange(objID, seg, true, 0, store, nil)
	require.True(t, result.IsInside(18000))
	require.True(t, result.IsInside(28000))
	require.False(t, result.IsInside(28001))
	require.False(t, result.IsInside(35000))
}

func TestGetAltRangeNoAvailabilitiesFallsBackToSegmentAlt(t *testing.T) {
	seg := &timeslice.RouteSegmentTimeSlice{
		Base: object.NewBase(object.TypeRouteSegment, 0, object.Unlimited),
	}
	seg.Alt = altitude.AltRange{LowerMode: altitude.ModeSTD, LowerAlt: 5000, UpperMode: altitude.ModeSTD, UpperAlt: 9000}

	objID := uuid.FromName(uuid.NamespaceADR, "DCT1")
	result, _ := GetAltRange(objID, seg, true, 0, NewAUPStore(testLogger()), nil)
	require.True(t, result.IsInside(5000))
	require.True(t, result.IsInside(9000))
	require.False(t, result.IsInside(9001))
}

// TestGetAltRangeRestrictionClosesSegment is §3.9's contribution: an
// active restricted-area FlightRestriction closes the segment outright,
// regardless of what its Availabilities would otherwise allow, and
// tightens tuntil to the restriction's own expiry.
func TestGetAltRangeRestrictionClosesSegment(t *testing.T) {
	seg := s5Segment()
	objID := uuid.FromName(uuid.NamespaceADR, "UL602-S1")
	store := NewAUPStore(testLogger())

	restriction := &timeslice.FlightRestrictionTimeSlice{
		RuleType:  timeslice.RestrictionRestrictedArea,
		Timetable: timeslice.Timetable{StartTime: 0, EndTime: 5000},
	}

	result, until := GetAltRange(objID, seg, true, 0, store, []*timeslice.FlightRestrictionTimeSlice{restriction})
	require.False(t, result.IsInside(18000))
	require.False(t, result.IsInside(28000))
	require.Equal(t, uint64(5000), until)
}

// TestGetAltRangeMDRRestrictionDoesNotClose confirms a mandatory-route
// restriction targeting a segment contributes no exclusion of its own.
func TestGetAltRangeMDRRestrictionDoesNotClose(t *testing.T) {
	seg := s5Segment()
	objID := uuid.FromName(uuid.NamespaceADR, "UL602-S1")
	store := NewAUPStore(testLogger())

	restriction := &timeslice.FlightRestrictionTimeSlice{
		RuleType:  timeslice.RestrictionMDR,
		Timetable: timeslice.Timetable{StartTime: 0, EndTime: object.Unlimited},
	}

	result, _ := GetAltRange(objID, seg, true, 0, store, []*timeslice.FlightRestrictionTimeSlice{restriction})
	require.True(t, result.IsInside(18000))
}

func TestAUPStoreSetClearGet(t *testing.T) {
	store := NewAUPStore(testLogger())
	key := AvailKey{Segment: uuid.FromName(uuid.NamespaceADR, "X"), Index: 0}

	_, ok := store.Get(key, 0)
	require.False(t, ok)

	store.Set(key, Override{CDR: 3, Until: 1000})
	got, ok := store.Get(key, 500)
	require.True(t, ok)
	require.Equal(t, uint8(3), got.CDR)

	_, ok = store.Get(key, 1000)
	require.False(t, ok, "override expires at Until (exclusive)")

	store.Clear(key)
	_, ok = store.Get(key, 500)
	require.False(t, ok)
}
