// pkg/cdr/cdr.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package cdr evaluates RouteSegmentTimeSlice.Availability records into
// per-level validity, implementing the conditional-route (CDR) and AUP
// override rules in §3.5/§4.6. It is grounded on the teacher's
// time-window-gated restriction pattern in pkg/aviation/route.go
// (AltitudeRestriction/ProcedureTurn, both active only within a
// flagged window), generalised to timetable+CDR-category gating.
package cdr

import (
	"github.com/mmp/adrcore/pkg/altitude"
	"github.com/mmp/adrcore/pkg/log"
	"github.com/mmp/adrcore/pkg/object"
	"github.com/mmp/adrcore/pkg/timeslice"
	"github.com/mmp/adrcore/pkg/util"
	adruuid "github.com/mmp/adrcore/pkg/uuid"
)

// excludedCDR is the threshold at and above which a conditional
// availability contributes nothing (§3.5).
const excludedCDR uint8 = 3

// AvailKey identifies one Availability entry within one RouteSegment
// object, the unit an AUP override applies to.
type AvailKey struct {
	Segment adruuid.UUID
	Index   int
}

// Override is an AUP-published replacement CDR category, valid through
// Until (exclusive). A category at or above excludedCDR marks the
// availability closed for the override's duration.
type Override struct {
	CDR   uint8
	Until uint64
}

// AUPStore holds the set of currently-published AUP overrides. Reads
// (Get) may run concurrently; Set/Clear require exclusive access, per
// §5's "updating [AUP overrides] is a distinct operation requiring
// exclusive access to the ConditionalAvailability store".
type AUPStore struct {
	guard     util.RWGuard
	overrides map[AvailKey]Override
	log       *log.Logger
}

func NewAUPStore(lg *log.Logger) *AUPStore {
	return &AUPStore{overrides: make(map[AvailKey]Override), log: lg}
}

// Set publishes (or replaces) the override for key.
func (s *AUPStore) Set(key AvailKey, o Override) {
	s.guard.Lock(s.log)
	defer s.guard.Unlock(s.log)
	s.overrides[key] = o
}

// Clear removes any override for key, reverting to the availability's
// nominal CDR category.
func (s *AUPStore) Clear(key AvailKey) {
	s.guard.Lock(s.log)
	defer s.guard.Unlock(s.log)
	delete(s.overrides, key)
}

// Get looks up the override for key active at instant t. The second
// return is false if there is no override, or it has expired by t.
func (s *AUPStore) Get(key AvailKey, t uint64) (Override, bool) {
	s.guard.RLock(s.log)
	defer s.guard.RUnlock(s.log)
	o, ok := s.overrides[key]
	if !ok || t >= o.Until {
		return Override{}, false
	}
	return o, true
}

// effectiveCDR resolves the CDR category an availability contributes at
// instant t: the single-lookup AUP override is authoritative when
// present (the "enabled path" the spec names, looked up once per
// availability rather than re-derived per flight level), falling back
// to the availability's own nominal category otherwise. tuntil is
// tightened to the override's expiry when one is in force.
func effectiveCDR(store *AUPStore, key AvailKey, nominal uint8, t, tuntil uint64) (cdr uint8, until uint64) {
	if store == nil {
		return nominal, tuntil
	}
	if o, ok := store.Get(key, t); ok {
		if o.Until < tuntil {
			tuntil = o.Until
		}
		return o.CDR, tuntil
	}
	return nominal, tuntil
}

// GetAltRange implements §4.6's get_altrange: the set of altitudes
// valid for seg's traversal in direction forward at instant t, plus
// tuntil, the instant this result stops being valid (the min of the
// segment's own endtime, any AUP override's expiry, and any active
// restriction's expiry). objID is the UUID of the Object owning seg,
// supplied by the caller (TimeSlice values don't carry their owning
// Object's identity) — it keys AUP overrides per conditional
// availability. restrictions is every FlightRestriction registered
// against objID (§3.9); a prohibited- or restricted-area restriction
// active at t closes the segment outright, unioned with (i.e. on top
// of) whatever the Availabilities/AUP evaluation would otherwise allow —
// an MDR restriction names a mandatory route, not an exclusion, so it
// contributes nothing here.
func GetAltRange(objID adruuid.UUID, seg *timeslice.RouteSegmentTimeSlice, forward bool, t uint64, store *AUPStore, restrictions []*timeslice.FlightRestrictionTimeSlice) (*altitude.IntervalSet[int32], uint64) {
	tuntil := seg.EndTime()

	if excluded, until := restrictionExclusion(restrictions, t); excluded {
		if until < tuntil {
			tuntil = until
		}
		closed := altitude.NewIntervalSet[int32](0, altitude.AltMax)
		closed.SetEmpty()
		return closed, tuntil
	}

	if len(seg.Availabilities) == 0 {
		return seg.Alt.ToIntervalSet(), tuntil
	}

	result := altitude.NewIntervalSet[int32](0, altitude.AltMax)
	result.SetEmpty()
	full := altitude.Full.ToIntervalSet()

	for i, av := range seg.Availabilities {
		if !directionMatches(av, forward) {
			continue
		}
		if !av.Timetable.IsInside(t) {
			continue
		}

		switch av.Status {
		case timeslice.AvailabilityOpen:
			result = result.Union(av.Alt.ToIntervalSet())
		case timeslice.AvailabilityConditional:
			key := AvailKey{Segment: objID, Index: i}
			cdr, until := effectiveCDR(store, key, av.CDR, t, tuntil)
			if until < tuntil {
				tuntil = until
			}
			if cdr >= excludedCDR {
				continue
			}
			// CDR 0-2 all contribute their altrange once admitted past the
			// excludedCDR check above; only CDR >= excludedCDR is closed.
			// "Subtracts" describing CDR 2 elsewhere refers to its effect on
			// a filed flight plan that must avoid the segment outside the
			// conditional window, not to a subtraction from this union.
			result = result.Union(av.Alt.ToIntervalSet())
		case timeslice.AvailabilityClosed, timeslice.AvailabilityInvalid:
			// contributes nothing
		}
	}

	return result.Intersect(full), tuntil
}

// restrictionExclusion reports whether any prohibited- or restricted-area
// restriction in restrictions is active at instant t, and the earliest
// instant one of them stops being active (the min of their Timetable
// end times) — the tuntil contribution GetAltRange folds in alongside
// the segment's own endtime and the AUP override's expiry.
func restrictionExclusion(restrictions []*timeslice.FlightRestrictionTimeSlice, t uint64) (excluded bool, until uint64) {
	until = object.Unlimited
	for _, r := range restrictions {
		if r.RuleType != timeslice.RestrictionProhibitedArea && r.RuleType != timeslice.RestrictionRestrictedArea {
			continue
		}
		if !r.Timetable.IsInside(t) {
			continue
		}
		excluded = true
		if r.Timetable.EndTime < until {
			until = r.Timetable.EndTime
		}
	}
	return excluded, until
}

func directionMatches(av timeslice.Availability, forward bool) bool {
	if forward {
		return av.Forward
	}
	return av.Backward
}

// SetMetricSeg implements §4.6's set_metric_seg: for each of the
// len(metric) flight levels base+i*delta, metric[i] is set to dist if
// that level lies inside altrangeSet, else left at InvalidMetric — a
// single reserved out-of-band sentinel rather than a separate bool
// mask, matching the teacher's "missing value" convention.
func SetMetricSeg(metric []float32, dist float32, altrangeSet *altitude.IntervalSet[int32], base, delta int32) {
	for i := range metric {
		lvl := base + int32(i)*delta
		if altrangeSet.IsInside(lvl) {
			metric[i] = dist
		} else {
			metric[i] = InvalidMetric
		}
	}
}

// SetMetricDCT implements §4.6's set_metric_dct: a synthesized minimum
// altitude based on terrain/corridor elevation bounds which levels are
// valid for a direct (non-airway) edge.
func SetMetricDCT(metric []float32, dist float32, terrainElevFt, corridor5ElevFt int32, base, delta int32) {
	top := base + int32(len(metric)-1)*delta
	margin := int32(1000)
	if top > 5000 {
		margin = 2000
	}
	minElev := terrainElevFt
	if corridor5ElevFt > minElev {
		minElev = corridor5ElevFt
	}
	minElev += margin

	for i := range metric {
		lvl := base + int32(i)*delta
		if lvl >= minElev {
			metric[i] = dist
		} else {
			metric[i] = InvalidMetric
		}
	}
}

// InvalidMetric is the per-level edge metric sentinel meaning "not
// valid at this flight level".
const InvalidMetric float32 = -1
