// pkg/object/object.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package object

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/mmp/adrcore/pkg/adrerr"
	adruuid "github.com/mmp/adrcore/pkg/uuid"
)

// Unlimited is the sentinel endtime meaning "no expiry".
const Unlimited uint64 = ^uint64(0)

// TimeSlice is the common interface every concrete slice variant in
// pkg/timeslice implements: a time-bounded record of an object's state.
// Concrete variants additionally implement type-specific accessors;
// callers downcast via the As* helpers in pkg/timeslice, never via a
// type switch on this interface directly.
type TimeSlice interface {
	StartTime() uint64
	EndTime() uint64
	setStartTime(uint64)
	setEndTime(uint64)
	TypeTag() TypeTag
}

// Base is embedded by every concrete TimeSlice variant in pkg/timeslice
// to pick up the StartTime/EndTime/TypeTag bookkeeping (and the
// unexported setStartTime/setEndTime truncation hooks) for free;
// variants add their own typed fields alongside it.
type Base struct {
	Start, End uint64
	Tag        TypeTag
}

func NewBase(tag TypeTag, start, end uint64) Base {
	return Base{Start: start, End: end, Tag: tag}
}

func (b Base) StartTime() uint64     { return b.Start }
func (b Base) EndTime() uint64       { return b.End }
func (b Base) TypeTag() TypeTag      { return b.Tag }
func (b *Base) setStartTime(t uint64) { b.Start = t }
func (b *Base) setEndTime(t uint64)   { b.End = t }

// Linker is implemented by TimeSlice variants that carry Link fields;
// Links returns pointers into those fields so the dependency collector
// and the link resolver can walk them without a full field-by-field
// archive traversal (see archive.go for why encode/decode need the
// richer Archive interface but these two modes don't).
type Linker interface {
	TimeSlice
	Links() []*Link
}

// Object is a container of time slices, all belonging to the
// same identity. Slices reference other objects only through Links; an
// Object owns no direct pointers to peers, so the object graph can be
// built and torn down one object at a time.
type Object interface {
	UUID() adruuid.UUID
	ModifiedTimestamp() uint64
	Dirty() bool
	SetDirty(bool)

	// Size returns the number of time slices the object carries.
	Size() int
	// At returns the i-th slice in start-time order.
	At(i int) TimeSlice
	// Slices returns all slices in start-time order.
	Slices() []TimeSlice

	// TimeSliceAt returns the unique slice whose window contains t, or
	// (nil, false) if no slice covers t.
	TimeSliceAt(t uint64) (TimeSlice, bool)
	// TimeSliceOverlapping returns the slice with the largest overlap
	// with [t0,t1), or (nil, false) if none overlap at all.
	TimeSliceOverlapping(t0, t1 uint64) (TimeSlice, bool)

	// AddTimeSlice inserts a new slice, truncating any existing slice
	// whose start falls inside the new slice's window.
	AddTimeSlice(ts TimeSlice) error

	// TimeDiscontinuities returns the sorted set of instants in
	// [ts.StartTime(), ts.EndTime()] at which either ts or any
	// dependent-through-Link object's slice changes, given a resolver
	// for the Links reachable from ts.
	TimeDiscontinuities(ts TimeSlice, resolve func(adruuid.UUID) (Object, bool)) []uint64
}

// ObjectImpl is the concrete, in-memory implementation of Object.
type ObjectImpl struct {
	uuid      adruuid.UUID
	modified  uint64
	dirty     bool
	slices    []TimeSlice // sorted by StartTime, non-overlapping
}

func NewObject(id adruuid.UUID) *ObjectImpl {
	return &ObjectImpl{uuid: id}
}

func (o *ObjectImpl) UUID() adruuid.UUID { return o.uuid }

func (o *ObjectImpl) ModifiedTimestamp() uint64 { return o.modified }

func (o *ObjectImpl) Dirty() bool { return o.dirty }

func (o *ObjectImpl) SetDirty(d bool) { o.dirty = d }

func (o *ObjectImpl) Size() int { return len(o.slices) }

func (o *ObjectImpl) At(i int) TimeSlice { return o.slices[i] }

func (o *ObjectImpl) Slices() []TimeSlice { return slices.Clone(o.slices) }

func (o *ObjectImpl) TimeSliceAt(t uint64) (TimeSlice, bool) {
	// Binary search would be valid given the sorted-non-overlapping
	// invariant; a linear scan is kept here since slice counts per
	// object are small (almost always single digits) and it keeps the
	// truncation logic in AddTimeSlice easy to reason about alongside.
	for _, ts := range o.slices {
		if t >= ts.StartTime() && t < ts.EndTime() {
			return ts, true
		}
	}
	return nil, false
}

func (o *ObjectImpl) TimeSliceOverlapping(t0, t1 uint64) (TimeSlice, bool) {
	var best TimeSlice
	var bestOverlap uint64
	for _, ts := range o.slices {
		lo, hi := ts.StartTime(), ts.EndTime()
		if lo < t0 {
			lo = t0
		}
		if hi > t1 {
			hi = t1
		}
		if lo >= hi {
			continue
		}
		if overlap := hi - lo; best == nil || overlap > bestOverlap {
			best, bestOverlap = ts, overlap
		}
	}
	return best, best != nil
}

// AddTimeSlice implements the four-step insertion rule from the spec:
// discard empty windows, truncate any slice the new window overlaps —
// pulling an earlier slice's end back to the new start, and pushing a
// later slice's start forward to the new end — append and sort, then
// drop anything that became empty.
func (o *ObjectImpl) AddTimeSlice(ts TimeSlice) error {
	if ts.EndTime() <= ts.StartTime() {
		return fmt.Errorf("add_timeslice: empty window [%d,%d): %w", ts.StartTime(), ts.EndTime(), adrerr.OverlapViolation)
	}

	for _, existing := range o.slices {
		if existing.StartTime() < ts.StartTime() && existing.EndTime() > ts.StartTime() {
			existing.setEndTime(ts.StartTime())
		}
		if existing.StartTime() >= ts.StartTime() && existing.StartTime() < ts.EndTime() {
			existing.setStartTime(ts.EndTime())
		}
	}

	o.slices = append(o.slices, ts)
	slices.SortFunc(o.slices, func(a, b TimeSlice) int {
		switch {
		case a.StartTime() < b.StartTime():
			return -1
		case a.StartTime() > b.StartTime():
			return 1
		default:
			return 0
		}
	})
	o.slices = slices.DeleteFunc(o.slices, func(ts TimeSlice) bool {
		return ts.EndTime() <= ts.StartTime()
	})

	o.modified++
	o.dirty = true
	return nil
}

// TimeDiscontinuities walks ts and every object reachable from it
// through a Linker's Links(), collecting every instant in
// [ts.StartTime(), ts.EndTime()] at which some slice along the way
// starts or ends, clipped to ts's own window.
func (o *ObjectImpl) TimeDiscontinuities(ts TimeSlice, resolve func(adruuid.UUID) (Object, bool)) []uint64 {
	lo, hi := ts.StartTime(), ts.EndTime()
	clip := func(t uint64) (uint64, bool) {
		if t < lo || t > hi {
			return 0, false
		}
		return t, true
	}

	seen := map[uint64]struct{}{}
	add := func(t uint64) {
		if c, ok := clip(t); ok {
			seen[c] = struct{}{}
		}
	}

	add(ts.StartTime())
	add(ts.EndTime())

	if linker, ok := ts.(Linker); ok && resolve != nil {
		for _, l := range linker.Links() {
			target, ok := resolve(l.UUID())
			if !ok {
				continue
			}
			for i := 0; i < target.Size(); i++ {
				dep := target.At(i)
				add(dep.StartTime())
				add(dep.EndTime())
			}
		}
	}

	out := make([]uint64, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

func (o *ObjectImpl) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("uuid", o.uuid.String()),
		slog.Int("slices", len(o.slices)),
		slog.Bool("dirty", o.dirty))
}
