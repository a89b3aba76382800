// pkg/database/query.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package database

import (
	"slices"

	bolt "go.etcd.io/bbolt"

	"github.com/mmp/adrcore/pkg/math"
	"github.com/mmp/adrcore/pkg/object"
	adruuid "github.com/mmp/adrcore/pkg/uuid"
)

// Flags is find_all/find_dependson's reserved flags parameter. Every
// call site in original_source/cfmu passes 0; no bit is defined there,
// so this is plumbed through for call-site compatibility rather than
// given invented meaning.
type Flags uint32

// overlapsWindow reports whether obj has at least one slice whose
// [Start,End) window overlaps [t0,t1).
func overlapsWindow(obj object.Object, t0, t1 uint64) bool {
	for i := 0; i < obj.Size(); i++ {
		ts := obj.At(i)
		if ts.StartTime() < t1 && t0 < ts.EndTime() {
			return true
		}
	}
	return false
}

// hasTypeInRange reports whether obj has at least one slice whose type
// tag falls in [typeFrom,typeTo] and which also overlaps [t0,t1).
func hasTypeInRange(obj object.Object, typeFrom, typeTo object.TypeTag, t0, t1 uint64) bool {
	for i := 0; i < obj.Size(); i++ {
		ts := obj.At(i)
		if ts.TypeTag() < typeFrom || ts.TypeTag() > typeTo {
			continue
		}
		if ts.StartTime() < t1 && t0 < ts.EndTime() {
			return true
		}
	}
	return false
}

// FindAll implements §4.2's find_all: every Object with at least one
// slice whose type tag is in [typeFrom,typeTo] and which overlaps
// [t0,t1), loaded per mode. Ordered by UUID, matching the "vertex-add
// order is the order of the enclosing find_all result, itself ordered by
// UUID" determinism guarantee (§5/invariant 7) that downstream Graph
// construction relies on.
func (d *Database) FindAll(mode LoadMode, t0, t1 uint64, typeFrom, typeTo object.TypeTag, flags Flags) ([]object.Object, error) {
	ids, err := d.scanIDs(func(obj object.Object) bool {
		return hasTypeInRange(obj, typeFrom, typeTo, t0, t1)
	})
	if err != nil {
		return nil, err
	}
	return d.loadAll(ids, mode)
}

// FindDependsOn implements §4.2's find_dependson: every Object that
// references target from at least one slice's Link field, restricted to
// slices whose type tag falls in [typeFrom,typeTo] and which overlap
// [t0,t1). Uses the reverse-dependency index rather than a full scan.
func (d *Database) FindDependsOn(target adruuid.UUID, mode LoadMode, t0, t1 uint64, typeFrom, typeTo object.TypeTag, flags Flags) ([]object.Object, error) {
	d.guard.RLock(d.log)
	sources := make([]adruuid.UUID, 0, len(d.revDeps[target]))
	for id := range d.revDeps[target] {
		sources = append(sources, id)
	}
	d.guard.RUnlock(d.log)
	slices.SortFunc(sources, func(a, b adruuid.UUID) int { return a.Compare(b) })

	var matched []adruuid.UUID
	for _, id := range sources {
		obj, err := d.Load(id, LinkNone)
		if err != nil {
			continue
		}
		if hasTypeInRange(obj, typeFrom, typeTo, t0, t1) {
			matched = append(matched, id)
		}
	}
	return d.loadAll(matched, mode)
}

// FindByBBox implements §4.2's find_by_bbox: a dependency-free spatial
// query over the flat grid index, returning every Object whose indexed
// geographic extent overlaps rect. Objects with no geographic extent
// (Route, SID/STAR, FlightRestriction, Unit) are never indexed and so
// never returned here.
func (d *Database) FindByBBox(rect math.Extent2D, mode LoadMode) ([]object.Object, error) {
	d.guard.RLock(d.log)
	ids := d.grid.query(rect)
	d.guard.RUnlock(d.log)
	slices.SortFunc(ids, func(a, b adruuid.UUID) int { return a.Compare(b) })
	return d.loadAll(ids, mode)
}

func (d *Database) loadAll(ids []adruuid.UUID, mode LoadMode) ([]object.Object, error) {
	out := make([]object.Object, 0, len(ids))
	for _, id := range ids {
		obj, err := d.Load(id, mode)
		if err != nil {
			d.log.Warnf("database: dropping %s from query result: %v", id, err)
			continue
		}
		out = append(out, obj)
	}
	return out, nil
}

// scanIDs walks every stored object and returns, in UUID order, the
// UUIDs for which keep returns true. Used by FindAll, which has no
// narrower index to consult (type+time range isn't pre-indexed, matching
// the teacher's own policy of scanning its whole in-memory snapshot per
// query rather than maintaining a type/time index).
func (d *Database) scanIDs(keep func(object.Object) bool) ([]adruuid.UUID, error) {
	d.guard.RLock(d.log)
	defer d.guard.RUnlock(d.log)

	var out []adruuid.UUID
	err := d.bolt.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(objectsBucket)
		return b.ForEach(func(k, v []byte) error {
			id := adruuid.FromBytes([16]byte(k))
			obj, err := decodeStoredObject(id, v)
			if err != nil {
				d.log.Errorf("database: skipping corrupt object %s during scan: %v", id, err)
				return nil
			}
			if keep(obj) {
				out = append(out, id)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	slices.SortFunc(out, func(a, b adruuid.UUID) int { return a.Compare(b) })
	return out, nil
}
