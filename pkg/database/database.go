// pkg/database/database.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package database implements the UUID-keyed object store: a
// persistent, content-addressed backing store (go.etcd.io/bbolt), a
// resolved-object cache (hashicorp/golang-lru/v2), a flat bounding-box
// spatial index, and the reverse-dependency index that find_dependson
// answers from. It is grounded on the teacher's CSV-snapshot loader in
// pkg/aviation/db.go (sequential decode, explicit error returns) adapted
// from an in-memory read-only load to an incremental, persistent one.
package database

import (
	"bytes"
	"fmt"
	"io"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/klauspost/compress/zstd"
	bolt "go.etcd.io/bbolt"

	"github.com/mmp/adrcore/pkg/adrerr"
	"github.com/mmp/adrcore/pkg/log"
	"github.com/mmp/adrcore/pkg/math"
	"github.com/mmp/adrcore/pkg/object"
	"github.com/mmp/adrcore/pkg/timeslice"
	"github.com/mmp/adrcore/pkg/util"
	adruuid "github.com/mmp/adrcore/pkg/uuid"
)

var objectsBucket = []byte("objects")

// LoadMode controls how far a query follows an object's Link fields
// before returning it, per §4.2.
type LoadMode int

const (
	// LinkNone leaves every Link unresolved: only UUIDs are known.
	LinkNone LoadMode = iota
	// LinkOne resolves one level: the object's own Links point at
	// loaded (but not further resolved) targets.
	LinkOne
	// LinkDeep resolves transitively: every Link reachable by
	// following Links is itself resolved.
	LinkDeep
)

// Database is the UUID-keyed object store. Reads may run concurrently;
// Save and Sync mutate the cache, spatial index, and
// reverse-dependency index together and so require exclusive access via
// guard, per §5.
type Database struct {
	guard util.RWGuard
	log   *log.Logger

	bolt  *bolt.DB
	cache *lru.Cache[adruuid.UUID, object.Object]
	grid  *spatialIndex

	// revDeps maps a target UUID to the set of UUIDs that reference it
	// from at least one TimeSlice Link, rebuilt from the backing store
	// on Open and kept current by Save.
	revDeps map[adruuid.UUID]map[adruuid.UUID]struct{}
}

// Open opens (creating if necessary) the bbolt file at path and rebuilds
// the in-memory spatial and reverse-dependency indexes by scanning every
// stored object, the same "load the whole snapshot at startup" policy
// the teacher's NASR loader uses, just against bbolt instead of a CSV/zip
// bundle.
func Open(path string, lg *log.Logger, cacheSize int) (*Database, error) {
	bdb, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("database: open %s: %w", path, err)
	}

	if err := bdb.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(objectsBucket)
		return err
	}); err != nil {
		bdb.Close()
		return nil, fmt.Errorf("database: create bucket: %w", err)
	}

	cache, err := lru.New[adruuid.UUID, object.Object](cacheSize)
	if err != nil {
		bdb.Close()
		return nil, fmt.Errorf("database: new cache: %w", err)
	}

	d := &Database{
		log:     lg,
		bolt:    bdb,
		cache:   cache,
		grid:    newSpatialIndex(),
		revDeps: make(map[adruuid.UUID]map[adruuid.UUID]struct{}),
	}

	if err := d.rebuildIndexes(); err != nil {
		bdb.Close()
		return nil, err
	}

	return d, nil
}

func (d *Database) Close() error {
	return d.bolt.Close()
}

// rebuildIndexes scans every stored object once, populating the spatial
// index and reverse-dependency index. Called once from Open; Save keeps
// both incrementally current afterward.
func (d *Database) rebuildIndexes() error {
	return d.bolt.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(objectsBucket)
		return b.ForEach(func(k, v []byte) error {
			id := adruuid.FromBytes([16]byte(k))
			obj, err := decodeStoredObject(id, v)
			if err != nil {
				d.log.Errorf("database: skipping corrupt object %s on load: %v", id, err)
				return nil
			}
			d.indexObject(obj)
			return nil
		})
	})
}

// indexObject updates the spatial and reverse-dependency indexes for
// obj's current slices; it does not touch the cache or the backing
// store. Callers must hold d.guard for exclusive access.
func (d *Database) indexObject(obj object.Object) {
	for i := 0; i < obj.Size(); i++ {
		ts := obj.At(i)
		if e, ok := bboxOf(ts); ok {
			d.grid.insert(obj.UUID(), e)
		}
		for _, dep := range object.CollectDependencies(ts) {
			set, ok := d.revDeps[dep]
			if !ok {
				set = make(map[adruuid.UUID]struct{})
				d.revDeps[dep] = set
			}
			set[obj.UUID()] = struct{}{}
		}
	}
}

// Save persists obj, replacing any prior version under the same UUID,
// and brings the cache/spatial/reverse-dependency indexes up to date.
func (d *Database) Save(obj object.Object) error {
	d.guard.Lock(d.log)
	defer d.guard.Unlock(d.log)

	data, err := encodeStoredObject(obj)
	if err != nil {
		return fmt.Errorf("database: encode %s: %w", obj.UUID(), err)
	}

	id := obj.UUID()
	key := id.Bytes()
	if err := d.bolt.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(objectsBucket).Put(key[:], data)
	}); err != nil {
		return fmt.Errorf("database: put %s: %w", id, err)
	}

	obj.SetDirty(false)
	d.cache.Add(id, obj)
	d.indexObject(obj)
	return nil
}

// Load returns the object stored under id, resolving its Links as
// directed by mode. It returns adrerr.NotFound if id is not present.
func (d *Database) Load(id adruuid.UUID, mode LoadMode) (object.Object, error) {
	d.guard.RLock(d.log)
	cached, hit := d.cache.Get(id)
	d.guard.RUnlock(d.log)
	if hit {
		return d.resolve(cached, mode, map[adruuid.UUID]struct{}{id: {}})
	}

	key := id.Bytes()
	var data []byte
	if err := d.bolt.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(objectsBucket).Get(key[:])
		if v == nil {
			return adrerr.NotFound
		}
		data = bytes.Clone(v)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("database: load %s: %w", id, err)
	}

	obj, err := decodeStoredObject(id, data)
	if err != nil {
		return nil, fmt.Errorf("database: decode %s: %w", id, err)
	}

	d.guard.Lock(d.log)
	d.cache.Add(id, obj)
	d.guard.Unlock(d.log)

	return d.resolve(obj, mode, map[adruuid.UUID]struct{}{id: {}})
}

// resolve implements LinkOne/LinkDeep by walking obj's slices' Link
// fields and loading each target, recursing when mode is LinkDeep.
// visited guards against cycles (the object model is documented as an
// acyclic DAG, but resolve must not hang if that invariant is ever
// violated by corrupt data).
func (d *Database) resolve(obj object.Object, mode LoadMode, visited map[adruuid.UUID]struct{}) (object.Object, error) {
	if mode == LinkNone {
		return obj, nil
	}

	resolveFn := func(target adruuid.UUID) (object.Object, bool) {
		if _, seen := visited[target]; seen {
			cached, ok := d.cache.Get(target)
			return cached, ok
		}
		visited[target] = struct{}{}

		childMode := LinkNone
		if mode == LinkDeep {
			childMode = LinkDeep
		}
		child, err := d.Load(target, childMode)
		if err != nil {
			return nil, false
		}
		return child, true
	}

	for i := 0; i < obj.Size(); i++ {
		object.ResolveLinks(obj.At(i), resolveFn)
	}
	return obj, nil
}

// decodeStoredObject unwraps the outer zstd frame bbolt values carry
// (§6.1) and decodes the per-object archive underneath.
func decodeStoredObject(id adruuid.UUID, compressed []byte) (object.Object, error) {
	zr, err := zstd.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	return decodeObjectArchive(id, raw)
}

// decodeObjectArchive decodes the per-object archive format itself: a
// slice count followed by that many tag-dispatched TimeSlice encodings
// (§6.1's byte layout, with no outer compression). Shared by
// decodeStoredObject (bbolt values, zstd-wrapped) and Sync's source
// files (plain, produced upstream by the out-of-scope AIXM parser).
func decodeObjectArchive(id adruuid.UUID, raw []byte) (object.Object, error) {
	d := object.NewDecoder(raw)
	var n int
	d.Len(&n)
	obj := object.NewObject(id)
	for i := 0; i < n; i++ {
		ts, err := timeslice.Decode(d)
		if err != nil {
			return nil, fmt.Errorf("decode slice %d/%d: %w", i, n, err)
		}
		if err := obj.AddTimeSlice(ts); err != nil {
			return nil, fmt.Errorf("add slice %d/%d: %w", i, n, err)
		}
	}
	if err := d.Err(); err != nil {
		return nil, err
	}
	return obj, nil
}

func encodeStoredObject(obj object.Object) ([]byte, error) {
	e := object.NewEncoder()
	n := obj.Size()
	e.Len(&n)
	for i := 0; i < n; i++ {
		if err := timeslice.Encode(e, obj.At(i)); err != nil {
			return nil, err
		}
	}
	if err := e.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("zstd writer: %w", err)
	}
	if _, err := zw.Write(e.Bytes()); err != nil {
		zw.Close()
		return nil, fmt.Errorf("zstd write: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zstd close: %w", err)
	}
	return buf.Bytes(), nil
}

// bboxOf returns the bounding box of ts's geographic extent, if it has
// one: a polygon for AirspaceTimeSlice, a point-as-degenerate-box for
// every point-bearing variant, and the stored BBox field for the
// segment family. Variants with no geographic extent (Route, SID/STAR,
// FlightRestriction, Unit) return (zero, false) and are absent from the
// spatial index — find_by_bbox is documented as dependency-free, so
// these are reachable only through find_all/find_dependson.
func bboxOf(ts object.TimeSlice) (math.Extent2D, bool) {
	switch v := ts.(type) {
	case *timeslice.AirspaceTimeSlice:
		return v.BBox(), true
	case *timeslice.RouteSegmentTimeSlice:
		return v.BBox, true
	case *timeslice.SegmentTimeSlice:
		return v.BBox, true
	case *timeslice.DepartureLegTimeSlice:
		return v.BBox, true
	case *timeslice.ArrivalLegTimeSlice:
		return v.BBox, true
	case *timeslice.NavaidTimeSlice:
		return math.Extent2DFromP2LLs([]math.Point2LL{v.Coord}), true
	case *timeslice.DesignatedPointTimeSlice:
		return math.Extent2DFromP2LLs([]math.Point2LL{v.Coord}), true
	case *timeslice.AirportTimeSlice:
		return math.Extent2DFromP2LLs([]math.Point2LL{v.Coord}), true
	case *timeslice.PointIdentTimeSlice:
		return math.Extent2DFromP2LLs([]math.Point2LL{v.Coord}), true
	case *timeslice.ElevPointIdentTimeSlice:
		return math.Extent2DFromP2LLs([]math.Point2LL{v.Coord}), true
	default:
		return math.Extent2D{}, false
	}
}
