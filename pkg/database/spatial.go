// pkg/database/spatial.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package database

import (
	"github.com/mmp/adrcore/pkg/math"
	adruuid "github.com/mmp/adrcore/pkg/uuid"
)

// cellSizeDeg is the spatial grid's cell size in degrees. Chosen to keep
// most find_by_bbox queries (airport vicinity, single-FIR extent) within
// a handful of cells without the index degenerating into one giant
// bucket; tuned for the continental scale the teacher's own TRACON/ARTCC
// data covers, not for a single global flat cell.
const cellSizeDeg = 2.0

type cellKey struct{ x, y int32 }

// spatialIndex is the "in-memory R-tree-free flat bucket index" named in
// DESIGN.md: every UUID with a geographic extent is filed into every
// grid cell its bounding box overlaps, following the teacher's own
// preference for hand-rolled simple spatial structures over a dedicated
// geo-index library (pkg/math has no R-tree, just Extent2D/Overlaps).
type spatialIndex struct {
	cells map[cellKey]map[adruuid.UUID]struct{}
	boxes map[adruuid.UUID]math.Extent2D
}

func newSpatialIndex() *spatialIndex {
	return &spatialIndex{
		cells: make(map[cellKey]map[adruuid.UUID]struct{}),
		boxes: make(map[adruuid.UUID]math.Extent2D),
	}
}

func cellRange(e math.Extent2D) (lo, hi cellKey) {
	lo = cellKey{x: floorDiv(e.P0[0], cellSizeDeg), y: floorDiv(e.P0[1], cellSizeDeg)}
	hi = cellKey{x: floorDiv(e.P1[0], cellSizeDeg), y: floorDiv(e.P1[1], cellSizeDeg)}
	return lo, hi
}

func floorDiv(v float32, cell float32) int32 {
	q := v / cell
	if q < 0 {
		return int32(q) - 1
	}
	return int32(q)
}

// insert files id under every cell its (possibly updated) bounding box
// e overlaps, first removing any stale entry from a prior insert.
func (s *spatialIndex) insert(id adruuid.UUID, e math.Extent2D) {
	s.remove(id)
	s.boxes[id] = e

	lo, hi := cellRange(e)
	for x := lo.x; x <= hi.x; x++ {
		for y := lo.y; y <= hi.y; y++ {
			k := cellKey{x, y}
			set, ok := s.cells[k]
			if !ok {
				set = make(map[adruuid.UUID]struct{})
				s.cells[k] = set
			}
			set[id] = struct{}{}
		}
	}
}

func (s *spatialIndex) remove(id adruuid.UUID) {
	e, ok := s.boxes[id]
	if !ok {
		return
	}
	delete(s.boxes, id)

	lo, hi := cellRange(e)
	for x := lo.x; x <= hi.x; x++ {
		for y := lo.y; y <= hi.y; y++ {
			k := cellKey{x, y}
			if set, ok := s.cells[k]; ok {
				delete(set, id)
				if len(set) == 0 {
					delete(s.cells, k)
				}
			}
		}
	}
}

// query returns every UUID whose indexed bounding box overlaps rect,
// deduplicated (a box spanning several cells would otherwise be visited
// once per cell) and filtered by an exact Overlaps check (the grid only
// narrows candidates; cells are a coarser rectangle than the box itself).
func (s *spatialIndex) query(rect math.Extent2D) []adruuid.UUID {
	lo, hi := cellRange(rect)
	seen := map[adruuid.UUID]struct{}{}
	var out []adruuid.UUID
	for x := lo.x; x <= hi.x; x++ {
		for y := lo.y; y <= hi.y; y++ {
			for id := range s.cells[cellKey{x, y}] {
				if _, dup := seen[id]; dup {
					continue
				}
				if box, ok := s.boxes[id]; ok && math.Overlaps(box, rect) {
					seen[id] = struct{}{}
					out = append(out, id)
				}
			}
		}
	}
	return out
}
