// pkg/graph/continuity.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package graph

import adruuid "github.com/mmp/adrcore/pkg/uuid"

// OffGraphLevel marks a flight level supplied by a SID/STAR procedure
// that has no corresponding entry in the Graph's Levels table (e.g. a
// departure climb restriction below the en-route structure's base
// level). IsValidConnection special-cases it per §4.7's "if piu and
// piv reference SID/STAR off-graph levels, at least one side is
// in-range and valid".
const OffGraphLevel int32 = -1

// IsValidConnection implements §4.7: whether flight level piu (leaving
// u) and piv (arriving at v) are validly connected across e, the edge
// from u to v. u and v are accepted for symmetry with the spec's
// signature and to look up parallel edges for the level-change case;
// e itself already carries its own From/To.
func (g *Graph) IsValidConnection(u adruuid.UUID, piu int32, v adruuid.UUID, piv int32, e *Edge) bool {
	if piu == OffGraphLevel || piv == OffGraphLevel {
		// At least one side must be an in-range, valid graph level.
		if piu != OffGraphLevel && e.IsValidAtLevel(g, piu) {
			return true
		}
		if piv != OffGraphLevel && e.IsValidAtLevel(g, piv) {
			return true
		}
		return false
	}

	if _, ok := g.levelIndex(piu); !ok {
		return false
	}
	if _, ok := g.levelIndex(piv); !ok {
		return false
	}
	if !e.IsValidAtLevel(g, piu) {
		return false
	}

	if piu == piv {
		return true
	}

	lo, hi := piu, piv
	if lo > hi {
		lo, hi = hi, lo
	}
	for _, lvl := range g.Levels {
		if lvl <= lo || lvl >= hi {
			continue
		}
		if e.IsValidAtLevel(g, lvl) {
			continue
		}
		if !g.anyParallelEdgeValidAt(u, v, lvl) {
			return false
		}
	}
	return true
}

// anyParallelEdgeValidAt reports whether some edge from u to v other
// than the one already failing is valid at lvl, implementing §4.7's
// "or there must exist a parallel DCT/airway edge between the same
// vertex pair that is valid at pi" escape hatch for an intermediate
// level during a climb/descent along an airway leg.
func (g *Graph) anyParallelEdgeValidAt(u, v adruuid.UUID, lvl int32) bool {
	for _, pe := range g.EdgesBetween(u, v) {
		if pe.IsValidAtLevel(g, lvl) {
			return true
		}
	}
	return false
}
