// pkg/graph/metric.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package graph

import (
	"github.com/mmp/adrcore/pkg/cdr"
	"github.com/mmp/adrcore/pkg/timeslice"
)

// delta is the flight-level step (ft) Levels advances by; EvaluateMetrics
// assumes Levels is the arithmetic sequence base, base+delta, ..., top
// that set_metric_seg/set_metric_dct (§4.6) are specified against.
func (g *Graph) delta() int32 {
	if len(g.Levels) < 2 {
		return 0
	}
	return g.Levels[1] - g.Levels[0]
}

// EvaluateMetrics fills every edge's per-level metric array (§4.6):
// RouteSegment-backed edges go through get_altrange/set_metric_seg,
// with the segment's current CDR/AUP state resolved against aup; every
// DepartureLeg/ArrivalLeg-backed edge (treated as DCT) goes through
// set_metric_dct using its terrain/corridor
// elevation. It then removes every edge left with no valid level
// (§3.8's kill_empty_edges, folded into this pass per §6.4's redesign
// rather than left as a separate caller-invoked step), returning the
// number pruned.
func (g *Graph) EvaluateMetrics() int {
	base := int32(0)
	if len(g.Levels) > 0 {
		base = g.Levels[0]
	}
	delta := g.delta()

	for _, e := range g.edges {
		ts := e.Obj.At(e.SliceIndex)
		switch v := ts.(type) {
		case *timeslice.RouteSegmentTimeSlice:
			forward := e.From == v.Start.UUID()
			restrictions := g.RestrictionsFor(e.Obj.UUID())
			altSet, _ := cdr.GetAltRange(e.Obj.UUID(), v, forward, g.T, g.aupStore, restrictions)
			cdr.SetMetricSeg(e.Metric, e.DistNM, altSet, base, delta)
		case *timeslice.DepartureLegTimeSlice:
			cdr.SetMetricDCT(e.Metric, e.DistNM, v.TerrainElevFt, v.Corridor5ElevFt, base, delta)
		case *timeslice.ArrivalLegTimeSlice:
			cdr.SetMetricDCT(e.Metric, e.DistNM, v.TerrainElevFt, v.Corridor5ElevFt, base, delta)
		}
	}

	return g.PruneEmptyEdges()
}

// levelIndex returns the index into Levels/Metric for flight level lvl,
// or (-1, false) if lvl isn't one of the Graph's indexed levels.
func (g *Graph) levelIndex(lvl int32) (int, bool) {
	for i, l := range g.Levels {
		if l == lvl {
			return i, true
		}
	}
	return -1, false
}

// IsValidAtLevel reports whether e carries a valid (non-InvalidMetric)
// metric at flight level lvl.
func (e *Edge) IsValidAtLevel(g *Graph, lvl int32) bool {
	i, ok := g.levelIndex(lvl)
	if !ok {
		return false
	}
	return e.Metric[i] != cdr.InvalidMetric
}
