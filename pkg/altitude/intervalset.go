// pkg/altitude/intervalset.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package altitude

import (
	"slices"

	"golang.org/x/exp/constraints"
)

// Interval is a single half-open range [Lo, Hi).
type Interval[T constraints.Ordered] struct {
	Lo, Hi T
}

// IntervalSet is a canonical union of half-open intervals over a
// totally-ordered T, bounded by a fixed universe [universeLo,
// universeHi). The invariant maintained at all times is that intervals
// is sorted by Lo, and no two intervals are overlapping or adjacent
// (i.e. it is maximally coalesced).
type IntervalSet[T constraints.Ordered] struct {
	universeLo, universeHi T
	intervals              []Interval[T]
}

// NewIntervalSet returns an empty set over the given universe. Universe
// bounds stand in for the "numeric_limits<T>::min/max" of the original
// template: Complement and SetFull need a concrete upper/lower bound,
// and Go generics have no portable infinity for arbitrary Ordered T.
func NewIntervalSet[T constraints.Ordered](universeLo, universeHi T) *IntervalSet[T] {
	return &IntervalSet[T]{universeLo: universeLo, universeHi: universeHi}
}

func (s *IntervalSet[T]) SetEmpty() {
	s.intervals = nil
}

func (s *IntervalSet[T]) SetFull() {
	s.intervals = []Interval[T]{{Lo: s.universeLo, Hi: s.universeHi}}
}

func (s *IntervalSet[T]) IsEmpty() bool {
	return len(s.intervals) == 0
}

func (s *IntervalSet[T]) Intervals() []Interval[T] {
	return slices.Clone(s.intervals)
}

func (s *IntervalSet[T]) IsInside(x T) bool {
	for _, iv := range s.intervals {
		if x >= iv.Hi {
			continue
		}
		return x >= iv.Lo
	}
	return false
}

func (s *IntervalSet[T]) IsOverlap(lo, hi T) bool {
	if lo >= hi {
		return false
	}
	for _, iv := range s.intervals {
		if lo < iv.Hi && iv.Lo < hi {
			return true
		}
	}
	return false
}

// union inserts [lo,hi) into the set, merging with any overlapping or
// adjacent intervals. It is the sole mutating primitive all of the
// higher-level set operations are built from.
func (s *IntervalSet[T]) union(lo, hi T) {
	if lo >= hi {
		return
	}

	var merged []Interval[T]
	inserted := false
	for _, iv := range s.intervals {
		if iv.Hi < lo {
			merged = append(merged, iv)
			continue
		}
		if iv.Lo > hi {
			if !inserted {
				merged = append(merged, Interval[T]{Lo: lo, Hi: hi})
				inserted = true
			}
			merged = append(merged, iv)
			continue
		}
		// Overlapping or adjacent: absorb into the pending span.
		if iv.Lo < lo {
			lo = iv.Lo
		}
		if iv.Hi > hi {
			hi = iv.Hi
		}
	}
	if !inserted {
		merged = append(merged, Interval[T]{Lo: lo, Hi: hi})
	}
	s.intervals = merged
}

// Clone returns a deep copy of the set.
func (s *IntervalSet[T]) Clone() *IntervalSet[T] {
	return &IntervalSet[T]{
		universeLo: s.universeLo,
		universeHi: s.universeHi,
		intervals:  slices.Clone(s.intervals),
	}
}

// Union returns the union of s and o (s | o).
func (s *IntervalSet[T]) Union(o *IntervalSet[T]) *IntervalSet[T] {
	r := s.Clone()
	for _, iv := range o.intervals {
		r.union(iv.Lo, iv.Hi)
	}
	return r
}

// Complement returns the set of the universe not covered by s (~s).
func (s *IntervalSet[T]) Complement() *IntervalSet[T] {
	r := NewIntervalSet[T](s.universeLo, s.universeHi)
	cur := s.universeLo
	for _, iv := range s.intervals {
		if iv.Lo > cur {
			r.union(cur, iv.Lo)
		}
		if iv.Hi > cur {
			cur = iv.Hi
		}
	}
	if cur < s.universeHi {
		r.union(cur, s.universeHi)
	}
	return r
}

// Intersect returns s & o.
func (s *IntervalSet[T]) Intersect(o *IntervalSet[T]) *IntervalSet[T] {
	r := NewIntervalSet[T](s.universeLo, s.universeHi)
	for _, a := range s.intervals {
		for _, b := range o.intervals {
			lo, hi := a.Lo, a.Hi
			if b.Lo > lo {
				lo = b.Lo
			}
			if b.Hi < hi {
				hi = b.Hi
			}
			if lo < hi {
				r.union(lo, hi)
			}
		}
	}
	return r
}

// Difference returns s with every interval of o removed (s - o),
// computed as s & ~o.
func (s *IntervalSet[T]) Difference(o *IntervalSet[T]) *IntervalSet[T] {
	return s.Intersect(o.Complement())
}

// SymmetricDifference returns the set of points in exactly one of s, o.
func (s *IntervalSet[T]) SymmetricDifference(o *IntervalSet[T]) *IntervalSet[T] {
	return s.Difference(o).Union(o.Difference(s))
}

// Equal reports whether s and o describe the same set of points.
func (s *IntervalSet[T]) Equal(o *IntervalSet[T]) bool {
	return slices.Equal(s.intervals, o.intervals)
}
