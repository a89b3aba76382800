// pkg/altitude/altitude_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package altitude

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAltRangeIntersectModeless(t *testing.T) {
	// S1: Empty-altitude intersect. FLOOR/CEILING only bound modeless
	// halves, so intersecting a hard range with a modeless one leaves
	// the hard range's bounds unchanged.
	a := AltRange{LowerAlt: 3000, LowerMode: ModeQNH, UpperAlt: 25000, UpperMode: ModeSTD}
	b := AltRange{LowerAlt: 0, LowerMode: ModeFloor, UpperAlt: 50000, UpperMode: ModeCeiling}

	got := a.Intersect(b)
	require.Equal(t, a, got)
}

func TestAltRangeIntersectIdempotent(t *testing.T) {
	r := AltRange{LowerAlt: 18000, LowerMode: ModeSTD, UpperAlt: 35000, UpperMode: ModeSTD}
	require.Equal(t, r, r.Intersect(r))
}

func TestAltRangeIsEmpty(t *testing.T) {
	require.True(t, Invalid.IsEmpty())
	require.False(t, Full.IsEmpty())

	r := AltRange{LowerAlt: 20000, LowerMode: ModeSTD, UpperAlt: 10000, UpperMode: ModeSTD}
	require.True(t, r.IsEmpty())
}

func TestIntervalSetAlgebra(t *testing.T) {
	a := NewIntervalSet[int32](0, 60000)
	a.union(1000, 5000)
	b := NewIntervalSet[int32](0, 60000)
	b.union(4000, 8000)
	c := NewIntervalSet[int32](0, 60000)
	c.union(7000, 9000)

	// (A | B) | C == A | (B | C)
	left := a.Union(b).Union(c)
	right := a.Union(b.Union(c))
	require.True(t, left.Equal(right))

	// A & ~A == empty
	empty := a.Intersect(a.Complement())
	require.True(t, empty.IsEmpty())

	// A & A == A
	require.True(t, a.Equal(a.Intersect(a)))

	// A | ~A == full
	full := NewIntervalSet[int32](0, 60000)
	full.SetFull()
	require.True(t, full.Equal(a.Union(a.Complement())))
}

func TestIntervalSetIsInside(t *testing.T) {
	s := NewIntervalSet[int32](0, 60000)
	s.union(18000, 28001)

	require.True(t, s.IsInside(18000))
	require.True(t, s.IsInside(28000))
	require.False(t, s.IsInside(28001))
	require.False(t, s.IsInside(17999))
}
