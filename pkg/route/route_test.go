// pkg/route/route_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package route

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func isAirway(s string) bool {
	switch s {
	case "UL602", "UN858", "Y863":
		return true
	default:
		return false
	}
}

func TestParseDirectRoute(t *testing.T) {
	wps, err := Parse("EGLL DCT WOD DCT KONAN DCT EGKK", isAirway)
	require.NoError(t, err)
	require.Len(t, wps, 4)
	for _, wp := range wps {
		require.Empty(t, wp.Airway)
	}
	require.Equal(t, "EGLL", wps[0].Ident)
	require.Equal(t, "WOD", wps[1].Ident)
	require.Equal(t, "KONAN", wps[2].Ident)
	require.Equal(t, "EGKK", wps[3].Ident)
}

func TestParseAirwayRoute(t *testing.T) {
	wps, err := Parse("EGLL UL602 KONAN Y863 EGKK", isAirway)
	require.NoError(t, err)
	require.Len(t, wps, 3)
	require.Empty(t, wps[0].Airway)
	require.Equal(t, "UL602", wps[1].Airway)
	require.Equal(t, "Y863", wps[2].Airway)
}

func TestParseSpeedLevelChangeGroup(t *testing.T) {
	wps, err := Parse("EGLL DCT WOD/N0440F350 DCT EGKK", isAirway)
	require.NoError(t, err)
	require.Len(t, wps, 3)
	require.Equal(t, int32(440), wps[1].SpeedKt)
	require.Equal(t, int32(35000), wps[1].LevelFt)
}

func TestParseRejectsLeadingAirway(t *testing.T) {
	_, err := Parse("UL602 KONAN EGKK", isAirway)
	require.Error(t, err)
}

func TestParseRejectsTrailingAirway(t *testing.T) {
	_, err := Parse("EGLL KONAN UL602", isAirway)
	require.Error(t, err)
}

func TestParseRejectsDoubleAirway(t *testing.T) {
	_, err := Parse("EGLL UL602 UN858 KONAN", isAirway)
	require.Error(t, err)
}

func TestParseRejectsMalformedLevelGroup(t *testing.T) {
	_, err := Parse("EGLL DCT WOD/X0440F350 DCT EGKK", isAirway)
	require.Error(t, err)
}

func TestEncodeRoundTrip(t *testing.T) {
	wps, err := Parse("EGLL UL602 KONAN DCT EGKK", isAirway)
	require.NoError(t, err)
	require.Equal(t, "EGLL UL602 KONAN DCT EGKK", Encode(wps))
}
