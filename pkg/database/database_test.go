// pkg/database/database_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package database

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mmp/adrcore/pkg/log"
	"github.com/mmp/adrcore/pkg/math"
	"github.com/mmp/adrcore/pkg/object"
	"github.com/mmp/adrcore/pkg/timeslice"
	adruuid "github.com/mmp/adrcore/pkg/uuid"
)

func testLogger() *log.Logger {
	return &log.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func openTestDB(t *testing.T) *Database {
	t.Helper()
	path := filepath.Join(t.TempDir(), "adrcore.db")
	d, err := Open(path, testLogger(), 64)
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func navaidObject(id adruuid.UUID, ident string, coord math.Point2LL) object.Object {
	obj := object.NewObject(id)
	ts := &timeslice.NavaidTimeSlice{
		Base: object.NewBase(object.TypeNavaid, 0, object.Unlimited),
	}
	ts.Ident = ident
	ts.Coord = coord
	ts.Kind = timeslice.NavaidVORTAC
	obj.AddTimeSlice(ts)
	return obj
}

func TestSaveLoadRoundtrip(t *testing.T) {
	d := openTestDB(t)
	id := adruuid.FromName(adruuid.NamespaceADR, "KEPER")
	obj := navaidObject(id, "KEPER", math.Point2LL{9.5, 50.0})

	require.NoError(t, d.Save(obj))

	got, err := d.Load(id, LinkNone)
	require.NoError(t, err)
	require.Equal(t, id, got.UUID())
	require.Equal(t, 1, got.Size())
	require.Equal(t, "KEPER", timeslice.AsNavaid(got.At(0)).Ident)
}

func TestLoadMissingReturnsNotFound(t *testing.T) {
	d := openTestDB(t)
	_, err := d.Load(adruuid.FromName(adruuid.NamespaceADR, "NOPE"), LinkNone)
	require.Error(t, err)
}

func TestFindAllFiltersByTypeAndTime(t *testing.T) {
	d := openTestDB(t)

	navaid := navaidObject(adruuid.FromName(adruuid.NamespaceADR, "ANEKI"), "ANEKI", math.Point2LL{8, 50})
	require.NoError(t, d.Save(navaid))

	airport := object.NewObject(adruuid.FromName(adruuid.NamespaceADR, "EDDF"))
	aerr := airport.AddTimeSlice(&timeslice.AirportTimeSlice{Base: object.NewBase(object.TypeAirport, 0, object.Unlimited)})
	require.NoError(t, aerr)
	require.NoError(t, d.Save(airport))

	results, err := d.FindAll(LinkNone, 0, object.Unlimited, object.TypeNavaid, object.TypeNavaid, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, navaid.UUID(), results[0].UUID())
}

func TestFindByBBoxReturnsOverlappingPoints(t *testing.T) {
	d := openTestDB(t)

	inside := navaidObject(adruuid.FromName(adruuid.NamespaceADR, "INSIDE"), "INSIDE", math.Point2LL{8.5, 50.0})
	outside := navaidObject(adruuid.FromName(adruuid.NamespaceADR, "OUTSIDE"), "OUTSIDE", math.Point2LL{50.0, 50.0})
	require.NoError(t, d.Save(inside))
	require.NoError(t, d.Save(outside))

	rect := math.Extent2D{P0: [2]float32{7, 49}, P1: [2]float32{9, 51}}
	results, err := d.FindByBBox(rect, LinkNone)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, inside.UUID(), results[0].UUID())
}

func TestFindDependsOnUsesReverseIndex(t *testing.T) {
	d := openTestDB(t)

	unitID := adruuid.FromName(adruuid.NamespaceADR, "EDGG")
	unit := object.NewObject(unitID)
	require.NoError(t, unit.AddTimeSlice(&timeslice.UnitTimeSlice{Base: object.NewBase(object.TypeUnit, 0, object.Unlimited)}))
	require.NoError(t, d.Save(unit))

	airportID := adruuid.FromName(adruuid.NamespaceADR, "EDDF")
	airport := object.NewObject(airportID)
	aTS := &timeslice.AirportTimeSlice{Base: object.NewBase(object.TypeAirport, 0, object.Unlimited)}
	aTS.ControllingUnit = object.NewLink(unitID)
	require.NoError(t, airport.AddTimeSlice(aTS))
	require.NoError(t, d.Save(airport))

	results, err := d.FindDependsOn(unitID, LinkNone, 0, object.Unlimited, object.TypeAirport, object.TypeAirport, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, airportID, results[0].UUID())
}

func TestLoadLinkOneResolvesOneLevel(t *testing.T) {
	d := openTestDB(t)

	unitID := adruuid.FromName(adruuid.NamespaceADR, "EDGG")
	unit := object.NewObject(unitID)
	require.NoError(t, unit.AddTimeSlice(&timeslice.UnitTimeSlice{Base: object.NewBase(object.TypeUnit, 0, object.Unlimited)}))
	require.NoError(t, d.Save(unit))

	airportID := adruuid.FromName(adruuid.NamespaceADR, "EDDF")
	airport := object.NewObject(airportID)
	aTS := &timeslice.AirportTimeSlice{Base: object.NewBase(object.TypeAirport, 0, object.Unlimited)}
	aTS.ControllingUnit = object.NewLink(unitID)
	require.NoError(t, airport.AddTimeSlice(aTS))
	require.NoError(t, d.Save(airport))

	got, err := d.Load(airportID, LinkOne)
	require.NoError(t, err)
	gotTS := timeslice.AsAirport(got.At(0))
	require.True(t, gotTS.ControllingUnit.IsResolved())
	resolved, ok := gotTS.ControllingUnit.Object()
	require.True(t, ok)
	require.Equal(t, unitID, resolved.UUID())
}

func TestReopenRebuildsIndexes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adrcore.db")
	id := adruuid.FromName(adruuid.NamespaceADR, "KEPER")

	func() {
		d, err := Open(path, testLogger(), 64)
		require.NoError(t, err)
		defer d.Close()
		require.NoError(t, d.Save(navaidObject(id, "KEPER", math.Point2LL{9.5, 50.0})))
	}()

	d, err := Open(path, testLogger(), 64)
	require.NoError(t, err)
	defer d.Close()

	rect := math.Extent2D{P0: [2]float32{9, 49}, P1: [2]float32{10, 51}}
	results, err := d.FindByBBox(rect, LinkNone)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, id, results[0].UUID())
}
