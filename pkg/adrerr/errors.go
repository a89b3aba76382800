// pkg/adrerr/errors.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package adrerr collects the sentinel errors returned by the object
// store, archive codec, and graph layers, so callers can test for a
// specific failure with errors.Is rather than string matching.
package adrerr

import "errors"

var (
	// NotFound is returned when a UUID is not present in the Database.
	NotFound = errors.New("uuid not found")

	// DanglingLink is returned when a resolved Link points at a UUID
	// that the Database cannot load.
	DanglingLink = errors.New("dangling link to missing object")

	// BadTypeTag is returned when an archive's leading type byte does
	// not correspond to any known TimeSlice variant.
	BadTypeTag = errors.New("unknown object type tag")

	// TruncatedArchive is returned when an archive stream ends before a
	// field it promised (by a length prefix or a fixed-width read) is
	// fully present.
	TruncatedArchive = errors.New("truncated archive")

	// OverlapViolation is returned when a slice cannot be reconciled
	// with the slices already present on an object.
	OverlapViolation = errors.New("time slice overlap could not be resolved")

	// TopologyEmpty is returned (as a warning, not a fatal condition)
	// when graph construction at an instant produced zero edges.
	TopologyEmpty = errors.New("graph topology is empty at this instant")
)
