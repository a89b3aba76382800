// pkg/object/linker.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package object

import (
	"slices"

	adruuid "github.com/mmp/adrcore/pkg/uuid"
)

// CollectDependencies walks every Link field of ts (if it implements
// Linker) and returns the UUIDs they reference, deduplicated. This is
// the "dependency generation" traversal mode referred to in the design
// notes: rather than re-run the full encode/decode field sequence, it
// touches only Link fields, which Linker exposes directly.
func CollectDependencies(ts TimeSlice) []adruuid.UUID {
	linker, ok := ts.(Linker)
	if !ok {
		return nil
	}

	var out []adruuid.UUID
	seen := map[adruuid.UUID]struct{}{}
	for _, l := range linker.Links() {
		id := l.UUID()
		if id.IsNil() {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	slices.SortFunc(out, func(a, b adruuid.UUID) int { return a.Compare(b) })
	return out
}

// ResolveLinks is the "link loading" traversal mode: it replaces every
// unresolved Link field of ts with a resolved one, using resolve to
// look up each referenced UUID. It returns true if every Link field
// ended up resolved (i.e. no remaining dangling references among the
// UUIDs resolve could satisfy).
func ResolveLinks(ts TimeSlice, resolve func(adruuid.UUID) (Object, bool)) bool {
	linker, ok := ts.(Linker)
	if !ok {
		return true
	}

	allResolved := true
	for _, l := range linker.Links() {
		if l.IsResolved() || l.UUID().IsNil() {
			continue
		}
		if target, ok := resolve(l.UUID()); ok {
			l.Resolve(target)
		} else {
			allResolved = false
		}
	}
	return allResolved
}
