// pkg/object/link.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package object

import (
	"log/slog"

	adruuid "github.com/mmp/adrcore/pkg/uuid"
)

// Link is a reference to another Object by UUID. A Link in state
// unresolved knows only the UUID; in state resolved it additionally
// holds the target Object. Resolution is idempotent: resolving an
// already-resolved Link to the same target is a no-op, and a Link is
// never downgraded from resolved back to unresolved.
type Link struct {
	id     adruuid.UUID
	target Object
}

// NewLink constructs an unresolved Link.
func NewLink(id adruuid.UUID) Link {
	return Link{id: id}
}

// ResolvedLink constructs a Link already pointing at obj.
func ResolvedLink(obj Object) Link {
	return Link{id: obj.UUID(), target: obj}
}

func (l Link) UUID() adruuid.UUID {
	return l.id
}

func (l Link) IsResolved() bool {
	return l.target != nil
}

// Object returns the resolved target, if any.
func (l Link) Object() (Object, bool) {
	return l.target, l.target != nil
}

// Resolve sets the target of an unresolved Link. Resolving a Link
// that already points at a different object is a programming error in
// the caller (Database.load never does this); resolving to the same
// UUID again is harmless.
func (l *Link) Resolve(obj Object) {
	if l.target == nil {
		l.target = obj
	}
}

func (l Link) LogValue() slog.Value {
	if l.target != nil {
		return slog.GroupValue(slog.String("uuid", l.id.String()), slog.Bool("resolved", true))
	}
	return slog.GroupValue(slog.String("uuid", l.id.String()), slog.Bool("resolved", false))
}

///////////////////////////////////////////////////////////////////////////
// LinkSet

// LinkSet is a set of Links with the invariant that no two members
// share the same UUID. Inserting a resolved Link for a UUID already
// present as unresolved upgrades the existing element in place; it is
// never replaced outright, so other holders of the same *Link continue
// to see the upgrade.
type LinkSet struct {
	byUUID map[adruuid.UUID]*Link
	order  []adruuid.UUID
}

func NewLinkSet() *LinkSet {
	return &LinkSet{byUUID: make(map[adruuid.UUID]*Link)}
}

// Insert adds l to the set, upgrading an existing unresolved entry for
// the same UUID if l is resolved.
func (s *LinkSet) Insert(l Link) {
	if existing, ok := s.byUUID[l.id]; ok {
		if !existing.IsResolved() {
			if target, ok := l.Object(); ok {
				existing.Resolve(target)
			}
		}
		return
	}
	cp := l
	s.byUUID[l.id] = &cp
	s.order = append(s.order, l.id)
}

func (s *LinkSet) Len() int {
	return len(s.order)
}

// Slice returns the set's members in insertion order.
func (s *LinkSet) Slice() []Link {
	out := make([]Link, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.byUUID[id])
	}
	return out
}

// Range iterates the set's members in insertion order, stopping early
// if yield returns false.
func (s *LinkSet) Range(yield func(Link) bool) {
	for _, id := range s.order {
		if !yield(*s.byUUID[id]) {
			return
		}
	}
}

// HasUnlinked reports whether any member is still unresolved.
func (s *LinkSet) HasUnlinked() bool {
	for _, id := range s.order {
		if !s.byUUID[id].IsResolved() {
			return true
		}
	}
	return false
}

func (s *LinkSet) Contains(id adruuid.UUID) bool {
	_, ok := s.byUUID[id]
	return ok
}
