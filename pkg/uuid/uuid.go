// pkg/uuid/uuid.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package uuid provides the 128-bit identity type used throughout the ADR
// object model. The Link/LinkSet types that give objects lazy,
// UUID-addressed references to one another live in pkg/object.
package uuid

import (
	"bytes"
	"encoding/json"

	guuid "github.com/google/uuid"
)

// UUID is a 128-bit identifier. The zero value is the nil UUID, which
// signals "absent" everywhere it is used as a field value.
type UUID struct {
	u guuid.UUID
}

// Nil is the zero UUID.
var Nil UUID

// NamespaceADR is the reserved namespace used to derive UUIDs from
// arbitrary ADR identifier strings (navaid idents, designated point
// idents, route idents, ...) via RFC 4122 v5 (SHA-1) derivation.
var NamespaceADR = UUID{u: guuid.MustParse("5b20bd56-738d-47cb-b1ea-300f317e8b32")}

// NamespaceBorder is the reserved namespace used to derive UUIDs for
// country/FIR border identifiers, kept distinct from NamespaceADR so the
// two id spaces never collide even given identical name strings.
var NamespaceBorder = UUID{u: guuid.MustParse("89c8a3de-3160-4c2c-8f2b-0db1a1b5a236")}

// Parse parses the canonical hex form of a UUID, optionally prefixed with
// "urn:uuid:". If the string does not parse as a UUID, FromName is used
// to derive a deterministic identifier instead, so every string yields
// some UUID.
func Parse(s string) UUID {
	if u, err := guuid.Parse(s); err == nil {
		return UUID{u: u}
	}
	return FromName(NamespaceADR, s)
}

// ParseStrict parses the canonical hex form only, returning an error if s
// is not a well-formed UUID.
func ParseStrict(s string) (UUID, error) {
	u, err := guuid.Parse(s)
	if err != nil {
		return Nil, err
	}
	return UUID{u: u}, nil
}

// FromName derives a UUID deterministically from (namespace, name) using
// RFC 4122 version 5 (SHA-1) semantics. The result depends only on the
// namespace and name bytes and is stable across runs and platforms.
func FromName(namespace UUID, name string) UUID {
	return UUID{u: guuid.NewSHA1(namespace.u, []byte(name))}
}

// New returns a random (version 4) UUID; used only by tooling that
// mints brand-new identities (e.g. the AIXM importer, out of scope here),
// never by derivation from stable source data.
func New() UUID {
	return UUID{u: guuid.New()}
}

func (u UUID) IsNil() bool {
	return u.u == guuid.Nil
}

func (u UUID) String() string {
	return u.u.String()
}

// Compare provides lexicographic ordering on the 16 underlying bytes,
// matching the ordering invariant used for deterministic find_all
// iteration order in the Database.
func (u UUID) Compare(o UUID) int {
	return bytes.Compare(u.u[:], o.u[:])
}

func (u UUID) Less(o UUID) bool {
	return u.Compare(o) < 0
}

func (u UUID) Equal(o UUID) bool {
	return u.u == o.u
}

// Bytes returns the 16 raw bytes in RFC 4122 big-endian field layout, the
// representation used by the on-disk archive format.
func (u UUID) Bytes() [16]byte {
	return u.u
}

// FromBytes reconstructs a UUID from its 16 raw archive-format bytes.
func FromBytes(b [16]byte) UUID {
	return UUID{u: b}
}

func (u UUID) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.u.String())
}

func (u *UUID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*u = Parse(s)
	return nil
}
