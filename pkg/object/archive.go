// pkg/object/archive.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package object

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/mmp/adrcore/pkg/adrerr"
	adruuid "github.com/mmp/adrcore/pkg/uuid"
)

// Archive is the bidirectional visitor every TimeSlice variant's
// archiveFields method is written against: the same call sequence
// serializes when the Archive is an *Encoder and deserializes when it
// is a *Decoder, so the field layout is defined exactly once per type.
// Link fields are not visited through Archive (see Linker in object.go)
// because the dependency-collection and link-resolution passes only
// ever need to touch Link fields, not re-walk every primitive.
type Archive interface {
	Saving() bool
	U8(v *uint8)
	I32(v *int32)
	U32(v *uint32)
	U64(v *uint64)
	F32(v *float32)
	String(v *string)
	UUID(v *adruuid.UUID)
	// Len visits a container's LEB128-encoded element count; callers
	// loop *v times after calling it on decode, or set *v = len(slice)
	// before calling it on encode.
	Len(v *int)
	// Err returns the first error encountered so far, if any.
	Err() error
}

///////////////////////////////////////////////////////////////////////////
// Encoder

type Encoder struct {
	buf bytes.Buffer
	err error
}

func NewEncoder() *Encoder { return &Encoder{} }

func (e *Encoder) Saving() bool { return true }
func (e *Encoder) Err() error   { return e.err }
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

func (e *Encoder) U8(v *uint8) {
	if e.err != nil {
		return
	}
	e.err = e.buf.WriteByte(*v)
}

func (e *Encoder) I32(v *int32) {
	u := uint32(*v)
	e.U32(&u)
}

func (e *Encoder) U32(v *uint32) {
	if e.err != nil {
		return
	}
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], *v)
	_, e.err = e.buf.Write(b[:])
}

func (e *Encoder) U64(v *uint64) {
	if e.err != nil {
		return
	}
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], *v)
	_, e.err = e.buf.Write(b[:])
}

func (e *Encoder) F32(v *float32) {
	if e.err != nil {
		return
	}
	bits := math.Float32bits(*v)
	e.U32(&bits)
}

func (e *Encoder) String(v *string) {
	if e.err != nil {
		return
	}
	n := len(*v)
	e.Len(&n)
	if e.err != nil {
		return
	}
	_, e.err = e.buf.WriteString(*v)
}

func (e *Encoder) UUID(v *adruuid.UUID) {
	if e.err != nil {
		return
	}
	b := v.Bytes()
	_, e.err = e.buf.Write(b[:])
}

func (e *Encoder) Len(v *int) {
	if e.err != nil {
		return
	}
	var lb [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(lb[:], uint64(*v))
	_, e.err = e.buf.Write(lb[:n])
}

///////////////////////////////////////////////////////////////////////////
// Decoder

type Decoder struct {
	r   *bytes.Reader
	err error
}

func NewDecoder(b []byte) *Decoder {
	return &Decoder{r: bytes.NewReader(b)}
}

func (d *Decoder) Saving() bool { return false }
func (d *Decoder) Err() error   { return d.err }

func (d *Decoder) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

func (d *Decoder) U8(v *uint8) {
	if d.err != nil {
		return
	}
	b, err := d.r.ReadByte()
	if err != nil {
		d.fail(fmt.Errorf("%w: %v", adrerr.TruncatedArchive, err))
		return
	}
	*v = b
}

func (d *Decoder) I32(v *int32) {
	var u uint32
	d.U32(&u)
	*v = int32(u)
}

func (d *Decoder) U32(v *uint32) {
	if d.err != nil {
		return
	}
	var b [4]byte
	if _, err := io.ReadFull(d.r, b[:]); err != nil {
		d.fail(fmt.Errorf("%w: %v", adrerr.TruncatedArchive, err))
		return
	}
	*v = binary.LittleEndian.Uint32(b[:])
}

func (d *Decoder) U64(v *uint64) {
	if d.err != nil {
		return
	}
	var b [8]byte
	if _, err := io.ReadFull(d.r, b[:]); err != nil {
		d.fail(fmt.Errorf("%w: %v", adrerr.TruncatedArchive, err))
		return
	}
	*v = binary.LittleEndian.Uint64(b[:])
}

func (d *Decoder) F32(v *float32) {
	var bits uint32
	d.U32(&bits)
	*v = math.Float32frombits(bits)
}

func (d *Decoder) String(v *string) {
	if d.err != nil {
		return
	}
	n := 0
	d.Len(&n)
	if d.err != nil {
		return
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(d.r, b); err != nil {
		d.fail(fmt.Errorf("%w: %v", adrerr.TruncatedArchive, err))
		return
	}
	*v = string(b)
}

func (d *Decoder) UUID(v *adruuid.UUID) {
	if d.err != nil {
		return
	}
	var b [16]byte
	if _, err := io.ReadFull(d.r, b[:]); err != nil {
		d.fail(fmt.Errorf("%w: %v", adrerr.TruncatedArchive, err))
		return
	}
	*v = adruuid.FromBytes(b)
}

func (d *Decoder) Len(v *int) {
	if d.err != nil {
		return
	}
	n, err := binary.ReadUvarint(d.r)
	if err != nil {
		d.fail(fmt.Errorf("%w: %v", adrerr.TruncatedArchive, err))
		return
	}
	*v = int(n)
}
