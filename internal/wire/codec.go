// Package wire implements the shielded pool's canonical wire encoding
// and the CompactBlock broadcast it feeds, generalized from the
// teacher's manual big-endian byte-buffer serialization
// (pkg/types/block.go, transaction.go's serializeForHash) into a
// reusable encode/decode pair. The encoding is not tag-length-value:
// fields carry no tags and are written in a fixed order, with
// variable-length fields length-prefixed, and decoders reject trailing
// bytes. Hashes (commitments, roots), notes, TCT proofs and CompactBlocks
// have encoders here; the action-proof structs do not.
package wire

import (
	"encoding/binary"
	"errors"

	"github.com/shieldedpool/core/pkg/field"
)

// ErrMalformed is returned when a byte slice does not parse -- spec.md
// §7's MalformedEncoding, never retried.
var ErrMalformed = errors.New("wire: malformed encoding")

// encoder accumulates a canonical TLV-free fixed/length-prefixed
// encoding. Each field is written in a fixed order, so there is no need
// for explicit tags: the caller's type alone determines the layout.
type encoder struct {
	buf []byte
}

func newEncoder() *encoder { return &encoder{buf: make([]byte, 0, 256)} }

func (e *encoder) uint64(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

func (e *encoder) uint16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

func (e *encoder) fixed(b []byte) { e.buf = append(e.buf, b...) }

func (e *encoder) bytes(b []byte) {
	e.uint64(uint64(len(b)))
	e.buf = append(e.buf, b...)
}

func (e *encoder) hash(h field.Hash) { e.fixed(h[:]) }

func (e *encoder) bytesOut() []byte { return e.buf }

// decoder reads the fields a matching encoder wrote, in the same order.
type decoder struct {
	buf []byte
	pos int
}

func newDecoder(b []byte) *decoder { return &decoder{buf: b} }

func (d *decoder) remaining() int { return len(d.buf) - d.pos }

func (d *decoder) uint64() (uint64, error) {
	if d.remaining() < 8 {
		return 0, ErrMalformed
	}
	v := binary.BigEndian.Uint64(d.buf[d.pos : d.pos+8])
	d.pos += 8
	return v, nil
}

func (d *decoder) uint16() (uint16, error) {
	if d.remaining() < 2 {
		return 0, ErrMalformed
	}
	v := binary.BigEndian.Uint16(d.buf[d.pos : d.pos+2])
	d.pos += 2
	return v, nil
}

func (d *decoder) fixed(n int) ([]byte, error) {
	if d.remaining() < n {
		return nil, ErrMalformed
	}
	b := d.buf[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func (d *decoder) bytes() ([]byte, error) {
	n, err := d.uint64()
	if err != nil {
		return nil, err
	}
	if n > uint64(d.remaining()) {
		return nil, ErrMalformed
	}
	return d.fixed(int(n))
}

func (d *decoder) hash() (field.Hash, error) {
	b, err := d.fixed(32)
	if err != nil {
		return field.Hash{}, err
	}
	var h field.Hash
	copy(h[:], b)
	return h, nil
}

func (d *decoder) done() bool { return d.remaining() == 0 }
