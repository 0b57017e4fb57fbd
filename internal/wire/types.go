package wire

import (
	"github.com/shieldedpool/core/internal/commitment"
	"github.com/shieldedpool/core/pkg/field"
)

// EncodeHash canonically encodes a field.Hash -- used directly for both
// Commitment and Root, which are bare 32-byte digests (spec.md §3, §6).
func EncodeHash(h field.Hash) []byte {
	e := newEncoder()
	e.hash(h)
	return e.bytesOut()
}

// DecodeHash decodes a value produced by EncodeHash.
func DecodeHash(b []byte) (field.Hash, error) {
	d := newDecoder(b)
	h, err := d.hash()
	if err != nil {
		return field.Hash{}, err
	}
	if !d.done() {
		return field.Hash{}, ErrMalformed
	}
	return h, nil
}

// EncodeAddress canonically encodes a diversified address.
func EncodeAddress(e *encoder, a commitment.Address) {
	e.bytes(field.Bytes(a.Gd))
	e.bytes(field.Bytes(a.Pkd))
	e.fixed(a.Ckd[:])
}

func decodeAddress(d *decoder) (commitment.Address, error) {
	gdb, err := d.bytes()
	if err != nil {
		return commitment.Address{}, err
	}
	gd, err := field.FromBytes(gdb)
	if err != nil {
		return commitment.Address{}, ErrMalformed
	}
	pkdb, err := d.bytes()
	if err != nil {
		return commitment.Address{}, err
	}
	pkd, err := field.FromBytes(pkdb)
	if err != nil {
		return commitment.Address{}, ErrMalformed
	}
	ckdb, err := d.fixed(commitment.ClueKeySize)
	if err != nil {
		return commitment.Address{}, err
	}
	var ckd [commitment.ClueKeySize]byte
	copy(ckd[:], ckdb)
	return commitment.Address{Gd: gd, Pkd: pkd, Ckd: ckd}, nil
}

// EncodeNote canonically encodes a full note (address, value, blinding).
func EncodeNote(n commitment.Note) []byte {
	e := newEncoder()
	EncodeAddress(e, n.Address)
	e.uint64(n.Value.Amount)
	e.hash(n.Value.AssetID)
	e.hash(field.FqToHash(n.Blinding))
	return e.bytesOut()
}

// DecodeNote decodes a value produced by EncodeNote.
func DecodeNote(b []byte) (commitment.Note, error) {
	d := newDecoder(b)
	addr, err := decodeAddress(d)
	if err != nil {
		return commitment.Note{}, err
	}
	amount, err := d.uint64()
	if err != nil {
		return commitment.Note{}, err
	}
	assetID, err := d.hash()
	if err != nil {
		return commitment.Note{}, err
	}
	blindingHash, err := d.hash()
	if err != nil {
		return commitment.Note{}, err
	}
	if !d.done() {
		return commitment.Note{}, ErrMalformed
	}
	return commitment.Note{
		Address:  addr,
		Value:    commitment.Value{Amount: amount, AssetID: assetID},
		Blinding: field.HashToFq(blindingHash),
	}, nil
}
