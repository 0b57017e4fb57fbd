package wire

import "github.com/shieldedpool/core/pkg/field"

// Fragment is one note's worth of a CompactBlock: its commitment, the
// ephemeral public key used to encrypt it, and its fixed-length
// ciphertext (spec.md §6).
type Fragment struct {
	NoteCommitment field.Hash
	EphemeralKey   field.G
	EncryptedNote  []byte
}

// CompactBlock is the per-block record emitted to the external wire
// (spec.md §4.4 step 4, §6): enough for a viewing client to scan for
// notes addressed to it and to learn which nullifiers were spent,
// without downloading full transactions.
type CompactBlock struct {
	Height     uint64
	Fragments  []Fragment
	Nullifiers []field.Hash
}

// Encode canonically encodes a CompactBlock.
func (cb *CompactBlock) Encode() []byte {
	e := newEncoder()
	e.uint64(cb.Height)
	e.uint64(uint64(len(cb.Fragments)))
	for _, f := range cb.Fragments {
		e.hash(f.NoteCommitment)
		e.bytes(field.Bytes(f.EphemeralKey))
		e.bytes(f.EncryptedNote)
	}
	e.uint64(uint64(len(cb.Nullifiers)))
	for _, nf := range cb.Nullifiers {
		e.hash(nf)
	}
	return e.bytesOut()
}

// DecodeCompactBlock decodes a value produced by CompactBlock.Encode.
func DecodeCompactBlock(b []byte) (*CompactBlock, error) {
	d := newDecoder(b)
	height, err := d.uint64()
	if err != nil {
		return nil, err
	}
	fragCount, err := d.uint64()
	if err != nil {
		return nil, err
	}
	cb := &CompactBlock{Height: height}
	for i := uint64(0); i < fragCount; i++ {
		cm, err := d.hash()
		if err != nil {
			return nil, err
		}
		epkb, err := d.bytes()
		if err != nil {
			return nil, err
		}
		epk, err := field.FromBytes(epkb)
		if err != nil {
			return nil, ErrMalformed
		}
		ct, err := d.bytes()
		if err != nil {
			return nil, err
		}
		cb.Fragments = append(cb.Fragments, Fragment{NoteCommitment: cm, EphemeralKey: epk, EncryptedNote: ct})
	}
	nfCount, err := d.uint64()
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < nfCount; i++ {
		nf, err := d.hash()
		if err != nil {
			return nil, err
		}
		cb.Nullifiers = append(cb.Nullifiers, nf)
	}
	if !d.done() {
		return nil, ErrMalformed
	}
	return cb, nil
}
