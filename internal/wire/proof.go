package wire

import (
	"github.com/shieldedpool/core/internal/tct"
)

func encodeSegment(e *encoder, seg tct.PathSegment) {
	for i := 0; i < tct.TierHeight; i++ {
		e.fixed([]byte{seg.Digits[i]})
		for j := 0; j < tct.Arity-1; j++ {
			e.hash(seg.Siblings[i][j])
		}
	}
}

func decodeSegment(d *decoder) (tct.PathSegment, error) {
	var seg tct.PathSegment
	for i := 0; i < tct.TierHeight; i++ {
		digitB, err := d.fixed(1)
		if err != nil {
			return seg, err
		}
		seg.Digits[i] = digitB[0]
		for j := 0; j < tct.Arity-1; j++ {
			h, err := d.hash()
			if err != nil {
				return seg, err
			}
			seg.Siblings[i][j] = h
		}
	}
	return seg, nil
}

// EncodeProof canonically encodes a TCT authentication path.
func EncodeProof(p *tct.Proof) []byte {
	e := newEncoder()
	e.uint64(p.Position.Uint64())
	e.hash(p.Commitment)
	encodeSegment(e, p.Commit)
	encodeSegment(e, p.Block)
	encodeSegment(e, p.Epoch)
	return e.bytesOut()
}

// DecodeProof decodes a value produced by EncodeProof.
func DecodeProof(b []byte) (*tct.Proof, error) {
	d := newDecoder(b)
	posRaw, err := d.uint64()
	if err != nil {
		return nil, err
	}
	commitment, err := d.hash()
	if err != nil {
		return nil, err
	}
	commitSeg, err := decodeSegment(d)
	if err != nil {
		return nil, err
	}
	blockSeg, err := decodeSegment(d)
	if err != nil {
		return nil, err
	}
	epochSeg, err := decodeSegment(d)
	if err != nil {
		return nil, err
	}
	if !d.done() {
		return nil, ErrMalformed
	}
	return &tct.Proof{
		Position:   tct.Position(posRaw),
		Commitment: commitment,
		Commit:     commitSeg,
		Block:      blockSeg,
		Epoch:      epochSeg,
	}, nil
}
