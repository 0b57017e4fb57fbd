package wire

import (
	"testing"

	"github.com/shieldedpool/core/internal/commitment"
	"github.com/shieldedpool/core/internal/tct"
	"github.com/shieldedpool/core/pkg/field"
)

func TestHashRoundTrip(t *testing.T) {
	h := field.Hash{1, 2, 3, 4}
	got, err := DecodeHash(EncodeHash(h))
	if err != nil {
		t.Fatalf("DecodeHash: %v", err)
	}
	if got != h {
		t.Error("hash did not round trip")
	}
}

func TestNoteRoundTrip(t *testing.T) {
	blinding, err := field.RandomFq()
	if err != nil {
		t.Fatalf("RandomFq: %v", err)
	}
	n := commitment.Note{
		Address:  commitment.Address{Gd: field.BasePoint(), Pkd: field.BasePoint(), Ckd: [commitment.ClueKeySize]byte{9}},
		Value:    commitment.Value{Amount: 42, AssetID: field.Hash{5}},
		Blinding: blinding,
	}
	got, err := DecodeNote(EncodeNote(n))
	if err != nil {
		t.Fatalf("DecodeNote: %v", err)
	}
	if got.Commitment() != n.Commitment() {
		t.Error("decoded note does not match the original")
	}
}

func TestProofRoundTrip(t *testing.T) {
	tree := tct.New()
	c := field.Hash{7, 7}
	tree.Insert(tct.Keep, c)
	proof, err := tree.Witness(c)
	if err != nil {
		t.Fatalf("Witness: %v", err)
	}

	got, err := DecodeProof(EncodeProof(proof))
	if err != nil {
		t.Fatalf("DecodeProof: %v", err)
	}
	if err := got.Verify(tree.Root()); err != nil {
		t.Errorf("decoded proof failed to verify: %v", err)
	}
	if got.Position != proof.Position || got.Commitment != proof.Commitment {
		t.Error("decoded proof does not match the original")
	}
}

func TestCompactBlockRoundTrip(t *testing.T) {
	cb := &CompactBlock{
		Height: 100,
		Fragments: []Fragment{
			{NoteCommitment: field.Hash{1}, EphemeralKey: field.BasePoint(), EncryptedNote: []byte("ciphertext")},
		},
		Nullifiers: []field.Hash{{2}, {3}},
	}
	got, err := DecodeCompactBlock(cb.Encode())
	if err != nil {
		t.Fatalf("DecodeCompactBlock: %v", err)
	}
	if got.Height != cb.Height || len(got.Fragments) != 1 || len(got.Nullifiers) != 2 {
		t.Fatal("decoded compact block shape mismatch")
	}
	if got.Fragments[0].NoteCommitment != cb.Fragments[0].NoteCommitment {
		t.Error("fragment commitment mismatch")
	}
	if string(got.Fragments[0].EncryptedNote) != "ciphertext" {
		t.Error("fragment ciphertext mismatch")
	}
}

func TestDecodeMalformedTruncated(t *testing.T) {
	cb := &CompactBlock{Height: 1, Nullifiers: []field.Hash{{1}}}
	enc := cb.Encode()
	if _, err := DecodeCompactBlock(enc[:len(enc)-1]); err != ErrMalformed {
		t.Errorf("truncated decode = %v, want ErrMalformed", err)
	}
}
