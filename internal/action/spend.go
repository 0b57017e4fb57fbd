package action

import (
	"github.com/shieldedpool/core/internal/commitment"
	"github.com/shieldedpool/core/internal/tct"
	"github.com/shieldedpool/core/pkg/field"
)

// Spend proves that a previously-created note is being consumed,
// without revealing which note (spec.md §4.3.1).
type Spend struct {
	// Witness.
	Inclusion     *tct.Proof
	Gd            field.G
	Pkd           field.G
	Ckd           [commitment.ClueKeySize]byte
	Value         commitment.Value
	ValueBlinding field.Fr
	NoteBlinding  field.Fq
	R             field.Fr
	Ak            field.G
	Nk            field.Fq
}

// SpendPublic is the Spend statement's public input tuple.
type SpendPublic struct {
	Anchor           field.Hash
	ValueCommitment  commitment.ValueCommitment
	Nullifier        field.Hash
	Rk               field.G
}

// Verify runs every check of spec.md §4.3.1 in order, returning the
// first failure encountered.
func (s *Spend) Verify(pub SpendPublic) error {
	addr := commitment.Address{Gd: s.Gd, Pkd: s.Pkd, Ckd: s.Ckd}
	note := commitment.Note{Address: addr, Value: s.Value, Blinding: s.NoteBlinding}
	recomputed := note.Commitment()

	// 1. Recomputed note commitment from witness matches the proof's leaf.
	if recomputed != s.Inclusion.Commitment {
		return fail(ReasonNoteCommitmentMismatch, "spend: witness does not match inclusion proof's leaf")
	}

	// 2. The inclusion proof verifies to anchor.
	if err := s.Inclusion.Verify(pub.Anchor); err != nil {
		return fail(ReasonMerkleRootMismatch, "spend: inclusion proof does not reach anchor")
	}

	// 3. value.commit(v_b) == value_commitment.
	if !commitment.Commit(s.Value, s.ValueBlinding).Equal(pub.ValueCommitment) {
		return fail(ReasonValueCommitmentMismatch, "spend: value commitment mismatch")
	}

	// 4. Neither g_d nor ak is the identity element.
	if field.IsIdentity(s.Gd) || field.IsIdentity(s.Ak) {
		return fail(ReasonUnexpectedIdentity, "spend: g_d or ak is the identity")
	}

	// 5. nullifier == PRF(nk, position, commitment).
	expectedNf := commitment.DeriveNullifier(s.Nk, s.Inclusion.Position.Uint64(), recomputed)
	if expectedNf != pub.Nullifier {
		return fail(ReasonBadNullifier, "spend: nullifier does not match witness")
	}

	// 6. rk == randomize(ak, r).
	expectedRk := commitment.Randomize(s.Ak, s.R)
	if !field.Equal(expectedRk, pub.Rk) {
		return fail(ReasonBadSpendAuth, "spend: rk does not match randomize(ak, r)")
	}

	// 7. The derived incoming-viewing image of (ak, nk) applied to g_d
	// equals pk_d (address-ownership binding).
	expectedPkd := commitment.DerivePkd(s.Gd, s.Ak, s.Nk)
	if !field.Equal(expectedPkd, s.Pkd) {
		return fail(ReasonAddressBinding, "spend: pk_d does not bind to (ak, nk)")
	}

	return nil
}
