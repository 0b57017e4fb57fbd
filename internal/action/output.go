package action

import (
	"github.com/shieldedpool/core/internal/commitment"
	"github.com/shieldedpool/core/pkg/field"
)

// Output proves that a new note is being created and binds its value
// commitment into the transaction balance (spec.md §4.3.2).
type Output struct {
	// Witness.
	Gd            field.G
	Pkd           field.G
	Ckd           [commitment.ClueKeySize]byte
	Value         commitment.Value
	ValueBlinding field.Fr
	NoteBlinding  field.Fq
	Esk           field.Fr
}

// OutputPublic is the Output statement's public input tuple.
type OutputPublic struct {
	ValueCommitment commitment.ValueCommitment
	NoteCommitment  field.Hash
	Epk             field.G
}

// Verify runs every check of spec.md §4.3.2 in order.
func (o *Output) Verify(pub OutputPublic) error {
	addr := commitment.Address{Gd: o.Gd, Pkd: o.Pkd, Ckd: o.Ckd}
	note := commitment.Note{Address: addr, Value: o.Value, Blinding: o.NoteBlinding}

	// 1. Recomputed note commitment equals the supplied one.
	if note.Commitment() != pub.NoteCommitment {
		return fail(ReasonNoteCommitmentMismatch, "output: witness does not match supplied note commitment")
	}

	// 2. value_commitment == -value.commit(v_b) (outputs subtract from balance).
	expected := commitment.Commit(o.Value, o.ValueBlinding).Neg()
	if !expected.Equal(pub.ValueCommitment) {
		return fail(ReasonValueCommitmentMismatch, "output: value commitment mismatch")
	}

	// 3. epk == esk * g_d.
	expectedEpk := field.ScalarMul(o.Gd, o.Esk)
	if !field.Equal(expectedEpk, pub.Epk) {
		return fail(ReasonAddressBinding, "output: epk does not match esk*g_d")
	}

	// 4. g_d not identity.
	if field.IsIdentity(o.Gd) {
		return fail(ReasonUnexpectedIdentity, "output: g_d is the identity")
	}

	return nil
}
