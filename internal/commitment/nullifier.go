package commitment

import (
	"github.com/shieldedpool/core/pkg/field"
)

// DeriveNullifier computes nf = PRF(nk, position, commitment) (spec.md
// §3). position is the TCT position's flat uint64 encoding; keeping it
// a bare uint64 here (rather than importing the tct package's Position
// type) keeps commitment free of a dependency on tct, since nullifier
// derivation only ever needs the position's numeric value.
func DeriveNullifier(nk field.Fq, position uint64, noteCommitment field.Hash) field.Hash {
	return field.H("shielded_pool/nullifier",
		nk,
		field.FqFromUint64(position),
		field.HashToFq(noteCommitment),
	)
}
