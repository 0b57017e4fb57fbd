// Package commitment implements the note, value, and swap commitments
// and the nullifier derivation that bind the shielded pool's data model
// (spec.md §3, §4.2) to the BN254 algebra in pkg/field.
package commitment

import (
	"errors"

	"github.com/shieldedpool/core/pkg/field"
)

// ErrUnexpectedIdentity is returned when a group element that must be
// non-identity (g_d, ak, ...) turns out to be the identity point.
var ErrUnexpectedIdentity = errors.New("commitment: unexpected identity element")

// ClueKeySize is the width of a diversified address's clue key, used by
// wallet-side detection keys; this module only moves it opaquely.
const ClueKeySize = 32

// Address is a diversified receiving address (spec.md §3): g_d is a
// non-identity diversifier base point, pk_d is the incoming-viewing-key
// image under g_d, and ck_d is an opaque clue key.
type Address struct {
	Gd  field.G
	Pkd field.G
	Ckd [ClueKeySize]byte
}

// Validate checks the non-identity invariant spend/output proofs rely on.
func (a Address) Validate() error {
	if field.IsIdentity(a.Gd) {
		return ErrUnexpectedIdentity
	}
	return nil
}

// spendAuthBasepoint is the fixed basepoint spend-authorization
// randomization is defined against; derived the same
// hash-with-no-known-discrete-log way every other generator in this
// package is.
var spendAuthBasepoint = field.HashToGenerator("shielded_pool/spend-auth-basepoint", field.Hash{})

// Randomize computes rk = randomize(ak, r) = ak + r*basepoint, the
// per-spend randomized spend-authorization verification key (spec.md
// §4.3.1 check 6).
func Randomize(ak field.G, r field.Fr) field.G {
	return field.Add(ak, field.ScalarMul(spendAuthBasepoint, r))
}

// IVK derives the incoming-viewing-key scalar from a spend-authorization
// key and a nullifier-deriving key.
func IVK(ak field.G, nk field.Fq) field.Fr {
	return field.HashToFq(field.H("shielded_pool/ivk", field.PointToFq(ak), nk))
}

// DerivePkd computes the incoming-viewing-key image of (ak, nk) under
// gd -- the pk_d an address-ownership check compares against (spec.md
// §4.3.1 check 7).
func DerivePkd(gd field.G, ak field.G, nk field.Fq) field.G {
	return field.ScalarMul(gd, IVK(ak, nk))
}
