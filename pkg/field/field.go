// Package field supplies the low-level algebra the shielded pool is built
// on: a prime-order group G, a scalar field Fr, a field Fq in which the
// algebraic hash H's output lives, and H itself. Everything above this
// package treats these as the "black box" primitives spec.md assumes are
// available; this package is where that box is actually built, on top of
// the BN254 curve from gnark-crypto.
package field

import (
	"crypto/rand"
	"errors"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
)

// ErrInvalidEncoding is returned when a byte slice does not decode to a
// canonical field or group element.
var ErrInvalidEncoding = errors.New("field: invalid encoding")

// Fq is the field the algebraic hash H outputs into.
type Fq = fr.Element

// Fr is the scalar field used for group exponents. On BN254 these
// coincide (both are the curve's scalar field), so Fr and Fq are the
// same underlying type; they are named separately in the API to match
// spec.md's data model, which treats them as conceptually distinct.
type Fr = fr.Element

// G is a point on the prime-order group, held in compressible affine form.
type G = bn254.G1Affine

// Hash is the canonical 32-byte encoding of an Fq element: the digest
// produced by H, used as note/value/swap commitments, nullifiers, and
// TCT node and root hashes.
type Hash [32]byte

// ZeroHash is the distinguished "no commitment here" digest (H.is_zero()
// in spec.md §4.1).
var ZeroHash = Hash{}

// OneHash is the distinguished "tier sealed with no commitments" digest
// (H.is_one() in spec.md §4.1).
var OneHash = fqToHashUnchecked(one())

func one() Fq {
	var e Fq
	e.SetOne()
	return e
}

func fqToHashUnchecked(e Fq) Hash {
	b := e.Bytes()
	return Hash(b)
}

// IsZero reports whether h is the distinguished empty-subtree digest.
func (h Hash) IsZero() bool { return h == ZeroHash }

// IsOne reports whether h is the distinguished finished-empty digest.
func (h Hash) IsOne() bool { return h == OneHash }

// Bytes returns the hash's big-endian canonical encoding.
func (h Hash) Bytes() []byte { return h[:] }

// FqToHash canonically encodes a field element as a Hash.
func FqToHash(e Fq) Hash { return fqToHashUnchecked(e) }

// HashToFq decodes a Hash back into its field element. Any 32-byte value
// decodes (gnark-crypto reduces mod the field order), so this never fails;
// round-tripping a value produced by FqToHash always returns it unchanged.
func HashToFq(h Hash) Fq {
	var e Fq
	e.SetBytes(h[:])
	return e
}

// RandomFq samples a uniform field element, used for note blinding
// factors and value-commitment blinders.
func RandomFq() (Fq, error) {
	var e Fq
	_, err := e.SetRandom()
	if err != nil {
		return Fq{}, err
	}
	return e, nil
}

// RandomBytes returns n cryptographically random bytes.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// FqFromUint64 lifts a u64 amount into the field.
func FqFromUint64(v uint64) Fq {
	var e Fq
	e.SetUint64(v)
	return e
}

// H is the domain-separated algebraic hash. Every caller passes a fixed
// domain tag identifying the statement being hashed (note commitment,
// nullifier PRF, a TCT internal-node fold, ...) so that structurally
// identical inputs used for different purposes never collide.
func H(domain string, inputs ...Fq) Hash {
	h := mimc.NewMiMC()
	h.Write([]byte(domain))
	for _, in := range inputs {
		b := in.Bytes()
		h.Write(b[:])
	}
	var out Fq
	out.SetBytes(h.Sum(nil))
	return FqToHash(out)
}

// HashPair folds two already-computed hashes together under a domain tag.
// The TCT does not use it: its quaternary folds call H with four inputs.
func HashPair(domain string, left, right Hash) Hash {
	return H(domain, HashToFq(left), HashToFq(right))
}
