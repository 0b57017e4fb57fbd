package commitment

import (
	"github.com/shieldedpool/core/pkg/field"
)

// blindingGenerator is the single blinding-factor generator shared by
// every asset, mirroring the teacher's "G and H, no known discrete log
// relation" Pedersen setup (internal/zkp/pedersen.go's
// InitializeGenerators), generalized below with a per-asset value
// generator instead of a single hard-coded G.
var blindingGenerator = field.HashToGenerator("shielded_pool/value-commitment/blinding", field.Hash{})

// AssetGenerator derives the asset-specific generator G_asset_id a value
// commitment's amount term is taken against (spec.md §4.2: "independent
// generators per asset id").
func AssetGenerator(assetID field.Hash) field.G {
	return field.HashToGenerator("shielded_pool/value-commitment/asset", assetID)
}

// ValueCommitment is the Pedersen-style homomorphic commitment
// C(v) = amount*G_asset + blinding*H (spec.md §3, §4.2).
type ValueCommitment struct {
	Point field.G
}

// Commit computes C(v) with the given blinding factor. A zero blinding
// factor is permitted and means the committed value is public (used for
// fees, spec.md §4.2).
func Commit(v Value, blinding field.Fr) ValueCommitment {
	amountTerm := field.ScalarMul(AssetGenerator(v.AssetID), field.FqFromUint64(v.Amount))
	blindTerm := field.ScalarMul(blindingGenerator, blinding)
	return ValueCommitment{Point: field.Add(amountTerm, blindTerm)}
}

// CommitPublic commits v with a zero blinding factor -- the public,
// non-hiding commitment fee amounts use (spec.md §4.2, §4.3.3 check 2).
func CommitPublic(v Value) ValueCommitment {
	var zero field.Fr
	return Commit(v, zero)
}

// Add exploits the additive homomorphism: Commit(v1,b1) + Commit(v2,b2)
// == Commit(v1+v2, b1+b2) as long as both share an asset generator.
func (c ValueCommitment) Add(other ValueCommitment) ValueCommitment {
	return ValueCommitment{Point: field.Add(c.Point, other.Point)}
}

// Sub computes c - other.
func (c ValueCommitment) Sub(other ValueCommitment) ValueCommitment {
	return ValueCommitment{Point: field.Sub(c.Point, other.Point)}
}

// Neg computes -c.
func (c ValueCommitment) Neg() ValueCommitment {
	return ValueCommitment{Point: field.Neg(c.Point)}
}

// Equal reports whether two commitments are the same point.
func (c ValueCommitment) Equal(other ValueCommitment) bool {
	return field.Equal(c.Point, other.Point)
}

// IsIdentity reports whether c is the group identity -- the balanced
// state a transaction's input/output/fee sum must reach (spec.md §3
// invariants, §8 "Σ input_vc − Σ output_vc − fee_vc == 0").
func (c ValueCommitment) IsIdentity() bool {
	return field.IsIdentity(c.Point)
}

// Bytes returns the compressed encoding of the commitment.
func (c ValueCommitment) Bytes() []byte {
	return field.Bytes(c.Point)
}

// ValueCommitmentFromBytes decodes a compressed value commitment.
func ValueCommitmentFromBytes(b []byte) (ValueCommitment, error) {
	p, err := field.FromBytes(b)
	if err != nil {
		return ValueCommitment{}, err
	}
	return ValueCommitment{Point: p}, nil
}

// VerifyBalance checks that the sum of input commitments minus the sum
// of output commitments minus the fee commitment is the identity --
// the transaction-level balance invariant of spec.md §3/§8.
func VerifyBalance(inputs, outputs []ValueCommitment, fee ValueCommitment) bool {
	sum := ValueCommitment{Point: field.Identity()}
	for _, in := range inputs {
		sum = sum.Add(in)
	}
	for _, out := range outputs {
		sum = sum.Sub(out)
	}
	sum = sum.Sub(fee)
	return sum.IsIdentity()
}
