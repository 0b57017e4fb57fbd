package action

import (
	"github.com/shieldedpool/core/internal/commitment"
	"github.com/shieldedpool/core/pkg/field"
)

// Swap proves the creation of a Swap NFT note recording a user's batch
// swap intent (spec.md §4.3.3). The swap-NFT asset id is carried as a
// witness value here, not recomputed from the intent: binding it to
// `(trading_pair, Δ1, Δ2, fee, claim_address)` is SwapClaim's check 2,
// not Swap's.
type Swap struct {
	// Witness.
	Plaintext    commitment.SwapPlaintext
	NFTAssetID   field.Hash
	NoteBlinding field.Fq
	Esk          field.Fr
}

// SwapPublic is the Swap statement's public input tuple. Asset1Value
// and Asset2Value are the per-asset input value commitments; spec.md
// §4.3.3 defers their verification pending a flow-encryption primitive
// not yet in scope, so Verify accepts them as opaque and does not check
// them (see DESIGN.md's Open Question decision).
type SwapPublic struct {
	Asset1Value   commitment.ValueCommitment
	Asset2Value   commitment.ValueCommitment
	FeeCommitment commitment.ValueCommitment
	NFTCommitment field.Hash
	Epk           field.G
}

// Verify runs every check of spec.md §4.3.3 in order.
func (s *Swap) Verify(pub SwapPublic) error {
	nft := commitment.Note{
		Address:  s.Plaintext.ClaimAddress,
		Value:    commitment.Value{Amount: 1, AssetID: s.NFTAssetID},
		Blinding: s.NoteBlinding,
	}

	// 1. NFT note commitment matches the claim address, blinding, and
	// the amount-1 singleton (1, swap_nft_asset_id).
	if nft.Commitment() != pub.NFTCommitment {
		return fail(ReasonNoteCommitmentMismatch, "swap: witness does not match NFT commitment")
	}

	// 2. Fee commitment equals -fee.commit(0) (fees are public).
	expectedFee := commitment.CommitPublic(s.Plaintext.Fee).Neg()
	if !expectedFee.Equal(pub.FeeCommitment) {
		return fail(ReasonValueCommitmentMismatch, "swap: fee commitment mismatch")
	}

	// 3. epk == esk*g_d; g_d not identity.
	gd := s.Plaintext.ClaimAddress.Gd
	if field.IsIdentity(gd) {
		return fail(ReasonUnexpectedIdentity, "swap: g_d is the identity")
	}
	expectedEpk := field.ScalarMul(gd, s.Esk)
	if !field.Equal(expectedEpk, pub.Epk) {
		return fail(ReasonAddressBinding, "swap: epk does not match esk*g_d")
	}

	return nil
}
