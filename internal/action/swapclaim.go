package action

import (
	"github.com/shieldedpool/core/internal/commitment"
	"github.com/shieldedpool/core/internal/tct"
	"github.com/shieldedpool/core/pkg/field"
)

// BatchSwapOutputData is the per-block batch-clearing result the DEX
// component publishes for a trading pair, which a SwapClaim redeems
// against (spec.md §4.3.4). Clearing-price math and the success/failure
// distinction belong to that component (spec.md §9 open question); this
// revision treats every swap as a failed passthrough, so Lambda1/Lambda2
// are taken directly as the claimed outputs.
type BatchSwapOutputData struct {
	Height  uint64
	Lambda1 uint64
	Lambda2 uint64
}

// SwapClaim redeems an unspent Swap NFT against BatchSwapOutputData for
// the block the NFT was included in (spec.md §4.3.4).
type SwapClaim struct {
	// Witness.
	Inclusion       *tct.Proof
	NoteBlinding    field.Fq
	Nk              field.Fq
	Plaintext       commitment.SwapPlaintext
	NFTAssetID      field.Hash
	Output1Blinding field.Fq
	Output2Blinding field.Fq
	Esk1            field.Fr
	Esk2            field.Fr
}

// SwapClaimPublic is the SwapClaim statement's public input tuple, plus
// the two resulting output notes' public fields (spec.md §4.4 treats a
// SwapClaim as also emitting the output notes a later block applies,
// alongside Output/Swap).
type SwapClaimPublic struct {
	Anchor        field.Hash
	Nullifier     field.Hash
	OutputData    BatchSwapOutputData
	EpochDuration uint64
	Fee           commitment.Value

	NoteCommitment1 field.Hash
	Epk1            field.G
	NoteCommitment2 field.Hash
	Epk2            field.G
}

// Verify runs every check of spec.md §4.3.4 in order.
func (c *SwapClaim) Verify(pub SwapClaimPublic) error {
	nft := commitment.Note{
		Address:  c.Plaintext.ClaimAddress,
		Value:    commitment.Value{Amount: 1, AssetID: c.NFTAssetID},
		Blinding: c.NoteBlinding,
	}
	recomputed := nft.Commitment()

	// 1. Recomputed NFT commitment matches the included one.
	if recomputed != c.Inclusion.Commitment {
		return fail(ReasonNoteCommitmentMismatch, "swapclaim: witness does not match inclusion proof's leaf")
	}

	// 2. The NFT's asset id equals H(trading_pair, Δ1, Δ2, fee, claim_address).
	if c.NFTAssetID != c.Plaintext.AssetID() {
		return fail(ReasonSwapAssetIdMismatch, "swapclaim: NFT asset id does not bind to the swap intent")
	}

	// 3. Inclusion proof verifies to anchor.
	if err := c.Inclusion.Verify(pub.Anchor); err != nil {
		return fail(ReasonMerkleRootMismatch, "swapclaim: inclusion proof does not reach anchor")
	}

	// 4. epoch_duration*epoch(position) + block(position) == output_data.height.
	pos := c.Inclusion.Position
	height := pub.EpochDuration*uint64(pos.Epoch()) + uint64(pos.Block())
	if height != pub.OutputData.Height {
		return fail(ReasonClearingPriceHeightMismatch, "swapclaim: NFT was not created in the cleared block")
	}

	// 5. nullifier == PRF(nk, position, commitment).
	expectedNf := commitment.DeriveNullifier(c.Nk, pos.Uint64(), recomputed)
	if expectedNf != pub.Nullifier {
		return fail(ReasonBadNullifier, "swapclaim: nullifier does not match witness")
	}

	// 6. Output notes for (λ1, asset1) and (λ2, asset2) to claim_address
	// are well-formed per the Output checks, using zero value blindings.
	out1 := Output{
		Gd: c.Plaintext.ClaimAddress.Gd, Pkd: c.Plaintext.ClaimAddress.Pkd, Ckd: c.Plaintext.ClaimAddress.Ckd,
		Value:         commitment.Value{Amount: pub.OutputData.Lambda1, AssetID: c.Plaintext.Pair.Asset1},
		ValueBlinding: zeroFr(),
		NoteBlinding:  c.Output1Blinding,
		Esk:           c.Esk1,
	}
	out1Pub := OutputPublic{
		ValueCommitment: commitment.Commit(out1.Value, out1.ValueBlinding).Neg(),
		NoteCommitment:  pub.NoteCommitment1,
		Epk:             pub.Epk1,
	}
	if err := out1.Verify(out1Pub); err != nil {
		return err
	}

	out2 := Output{
		Gd: c.Plaintext.ClaimAddress.Gd, Pkd: c.Plaintext.ClaimAddress.Pkd, Ckd: c.Plaintext.ClaimAddress.Ckd,
		Value:         commitment.Value{Amount: pub.OutputData.Lambda2, AssetID: c.Plaintext.Pair.Asset2},
		ValueBlinding: zeroFr(),
		NoteBlinding:  c.Output2Blinding,
		Esk:           c.Esk2,
	}
	out2Pub := OutputPublic{
		ValueCommitment: commitment.Commit(out2.Value, out2.ValueBlinding).Neg(),
		NoteCommitment:  pub.NoteCommitment2,
		Epk:             pub.Epk2,
	}
	if err := out2.Verify(out2Pub); err != nil {
		return err
	}

	return nil
}

func zeroFr() field.Fr {
	var z field.Fr
	return z
}
