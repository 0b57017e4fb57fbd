package commitment

import (
	"github.com/shieldedpool/core/pkg/field"
)

// TradingPair identifies the two assets a swap trades between.
type TradingPair struct {
	Asset1 field.Hash
	Asset2 field.Hash
}

// SwapPlaintext is the full intent a Swap action records and a
// SwapClaim later redeems (spec.md §4.3.3/§4.3.4).
type SwapPlaintext struct {
	Pair         TradingPair
	Delta1       uint64
	Delta2       uint64
	Fee          Value
	ClaimAddress Address
}

// AssetID computes the Swap NFT's asset id, binding the NFT to its
// intent: H(trading_pair, Δ1, Δ2, fee, claim_address) (spec.md §4.3.4
// check 2).
func (s SwapPlaintext) AssetID() field.Hash {
	feeAmount := field.FqFromUint64(s.Fee.Amount)
	feeAsset := field.HashToFq(s.Fee.AssetID)
	claimGd := field.PointToFq(s.ClaimAddress.Gd)
	claimPkd := field.PointToFq(s.ClaimAddress.Pkd)
	var claimCkd field.Fq
	claimCkd.SetBytes(s.ClaimAddress.Ckd[:])

	return field.H("shielded_pool/swap-nft-asset-id",
		field.HashToFq(s.Pair.Asset1),
		field.HashToFq(s.Pair.Asset2),
		field.FqFromUint64(s.Delta1),
		field.FqFromUint64(s.Delta2),
		feeAmount,
		feeAsset,
		claimGd,
		claimPkd,
		claimCkd,
	)
}

// NFTNote builds the singleton Swap NFT note for this intent: the
// amount-1 note of the swap's own asset id, owned by the claim address
// (spec.md §4.3.3 check 1).
func (s SwapPlaintext) NFTNote(blinding field.Fq) Note {
	return Note{
		Address: s.ClaimAddress,
		Value: Value{
			Amount:  1,
			AssetID: s.AssetID(),
		},
		Blinding: blinding,
	}
}
