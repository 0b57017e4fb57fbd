package store

import "github.com/shieldedpool/core/pkg/field"

// Key helpers for the layout enumerated in spec.md §6. Each returns the
// namespaced string key a Store.Get/Put call uses; values are the
// canonical binary encodings produced by internal/wire.

func AssetTokenSupplyKey(assetID field.Hash) string {
	return fmtKey("shielded_pool/assets/%x/token_supply", assetID[:])
}

func AssetDenomKey(assetID field.Hash) string {
	return fmtKey("shielded_pool/assets/%x/denom", assetID[:])
}

func KnownAssetsKey() string { return "shielded_pool/known_assets" }

func NoteSourceKey(commitment field.Hash) string {
	return fmtKey("shielded_pool/note_source/%x", commitment[:])
}

func CompactBlockKey(height uint64) string {
	return fmtKey("shielded_pool/compact_block/%d", height)
}

func AnchorKey(height uint64) string {
	return fmtKey("shielded_pool/anchor/%d", height)
}

func ValidAnchorKey(root field.Hash) string {
	return fmtKey("shielded_pool/valid_anchors/%x", root[:])
}

func EpochAnchorKey(epochIndex uint16) string {
	return fmtKey("shielded_pool/epoch_anchor/%d", epochIndex)
}

func ValidEpochAnchorKey(epochRoot field.Hash) string {
	return fmtKey("shielded_pool/valid_epoch_anchors/%x", epochRoot[:])
}

func BlockAnchorKey(height uint64) string {
	return fmtKey("shielded_pool/block_anchor/%d", height)
}

func ValidBlockAnchorKey(blockRoot field.Hash) string {
	return fmtKey("shielded_pool/valid_block_anchors/%x", blockRoot[:])
}

func SpentNullifierKey(nf field.Hash) string {
	return fmtKey("shielded_pool/spent_nullifiers/%x", nf[:])
}

func QuarantinedSpentNullifierKey(nf field.Hash) string {
	return fmtKey("shielded_pool/quarantined_spent_nullifiers/%x", nf[:])
}

func QuarantinedToApplyInEpochKey(epochIndex uint16) string {
	return fmtKey("shielded_pool/quarantined_to_apply_in_epoch/%d", epochIndex)
}

func DexClaimedSwapOutputsKey(height uint64) string {
	return fmtKey("dex/claimed_swap_outputs/%d", height)
}

func StakingCommissionAmountsKey(height uint64) string {
	return fmtKey("staking/commission_amounts/%d", height)
}
