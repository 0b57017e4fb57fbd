package commitment

import (
	"github.com/shieldedpool/core/pkg/field"
)

// Value is an amount of a given asset (spec.md §3).
type Value struct {
	Amount  uint64
	AssetID field.Hash
}

// Note is the tuple (address, value, blinding) whose commitment anchors
// a spendable output in the TCT (spec.md §3).
type Note struct {
	Address  Address
	Value    Value
	Blinding field.Fq
}

// Commitment computes the note commitment:
//
//	H(blinding, amount, asset_id, g_d, pk_d_s, ck_d)
//
// per spec.md §3, where pk_d_s is the canonical field-element form of
// pk_d and ck_d is folded in as a field element of its raw bytes.
func (n Note) Commitment() field.Hash {
	amount := field.FqFromUint64(n.Value.Amount)
	assetID := field.HashToFq(n.Value.AssetID)
	gd := field.PointToFq(n.Address.Gd)
	pkdS := field.PointToFq(n.Address.Pkd)
	var ckd field.Fq
	ckd.SetBytes(n.Address.Ckd[:])

	return field.H("shielded_pool/note-commitment", n.Blinding, amount, assetID, gd, pkdS, ckd)
}
