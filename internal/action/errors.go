// Package action implements the shielded pool's transparent action
// proofs: Spend, Output, Swap, and SwapClaim (spec.md §4.3). Each is a
// witness-carrying struct with a Verify method that re-runs the
// statement directly against a set of public inputs, rather than a
// compiled zk-SNARK circuit -- the "transparent proof" design spec.md
// §1 calls out as this revision's deliberate simplification.
package action

import "fmt"

// Reason enumerates the specific way a proof failed, matching spec.md
// §7's ProofFailure reason list.
type Reason string

const (
	ReasonNoteCommitmentMismatch      Reason = "NoteCommitmentMismatch"
	ReasonMerkleRootMismatch          Reason = "MerkleRootMismatch"
	ReasonValueCommitmentMismatch     Reason = "ValueCommitmentMismatch"
	ReasonUnexpectedIdentity          Reason = "UnexpectedIdentity"
	ReasonBadNullifier                Reason = "BadNullifier"
	ReasonBadSpendAuth                Reason = "BadSpendAuth"
	ReasonAddressBinding              Reason = "AddressBinding"
	ReasonSwapAssetIdMismatch         Reason = "SwapAssetIdMismatch"
	ReasonClearingPriceHeightMismatch Reason = "ClearingPriceHeightMismatch"
)

// ProofFailure is returned by every action's Verify when a specific
// check fails.
type ProofFailure struct {
	Reason Reason
	Detail string
}

func (e *ProofFailure) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("action: proof failed: %s", e.Reason)
	}
	return fmt.Sprintf("action: proof failed: %s: %s", e.Reason, e.Detail)
}

func fail(reason Reason, detail string) error {
	return &ProofFailure{Reason: reason, Detail: detail}
}
