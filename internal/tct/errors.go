// Package tct implements the Tiered Commitment Tree: a sparse, quaternary,
// three-level (global / epoch / block) append-only Merkle accumulator
// (spec.md §4.1). Each tier is a depth-8 quaternary tree; stacking three
// of them (block tree's root as one epoch-tree leaf, epoch tree's root as
// one global-tree leaf) yields the 24-level structure spec.md describes.
package tct

import "errors"

var (
	// ErrFull is returned when a tier has exhausted its 4^8 leaf capacity.
	ErrFull = errors.New("tct: tier is full")
	// ErrNotFound is returned by Witness when the commitment is absent or
	// was previously forgotten (Forget reports the same case as false).
	ErrNotFound = errors.New("tct: commitment not found or forgotten")
	// ErrSealed is returned when inserting into a tier whose sealed flag
	// is set (a BlockBuilder once added to an EpochBuilder), or grafting
	// onto a block or epoch record marked sealed. EndBlock/EndEpoch mark
	// the records they seal but not the tiers themselves.
	ErrSealed = errors.New("tct: tier already sealed")
	// ErrMerkleRootMismatch is returned by Proof.Verify when the folded
	// path does not reach the expected root.
	ErrMerkleRootMismatch = errors.New("tct: merkle root mismatch")
)
