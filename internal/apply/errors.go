// Package apply implements the per-block ingestion pipeline: inserting
// validated transactions' commitments and nullifiers into the TCT and
// nullifier set, publishing anchors, and emitting CompactBlocks
// (spec.md §4.4), grounded on the teacher's
// internal/zkp/transaction.go's ShieldedPool.ProcessTransaction and
// internal/dag/dag.go's height-ordered single-writer idiom.
package apply

import "errors"

var (
	// ErrNullifierAlreadySpent is spec.md §7's double-spend rejection.
	ErrNullifierAlreadySpent = errors.New("apply: nullifier already spent")
	// ErrAnchorUnknown is spec.md §7's out-of-window anchor rejection.
	ErrAnchorUnknown = errors.New("apply: anchor not in acceptance window")
	// ErrStoreUnavailable wraps underlying store I/O failures.
	ErrStoreUnavailable = errors.New("apply: store unavailable")
)
