package tct

import "github.com/shieldedpool/core/pkg/field"

// Proof is a 24-level authentication path from one commitment up to the
// global root, as three stacked 8-level tier segments (spec.md §4.1,
// §8). Verify checks the full path; VerifyBlock/VerifyEpoch check a
// truncated prefix against a sub-root, letting a client witness against
// a recent block or epoch root without needing the current global root.
type Proof struct {
	Position   Position
	Commitment field.Hash
	Commit     PathSegment
	Block      PathSegment
	Epoch      PathSegment
}

// blockRoot folds the commitment-tier segment, returning the root its
// block would have.
func (p *Proof) blockRoot() field.Hash {
	return p.Commit.fold(p.Commitment, DomainBlock)
}

// epochRoot folds the commitment and block segments, returning the root
// its epoch would have.
func (p *Proof) epochRoot() field.Hash {
	return p.Block.fold(p.blockRoot(), DomainEpoch)
}

// globalRoot folds all three segments, returning the global root this
// proof is anchored to.
func (p *Proof) globalRoot() field.Hash {
	return p.Epoch.fold(p.epochRoot(), DomainGlobal)
}

// VerifyBlock checks the proof against a claimed block root.
func (p *Proof) VerifyBlock(root field.Hash) error {
	if p.blockRoot() != root {
		return ErrMerkleRootMismatch
	}
	return nil
}

// VerifyEpoch checks the proof against a claimed epoch root.
func (p *Proof) VerifyEpoch(root field.Hash) error {
	if p.epochRoot() != root {
		return ErrMerkleRootMismatch
	}
	return nil
}

// Verify checks the proof against a claimed global root.
func (p *Proof) Verify(root field.Hash) error {
	if p.globalRoot() != root {
		return ErrMerkleRootMismatch
	}
	return nil
}
