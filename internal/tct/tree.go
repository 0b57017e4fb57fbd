package tct

import (
	"sync"

	"github.com/shieldedpool/core/pkg/field"
)

type blockRecord struct {
	tier   *tier
	sealed bool
}

type epochRecord struct {
	tier   *tier // leaves are block roots
	blocks []*blockRecord
	sealed bool
}

// Tree is the Tiered Commitment Tree: the append-only accumulator of
// every commitment ever inserted into the shielded pool, organized into
// blocks (the unit of insertion), epochs (the unit of block-root
// aggregation), and a single global tree of epoch roots (spec.md §4.1).
//
// Insert/EndBlock/EndEpoch/Witness/Forget/Root form the tree's core
// operations (alongside CurrentBlockRoot/CurrentEpochRoot and the
// GraftBlock/GraftEpoch builder attachments in builder.go), mirroring the teacher's CommitmentTree in
// internal/zkp/merkle.go generalized from one binary depth-32 tree to
// three stacked quaternary depth-8 tiers.
type Tree struct {
	mu     sync.RWMutex
	global *tier
	epochs []*epochRecord
	index  map[field.Hash]Position
}

// New returns an empty tree with one open epoch and one open block,
// ready to accept insertions.
func New() *Tree {
	t := &Tree{
		global: newTier(DomainGlobal),
		index:  make(map[field.Hash]Position),
	}
	t.epochs = []*epochRecord{{tier: newTier(DomainEpoch), blocks: []*blockRecord{{tier: newTier(DomainBlock)}}}}
	return t
}

func (t *Tree) currentEpoch() *epochRecord { return t.epochs[len(t.epochs)-1] }
func (t *Tree) currentBlock() *blockRecord {
	e := t.currentEpoch()
	return e.blocks[len(e.blocks)-1]
}

// Insert adds commitment to the currently open block, returning its
// Position. Witness chooses whether an authentication path is retained.
func (t *Tree) Insert(w Witness, commitment field.Hash) (Position, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	epochIdx := uint16(len(t.epochs) - 1)
	epoch := t.currentEpoch()
	blockIdx := uint16(len(epoch.blocks) - 1)
	block := t.currentBlock()

	leafIdx, err := block.tier.insert(commitment, w)
	if err != nil {
		return 0, err
	}
	pos := NewPosition(epochIdx, blockIdx, leafIdx)
	if w == Keep {
		t.index[commitment] = pos
	}
	return pos, nil
}

// EndBlock seals the currently open block, grafts its root into the
// open epoch tier, and opens a fresh block. The open block is never
// already sealed (EndBlock and EndEpoch both leave a fresh one behind),
// so every call seals a block: an empty block is grafted as a ZeroHash
// leaf and the next insertion lands in the following block index.
func (t *Tree) EndBlock() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.endBlockLocked()
}

func (t *Tree) endBlockLocked() error {
	epoch := t.currentEpoch()
	block := t.currentBlock()
	if block.sealed {
		return nil
	}
	blockRoot := block.tier.root()
	block.sealed = true
	if _, err := epoch.tier.insert(blockRoot, Keep); err != nil {
		return err
	}
	epoch.blocks = append(epoch.blocks, &blockRecord{tier: newTier(DomainBlock)})
	return nil
}

// EndEpoch seals the currently open epoch (sealing its open block
// first, if needed), grafts its root into the global tier, and opens a
// fresh epoch. The open epoch is never already sealed, so a second
// EndEpoch in a row seals an empty epoch and advances the epoch index.
func (t *Tree) EndEpoch() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.endEpochLocked()
}

func (t *Tree) endEpochLocked() error {
	if err := t.endBlockLocked(); err != nil {
		return err
	}
	epoch := t.currentEpoch()
	if epoch.sealed {
		return nil
	}
	epochRoot := epoch.tier.root()
	epoch.sealed = true
	if _, err := t.global.insert(epochRoot, Keep); err != nil {
		return err
	}
	t.epochs = append(t.epochs, &epochRecord{tier: newTier(DomainEpoch), blocks: []*blockRecord{{tier: newTier(DomainBlock)}}})
	return nil
}

// Root returns the current global root, folding in the still-open
// epoch (and, within it, the still-open block) exactly as if both were
// sealed right now -- a tier only grafts its root into its parent at
// EndBlock/EndEpoch time, but the root returned here must already
// reflect every commitment inserted so far, sealed or not (spec.md §4.1,
// §8 scenario 1: a single insert plus end_block must already anchor a
// Spend against the global root).
func (t *Tree) Root() field.Hash {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.global.rootPending(t.pendingEpochRootLocked())
}

// CurrentBlockRoot returns the root of the currently open block, as if
// it were sealed right now.
func (t *Tree) CurrentBlockRoot() field.Hash {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.currentBlock().tier.root()
}

// CurrentEpochRoot returns the root of the currently open epoch, as if
// it were sealed right now (its open block is folded in as-is).
func (t *Tree) CurrentEpochRoot() field.Hash {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.currentEpoch().tier.rootPending(t.pendingBlockRootLocked())
}

// pendingBlockRootLocked returns the currently open block's root, or nil
// if that block has never received an insertion -- an untouched block
// contributes nothing to its epoch yet, not a grafted ZeroHash leaf.
func (t *Tree) pendingBlockRootLocked() *field.Hash {
	r := t.currentBlock().tier.root()
	if r == field.ZeroHash {
		return nil
	}
	return &r
}

// pendingEpochRootLocked returns the currently open epoch's root
// (itself already folding in the open block via pendingBlockRootLocked),
// or nil if that epoch has nothing in it yet. Exactly one epoch -- the
// last one -- is ever open, so this always describes t.currentEpoch(),
// regardless of which epoch a given Witness call is walking through.
func (t *Tree) pendingEpochRootLocked() *field.Hash {
	r := t.currentEpoch().tier.rootPending(t.pendingBlockRootLocked())
	if r == field.ZeroHash {
		return nil
	}
	return &r
}

// Witness returns the full 24-level authentication path for commitment,
// or ErrNotFound if it was never inserted with Keep, or has since been
// forgotten. A commitment is witnessable as soon as it is kept, whether
// or not its enclosing block/epoch has since been sealed: the block and
// epoch path segments are built against the live frontier, threading in
// whatever the still-open trailing block/epoch currently contributes
// (see tier.pathAt/witnessPath's pending parameter), rather than only
// against whatever EndBlock/EndEpoch has already grafted into the
// parent tier.
func (t *Tree) Witness(commitment field.Hash) (*Proof, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	pos, ok := t.index[commitment]
	if !ok {
		return nil, ErrNotFound
	}
	epoch := t.epochs[pos.Epoch()]
	block := epoch.blocks[pos.Block()]

	commitPath, err := block.tier.witnessPath(pos.Commitment(), nil)
	if err != nil {
		return nil, ErrNotFound
	}

	// Only the current (last) epoch can still have an open trailing
	// block; any other epoch's blocks are all sealed already.
	var blockPending *field.Hash
	if !epoch.sealed {
		blockPending = t.pendingBlockRootLocked()
	}
	var blockPath PathSegment
	if block.sealed {
		seg, err := epoch.tier.witnessPath(pos.Block(), blockPending)
		if err != nil {
			return nil, ErrNotFound
		}
		blockPath = *seg
	} else {
		blockPath = epoch.tier.pathAt(pos.Block(), blockPending)
	}

	// The global tier's pending leaf is always the current epoch's
	// root, regardless of which epoch commitment actually landed in:
	// a historical epoch's witness path still has to fold past the
	// live current epoch sitting to its right.
	epochPending := t.pendingEpochRootLocked()
	var epochPath PathSegment
	if epoch.sealed {
		seg, err := t.global.witnessPath(pos.Epoch(), epochPending)
		if err != nil {
			return nil, ErrNotFound
		}
		epochPath = *seg
	} else {
		epochPath = t.global.pathAt(pos.Epoch(), epochPending)
	}

	return &Proof{
		Position:   pos,
		Commitment: commitment,
		Commit:     *commitPath,
		Block:      blockPath,
		Epoch:      epochPath,
	}, nil
}

// Forget drops the retained authentication path for commitment, if any
// is held. It reports whether a witness was actually dropped.
func (t *Tree) Forget(commitment field.Hash) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	pos, ok := t.index[commitment]
	if !ok {
		return false
	}
	epoch := t.epochs[pos.Epoch()]
	block := epoch.blocks[pos.Block()]
	if !block.tier.forget(pos.Commitment()) {
		return false
	}
	delete(t.index, commitment)
	return true
}
