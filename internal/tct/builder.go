package tct

import "github.com/shieldedpool/core/pkg/field"

// BlockBuilder accumulates one block's commitments independently of any
// Tree, so a block can be constructed off to the side (e.g. while the
// previous block is still being applied) and then attached in one step
// (spec.md §9 "builder grafting"). Its Insert/Root mirror tier's own
// mechanics directly, since a block is exactly one tier.
type BlockBuilder struct {
	t     *tier
	index map[field.Hash]uint16
}

// NewBlockBuilder returns an empty block builder.
func NewBlockBuilder() *BlockBuilder {
	return &BlockBuilder{t: newTier(DomainBlock), index: make(map[field.Hash]uint16)}
}

// Insert adds commitment to the block under construction.
func (b *BlockBuilder) Insert(w Witness, commitment field.Hash) (uint16, error) {
	pos, err := b.t.insert(commitment, w)
	if err != nil {
		return 0, err
	}
	if w == Keep {
		b.index[commitment] = pos
	}
	return pos, nil
}

// Root returns the block's root as built so far.
func (b *BlockBuilder) Root() field.Hash { return b.t.root() }

// EpochBuilder accumulates a sequence of block roots (its own or
// others', already sealed) into an epoch, for grafting onto a Tree in
// one step once complete.
type EpochBuilder struct {
	t      *tier
	blocks []*BlockBuilder
}

// NewEpochBuilder returns an empty epoch builder.
func NewEpochBuilder() *EpochBuilder {
	return &EpochBuilder{t: newTier(DomainEpoch)}
}

// InsertBlock seals b (if not already) and adds its root as the next
// leaf of the epoch under construction.
func (e *EpochBuilder) InsertBlock(b *BlockBuilder) error {
	if _, err := e.t.insert(b.Root(), Keep); err != nil {
		return err
	}
	b.t.sealed = true
	e.blocks = append(e.blocks, b)
	return nil
}

// Root returns the epoch's root as built so far.
func (e *EpochBuilder) Root() field.Hash { return e.t.root() }

// GraftBlock attaches a block built independently as the Tree's
// currently open block, then seals it: the block's internal hashing has
// already happened inside the builder, so grafting costs only the O(1)
// hash folding the block root into the epoch tier (spec.md §9).
func (t *Tree) GraftBlock(b *BlockBuilder) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	epochIdx := uint16(len(t.epochs) - 1)
	epoch := t.currentEpoch()
	blockIdx := uint16(len(epoch.blocks) - 1)
	if epoch.blocks[blockIdx].sealed {
		return ErrSealed
	}
	epoch.blocks[blockIdx].tier = b.t
	for c, leafPos := range b.index {
		t.index[c] = NewPosition(epochIdx, blockIdx, leafPos)
	}
	return t.endBlockLocked()
}

// GraftEpoch attaches an epoch built independently -- together with all
// of its constituent blocks -- as the Tree's currently open epoch, then
// seals it.
func (t *Tree) GraftEpoch(e *EpochBuilder) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	epochIdx := uint16(len(t.epochs) - 1)
	epoch := t.currentEpoch()
	if epoch.sealed {
		return ErrSealed
	}

	blocks := make([]*blockRecord, len(e.blocks))
	for i, b := range e.blocks {
		blocks[i] = &blockRecord{tier: b.t, sealed: true}
		for c, leafPos := range b.index {
			t.index[c] = NewPosition(epochIdx, uint16(i), leafPos)
		}
	}
	epoch.blocks = blocks
	epoch.tier = e.t

	// Seal the epoch directly (rather than via endEpochLocked, which
	// would also seal a trailing open block that was never part of e
	// and fold a spurious empty leaf into e's already-built tier).
	epochRoot := epoch.tier.root()
	epoch.sealed = true
	if _, err := t.global.insert(epochRoot, Keep); err != nil {
		return err
	}
	t.epochs = append(t.epochs, &epochRecord{tier: newTier(DomainEpoch), blocks: []*blockRecord{{tier: newTier(DomainBlock)}}})
	return nil
}
