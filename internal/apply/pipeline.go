package apply

import (
	"context"
	"fmt"

	"github.com/shieldedpool/core/internal/store"
	"github.com/shieldedpool/core/internal/tct"
	"github.com/shieldedpool/core/internal/wire"
	"github.com/shieldedpool/core/pkg/field"
)

// Config tunes the apply pipeline, grounded on the teacher's small
// Config/DefaultConfig pairing (e.g. internal/storage.Config).
type Config struct {
	// BlocksPerEpoch is the number of blocks sealed before end_epoch()
	// is called.
	BlocksPerEpoch uint64
	// AnchorWindowSize bounds how many recent block and global anchors
	// remain valid. 0 means unbounded. Epoch anchors are always kept.
	AnchorWindowSize int
}

// DefaultConfig returns reasonable defaults: 128 blocks per epoch, a
// 256-block anchor window.
func DefaultConfig() *Config {
	return &Config{BlocksPerEpoch: 128, AnchorWindowSize: 256}
}

// NoteInsertion is one Output or Swap action's contribution to a block:
// the note commitment to insert into the TCT, and the fragment data a
// CompactBlock publishes for it.
type NoteInsertion struct {
	Commitment    field.Hash
	Witness       tct.Witness
	EphemeralKey  field.G
	EncryptedNote []byte
}

// NullifierSpend is one Spend or SwapClaim action's contribution: the
// nullifier to mark spent, and whether the spend is subject to
// undelegation unbonding and must go through quarantine first.
type NullifierSpend struct {
	Nullifier    field.Hash
	Quarantined  bool
	ApplyAtEpoch uint16
}

// Transaction is a validated transaction's effects on pool state.
// Proof verification (internal/action) happens upstream; the apply
// pipeline only ingests its already-validated effects, per spec.md
// §4.4 ("an ordered list of validated transactions").
type Transaction struct {
	Outputs []NoteInsertion
	Spends  []NullifierSpend
}

// Block is one height's worth of validated transactions.
type Block struct {
	Height       uint64
	Transactions []Transaction
}

// Pipeline is the single-writer apply pipeline: one logical task calls
// ApplyBlock in monotonic height order and holds exclusive access to
// the TCT and nullifier/anchor sets for the duration of a block
// (spec.md §5).
type Pipeline struct {
	cfg   *Config
	tree  *tct.Tree
	store store.Store
	bcast *wire.Broadcaster

	nullifiers    *nullifierSet
	globalAnchors *anchorWindow
	epochAnchors  *anchorWindow
	blockAnchors  *anchorWindow

	currentEpoch  uint16
	blocksInEpoch uint64
}

// New builds a fresh pipeline over an empty TCT.
func New(cfg *Config, st store.Store, bcast *wire.Broadcaster) *Pipeline {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Pipeline{
		cfg:           cfg,
		tree:          tct.New(),
		store:         st,
		bcast:         bcast,
		nullifiers:    newNullifierSet(),
		globalAnchors: newAnchorWindow(cfg.AnchorWindowSize),
		epochAnchors:  newAnchorWindow(0),
		blockAnchors:  newAnchorWindow(cfg.AnchorWindowSize),
	}
}

// IsValidAnchor reports whether root is within the accepted-anchor
// window (spec.md §6).
func (p *Pipeline) IsValidAnchor(root field.Hash) bool { return p.globalAnchors.isValid(root) }

// Tree exposes the underlying TCT for witness/query paths.
func (p *Pipeline) Tree() *tct.Tree { return p.tree }

// ApplyBlock ingests one block: commitments in, nullifiers out, anchors
// published, CompactBlock emitted (spec.md §4.4).
func (p *Pipeline) ApplyBlock(ctx context.Context, block Block) (*wire.CompactBlock, error) {
	var fragments []wire.Fragment
	var nullifiers []field.Hash

	// 1 & 2: insert commitments, mark nullifiers spent, in transaction
	// and intra-transaction action order.
	for _, tx := range block.Transactions {
		for _, out := range tx.Outputs {
			if _, err := p.tree.Insert(out.Witness, out.Commitment); err != nil {
				return nil, err
			}
			fragments = append(fragments, wire.Fragment{
				NoteCommitment: out.Commitment,
				EphemeralKey:   out.EphemeralKey,
				EncryptedNote:  out.EncryptedNote,
			})
		}
		for _, sp := range tx.Spends {
			var err error
			if sp.Quarantined {
				err = p.nullifiers.quarantine(sp.Nullifier, sp.ApplyAtEpoch)
			} else {
				err = p.nullifiers.spend(sp.Nullifier)
			}
			if err != nil {
				return nil, err
			}
			nullifiers = append(nullifiers, sp.Nullifier)
			key := store.SpentNullifierKey(sp.Nullifier)
			if sp.Quarantined {
				key = store.QuarantinedSpentNullifierKey(sp.Nullifier)
			}
			if err := p.store.Put(ctx, key, nil); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
			}
		}
	}

	// 3: seal the block, publish anchors.
	blockRoot := p.tree.CurrentBlockRoot()
	if err := p.tree.EndBlock(); err != nil {
		return nil, err
	}
	p.blockAnchors.publish(block.Height, blockRoot)
	if err := p.store.Put(ctx, store.BlockAnchorKey(block.Height), wire.EncodeHash(blockRoot)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	p.blocksInEpoch++
	if p.blocksInEpoch >= p.cfg.BlocksPerEpoch {
		epochRoot := p.tree.CurrentEpochRoot()
		if err := p.tree.EndEpoch(); err != nil {
			return nil, err
		}
		p.epochAnchors.publish(uint64(p.currentEpoch), epochRoot)
		if err := p.store.Put(ctx, store.EpochAnchorKey(p.currentEpoch), wire.EncodeHash(epochRoot)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		due := p.nullifiers.applyScheduled(p.currentEpoch, true)
		_ = due
		p.currentEpoch++
		p.blocksInEpoch = 0
	}

	globalRoot := p.tree.Root()
	p.globalAnchors.publish(block.Height, globalRoot)
	if err := p.store.Put(ctx, store.AnchorKey(block.Height), wire.EncodeHash(globalRoot)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	// 4: emit the CompactBlock.
	cb := &wire.CompactBlock{Height: block.Height, Fragments: fragments, Nullifiers: nullifiers}
	if err := p.store.Put(ctx, store.CompactBlockKey(block.Height), cb.Encode()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if p.bcast != nil {
		if err := p.bcast.Publish(ctx, cb); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}
	return cb, nil
}
