package tct

import "github.com/shieldedpool/core/pkg/field"

// Tier height and arity: each of the three stacked trees is a depth-8
// quaternary tree, so a tier holds at most 4^8 == 2^16 leaves.
const (
	TierHeight   = 8
	Arity        = 4
	TierCapacity = 1 << (2 * TierHeight)
)

// Domain tags separate the hashes of the three tiers from one another
// and from unrelated uses of field.H, mirroring the teacher's per-type
// domain-tagged hashing in internal/zkp/merkle.go, generalized from one
// tag to one per tier.
const (
	DomainBlock  = "shielded_pool/tct/block"
	DomainEpoch  = "shielded_pool/tct/epoch"
	DomainGlobal = "shielded_pool/tct/global"
)

// Witness controls whether an inserted leaf's authentication path is
// retained (Keep) or immediately discarded (Forget), per spec.md §4.1's
// selective witnessing.
type Witness bool

const (
	Forget Witness = false
	Keep   Witness = true
)

type leafSlot struct {
	hash field.Hash
	kept bool
}

// tier is the shared mechanics behind all three levels of the Tiered
// Commitment Tree: a depth-TierHeight quaternary Merkle accumulator over
// up to TierCapacity leaves, with lazily-computed, cached roots and
// selective per-leaf witness retention.
//
// This trades the node-by-node arena spec.md's design notes sketch for a
// flat leaf slice plus an on-demand recursive fold; the fold short-circuits
// on empty subtrees (see foldLevel) so its cost tracks the tier's current
// size, not its full 4^8 capacity. See DESIGN.md for the tradeoff.
type tier struct {
	domain string
	leaves []leafSlot
	sealed bool
	cached *field.Hash
}

func newTier(domain string) *tier {
	return &tier{domain: domain}
}

func (t *tier) len() int { return len(t.leaves) }

func (t *tier) insert(h field.Hash, w Witness) (uint16, error) {
	if t.sealed {
		return 0, ErrSealed
	}
	if len(t.leaves) >= TierCapacity {
		return 0, ErrFull
	}
	pos := uint16(len(t.leaves))
	t.leaves = append(t.leaves, leafSlot{hash: h, kept: bool(w)})
	t.cached = nil
	return pos, nil
}

// forget drops the retained witness for the leaf at position, without
// altering the tier's root (the leaf's hash still participates in every
// ancestor hash; only its authentication path becomes unrecoverable).
func (t *tier) forget(position uint16) bool {
	if int(position) >= len(t.leaves) || !t.leaves[position].kept {
		return false
	}
	t.leaves[position].kept = false
	return true
}

// leafHashAt returns the hash at leaf index i. If i is exactly one past
// the tier's real leaves and pending is non-nil, it returns *pending --
// the still-open child tier's root, grafted in here only virtually
// because EndBlock/EndEpoch has not run yet. Otherwise it is ZeroHash.
func (t *tier) leafHashAt(i int, pending *field.Hash) field.Hash {
	if i < len(t.leaves) {
		return t.leaves[i].hash
	}
	if pending != nil && i == len(t.leaves) {
		return *pending
	}
	return field.ZeroHash
}

// root returns the tier's digest, computing and caching it if dirty.
// An empty, unsealed tier roots to field.ZeroHash; an empty, sealed
// tier (the "finished empty" case, spec.md §8) roots to field.OneHash,
// distinguishing "nothing here yet" from "this tier was deliberately
// sealed with nothing in it".
func (t *tier) root() field.Hash {
	if t.cached != nil {
		return *t.cached
	}
	var r field.Hash
	switch {
	case len(t.leaves) == 0 && t.sealed:
		r = field.OneHash
	case len(t.leaves) == 0:
		r = field.ZeroHash
	default:
		r = t.foldLevel(0, TierCapacity, nil)
	}
	t.cached = &r
	return r
}

// rootPending returns this tier's root as if pending were already
// grafted in as the leaf at the tier's next free position, without
// mutating the tier. A nil pending means "nothing open below this
// tier", and this is exactly root(). A child tier only grafts its root
// into its parent at EndBlock/EndEpoch time, but spec.md §4.1 requires
// every root (and every authentication path through it) to already
// reflect whatever the still-open child currently holds.
func (t *tier) rootPending(pending *field.Hash) field.Hash {
	if pending == nil {
		return t.root()
	}
	return t.foldLevel(0, TierCapacity, pending)
}

// foldLevel computes the hash of the node covering leaves
// [start, start+width), short-circuiting to ZeroHash once start is past
// the last real-or-pending leaf so the recursion's real cost is
// proportional to the tier's current size rather than its full
// capacity. pending, if non-nil, extends the tier by one virtual leaf
// as described on leafHashAt.
func (t *tier) foldLevel(start, width int, pending *field.Hash) field.Hash {
	effLen := len(t.leaves)
	if pending != nil {
		effLen++
	}
	if start >= effLen {
		return field.ZeroHash
	}
	if width == 1 {
		return t.leafHashAt(start, pending)
	}
	child := width / Arity
	var hs [Arity]field.Hash
	for i := 0; i < Arity; i++ {
		hs[i] = t.foldLevel(start+i*child, child, pending)
	}
	return t.combine(hs)
}

func (t *tier) combine(hs [Arity]field.Hash) field.Hash {
	return field.H(t.domain,
		field.HashToFq(hs[0]), field.HashToFq(hs[1]),
		field.HashToFq(hs[2]), field.HashToFq(hs[3]),
	)
}

// PathSegment is one tier's worth of a Merkle authentication path: the
// branch digit taken and the three sibling hashes skipped, at each of
// the tier's TierHeight levels, ordered leaf-to-root.
type PathSegment struct {
	Digits   [TierHeight]uint8
	Siblings [TierHeight][Arity - 1]field.Hash
}

// witnessPath builds the authentication path for a kept leaf at
// position, walking from the leaf up to the tier's root. pending
// extends the tier with one virtual leaf the way rootPending does, so a
// path to an already-sealed position still folds correctly when a
// younger, not-yet-grafted sibling subtree sits beyond it.
func (t *tier) witnessPath(position uint16, pending *field.Hash) (*PathSegment, error) {
	if int(position) >= len(t.leaves) || !t.leaves[position].kept {
		return nil, ErrNotFound
	}
	seg := t.pathAt(position, pending)
	return &seg, nil
}

// pathAt builds the sibling path for position purely structurally: it
// does not require position to already hold a real inserted leaf, so it
// also yields the correct path for the tier's own next (pending) slot.
// pending is threaded into every sibling computation; see leafHashAt.
func (t *tier) pathAt(position uint16, pending *field.Hash) PathSegment {
	var seg PathSegment
	idx := int(position)
	unit := 1
	for lvl := 0; lvl < TierHeight; lvl++ {
		digit := idx % Arity
		groupStart := (idx / Arity) * Arity * unit
		var si int
		for c := 0; c < Arity; c++ {
			if c == digit {
				continue
			}
			seg.Siblings[lvl][si] = t.foldLevel(groupStart+c*unit, unit, pending)
			si++
		}
		seg.Digits[lvl] = uint8(digit)
		idx /= Arity
		unit *= Arity
	}
	return seg
}

// fold replays the authentication path starting from leaf, returning
// the resulting tier root. domain must match the tier's own domain tag.
func (seg PathSegment) fold(leaf field.Hash, domain string) field.Hash {
	cur := leaf
	for lvl := 0; lvl < TierHeight; lvl++ {
		var hs [Arity]field.Hash
		d := int(seg.Digits[lvl])
		var si int
		for c := 0; c < Arity; c++ {
			if c == d {
				hs[c] = cur
			} else {
				hs[c] = seg.Siblings[lvl][si]
				si++
			}
		}
		cur = field.H(domain,
			field.HashToFq(hs[0]), field.HashToFq(hs[1]),
			field.HashToFq(hs[2]), field.HashToFq(hs[3]),
		)
	}
	return cur
}
