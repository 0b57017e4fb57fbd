package apply

import (
	"sync"

	"github.com/shieldedpool/core/pkg/field"
)

// nullifierSet is the monotonically growing set of spent nullifiers,
// plus a shadow "quarantined" set for spends subject to undelegation
// unbonding (spec.md §3, §9 "treat as a second, shadow nullifier set
// with a scheduled-apply queue keyed by epoch").
type nullifierSet struct {
	mu               sync.Mutex
	spent            map[field.Hash]struct{}
	quarantined      map[field.Hash]struct{}
	scheduledByEpoch map[uint16][]field.Hash
}

func newNullifierSet() *nullifierSet {
	return &nullifierSet{
		spent:            make(map[field.Hash]struct{}),
		quarantined:      make(map[field.Hash]struct{}),
		scheduledByEpoch: make(map[uint16][]field.Hash),
	}
}

func (n *nullifierSet) isSpent(nf field.Hash) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, spent := n.spent[nf]
	_, quarantined := n.quarantined[nf]
	return spent || quarantined
}

// spend adds nf to the primary spent set, failing if it is already
// spent or quarantined anywhere.
func (n *nullifierSet) spend(nf field.Hash) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.spent[nf]; ok {
		return ErrNullifierAlreadySpent
	}
	if _, ok := n.quarantined[nf]; ok {
		return ErrNullifierAlreadySpent
	}
	n.spent[nf] = struct{}{}
	return nil
}

// quarantine adds nf to the shadow set, scheduled to be applied or
// dropped once the given epoch is processed.
func (n *nullifierSet) quarantine(nf field.Hash, applyAtEpoch uint16) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.spent[nf]; ok {
		return ErrNullifierAlreadySpent
	}
	if _, ok := n.quarantined[nf]; ok {
		return ErrNullifierAlreadySpent
	}
	n.quarantined[nf] = struct{}{}
	n.scheduledByEpoch[applyAtEpoch] = append(n.scheduledByEpoch[applyAtEpoch], nf)
	return nil
}

// applyScheduled resolves every nullifier scheduled for epochIndex:
// moving it into the primary spent set if apply is true, or dropping it
// back out of quarantine (the scheduled-revert path) if false.
func (n *nullifierSet) applyScheduled(epochIndex uint16, apply bool) []field.Hash {
	n.mu.Lock()
	defer n.mu.Unlock()
	due := n.scheduledByEpoch[epochIndex]
	delete(n.scheduledByEpoch, epochIndex)
	for _, nf := range due {
		delete(n.quarantined, nf)
		if apply {
			n.spent[nf] = struct{}{}
		}
	}
	return due
}
