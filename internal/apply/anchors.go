package apply

import (
	"sync"

	"github.com/shieldedpool/core/pkg/field"
)

// anchorWindow tracks accepted anchors by height and by root, pruning
// the oldest entries once a bounded number of heights have
// accumulated (spec.md §6 "Anchor acceptance window", §9 "by-height and
// by-root map... bounded deque of heights for pruning").
type anchorWindow struct {
	mu       sync.RWMutex
	byHeight map[uint64]field.Hash
	byRoot   map[field.Hash]uint64
	order    []uint64
	limit    int // 0 means unbounded
}

func newAnchorWindow(limit int) *anchorWindow {
	return &anchorWindow{
		byHeight: make(map[uint64]field.Hash),
		byRoot:   make(map[field.Hash]uint64),
		limit:    limit,
	}
}

func (w *anchorWindow) publish(height uint64, root field.Hash) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.byHeight[height] = root
	w.byRoot[root] = height
	w.order = append(w.order, height)
	if w.limit > 0 {
		for len(w.order) > w.limit {
			oldest := w.order[0]
			w.order = w.order[1:]
			if oldRoot, ok := w.byHeight[oldest]; ok {
				delete(w.byHeight, oldest)
				// A root re-published at a later height stays valid.
				if w.byRoot[oldRoot] == oldest {
					delete(w.byRoot, oldRoot)
				}
			}
		}
	}
}

func (w *anchorWindow) isValid(root field.Hash) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.byRoot[root]
	return ok
}

func (w *anchorWindow) heightOf(root field.Hash) (uint64, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	h, ok := w.byRoot[root]
	return h, ok
}
