package availability

import "github.com/weekendsync/availability-api/internal/domain"

// historyLimit caps how many undo snapshots are retained; pushing past the
// cap drops the oldest.
const historyLimit = 50

// history keeps store snapshots for undo/redo. Snapshots are cheap to hold
// because the store is copy-on-write; day records are shared, not duplicated.
type history struct {
	past   []domain.Store
	future []domain.Store
}

// push records prev as the state to return to on undo. Any redo states are
// discarded: a new edit forks the timeline.
func (h *history) push(prev domain.Store) {
	h.past = append(h.past, prev)
	if len(h.past) > historyLimit {
		h.past = h.past[len(h.past)-historyLimit:]
	}
	h.future = nil
}

// undo returns the previous snapshot, moving cur onto the redo stack.
func (h *history) undo(cur domain.Store) (domain.Store, bool) {
	if len(h.past) == 0 {
		return cur, false
	}
	prev := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, cur)
	return prev, true
}

// redo returns the snapshot most recently undone, moving cur back onto the
// undo stack.
func (h *history) redo(cur domain.Store) (domain.Store, bool) {
	if len(h.future) == 0 {
		return cur, false
	}
	next := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, cur)
	return next, true
}

func (h *history) reset() {
	h.past = nil
	h.future = nil
}
