package board

// DefaultHistoryLimit bounds the undo stack so long sessions cannot grow
// memory without bound.
const DefaultHistoryLimit = 64

// History holds the linear undo/redo snapshot stacks. Pushing a new
// snapshot invalidates the redo stack: redo is only valid immediately after
// an undo with no intervening edit.
type History struct {
	limit int
	undo  []string
	redo  []string
}

// NewHistory builds a history bounded to limit snapshots. Non-positive
// limits fall back to DefaultHistoryLimit.
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{limit: limit}
}

// Push records a pre-mutation snapshot and clears the redo stack. When the
// undo stack is full the oldest snapshot is dropped.
func (h *History) Push(snapshot string) {
	if len(h.undo) >= h.limit {
		h.undo = h.undo[1:]
	}
	h.undo = append(h.undo, snapshot)
	h.redo = nil
}

// Undo exchanges the current snapshot for the last recorded one. Reports
// false when there is nothing to undo.
func (h *History) Undo(current string) (string, bool) {
	if len(h.undo) == 0 {
		return "", false
	}
	h.redo = append(h.redo, current)
	top := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	return top, true
}

// Redo is the inverse of Undo. Reports false when there is nothing to redo.
func (h *History) Redo(current string) (string, bool) {
	if len(h.redo) == 0 {
		return "", false
	}
	h.undo = append(h.undo, current)
	top := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	return top, true
}

// UndoLen returns the undo stack depth.
func (h *History) UndoLen() int { return len(h.undo) }

// RedoLen returns the redo stack depth.
func (h *History) RedoLen() int { return len(h.redo) }
