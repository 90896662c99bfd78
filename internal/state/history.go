package state

// History is the ordered log of committed strokes plus the redo buffer.
// Committed order is paint order. The zero value is an empty history.
type History struct {
	committed []Stroke
	pending   []Stroke // redo buffer, most recently undone last
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{}
}

// Append commits s and drops everything that could have been redone.
// A nil stroke is ignored.
func (h *History) Append(s Stroke) {
	if s == nil {
		return
	}
	h.committed = append(h.committed, s)
	h.pending = nil
}

// Undo moves the newest committed stroke onto the redo buffer. It reports
// whether anything moved.
func (h *History) Undo() bool {
	n := len(h.committed)
	if n == 0 {
		return false
	}
	s := h.committed[n-1]
	h.committed[n-1] = nil
	h.committed = h.committed[:n-1]
	h.pending = append(h.pending, s)
	return true
}

// Redo moves the most recently undone stroke back onto the committed log.
// It reports whether anything moved.
func (h *History) Redo() bool {
	n := len(h.pending)
	if n == 0 {
		return false
	}
	s := h.pending[n-1]
	h.pending[n-1] = nil
	h.pending = h.pending[:n-1]
	h.committed = append(h.committed, s)
	return true
}

// Clear empties both the committed log and the redo buffer.
func (h *History) Clear() {
	h.committed = nil
	h.pending = nil
}

// Replace swaps the committed log for a copy of strokes and empties the redo
// buffer. Nil entries are skipped.
func (h *History) Replace(strokes []Stroke) {
	committed := make([]Stroke, 0, len(strokes))
	for _, s := range strokes {
		if s != nil {
			committed = append(committed, s)
		}
	}
	h.committed = committed
	h.pending = nil
}

// Snapshot returns a copy of the committed strokes in paint order. Later
// mutations of h do not show through.
func (h *History) Snapshot() []Stroke {
	out := make([]Stroke, len(h.committed))
	copy(out, h.committed)
	return out
}

// Pending returns a copy of the redo buffer; the next Redo restores the last
// element.
func (h *History) Pending() []Stroke {
	out := make([]Stroke, len(h.pending))
	copy(out, h.pending)
	return out
}

// Len returns the number of committed strokes.
func (h *History) Len() int { return len(h.committed) }

// CanUndo reports whether Undo would move a stroke.
func (h *History) CanUndo() bool { return len(h.committed) > 0 }

// CanRedo reports whether Redo would move a stroke.
func (h *History) CanRedo() bool { return len(h.pending) > 0 }
