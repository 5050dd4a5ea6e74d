package round

// Undo takes back the last attempt and gives the turn back to whoever threw
// it. It does nothing when there is no attempt.
func (r *Round) Undo() {
	if len(r.attempts) == 0 {
		return
	}
	last := r.attempts[len(r.attempts)-1]
	r.attempts = r.attempts[:len(r.attempts)-1]
	r.undoStack = append(r.undoStack, last)
	if idx := r.indexOf(last.ContenderID); idx >= 0 {
		r.current = idx
	}
}

// Redo re-records the most recently undone attempt as if it were thrown now.
// It does nothing when the undo stack is empty.
func (r *Round) Redo() {
	if len(r.undoStack) == 0 {
		return
	}
	last := r.undoStack[len(r.undoStack)-1]
	r.undoStack = r.undoStack[:len(r.undoStack)-1]
	r.record(last)
}

// ClearUndoStack forgets every undone attempt. Callers invoke it after a
// fresh throw so that redo cannot replay an abandoned branch.
func (r *Round) ClearUndoStack() {
	r.undoStack = nil
}

// ToggleSort flips ContenderScores between seating and rank order.
func (r *Round) ToggleSort() {
	r.sortByTurn = !r.sortByTurn
}

// SetEndedEarly marks the round as stopped (or resumed) by hand.
func (r *Round) SetEndedEarly(ended bool) {
	r.endedEarly = ended
}
