package round

import (
	"fmt"
	"slices"
	"time"

	"github.com/okian/molkky/internal/domain/model"
)

// State is the serializable form of a Round. Field names and tags are the
// stable persistence layout.
type State struct {
	ID                    string            `json:"id" yaml:"id"`
	Date                  time.Time         `json:"date" yaml:"date"`
	Config                Config            `json:"config" yaml:"config"`
	Contenders            []model.Contender `json:"contenders" yaml:"contenders"`
	Attempts              []model.Attempt   `json:"attempts" yaml:"attempts"`
	UndoStack             []model.Attempt   `json:"undo_stack" yaml:"undo_stack"`
	CurrentContenderIndex int               `json:"current_contender_index" yaml:"current_contender_index"`
	EndedEarly            bool              `json:"ended_early" yaml:"ended_early"`
	SortByTurn            bool              `json:"sort_by_turn" yaml:"sort_by_turn"`
}

// Snapshot returns a copy of r's state.
func (r *Round) Snapshot() State {
	return State{
		ID:                    r.id,
		Date:                  r.date,
		Config:                r.config,
		Contenders:            slices.Clone(r.contenders),
		Attempts:              slices.Clone(r.attempts),
		UndoStack:             slices.Clone(r.undoStack),
		CurrentContenderIndex: r.current,
		EndedEarly:            r.endedEarly,
		SortByTurn:            r.sortByTurn,
	}
}

// Restore rebuilds a Round from st. Only the id generator and clock options
// are meaningful; identity, date and rules come from st.
func Restore(st State, opts ...Option) (*Round, error) {
	if err := st.Validate(); err != nil {
		return nil, err
	}
	r := newRound(append(slices.Clone(opts), WithID(st.ID)))
	r.date = st.Date
	r.config = st.Config
	r.contenders = slices.Clone(st.Contenders)
	r.attempts = slices.Clone(st.Attempts)
	r.undoStack = slices.Clone(st.UndoStack)
	r.current = st.CurrentContenderIndex
	r.endedEarly = st.EndedEarly
	r.sortByTurn = st.SortByTurn
	return r, nil
}

// Validate checks the structural invariants a Round relies on: seats are
// listed in strictly increasing order, ids are unique, every attempt belongs
// to a seated contender and the turn cursor points at a seat.
func (st State) Validate() error {
	if st.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidState)
	}
	seated := make(map[string]struct{}, len(st.Contenders))
	for i, c := range st.Contenders {
		if c.ID == "" {
			return fmt.Errorf("%w: contender %d has no id", ErrInvalidState, i)
		}
		if _, dup := seated[c.ID]; dup {
			return fmt.Errorf("%w: duplicate contender %s", ErrInvalidState, c.ID)
		}
		if i > 0 && c.OrderKey <= st.Contenders[i-1].OrderKey {
			return fmt.Errorf("%w: order keys must increase, got %d after %d", ErrInvalidState, c.OrderKey, st.Contenders[i-1].OrderKey)
		}
		seated[c.ID] = struct{}{}
	}
	for _, list := range [][]model.Attempt{st.Attempts, st.UndoStack} {
		for _, a := range list {
			if _, ok := seated[a.ContenderID]; !ok {
				return fmt.Errorf("%w: attempt %s by unknown contender %s", ErrInvalidState, a.ID, a.ContenderID)
			}
		}
	}
	switch n := len(st.Contenders); {
	case n == 0 && st.CurrentContenderIndex != 0,
		n > 0 && (st.CurrentContenderIndex < 0 || st.CurrentContenderIndex >= n):
		return fmt.Errorf("%w: current contender index %d out of range", ErrInvalidState, st.CurrentContenderIndex)
	}
	return nil
}
