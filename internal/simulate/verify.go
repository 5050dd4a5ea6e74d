package simulate

import (
	"errors"
	"fmt"

	"github.com/okian/molkky/internal/domain/scoring"
	"github.com/okian/molkky/internal/domain/types"
)

// ErrInvariant is returned when the service reports a round that breaks the
// scoring rules.
var ErrInvariant = errors.New("round invariant violated")

// checkRound verifies the totals of a round view: each one stays within the
// target and matches its throws replayed under the round's rules.
func checkRound(r types.Round) error {
	target := r.Rules.TargetScore
	reset := scoring.WithoutReset()
	if r.Rules.CanBeReset {
		reset = scoring.WithReset(r.Rules.ResetScore)
	}
	rules := scoring.NewRules(scoring.WithTarget(target), reset)

	for _, c := range r.Contenders {
		if c.TotalScore < 0 || c.TotalScore > target {
			return fmt.Errorf("%w: %s has %d of %d", ErrInvariant, c.Name, c.TotalScore, target)
		}
		if want := rules.Fold(c.Throws); c.TotalScore != want {
			return fmt.Errorf("%w: %s has %d, throws %v add up to %d", ErrInvariant, c.Name, c.TotalScore, c.Throws, want)
		}
		if c.FinishPosition != nil && c.TotalScore != target {
			return fmt.Errorf("%w: %s placed %d with %d of %d", ErrInvariant, c.Name, *c.FinishPosition, c.TotalScore, target)
		}
	}
	return nil
}

// checkStandings verifies competition placements: they start at 1, never
// decrease, and a new place skips past every tied contender before it.
func checkStandings(st []types.Standing, contenders int) error {
	if len(st) != contenders {
		return fmt.Errorf("%w: %d standings for %d contenders", ErrInvariant, len(st), contenders)
	}
	for i, s := range st {
		switch {
		case i == 0 && s.Place != 1:
			return fmt.Errorf("%w: first place is %d", ErrInvariant, s.Place)
		case i > 0 && s.Place < st[i-1].Place:
			return fmt.Errorf("%w: place %d after %d", ErrInvariant, s.Place, st[i-1].Place)
		case i > 0 && s.Place != st[i-1].Place && s.Place != i+1:
			return fmt.Errorf("%w: place %d at position %d", ErrInvariant, s.Place, i+1)
		}
	}
	return nil
}

// checkRematch verifies a rematch seats the previous standings in reverse.
func checkRematch(st []types.Standing, next types.Round) error {
	if len(next.Contenders) != len(st) {
		return fmt.Errorf("%w: rematch has %d contenders, want %d", ErrInvariant, len(next.Contenders), len(st))
	}
	bySeat := make(map[int]string, len(next.Contenders))
	for _, c := range next.Contenders {
		bySeat[c.Seat] = c.ID
	}
	for i := range st {
		want := st[len(st)-1-i].Contender.ID
		if got := bySeat[i]; got != want {
			return fmt.Errorf("%w: rematch seat %d is %s, want %s", ErrInvariant, i, got, want)
		}
	}
	if next.Attempts != 0 || next.HasEnded {
		return fmt.Errorf("%w: rematch is not fresh", ErrInvariant)
	}
	return nil
}

// checkUndoRedo verifies an undo/redo pair returns to where it started.
func checkUndoRedo(before, undone, redone types.Round) error {
	if undone.Attempts != before.Attempts-1 || !undone.CanRedo {
		return fmt.Errorf("%w: undo left %d attempts from %d", ErrInvariant, undone.Attempts, before.Attempts)
	}
	if redone.Attempts != before.Attempts || redone.CanRedo {
		return fmt.Errorf("%w: redo left %d attempts from %d", ErrInvariant, redone.Attempts, before.Attempts)
	}
	if redone.CurrentContenderID != before.CurrentContenderID {
		return fmt.Errorf("%w: redo moved the turn to %s, want %s", ErrInvariant, redone.CurrentContenderID, before.CurrentContenderID)
	}
	for i := range before.Contenders {
		if redone.Contenders[i].TotalScore != before.Contenders[i].TotalScore {
			return fmt.Errorf("%w: redo changed %s's total", ErrInvariant, before.Contenders[i].Name)
		}
	}
	return nil
}
