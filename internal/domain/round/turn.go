package round

import (
	"fmt"

	"github.com/okian/molkky/internal/domain/model"
)

// CurrentContender returns the contender to throw. It reports false for a
// round without contenders.
func (r *Round) CurrentContender() (model.Contender, bool) {
	if len(r.contenders) == 0 {
		return model.Contender{}, false
	}
	return r.contenders[r.current], true
}

// FindNextContender walks the seats after the current one, wrapping around
// and ending on the current seat, and returns the unfinished contender at
// position offset of that walk. It reports false when fewer than offset+1
// contenders are still in play.
func (r *Round) FindNextContender(offset int) (model.Contender, bool) {
	idx, ok := r.nextIndex(r.computeScores(), offset)
	if !ok {
		return model.Contender{}, false
	}
	return r.contenders[idx], true
}

func (r *Round) nextIndex(scores []ContenderScore, offset int) (int, bool) {
	n := len(r.contenders)
	if n == 0 || offset < 0 {
		return 0, false
	}
	seen := 0
	for step := 1; step <= n; step++ {
		idx := (r.current + step) % n
		if scores[idx].IsFinished() {
			continue
		}
		if seen == offset {
			return idx, true
		}
		seen++
	}
	return 0, false
}

// RecordAttempt records a throw by the current contender and passes the
// turn to the next contender still in play. When nobody is left the turn
// stays put; HasGameEnded reports the outcome.
func (r *Round) RecordAttempt(score int) (model.Attempt, error) {
	if len(r.contenders) == 0 {
		return model.Attempt{}, ErrNoContenders
	}
	if !model.ValidScore(score) {
		return model.Attempt{}, fmt.Errorf("%w: got %d", ErrInvalidScore, score)
	}
	a := model.Attempt{
		ID:          r.newID(),
		ContenderID: r.contenders[r.current].ID,
		Score:       score,
	}
	r.record(a)
	return a, nil
}

func (r *Round) record(a model.Attempt) {
	r.attempts = append(r.attempts, a)
	if idx, ok := r.nextIndex(r.computeScores(), 0); ok {
		r.current = idx
	}
}

// HasGameEnded reports whether the round is over: it was ended early, or
// enough contenders are finished. One finisher ends a normal round; with
// ContinueUntilAllFinished play goes on until one contender is left.
func (r *Round) HasGameEnded() bool {
	if r.endedEarly {
		return true
	}
	threshold := 1
	if r.config.ContinueUntilAllFinished {
		threshold = len(r.contenders) - 1
	}
	finished := 0
	for _, s := range r.computeScores() {
		if s.IsFinished() {
			finished++
		}
	}
	return finished >= threshold
}
