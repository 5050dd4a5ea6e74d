package round

import (
	"github.com/okian/molkky/internal/domain/model"
)

// ContenderScore is the derived standing of one contender.
type ContenderScore struct {
	Contender    model.Contender
	Attempts     []model.Attempt
	TotalScore   int
	IsInWarning  bool
	IsEliminated bool
	// FinishPosition is the 0-based order in which the contender hit the
	// target exactly, or -1.
	FinishPosition int
}

// IsFinished reports whether the contender is out of play, either by
// reaching the target or by elimination.
func (s ContenderScore) IsFinished() bool {
	return s.FinishPosition >= 0 || s.IsEliminated
}

// computeScores replays the attempt history and returns one score per
// contender, index-aligned with r.contenders.
func (r *Round) computeScores() []ContenderScore {
	scores := make([]ContenderScore, len(r.contenders))
	seat := make(map[string]int, len(r.contenders))
	for i, c := range r.contenders {
		seat[c.ID] = i
		scores[i] = ContenderScore{Contender: c, FinishPosition: -1}
	}

	rules := r.config.Rules()
	finishes := 0
	for _, a := range r.attempts {
		i, ok := seat[a.ContenderID]
		if !ok {
			continue
		}
		s := &scores[i]
		s.Attempts = append(s.Attempts, a)
		s.TotalScore = rules.Apply(s.TotalScore, a.Score)
		// Every throw that leaves a total on target counts as a finish,
		// including throws by a contender already sitting there; only the
		// first one sets the position.
		if s.TotalScore == r.config.TargetScore {
			if s.FinishPosition < 0 {
				s.FinishPosition = finishes
			}
			finishes++
		}
	}

	misses := r.config.MissesForElimination
	for i := range scores {
		s := &scores[i]
		s.IsInWarning = endsWithMisses(s.Attempts, misses-1)
		s.IsEliminated = endsWithMisses(s.Attempts, misses)
	}
	return scores
}

// endsWithMisses reports whether attempts holds at least n throws and the
// last n are all misses. A window of n <= 0 is empty and always matches.
func endsWithMisses(attempts []model.Attempt, n int) bool {
	if n <= 0 {
		return true
	}
	if len(attempts) < n {
		return false
	}
	for _, a := range attempts[len(attempts)-n:] {
		if !a.IsMiss() {
			return false
		}
	}
	return true
}

// ContenderScores returns every contender's derived score, in seating order
// when SortByTurn is set and in rank order otherwise.
func (r *Round) ContenderScores() []ContenderScore {
	scores := r.computeScores()
	if r.sortByTurn {
		return TurnOrder(scores)
	}
	return RankOrder(scores)
}

// CurrentContenderScore returns the derived score of the contender to
// throw. It reports false for a round without contenders.
func (r *Round) CurrentContenderScore() (ContenderScore, bool) {
	if len(r.contenders) == 0 {
		return ContenderScore{}, false
	}
	return r.computeScores()[r.current], true
}
