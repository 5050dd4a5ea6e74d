package round

import (
	"math"
	"slices"
)

// rankLevels are the tie-break levels of rank order, most significant first.
// Each reports whether a ranks strictly before b on that level alone.
var rankLevels = [...]func(a, b ContenderScore) bool{
	// Still in play before eliminated.
	func(a, b ContenderScore) bool { return !a.IsEliminated && b.IsEliminated },
	// Higher total first.
	func(a, b ContenderScore) bool { return a.TotalScore > b.TotalScore },
	// Earlier finisher first; unfinished sorts after every finisher.
	func(a, b ContenderScore) bool { return finishKey(a) < finishKey(b) },
	// Seating order settles the rest.
	func(a, b ContenderScore) bool { return a.Contender.OrderKey < b.Contender.OrderKey },
}

func finishKey(s ContenderScore) int {
	if s.FinishPosition < 0 {
		return math.MaxInt
	}
	return s.FinishPosition
}

// RanksBefore reports whether a is ranked strictly ahead of b. Levels are
// consulted in order and a level only matters when every earlier level
// ties.
func RanksBefore(a, b ContenderScore) bool {
	for _, before := range rankLevels {
		switch {
		case before(a, b):
			return true
		case before(b, a):
			return false
		}
	}
	return false
}

func compareRank(a, b ContenderScore) int {
	switch {
	case RanksBefore(a, b):
		return -1
	case RanksBefore(b, a):
		return 1
	default:
		return 0
	}
}

// RankOrder returns scores sorted best first.
func RankOrder(scores []ContenderScore) []ContenderScore {
	out := slices.Clone(scores)
	slices.SortStableFunc(out, compareRank)
	return out
}

// TurnOrder returns scores sorted by seat.
func TurnOrder(scores []ContenderScore) []ContenderScore {
	out := slices.Clone(scores)
	slices.SortStableFunc(out, func(a, b ContenderScore) int {
		return a.Contender.OrderKey - b.Contender.OrderKey
	})
	return out
}

// Placement is a contender's displayed final standing.
type Placement struct {
	Place int
	Score ContenderScore
}

// SortedPlacements returns every contender in rank order with its place.
//
// A finisher is placed by finishing order. Everyone else takes their 1-based
// rank index, except that a contender whose total equals the previous
// unfinished contender's total shares that contender's place, leaving a gap
// after the tie.
func (r *Round) SortedPlacements() []Placement {
	ranked := RankOrder(r.computeScores())
	out := make([]Placement, 0, len(ranked))

	lastScore := -1
	lastPlace := 0
	for i, s := range ranked {
		switch {
		case s.FinishPosition >= 0:
			out = append(out, Placement{Place: s.FinishPosition + 1, Score: s})
		case s.TotalScore != lastScore:
			lastScore = s.TotalScore
			lastPlace = i + 1
			out = append(out, Placement{Place: lastPlace, Score: s})
		default:
			out = append(out, Placement{Place: lastPlace, Score: s})
		}
	}
	return out
}
