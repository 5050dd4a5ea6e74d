// Package types contains the view shapes shared by the service and its
// transports.
package types

import "time"

// Player is a roster entry.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Rules are the settings a round was created with.
type Rules struct {
	TargetScore              int  `json:"target_score"`
	ResetScore               int  `json:"reset_score"`
	CanBeReset               bool `json:"can_be_reset"`
	MissesForElimination     int  `json:"misses_for_elimination"`
	ContinueUntilAllFinished bool `json:"continue_until_all_finished"`
}

// RuleOverrides holds optional per-round settings; nil fields keep the
// service defaults.
type RuleOverrides struct {
	TargetScore          *int `json:"target_score,omitempty"`
	ResetScore           *int `json:"reset_score,omitempty"`
	MissesForElimination *int `json:"misses_for_elimination,omitempty"`
}

// ContenderStatus is one contender's derived score.
type ContenderStatus struct {
	ID           string `json:"id"`
	PlayerID     string `json:"player_id,omitempty"`
	Name         string `json:"name"`
	Seat         int    `json:"seat"`
	Throws       []int  `json:"throws"`
	TotalScore   int    `json:"total_score"`
	IsInWarning  bool   `json:"is_in_warning"`
	IsEliminated bool   `json:"is_eliminated"`
	IsFinished   bool   `json:"is_finished"`
	// FinishPosition is 0-based and absent until the contender hits the target.
	FinishPosition *int `json:"finish_position,omitempty"`
}

// Round is the full view of a round.
type Round struct {
	ID         string            `json:"id"`
	Date       time.Time         `json:"date"`
	Rules      Rules             `json:"rules"`
	Contenders []ContenderStatus `json:"contenders"`
	// CurrentContenderID is empty for a round without contenders.
	CurrentContenderID string `json:"current_contender_id,omitempty"`
	// NextContenderID is who throws after the current contender, if anyone.
	NextContenderID string `json:"next_contender_id,omitempty"`
	Attempts        int    `json:"attempts"`
	CanUndo         bool   `json:"can_undo"`
	CanRedo         bool   `json:"can_redo"`
	SortByTurn      bool   `json:"sort_by_turn"`
	EndedEarly      bool   `json:"ended_early"`
	HasEnded        bool   `json:"has_ended"`
}

// RoundSummary is a rounds list entry.
type RoundSummary struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	Names    []string  `json:"names"`
	Attempts int       `json:"attempts"`
	HasEnded bool      `json:"has_ended"`
	// Winner is the name placed first once the round has ended.
	Winner string `json:"winner,omitempty"`
}

// Standing is a placed contender.
type Standing struct {
	Place     int             `json:"place"`
	Contender ContenderStatus `json:"contender"`
}

// AwardWinner names a contender who earned an award.
type AwardWinner struct {
	ContenderID string `json:"contender_id"`
	PlayerID    string `json:"player_id,omitempty"`
	Name        string `json:"name"`
}

// Award is one earned achievement of a round.
type Award struct {
	Award   string        `json:"award"`
	Winners []AwardWinner `json:"winners"`
	Count   *int          `json:"count,omitempty"`
}

// AwardCount is how many rounds a player won an award in.
type AwardCount struct {
	Award string `json:"award"`
	Count int    `json:"count"`
}

// PlayerAwards is a player's award history over ended rounds.
type PlayerAwards struct {
	PlayerID string       `json:"player_id"`
	Rounds   int          `json:"rounds"`
	Awards   []AwardCount `json:"awards"`
}

// Total sums every award count.
func (p PlayerAwards) Total() int {
	n := 0
	for _, a := range p.Awards {
		n += a.Count
	}
	return n
}

// AttemptResult is the outcome of submitting a throw.
type AttemptResult struct {
	Round Round `json:"round"`
	// Duplicate is set when the request id was already applied and the
	// throw was not recorded again.
	Duplicate bool `json:"duplicate"`
}
