// Package model contains domain models passed between layers.
package model

// Score bounds for a single throw. A throw knocks over pins worth 1..12,
// or nothing at all.
const (
	MissScore     = 0
	MaxThrowScore = 12
)

// Player is a roster entry known to the store across rounds.
type Player struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Contender is a seated participant of one round.
// OrderKey is the 0-based seat; it fixes the cyclic turn order and is
// the final tie-break when ranking.
type Contender struct {
	ID       string `json:"id" yaml:"id"`
	PlayerID string `json:"player_id,omitempty" yaml:"player_id,omitempty"`
	Name     string `json:"name" yaml:"name"`
	OrderKey int    `json:"order_key" yaml:"order_key"`
}

// Attempt is one scored throw by one contender.
type Attempt struct {
	ID          string `json:"id" yaml:"id"`
	ContenderID string `json:"contender_id" yaml:"contender_id"`
	Score       int    `json:"score" yaml:"score"`
}

// IsMiss reports whether the throw knocked over no pins.
func (a Attempt) IsMiss() bool { return a.Score == MissScore }

// ValidScore reports whether score is a possible throw result.
func ValidScore(score int) bool {
	return score >= MissScore && score <= MaxThrowScore
}
