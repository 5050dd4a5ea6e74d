// Package round implements the scorekeeping engine of a single round: whose
// turn it is, running totals, elimination and finish detection, ranking and
// awards.
//
// A Round is owned by one caller at a time and is not safe for concurrent
// use. Everything derived from it is recomputed from the attempt history on
// each query.
package round

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/okian/molkky/internal/domain/model"
)

// Round is the mutable state of one game.
type Round struct {
	id   string
	date time.Time

	config     Config
	contenders []model.Contender

	attempts   []model.Attempt
	undoStack  []model.Attempt
	current    int
	endedEarly bool
	sortByTurn bool

	newID func() string
	now   func() time.Time
}

func newRound(opts []Option) *Round {
	r := &Round{
		config:     DefaultConfig(),
		sortByTurn: true,
		newID:      uuid.NewString,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.id == "" {
		r.id = r.newID()
	}
	r.date = r.now()
	return r
}

// New creates a round seating players in roster order.
func New(players []model.Player, opts ...Option) *Round {
	r := newRound(opts)
	r.contenders = make([]model.Contender, len(players))
	for i, p := range players {
		r.contenders[i] = model.Contender{
			ID:       r.newID(),
			PlayerID: p.ID,
			Name:     p.Name,
			OrderKey: i,
		}
	}
	return r
}

// NewFromPrevious creates the next round after prev. The last placed
// contender of prev throws first; contender identities and the target,
// reset and elimination settings carry over.
func NewFromPrevious(prev *Round, opts ...Option) *Round {
	carried := func(r *Round) {
		r.config.TargetScore = prev.config.TargetScore
		r.config.ResetScore = prev.config.ResetScore
		r.config.MissesForElimination = prev.config.MissesForElimination
	}
	r := newRound(append([]Option{carried}, opts...))

	placements := prev.SortedPlacements()
	r.contenders = make([]model.Contender, 0, len(placements))
	for i := len(placements) - 1; i >= 0; i-- {
		c := placements[i].Score.Contender
		c.OrderKey = len(r.contenders)
		r.contenders = append(r.contenders, c)
	}
	return r
}

// ID returns the round identity.
func (r *Round) ID() string { return r.id }

// Date returns when the round was created.
func (r *Round) Date() time.Time { return r.date }

// Config returns the round's rules.
func (r *Round) Config() Config { return r.config }

// Contenders returns the contenders in seating order.
func (r *Round) Contenders() []model.Contender { return slices.Clone(r.contenders) }

// Attempts returns the committed attempt history, oldest first.
func (r *Round) Attempts() []model.Attempt { return slices.Clone(r.attempts) }

// UndoStack returns the undone attempts, most recently undone last.
func (r *Round) UndoStack() []model.Attempt { return slices.Clone(r.undoStack) }

// CurrentContenderIndex returns the seat index of the contender to throw.
func (r *Round) CurrentContenderIndex() int { return r.current }

// EndedEarly reports whether the round was stopped manually.
func (r *Round) EndedEarly() bool { return r.endedEarly }

// SortByTurn reports whether ContenderScores is in seating order.
func (r *Round) SortByTurn() bool { return r.sortByTurn }

func (r *Round) indexOf(contenderID string) int {
	return slices.IndexFunc(r.contenders, func(c model.Contender) bool {
		return c.ID == contenderID
	})
}
