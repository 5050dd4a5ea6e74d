package round

import (
	"time"

	"github.com/okian/molkky/internal/domain/scoring"
)

// Default round configuration constants.
const (
	DefaultMissesForElimination = 3
)

// Config holds the rules of a round. It is fixed when the round is created.
//
// CanBeEliminated, ResetInsteadOfEliminate, CanExceedTarget and
// AllPlayersGetEqualThrows are carried for clients that display the chosen
// rules; scoring and elimination do not branch on them.
type Config struct {
	TargetScore              int  `json:"target_score" yaml:"target_score"`
	CanBeEliminated          bool `json:"can_be_eliminated" yaml:"can_be_eliminated"`
	MissesForElimination     int  `json:"misses_for_elimination" yaml:"misses_for_elimination"`
	CanBeReset               bool `json:"can_be_reset" yaml:"can_be_reset"`
	ResetScore               int  `json:"reset_score" yaml:"reset_score"`
	ResetInsteadOfEliminate  bool `json:"reset_instead_of_eliminate" yaml:"reset_instead_of_eliminate"`
	CanExceedTarget          bool `json:"can_exceed_target" yaml:"can_exceed_target"`
	ContinueUntilAllFinished bool `json:"continue_until_all_finished" yaml:"continue_until_all_finished"`
	AllPlayersGetEqualThrows bool `json:"all_players_get_equal_throws" yaml:"all_players_get_equal_throws"`
}

// DefaultConfig returns the standard rules: first to exactly 50, bust back
// to 25, three misses in a row and you are out.
func DefaultConfig() Config {
	return Config{
		TargetScore:          scoring.DefaultTargetScore,
		CanBeEliminated:      true,
		MissesForElimination: DefaultMissesForElimination,
		CanBeReset:           true,
		ResetScore:           scoring.DefaultResetScore,
	}
}

// Rules returns the scoring rules derived from c.
func (c Config) Rules() scoring.Rules {
	reset := scoring.WithoutReset()
	if c.CanBeReset {
		reset = scoring.WithReset(c.ResetScore)
	}
	return scoring.NewRules(scoring.WithTarget(c.TargetScore), reset)
}

// Option applies a configuration option to a Round under construction.
// Options are applied in order, so WithConfig should come before the
// single-field overrides.
type Option func(*Round)

// WithConfig replaces the whole rule set.
func WithConfig(cfg Config) Option {
	return func(r *Round) {
		r.config = cfg
	}
}

// WithTargetScore overrides the target score.
func WithTargetScore(score int) Option {
	return func(r *Round) {
		r.config.TargetScore = score
	}
}

// WithResetScore overrides the score a bust resets to.
func WithResetScore(score int) Option {
	return func(r *Round) {
		r.config.ResetScore = score
	}
}

// WithMissesForElimination overrides the number of consecutive misses that
// eliminate a contender.
func WithMissesForElimination(misses int) Option {
	return func(r *Round) {
		r.config.MissesForElimination = misses
	}
}

// WithID sets the round identity instead of generating one.
func WithID(id string) Option {
	return func(r *Round) {
		if id != "" {
			r.id = id
		}
	}
}

// WithClock sets the clock used to stamp the creation date.
func WithClock(now func() time.Time) Option {
	return func(r *Round) {
		if now != nil {
			r.now = now
		}
	}
}

// WithIDGenerator sets the generator for round, contender and attempt ids.
func WithIDGenerator(gen func() string) Option {
	return func(r *Round) {
		if gen != nil {
			r.newID = gen
		}
	}
}
