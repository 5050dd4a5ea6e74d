// Package scoring implements the running-total rule of a round: throws add
// up towards an exact target, and overshooting it is a bust.
package scoring

// Default scoring configuration constants.
const (
	DefaultTargetScore = 50
	DefaultResetScore  = 25
)

// Option applies a configuration option to Rules.
type Option func(*Rules)

// WithTarget sets the exact score a contender has to reach.
func WithTarget(target int) Option {
	return func(r *Rules) {
		r.Target = target
	}
}

// WithReset makes a bust drop the total back to score.
func WithReset(score int) Option {
	return func(r *Rules) {
		r.CanBeReset = true
		r.ResetScore = score
	}
}

// WithoutReset makes a bust keep the pre-throw total.
func WithoutReset() Option {
	return func(r *Rules) {
		r.CanBeReset = false
	}
}

// Rules holds the settings Apply needs.
type Rules struct {
	Target     int
	CanBeReset bool
	ResetScore int
}

// NewRules creates Rules with the default target and reset behaviour.
func NewRules(opts ...Option) Rules {
	r := Rules{
		Target:     DefaultTargetScore,
		CanBeReset: true,
		ResetScore: DefaultResetScore,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Apply returns the running total after throw under r.
func (r Rules) Apply(total, throw int) int {
	return Apply(total, throw, r.Target, r.CanBeReset, r.ResetScore)
}

// Apply returns the new running total after a throw.
//
// Landing on or below target adds the throw. A contender already sitting on
// target keeps it whatever is thrown. Any other overshoot is a bust: the
// total drops to resetScore when canBeReset, otherwise it stays unchanged.
func Apply(total, throw, target int, canBeReset bool, resetScore int) int {
	candidate := total + throw
	switch {
	case candidate <= target:
		return candidate
	case total == target:
		return total
	case canBeReset:
		return resetScore
	default:
		return total
	}
}

// Fold replays throws from zero and returns the final total.
func (r Rules) Fold(throws []int) int {
	total := 0
	for _, t := range throws {
		total = r.Apply(total, t)
	}
	return total
}
