package simulate

import (
	"math/rand/v2"
)

// missChance is how often a throw knocks no pin over.
const missChance = 0.2

// thrower produces throws and play decisions from a seeded source.
type thrower struct {
	rng *rand.Rand
}

func newThrower(seed, stream uint64) *thrower {
	return &thrower{rng: rand.New(rand.NewPCG(seed, stream))}
}

// throw returns a score in [0, 12]. Low scores, where several pins fall
// and each counts one, come up more often than single-pin high ones.
func (t *thrower) throw() int {
	if t.rng.Float64() < missChance {
		return 0
	}
	if t.rng.IntN(2) == 0 {
		return 1 + t.rng.IntN(4)
	}
	return 1 + t.rng.IntN(12)
}

// chance reports true with probability p.
func (t *thrower) chance(p float64) bool {
	return p > 0 && t.rng.Float64() < p
}
