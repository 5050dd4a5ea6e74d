package round_test

import (
	"fmt"
	"time"

	"github.com/okian/molkky/internal/domain/model"
	"github.com/okian/molkky/internal/domain/round"
)

var fixedDate = time.Date(2024, 5, 13, 18, 30, 0, 0, time.UTC)

// seqIDs returns a deterministic id generator: id-1, id-2, ...
func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func players(names ...string) []model.Player {
	out := make([]model.Player, len(names))
	for i, name := range names {
		out[i] = model.Player{ID: "p-" + name, Name: name}
	}
	return out
}

func newRound(names []string, opts ...round.Option) *round.Round {
	base := []round.Option{round.WithIDGenerator(seqIDs()), round.WithClock(func() time.Time { return fixedDate })}
	return round.New(players(names...), append(base, opts...)...)
}

// throw is one scripted attempt by the contender in seat.
type throw struct {
	seat  int
	score int
}

// scripted builds a round whose history is exactly throws, regardless of
// whose turn it would have been.
func scripted(cfg round.Config, seats int, throws ...throw) *round.Round {
	st := round.State{
		ID:         "round-1",
		Date:       fixedDate,
		Config:     cfg,
		SortByTurn: true,
	}
	for i := 0; i < seats; i++ {
		st.Contenders = append(st.Contenders, model.Contender{
			ID:       fmt.Sprintf("c%d", i),
			Name:     fmt.Sprintf("seat-%d", i),
			OrderKey: i,
		})
	}
	for i, t := range throws {
		st.Attempts = append(st.Attempts, model.Attempt{
			ID:          fmt.Sprintf("a%d", i),
			ContenderID: fmt.Sprintf("c%d", t.seat),
			Score:       t.score,
		})
	}
	r, err := round.Restore(st)
	if err != nil {
		panic(err)
	}
	return r
}

func scoreOf(r *round.Round, seat int) round.ContenderScore {
	for _, s := range r.ContenderScores() {
		if s.Contender.OrderKey == seat {
			return s
		}
	}
	panic(fmt.Sprintf("no contender in seat %d", seat))
}

func record(r *round.Round, scores ...int) {
	for _, s := range scores {
		if _, err := r.RecordAttempt(s); err != nil {
			panic(err)
		}
	}
}

func names(cs []model.Contender) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}
