package repository_test

import (
	"fmt"
	"time"

	"github.com/okian/molkky/internal/domain/model"
	"github.com/okian/molkky/internal/domain/round"
	"github.com/okian/molkky/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

var baseDate = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// playedState returns a valid round created minutesLater after baseDate with
// a few throws.
func playedState(id string, minutesLater int) round.State {
	n := 0
	r := round.New(
		[]model.Player{{ID: "p1", Name: "ann"}, {ID: "p2", Name: "bob"}},
		round.WithID(id),
		round.WithClock(func() time.Time { return baseDate.Add(time.Duration(minutesLater) * time.Minute) }),
		round.WithIDGenerator(func() string { n++; return fmt.Sprintf("%s-%d", id, n) }),
	)
	for _, s := range []int{5, 0, 12} {
		if _, err := r.RecordAttempt(s); err != nil {
			panic(err)
		}
	}
	r.Undo()
	return r.Snapshot()
}
