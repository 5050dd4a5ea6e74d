package service

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/molkky/internal/domain/dedupe"
	"github.com/okian/molkky/internal/domain/round"
	"github.com/okian/molkky/internal/domain/types"
	"github.com/okian/molkky/pkg/logger"
	"github.com/okian/molkky/pkg/metrics"
)

// RecordAttempt scores a throw for whoever is up in the round.
//
// A non-empty requestID makes the call idempotent: a retry with the same id
// returns the current round flagged as a duplicate instead of scoring again.
// A fresh throw discards anything left to redo.
func (s *Service) RecordAttempt(ctx context.Context, roundID, requestID string, score int) (types.AttemptResult, error) {
	start := time.Now()
	s.opMu.Lock()
	defer s.opMu.Unlock()
	if err := s.ready(); err != nil {
		return types.AttemptResult{}, err
	}

	r, err := s.load(ctx, roundID)
	if err != nil {
		recordError("service", err)
		return types.AttemptResult{}, err
	}

	key := ""
	if requestID != "" {
		key = dedupe.Key(roundID, requestID)
		if s.deduper.SeenAndRecord(ctx, key) {
			s.duplicates.Add(1)
			metrics.RecordAttemptDuplicate()
			s.logger.Debug(ctx, "duplicate attempt ignored",
				logger.String("roundID", roundID),
				logger.String("requestID", requestID),
			)
			return types.AttemptResult{Round: roundView(r), Duplicate: true}, nil
		}
	}
	fail := func(err error) (types.AttemptResult, error) {
		if key != "" {
			s.deduper.Unrecord(ctx, key)
		}
		recordError("service", err)
		metrics.RecordErrorLatency("service", "attempt", msSince(start))
		return types.AttemptResult{}, err
	}

	if r.HasGameEnded() {
		return fail(fmt.Errorf("attempt on %s: %w", roundID, ErrRoundEnded))
	}
	thrower, _ := r.CurrentContender()
	a, err := r.RecordAttempt(score)
	if err != nil {
		return fail(err)
	}
	r.ClearUndoStack()
	if err := s.save(ctx, r); err != nil {
		return fail(err)
	}

	s.attemptsApplied.Add(1)
	metrics.RecordAttempt(score)
	metrics.RecordAttemptLatency(msSince(start))
	s.logger.Debug(ctx, "attempt recorded",
		logger.String("roundID", roundID),
		logger.String("attemptID", a.ID),
		logger.String("contender", thrower.Name),
		logger.Int("score", score),
	)
	s.noteFinished(ctx, r)
	return types.AttemptResult{Round: roundView(r)}, nil
}

// Undo takes back the last throw of a round.
func (s *Service) Undo(ctx context.Context, roundID string) (types.Round, error) {
	return s.edit(ctx, roundID, "undo", func(r *round.Round) error {
		r.Undo()
		return nil
	})
}

// Redo replays the most recently undone throw.
func (s *Service) Redo(ctx context.Context, roundID string) (types.Round, error) {
	return s.edit(ctx, roundID, "redo", func(r *round.Round) error {
		r.Redo()
		return nil
	})
}

// ToggleSort switches the contender order of the round view between seats
// and ranking.
func (s *Service) ToggleSort(ctx context.Context, roundID string) (types.Round, error) {
	return s.edit(ctx, roundID, "sort", func(r *round.Round) error {
		r.ToggleSort()
		return nil
	})
}

// SetEndedEarly stops a round by hand, or resumes it.
func (s *Service) SetEndedEarly(ctx context.Context, roundID string, ended bool) (types.Round, error) {
	return s.edit(ctx, roundID, "end", func(r *round.Round) error {
		r.SetEndedEarly(ended)
		return nil
	})
}

func (s *Service) edit(ctx context.Context, roundID, op string, fn func(*round.Round) error) (types.Round, error) {
	r, err := s.mutate(ctx, roundID, op, fn)
	if err != nil {
		recordError("service", err)
		return types.Round{}, err
	}
	return roundView(r), nil
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}
