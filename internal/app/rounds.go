package service

import (
	"context"
	"fmt"

	"github.com/okian/molkky/internal/domain/model"
	"github.com/okian/molkky/internal/domain/round"
	"github.com/okian/molkky/internal/domain/types"
	"github.com/okian/molkky/pkg/logger"
	"github.com/okian/molkky/pkg/metrics"
)

// CreateRound seats the given players in order and starts a round with the
// service defaults and any overrides.
func (s *Service) CreateRound(ctx context.Context, playerIDs []string, o types.RuleOverrides) (types.Round, error) {
	if err := s.ready(); err != nil {
		return types.Round{}, err
	}
	if len(playerIDs) == 0 {
		return types.Round{}, fmt.Errorf("%w: a round needs at least one player", ErrInvalidInput)
	}

	players := make([]model.Player, 0, len(playerIDs))
	seen := make(map[string]struct{}, len(playerIDs))
	for _, id := range playerIDs {
		if _, dup := seen[id]; dup {
			return types.Round{}, fmt.Errorf("%w: player %s seated twice", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
		p, err := s.store.GetPlayer(ctx, id)
		if err != nil {
			recordError("service", err)
			return types.Round{}, err
		}
		players = append(players, p)
	}

	cfg, err := applyOverrides(s.defaults, o)
	if err != nil {
		return types.Round{}, err
	}

	r := round.New(players, append(s.roundOptions(), round.WithConfig(cfg))...)
	if err := s.save(ctx, r); err != nil {
		return types.Round{}, err
	}
	metrics.RecordRoundCreated("new")
	s.logger.Info(ctx, "round created",
		logger.String("roundID", r.ID()),
		logger.Int("contenders", len(players)),
		logger.Int("targetScore", cfg.TargetScore),
	)
	return roundView(r), nil
}

// applyOverrides validates the rules a round would be created with.
func applyOverrides(cfg round.Config, o types.RuleOverrides) (round.Config, error) {
	if o.TargetScore != nil {
		cfg.TargetScore = *o.TargetScore
	}
	if o.ResetScore != nil {
		cfg.ResetScore = *o.ResetScore
	}
	if o.MissesForElimination != nil {
		cfg.MissesForElimination = *o.MissesForElimination
	}
	switch {
	case cfg.TargetScore < 1:
		return cfg, fmt.Errorf("%w: target score must be positive", ErrInvalidInput)
	case cfg.CanBeReset && (cfg.ResetScore < 0 || cfg.ResetScore >= cfg.TargetScore):
		return cfg, fmt.Errorf("%w: reset score must be at least 0 and below the target", ErrInvalidInput)
	case cfg.MissesForElimination < 1:
		return cfg, fmt.Errorf("%w: misses for elimination must be positive", ErrInvalidInput)
	}
	return cfg, nil
}

// Rematch starts the next round after an ended one: the same contenders in
// reverse finishing order with the same target, reset and elimination
// settings.
func (s *Service) Rematch(ctx context.Context, roundID string) (types.Round, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	if err := s.ready(); err != nil {
		return types.Round{}, err
	}

	prev, err := s.load(ctx, roundID)
	if err != nil {
		recordError("service", err)
		return types.Round{}, err
	}
	if !prev.HasGameEnded() {
		recordError("service", ErrRoundInProgress)
		return types.Round{}, fmt.Errorf("rematch of %s: %w", roundID, ErrRoundInProgress)
	}

	pc := prev.Config()
	next := round.NewFromPrevious(prev, append(s.roundOptions(),
		round.WithConfig(s.defaults),
		round.WithTargetScore(pc.TargetScore),
		round.WithResetScore(pc.ResetScore),
		round.WithMissesForElimination(pc.MissesForElimination),
	)...)
	if err := s.save(ctx, next); err != nil {
		return types.Round{}, err
	}
	metrics.RecordRoundCreated("rematch")
	s.logger.Info(ctx, "rematch created", logger.String("roundID", next.ID()), logger.String("previousID", roundID))
	return roundView(next), nil
}

// GetRound returns the full view of a round.
func (s *Service) GetRound(ctx context.Context, id string) (types.Round, error) {
	if err := s.ready(); err != nil {
		return types.Round{}, err
	}
	r, err := s.load(ctx, id)
	if err != nil {
		recordError("service", err)
		return types.Round{}, err
	}
	return roundView(r), nil
}

// ListRounds returns every round, newest first.
func (s *Service) ListRounds(ctx context.Context) ([]types.RoundSummary, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	states, err := s.store.ListRounds(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]types.RoundSummary, 0, len(states))
	for _, st := range states {
		r, err := round.Restore(st)
		if err != nil {
			s.logger.Warn(ctx, "skipping unreadable round", logger.String("roundID", st.ID), logger.Error(err))
			continue
		}
		out = append(out, summaryView(r))
	}
	return out, nil
}

// DeleteRound removes a round.
func (s *Service) DeleteRound(ctx context.Context, id string) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}

	if err := s.store.DeleteRound(ctx, id); err != nil {
		recordError("service", err)
		return err
	}
	delete(s.finished, id)
	s.logger.Info(ctx, "round deleted", logger.String("roundID", id))
	return nil
}

// Standings returns the placed contenders of a round, best first.
func (s *Service) Standings(ctx context.Context, id string) ([]types.Standing, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	r, err := s.load(ctx, id)
	if err != nil {
		recordError("service", err)
		return nil, err
	}
	return standingsView(r), nil
}

// Awards returns the awards earned so far in a round.
func (s *Service) Awards(ctx context.Context, id string) ([]types.Award, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	r, err := s.load(ctx, id)
	if err != nil {
		recordError("service", err)
		return nil, err
	}
	return awardsView(r), nil
}
