package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/molkky/internal/domain/model"
	"github.com/okian/molkky/internal/domain/round"
	"github.com/okian/molkky/internal/domain/types"
	"github.com/okian/molkky/pkg/logger"
)

// maxNameLength bounds player names in runes.
const maxNameLength = 64

// CreatePlayer adds a player to the roster.
func (s *Service) CreatePlayer(ctx context.Context, name string) (types.Player, error) {
	if err := s.ready(); err != nil {
		return types.Player{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > maxNameLength {
		return types.Player{}, fmt.Errorf("%w: player name must be 1 to %d characters", ErrInvalidInput, maxNameLength)
	}

	p := model.Player{ID: s.newID(), Name: name}
	if err := s.store.SavePlayer(ctx, p); err != nil {
		recordError("service", err)
		return types.Player{}, err
	}
	s.logger.Info(ctx, "player created", logger.String("playerID", p.ID), logger.String("name", p.Name))
	return playerView(p), nil
}

// ListPlayers returns the roster ordered by name.
func (s *Service) ListPlayers(ctx context.Context) ([]types.Player, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	players, err := s.store.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]types.Player, len(players))
	for i, p := range players {
		out[i] = playerView(p)
	}
	return out, nil
}

// PlayerAwards tallies, for every award, the ended rounds in which the
// player earned it. Awards never won are listed with a zero count.
func (s *Service) PlayerAwards(ctx context.Context, playerID string) (types.PlayerAwards, error) {
	if err := s.ready(); err != nil {
		return types.PlayerAwards{}, err
	}
	if _, err := s.store.GetPlayer(ctx, playerID); err != nil {
		recordError("service", err)
		return types.PlayerAwards{}, err
	}
	states, err := s.store.ListRounds(ctx)
	if err != nil {
		return types.PlayerAwards{}, err
	}

	counts := make(map[round.Award]int)
	played := 0
	for _, st := range states {
		r, err := round.Restore(st)
		if err != nil || !r.HasGameEnded() || !seats(r, playerID) {
			continue
		}
		played++
		for _, a := range r.Awards() {
			for _, w := range a.Winners {
				if w.PlayerID == playerID {
					counts[a.Award]++
					break
				}
			}
		}
	}

	out := types.PlayerAwards{PlayerID: playerID, Rounds: played}
	for _, a := range round.AllAwards() {
		out.Awards = append(out.Awards, types.AwardCount{Award: string(a), Count: counts[a]})
	}
	return out, nil
}

func seats(r *round.Round, playerID string) bool {
	for _, c := range r.Contenders() {
		if c.PlayerID == playerID {
			return true
		}
	}
	return false
}
