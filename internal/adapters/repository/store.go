// Package repository persists rounds and the player roster.
package repository

import (
	"context"

	"github.com/okian/molkky/internal/domain/model"
	"github.com/okian/molkky/internal/domain/round"
)

// Store provides read/write access to saved rounds and players.
type Store interface {
	// SaveRound inserts or replaces a round. The state must validate.
	SaveRound(ctx context.Context, st round.State) error
	// GetRound returns ErrNotFound for an unknown id.
	GetRound(ctx context.Context, id string) (round.State, error)
	// ListRounds returns every round, newest first.
	ListRounds(ctx context.Context) ([]round.State, error)
	// DeleteRound returns ErrNotFound for an unknown id.
	DeleteRound(ctx context.Context, id string) error

	SavePlayer(ctx context.Context, p model.Player) error
	GetPlayer(ctx context.Context, id string) (model.Player, error)
	// ListPlayers returns the roster ordered by name, then id.
	ListPlayers(ctx context.Context) ([]model.Player, error)

	// Count returns the number of stored rounds.
	Count(ctx context.Context) int

	Close() error
}
