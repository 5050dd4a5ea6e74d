package service

import (
	"time"

	repository "github.com/okian/molkky/internal/adapters/repository"
	"github.com/okian/molkky/internal/domain/round"
	"github.com/okian/molkky/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the store. Without it the service keeps rounds in memory.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDedupeSize sets how many attempt request ids are remembered.
// Zero or less remembers every id.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		s.dedupeSize = size
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRoundDefaults sets the rules of new rounds before per-round overrides.
func WithRoundDefaults(cfg round.Config) Option {
	return func(s *Service) {
		s.defaults = cfg
	}
}

// WithClock sets the clock used to date rounds.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator sets the generator for player, round and attempt ids.
func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}
