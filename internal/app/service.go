// Package service owns rounds and players on behalf of the HTTP API: it
// loads a round, applies one edit through the round engine and saves it
// back, one edit at a time.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	repository "github.com/okian/molkky/internal/adapters/repository"
	"github.com/okian/molkky/internal/domain/dedupe"
	"github.com/okian/molkky/internal/domain/round"
	"github.com/okian/molkky/pkg/logger"
	"github.com/okian/molkky/pkg/metrics"
)

// Service implements the API dependencies for the scorekeeper.
type Service struct {
	mu sync.RWMutex
	// opMu serializes every load-edit-save cycle.
	opMu sync.Mutex

	store     repository.Store
	ownsStore bool
	deduper   dedupe.Deduper

	dedupeSize int
	defaults   round.Config
	newID      func() string
	now        func() time.Time

	// finished holds rounds already counted as finished.
	finished map[string]struct{}

	attemptsApplied atomic.Int64
	duplicates      atomic.Int64
	roundsFinished  atomic.Int64

	started bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		dedupeSize: dedupe.DefaultMaxSize,
		defaults:   round.DefaultConfig(),
		newID:      uuid.NewString,
		now:        time.Now,
		finished:   make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	s.logger.Info(ctx, "starting scorekeeper service...")

	if s.store == nil || s.ownsStore {
		s.store = repository.NewMemoryStore(ctx, repository.WithLogger(s.logger))
		s.ownsStore = true
		s.logger.Info(ctx, "using memory store")
	}
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))

	s.stopCh = make(chan struct{})
	s.startGaugeUpdater(ctx)

	s.started = true
	s.logger.Info(ctx, "scorekeeper service started",
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Int("targetScore", s.defaults.TargetScore),
		logger.Int("resetScore", s.defaults.ResetScore),
		logger.Int("missesForElimination", s.defaults.MissesForElimination),
	)
	return nil
}

// Stop gracefully shuts down the service. It waits for the edit in flight,
// if any; edits queued behind it fail with ErrNotStarted. A store passed in
// with WithStore is left open for its owner.
func (s *Service) Stop() {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.logger.Info(context.Background(), "stopping scorekeeper service...")

	close(s.stopCh)
	s.wg.Wait()

	// The closed store stays referenced for reads already past ready();
	// Start replaces it.
	if s.ownsStore {
		_ = s.store.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "scorekeeper service stopped")
}

// ready reports whether the service is running. Edits call it with opMu
// held so that Stop cannot close the store underneath them.
func (s *Service) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

// startGaugeUpdater keeps the population gauges fresh.
func (s *Service) startGaugeUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(metrics.RefreshInterval())
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopCh:
				return
			case <-ticker.C:
				s.updateGauges(ctx)
			}
		}
	}()
}

func (s *Service) updateGauges(ctx context.Context) {
	states, err := s.store.ListRounds(ctx)
	if err != nil {
		return
	}
	active := 0
	for _, st := range states {
		if r, err := round.Restore(st); err == nil && !r.HasGameEnded() {
			active++
		}
	}
	players, _ := s.store.ListPlayers(ctx)

	metrics.UpdateRoundsActive(active)
	metrics.UpdatePlayersTotal(len(players))
	metrics.UpdateDedupeSize(s.deduper.Size())
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":         s.started,
		"dedupeSize":      s.dedupeSize,
		"attemptsApplied": s.attemptsApplied.Load(),
		"duplicates":      s.duplicates.Load(),
		"roundsFinished":  s.roundsFinished.Load(),
	}
	if s.started {
		ctx := context.Background()
		players, _ := s.store.ListPlayers(ctx)
		stats["rounds"] = s.store.Count(ctx)
		stats["players"] = len(players)
		stats["dedupeEntries"] = s.deduper.Size()
		metrics.UpdatePlayersTotal(len(players))
		metrics.UpdateDedupeSize(s.deduper.Size())
	}
	return stats
}

// load restores a stored round. New ids and dates come from the service.
func (s *Service) load(ctx context.Context, id string) (*round.Round, error) {
	st, err := s.store.GetRound(ctx, id)
	if err != nil {
		return nil, err
	}
	return round.Restore(st, s.roundOptions()...)
}

func (s *Service) roundOptions() []round.Option {
	return []round.Option{round.WithIDGenerator(s.newID), round.WithClock(s.now)}
}

func (s *Service) save(ctx context.Context, r *round.Round) error {
	if err := s.store.SaveRound(ctx, r.Snapshot()); err != nil {
		s.logger.Error(ctx, "failed to save round", logger.String("roundID", r.ID()), logger.Error(err))
		return fmt.Errorf("save round %s: %w", r.ID(), err)
	}
	return nil
}

// noteFinished counts r as finished the first time it is seen over.
// Must be called with opMu held.
func (s *Service) noteFinished(ctx context.Context, r *round.Round) {
	if !r.HasGameEnded() {
		return
	}
	if _, ok := s.finished[r.ID()]; ok {
		return
	}
	s.finished[r.ID()] = struct{}{}
	s.roundsFinished.Add(1)
	metrics.RecordRoundFinished()

	fields := []logger.Field{logger.String("roundID", r.ID()), logger.Bool("endedEarly", r.EndedEarly())}
	if ps := r.SortedPlacements(); len(ps) > 0 {
		fields = append(fields, logger.String("winner", ps[0].Score.Contender.Name))
	}
	s.logger.Info(ctx, "round finished", fields...)
}

// mutate runs one edit of a stored round and saves the result.
func (s *Service) mutate(ctx context.Context, id, op string, edit func(*round.Round) error) (*round.Round, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	if err := s.ready(); err != nil {
		return nil, err
	}

	r, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := edit(r); err != nil {
		return nil, err
	}
	if err := s.save(ctx, r); err != nil {
		return nil, err
	}
	metrics.RecordRoundOperation(op)
	s.noteFinished(ctx, r)
	s.logger.Debug(ctx, "round updated", logger.String("roundID", id), logger.String("op", op))
	return r, nil
}

func recordError(component string, err error) {
	kind := "internal"
	switch {
	case errors.Is(err, repository.ErrNotFound):
		kind = "not_found"
	case errors.Is(err, ErrInvalidInput), errors.Is(err, round.ErrInvalidScore):
		kind = "invalid_input"
	case errors.Is(err, ErrRoundEnded), errors.Is(err, ErrRoundInProgress):
		kind = "conflict"
	}
	metrics.RecordErrorByComponent(component, kind)
}
