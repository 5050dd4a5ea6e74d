package repository

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/okian/molkky/internal/domain/model"
	"github.com/okian/molkky/internal/domain/round"
	"github.com/okian/molkky/pkg/logger"
	"github.com/okian/molkky/pkg/metrics"
)

const defaultMetricsUpdateInterval = 5 * time.Second

// MemoryStore keeps everything in maps guarded by a RWMutex. Values are
// copied on the way in and out, so callers never share slices with it.
type MemoryStore struct {
	mu      sync.RWMutex
	rounds  map[string]round.State
	players map[string]model.Player

	metricsUpdateInterval time.Duration
	logger                logger.Logger

	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewMemoryStore constructs an empty store. Its metrics updater runs until
// ctx is done or Close is called.
func NewMemoryStore(ctx context.Context, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		rounds:                make(map[string]round.State),
		players:               make(map[string]model.Player),
		metricsUpdateInterval: defaultMetricsUpdateInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.stopChan = make(chan struct{})
	s.startMetricsUpdater(ctx)
	return s
}

func (s *MemoryStore) SaveRound(_ context.Context, st round.State) error {
	start := time.Now()
	defer func() { metrics.RecordStoreSaveLatency(msSince(start)) }()

	if err := st.Validate(); err != nil {
		metrics.RecordErrorByComponent("repository", "invalid_round")
		return fmt.Errorf("%w: %w", ErrInvalidRound, err)
	}
	s.mu.Lock()
	s.rounds[st.ID] = cloneState(st)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) GetRound(_ context.Context, id string) (round.State, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQueryLatency(msSince(start)) }()

	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.rounds[id]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return round.State{}, fmt.Errorf("round %s: %w", id, ErrNotFound)
	}
	return cloneState(st), nil
}

func (s *MemoryStore) ListRounds(_ context.Context) ([]round.State, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQueryLatency(msSince(start)) }()

	s.mu.RLock()
	out := make([]round.State, 0, len(s.rounds))
	for _, st := range s.rounds {
		out = append(out, cloneState(st))
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b round.State) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (s *MemoryStore) DeleteRound(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rounds[id]; !ok {
		return fmt.Errorf("round %s: %w", id, ErrNotFound)
	}
	delete(s.rounds, id)
	return nil
}

func (s *MemoryStore) SavePlayer(_ context.Context, p model.Player) error {
	if p.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidPlayer)
	}
	s.mu.Lock()
	s.players[p.ID] = p
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) GetPlayer(_ context.Context, id string) (model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[id]
	if !ok {
		return model.Player{}, fmt.Errorf("player %s: %w", id, ErrNotFound)
	}
	return p, nil
}

func (s *MemoryStore) ListPlayers(_ context.Context) ([]model.Player, error) {
	s.mu.RLock()
	out := make([]model.Player, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, p)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b model.Player) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rounds)
}

// Close stops the metrics updater.
func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
	return nil
}

// load replaces the whole content. Used by FileStore at startup.
func (s *MemoryStore) load(rounds []round.State, players []model.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rounds = make(map[string]round.State, len(rounds))
	for _, st := range rounds {
		s.rounds[st.ID] = cloneState(st)
	}
	s.players = make(map[string]model.Player, len(players))
	for _, p := range players {
		s.players[p.ID] = p
	}
}

// peekRound returns the stored round and whether it exists.
func (s *MemoryStore) peekRound(id string) (round.State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.rounds[id]
	return st, ok
}

// putRound sets the round back to st, or removes it when it did not exist.
func (s *MemoryStore) putRound(id string, st round.State, exists bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !exists {
		delete(s.rounds, id)
		return
	}
	s.rounds[id] = st
}

func (s *MemoryStore) peekPlayer(id string) (model.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[id]
	return p, ok
}

func (s *MemoryStore) putPlayer(id string, p model.Player, exists bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !exists {
		delete(s.players, id)
		return
	}
	s.players[id] = p
}

func (s *MemoryStore) startMetricsUpdater(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.metricsUpdateInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.updateMetrics()
			}
		}
	}()
}

func (s *MemoryStore) updateMetrics() {
	s.mu.RLock()
	rounds, players := len(s.rounds), len(s.players)
	s.mu.RUnlock()

	metrics.UpdateStoreRecords("rounds", rounds)
	metrics.UpdateStoreRecords("players", players)
}

func cloneState(st round.State) round.State {
	st.Contenders = slices.Clone(st.Contenders)
	st.Attempts = slices.Clone(st.Attempts)
	st.UndoStack = slices.Clone(st.UndoStack)
	return st
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}
