package simulate

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/molkky/internal/domain/types"
	"github.com/okian/molkky/pkg/logger"
)

// ErrFailedRounds is returned when at least one simulated round failed.
var ErrFailedRounds = errors.New("simulated rounds failed")

// Run plays cfg.Rounds rounds against the service and returns what happened.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	log := logger.Named("simulate")
	stats := &Stats{StartTime: time.Now()}
	client := NewClient(cfg.BaseURL, cfg.Timeout)

	log.Info(ctx, "starting simulation",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("rounds", cfg.Rounds),
		logger.Int("players", cfg.Players),
		logger.Int("workers", cfg.Workers),
		logger.Int64("seed", int64(cfg.Seed)),
		logger.Bool("rematch", cfg.Rematch),
	)

	if err := client.Health(ctx); err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}

	workers := max(cfg.Workers, 1)
	jobs := make(chan int, workers)
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				rs, err := playRound(ctx, client, cfg, idx)
				if err != nil {
					rs.Failures++
					log.Error(ctx, "round failed", logger.Int("round", idx), logger.Error(err))
				} else if cfg.Verbose {
					log.Info(ctx, "round verified", logger.Int("round", idx), logger.Int("throws", rs.Throws))
				}
				mu.Lock()
				stats.add(rs)
				mu.Unlock()
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := 0; i < cfg.Rounds; i++ {
			select {
			case <-ctx.Done():
				return
			case jobs <- i:
			}
		}
	}()
	wg.Wait()

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, log, stats)

	if stats.Failures > 0 {
		return stats, fmt.Errorf("%w: %d of %d", ErrFailedRounds, stats.Failures, stats.RoundsPlayed)
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}
	return stats, nil
}

// playRound plays one round to its end, then optionally its rematch.
func playRound(ctx context.Context, c *Client, cfg *Config, idx int) (Stats, error) {
	var rs Stats
	t := newThrower(cfg.Seed, uint64(idx))

	ids := make([]string, cfg.Players)
	for i := range ids {
		p, err := c.CreatePlayer(ctx, fmt.Sprintf("sim-%d-%d", idx, i))
		if err != nil {
			return rs, err
		}
		ids[i] = p.ID
	}
	r, err := c.CreateRound(ctx, ids)
	if err != nil {
		return rs, err
	}
	rs.RoundsPlayed++

	r, err = playToEnd(ctx, c, cfg, t, r, &rs)
	if err != nil {
		return rs, err
	}
	standings, err := c.Standings(ctx, r.ID)
	if err != nil {
		return rs, err
	}
	if err := checkStandings(standings, len(r.Contenders)); err != nil {
		return rs, err
	}
	rs.RoundsFinished++

	if !cfg.Rematch {
		return rs, nil
	}
	next, err := c.Rematch(ctx, r.ID)
	if err != nil {
		return rs, err
	}
	if err := checkRematch(standings, next); err != nil {
		return rs, err
	}
	rs.Rematches++
	return rs, nil
}

// playToEnd throws until the round is over, mixing in retried submissions
// and undo/redo pairs.
func playToEnd(ctx context.Context, c *Client, cfg *Config, t *thrower, r types.Round, rs *Stats) (types.Round, error) {
	for !r.HasEnded {
		if err := ctx.Err(); err != nil {
			return r, err
		}
		if r.Attempts >= maxThrowsPerRound {
			_, _ = c.End(ctx, r.ID)
			return r, fmt.Errorf("%w: round %s still running after %d throws", ErrInvariant, r.ID, r.Attempts)
		}

		score := t.throw()
		reqID := uuid.NewString()
		res, err := c.Attempt(ctx, r.ID, reqID, score)
		if err != nil {
			return r, err
		}
		if res.Duplicate || res.Round.Attempts != r.Attempts+1 {
			return r, fmt.Errorf("%w: fresh throw %s not scored", ErrInvariant, reqID)
		}
		rs.Throws++
		r = res.Round
		if err := checkRound(r); err != nil {
			return r, err
		}

		if t.chance(cfg.DupRate) {
			again, err := c.Attempt(ctx, r.ID, reqID, score)
			if err != nil {
				return r, err
			}
			if !again.Duplicate || again.Round.Attempts != r.Attempts {
				return r, fmt.Errorf("%w: retried throw %s scored twice", ErrInvariant, reqID)
			}
			rs.Duplicates++
		}

		if t.chance(cfg.UndoRate) {
			undone, err := c.Undo(ctx, r.ID)
			if err != nil {
				return r, err
			}
			redone, err := c.Redo(ctx, r.ID)
			if err != nil {
				return r, err
			}
			if err := checkUndoRedo(r, undone, redone); err != nil {
				return r, err
			}
			rs.Undos++
			r = redone
		}
	}
	return r, nil
}

// displayFinalStats logs the final simulation statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var throwsPerSecond float64
	if stats.Duration > 0 {
		throwsPerSecond = float64(stats.Throws) / stats.Duration.Seconds()
	}
	log.Info(ctx, "final statistics",
		logger.Int("roundsPlayed", stats.RoundsPlayed),
		logger.Int("roundsFinished", stats.RoundsFinished),
		logger.Int("rematches", stats.Rematches),
		logger.Int("throws", stats.Throws),
		logger.Int("duplicates", stats.Duplicates),
		logger.Int("undos", stats.Undos),
		logger.Int("failures", stats.Failures),
		logger.Duration("duration", stats.Duration),
		logger.Float64("throwsPerSecond", throwsPerSecond),
	)
}
