package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/molkky/internal/simulate"
	"github.com/okian/molkky/pkg/logger"
)

const defaultRunTimeout = 10 * time.Minute

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:9080", "Base URL of the service")
		rounds   = flag.Int("rounds", simulate.DefaultRounds, "Number of rounds to play")
		players  = flag.Int("players", simulate.DefaultPlayers, "Contenders per round")
		workers  = flag.Int("workers", simulate.DefaultWorkers, "Rounds played concurrently")
		seed     = flag.Uint64("seed", uint64(time.Now().UnixNano()), "Seed for throws and undo decisions")
		undoRate = flag.Float64("undo", simulate.DefaultUndoRate, "Chance of an undo/redo pair after a throw")
		dupRate  = flag.Float64("dup", simulate.DefaultDupRate, "Chance of resending a throw with the same request id")
		rematch  = flag.Bool("rematch", true, "Play a rematch after each round")
		timeout  = flag.Duration("timeout", simulate.DefaultTimeout, "HTTP request timeout")
		jsonLogs = flag.Bool("json", false, "Log JSON lines")
		verbose  = flag.Bool("verbose", false, "Log every round")
	)
	flag.Parse()

	if err := logger.Init(logger.WithJSON(*jsonLogs)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultRunTimeout)
	defer cancel()

	cfg := &simulate.Config{
		BaseURL:  *baseURL,
		Rounds:   *rounds,
		Players:  *players,
		Workers:  *workers,
		Seed:     *seed,
		UndoRate: *undoRate,
		DupRate:  *dupRate,
		Rematch:  *rematch,
		Timeout:  *timeout,
		Verbose:  *verbose,
	}
	if _, err := simulate.Run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "simulation failed", logger.Error(err))
		os.Exit(1)
	}
}
