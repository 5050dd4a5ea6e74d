// Package simulate plays seeded random Mölkky rounds against a running
// scorekeeper over HTTP and checks the results it gets back.
package simulate

import "time"

// Default simulation settings.
const (
	DefaultRounds   = 20
	DefaultPlayers  = 4
	DefaultWorkers  = 4
	DefaultTimeout  = 10 * time.Second
	DefaultUndoRate = 0.1
	DefaultDupRate  = 0.05

	// maxThrowsPerRound stops a round that never ends.
	maxThrowsPerRound = 2000
)

// Config holds configuration for a simulation run.
type Config struct {
	BaseURL  string        // Base URL of the service
	Rounds   int           // Number of rounds to play
	Players  int           // Contenders per round
	Workers  int           // Rounds played concurrently
	Seed     uint64        // Seed for throws and undo decisions
	UndoRate float64       // Chance of an undo/redo pair after a throw
	DupRate  float64       // Chance of resending a throw with the same request id
	Rematch  bool          // Play a rematch after each round and check its seating
	Timeout  time.Duration // HTTP request timeout
	Verbose  bool          // Log every round
}

// Stats holds simulation statistics.
type Stats struct {
	RoundsPlayed   int
	RoundsFinished int
	Rematches      int
	Throws         int
	Duplicates     int
	Undos          int
	Failures       int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}

func (s *Stats) add(o Stats) {
	s.RoundsPlayed += o.RoundsPlayed
	s.RoundsFinished += o.RoundsFinished
	s.Rematches += o.Rematches
	s.Throws += o.Throws
	s.Duplicates += o.Duplicates
	s.Undos += o.Undos
	s.Failures += o.Failures
}
