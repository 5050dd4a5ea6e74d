package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted      = errors.New("service not started")
	ErrInvalidInput    = errors.New("invalid input")
	ErrRoundEnded      = errors.New("round has ended")
	ErrRoundInProgress = errors.New("round is still in progress")
)
