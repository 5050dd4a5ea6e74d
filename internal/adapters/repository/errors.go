package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidRound  = errors.New("invalid round")
	ErrInvalidPlayer = errors.New("invalid player")
	ErrPersist       = errors.New("persist store")
)
