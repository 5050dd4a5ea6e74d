package round

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrNoContenders = errors.New("round has no contenders")
	ErrInvalidScore = errors.New("throw score must be between 0 and 12")
	ErrInvalidState = errors.New("invalid round state")
)
