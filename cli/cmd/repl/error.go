package repl

import "errors"

// Sentinel errors.
var (
	ErrOutOfBounds  = errors.New("index out of range")
	ErrInterrupted  = errors.New("interrupted")
	ErrHistoryEntry = errors.New("malformed history entry")
)
