package editor

import "errors"

// Errors returned by editor operations.
var (
	// ErrInvalidDirection indicates a View direction other than Forward or
	// Backward.
	ErrInvalidDirection = errors.New("invalid direction")

	// ErrCommandPending indicates a prompted command is waiting for input.
	ErrCommandPending = errors.New("command pending input")

	// ErrNoRequest indicates Resume was called without a matching request.
	ErrNoRequest = errors.New("no pending request")

	// ErrUnknownCommand indicates Run was given an unbound command name.
	ErrUnknownCommand = errors.New("unknown command")
)
