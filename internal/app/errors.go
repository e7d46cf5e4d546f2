package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrQuit signals a normal exit.
	ErrQuit = errors.New("quit requested")

	// ErrNoSession indicates there is no session to send keys to.
	ErrNoSession = errors.New("no session")

	// ErrUnboundKey indicates a complete key sequence with no binding.
	ErrUnboundKey = errors.New("key is undefined")

	// ErrInvalidKey indicates a key description that cannot be parsed.
	ErrInvalidKey = errors.New("invalid key")

	// ErrInvalidLogLevel indicates an unknown log level name.
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrCommandExists indicates a second registration under one name.
	ErrCommandExists = errors.New("command already registered")
)

// OperationError records which operation failed and on what.
type OperationError struct {
	Op      string // command or operation, e.g. "set-fill-column"
	Target  string // buffer name or key sequence
	Context string
	Err     error
}

// NewOperationError creates an OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

// WithContext sets extra detail. Safe on a nil receiver.
func (e *OperationError) WithContext(ctx string) *OperationError {
	if e == nil {
		return nil
	}
	e.Context = ctx
	return e
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Context != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Context)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
