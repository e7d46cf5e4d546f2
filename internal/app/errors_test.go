package app

import (
	"errors"
	"testing"
)

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *OperationError
		expected string
	}{
		{"nil error", nil, ""},
		{"op only", &OperationError{Op: "undo"}, "undo"},
		{"op and target", &OperationError{Op: "undo", Target: "notes"}, "undo notes"},
		{"with context", &OperationError{Op: "reload", Target: "keymap", Context: "line 3"}, "reload keymap (line 3)"},
		{"full chain", &OperationError{Op: "run", Target: "notes", Err: errors.New("boom")}, "run notes: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.err.Error(); result != tt.expected {
				t.Errorf("Error() = '%s', expected '%s'", result, tt.expected)
			}
		})
	}
}

func TestOperationError_Unwrap(t *testing.T) {
	err := NewOperationError("quit", "", ErrQuit).WithContext("user")
	if !errors.Is(err, ErrQuit) {
		t.Error("expected errors.Is to find ErrQuit")
	}

	var nilErr *OperationError
	if nilErr.Unwrap() != nil || nilErr.WithContext("x") != nil {
		t.Error("expected nil-safe methods")
	}
}
