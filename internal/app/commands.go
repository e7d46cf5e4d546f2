package app

import (
	"fmt"

	"github.com/dshills/quill/internal/editor"
	"github.com/dshills/quill/internal/input/key"
)

// Application command names.
const (
	cmdQuit              = "quit"
	cmdKeyboardQuit      = "keyboard-quit"
	cmdUniversalArgument = "universal-argument"
	cmdDigitArgument     = "digit-argument"
	cmdNegativeArgument  = "negative-argument"
	cmdSwitchToBuffer    = "switch-to-buffer"
	cmdKillBuffer        = "kill-buffer"
	cmdOtherSession      = "other-session"
	cmdSplitSession      = "split-session"
	cmdDeleteSession     = "delete-session"
)

func builtinCommands() map[string]CommandFunc {
	return map[string]CommandFunc{
		cmdQuit:              func(*Application, editor.Arg) error { return ErrQuit },
		cmdKeyboardQuit:      (*Application).keyboardQuit,
		cmdUniversalArgument: (*Application).universalArgument,
		cmdDigitArgument:     (*Application).digitArgument,
		cmdNegativeArgument:  (*Application).negativeArgument,
		cmdSwitchToBuffer:    (*Application).switchToBuffer,
		cmdKillBuffer:        (*Application).killBuffer,
		cmdOtherSession:      (*Application).otherSession,
		cmdSplitSession:      (*Application).splitSession,
		cmdDeleteSession:     (*Application).deleteSession,
	}
}

func isArgumentCommand(name string) bool {
	switch name {
	case cmdUniversalArgument, cmdDigitArgument, cmdNegativeArgument:
		return true
	}
	return false
}

// argState accumulates a numeric prefix: C-u multiplies by four, digits
// typed after it replace that with a decimal count, and a leading minus
// negates.
type argState struct {
	active   bool
	count    int
	digits   bool
	negative bool
}

func (s *argState) addDigit(d int) {
	if !s.digits {
		s.count, s.digits = 0, true
	}
	s.count = s.count*10 + d
}

// digit consumes ev as part of the prefix when one is being typed.
func (s *argState) digit(ev key.Event) bool {
	if !s.active {
		return false
	}
	r, ok := ev.Printable()
	switch {
	case !ok:
		return false
	case r >= '0' && r <= '9':
		s.addDigit(int(r - '0'))
		return true
	case r == '-' && !s.digits && !s.negative:
		s.negative = true
		return true
	}
	return false
}

// take returns the finished prefix and clears it.
func (s *argState) take() editor.Arg {
	if !s.active {
		return editor.Arg{}
	}
	n := s.count
	if s.negative {
		if !s.digits {
			n = 1
		}
		n = -n
	}
	*s = argState{}
	return editor.Arg{Count: n, HasCount: true}
}

func (a *Application) keyboardQuit(editor.Arg) error {
	a.keys = nil
	a.arg = argState{}
	if m := a.mini; m != nil {
		if m.cancel != nil {
			m.cancel()
		}
		a.closeMinibuffer()
	}
	a.Whine("Quit")
	return nil
}

func (a *Application) universalArgument(editor.Arg) error {
	switch {
	case !a.arg.active:
		a.arg = argState{active: true, count: 4}
	case !a.arg.digits && !a.arg.negative:
		a.arg.count *= 4
	}
	return nil
}

func (a *Application) digitArgument(arg editor.Arg) error {
	if arg.Key < '0' || arg.Key > '9' {
		return fmt.Errorf("%w: digit-argument needs a digit key", ErrInvalidKey)
	}
	a.arg.active = true
	a.arg.addDigit(int(arg.Key - '0'))
	return nil
}

func (a *Application) negativeArgument(editor.Arg) error {
	a.arg.active = true
	a.arg.negative = !a.arg.negative
	return nil
}

// switchToBuffer asks for a buffer name and shows that buffer in the
// active session, creating it if needed. Empty input keeps the current
// buffer.
func (a *Application) switchToBuffer(editor.Arg) error {
	return a.Ask("Switch to buffer: ", cmdSwitchToBuffer, func(name string) bool {
		if name == "" || len(a.sessions) == 0 {
			return true
		}
		buf, ok := a.buffers.Lookup(name)
		if !ok {
			buf = a.OpenBuffer(name, "")
		}
		old := a.sessions[a.active]
		a.sessions[a.active] = editor.NewEditor(buf, a.sessionOptions()...)
		old.Close()
		return true
	}, nil)
}

// killBuffer closes the active buffer and every session showing it.
func (a *Application) killBuffer(editor.Arg) error {
	e := a.Active()
	if e == nil {
		return ErrNoSession
	}
	buf := e.Buffer()
	for i := len(a.sessions) - 1; i >= 0; i-- {
		if a.sessions[i].Buffer() == buf {
			a.closeSession(i)
		}
	}
	buf.Close()
	a.logger.WithField("buffer", buf.Name()).Info("killed buffer")
	if len(a.sessions) == 0 {
		a.NewSession(a.OpenBuffer(ScratchName, ""))
	}
	return nil
}

func (a *Application) otherSession(editor.Arg) error {
	if len(a.sessions) < 2 {
		a.Whine("No other session")
		return nil
	}
	a.active = (a.active + 1) % len(a.sessions)
	return nil
}

// splitSession opens a second session on the active buffer at the same
// position.
func (a *Application) splitSession(editor.Arg) error {
	e := a.Active()
	if e == nil {
		return ErrNoSession
	}
	s := a.NewSession(e.Buffer())
	s.Goto(e.Point())
	return nil
}

func (a *Application) deleteSession(editor.Arg) error {
	if len(a.sessions) < 2 {
		a.Whine("Attempt to delete the sole session")
		return nil
	}
	a.closeSession(a.active)
	return nil
}
