package editor

import (
	"fmt"
	"maps"
	"slices"
)

// Command names.
const (
	cmdSelfInsert           = "self-insert"
	cmdMove                 = "move"
	cmdLineMove             = "line-move"
	cmdFindCharacter        = "find-character"
	cmdForwardChar          = "forward-char"
	cmdBackwardChar         = "backward-char"
	cmdNextLine             = "next-line"
	cmdPreviousLine         = "previous-line"
	cmdBeginningOfLine      = "beginning-of-line"
	cmdEndOfLine            = "end-of-line"
	cmdForwardWord          = "forward-word"
	cmdBackwardWord         = "backward-word"
	cmdBeginningOfBuffer    = "beginning-of-buffer"
	cmdEndOfBuffer          = "end-of-buffer"
	cmdSetMark              = "set-mark"
	cmdExchangePointAndMark = "exchange-point-and-mark"
	cmdPopMark              = "pop-mark"
	cmdDeleteForward        = "delete-forward"
	cmdDeleteBackward       = "delete-backward"
	cmdNewLine              = "newline"
	cmdInsertTab            = "insert-tab"
	cmdKillRegion           = "kill-region"
	cmdKillLine             = "kill-line"
	cmdCopyRegion           = "copy-region"
	cmdYank                 = "yank"
	cmdYankPop              = "yank-pop"
	cmdUndo                 = "undo"
	cmdFill                 = "fill"
	cmdSetFillColumn        = "set-fill-column"
	cmdCommit               = "commit"
	cmdPreviousHistory      = "previous-history"
	cmdNextHistory          = "next-history"
)

// Arg carries the numeric prefix and the key that invoked a command.
type Arg struct {
	Count    int
	HasCount bool
	Key      rune
}

// N returns the count, defaulting to one.
func (a Arg) N() int {
	if a.HasCount {
		return a.Count
	}
	return 1
}

// CommandFunc implements a named command. Prompted commands return the
// request they are waiting on.
type CommandFunc func(arg Arg) *Request

// simple adapts a command that never prompts.
func simple(fn func(Arg)) CommandFunc {
	return func(arg Arg) *Request {
		fn(arg)
		return nil
	}
}

func (e *Editor) defaultCommands() map[string]CommandFunc {
	return map[string]CommandFunc{
		cmdSelfInsert: simple(func(a Arg) {
			for range max(a.N(), 0) {
				e.SelfInsert(a.Key)
			}
		}),
		cmdForwardChar:       simple(func(a Arg) { e.Move(a.N()) }),
		cmdBackwardChar:      simple(func(a Arg) { e.Move(-a.N()) }),
		cmdNextLine:          simple(func(a Arg) { e.LineMove(a.N(), true) }),
		cmdPreviousLine:      simple(func(a Arg) { e.LineMove(-a.N(), true) }),
		cmdBeginningOfLine:   simple(func(Arg) { e.BeginningOfLine() }),
		cmdEndOfLine:         simple(func(Arg) { e.EndOfLine() }),
		cmdForwardWord:       simple(func(a Arg) { e.WordForward(a.N()) }),
		cmdBackwardWord:      simple(func(a Arg) { e.WordBackward(a.N()) }),
		cmdBeginningOfBuffer: simple(func(Arg) { e.BeginningOfBuffer() }),
		cmdEndOfBuffer:       simple(func(Arg) { e.EndOfBuffer() }),
		cmdSetMark:           simple(func(Arg) { e.SetMark() }),
		cmdExchangePointAndMark: simple(func(Arg) {
			e.ExchangePointAndMark()
		}),
		cmdPopMark:        simple(func(Arg) { e.PopMark() }),
		cmdDeleteForward:  simple(func(a Arg) { e.DeleteForward(a.N()) }),
		cmdDeleteBackward: simple(func(a Arg) { e.DeleteBackward(a.N()) }),
		cmdNewLine: simple(func(a Arg) {
			for range max(a.N(), 0) {
				e.NewLine()
			}
		}),
		cmdInsertTab:   simple(func(Arg) { e.InsertTab() }),
		cmdKillRegion:  simple(func(Arg) { e.KillRegion() }),
		cmdKillLine:    simple(func(Arg) { e.KillToEndOfLine() }),
		cmdCopyRegion:  simple(func(Arg) { e.CopyRegion() }),
		cmdYank:        simple(func(Arg) { e.Yank() }),
		cmdYankPop:     simple(func(Arg) { e.YankPop() }),
		cmdUndo:        simple(func(Arg) { e.Undo() }),
		cmdFill:        simple(func(Arg) { e.Fill() }),
		cmdSetFillColumn: func(a Arg) *Request {
			if a.HasCount {
				n := a.Count
				return e.SetFillColumn(&n)
			}
			return e.SetFillColumn(nil)
		},
	}
}

// Bind installs fn under name, replacing any existing command.
func (e *Editor) Bind(name string, fn CommandFunc) {
	e.commands[name] = fn
}

// Commands returns the bound command names in sorted order.
func (e *Editor) Commands() []string {
	return slices.Sorted(maps.Keys(e.commands))
}

// Run executes the named command. While a prompted command is parked
// every command fails with ErrCommandPending.
func (e *Editor) Run(name string, arg Arg) (*Request, error) {
	if e.pending != nil {
		return nil, ErrCommandPending
	}
	fn, ok := e.commands[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	e.opts.logger.Debug("run %s (count %d)", name, arg.N())
	var req *Request
	e.Command(name, func() {
		req = fn(arg)
	})
	return req, nil
}
