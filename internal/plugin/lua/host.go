package lua

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/quill/internal/app"
	"github.com/dshills/quill/internal/editor"
	"github.com/dshills/quill/internal/killring"
)

// CommandEval is the command that evaluates Lua typed in the minibuffer.
const CommandEval = "eval-lua"

// ErrNoSession is raised in Lua when an editing function runs with no
// session open.
var ErrNoSession = errors.New("no active session")

// Host runs scripts against an application.
type Host struct {
	app    *app.Application
	state  *State
	logger *app.Logger
}

// NewHost creates a host, installs the quill table and registers
// eval-lua with a.
func NewHost(a *app.Application, opts ...StateOption) (*Host, error) {
	h := &Host{
		app:    a,
		logger: a.Logger().WithComponent("lua"),
	}
	opts = append([]StateOption{WithPrint(func(s string) { h.logger.Info("%s", s) })}, opts...)
	h.state = NewState(opts...)
	h.state.RegisterModule("quill", h.api())

	if err := a.RegisterCommand(CommandEval, h.evalCommand); err != nil {
		h.state.Close()
		return nil, err
	}
	return h, nil
}

// State returns the underlying Lua state.
func (h *Host) State() *State {
	return h.state
}

// LoadScript runs the script at path.
func (h *Host) LoadScript(path string) error {
	if err := h.state.DoFile(path); err != nil {
		return app.NewOperationError("load", path, err)
	}
	h.logger.WithField("script", path).Info("loaded script")
	return nil
}

// Eval runs a chunk of Lua.
func (h *Host) Eval(code string) error {
	if err := h.state.DoString(code); err != nil {
		return app.NewOperationError("eval", "lua", err)
	}
	return nil
}

// Close releases the Lua state.
func (h *Host) Close() {
	h.state.Close()
}

func (h *Host) evalCommand(a *app.Application, _ editor.Arg) error {
	return a.Ask("Eval: ", CommandEval, func(code string) bool {
		if err := h.Eval(code); err != nil {
			h.logger.Warn("%v", err)
			a.Whine(err.Error())
		}
		return true
	}, nil)
}

// session returns the active session or raises a Lua error.
func (h *Host) session(L *lua.LState) *editor.Editor {
	e := h.app.Active()
	if e == nil {
		L.RaiseError("%v", ErrNoSession)
	}
	return e
}

func (h *Host) api() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"insert":      h.insert,
		"delete":      h.delete,
		"move":        h.move,
		"goto_point":  h.gotoPoint,
		"point":       h.point,
		"mark":        h.mark,
		"set_mark":    h.setMark,
		"text":        h.text,
		"slice":       h.slice,
		"line":        h.line,
		"char":        h.char,
		"buffer_name": h.bufferName,
		"fill_column": h.fillColumn,
		"run":         h.run,
		"command":     h.command,
		"bind":        h.bind,
		"whine":       h.whine,
		"log":         h.log,
		"kill":        h.kill,
		"yank":        h.yank,
	}
}

// quill.insert(text) inserts at point and returns the point after it.
func (h *Host) insert(L *lua.LState) int {
	e := h.session(L)
	e.Insert(L.CheckString(1), false)
	L.Push(lua.LNumber(e.Point()))
	return 1
}

// quill.delete(n) deletes n runes, backward when negative.
func (h *Host) delete(L *lua.LState) int {
	e := h.session(L)
	L.Push(lua.LNumber(e.Delete(L.CheckInt(1))))
	return 1
}

func (h *Host) move(L *lua.LState) int {
	e := h.session(L)
	L.Push(lua.LNumber(e.Move(L.OptInt(1, 1))))
	return 1
}

func (h *Host) gotoPoint(L *lua.LState) int {
	e := h.session(L)
	e.Goto(L.CheckInt(1))
	L.Push(lua.LNumber(e.Point()))
	return 1
}

func (h *Host) point(L *lua.LState) int {
	L.Push(lua.LNumber(h.session(L).Point()))
	return 1
}

// quill.mark() returns the mark, or nil when none is set.
func (h *Host) mark(L *lua.LState) int {
	p, ok := h.session(L).Mark()
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(p))
	return 1
}

func (h *Host) setMark(L *lua.LState) int {
	h.session(L).SetMark()
	return 0
}

func (h *Host) text(L *lua.LState) int {
	L.Push(lua.LString(h.session(L).Buffer().Text()))
	return 1
}

func (h *Host) slice(L *lua.LState) int {
	buf := h.session(L).Buffer()
	L.Push(lua.LString(buf.Slice(L.CheckInt(1), L.OptInt(2, buf.Len()))))
	return 1
}

// quill.line() returns the start of the current line and its text.
func (h *Host) line(L *lua.LState) int {
	start, text := h.session(L).ExtractCurrentLine()
	L.Push(lua.LNumber(start))
	L.Push(lua.LString(text))
	return 2
}

func (h *Host) char(L *lua.LState) int {
	L.Push(lua.LString(h.session(L).CharacterAtPoint()))
	return 1
}

func (h *Host) bufferName(L *lua.LState) int {
	L.Push(lua.LString(h.session(L).Buffer().Name()))
	return 1
}

func (h *Host) fillColumn(L *lua.LState) int {
	L.Push(lua.LNumber(h.session(L).FillColumn()))
	return 1
}

// quill.run(name[, count]) runs a command as if it were typed.
func (h *Host) run(L *lua.LState) int {
	name := L.CheckString(1)
	arg := editor.Arg{}
	if L.GetTop() >= 2 {
		arg.Count, arg.HasCount = L.CheckInt(2), true
	}
	if err := h.app.Execute(name, arg); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

// quill.command(name, fn) defines a command. fn receives the count.
func (h *Host) command(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)
	err := h.app.RegisterCommand(name, func(_ *app.Application, arg editor.Arg) error {
		if _, err := h.state.Call(fn, lua.LNumber(arg.N())); err != nil {
			return app.NewOperationError(name, "lua", err)
		}
		return nil
	})
	if err != nil {
		L.RaiseError("%v", err)
	}
	h.logger.WithField("command", name).Debug("registered command")
	return 0
}

func (h *Host) bind(L *lua.LState) int {
	if err := h.app.Bind(L.CheckString(1), L.CheckString(2)); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (h *Host) whine(L *lua.LState) int {
	h.app.Whine(L.CheckString(1))
	return 0
}

func (h *Host) log(L *lua.LState) int {
	h.logger.Info("%s", L.CheckString(1))
	return 0
}

// quill.kill(text[, mode]) stores text in the kill ring. mode is "new",
// "append" or "prepend".
func (h *Host) kill(L *lua.LState) int {
	var mode killring.Mode
	switch m := L.OptString(2, "new"); m {
	case "new":
		mode = killring.New
	case "append":
		mode = killring.Append
	case "prepend":
		mode = killring.Prepend
	default:
		L.ArgError(2, fmt.Sprintf("unknown kill mode %q", m))
	}
	h.app.KillRing().Copy(L.CheckString(1), mode)
	return 0
}

// quill.yank([offset]) returns a kill ring entry without inserting it.
func (h *Host) yank(L *lua.LState) int {
	L.Push(lua.LString(h.app.KillRing().Yank(L.OptInt(1, 1))))
	return 1
}
