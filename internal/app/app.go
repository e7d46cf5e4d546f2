// Package app ties sessions, the keymap and shared editor state into an
// application that a frontend drives one keystroke at a time.
//
// The Application is not safe for concurrent use. Frontends call it from
// their event loop and hand work from other goroutines, such as config
// reloads, to that loop.
package app

import (
	"errors"
	"fmt"

	"github.com/dshills/quill/internal/config"
	"github.com/dshills/quill/internal/editor"
	"github.com/dshills/quill/internal/engine/buffer"
	"github.com/dshills/quill/internal/input/key"
	"github.com/dshills/quill/internal/input/keymap"
	"github.com/dshills/quill/internal/killring"
)

// ScratchName names the buffer opened when no other exists.
const ScratchName = "*scratch*"

// CommandFunc is an application-level command.
type CommandFunc func(a *Application, arg editor.Arg) error

// Application owns the sessions and the state they share.
type Application struct {
	cfg       config.Config
	logger    *Logger
	notices   *Notices
	kills     *killring.Ring
	buffers   *buffer.Registry
	histories *editor.Histories
	keymap    *keymap.Keymap
	bindings  map[string]string
	commands  map[string]CommandFunc

	sessions []*editor.Editor
	active   int
	mini     *minibuffer

	keys []key.Event
	arg  argState
}

// Option configures an Application.
type Option func(*Application)

// WithLogger sets the application logger.
func WithLogger(l *Logger) Option {
	return func(a *Application) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithBufferRegistry sets the registry buffer names are claimed from.
func WithBufferRegistry(r *buffer.Registry) Option {
	return func(a *Application) {
		if r != nil {
			a.buffers = r
		}
	}
}

// New creates an application with no sessions. cfg must be valid.
func New(cfg config.Config, opts ...Option) (*Application, error) {
	a := &Application{
		cfg:       cfg,
		logger:    NullLogger,
		buffers:   buffer.Default,
		histories: editor.NewHistories(),
		bindings:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(a)
	}

	km, err := buildKeymap(cfg, nil)
	if err != nil {
		return nil, NewOperationError("load", "keymap", err)
	}
	a.keymap = km
	a.kills = killring.NewRing(killring.WithSize(cfg.KillRing.Size))
	a.notices = NewNotices(DefaultNoticeLimit, a.logger)
	a.commands = builtinCommands()
	return a, nil
}

// buildKeymap layers the configured overrides and then runtime bindings
// over the defaults.
func buildKeymap(cfg config.Config, bindings map[string]string) (*keymap.Keymap, error) {
	km := keymap.Default()
	if err := km.Apply(cfg.Keymap); err != nil {
		return nil, err
	}
	if err := km.Apply(bindings); err != nil {
		return nil, err
	}
	return km, nil
}

// Logger returns the application logger.
func (a *Application) Logger() *Logger {
	return a.logger
}

// Notices returns the message log.
func (a *Application) Notices() *Notices {
	return a.notices
}

// KillRing returns the ring shared by every session.
func (a *Application) KillRing() *killring.Ring {
	return a.kills
}

// Keymap returns the active keymap.
func (a *Application) Keymap() *keymap.Keymap {
	return a.keymap
}

// Config returns the settings in effect.
func (a *Application) Config() config.Config {
	return a.cfg
}

// Whine shows msg to the user.
func (a *Application) Whine(msg string) {
	a.notices.Whine(msg)
}

func (a *Application) sessionOptions() []editor.Option {
	c := a.cfg.Editor
	return []editor.Option{
		editor.WithFillColumn(c.FillColumn),
		editor.WithTabWidth(c.TabWidth),
		editor.WithMarkRingSize(c.MarkRingSize),
		editor.WithKillRing(a.kills),
		editor.WithNotifier(a.notices),
		editor.WithLogger(a.logger.WithComponent("editor")),
	}
}

// OpenBuffer creates a buffer. The name is made unique if it is taken.
func (a *Application) OpenBuffer(name, content string) *buffer.Buffer {
	c := a.cfg.Editor
	buf := buffer.New(name,
		buffer.WithRegistry(a.buffers),
		buffer.WithContent(content),
		buffer.WithChunkSize(c.ChunkSize),
		buffer.WithMaxUndoEntries(c.MaxUndoEntries),
		buffer.WithLogger(a.logger.WithComponent("buffer")),
	)
	a.logger.WithField("buffer", buf.Name()).Info("opened buffer")
	return buf
}

// NewSession opens an editing session on buf and makes it active.
func (a *Application) NewSession(buf *buffer.Buffer) *editor.Editor {
	e := editor.NewEditor(buf, a.sessionOptions()...)
	a.sessions = append(a.sessions, e)
	a.active = len(a.sessions) - 1
	return e
}

// Active returns the active session, or nil when there is none.
func (a *Application) Active() *editor.Editor {
	if len(a.sessions) == 0 {
		return nil
	}
	return a.sessions[a.active]
}

// Sessions returns every session in creation order.
func (a *Application) Sessions() []*editor.Editor {
	return append([]*editor.Editor(nil), a.sessions...)
}

// closeSession removes session i.
func (a *Application) closeSession(i int) {
	e := a.sessions[i]
	if a.mini != nil && a.mini.owner == e {
		a.closeMinibuffer()
	}
	e.Close()
	a.sessions = append(a.sessions[:i], a.sessions[i+1:]...)
	if a.active >= len(a.sessions) {
		a.active = max(len(a.sessions)-1, 0)
	}
}

// Minibuffer returns the open prompt, or nil.
func (a *Application) Minibuffer() *editor.ShortPrompt {
	if a.mini == nil {
		return nil
	}
	return a.mini.prompt
}

// target is the session keystrokes go to.
func (a *Application) target() *editor.Editor {
	if a.mini != nil {
		return a.mini.prompt.Editor
	}
	return a.Active()
}

// PendingKeys returns the keys typed so far of an incomplete sequence.
func (a *Application) PendingKeys() []key.Event {
	return append([]key.Event(nil), a.keys...)
}

// RegisterCommand adds an application-level command.
func (a *Application) RegisterCommand(name string, fn CommandFunc) error {
	if _, ok := a.commands[name]; ok {
		return fmt.Errorf("%w: %s", ErrCommandExists, name)
	}
	a.commands[name] = fn
	return nil
}

// Bind maps a key sequence to a command at runtime. Runtime bindings take
// precedence over the configured keymap and survive ApplyConfig.
func (a *Application) Bind(keys, command string) error {
	if err := a.keymap.Bind(keys, command); err != nil {
		return NewOperationError("bind", keys, err)
	}
	a.bindings[keys] = command
	return nil
}

// HandleKey processes one keystroke. It returns ErrQuit when the user asks
// to leave; other failures are shown as notices.
func (a *Application) HandleKey(ev key.Event) error {
	if a.target() == nil {
		return ErrNoSession
	}
	if cmd, _ := a.keymap.Lookup([]key.Event{ev}); cmd == cmdKeyboardQuit {
		return a.Execute(cmdKeyboardQuit, editor.Arg{})
	}
	if len(a.keys) == 0 && a.arg.digit(ev) {
		return nil
	}

	a.keys = append(a.keys, ev)
	name, status := a.keymap.Lookup(a.keys)
	if status == keymap.Prefix {
		return nil
	}
	seq := a.keys
	a.keys = nil

	if isArgumentCommand(name) {
		return a.Execute(name, editor.Arg{Key: ev.Rune})
	}
	arg := a.arg.take()
	if ev.IsRune() {
		arg.Key = ev.Rune
	}
	if status == keymap.NoMatch {
		r, ok := ev.Printable()
		if len(seq) > 1 || !ok {
			a.Whine(fmt.Sprintf("%s is undefined", key.FormatSequence(seq)))
			return nil
		}
		name = "self-insert"
		arg.Key = r
	}

	err := a.Execute(name, arg)
	if err == nil || errors.Is(err, ErrQuit) {
		return err
	}
	a.logger.Warn("%v", err)
	a.Whine(err.Error())
	return nil
}

// Execute runs a command by name on the session that has focus.
func (a *Application) Execute(name string, arg editor.Arg) error {
	if fn, ok := a.commands[name]; ok {
		return fn(a, arg)
	}

	e := a.target()
	if e == nil {
		return ErrNoSession
	}
	req, err := e.Run(name, arg)
	if err != nil {
		return NewOperationError(name, e.Buffer().Name(), err)
	}
	if a.mini != nil && a.mini.prompt.Editor == e {
		a.settleMinibuffer()
	}
	if req != nil {
		return a.resumeWithPrompt(e, *req)
	}
	return nil
}

// resumeWithPrompt reads the value a parked command asked for.
func (a *Application) resumeWithPrompt(e *editor.Editor, req editor.Request) error {
	err := a.ask(req.Prompt, req.Command, e, func(value string) bool {
		if err := e.Resume(req.Token, value); err != nil {
			a.logger.Warn("resume %s: %v", req.Command, err)
			return true
		}
		return e.Pending() == nil
	}, e.Abort)
	if err != nil {
		e.Abort()
	}
	return err
}

// Ask opens the minibuffer with prompt. accept receives each committed
// input and returns true once it is satisfied; until then the minibuffer
// stays open. cancel runs if the user quits instead. Inputs share the
// history named by history.
func (a *Application) Ask(prompt, history string, accept func(string) bool, cancel func()) error {
	return a.ask(prompt, history, nil, accept, cancel)
}

func (a *Application) ask(prompt, history string, owner *editor.Editor, accept func(string) bool, cancel func()) error {
	if a.mini != nil {
		return NewOperationError("prompt", prompt, errMinibufferBusy)
	}
	p := editor.NewShortPrompt(prompt, a.histories.Get(history), a.sessionOptions()...)
	m := &minibuffer{prompt: p, owner: owner, accept: accept, cancel: cancel}
	p.OnCommit(func(s string) { m.committed = &s })
	a.mini = m
	return nil
}

var errMinibufferBusy = errors.New("command attempted to use minibuffer while in minibuffer")

type minibuffer struct {
	prompt    *editor.ShortPrompt
	owner     *editor.Editor
	accept    func(string) bool
	cancel    func()
	committed *string
}

// settleMinibuffer hands committed input to the asker. The minibuffer is
// detached while accept runs, so commands it executes reach the active
// session.
func (a *Application) settleMinibuffer() {
	m := a.mini
	if m.committed == nil {
		return
	}
	value := *m.committed
	m.committed = nil
	a.mini = nil
	done := m.accept(value)
	switch {
	case done:
		m.prompt.Close()
	case a.mini == nil:
		a.mini = m
	default:
		// accept opened another prompt; it replaces this one.
		m.prompt.Close()
		if m.cancel != nil {
			m.cancel()
		}
	}
}

func (a *Application) closeMinibuffer() {
	if a.mini == nil {
		return
	}
	a.mini.prompt.Close()
	a.mini = nil
}

// ApplyConfig switches to cfg. Sessions pick up the new fill column and
// the keymap is rebuilt; buffer settings apply to buffers opened later.
func (a *Application) ApplyConfig(cfg config.Config) error {
	km, err := buildKeymap(cfg, a.bindings)
	if err != nil {
		return NewOperationError("reload", "keymap", err)
	}
	if lvl, err := ParseLogLevel(cfg.Log.Level); err == nil {
		a.logger.SetLevel(lvl)
	}
	a.keymap = km
	a.cfg = cfg
	for _, e := range a.sessions {
		if e.FillColumn() != cfg.Editor.FillColumn {
			n := cfg.Editor.FillColumn
			e.SetFillColumn(&n)
		}
	}
	a.logger.Info("configuration applied")
	return nil
}

// Close ends every session and releases buffer names.
func (a *Application) Close() {
	a.closeMinibuffer()
	for _, e := range a.sessions {
		e.Close()
		e.Buffer().Close()
	}
	a.sessions = nil
}
