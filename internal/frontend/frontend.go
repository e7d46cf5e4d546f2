// Package frontend draws an application on a terminal and feeds it
// keystrokes.
//
// The screen shows the active session, a status line, and an echo area
// holding the minibuffer or the latest message. All application calls
// happen on the goroutine running Run; other goroutines hand work to it
// with Post.
package frontend

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/quill/internal/app"
	"github.com/dshills/quill/internal/editor"
	"github.com/dshills/quill/internal/engine/gapbuf"
)

// ErrNotRunning is returned by Post when the event queue is unavailable.
var ErrNotRunning = errors.New("frontend is not running")

// Frontend drives an application from a tcell screen.
type Frontend struct {
	app     *app.Application
	screen  tcell.Screen
	logger  *app.Logger
	styles  Styles
	windows map[*editor.Editor]gapbuf.Mark
	echo    string
}

// Option configures a Frontend.
type Option func(*Frontend)

// WithStyles sets the drawing styles.
func WithStyles(s Styles) Option {
	return func(f *Frontend) {
		f.styles = s
	}
}

// New creates a frontend for a on screen. The screen is initialized by
// Run.
func New(a *app.Application, screen tcell.Screen, opts ...Option) *Frontend {
	f := &Frontend{
		app:     a,
		screen:  screen,
		logger:  a.Logger().WithComponent("frontend"),
		styles:  DefaultStyles(),
		windows: make(map[*editor.Editor]gapbuf.Mark),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewTerminal creates a frontend on the controlling terminal.
func NewTerminal(a *app.Application, opts ...Option) (*Frontend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("opening terminal: %w", err)
	}
	return New(a, screen, opts...), nil
}

type stopEvent struct{}

// Run initializes the screen and processes events until the user quits
// or ctx ends. Quitting returns nil; cancellation returns ctx.Err().
func (f *Frontend) Run(ctx context.Context) error {
	if err := f.screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer f.screen.Fini()

	stop := context.AfterFunc(ctx, func() {
		_ = f.screen.PostEvent(tcell.NewEventInterrupt(stopEvent{}))
	})
	defer stop()

	f.logger.Info("frontend started")
	f.draw()
	for {
		ev := f.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if in, ok := ev.(*tcell.EventInterrupt); ok {
			if _, stopping := in.Data().(stopEvent); stopping {
				return ctx.Err()
			}
		}
		done, err := f.handle(ev)
		if done {
			f.logger.Info("frontend stopped")
			return err
		}
		f.draw()
	}
}

// Post runs fn on the event loop.
func (f *Frontend) Post(fn func()) error {
	if err := f.screen.PostEvent(tcell.NewEventInterrupt(fn)); err != nil {
		return fmt.Errorf("%w: %v", ErrNotRunning, err)
	}
	return nil
}

// handle processes one event and reports whether the loop should end.
func (f *Frontend) handle(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		k, ok := convertKey(ev)
		if !ok {
			return false, nil
		}
		var err error
		f.showing(func() { err = f.app.HandleKey(k) })
		switch {
		case errors.Is(err, app.ErrQuit):
			return true, nil
		case err != nil:
			return true, err
		}

	case *tcell.EventResize:
		f.screen.Sync()

	case *tcell.EventInterrupt:
		if fn, ok := ev.Data().(func()); ok {
			f.showing(fn)
		}
	}
	return false, nil
}

// showing runs fn and echoes any message it produced. Messages from
// earlier events are cleared.
func (f *Frontend) showing(fn func()) {
	before, _ := f.app.Notices().Latest()
	fn()
	after, ok := f.app.Notices().Latest()
	f.echo = ""
	if ok && after != before {
		f.echo = after.Text
	}
}
