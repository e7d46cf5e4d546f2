package editor

import "github.com/dshills/quill/internal/killring"

// Defaults for session options.
const (
	DefaultMarkRingSize = 16
	DefaultFillColumn   = 72
	DefaultTabWidth     = 8
)

// KillRing stores killed text.
type KillRing interface {
	Copy(text string, mode killring.Mode)
	Yank(off int) string
}

// Notifier receives non-fatal user notices.
type Notifier interface {
	Whine(msg string)
}

// Logger receives debug traces.
type Logger interface {
	Debug(msg string, args ...any)
}

type nopNotifier struct{}

func (nopNotifier) Whine(string) {}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}

type options struct {
	markRingSize int
	fillColumn   int
	tabWidth     int
	killRing     KillRing
	notifier     Notifier
	logger       Logger
}

func defaultOptions() options {
	return options{
		markRingSize: DefaultMarkRingSize,
		fillColumn:   DefaultFillColumn,
		tabWidth:     DefaultTabWidth,
		notifier:     nopNotifier{},
		logger:       nopLogger{},
	}
}

// Option configures a session.
type Option func(*options)

// WithMarkRingSize bounds the mark ring.
func WithMarkRingSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.markRingSize = n
		}
	}
}

// WithFillColumn sets the column past which typing a space fills the line.
func WithFillColumn(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.fillColumn = n
		}
	}
}

// WithTabWidth sets the tab stop interval used for column estimates.
func WithTabWidth(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.tabWidth = n
		}
	}
}

// WithKillRing sets the kill ring. Sessions without one get a private ring.
func WithKillRing(k KillRing) Option {
	return func(o *options) {
		if k != nil {
			o.killRing = k
		}
	}
}

// WithNotifier sets the sink for user notices.
func WithNotifier(n Notifier) Option {
	return func(o *options) {
		if n != nil {
			o.notifier = n
		}
	}
}

// WithLogger sets the logger for debug traces.
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
