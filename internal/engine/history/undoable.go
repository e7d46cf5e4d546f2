package history

import (
	"errors"
	"unicode/utf8"

	"github.com/dshills/quill/internal/engine/gapbuf"
)

// ErrNothingToUndo indicates the journal is empty.
var ErrNothingToUndo = errors.New("nothing to undo")

// Token names a journal slot for Undo.
type Token int

// NoToken starts an undo walk at the newest entry.
const NoToken Token = -1

// Logger receives debug traces of journal activity.
type Logger interface {
	Debug(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}

// Option configures an UndoableBuffer.
type Option func(*UndoableBuffer)

// WithMaxEntries bounds the journal; the oldest entries are dropped first.
// Zero means unbounded.
func WithMaxEntries(n int) Option {
	return func(u *UndoableBuffer) {
		if n >= 0 {
			u.maxEntries = n
		}
	}
}

// WithChunkSize sets the growth granularity of the underlying gap buffer.
func WithChunkSize(n int) Option {
	return func(u *UndoableBuffer) {
		u.gapOpts = append(u.gapOpts, gapbuf.WithChunkSize(n))
	}
}

// WithLogger sets the logger used for debug traces.
func WithLogger(l Logger) Option {
	return func(u *UndoableBuffer) {
		if l != nil {
			u.logger = l
		}
	}
}

// UndoableBuffer is a gap buffer whose edits are journaled.
type UndoableBuffer struct {
	*gapbuf.GapBuffer

	entries    []Entry
	maxEntries int
	gapOpts    []gapbuf.Option
	logger     Logger
}

// New creates an UndoableBuffer holding text. The initial text is not
// journaled.
func New(text string, opts ...Option) *UndoableBuffer {
	u := &UndoableBuffer{logger: nopLogger{}}
	for _, opt := range opts {
		opt(u)
	}
	u.GapBuffer = gapbuf.New(text, u.gapOpts...)
	return u
}

// Replace journals and applies an edit. A collapsible insertion that
// continues an open insert-only entry extends it instead of starting a
// new one. Entries made by collapsible edits stay open; the rest are
// closed. It returns the number of runes inserted.
func (u *UndoableBuffer) Replace(where, deleteCount int, text string, collapsible bool) int {
	size := u.Size()
	where = min(max(where, 0), size)
	deleteCount = min(max(deleteCount, 0), size-where)

	e := Entry{
		Where:  where,
		Length: utf8.RuneCountInString(text),
		Text:   u.TextRange(where, where+deleteCount),
		open:   collapsible,
	}
	if e.IsNoop() {
		return 0
	}
	u.logger.Debug("replace(%d, %d, %q, %t)", where, deleteCount, text, collapsible)

	if last := len(u.entries) - 1; collapsible && deleteCount == 0 && last >= 0 && u.entries[last].collapses(where, e.Length) {
		u.entries[last].Length += e.Length
	} else {
		u.push(e)
	}

	return u.GapBuffer.Replace(where, deleteCount, text)
}

// Boundary closes the newest entry so the next insertion starts a new
// undo step.
func (u *UndoableBuffer) Boundary() {
	if last := len(u.entries) - 1; last >= 0 {
		u.entries[last].open = false
	}
}

// push appends an entry and returns how many old entries were dropped.
func (u *UndoableBuffer) push(e Entry) int {
	u.entries = append(u.entries, e)
	if u.maxEntries == 0 || len(u.entries) <= u.maxEntries {
		return 0
	}
	excess := len(u.entries) - u.maxEntries
	u.entries = append(u.entries[:0], u.entries[excess:]...)
	return excess
}

// Undo inverts the entry named by token and returns the token for the
// next step together with the point just past the restored text.
func (u *UndoableBuffer) Undo(token Token) (Token, int, error) {
	if len(u.entries) == 0 {
		return NoToken, 0, ErrNothingToUndo
	}

	off := int(token)
	if token == NoToken {
		off = len(u.entries) - 1
	}
	off = wrap(off, len(u.entries))

	e := u.entries[off]
	u.logger.Debug("undo %d: %s, length change %d", off, e, -e.Delta())

	before := len(u.entries)
	u.Replace(e.Where, e.Length, e.Text, false)
	// Trimming shifts every index down.
	off -= before + 1 - len(u.entries)

	next := Token(wrap(off-1, len(u.entries)))
	return next, e.Where + utf8.RuneCountInString(e.Text), nil
}

// Entries returns a copy of the journal, oldest first.
func (u *UndoableBuffer) Entries() []Entry {
	out := make([]Entry, len(u.entries))
	copy(out, u.entries)
	return out
}

// Len returns the number of journal entries.
func (u *UndoableBuffer) Len() int {
	return len(u.entries)
}

// Clear empties the journal without touching the text.
func (u *UndoableBuffer) Clear() {
	u.entries = nil
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
