package buffer

import (
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dshills/quill/internal/engine/gapbuf"
	"github.com/dshills/quill/internal/engine/history"
)

// Errors returned by buffer operations.
var (
	// ErrReadOnly indicates a mutation of a read-only buffer.
	ErrReadOnly = errors.New("buffer is read-only")

	// ErrClosed indicates use of a buffer after Close.
	ErrClosed = errors.New("buffer is closed")
)

// Logger receives debug traces.
type Logger interface {
	Debug(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}

// Change describes one mutation, in points.
type Change struct {
	Where    int
	Deleted  int
	Inserted int
	Revision uint64
}

// Buffer is a named, journaled text buffer shared by editing sessions.
type Buffer struct {
	name     string
	id       uuid.UUID
	text     *history.UndoableBuffer
	registry *Registry
	cache    map[any]any
	revision uint64
	writable bool
	closed   bool

	listeners []func(Change)
	logger    Logger

	content     string
	historyOpts []history.Option
}

// New creates a buffer and registers it under a name derived from name.
func New(name string, opts ...Option) *Buffer {
	b := &Buffer{
		id:       uuid.New(),
		registry: Default,
		writable: true,
		logger:   nopLogger{},
	}

	for _, opt := range opts {
		opt(b)
	}

	b.text = history.New(b.content, append(b.historyOpts, history.WithLogger(b.logger))...)
	b.content = ""
	b.name = b.registry.claim(name, b)
	b.logger.Debug("buffer %q created (%d runes)", b.name, b.text.Size())
	return b
}

// Name returns the registered name.
func (b *Buffer) Name() string {
	return b.name
}

// ID returns the identity used in redisplay hints.
func (b *Buffer) ID() uuid.UUID {
	return b.id
}

// Close releases the buffer's name. The text stays readable.
func (b *Buffer) Close() {
	if b.closed {
		return
	}
	b.closed = true
	b.registry.Release(b.name)
	b.listeners = nil
}

// Len returns the length in runes.
func (b *Buffer) Len() int {
	return b.text.Size()
}

// Text returns the whole text.
func (b *Buffer) Text() string {
	return b.text.Text()
}

// Revision returns a counter bumped by every mutation.
func (b *Buffer) Revision() uint64 {
	return b.revision
}

// Writable reports whether the buffer accepts mutations.
func (b *Buffer) Writable() bool {
	return b.writable && !b.closed
}

func (b *Buffer) checkWritable() error {
	switch {
	case b.closed:
		return ErrClosed
	case !b.writable:
		return ErrReadOnly
	}
	return nil
}

// SetWritable toggles read-only mode.
func (b *Buffer) SetWritable(w bool) {
	b.writable = w
}

// At returns the rune at index i. A negative index counts back from the
// end, so At(-1) is the last rune.
func (b *Buffer) At(i int) (rune, bool) {
	if i < 0 {
		i += b.Len()
	}
	return b.text.RuneAt(i)
}

// Slice returns the runes in [begin, end), clipped to the buffer.
// Negative bounds count back from the end.
func (b *Buffer) Slice(begin, end int) string {
	n := b.Len()
	if begin < 0 {
		begin += n
	}
	if end < 0 {
		end += n
	}
	return b.text.TextRange(begin, end)
}

// NewMark creates a mark at point. The caller owns it and must release it.
func (b *Buffer) NewMark(point int) gapbuf.Mark {
	return b.text.NewMark(point)
}

// Owns reports whether m is a mark of this buffer.
func (b *Buffer) Owns(m gapbuf.Mark) bool {
	return m.Buffer(b.text.GapBuffer)
}

// Replace deletes deleteCount runes at where and inserts text there.
// Collapsible insertions may merge into the previous undo entry.
func (b *Buffer) Replace(where, deleteCount int, text string, collapsible bool) (int, error) {
	if err := b.checkWritable(); err != nil {
		return 0, err
	}

	before := b.Len()
	where = min(max(where, 0), before)
	deleteCount = min(max(deleteCount, 0), before-where)

	n := b.text.Replace(where, deleteCount, text, collapsible)
	if n == 0 && deleteCount == 0 {
		return 0, nil
	}
	b.changed(Change{Where: where, Deleted: deleteCount, Inserted: n})
	return n, nil
}

// Undo inverts the journal entry named by token. It returns the token for
// the next step and the point just past the restored text.
func (b *Buffer) Undo(token history.Token) (history.Token, int, error) {
	if err := b.checkWritable(); err != nil {
		return token, 0, err
	}

	next, point, err := b.text.Undo(token)
	if err != nil {
		return next, point, err
	}

	last := b.text.Entries()[b.text.Len()-1]
	b.changed(Change{Where: last.Where, Deleted: utf8.RuneCountInString(last.Text), Inserted: last.Length})
	return next, point, nil
}

// UndoEntries returns a copy of the undo journal.
func (b *Buffer) UndoEntries() []history.Entry {
	return b.text.Entries()
}

// UndoBoundary ends the current undo step. The next insertion starts a
// new one even when it is collapsible.
func (b *Buffer) UndoBoundary() {
	b.text.Boundary()
}

// ClearUndo empties the undo journal.
func (b *Buffer) ClearUndo() {
	b.text.Clear()
}

// OnChange registers fn to run after every mutation.
func (b *Buffer) OnChange(fn func(Change)) {
	if fn != nil {
		b.listeners = append(b.listeners, fn)
	}
}

func (b *Buffer) changed(c Change) {
	clear(b.cache)
	b.revision++
	c.Revision = b.revision
	for _, fn := range b.listeners {
		fn(c)
	}
}

// Cached returns the value stored under key, computing and storing it on
// a miss. Entries live until the next mutation.
func Cached[T any](b *Buffer, key any, compute func() T) T {
	if v, ok := b.cache[key]; ok {
		if t, ok := v.(T); ok {
			return t
		}
	}
	if b.cache == nil {
		b.cache = make(map[any]any)
	}
	v := compute()
	b.cache[key] = v
	return v
}

// CacheLen returns the number of cached entries.
func (b *Buffer) CacheLen() int {
	return len(b.cache)
}

// Hint identifies a buffer state for redisplay.
type Hint struct {
	ID       uuid.UUID
	Revision uint64
}

// Hint returns the current redisplay hint.
func (b *Buffer) Hint() Hint {
	return Hint{ID: b.id, Revision: b.revision}
}

// Stale reports whether output rendered for h is out of date with
// respect to current.
func (h Hint) Stale(current Hint) bool {
	return h != current
}
