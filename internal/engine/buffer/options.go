package buffer

import "github.com/dshills/quill/internal/engine/history"

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithContent sets the initial text. It is not recorded in the undo
// journal.
func WithContent(text string) Option {
	return func(b *Buffer) {
		b.content = text
	}
}

// WithChunkSize sets the growth granularity of the gap.
func WithChunkSize(n int) Option {
	return func(b *Buffer) {
		b.historyOpts = append(b.historyOpts, history.WithChunkSize(n))
	}
}

// WithMaxUndoEntries bounds the undo journal. Zero means unbounded.
func WithMaxUndoEntries(n int) Option {
	return func(b *Buffer) {
		b.historyOpts = append(b.historyOpts, history.WithMaxEntries(n))
	}
}

// WithRegistry claims the buffer name from r instead of Default.
func WithRegistry(r *Registry) Option {
	return func(b *Buffer) {
		if r != nil {
			b.registry = r
		}
	}
}

// WithReadOnly creates the buffer read-only.
func WithReadOnly() Option {
	return func(b *Buffer) {
		b.writable = false
	}
}

// WithLogger sets the logger for buffer and journal traces.
func WithLogger(l Logger) Option {
	return func(b *Buffer) {
		if l != nil {
			b.logger = l
		}
	}
}
