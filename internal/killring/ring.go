// Package killring stores killed text for later yanking.
//
// The ring is shared by every editing session in the process. The newest
// entry is at offset 1; larger offsets walk toward older entries and wrap.
package killring

import "sync"

// DefaultSize is the number of entries kept when no size is configured.
const DefaultSize = 60

// Mode selects how Copy stores text.
type Mode uint8

const (
	// New pushes a fresh entry.
	New Mode = iota
	// Append adds the text to the end of the newest entry.
	Append
	// Prepend adds the text to the start of the newest entry.
	Prepend
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Append:
		return "append"
	case Prepend:
		return "prepend"
	default:
		return "new"
	}
}

// Option configures a Ring.
type Option func(*Ring)

// WithSize bounds the ring. Sizes below one are ignored.
func WithSize(n int) Option {
	return func(r *Ring) {
		if n > 0 {
			r.size = n
		}
	}
}

// Ring is a bounded, mutex-guarded kill ring.
type Ring struct {
	mu      sync.Mutex
	entries []string
	size    int
}

// NewRing creates an empty ring.
func NewRing(opts ...Option) *Ring {
	r := &Ring{size: DefaultSize}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Copy stores text. Append and Prepend extend the newest entry, or push a
// new one when the ring is empty.
func (r *Ring) Copy(text string, mode Mode) {
	r.mu.Lock()
	defer r.mu.Unlock()

	last := len(r.entries) - 1
	switch {
	case last < 0 || mode == New:
		r.entries = append(r.entries, text)
		if excess := len(r.entries) - r.size; excess > 0 {
			r.entries = append(r.entries[:0], r.entries[excess:]...)
		}
	case mode == Append:
		r.entries[last] += text
	default:
		r.entries[last] = text + r.entries[last]
	}
}

// Yank returns the entry off places back from the newest, counting from
// one and wrapping. An empty ring yields "".
func (r *Ring) Yank(off int) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.entries)
	if n == 0 {
		return ""
	}
	i := ((off-1)%n + n) % n
	return r.entries[n-1-i]
}

// Len returns the number of entries.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Entries returns the entries, newest first.
func (r *Ring) Entries() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[len(out)-1-i] = e
	}
	return out
}
