package buffer

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/quill/internal/engine/history"
)

func newTestBuffer(t *testing.T, name, content string, opts ...Option) *Buffer {
	t.Helper()
	opts = append([]Option{WithRegistry(NewRegistry()), WithContent(content)}, opts...)
	b := New(name, opts...)
	t.Cleanup(b.Close)
	return b
}

func TestNewBuffer(t *testing.T) {
	b := newTestBuffer(t, "scratch", "hello\n")

	if b.Name() != "scratch" {
		t.Errorf("expected name 'scratch', got %q", b.Name())
	}
	if b.Text() != "hello\n" {
		t.Errorf("expected 'hello\\n', got %q", b.Text())
	}
	if b.Len() != 6 {
		t.Errorf("expected Len 6, got %d", b.Len())
	}
	if !b.Writable() {
		t.Error("new buffer should be writable")
	}
	if len(b.UndoEntries()) != 0 {
		t.Error("initial content should not be journaled")
	}
}

func TestBufferAt(t *testing.T) {
	b := newTestBuffer(t, "at", "héllo")

	tests := []struct {
		index int
		want  rune
		ok    bool
	}{
		{0, 'h', true},
		{1, 'é', true},
		{4, 'o', true},
		{5, 0, false},
		{-1, 'o', true},
		{-5, 'h', true},
		{-6, 0, false},
	}

	for _, tt := range tests {
		got, ok := b.At(tt.index)
		if got != tt.want || ok != tt.ok {
			t.Errorf("At(%d) = %q, %t; want %q, %t", tt.index, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBufferSlice(t *testing.T) {
	b := newTestBuffer(t, "slice", "abcdef")

	tests := []struct {
		begin, end int
		want       string
	}{
		{0, 3, "abc"},
		{2, 100, "cdef"},
		{-2, 6, "ef"},
		{0, -1, "abcde"},
		{-100, 2, "ab"},
		{4, 2, ""},
	}

	for _, tt := range tests {
		if got := b.Slice(tt.begin, tt.end); got != tt.want {
			t.Errorf("Slice(%d, %d) = %q, want %q", tt.begin, tt.end, got, tt.want)
		}
	}
}

func TestBufferReplace(t *testing.T) {
	b := newTestBuffer(t, "replace", "hello world")

	n, err := b.Replace(6, 5, "there", false)
	if err != nil {
		t.Fatal(err)
	}
	if n != 5 {
		t.Errorf("expected 5 runes inserted, got %d", n)
	}
	if b.Text() != "hello there" {
		t.Errorf("expected 'hello there', got %q", b.Text())
	}
	if b.Revision() != 1 {
		t.Errorf("expected revision 1, got %d", b.Revision())
	}
}

func TestBufferReadOnly(t *testing.T) {
	b := newTestBuffer(t, "ro", "fixed", WithReadOnly())

	if b.Writable() {
		t.Fatal("expected read-only buffer")
	}
	if _, err := b.Replace(0, 0, "x", false); !errors.Is(err, ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", err)
	}
	if b.Text() != "fixed" {
		t.Errorf("read-only buffer changed: %q", b.Text())
	}

	b.SetWritable(true)
	if _, err := b.Replace(0, 0, "x", false); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestBufferClosed(t *testing.T) {
	reg := NewRegistry()
	b := New("gone", WithRegistry(reg))
	b.Close()
	b.Close()

	if _, ok := reg.Lookup("gone"); ok {
		t.Error("closed buffer should release its name")
	}
	if _, err := b.Replace(0, 0, "x", false); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestBufferUndo(t *testing.T) {
	b := newTestBuffer(t, "undo", "")

	b.Replace(0, 0, "a", true)
	b.Replace(1, 0, "b", true)
	b.Replace(2, 0, "c", true)

	tok, point, err := b.Undo(history.NoToken)
	if err != nil {
		t.Fatal(err)
	}
	if b.Text() != "" || point != 0 {
		t.Errorf("expected empty text at 0, got %q at %d", b.Text(), point)
	}
	if b.Revision() != 4 {
		t.Errorf("expected revision 4, got %d", b.Revision())
	}

	if _, _, err := b.Undo(tok); err != nil {
		t.Fatal(err)
	}
	if b.Text() != "abc" {
		t.Errorf("expected wrapped undo to restore 'abc', got %q", b.Text())
	}

	b.ClearUndo()
	if _, _, err := b.Undo(history.NoToken); !errors.Is(err, history.ErrNothingToUndo) {
		t.Errorf("expected ErrNothingToUndo, got %v", err)
	}
}

func TestBufferCache(t *testing.T) {
	b := newTestBuffer(t, "cache", "one\ntwo\n")

	calls := 0
	line := func() string {
		calls++
		return b.Slice(0, 3)
	}

	if got := Cached(b, "line", line); got != "one" {
		t.Errorf("expected 'one', got %q", got)
	}
	Cached(b, "line", line)
	if calls != 1 {
		t.Errorf("expected one computation, got %d", calls)
	}

	b.Replace(0, 3, "ONE", false)
	if b.CacheLen() != 0 {
		t.Errorf("mutation should clear the cache, %d entries left", b.CacheLen())
	}
	if got := Cached(b, "line", line); got != "ONE" {
		t.Errorf("expected 'ONE', got %q", got)
	}

	b.Undo(history.NoToken)
	if b.CacheLen() != 0 {
		t.Error("undo should clear the cache")
	}
}

func TestBufferUndoBoundary(t *testing.T) {
	b := newTestBuffer(t, "steps", "")
	b.Replace(0, 0, "ab", true)
	b.UndoBoundary()
	b.Replace(2, 0, "cd", true)

	if n := len(b.UndoEntries()); n != 2 {
		t.Fatalf("expected 2 undo entries, got %d", n)
	}
	b.Undo(history.NoToken)
	if b.Text() != "ab" {
		t.Errorf("expected 'ab' after one undo, got %q", b.Text())
	}
}

func TestBufferCacheKeyTypes(t *testing.T) {
	b := newTestBuffer(t, "keys", "abc")

	type lineKey struct{ point int }
	Cached(b, lineKey{1}, func() int { return 1 })
	Cached(b, lineKey{2}, func() int { return 2 })

	if got := Cached(b, lineKey{1}, func() int { return -1 }); got != 1 {
		t.Errorf("expected cached 1, got %d", got)
	}
	if b.CacheLen() != 2 {
		t.Errorf("expected 2 entries, got %d", b.CacheLen())
	}
}

func TestBufferOnChange(t *testing.T) {
	b := newTestBuffer(t, "listen", "abcdef")

	var got []Change
	b.OnChange(func(c Change) { got = append(got, c) })

	b.Replace(1, 2, "XYZ", false)
	b.Replace(0, 0, "", false)
	b.Undo(history.NoToken)

	want := []Change{
		{Where: 1, Deleted: 2, Inserted: 3, Revision: 1},
		{Where: 1, Deleted: 3, Inserted: 2, Revision: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("changes mismatch (-want +got):\n%s", diff)
	}
}

func TestBufferHint(t *testing.T) {
	b := newTestBuffer(t, "hint", "abc")
	other := newTestBuffer(t, "other", "abc")

	h := b.Hint()
	if h.Stale(b.Hint()) {
		t.Error("hint should be fresh before any change")
	}
	if h.Stale(other.Hint()) == false {
		t.Error("hints of different buffers should differ")
	}

	b.Replace(0, 0, "x", false)
	if !h.Stale(b.Hint()) {
		t.Error("hint should be stale after a change")
	}
}

func TestBufferMarks(t *testing.T) {
	b := newTestBuffer(t, "marks", "abcdef")
	other := newTestBuffer(t, "marks2", "abcdef")

	m := b.NewMark(4)
	defer m.Release()

	if !b.Owns(m) || other.Owns(m) {
		t.Error("mark ownership is wrong")
	}
	b.Replace(0, 2, "", false)
	if m.Point() != 2 {
		t.Errorf("expected mark at 2, got %d", m.Point())
	}
}
