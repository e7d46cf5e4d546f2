package editor

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSetMarkAndExchange(t *testing.T) {
	e, rec := newTestEditor(t, "hello world")

	if _, ok := e.Mark(); ok {
		t.Fatal("new session should have no mark")
	}
	e.ExchangePointAndMark()
	if rec.last() != "No mark set in this buffer" {
		t.Errorf("expected whine, got %q", rec.last())
	}

	e.Goto(2)
	e.SetMark()
	e.Goto(8)
	e.ExchangePointAndMark()

	if e.Point() != 2 {
		t.Errorf("expected point 2, got %d", e.Point())
	}
	if m, _ := e.Mark(); m != 8 {
		t.Errorf("expected mark 8, got %d", m)
	}
}

func TestMarkRing(t *testing.T) {
	e, _ := newTestEditor(t, "0123456789", WithMarkRingSize(2))

	for _, p := range []int{1, 3, 5, 7} {
		e.Goto(p)
		e.SetMark()
	}

	if m, _ := e.Mark(); m != 7 {
		t.Errorf("expected mark 7, got %d", m)
	}
	if diff := cmp.Diff([]int{5, 3}, e.MarkRing()); diff != "" {
		t.Errorf("ring mismatch (-want +got):\n%s", diff)
	}

	e.Goto(0)
	e.PopMark()
	if e.Point() != 7 {
		t.Errorf("expected jump to 7, got %d", e.Point())
	}
	if m, _ := e.Mark(); m != 5 {
		t.Errorf("expected mark 5 after pop, got %d", m)
	}
	if diff := cmp.Diff([]int{3, 7}, e.MarkRing()); diff != "" {
		t.Errorf("ring mismatch after pop (-want +got):\n%s", diff)
	}
}

func TestMarksFollowEdits(t *testing.T) {
	e, _ := newTestEditor(t, "abcdef")
	e.Goto(4)
	e.SetMark()
	e.Goto(0)

	e.Insert("XY", false)
	if m, _ := e.Mark(); m != 6 {
		t.Errorf("expected mark to shift to 6, got %d", m)
	}
}

func TestSaveExcursionRestores(t *testing.T) {
	e, _ := newTestEditor(t, "abc\ndefgh\nij")
	e.Goto(1)
	e.SetMark()
	e.Goto(7)
	e.LineMove(-1, true)

	e.SaveExcursion(nil, func() {
		e.EndOfBuffer()
		e.SetMark()
		e.SetMark()
	})

	if e.Point() != 3 {
		t.Errorf("expected cursor restored to 3, got %d", e.Point())
	}
	if m, _ := e.Mark(); m != 1 {
		t.Errorf("expected mark restored to 1, got %d", m)
	}
	if len(e.MarkRing()) != 0 {
		t.Errorf("expected empty ring, got %v", e.MarkRing())
	}
	if e.goal != 3 {
		t.Errorf("expected goal column 3, got %d", e.goal)
	}
}

func TestSaveExcursionTracksEdits(t *testing.T) {
	e, _ := newTestEditor(t, "abcdef")
	e.Goto(4)

	e.SaveExcursion(nil, func() {
		e.Goto(0)
		e.Insert("XYZ", false)
	})

	if e.Point() != 7 {
		t.Errorf("restored cursor should follow the edit to 7, got %d", e.Point())
	}
}

func TestSaveExcursionWithMark(t *testing.T) {
	e, _ := newTestEditor(t, "abc\ndef\n")
	m := e.buf.NewMark(5)
	defer m.Release()

	var line string
	e.SaveExcursion(&m, func() {
		_, line = e.ExtractCurrentLine()
		e.BeginningOfLine()
	})

	if line != "def\n" {
		t.Errorf("expected line at mark, got %q", line)
	}
	if m.Point() != 4 {
		t.Errorf("mark should receive the final cursor position 4, got %d", m.Point())
	}
	if e.Point() != 0 {
		t.Errorf("cursor should be restored to 0, got %d", e.Point())
	}
}

func TestSharedBufferSessions(t *testing.T) {
	buf := newTestBuffer(t, "shared text")
	a := NewEditor(buf)
	b := NewViewer(buf)
	defer b.Close()

	b.Goto(7)
	a.Insert(">> ", false)
	if b.Point() != 10 {
		t.Errorf("other session's cursor should shift to 10, got %d", b.Point())
	}

	a.Close()
	a.Close()
	buf.Replace(0, 3, "", false)
	if b.Point() != 7 {
		t.Errorf("closing one session disturbed the other: point %d", b.Point())
	}
}

func TestHint(t *testing.T) {
	e, _ := newTestEditor(t, "abc")

	h := e.Hint()
	if e.HintStale(h) {
		t.Error("hint should be fresh")
	}
	e.Insert("x", false)
	if !e.HintStale(h) {
		t.Error("hint should be stale after an edit")
	}
}
