package gapbuf

import (
	"runtime"
	"testing"
)

func TestMarkBeforeInsertUnaffected(t *testing.T) {
	g := New("abcdef")
	m := g.NewMark(2)

	g.Replace(3, 0, "XYZ")
	if m.Point() != 2 {
		t.Errorf("expected mark at 2, got %d", m.Point())
	}
}

func TestMarkAtInsertShifts(t *testing.T) {
	g := New("abcdef")
	at := g.NewMark(3)
	after := g.NewMark(5)

	g.Replace(3, 0, "XYZ")
	if at.Point() != 6 {
		t.Errorf("mark at insertion point: expected 6, got %d", at.Point())
	}
	if after.Point() != 8 {
		t.Errorf("mark after insertion point: expected 8, got %d", after.Point())
	}
}

func TestMarkAtEndOfBufferShifts(t *testing.T) {
	g := New("abc")
	end := g.NewMark(3)

	g.Replace(3, 0, "de")
	if end.Point() != 5 {
		t.Errorf("expected end mark at 5, got %d", end.Point())
	}
}

func TestMarkAfterDeleteShiftsBack(t *testing.T) {
	g := New("abcdefgh")
	m := g.NewMark(6)

	g.Replace(1, 3, "")
	if m.Point() != 3 {
		t.Errorf("expected 3, got %d", m.Point())
	}
}

func TestMarkInsideDeleteCollapses(t *testing.T) {
	g := New("abcdefgh")
	inside := g.NewMark(3)
	edge := g.NewMark(5)

	g.Replace(2, 3, "")
	if inside.Point() != 2 {
		t.Errorf("mark inside deletion: expected 2, got %d", inside.Point())
	}
	if edge.Point() != 2 {
		t.Errorf("mark at deletion end: expected 2, got %d", edge.Point())
	}
}

func TestMarkSurvivesLineDeletion(t *testing.T) {
	g := New("abc\ndef\n")
	m := g.NewMark(5) // 'e'

	g.Replace(0, 4, "")
	if g.Text() != "def\n" {
		t.Fatalf("expected 'def\\n', got %q", g.Text())
	}
	if m.Point() != 1 {
		t.Errorf("expected mark at 1, got %d", m.Point())
	}
}

func TestMarkSetPointClamps(t *testing.T) {
	g := New("hello")
	m := g.NewMark(0)

	m.SetPoint(99)
	if m.Point() != 5 {
		t.Errorf("expected clamp to 5, got %d", m.Point())
	}
	m.SetPoint(-4)
	if m.Point() != 0 {
		t.Errorf("expected clamp to 0, got %d", m.Point())
	}
}

func TestMarkSurvivesGrowth(t *testing.T) {
	g := New("0123456789", WithChunkSize(2))
	lo := g.NewMark(1)
	hi := g.NewMark(8)

	g.Replace(5, 0, "abcdefghijklmnop")
	if lo.Point() != 1 {
		t.Errorf("expected low mark at 1, got %d", lo.Point())
	}
	if hi.Point() != 24 {
		t.Errorf("expected high mark at 24, got %d", hi.Point())
	}
}

func TestMarkCompare(t *testing.T) {
	g := New("abcdef")
	a := g.NewMark(1)
	b := g.NewMark(4)
	c := g.NewMark(4)

	if !a.Less(b) || b.Less(a) {
		t.Error("expected a < b")
	}
	if !b.Equal(c) {
		t.Error("expected b == c")
	}
	if a.Compare(b) != -1 || b.Compare(a) != 1 || b.Compare(c) != 0 {
		t.Error("Compare should be a total order")
	}
	if a.ComparePoint(1) != 0 || a.ComparePoint(0) != 1 || a.ComparePoint(3) != -1 {
		t.Error("ComparePoint disagrees with Point")
	}
}

func TestMarkReleaseAndReuse(t *testing.T) {
	g := New("abcdef")
	old := g.NewMark(1)
	if g.LiveMarks() != 1 {
		t.Fatalf("expected 1 live mark, got %d", g.LiveMarks())
	}

	old.Release()
	old.Release()
	if g.LiveMarks() != 0 {
		t.Fatalf("expected 0 live marks, got %d", g.LiveMarks())
	}
	if old.Valid() {
		t.Error("released mark should be invalid")
	}

	fresh := g.NewMark(4)
	if fresh.index != old.index {
		t.Fatalf("expected slot %d to be reused, got %d", old.index, fresh.index)
	}

	old.SetPoint(0)
	if old.Point() != 0 {
		t.Errorf("released mark should read 0, got %d", old.Point())
	}
	if fresh.Point() != 4 {
		t.Errorf("stale handle moved the new mark to %d", fresh.Point())
	}

	g.Replace(0, 0, "xx")
	if fresh.Point() != 6 {
		t.Errorf("expected 6, got %d", fresh.Point())
	}
	if err := g.Check(); err != nil {
		t.Error(err)
	}
}

func TestZeroMark(t *testing.T) {
	var m Mark
	if m.Valid() {
		t.Error("zero mark should be invalid")
	}
	if m.Point() != 0 {
		t.Errorf("zero mark should read 0, got %d", m.Point())
	}
	m.Release()
	m.SetPoint(3)
	if m.String() != "Mark(released)" {
		t.Errorf("unexpected String: %q", m.String())
	}
}

func TestMarkBuffer(t *testing.T) {
	g1 := New("one")
	g2 := New("two")
	m := g1.NewMark(1)

	if !m.Buffer(g1) || m.Buffer(g2) {
		t.Error("mark should belong to g1 only")
	}
}

//go:noinline
func orphanMark() Mark {
	g := New("transient")
	return g.NewMark(3)
}

func TestMarkDoesNotKeepBufferAlive(t *testing.T) {
	m := orphanMark()
	runtime.GC()
	runtime.GC()

	if m.Valid() {
		t.Error("mark kept its buffer alive")
	}
	if m.Point() != 0 {
		t.Errorf("orphaned mark should read 0, got %d", m.Point())
	}
}
