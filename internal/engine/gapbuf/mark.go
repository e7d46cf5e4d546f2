package gapbuf

import (
	"cmp"
	"fmt"
	"weak"
)

// markSlot is one arena entry. pos is physical while the buffer is at rest
// and logical only inside movegap.
type markSlot struct {
	pos  int
	gen  uint32
	live bool
}

// markTable is the per-buffer arena of marks.
type markTable struct {
	slots []markSlot
	free  []int
	live  int
}

func (t *markTable) alloc(pos int) (int, uint32) {
	var idx int
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		idx = len(t.slots)
		t.slots = append(t.slots, markSlot{})
	}

	s := &t.slots[idx]
	s.pos = pos
	s.live = true
	t.live++
	return idx, s.gen
}

func (t *markTable) release(idx int) {
	s := &t.slots[idx]
	s.live = false
	s.gen++
	t.free = append(t.free, idx)
	t.live--
}

func (t *markTable) lookup(idx int, gen uint32) *markSlot {
	if idx < 0 || idx >= len(t.slots) {
		return nil
	}
	s := &t.slots[idx]
	if !s.live || s.gen != gen {
		return nil
	}
	return s
}

func (t *markTable) each(fn func(*markSlot)) {
	if t.live == 0 {
		return
	}
	for i := range t.slots {
		if t.slots[i].live {
			fn(&t.slots[i])
		}
	}
}

// settle moves every mark inside [start, end) to end.
func (t *markTable) settle(start, end int) {
	t.each(func(s *markSlot) {
		if s.pos >= start && s.pos < end {
			s.pos = end
		}
	})
}

func (t *markTable) check(capacity int) error {
	live := 0
	for i, s := range t.slots {
		if !s.live {
			continue
		}
		live++
		if s.pos < 0 || s.pos > capacity {
			return fmt.Errorf("%w: slot %d at pos %d outside [0, %d]", ErrMarkInvariant, i, s.pos, capacity)
		}
	}
	if live != t.live {
		return fmt.Errorf("%w: %d live slots, counter says %d", ErrMarkInvariant, live, t.live)
	}
	if live+len(t.free) != len(t.slots) {
		return fmt.Errorf("%w: %d live + %d free != %d slots", ErrMarkInvariant, live, len(t.free), len(t.slots))
	}
	return nil
}

// Mark is a handle to a live logical position in a GapBuffer.
// The zero Mark is released.
type Mark struct {
	buf   weak.Pointer[GapBuffer]
	index int
	gen   uint32
}

// NewMark registers a mark at point, clamped to the text.
func (g *GapBuffer) NewMark(point int) Mark {
	idx, gen := g.marks.alloc(g.PointToPos(point))
	return Mark{buf: weak.Make(g), index: idx, gen: gen}
}

// LiveMarks returns the number of registered marks.
func (g *GapBuffer) LiveMarks() int {
	return g.marks.live
}

func (m Mark) resolve() (*GapBuffer, *markSlot) {
	g := m.buf.Value()
	if g == nil {
		return nil, nil
	}
	s := g.marks.lookup(m.index, m.gen)
	if s == nil {
		return nil, nil
	}
	return g, s
}

// Valid reports whether the mark is still registered with a live buffer.
func (m Mark) Valid() bool {
	_, s := m.resolve()
	return s != nil
}

// Point returns the mark's logical position, or 0 once released.
func (m Mark) Point() int {
	g, s := m.resolve()
	if s == nil {
		return 0
	}
	return g.PosToPoint(s.pos)
}

// SetPoint moves the mark to point, clamped to the text.
func (m Mark) SetPoint(point int) {
	g, s := m.resolve()
	if s == nil {
		return
	}
	s.pos = g.PointToPos(point)
}

// Release unregisters the mark. Releasing twice is harmless.
func (m Mark) Release() {
	g, s := m.resolve()
	if s == nil {
		return
	}
	g.marks.release(m.index)
}

// Buffer reports whether the mark belongs to g.
func (m Mark) Buffer(g *GapBuffer) bool {
	return m.buf.Value() == g
}

// Compare orders two marks by logical position.
func (m Mark) Compare(other Mark) int {
	return cmp.Compare(m.Point(), other.Point())
}

// ComparePoint orders the mark against a bare point.
func (m Mark) ComparePoint(point int) int {
	return cmp.Compare(m.Point(), point)
}

// Less reports whether m sits before other.
func (m Mark) Less(other Mark) bool {
	return m.Compare(other) < 0
}

// Equal reports whether both marks denote the same logical position.
func (m Mark) Equal(other Mark) bool {
	return m.Compare(other) == 0
}

// String returns a debug representation.
func (m Mark) String() string {
	g, s := m.resolve()
	if s == nil {
		return "Mark(released)"
	}
	return fmt.Sprintf("Mark(%d @%d)", g.PosToPoint(s.pos), s.pos)
}
