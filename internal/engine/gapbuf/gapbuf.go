package gapbuf

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by Check.
var (
	ErrGapInvariant  = errors.New("gap invariant violated")
	ErrMarkInvariant = errors.New("mark arena invariant violated")
)

// GapBuffer is a rune store with one relocatable gap.
type GapBuffer struct {
	buf       []rune
	gapStart  int
	gapEnd    int
	chunkSize int
	marks     markTable
}

// New creates a gap buffer holding text.
func New(text string, opts ...Option) *GapBuffer {
	g := &GapBuffer{chunkSize: DefaultChunkSize}
	for _, opt := range opts {
		opt(g)
	}

	g.buf = make([]rune, g.chunkSize)
	g.gapEnd = len(g.buf)

	if text != "" {
		g.Replace(0, 0, text)
	}
	return g
}

// Size returns the number of runes of visible text.
func (g *GapBuffer) Size() int {
	return len(g.buf) - g.gapLen()
}

// Capacity returns the number of physical slots.
func (g *GapBuffer) Capacity() int {
	return len(g.buf)
}

// GapStart returns the physical offset of the first gap slot.
func (g *GapBuffer) GapStart() int {
	return g.gapStart
}

// GapEnd returns the physical offset one past the last gap slot.
func (g *GapBuffer) GapEnd() int {
	return g.gapEnd
}

func (g *GapBuffer) gapLen() int {
	return g.gapEnd - g.gapStart
}

// Text returns the whole visible text.
func (g *GapBuffer) Text() string {
	var sb strings.Builder
	sb.Grow(g.Size())
	sb.WriteString(string(g.buf[:g.gapStart]))
	sb.WriteString(string(g.buf[g.gapEnd:]))
	return sb.String()
}

// TextRange returns the text between two points. Both ends are clipped to
// the text; an inverted range yields "".
func (g *GapBuffer) TextRange(begin, end int) string {
	size := g.Size()
	begin = clamp(begin, 0, size)
	end = clamp(end, 0, size)
	if end <= begin {
		return ""
	}

	var sb strings.Builder
	if begin < g.gapStart {
		sb.WriteString(string(g.buf[begin:min(g.gapStart, end)]))
	}
	if end > g.gapStart {
		from := max(begin, g.gapStart) + g.gapLen()
		sb.WriteString(string(g.buf[from : end+g.gapLen()]))
	}
	return sb.String()
}

// RuneAt returns the rune at point, or false past either end.
func (g *GapBuffer) RuneAt(point int) (rune, bool) {
	if point < 0 || point >= g.Size() {
		return 0, false
	}
	if point < g.gapStart {
		return g.buf[point], true
	}
	return g.buf[point+g.gapLen()], true
}

// PointToPos converts a logical point to a physical slot offset.
func (g *GapBuffer) PointToPos(point int) int {
	switch {
	case point < 0:
		return 0
	case point <= g.gapStart:
		return point
	case point < g.Size():
		return point + g.gapLen()
	default:
		return len(g.buf)
	}
}

// PosToPoint converts a physical slot offset to a logical point.
// Offsets inside the gap map to the gap start.
func (g *GapBuffer) PosToPoint(pos int) int {
	switch {
	case pos < g.gapStart:
		return pos
	case pos <= g.gapEnd:
		return g.gapStart
	default:
		return pos - g.gapLen()
	}
}

// Replace deletes deleteCount runes at where and inserts text in their
// place. where and deleteCount are clipped to the text. It returns the
// number of runes inserted.
func (g *GapBuffer) Replace(where, deleteCount int, text string) int {
	size := g.Size()
	where = clamp(where, 0, size)
	deleteCount = clamp(deleteCount, 0, size-where)

	insert := []rune(text)
	g.movegap(where, len(insert)-deleteCount)

	// Swallow the deleted runes into the gap; marks that were inside them,
	// or at the edit site, now sit on the gap and settle at its end.
	g.gapEnd += deleteCount
	g.marks.settle(g.gapStart, g.gapEnd)

	copy(g.buf[g.gapStart:], insert)
	g.gapStart += len(insert)
	return len(insert)
}

// movegap relocates the gap to point, growing it first so it holds at
// least extra runes.
func (g *GapBuffer) movegap(point, extra int) {
	g.marks.each(func(s *markSlot) {
		s.pos = g.PosToPoint(s.pos)
	})

	if extra > g.gapLen() {
		g.grow(extra - g.gapLen())
	}

	pos := g.PointToPos(point)
	switch {
	case pos < g.gapStart:
		newEnd := pos + g.gapLen()
		copy(g.buf[newEnd:g.gapEnd], g.buf[pos:g.gapStart])
		g.gapStart = pos
		g.gapEnd = newEnd
	case pos > g.gapEnd:
		newStart := pos - g.gapLen()
		copy(g.buf[g.gapStart:newStart], g.buf[g.gapEnd:pos])
		g.gapStart = newStart
		g.gapEnd = pos
	}

	g.marks.each(func(s *markSlot) {
		s.pos = g.PointToPos(s.pos)
	})
}

// grow widens the gap by the smallest multiple of the chunk size that
// covers shortfall. New slots are inserted at the gap.
func (g *GapBuffer) grow(shortfall int) {
	increase := (shortfall + g.chunkSize - 1) / g.chunkSize * g.chunkSize

	buf := make([]rune, len(g.buf)+increase)
	copy(buf, g.buf[:g.gapStart])
	copy(buf[g.gapEnd+increase:], g.buf[g.gapEnd:])

	g.buf = buf
	g.gapEnd += increase
}

// Check verifies the gap bounds and the mark arena.
func (g *GapBuffer) Check() error {
	if g.gapStart < 0 || g.gapStart > g.gapEnd || g.gapEnd > len(g.buf) {
		return fmt.Errorf("%w: gapstart=%d gapend=%d capacity=%d",
			ErrGapInvariant, g.gapStart, g.gapEnd, len(g.buf))
	}
	return g.marks.check(len(g.buf))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
