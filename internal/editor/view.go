package editor

import (
	"fmt"
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/dshills/quill/internal/engine/buffer"
	"github.com/dshills/quill/internal/engine/gapbuf"
)

// Direction selects which way View walks.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Segment tags.
const (
	TagCursor  = "cursor"
	TagVisible = "visible"
)

// Segment is a run of text with display tags.
type Segment struct {
	Tags []string
	Text string
}

// IsCursor reports whether s marks the cursor position.
func (s Segment) IsCursor() bool {
	for _, t := range s.Tags {
		if t == TagCursor {
			return true
		}
	}
	return false
}

// Line is one rendered line. The caller owns Start and must release it.
type Line struct {
	Start    gapbuf.Mark
	Segments []Segment
}

// Text returns the line's text without the cursor marker.
func (l Line) Text() string {
	var sb strings.Builder
	for _, s := range l.Segments {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

type lineKey int

type lineValue struct {
	start int
	text  string
}

// lineAt returns the line holding point, including its newline.
func (v *Viewer) lineAt(point int) (int, string) {
	lv := buffer.Cached(v.buf, lineKey(point), func() lineValue {
		start := v.lineStart(point)
		return lineValue{start: start, text: v.buf.Slice(start, v.lineEnd(point)+1)}
	})
	return lv.start, lv.text
}

// ExtractCurrentLine returns the start and text of the line holding the
// cursor. The text includes the terminating newline, if any.
func (v *Viewer) ExtractCurrentLine() (int, string) {
	return v.lineAt(v.Point())
}

// View returns the lines of the buffer starting with the one holding
// origin. Each call to the sequence walks afresh from origin.
func (v *Viewer) View(origin int, dir Direction) (iter.Seq[Line], error) {
	if dir != Forward && dir != Backward {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDirection, dir)
	}

	return func(yield func(Line) bool) {
		m := v.buf.NewMark(origin)
		defer m.Release()

		for {
			start, text := v.lineAt(m.Point())
			m.SetPoint(start)
			line := Line{
				Start:    v.buf.NewMark(start),
				Segments: v.segments(start, text),
			}
			if !yield(line) {
				return
			}

			switch dir {
			case Forward:
				if m.Point() == v.buf.Len() || !strings.HasSuffix(text, string(EOL)) {
					return
				}
				m.SetPoint(m.Point() + utf8.RuneCountInString(text))
			case Backward:
				if m.Point() == 0 {
					return
				}
				m.SetPoint(m.Point() - 1)
			}
		}
	}, nil
}

// segments splits a line around the cursor when the cursor is on it.
func (v *Viewer) segments(start int, text string) []Segment {
	cur := v.Point()
	runes := []rune(text)
	end := start + len(runes)

	if (start <= cur && cur < end) || (cur == end && !strings.HasSuffix(text, string(EOL))) {
		at := cur - start
		return []Segment{
			{Text: string(runes[:at])},
			{Tags: []string{TagCursor, TagVisible}},
			{Text: string(runes[at:])},
		}
	}
	return []Segment{{Text: text}}
}
