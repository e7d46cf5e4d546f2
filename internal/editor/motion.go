package editor

import (
	"strings"
	"unicode"
)

// EOL terminates a line.
const EOL = '\n'

// lineStart returns the start of the line holding point.
func (v *Viewer) lineStart(point int) int {
	for point > 0 {
		if r, _ := v.buf.At(point - 1); r == EOL {
			break
		}
		point--
	}
	return point
}

// lineEnd returns the position of the newline ending the line holding
// point, or the buffer length on the last line.
func (v *Viewer) lineEnd(point int) int {
	n := v.buf.Len()
	for point < n {
		if r, _ := v.buf.At(point); r == EOL {
			break
		}
		point++
	}
	return point
}

// move shifts the cursor without touching the goal column.
func (v *Viewer) move(delta int) int {
	from := v.cursor.Point()
	v.cursor.SetPoint(from + delta)
	return v.cursor.Point() - from
}

// Move shifts the cursor by delta, clamped to the buffer, and returns the
// distance actually moved.
func (v *Viewer) Move(delta int) int {
	v.touch(cmdMove)
	v.goal = noGoal
	return v.move(delta)
}

// LineMove moves the cursor delta lines down, or up when negative, and
// returns the number of lines moved. With trackColumn the first vertical
// move records a goal column that later ones reuse.
func (v *Viewer) LineMove(delta int, trackColumn bool) int {
	v.touch(cmdLineMove)
	p := v.Point()
	col := p - v.lineStart(p)
	if trackColumn {
		if v.goal == noGoal {
			v.goal = col
		}
		col = v.goal
	} else {
		v.goal = noGoal
	}

	moved := 0
	for ; delta > 0; delta-- {
		end := v.lineEnd(p)
		if end >= v.buf.Len() {
			break
		}
		p = end + 1
		moved++
	}
	for ; delta < 0; delta++ {
		start := v.lineStart(p)
		if start == 0 {
			break
		}
		p = start - 1
		moved--
	}

	start := v.lineStart(p)
	v.cursor.SetPoint(min(start+col, v.lineEnd(p)))
	return moved
}

// BeginningOfLine moves to the start of the current line.
func (v *Viewer) BeginningOfLine() int {
	return v.Move(v.lineStart(v.Point()) - v.Point())
}

// EndOfLine moves to the newline ending the current line.
func (v *Viewer) EndOfLine() int {
	return v.Move(v.lineEnd(v.Point()) - v.Point())
}

// BeginningOfBuffer moves to point 0.
func (v *Viewer) BeginningOfBuffer() int {
	return v.Move(-v.Point())
}

// EndOfBuffer moves past the last rune.
func (v *Viewer) EndOfBuffer() int {
	return v.Move(v.buf.Len() - v.Point())
}

// CharacterAtPoint returns the rune under the cursor as a string, or ""
// at the end of the buffer.
func (v *Viewer) CharacterAtPoint() string {
	p := v.Point()
	return v.buf.Slice(p, p+1)
}

// FindCharacter steps the cursor by delta until it lands on a rune in cs
// and returns that rune. When the buffer edge is reached first it returns
// "" and leaves the cursor at the edge.
func (v *Viewer) FindCharacter(cs string, delta int) string {
	v.touch(cmdFindCharacter)
	v.goal = noGoal
	if delta == 0 {
		return ""
	}
	for v.move(delta) != 0 {
		if x := v.CharacterAtPoint(); x != "" && strings.Contains(cs, x) {
			return x
		}
	}
	return ""
}

// isWordChar reports whether r belongs to a word.
func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.Is(unicode.Pc, r) || r == '\''
}

// WordForward moves past the end of the next n words.
func (v *Viewer) WordForward(n int) int {
	if n < 0 {
		return v.WordBackward(-n)
	}
	from := v.Point()
	p, size := from, v.buf.Len()
	wordAt := func(i int) bool {
		r, ok := v.buf.At(i)
		return ok && isWordChar(r)
	}
	for ; n > 0; n-- {
		for p < size && !wordAt(p) {
			p++
		}
		for p < size && wordAt(p) {
			p++
		}
	}
	return v.Move(p - from)
}

// WordBackward moves to the start of the previous n words.
func (v *Viewer) WordBackward(n int) int {
	if n < 0 {
		return v.WordForward(-n)
	}
	from := v.Point()
	p := from
	wordAt := func(i int) bool {
		r, ok := v.buf.At(i)
		return ok && isWordChar(r)
	}
	for ; n > 0; n-- {
		for p > 0 && !wordAt(p-1) {
			p--
		}
		for p > 0 && wordAt(p-1) {
			p--
		}
	}
	return v.Move(p - from)
}
