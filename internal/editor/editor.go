package editor

import (
	"errors"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/quill/internal/engine/buffer"
	"github.com/dshills/quill/internal/engine/history"
)

// Editor is a session that can change its buffer.
type Editor struct {
	*Viewer

	column     int
	yankOffset int
	undoToken  history.Token
	pending    *pendingRequest
	lastToken  uint64
	commands   map[string]CommandFunc
}

// NewEditor opens an editing session on buf.
func NewEditor(buf *buffer.Buffer, opts ...Option) *Editor {
	e := &Editor{
		Viewer:    NewViewer(buf, opts...),
		undoToken: history.NoToken,
	}
	e.commands = e.defaultCommands()
	return e
}

// checkEditable whines unless an edit at where would be accepted.
func (e *Editor) checkEditable(where int) bool {
	switch {
	case !e.buf.Writable():
		e.whine("Buffer is read-only")
	case !e.editable(where):
		e.whine("Text is read-only")
	default:
		return true
	}
	return false
}

// replaceAt is the single mutation path for the session.
func (e *Editor) replaceAt(where, count int, text string, collapsible bool) (int, bool) {
	if !e.checkEditable(where) {
		return 0, false
	}
	n, err := e.buf.Replace(where, count, text, collapsible)
	if err != nil {
		e.whine(err.Error())
		return 0, false
	}
	return n, true
}

// Insert inserts s at the cursor and leaves the cursor after it.
func (e *Editor) Insert(s string, collapsible bool) int {
	n, _ := e.replaceAt(e.Point(), 0, s, collapsible)
	return n
}

// Delete removes count runes after the cursor, or before it when count is
// negative, and returns how many were removed.
func (e *Editor) Delete(count int) int {
	p := e.Point()
	from, to := p, min(p+count, e.buf.Len())
	if count < 0 {
		from, to = max(p+count, 0), p
	}
	if from == to {
		return 0
	}
	if _, ok := e.replaceAt(from, to-from, "", false); !ok {
		return 0
	}
	return to - from
}

// Replace swaps the count runes after the cursor for s.
func (e *Editor) Replace(count int, s string) int {
	n, _ := e.replaceAt(e.Point(), count, s, false)
	return n
}

// DeleteForward deletes n runes after the cursor.
func (e *Editor) DeleteForward(n int) int {
	e.touch(cmdDeleteForward)
	return e.Delete(n)
}

// DeleteBackward deletes n runes before the cursor.
func (e *Editor) DeleteBackward(n int) int {
	e.touch(cmdDeleteBackward)
	return e.Delete(-n)
}

// NewLine inserts a line break.
func (e *Editor) NewLine() {
	e.touch(cmdNewLine)
	e.Insert(string(EOL), false)
}

// InsertTab inserts a tab.
func (e *Editor) InsertTab() {
	e.touch(cmdInsertTab)
	e.Insert("\t", false)
}

// columnAt returns the display column of point.
func (e *Editor) columnAt(point int) int {
	return stringWidth(e.buf.Slice(e.lineStart(point), point), e.opts.tabWidth)
}

// SelfInsert inserts a typed rune. Typing a space past the fill column
// fills the line. A space typed after a non-space starts a new undo step.
func (e *Editor) SelfInsert(r rune) {
	last := e.touch(cmdSelfInsert)

	p := e.Point()
	if last != cmdSelfInsert {
		e.column = e.columnAt(p)
	}

	if prev, ok := e.buf.At(p - 1); p > 0 && ok && !unicode.IsSpace(prev) && unicode.IsSpace(r) {
		e.buf.UndoBoundary()
	}

	s := string(r)
	if _, ok := e.replaceAt(p, 0, s, true); !ok {
		return
	}
	e.column = advance(e.column, s, e.opts.tabWidth)
	if r == '\n' {
		e.column = 0
	}

	if r == ' ' && e.column > e.opts.fillColumn {
		e.Fill()
		e.column = e.columnAt(e.Point())
	}
}

// Undo reverts the last change. Repeated undos walk further back; any
// other command in between starts the walk again from the newest change.
func (e *Editor) Undo() {
	if e.touch(cmdUndo) != cmdUndo {
		e.undoToken = history.NoToken
	}
	if !e.buf.Writable() {
		e.whine("Buffer is read-only")
		return
	}

	next, point, err := e.buf.Undo(e.undoToken)
	switch {
	case errors.Is(err, history.ErrNothingToUndo):
		e.whine("No further undo information")
		return
	case err != nil:
		e.whine(err.Error())
		return
	}

	e.undoToken = next
	e.Goto(point)
}

func runeCount(s string) int {
	return utf8.RuneCountInString(s)
}
