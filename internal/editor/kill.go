package editor

import "github.com/dshills/quill/internal/killring"

func isKill(name string) bool {
	switch name {
	case cmdKillRegion, cmdKillLine, cmdCopyRegion:
		return true
	}
	return false
}

// killMode appends to the newest kill when the previous command was a
// kill too. Text taken from after the cursor goes at the end, text from
// before it at the front, so the entry reads in document order.
func killMode(last string, forward bool) killring.Mode {
	switch {
	case !isKill(last):
		return killring.New
	case forward:
		return killring.Append
	default:
		return killring.Prepend
	}
}

// region returns the span between the cursor and the secondary mark.
func (e *Editor) region() (lo, hi int, ok bool) {
	mark, ok := e.Mark()
	if !ok {
		e.whine("The mark is not set now, so there is no region")
		return 0, 0, false
	}
	p := e.Point()
	return min(p, mark), max(p, mark), true
}

// KillRegion moves the region to the kill ring.
func (e *Editor) KillRegion() {
	last := e.touch(cmdKillRegion)
	lo, hi, ok := e.region()
	if !ok {
		return
	}
	e.kill(lo, hi, killMode(last, e.Point() == lo))
}

// KillToEndOfLine kills from the cursor to the end of the line. At the end
// of a line it kills the newline instead.
func (e *Editor) KillToEndOfLine() {
	last := e.touch(cmdKillLine)
	p := e.Point()
	end := e.lineEnd(p)
	if end == p {
		if p == e.buf.Len() {
			e.whine("End of buffer")
			return
		}
		end++
	}
	e.kill(p, end, killMode(last, true))
}

func (e *Editor) kill(lo, hi int, mode killring.Mode) {
	if !e.checkEditable(lo) {
		return
	}
	e.opts.killRing.Copy(e.buf.Slice(lo, hi), mode)
	e.replaceAt(lo, hi-lo, "", false)
}

// CopyRegion copies the region to the kill ring without deleting it.
func (e *Editor) CopyRegion() {
	last := e.touch(cmdCopyRegion)
	lo, hi, ok := e.region()
	if !ok {
		return
	}
	e.opts.killRing.Copy(e.buf.Slice(lo, hi), killMode(last, e.Point() == lo))
}

// Yank inserts the newest kill at the cursor. The cursor stays before the
// inserted text and the secondary mark goes after it.
func (e *Editor) Yank() {
	e.touch(cmdYank)
	text := e.opts.killRing.Yank(1)
	if text == "" {
		e.whine("Kill ring is empty")
		return
	}

	p := e.Point()
	n, ok := e.replaceAt(p, 0, text, false)
	if !ok {
		return
	}
	e.pushMark(p + n)
	e.Goto(p)
	e.yankOffset = 1
}

// YankPop replaces the text just yanked with the next older kill.
func (e *Editor) YankPop() {
	last := e.touch(cmdYankPop)
	if last != cmdYank && last != cmdYankPop {
		e.whine("Previous command was not a yank")
		return
	}
	lo, hi, ok := e.region()
	if !ok {
		return
	}

	e.yankOffset++
	n, ok := e.replaceAt(lo, hi-lo, e.opts.killRing.Yank(e.yankOffset), false)
	if !ok {
		e.yankOffset--
		return
	}
	e.setSecondary(lo + n)
	e.Goto(lo)
}
