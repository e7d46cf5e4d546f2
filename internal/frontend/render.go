package frontend

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/dshills/quill/internal/editor"
	"github.com/dshills/quill/internal/input/key"
)

// Styles holds the faces the screen is drawn with.
type Styles struct {
	Text   tcell.Style
	Status tcell.Style
	Echo   tcell.Style
}

// DefaultStyles uses the terminal colors with a reversed status line.
func DefaultStyles() Styles {
	return Styles{
		Text:   tcell.StyleDefault,
		Status: tcell.StyleDefault.Reverse(true),
		Echo:   tcell.StyleDefault,
	}
}

// cursor is a screen position; ok is false when the cursor is off screen.
type cursor struct {
	x, y int
	ok   bool
}

// draw repaints the whole screen: the active session, its status line
// and the echo area below it.
func (f *Frontend) draw() {
	f.screen.Clear()
	w, h := f.screen.Size()
	if w < 1 || h < 3 {
		f.screen.Show()
		return
	}
	f.pruneWindows()

	var cur cursor
	if e := f.app.Active(); e != nil {
		rows := h - 2
		cur = f.drawSession(e, rows, w)
		f.drawStatus(e, rows, w)
	}
	if echo := f.drawEcho(h-1, w); f.app.Minibuffer() != nil {
		cur = echo
	}

	if cur.ok {
		f.screen.ShowCursor(cur.x, cur.y)
	} else {
		f.screen.HideCursor()
	}
	f.screen.Show()
}

// drawSession draws the lines of e starting at its window top.
func (f *Frontend) drawSession(e *editor.Editor, rows, width int) cursor {
	top := f.scroll(e, rows)
	lines, err := e.View(top, editor.Forward)
	if err != nil {
		f.logger.Error("view: %v", err)
		return cursor{}
	}

	var cur cursor
	row := 0
	for line := range lines {
		line.Start.Release()
		if c := f.drawLine(line, row, width, f.styles.Text); c.ok {
			cur = c
		}
		row++
		if row >= rows {
			break
		}
	}
	return cur
}

// scroll returns the first line to draw so that the cursor is visible,
// recentering when it has left the window.
func (f *Frontend) scroll(e *editor.Editor, rows int) int {
	win, ok := f.windows[e]
	if !ok || !win.Valid() {
		win = e.Buffer().NewMark(0)
		f.windows[e] = win
	}
	top := win.Point()

	lines, err := e.View(e.Point(), editor.Backward)
	if err != nil {
		return top
	}
	var starts []int
	for line := range lines {
		start := line.Start.Point()
		line.Start.Release()
		starts = append(starts, start)
		if start <= top || len(starts) == rows {
			break
		}
	}
	if len(starts) == 0 {
		return top
	}
	if starts[len(starts)-1] != top {
		top = starts[min(rows/2, len(starts)-1)]
		win.SetPoint(top)
	}
	return top
}

// drawLine draws one line at row, truncating it with '$' at the right
// edge.
func (f *Frontend) drawLine(line editor.Line, row, width int, style tcell.Style) cursor {
	var cur cursor
	col := 0
	for _, seg := range line.Segments {
		if seg.IsCursor() {
			cur = cursor{x: min(col, width-1), y: row, ok: true}
			continue
		}
		col = f.drawText(seg.Text, col, row, width, style)
	}
	return cur
}

// drawText draws s from col and returns the column after it.
func (f *Frontend) drawText(s string, col, row, width int, style tcell.Style) int {
	tab := f.app.Config().Editor.TabWidth
	state := -1
	for s != "" {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		if cluster == "\n" {
			continue
		}

		if cluster == "\t" {
			next := col + tab - col%tab
			for ; col < next; col++ {
				f.put(col, row, width, ' ', nil, style)
			}
			continue
		}

		runes := []rune(cluster)
		w := runewidth.StringWidth(cluster)
		if w <= 0 {
			w = max(uniseg.StringWidth(cluster), 1)
		}
		if !unicodePrintable(runes[0]) {
			runes = []rune{'^', runes[0] ^ 0x40}
			w = 2
			for i, r := range runes {
				f.put(col+i, row, width, r, nil, style)
			}
			col += w
			continue
		}
		f.put(col, row, width, runes[0], runes[1:], style)
		col += w
	}
	return col
}

// put sets one cell, marking truncation in the last column.
func (f *Frontend) put(col, row, width int, r rune, comb []rune, style tcell.Style) {
	switch {
	case col < width-1:
		f.screen.SetContent(col, row, r, comb, style)
	case col == width-1:
		f.screen.SetContent(col, row, '$', nil, style)
	}
}

// unicodePrintable reports whether r can be drawn as itself.
func unicodePrintable(r rune) bool {
	return r >= 0x20 && r != 0x7f
}

// drawStatus draws the mode line for e.
func (f *Frontend) drawStatus(e *editor.Editor, row, width int) {
	flag := "--"
	if !e.Writable() {
		flag = "%%"
	}
	start, text := e.ExtractCurrentLine()
	column := columnOf(text, e.Point()-start, f.app.Config().Editor.TabWidth)

	sessions := ""
	if n := len(f.app.Sessions()); n > 1 {
		sessions = fmt.Sprintf("  [%d sessions]", n)
	}
	status := fmt.Sprintf("-:%s-  %s   C%d  %d/%d%s",
		flag, e.Buffer().Name(), column, e.Point(), e.Buffer().Len(), sessions)

	for x := range width {
		f.screen.SetContent(x, row, ' ', nil, f.styles.Status)
	}
	f.drawText(status, 0, row, width, f.styles.Status)
}

// columnOf returns the display column after the first n runes of
// text.
func columnOf(text string, n, tab int) int {
	col := 0
	for i, r := range []rune(text) {
		if i >= n {
			break
		}
		if r == '\t' {
			col += tab - col%tab
			continue
		}
		col += runewidth.RuneWidth(r)
	}
	return col
}

// drawEcho draws the minibuffer when it is open, and otherwise the last
// message or the keys of an unfinished sequence.
func (f *Frontend) drawEcho(row, width int) cursor {
	if p := f.app.Minibuffer(); p != nil {
		lines, err := p.View(0, editor.Forward)
		if err != nil {
			return cursor{}
		}
		for line := range lines {
			line.Start.Release()
			return f.drawLine(line, row, width, f.styles.Echo)
		}
		return cursor{}
	}

	switch keys := f.app.PendingKeys(); {
	case len(keys) > 0:
		f.drawText(key.FormatSequence(keys)+"-", 0, row, width, f.styles.Echo)
	case f.echo != "":
		f.drawText(f.echo, 0, row, width, f.styles.Echo)
	}
	return cursor{}
}

// pruneWindows releases the window marks of closed sessions.
func (f *Frontend) pruneWindows() {
	live := make(map[*editor.Editor]bool)
	for _, e := range f.app.Sessions() {
		live[e] = true
	}
	for e, m := range f.windows {
		if !live[e] {
			m.Release()
			delete(f.windows, e)
		}
	}
}
