package editor

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Fill rewraps the text between the start of the current line and the
// cursor so no line passes the fill column. Lines above are left alone,
// and nothing happens when the line start is protected.
func (e *Editor) Fill() {
	e.touch(cmdFill)

	p := e.Point()
	start := e.lineStart(p)
	if !e.editable(start) {
		return
	}

	text := e.buf.Slice(start, p)
	filled := fill(text, e.opts.fillColumn, e.opts.tabWidth)
	if filled == text {
		return
	}
	e.replaceAt(start, runeCount(text), filled, false)
}

// fill wraps a single line of text greedily at width. Leading indentation
// is repeated on continuation lines; runs of blanks collapse to one space
// and a trailing blank is kept.
func fill(text string, width, tabWidth int) string {
	body := strings.TrimLeftFunc(text, unicode.IsSpace)
	indent := text[:len(text)-len(body)]
	words := strings.Fields(body)
	if len(words) == 0 {
		return text
	}

	var sb strings.Builder
	sb.WriteString(indent)
	base := stringWidth(indent, tabWidth)
	col := base
	for i, w := range words {
		ww := stringWidth(w, tabWidth)
		if i > 0 {
			if col+1+ww > width {
				sb.WriteByte('\n')
				sb.WriteString(indent)
				col = base
			} else {
				sb.WriteByte(' ')
				col++
			}
		}
		sb.WriteString(w)
		col += ww
	}

	if last, _ := utf8.DecodeLastRuneInString(body); unicode.IsSpace(last) {
		sb.WriteByte(' ')
	}
	return sb.String()
}
