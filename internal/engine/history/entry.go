package history

import (
	"fmt"
	"unicode/utf8"
)

// Entry is one reversible edit. Length runes starting at Where were
// inserted by the edit; Text is what the edit destroyed.
type Entry struct {
	Where  int
	Length int
	Text   string

	// open entries may absorb the next collapsible insertion.
	open bool
}

// IsInsert reports whether the edit only inserted text.
func (e Entry) IsInsert() bool {
	return e.Text == "" && e.Length > 0
}

// IsDelete reports whether the edit only deleted text.
func (e Entry) IsDelete() bool {
	return e.Text != "" && e.Length == 0
}

// IsReplace reports whether the edit both deleted and inserted.
func (e Entry) IsReplace() bool {
	return e.Text != "" && e.Length > 0
}

// IsNoop reports whether the edit changed nothing.
func (e Entry) IsNoop() bool {
	return e.Text == "" && e.Length == 0
}

// End returns the point just past the inserted runes.
func (e Entry) End() int {
	return e.Where + e.Length
}

// Delta returns the change in text length the edit caused.
func (e Entry) Delta() int {
	return e.Length - utf8.RuneCountInString(e.Text)
}

// Description returns a human-readable name for the edit.
func (e Entry) Description() string {
	switch {
	case e.IsInsert():
		return "Insert"
	case e.IsDelete():
		return "Delete"
	case e.IsReplace():
		return "Replace"
	default:
		return "Noop"
	}
}

// String returns a debug representation.
func (e Entry) String() string {
	return fmt.Sprintf("%s(%d, %d, %q)", e.Description(), e.Where, e.Length, e.Text)
}

// Open reports whether a collapsible insertion at End may still extend
// the edit.
func (e Entry) Open() bool {
	return e.open
}

// collapses reports whether an insertion of n runes at where may merge
// into e.
func (e Entry) collapses(where, n int) bool {
	return e.open && e.IsInsert() && n > 0 && where == e.End()
}
