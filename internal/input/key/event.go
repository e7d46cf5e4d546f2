package key

import (
	"strings"
	"unicode"
)

// Event is one keystroke. Events are comparable and usable as map keys.
type Event struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// NewRuneEvent creates a character keystroke. Control letters are
// lower-cased so that C-A and C-a are the same key.
func NewRuneEvent(r rune, mods Modifier) Event {
	if mods.Has(ModCtrl) {
		r = unicode.ToLower(r)
	}
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a keystroke for a non-character key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune reports whether e is a character key.
func (e Event) IsRune() bool {
	return e.Key == KeyRune
}

// Printable returns the character e inserts when typed: a printable rune
// with no modifiers.
func (e Event) Printable() (rune, bool) {
	if !e.IsRune() || e.Modifiers != ModNone || !unicode.IsPrint(e.Rune) {
		return 0, false
	}
	return e.Rune, true
}

// String returns the Emacs spelling, as in "C-x", "M-<" or "<up>".
func (e Event) String() string {
	base := e.Key.String()
	if e.IsRune() {
		base = string(e.Rune)
		if e.Rune == ' ' {
			base = "SPC"
		}
	}
	return e.Modifiers.String() + base
}

// FormatSequence joins events with spaces.
func FormatSequence(events []Event) string {
	parts := make([]string, len(events))
	for i, e := range events {
		parts[i] = e.String()
	}
	return strings.Join(parts, " ")
}
