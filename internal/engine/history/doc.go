// Package history adds a reversible edit journal to the gap buffer.
//
// Every mutating Replace appends an Entry recording where the edit
// happened, how many runes it inserted, and the text it destroyed. Undoing
// an entry replays the inverse replace, which is itself journaled, so an
// undo can later be undone.
//
// # Burst collapsing
//
// Ordinary typing produces one journal entry per keystroke. When the
// caller flags an insertion collapsible and it lands exactly where the
// previous insert-only entry ended, the two merge, so one undo removes a
// whole typed run. Callers pass collapsible=false at word boundaries.
//
// # Tokens
//
// Undo takes a Token naming the journal slot to invert (NoToken means the
// newest entry) and returns the token for the next step. Tokens walk the
// journal backwards and wrap modulo its length: undoing past the oldest
// entry continues from the newest one, which by then records the undos
// just performed, so the walk turns into a redo.
//
//	u := history.New("")
//	u.Replace(0, 0, "hello", false)
//	u.Replace(5, 0, " ", false)
//	for i, r := range "world" {
//	    u.Replace(6+i, 0, string(r), true)
//	}
//	tok, point, _ := u.Undo(history.NoToken) // "hello", point 5
//	u.Undo(tok)                              // ""
package history
