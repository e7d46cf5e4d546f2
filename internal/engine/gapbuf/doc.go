// Package gapbuf provides the raw character store for the editing engine.
//
// A GapBuffer keeps its text in a single rune slice containing one
// contiguous unused run, the gap. Text before the gap is followed by text
// after the gap; the gap itself is invisible. Every edit first relocates
// the gap to the edit site, so clustered edits (typing, backspacing) cost
// amortized O(1) and an arbitrary jump costs O(distance moved).
//
// # Coordinates
//
// Two coordinate systems exist side by side:
//
//   - point: logical rune offset into the visible text, 0..Size()
//   - pos: physical slot offset into the backing slice, 0..Capacity()
//
// PointToPos and PosToPoint convert between them. Physical offsets change
// meaning whenever the gap moves; logical offsets do not.
//
// # Marks
//
// A Mark is a live reference to a logical position. Marks live in an arena
// owned by the buffer: a slot table indexed by handle, guarded by a
// generation counter. When the gap moves, every live slot is translated to
// point space, the gap is shuffled, and the slots are translated back, so
// each mark keeps its logical meaning.
//
// Marks at an edit site move to the end of the inserted text. Marks inside
// a deleted span collapse to the edit site. Marks after the edit shift by
// the net length change.
//
// A Mark handle holds only a weak reference to its buffer, so outstanding
// handles never keep a buffer alive. Release returns the slot to the arena;
// a released handle reads as point 0 and never aliases a later mark.
//
// Basic usage:
//
//	g := gapbuf.New("hello world")
//	m := g.NewMark(6)            // at 'w'
//	g.Replace(0, 0, ">> ")       // ">> hello world"
//	m.Point()                    // 9
//	m.Release()
//
// Thread Safety:
//
// GapBuffer is not safe for concurrent use. The editing layer drives it
// from a single goroutine.
package gapbuf
