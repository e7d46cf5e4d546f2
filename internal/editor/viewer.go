package editor

import (
	"github.com/dshills/quill/internal/engine/buffer"
	"github.com/dshills/quill/internal/engine/gapbuf"
	"github.com/dshills/quill/internal/killring"
)

// noGoal marks the goal column as unset.
const noGoal = -1

// Viewer is a read-only session on a buffer.
type Viewer struct {
	buf       *buffer.Buffer
	cursor    gapbuf.Mark
	secondary gapbuf.Mark
	ring      []gapbuf.Mark
	goal      int
	opts      options

	lastCommand string
	inCommand   bool

	// writableAt narrows Writable for sessions with protected regions.
	writableAt func(point int) bool
}

// NewViewer opens a session on buf with the cursor at the start.
func NewViewer(buf *buffer.Buffer, opts ...Option) *Viewer {
	v := &Viewer{
		buf:    buf,
		cursor: buf.NewMark(0),
		goal:   noGoal,
		opts:   defaultOptions(),
	}
	for _, opt := range opts {
		opt(&v.opts)
	}
	if v.opts.killRing == nil {
		v.opts.killRing = killring.NewRing()
	}
	return v
}

// Buffer returns the buffer the session views.
func (v *Viewer) Buffer() *buffer.Buffer {
	return v.buf
}

// Point returns the cursor position.
func (v *Viewer) Point() int {
	return v.cursor.Point()
}

// Goto moves the cursor to point, clamped to the buffer.
func (v *Viewer) Goto(point int) {
	v.goal = noGoal
	v.cursor.SetPoint(point)
}

// Writable reports whether an edit at the cursor would be accepted.
func (v *Viewer) Writable() bool {
	return v.editable(v.Point())
}

func (v *Viewer) editable(point int) bool {
	if !v.buf.Writable() {
		return false
	}
	return v.writableAt == nil || v.writableAt(point)
}

// FillColumn returns the fill width.
func (v *Viewer) FillColumn() int {
	return v.opts.fillColumn
}

func (v *Viewer) whine(msg string) {
	v.opts.notifier.Whine(msg)
}

// Command runs fn as the named command. Commands nested inside it are
// not recorded separately.
func (v *Viewer) Command(name string, fn func()) {
	if v.inCommand {
		fn()
		return
	}
	v.inCommand = true
	defer func() {
		v.inCommand = false
		v.lastCommand = name
	}()
	fn()
}

// LastCommand returns the name of the most recently completed command.
func (v *Viewer) LastCommand() string {
	return v.lastCommand
}

// touch returns the previous command. Outside Command it also records
// name as the latest one.
func (v *Viewer) touch(name string) string {
	last := v.lastCommand
	if !v.inCommand {
		v.lastCommand = name
	}
	return last
}

// SetMark pushes the secondary mark onto the mark ring and sets a new one
// at the cursor.
func (v *Viewer) SetMark() {
	v.touch(cmdSetMark)
	v.pushMark(v.Point())
}

func (v *Viewer) pushMark(point int) {
	if v.secondary.Valid() {
		v.ring = append([]gapbuf.Mark{v.secondary}, v.ring...)
		for len(v.ring) > v.opts.markRingSize {
			v.ring[len(v.ring)-1].Release()
			v.ring = v.ring[:len(v.ring)-1]
		}
	}
	v.secondary = v.buf.NewMark(point)
}

// Mark returns the secondary mark's position.
func (v *Viewer) Mark() (int, bool) {
	if !v.secondary.Valid() {
		return 0, false
	}
	return v.secondary.Point(), true
}

// setSecondary moves the secondary mark, creating it if needed.
func (v *Viewer) setSecondary(point int) {
	if v.secondary.Valid() {
		v.secondary.SetPoint(point)
		return
	}
	v.secondary = v.buf.NewMark(point)
}

// ExchangePointAndMark swaps the cursor and the secondary mark.
func (v *Viewer) ExchangePointAndMark() {
	v.touch(cmdExchangePointAndMark)
	mark, ok := v.Mark()
	if !ok {
		v.whine("No mark set in this buffer")
		return
	}
	v.secondary.SetPoint(v.Point())
	v.Goto(mark)
}

// PopMark jumps to the secondary mark and rotates the mark ring into it.
func (v *Viewer) PopMark() {
	v.touch(cmdPopMark)
	jump, ok := v.Mark()
	if !ok {
		v.whine("No mark set in this buffer")
		return
	}
	if len(v.ring) > 0 {
		next := v.ring[0]
		v.ring = append(v.ring[1:], v.secondary)
		v.secondary = next
	}
	v.Goto(jump)
}

// MarkRing returns the positions in the mark ring, newest first.
func (v *Viewer) MarkRing() []int {
	out := make([]int, len(v.ring))
	for i, m := range v.ring {
		out[i] = m.Point()
	}
	return out
}

// Hint returns the buffer's redisplay hint.
func (v *Viewer) Hint() buffer.Hint {
	return v.buf.Hint()
}

// HintStale reports whether output rendered for old is out of date.
func (v *Viewer) HintStale(old buffer.Hint) bool {
	return old.Stale(v.buf.Hint())
}

// Close releases every mark the session owns. The buffer stays open.
func (v *Viewer) Close() {
	v.cursor.Release()
	v.secondary.Release()
	for _, m := range v.ring {
		m.Release()
	}
	v.ring = nil
}
