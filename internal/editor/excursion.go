package editor

import "github.com/dshills/quill/internal/engine/gapbuf"

// excursion is a snapshot of session state. Its marks follow edits made
// while it is held.
type excursion struct {
	cursor    gapbuf.Mark
	secondary gapbuf.Mark
	ring      []gapbuf.Mark
	goal      int
}

func (v *Viewer) snapshot() excursion {
	ex := excursion{
		cursor: v.buf.NewMark(v.Point()),
		goal:   v.goal,
	}
	if p, ok := v.Mark(); ok {
		ex.secondary = v.buf.NewMark(p)
	}
	ex.ring = make([]gapbuf.Mark, len(v.ring))
	for i, m := range v.ring {
		ex.ring[i] = v.buf.NewMark(m.Point())
	}
	return ex
}

func (v *Viewer) restore(ex excursion) {
	v.cursor.SetPoint(ex.cursor.Point())
	ex.cursor.Release()

	v.secondary.Release()
	v.secondary = ex.secondary

	for _, m := range v.ring {
		m.Release()
	}
	v.ring = ex.ring
	v.goal = ex.goal
}

// SaveExcursion runs fn and then restores the cursor, the secondary mark,
// the mark ring and the goal column. When mark is non-nil the cursor
// starts at mark and mark receives the cursor's final position.
func (v *Viewer) SaveExcursion(mark *gapbuf.Mark, fn func()) {
	ex := v.snapshot()
	defer v.restore(ex)

	if mark != nil {
		v.cursor.SetPoint(mark.Point())
		defer func() { mark.SetPoint(v.Point()) }()
	}
	fn()
}
