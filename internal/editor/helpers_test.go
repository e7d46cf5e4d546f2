package editor

import (
	"testing"

	"github.com/dshills/quill/internal/engine/buffer"
	"github.com/dshills/quill/internal/killring"
)

type recorder struct {
	msgs []string
}

func (r *recorder) Whine(msg string) {
	r.msgs = append(r.msgs, msg)
}

func (r *recorder) last() string {
	if len(r.msgs) == 0 {
		return ""
	}
	return r.msgs[len(r.msgs)-1]
}

func newTestBuffer(t *testing.T, content string) *buffer.Buffer {
	t.Helper()
	b := buffer.New("test", buffer.WithRegistry(buffer.NewRegistry()), buffer.WithContent(content))
	t.Cleanup(b.Close)
	return b
}

func newTestEditor(t *testing.T, content string, opts ...Option) (*Editor, *recorder) {
	t.Helper()
	rec := &recorder{}
	opts = append([]Option{WithNotifier(rec), WithKillRing(killring.NewRing())}, opts...)
	e := NewEditor(newTestBuffer(t, content), opts...)
	t.Cleanup(e.Close)
	return e, rec
}
