package lua

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/quill/internal/app"
	"github.com/dshills/quill/internal/config"
	"github.com/dshills/quill/internal/editor"
	"github.com/dshills/quill/internal/engine/buffer"
	"github.com/dshills/quill/internal/input/key"
)

func newTestHost(t *testing.T, content string) (*app.Application, *Host) {
	t.Helper()
	a, err := app.New(config.Default(), app.WithBufferRegistry(buffer.NewRegistry()))
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	a.NewSession(a.OpenBuffer("test", content))
	h, err := NewHost(a)
	if err != nil {
		t.Fatalf("NewHost: %v", err)
	}
	t.Cleanup(func() {
		h.Close()
		a.Close()
	})
	return a, h
}

func press(t *testing.T, a *app.Application, spec string) {
	t.Helper()
	seq, err := key.ParseSequence(spec)
	if err != nil {
		t.Fatalf("ParseSequence(%q): %v", spec, err)
	}
	for _, ev := range seq {
		if err := a.HandleKey(ev); err != nil {
			t.Fatalf("HandleKey(%s): %v", ev, err)
		}
	}
}

func typeText(t *testing.T, a *app.Application, s string) {
	t.Helper()
	for _, r := range s {
		if err := a.HandleKey(key.NewRuneEvent(r, key.ModNone)); err != nil {
			t.Fatalf("HandleKey(%q): %v", r, err)
		}
	}
}

func TestHostEditing(t *testing.T) {
	a, h := newTestHost(t, "hello")

	err := h.Eval(`
		quill.goto_point(5)
		quill.insert(", world")
		quill.move(-5)
		quill.delete(1)
		result = quill.text() .. "|" .. quill.point() .. "|" .. quill.buffer_name()
	`)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got := h.State().GetGlobal("result").String(); got != "hello, orld|7|test" {
		t.Errorf("unexpected result %q", got)
	}
	if got := a.Active().Buffer().Text(); got != "hello, orld" {
		t.Errorf("unexpected buffer %q", got)
	}
}

func TestHostQueries(t *testing.T) {
	_, h := newTestHost(t, "one\ntwo\n")

	err := h.Eval(`
		quill.goto_point(5)
		start, line = quill.line()
		ch = quill.char()
		head = quill.slice(0, 3)
		tail = quill.slice(4)
		before = quill.mark()
		quill.set_mark()
		after = quill.mark()
		fill = quill.fill_column()
	`)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}

	want := map[string]string{
		"start":  "4",
		"line":   "two\n",
		"ch":     "w",
		"head":   "one",
		"tail":   "two\n",
		"before": "nil",
		"after":  "5",
		"fill":   "72",
	}
	for name, v := range want {
		if got := h.State().GetGlobal(name).String(); got != v {
			t.Errorf("%s: expected %q, got %q", name, v, got)
		}
	}
}

func TestHostRunCommand(t *testing.T) {
	a, h := newTestHost(t, "abc\ndef")

	if err := h.Eval(`quill.run("end-of-buffer"); quill.run("delete-backward", 2)`); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got := a.Active().Buffer().Text(); got != "abc\nd" {
		t.Errorf("unexpected buffer %q", got)
	}

	err := h.Eval(`quill.run("no-such-command")`)
	if !errors.Is(err, editor.ErrUnknownCommand) && (err == nil || !strings.Contains(err.Error(), "no-such-command")) {
		t.Errorf("expected unknown command error, got %v", err)
	}
}

func TestHostDefineAndBindCommand(t *testing.T) {
	a, h := newTestHost(t, "ab\n")

	err := h.Eval(`
		quill.command("duplicate-line", function(n)
			local _, line = quill.line()
			quill.run("beginning-of-line")
			for _ = 1, n do
				quill.insert(line)
			end
		end)
		quill.bind("C-c d", "duplicate-line")
	`)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}

	press(t, a, "C-c d")
	if got := a.Active().Buffer().Text(); got != "ab\nab\n" {
		t.Fatalf("unexpected buffer after C-c d: %q", got)
	}
	press(t, a, "C-u 2 C-c d")
	if got := a.Active().Buffer().Text(); got != "ab\nab\nab\nab\n" {
		t.Errorf("unexpected buffer after C-u 2 C-c d: %q", got)
	}

	if err := a.ApplyConfig(config.Default()); err != nil {
		t.Fatalf("ApplyConfig: %v", err)
	}
	if cmd, _ := a.Keymap().Lookup(mustSequence(t, "C-c d")); cmd != "duplicate-line" {
		t.Errorf("binding lost after reload, got %q", cmd)
	}
}

func mustSequence(t *testing.T, spec string) []key.Event {
	t.Helper()
	seq, err := key.ParseSequence(spec)
	if err != nil {
		t.Fatal(err)
	}
	return seq
}

func TestHostCommandErrorIsWhined(t *testing.T) {
	a, h := newTestHost(t, "")

	if err := h.Eval(`quill.command("explode", function() error("kaboom") end)`); err != nil {
		t.Fatal(err)
	}
	if err := a.Execute("explode", editor.Arg{}); err == nil || !strings.Contains(err.Error(), "kaboom") {
		t.Errorf("expected kaboom error, got %v", err)
	}
}

func TestHostDuplicateCommand(t *testing.T) {
	_, h := newTestHost(t, "")

	err := h.Eval(`quill.command("quit", function() end)`)
	if err == nil || !strings.Contains(err.Error(), app.ErrCommandExists.Error()) {
		t.Errorf("expected command exists error, got %v", err)
	}
}

func TestHostKillRing(t *testing.T) {
	a, h := newTestHost(t, "")

	if err := h.Eval(`quill.kill("foo"); quill.kill("bar", "append"); top = quill.yank()`); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got := h.State().GetGlobal("top").String(); got != "foobar" {
		t.Errorf("expected foobar, got %q", got)
	}
	if a.KillRing().Len() != 1 {
		t.Errorf("expected one entry, got %d", a.KillRing().Len())
	}
	if err := h.Eval(`quill.kill("x", "sideways")`); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestHostWhine(t *testing.T) {
	a, h := newTestHost(t, "")

	if err := h.Eval(`quill.whine("from lua")`); err != nil {
		t.Fatal(err)
	}
	if n, _ := a.Notices().Latest(); n.Text != "from lua" {
		t.Errorf("unexpected notice %q", n.Text)
	}
}

func TestHostEvalCommand(t *testing.T) {
	a, _ := newTestHost(t, "")

	press(t, a, "M-:")
	if a.Minibuffer() == nil {
		t.Fatal("expected the minibuffer to open")
	}
	typeText(t, a, `quill.insert("hi")`)
	press(t, a, "RET")

	if a.Minibuffer() != nil {
		t.Error("expected the minibuffer to close")
	}
	if got := a.Active().Buffer().Text(); got != "hi" {
		t.Errorf("expected eval to edit the session, got %q", got)
	}

	press(t, a, "M-:")
	typeText(t, a, "this is not lua")
	press(t, a, "RET")
	if n, _ := a.Notices().Latest(); !strings.Contains(n.Text, "eval") {
		t.Errorf("expected eval error notice, got %q", n.Text)
	}
}

func TestHostLoadScript(t *testing.T) {
	a, h := newTestHost(t, "")

	path := filepath.Join(t.TempDir(), "init.lua")
	if err := os.WriteFile(path, []byte(`quill.insert("loaded")`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := h.LoadScript(path); err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if got := a.Active().Buffer().Text(); got != "loaded" {
		t.Errorf("unexpected buffer %q", got)
	}

	err := h.LoadScript(filepath.Join(t.TempDir(), "missing.lua"))
	var opErr *app.OperationError
	if !errors.As(err, &opErr) || opErr.Op != "load" {
		t.Errorf("expected load OperationError, got %v", err)
	}
}

func TestHostNoSession(t *testing.T) {
	a, err := app.New(config.Default(), app.WithBufferRegistry(buffer.NewRegistry()))
	if err != nil {
		t.Fatal(err)
	}
	h, err := NewHost(a)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Close()

	err = h.Eval(`quill.point()`)
	if err == nil || !strings.Contains(err.Error(), ErrNoSession.Error()) {
		t.Errorf("expected no session error, got %v", err)
	}
}
