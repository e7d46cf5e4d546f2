package app

import (
	"errors"
	"testing"

	"github.com/dshills/quill/internal/config"
	"github.com/dshills/quill/internal/editor"
	"github.com/dshills/quill/internal/engine/buffer"
	"github.com/dshills/quill/internal/input/key"
)

func newTestApp(t *testing.T, content string) *Application {
	t.Helper()
	return newTestAppWithConfig(t, config.Default(), content)
}

func newTestAppWithConfig(t *testing.T, cfg config.Config, content string) *Application {
	t.Helper()
	a, err := New(cfg, WithBufferRegistry(buffer.NewRegistry()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a.NewSession(a.OpenBuffer("test", content))
	t.Cleanup(a.Close)
	return a
}

// press sends each space-separated keystroke in spec.
func press(t *testing.T, a *Application, spec string) error {
	t.Helper()
	seq, err := key.ParseSequence(spec)
	if err != nil {
		t.Fatalf("ParseSequence(%q): %v", spec, err)
	}
	for _, ev := range seq {
		if err := a.HandleKey(ev); err != nil {
			return err
		}
	}
	return nil
}

// typeText sends each rune of s as an unmodified keystroke.
func typeText(t *testing.T, a *Application, s string) {
	t.Helper()
	for _, r := range s {
		if err := a.HandleKey(key.NewRuneEvent(r, key.ModNone)); err != nil {
			t.Fatalf("HandleKey(%q): %v", r, err)
		}
	}
}

func lastNotice(a *Application) string {
	n, _ := a.Notices().Latest()
	return n.Text
}

func TestTypingInserts(t *testing.T) {
	a := newTestApp(t, "")
	typeText(t, a, "hello")
	if err := press(t, a, "RET"); err != nil {
		t.Fatal(err)
	}
	typeText(t, a, "world")

	if got := a.Active().Buffer().Text(); got != "hello\nworld" {
		t.Errorf("expected %q, got %q", "hello\nworld", got)
	}
}

func TestBoundCommands(t *testing.T) {
	a := newTestApp(t, "one two\nthree")

	tests := []struct {
		keys  string
		point int
	}{
		{"C-e", 7},
		{"C-a", 0},
		{"M-f", 3},
		{"C-n", 11},
		{"M->", 13},
		{"M-<", 0},
		{"<right> <right>", 2},
	}
	for _, tt := range tests {
		if err := press(t, a, tt.keys); err != nil {
			t.Fatal(err)
		}
		if got := a.Active().Point(); got != tt.point {
			t.Errorf("after %s expected point %d, got %d", tt.keys, tt.point, got)
		}
	}
}

func TestPrefixKeys(t *testing.T) {
	a := newTestApp(t, "abcdef")
	_ = press(t, a, "C-SPC C-e C-x")

	if got := key.FormatSequence(a.PendingKeys()); got != "C-x" {
		t.Errorf("expected pending C-x, got %q", got)
	}

	_ = press(t, a, "C-x")
	if len(a.PendingKeys()) != 0 {
		t.Errorf("expected no pending keys, got %v", a.PendingKeys())
	}
	if got := a.Active().Point(); got != 0 {
		t.Errorf("expected exchange to move to 0, got %d", got)
	}
}

func TestUndefinedKeys(t *testing.T) {
	a := newTestApp(t, "")

	_ = press(t, a, "C-x z")
	if got := lastNotice(a); got != "C-x z is undefined" {
		t.Errorf("unexpected notice %q", got)
	}

	_ = press(t, a, "C-q")
	if got := lastNotice(a); got != "C-q is undefined" {
		t.Errorf("unexpected notice %q", got)
	}
	if a.Active().Buffer().Len() != 0 {
		t.Error("undefined keys should not insert text")
	}
}

func TestNumericArguments(t *testing.T) {
	tests := []struct {
		keys  string
		point int
	}{
		{"C-u C-f", 4},
		{"C-u C-u C-f", 16},
		{"C-u 3 C-f", 3},
		{"C-u 1 2 C-f", 12},
		{"M-3 C-f", 3},
		{"M-1 M-0 C-f", 10},
		{"M-> C-u - C-f", 19},
		{"M-> C-u - 5 C-f", 15},
		{"M-> M-- C-f", 19},
	}

	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			a := newTestApp(t, "abcdefghijklmnopqrst")
			if err := press(t, a, tt.keys); err != nil {
				t.Fatal(err)
			}
			if got := a.Active().Point(); got != tt.point {
				t.Errorf("expected point %d, got %d", tt.point, got)
			}
		})
	}
}

func TestNumericArgumentRepeatsInsert(t *testing.T) {
	a := newTestApp(t, "")
	_ = press(t, a, "C-u 3")
	typeText(t, a, "ab")

	if got := a.Active().Buffer().Text(); got != "aaab" {
		t.Errorf("expected %q, got %q", "aaab", got)
	}
}

func TestPromptedCommand(t *testing.T) {
	a := newTestApp(t, "")

	_ = press(t, a, "C-x f")
	mini := a.Minibuffer()
	if mini == nil {
		t.Fatal("expected the minibuffer to open")
	}
	if got := mini.Buffer().Text(); got != "Set fill-column to: " {
		t.Errorf("unexpected prompt %q", got)
	}

	typeText(t, a, "x")
	_ = press(t, a, "RET")
	if a.Minibuffer() == nil {
		t.Fatal("expected the minibuffer to stay open after bad input")
	}
	if got := lastNotice(a); got != `Invalid fill column: "x"` {
		t.Errorf("unexpected notice %q", got)
	}

	_ = press(t, a, "DEL")
	typeText(t, a, "40")
	_ = press(t, a, "RET")
	if a.Minibuffer() != nil {
		t.Fatal("expected the minibuffer to close")
	}
	if got := a.Active().FillColumn(); got != 40 {
		t.Errorf("expected fill column 40, got %d", got)
	}
	if a.Active().Pending() != nil {
		t.Error("expected no parked request")
	}
}

func TestPromptedCommandWithArgument(t *testing.T) {
	a := newTestApp(t, "")
	_ = press(t, a, "C-u 6 0 C-x f")

	if a.Minibuffer() != nil {
		t.Error("expected no prompt when an argument is given")
	}
	if got := a.Active().FillColumn(); got != 60 {
		t.Errorf("expected fill column 60, got %d", got)
	}
}

func TestKeyboardQuit(t *testing.T) {
	a := newTestApp(t, "abcdef")

	_ = press(t, a, "C-x f")
	_ = press(t, a, "C-g")
	if a.Minibuffer() != nil {
		t.Error("expected C-g to close the minibuffer")
	}
	if a.Active().Pending() != nil {
		t.Error("expected C-g to abort the parked request")
	}
	if got := lastNotice(a); got != "Quit" {
		t.Errorf("expected notice 'Quit', got %q", got)
	}

	_ = press(t, a, "C-x C-g")
	if len(a.PendingKeys()) != 0 {
		t.Error("expected C-g to cancel a prefix")
	}
	_ = press(t, a, "C-u C-g C-f")
	if got := a.Active().Point(); got != 1 {
		t.Errorf("expected C-g to drop the argument, point %d", got)
	}
}

func TestMinibufferHistory(t *testing.T) {
	a := newTestApp(t, "")
	_ = press(t, a, "C-x f")
	typeText(t, a, "50")
	_ = press(t, a, "RET C-x f M-p")

	if got := a.Minibuffer().Input(); got != "50" {
		t.Errorf("expected recalled input %q, got %q", "50", got)
	}
}

func TestMinibufferIsNotReentrant(t *testing.T) {
	a := newTestApp(t, "")
	_ = press(t, a, "C-x f C-x b")

	if got := lastNotice(a); got == "" || a.Minibuffer() == nil {
		t.Errorf("expected a whine and the first prompt kept, notice %q", got)
	}
	if got := a.Minibuffer().Buffer().Text(); got != "Set fill-column to: " {
		t.Errorf("expected the first prompt, got %q", got)
	}
}

func TestQuit(t *testing.T) {
	a := newTestApp(t, "")
	if err := press(t, a, "C-x C-c"); !errors.Is(err, ErrQuit) {
		t.Errorf("expected ErrQuit, got %v", err)
	}
}

func TestSharedKillRing(t *testing.T) {
	a := newTestApp(t, "hello world")
	first := a.Active()

	_ = press(t, a, "C-x 2")
	if len(a.Sessions()) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(a.Sessions()))
	}
	_ = press(t, a, "C-k C-x o")
	if a.Active() != first {
		t.Fatal("expected C-x o to return to the first session")
	}

	second := a.Sessions()[1]
	if second.Buffer() != first.Buffer() {
		t.Error("expected both sessions on one buffer")
	}
	if got := a.KillRing().Yank(1); got != "hello world" {
		t.Errorf("expected the kill in the shared ring, got %q", got)
	}

	_ = press(t, a, "C-y")
	if got := first.Buffer().Text(); got != "hello world" {
		t.Errorf("expected text restored by yank, got %q", got)
	}
}

func TestSessionCommands(t *testing.T) {
	a := newTestApp(t, "")

	_ = press(t, a, "C-x o")
	if got := lastNotice(a); got != "No other session" {
		t.Errorf("unexpected notice %q", got)
	}
	_ = press(t, a, "C-x 0")
	if got := lastNotice(a); got != "Attempt to delete the sole session" {
		t.Errorf("unexpected notice %q", got)
	}

	_ = press(t, a, "C-x 2 C-x 0")
	if len(a.Sessions()) != 1 {
		t.Errorf("expected 1 session, got %d", len(a.Sessions()))
	}
}

func TestSwitchAndKillBuffer(t *testing.T) {
	a := newTestApp(t, "first")

	_ = press(t, a, "C-x b")
	typeText(t, a, "notes")
	_ = press(t, a, "RET")
	if got := a.Active().Buffer().Name(); got != "notes" {
		t.Fatalf("expected buffer notes, got %q", got)
	}
	typeText(t, a, "n")

	_ = press(t, a, "C-x b")
	typeText(t, a, "test")
	_ = press(t, a, "RET")
	if got := a.Active().Buffer().Text(); got != "first" {
		t.Errorf("expected the original buffer back, got %q", got)
	}

	_ = press(t, a, "C-x b RET")
	if got := a.Active().Buffer().Name(); got != "test" {
		t.Errorf("expected empty input to keep the buffer, got %q", got)
	}

	_ = press(t, a, "C-x k")
	if got := a.Active().Buffer().Name(); got != ScratchName {
		t.Errorf("expected %s after killing the last shown buffer, got %q", ScratchName, got)
	}
}

func TestReadOnlyBufferWhines(t *testing.T) {
	a := newTestApp(t, "fixed")
	a.Active().Buffer().SetWritable(false)

	typeText(t, a, "x")
	if got := lastNotice(a); got != "Buffer is read-only" {
		t.Errorf("unexpected notice %q", got)
	}
}

func TestKeymapOverrides(t *testing.T) {
	cfg := config.Default()
	cfg.Keymap = map[string]string{"C-c e": "end-of-line", "C-e": ""}
	a := newTestAppWithConfig(t, cfg, "abc")

	_ = press(t, a, "C-e")
	if got := lastNotice(a); got != "C-e is undefined" {
		t.Errorf("expected C-e unbound, notice %q", got)
	}
	_ = press(t, a, "C-c e")
	if got := a.Active().Point(); got != 3 {
		t.Errorf("expected C-c e to reach the end, point %d", got)
	}
}

func TestApplyConfig(t *testing.T) {
	a := newTestApp(t, "")

	cfg := config.Default()
	cfg.Editor.FillColumn = 30
	cfg.Keymap = map[string]string{"C-c q": "quit"}
	if err := a.ApplyConfig(cfg); err != nil {
		t.Fatalf("ApplyConfig: %v", err)
	}
	if got := a.Active().FillColumn(); got != 30 {
		t.Errorf("expected fill column 30, got %d", got)
	}
	if err := press(t, a, "C-c q"); !errors.Is(err, ErrQuit) {
		t.Errorf("expected new binding to quit, got %v", err)
	}

	bad := config.Default()
	bad.Keymap = map[string]string{"Q-q": "quit"}
	if err := a.ApplyConfig(bad); err == nil {
		t.Error("expected a bad keymap to be rejected")
	}
	if a.Config().Editor.FillColumn != 30 {
		t.Error("expected the previous config kept after a failed apply")
	}
}

func TestRegisterCommand(t *testing.T) {
	a := newTestApp(t, "")
	var got editor.Arg
	err := a.RegisterCommand("probe", func(_ *Application, arg editor.Arg) error {
		got = arg
		return nil
	})
	if err != nil {
		t.Fatalf("RegisterCommand: %v", err)
	}
	if err := a.RegisterCommand("probe", nil); !errors.Is(err, ErrCommandExists) {
		t.Errorf("expected ErrCommandExists, got %v", err)
	}

	_ = a.Keymap().Bind("C-c p", "probe")
	_ = press(t, a, "C-u 7 C-c p")
	if !got.HasCount || got.Count != 7 {
		t.Errorf("expected count 7, got %+v", got)
	}
}

func TestUnknownCommandWhines(t *testing.T) {
	a := newTestApp(t, "")
	_ = a.Keymap().Bind("C-c x", "no-such-command")

	if err := press(t, a, "C-c x"); err != nil {
		t.Fatalf("expected the failure shown as a notice, got %v", err)
	}
	if !errors.Is(a.Execute("no-such-command", editor.Arg{}), editor.ErrUnknownCommand) {
		t.Error("expected Execute to report ErrUnknownCommand")
	}
}

func TestNoSession(t *testing.T) {
	a, err := New(config.Default(), WithBufferRegistry(buffer.NewRegistry()))
	if err != nil {
		t.Fatal(err)
	}
	if err := a.HandleKey(key.NewRuneEvent('a', key.ModNone)); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
}

func TestNewRejectsBadKeymap(t *testing.T) {
	cfg := config.Default()
	cfg.Keymap = map[string]string{"C-": "x"}
	if _, err := New(cfg); err == nil {
		t.Error("expected New to fail")
	}
}

func TestRuntimeBind(t *testing.T) {
	a := newTestApp(t, "abc")

	if err := a.Bind("C-c e", "end-of-buffer"); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if err := press(t, a, "C-c e"); err != nil {
		t.Fatal(err)
	}
	if p := a.Active().Point(); p != 3 {
		t.Errorf("expected point 3, got %d", p)
	}

	cfg := config.Default()
	cfg.Keymap = map[string]string{"C-c e": "beginning-of-buffer"}
	if err := a.ApplyConfig(cfg); err != nil {
		t.Fatalf("ApplyConfig: %v", err)
	}
	if err := press(t, a, "C-a C-c e"); err != nil {
		t.Fatal(err)
	}
	if p := a.Active().Point(); p != 3 {
		t.Errorf("runtime binding should win over config, point %d", p)
	}

	var opErr *OperationError
	if err := a.Bind("C-", "yank"); !errors.As(err, &opErr) {
		t.Errorf("expected OperationError for bad keys, got %v", err)
	}
}
