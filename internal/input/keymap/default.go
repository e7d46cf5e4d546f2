package keymap

// defaults are the stock bindings. Printable keys without a binding
// insert themselves.
var defaults = []Binding{
	{"C-f", "forward-char"},
	{"<right>", "forward-char"},
	{"C-b", "backward-char"},
	{"<left>", "backward-char"},
	{"C-n", "next-line"},
	{"<down>", "next-line"},
	{"C-p", "previous-line"},
	{"<up>", "previous-line"},
	{"C-a", "beginning-of-line"},
	{"<home>", "beginning-of-line"},
	{"C-e", "end-of-line"},
	{"<end>", "end-of-line"},
	{"M-f", "forward-word"},
	{"M-b", "backward-word"},
	{"M-<", "beginning-of-buffer"},
	{"M->", "end-of-buffer"},
	{"C-SPC", "set-mark"},
	{"C-x C-x", "exchange-point-and-mark"},
	{"C-x C-SPC", "pop-mark"},
	{"C-d", "delete-forward"},
	{"<delete>", "delete-forward"},
	{"DEL", "delete-backward"},
	{"RET", "newline"},
	{"TAB", "insert-tab"},
	{"C-w", "kill-region"},
	{"C-k", "kill-line"},
	{"M-w", "copy-region"},
	{"C-y", "yank"},
	{"M-y", "yank-pop"},
	{"C-_", "undo"},
	{"C-/", "undo"},
	{"C-x u", "undo"},
	{"M-q", "fill"},
	{"C-x f", "set-fill-column"},
	{"M-p", "previous-history"},
	{"M-n", "next-history"},
	{"C-g", "keyboard-quit"},
	{"C-u", "universal-argument"},
	{"M-0", "digit-argument"},
	{"M-1", "digit-argument"},
	{"M-2", "digit-argument"},
	{"M-3", "digit-argument"},
	{"M-4", "digit-argument"},
	{"M-5", "digit-argument"},
	{"M-6", "digit-argument"},
	{"M-7", "digit-argument"},
	{"M-8", "digit-argument"},
	{"M-9", "digit-argument"},
	{"M--", "negative-argument"},
	{"C-x b", "switch-to-buffer"},
	{"C-x k", "kill-buffer"},
	{"C-x o", "other-session"},
	{"C-x 2", "split-session"},
	{"C-x 0", "delete-session"},
	{"M-:", "eval-lua"},
	{"C-x C-c", "quit"},
}

// Default returns a fresh keymap holding the stock bindings.
func Default() *Keymap {
	m := New("global")
	for _, b := range defaults {
		if err := m.Bind(b.Keys, b.Command); err != nil {
			panic(err)
		}
	}
	return m
}
