package editor

import (
	"github.com/dshills/quill/internal/engine/buffer"
)

// prompts names the buffers behind prompts. They never collide with
// user buffers.
var prompts = buffer.NewRegistry()

// Prompt is an editor whose buffer begins with a protected prompt string.
type Prompt struct {
	*Editor

	divider  int
	history  *History
	recalled int
	stash    string
	onCommit func(string)
}

// NewPrompt creates a prompt showing text. Input is recorded in history
// when committed; a nil history gets a private one.
func NewPrompt(text string, history *History, opts ...Option) *Prompt {
	if history == nil {
		history = &History{}
	}
	buf := buffer.New("*prompt*", buffer.WithRegistry(prompts), buffer.WithContent(text))
	buf.ClearUndo()

	p := &Prompt{
		Editor:  NewEditor(buf, opts...),
		divider: buf.Len(),
		history: history,
	}
	p.writableAt = func(point int) bool { return point >= p.divider }
	p.Goto(p.divider)

	p.Bind(cmdPreviousHistory, simple(func(Arg) { p.PreviousHistory() }))
	p.Bind(cmdNextHistory, simple(func(Arg) { p.NextHistory() }))
	p.Bind(cmdCommit, simple(func(Arg) { p.Commit() }))
	return p
}

// Divider returns the length of the protected prefix.
func (p *Prompt) Divider() int {
	return p.divider
}

// OnCommit sets a function called with the input on every commit.
func (p *Prompt) OnCommit(fn func(string)) {
	p.onCommit = fn
}

// Input returns the text after the prompt.
func (p *Prompt) Input() string {
	return p.buf.Slice(p.divider, p.buf.Len())
}

// Commit records the input in the history and returns it.
func (p *Prompt) Commit() string {
	p.touch(cmdCommit)
	s := p.Input()
	p.history.Add(s)
	p.recalled = 0
	p.stash = ""
	if p.onCommit != nil {
		p.onCommit(s)
	}
	return s
}

// setInput replaces everything after the prompt.
func (p *Prompt) setInput(s string) {
	p.replaceAt(p.divider, p.buf.Len()-p.divider, s, false)
	p.Goto(p.buf.Len())
}

// PreviousHistory replaces the input with the next older history entry.
// The first recall saves the uncommitted input.
func (p *Prompt) PreviousHistory() {
	p.touch(cmdPreviousHistory)
	s, ok := p.history.Recall(p.recalled + 1)
	if !ok {
		p.whine("Beginning of history; no preceding item")
		return
	}
	if p.recalled == 0 {
		p.stash = p.Input()
	}
	p.recalled++
	p.setInput(s)
}

// NextHistory moves back toward the newest entry. Moving past it restores
// the saved input.
func (p *Prompt) NextHistory() {
	p.touch(cmdNextHistory)
	if p.recalled == 0 {
		p.whine("End of history; no default available")
		return
	}
	p.recalled--
	if p.recalled == 0 {
		p.setInput(p.stash)
		p.stash = ""
		return
	}
	s, _ := p.history.Recall(p.recalled)
	p.setInput(s)
}

// Close ends the session and frees the prompt's buffer.
func (p *Prompt) Close() {
	p.Editor.Close()
	p.buf.Close()
}

// ShortPrompt reads a single line; newline commits.
type ShortPrompt struct {
	*Prompt
}

// NewShortPrompt creates a single-line prompt.
func NewShortPrompt(text string, history *History, opts ...Option) *ShortPrompt {
	p := &ShortPrompt{Prompt: NewPrompt(text, history, opts...)}
	p.Bind(cmdNewLine, simple(func(Arg) { p.Commit() }))
	return p
}

// LongPrompt reads multiple lines; newline inserts and commit ends input.
type LongPrompt struct {
	*Prompt
}

// NewLongPrompt creates a multi-line prompt.
func NewLongPrompt(text string, history *History, opts ...Option) *LongPrompt {
	return &LongPrompt{Prompt: NewPrompt(text, history, opts...)}
}
