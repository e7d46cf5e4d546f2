// Package keymap maps key sequences to command names.
package keymap

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/dshills/quill/internal/input/key"
)

// Binding maps a key sequence to a command.
type Binding struct {
	Keys    string
	Command string
}

// Status is the outcome of a lookup.
type Status int

const (
	// NoMatch means no binding starts with the keys.
	NoMatch Status = iota
	// Prefix means more keys are needed.
	Prefix
	// Match means the keys name a command.
	Match
)

type node struct {
	command string
	next    map[key.Event]*node
}

// Keymap is a tree of key sequences. A sequence is either bound to a
// command or is a prefix of longer sequences, never both.
type Keymap struct {
	Name string
	root *node
}

// New creates an empty keymap.
func New(name string) *Keymap {
	return &Keymap{Name: name, root: &node{}}
}

// Bind binds the sequence in keys to command, replacing any binding or
// prefix it overlaps.
func (m *Keymap) Bind(keys, command string) error {
	if command == "" {
		return fmt.Errorf("binding %q: empty command", keys)
	}
	seq, err := key.ParseSequence(keys)
	if err != nil {
		return fmt.Errorf("binding %q: %w", keys, err)
	}
	n := m.root
	for _, e := range seq {
		n.command = ""
		if n.next == nil {
			n.next = make(map[key.Event]*node)
		}
		child, ok := n.next[e]
		if !ok {
			child = &node{}
			n.next[e] = child
		}
		n = child
	}
	n.command = command
	n.next = nil
	return nil
}

// Unbind removes the binding or prefix at keys.
func (m *Keymap) Unbind(keys string) error {
	seq, err := key.ParseSequence(keys)
	if err != nil {
		return fmt.Errorf("unbinding %q: %w", keys, err)
	}
	n := m.root
	for _, e := range seq[:len(seq)-1] {
		if n = n.next[e]; n == nil {
			return nil
		}
	}
	delete(n.next, seq[len(seq)-1])
	return nil
}

// Lookup resolves a sequence of keystrokes.
func (m *Keymap) Lookup(seq []key.Event) (string, Status) {
	if len(seq) == 0 {
		return "", NoMatch
	}
	n := m.root
	for _, e := range seq {
		if n = n.next[e]; n == nil {
			return "", NoMatch
		}
	}
	if n.command != "" {
		return n.command, Match
	}
	return "", Prefix
}

// Bindings lists every binding, sorted by key sequence.
func (m *Keymap) Bindings() []Binding {
	var out []Binding
	var walk func(n *node, prefix []key.Event)
	walk = func(n *node, prefix []key.Event) {
		if n.command != "" {
			out = append(out, Binding{Keys: key.FormatSequence(prefix), Command: n.command})
		}
		for e, child := range n.next {
			walk(child, append(slices.Clip(prefix), e))
		}
	}
	walk(m.root, nil)
	slices.SortFunc(out, func(a, b Binding) int { return cmp.Compare(a.Keys, b.Keys) })
	return out
}

// Clone returns an independent copy.
func (m *Keymap) Clone() *Keymap {
	c := New(m.Name)
	for _, b := range m.Bindings() {
		// Bindings come from parsed sequences and always parse again.
		_ = c.Bind(b.Keys, b.Command)
	}
	return c
}

// Apply binds every entry of overrides. An empty command unbinds.
// Overrides are applied in key order and the first failure stops them.
func (m *Keymap) Apply(overrides map[string]string) error {
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		var err error
		if cmd := overrides[k]; cmd == "" {
			err = m.Unbind(k)
		} else {
			err = m.Bind(k, cmd)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
