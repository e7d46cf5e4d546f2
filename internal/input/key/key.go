package key

import "fmt"

// Key identifies a non-character key. Character keys use KeyRune and carry
// the character in Event.Rune.
type Key uint16

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// KeyRune is any character key.
	KeyRune
)

// names holds the Emacs spelling of each special key.
var names = map[Key]string{
	KeyEscape:    "ESC",
	KeyEnter:     "RET",
	KeyTab:       "TAB",
	KeyBackspace: "DEL",
	KeyDelete:    "<delete>",
	KeyInsert:    "<insert>",
	KeyHome:      "<home>",
	KeyEnd:       "<end>",
	KeyPageUp:    "<prior>",
	KeyPageDown:  "<next>",
	KeyUp:        "<up>",
	KeyDown:      "<down>",
	KeyLeft:      "<left>",
	KeyRight:     "<right>",
}

// byName is the inverse of names plus the function keys.
var byName = func() map[string]Key {
	m := make(map[string]Key, len(names)+12)
	for k, n := range names {
		m[n] = k
	}
	for i := range 12 {
		m[fmt.Sprintf("<f%d>", i+1)] = KeyF1 + Key(i)
	}
	return m
}()

// String returns the Emacs spelling of the key.
func (k Key) String() string {
	switch {
	case k == KeyNone:
		return "none"
	case k == KeyRune:
		return "rune"
	case k.IsFunctionKey():
		return fmt.Sprintf("<f%d>", k-KeyF1+1)
	}
	if n, ok := names[k]; ok {
		return n
	}
	return fmt.Sprintf("Key(%d)", k)
}

// IsSpecial reports whether k is a non-character key.
func (k Key) IsSpecial() bool {
	return k != KeyNone && k != KeyRune
}

// IsFunctionKey reports whether k is one of F1 to F12.
func (k Key) IsFunctionKey() bool {
	return k >= KeyF1 && k <= KeyF12
}

// IsArrowKey reports whether k is an arrow key.
func (k Key) IsArrowKey() bool {
	return k >= KeyUp && k <= KeyRight
}
