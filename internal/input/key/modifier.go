package key

// Modifier is a set of modifier keys.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModCtrl is the Control key.
	ModCtrl Modifier = 1 << iota

	// ModMeta is Meta, sent by Alt or Escape on most terminals.
	ModMeta
)

// Has reports whether m contains mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns m plus mod.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns m minus mod.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// String returns the modifier prefixes, as in "C-M-".
func (m Modifier) String() string {
	s := ""
	if m.Has(ModCtrl) {
		s += "C-"
	}
	if m.Has(ModMeta) {
		s += "M-"
	}
	return s
}
