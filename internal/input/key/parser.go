package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptySpec        = errors.New("empty key specification")
	ErrInvalidSpec      = errors.New("invalid key specification")
	ErrUnmatchedBracket = errors.New("unmatched bracket in key specification")
)

// Parse parses one keystroke such as "C-x", "M-<", "RET" or "<up>".
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	var mods Modifier
	rest := spec
	for len(rest) > 2 && rest[1] == '-' {
		switch rest[0] {
		case 'C':
			mods = mods.With(ModCtrl)
		case 'M':
			mods = mods.With(ModMeta)
		default:
			return Event{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidSpec, rest[:1], spec)
		}
		rest = rest[2:]
	}

	if rest == "SPC" {
		return NewRuneEvent(' ', mods), nil
	}
	if k, ok := byName[rest]; ok {
		return NewSpecialEvent(k, mods), nil
	}
	if strings.HasPrefix(rest, "<") && !strings.HasSuffix(rest, ">") {
		return Event{}, fmt.Errorf("%w: %q", ErrUnmatchedBracket, spec)
	}
	if r, size := utf8.DecodeRuneInString(rest); size == len(rest) && r != utf8.RuneError {
		return NewRuneEvent(r, mods), nil
	}
	return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
}

// ParseSequence parses space-separated keystrokes such as "C-x C-x".
func ParseSequence(spec string) ([]Event, error) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return nil, ErrEmptySpec
	}
	events := make([]Event, len(fields))
	for i, f := range fields {
		e, err := Parse(f)
		if err != nil {
			return nil, err
		}
		events[i] = e
	}
	return events, nil
}
