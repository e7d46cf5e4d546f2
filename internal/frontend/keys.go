package frontend

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/quill/internal/input/key"
)

// specialKeys maps tcell keys that are not control characters.
var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
}

// controlRunes maps control characters outside C-a through C-z.
var controlRunes = map[tcell.Key]rune{
	tcell.KeyCtrlSpace:      ' ',
	tcell.KeyCtrlUnderscore: '_',
	tcell.KeyCtrlBackslash:  '\\',
	tcell.KeyCtrlRightSq:    ']',
	tcell.KeyCtrlCarat:      '^',
}

// convertKey translates a tcell key event. It reports false for keys
// with no equivalent.
func convertKey(ev *tcell.EventKey) (key.Event, bool) {
	var mods key.Modifier
	if ev.Modifiers()&(tcell.ModAlt|tcell.ModMeta) != 0 {
		mods = mods.With(key.ModMeta)
	}

	k := ev.Key()
	if k == tcell.KeyRune {
		r := ev.Rune()
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			mods = mods.With(key.ModCtrl)
		}
		return key.NewRuneEvent(r, mods), true
	}
	if sk, ok := specialKeys[k]; ok {
		return key.NewSpecialEvent(sk, mods), true
	}
	if r, ok := controlRunes[k]; ok {
		return key.NewRuneEvent(r, mods.With(key.ModCtrl)), true
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		r := rune('a' + (k - tcell.KeyCtrlA))
		return key.NewRuneEvent(r, mods.With(key.ModCtrl)), true
	}
	return key.Event{}, false
}
