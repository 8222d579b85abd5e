package accelerator

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/zjrosen/menubar/internal/platform"
)

// unshifted is the inverse of shiftedKeys.
var unshifted = func() map[string]string {
	m := make(map[string]string, len(shiftedKeys))
	for shifted, base := range shiftedKeys {
		m[base] = shifted
	}
	return m
}()

// TerminalKey translates a into the key string bubbletea reports for the same
// chord. Terminals cannot report Command, Super or most Control+Shift chords;
// ok is false for those.
func TerminalKey(a Accelerator) (string, bool) {
	if a.IsZero() {
		return "", false
	}
	r := a.Resolve(platform.Linux)
	if r.Modifiers&(Super|AltGr) != 0 {
		return "", false
	}
	ctrl := r.Modifiers.Has(Control)
	shift := r.Modifiers.Has(Shift)

	var keyName string
	if info, ok := lookupKey(r.Key); ok {
		if info.term == "" {
			return "", false
		}
		keyName = info.term
		if ctrl && keyName == " " {
			// ctrl+space arrives as NUL.
			keyName = "@"
		}
		if shift {
			switch keyName {
			case "tab", "up", "down", "left", "right", "home", "end":
				keyName = "shift+" + keyName
			default:
				return "", false
			}
		}
	} else {
		switch {
		case shift && ctrl:
			return "", false
		case shift:
			if s, ok := unshifted[r.Key]; ok {
				keyName = s
			} else {
				keyName = strings.ToUpper(r.Key)
			}
		case ctrl:
			keyName = strings.ToLower(r.Key)
		default:
			keyName = strings.ToLower(r.Key)
		}
	}

	var b strings.Builder
	if r.Modifiers.Has(Alt) {
		b.WriteString("alt+")
	}
	if ctrl {
		b.WriteString("ctrl+")
	}
	b.WriteString(keyName)
	return b.String(), true
}

// Binding returns a key.Binding that matches a in the terminal. The binding is
// disabled when the chord cannot be reported by a terminal.
func Binding(a Accelerator, help string) key.Binding {
	k, ok := TerminalKey(a)
	if !ok {
		return key.NewBinding(key.WithDisabled())
	}
	return key.NewBinding(
		key.WithKeys(k),
		key.WithHelp(k, help),
	)
}
