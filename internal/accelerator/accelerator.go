// Package accelerator parses keyboard accelerator strings such as
// "CmdOrCtrl+Shift+Z" and renders them as platform display text.
package accelerator

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	ErrEmpty      = errors.New("empty accelerator")
	ErrMalformed  = errors.New("malformed accelerator")
	ErrNoKey      = errors.New("accelerator has no key")
	ErrUnknownKey = errors.New("unknown accelerator key")
)

// Modifier is a bit set of modifier keys.
type Modifier uint8

const (
	Shift Modifier = 1 << iota
	Control
	Alt
	AltGr
	Command
	// CommandOrControl stays unresolved until render time.
	CommandOrControl
	Super
)

// Has reports whether all bits of o are set in m.
func (m Modifier) Has(o Modifier) bool { return m&o == o }

var modifierNames = map[string]Modifier{
	"shift":            Shift,
	"control":          Control,
	"ctrl":             Control,
	"alt":              Alt,
	"option":           Alt,
	"altgr":            AltGr,
	"command":          Command,
	"cmd":              Command,
	"commandorcontrol": CommandOrControl,
	"cmdorctrl":        CommandOrControl,
	"super":            Super,
	"meta":             Super,
}

// canonicalOrder is the order modifiers appear in String().
var canonicalOrder = []struct {
	mod  Modifier
	name string
}{
	{CommandOrControl, "CommandOrControl"},
	{Command, "Command"},
	{Control, "Control"},
	{Alt, "Alt"},
	{AltGr, "AltGr"},
	{Shift, "Shift"},
	{Super, "Super"},
}

// shiftedKeys maps characters produced with Shift on a US layout to the
// physical key that produces them.
var shiftedKeys = map[string]string{
	"!": "1", "@": "2", "#": "3", "$": "4", "%": "5",
	"^": "6", "&": "7", "*": "8", "(": "9", ")": "0",
	"_": "-", "+": "=", ":": ";", "\"": "'", "<": ",",
	">": ".", "?": "/", "{": "[", "}": "]", "|": "\\", "~": "`",
}

// Accelerator is a parsed accelerator: a modifier set plus exactly one key.
// Key holds the canonical key name ("A", "=", "Tab", "F11").
type Accelerator struct {
	Modifiers Modifier
	Key       string
}

// Parse reads an accelerator string. Tokens are case-insensitive and joined
// by '+'. Repeated modifiers collapse, and when several keys are given the
// last one wins. Shifted aliases such as "Plus" normalize to their physical
// key with Shift added, so "Control+Plus" equals "Control+Shift+=".
func Parse(s string) (Accelerator, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Accelerator{}, ErrEmpty
	}
	// A literal '+' key shows up as an empty trailing token.
	if s == "+" {
		s = "Plus"
	} else if strings.HasSuffix(s, "++") {
		s = s[:len(s)-1] + "Plus"
	}

	var (
		acc     Accelerator
		key     string
		shifted bool
	)
	for _, raw := range strings.Split(s, "+") {
		tok := strings.TrimSpace(raw)
		if tok == "" {
			return Accelerator{}, fmt.Errorf("%w: %q", ErrMalformed, s)
		}
		if mod, ok := modifierNames[strings.ToLower(tok)]; ok {
			acc.Modifiers |= mod
			continue
		}
		k, sh, err := normalizeKey(tok)
		if err != nil {
			return Accelerator{}, err
		}
		key, shifted = k, sh
	}
	if key == "" {
		return Accelerator{}, fmt.Errorf("%w: %q", ErrNoKey, s)
	}
	if shifted {
		acc.Modifiers |= Shift
	}
	acc.Key = key
	return acc, nil
}

// MustParse is Parse for accelerators known at compile time.
func MustParse(s string) Accelerator {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

func normalizeKey(tok string) (key string, shifted bool, err error) {
	lower := strings.ToLower(tok)
	if lower == "plus" {
		return "=", true, nil
	}
	if base, ok := shiftedKeys[tok]; ok {
		return base, true, nil
	}
	if info, ok := namedKeys[lower]; ok {
		return info.name, false, nil
	}
	if utf8.RuneCountInString(tok) == 1 {
		r, _ := utf8.DecodeRuneInString(tok)
		return string(unicode.ToUpper(r)), false, nil
	}
	return "", false, fmt.Errorf("%w: %q", ErrUnknownKey, tok)
}

// String returns the canonical accelerator string, e.g. "CommandOrControl+Shift+Z".
func (a Accelerator) String() string {
	var b strings.Builder
	for _, m := range canonicalOrder {
		if a.Modifiers.Has(m.mod) {
			b.WriteString(m.name)
			b.WriteByte('+')
		}
	}
	b.WriteString(a.Key)
	return b.String()
}

// IsZero reports whether a holds no key.
func (a Accelerator) IsZero() bool { return a.Key == "" }
