package accelerator

import (
	"strings"

	"github.com/zjrosen/menubar/internal/platform"
)

// macOrder is the order macOS draws modifier glyphs.
var macOrder = []struct {
	mod   Modifier
	glyph string
}{
	{Control, "⌃"},
	{Alt | AltGr, "⌥"},
	{Shift, "⇧"},
	{Command, "⌘"},
}

// longOrder is the order other platforms spell out modifiers.
var longOrder = []struct {
	mod  Modifier
	name string
}{
	{Control, "Ctrl"},
	{Alt, "Alt"},
	{AltGr, "AltGr"},
	{Shift, "Shift"},
	{Super, "Super"},
}

// Resolve replaces CommandOrControl with the primary shortcut modifier of p.
// On darwin Super is the Command key as well.
func (a Accelerator) Resolve(p platform.Platform) Accelerator {
	mods := a.Modifiers &^ CommandOrControl
	if a.Modifiers.Has(CommandOrControl) {
		if p.IsMac() {
			mods |= Command
		} else {
			mods |= Control
		}
	}
	if p.IsMac() && mods.Has(Super) {
		mods = mods&^Super | Command
	}
	if !p.IsMac() && mods.Has(Command) {
		// Command has no key of its own outside macOS.
		mods = mods&^Command | Super
	}
	return Accelerator{Modifiers: mods, Key: a.Key}
}

// Render returns the display text of a on p. It is a pure function of its
// inputs.
func Render(a Accelerator, p platform.Platform) string {
	if a.IsZero() {
		return ""
	}
	r := a.Resolve(p)
	if p.IsMac() {
		return renderMac(r)
	}
	return renderLong(r, p)
}

// RenderString parses s and renders it for p. Unparsable input renders as "".
func RenderString(s string, p platform.Platform) string {
	a, err := Parse(s)
	if err != nil {
		return ""
	}
	return Render(a, p)
}

func renderMac(a Accelerator) string {
	var b strings.Builder
	for _, m := range macOrder {
		if a.Modifiers&m.mod != 0 {
			b.WriteString(m.glyph)
		}
	}
	info, named := lookupKey(a.Key)
	switch {
	case named && info.glyph != "":
		b.WriteString(info.glyph)
		if info.sentinel {
			b.WriteByte(0)
		}
	case named:
		b.WriteString(info.name)
	default:
		b.WriteString(a.Key)
	}
	return b.String()
}

func renderLong(a Accelerator, p platform.Platform) string {
	parts := make([]string, 0, len(longOrder)+1)
	for _, m := range longOrder {
		if !a.Modifiers.Has(m.mod) {
			continue
		}
		name := m.name
		if m.mod == Super && p == platform.Windows {
			name = "Win"
		}
		parts = append(parts, name)
	}
	if info, ok := lookupKey(a.Key); ok {
		parts = append(parts, info.name)
	} else {
		parts = append(parts, a.Key)
	}
	return strings.Join(parts, "+")
}
