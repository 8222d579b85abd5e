package accelerator

import (
	"strconv"
	"strings"
)

// keyInfo describes how a named key is displayed.
type keyInfo struct {
	name string // canonical and non-mac display name
	// glyph replaces name on darwin when set.
	glyph string
	// sentinel marks keys whose darwin key equivalent is followed by a NUL.
	sentinel bool
	// term is the bubbletea key name; empty when the terminal cannot report it.
	term string
}

var namedKeys = map[string]keyInfo{
	"tab":                {name: "Tab", glyph: "⇥", sentinel: true, term: "tab"},
	"space":              {name: "Space", term: " "},
	"backspace":          {name: "Backspace", glyph: "⌫", term: "backspace"},
	"delete":             {name: "Delete", glyph: "⌦", term: "delete"},
	"insert":             {name: "Insert", term: "insert"},
	"return":             {name: "Enter", glyph: "↩", term: "enter"},
	"enter":              {name: "Enter", glyph: "↩", term: "enter"},
	"up":                 {name: "Up", glyph: "↑", term: "up"},
	"down":               {name: "Down", glyph: "↓", term: "down"},
	"left":               {name: "Left", glyph: "←", term: "left"},
	"right":              {name: "Right", glyph: "→", term: "right"},
	"home":               {name: "Home", glyph: "↖", term: "home"},
	"end":                {name: "End", glyph: "↘", term: "end"},
	"pageup":             {name: "PageUp", glyph: "⇞", term: "pgup"},
	"pagedown":           {name: "PageDown", glyph: "⇟", term: "pgdown"},
	"escape":             {name: "Esc", glyph: "⎋", term: "esc"},
	"esc":                {name: "Esc", glyph: "⎋", term: "esc"},
	"capslock":           {name: "CapsLock"},
	"numlock":            {name: "NumLock"},
	"scrolllock":         {name: "ScrollLock"},
	"printscreen":        {name: "PrintScreen"},
	"volumeup":           {name: "VolumeUp"},
	"volumedown":         {name: "VolumeDown"},
	"volumemute":         {name: "VolumeMute"},
	"medianexttrack":     {name: "MediaNextTrack"},
	"mediaprevioustrack": {name: "MediaPreviousTrack"},
	"mediastop":          {name: "MediaStop"},
	"mediaplaypause":     {name: "MediaPlayPause"},
	"num0":               {name: "Num0"},
	"num1":               {name: "Num1"},
	"num2":               {name: "Num2"},
	"num3":               {name: "Num3"},
	"num4":               {name: "Num4"},
	"num5":               {name: "Num5"},
	"num6":               {name: "Num6"},
	"num7":               {name: "Num7"},
	"num8":               {name: "Num8"},
	"num9":               {name: "Num9"},
	"numdec":             {name: "NumDec"},
	"numadd":             {name: "NumAdd"},
	"numsub":             {name: "NumSub"},
	"nummult":            {name: "NumMult"},
	"numdiv":             {name: "NumDiv"},
}

func init() {
	for i := 1; i <= 24; i++ {
		n := strconv.Itoa(i)
		info := keyInfo{name: "F" + n}
		if i <= 20 {
			info.term = "f" + n
		}
		namedKeys["f"+n] = info
	}
}

// lookupKey returns display information for a canonical key name.
// Single-character keys have no entry and display as themselves.
func lookupKey(name string) (keyInfo, bool) {
	info, ok := namedKeys[strings.ToLower(name)]
	return info, ok
}
