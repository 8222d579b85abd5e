// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// MenuMap holds the keys that drive an open menu bar.
type MenuMap struct {
	Open   key.Binding
	Close  key.Binding
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
}

// AppMap holds the host application's own keys. They only apply when no
// menu accelerator claims the same key.
type AppMap struct {
	ToggleAccelerators key.Binding
	Reopen             key.Binding
	Quit               key.Binding
}

// Menu is the menu bar keymap.
var Menu = MenuMap{
	Open: key.NewBinding(
		key.WithKeys("f10"),
		key.WithHelp("f10", "open menu"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc", "f10"),
		key.WithHelp("esc", "close menu"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "previous item"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "next item"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "previous menu"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "next menu"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "select"),
	),
}

// App is the host keymap.
var App = AppMap{
	ToggleAccelerators: key.NewBinding(
		key.WithKeys("f2"),
		key.WithHelp("f2", "toggle accelerators"),
	),
	Reopen: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "reopen window"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

// Hint renders bindings as "key desc" pairs joined by " · ".
func Hint(bindings ...key.Binding) string {
	var out string
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		if out != "" {
			out += " · "
		}
		h := b.Help()
		out += h.Key + " " + h.Desc
	}
	return out
}
