package menu

import (
	"fmt"

	"github.com/zjrosen/menubar/internal/roles"
)

// ItemType is the closed set of menu item kinds.
type ItemType string

const (
	TypeNormal    ItemType = "normal"
	TypeSeparator ItemType = "separator"
	TypeSubmenu   ItemType = "submenu"
	TypeCheckbox  ItemType = "checkbox"
	TypeRadio     ItemType = "radio"
)

// ParseType validates s against the closed set of item types.
func ParseType(s string) (ItemType, error) {
	switch t := ItemType(s); t {
	case TypeNormal, TypeSeparator, TypeSubmenu, TypeCheckbox, TypeRadio:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownType, s)
	}
}

// Checkable reports whether items of type t carry a checked state.
func (t ItemType) Checkable() bool { return t == TypeCheckbox || t == TypeRadio }

// Event describes what triggered a command. The dispatcher forwards it to
// click handlers untouched.
type Event struct {
	TriggeredByAccelerator bool
	Payload                any
}

// ClickFunc handles a click on item. item is the live compiled item, not a
// copy; win is the focused window and may be nil.
type ClickFunc func(item *Item, win roles.Window, ev Event)

// Descriptor describes one menu item in a template.
type Descriptor struct {
	ID          string   `mapstructure:"id" yaml:"id,omitempty"`
	Label       string   `mapstructure:"label" yaml:"label,omitempty"`
	Sublabel    string   `mapstructure:"sublabel" yaml:"sublabel,omitempty"`
	ToolTip     string   `mapstructure:"toolTip" yaml:"toolTip,omitempty"`
	Type        string   `mapstructure:"type" yaml:"type,omitempty"`
	Role        string   `mapstructure:"role" yaml:"role,omitempty"`
	Accelerator string   `mapstructure:"accelerator" yaml:"accelerator,omitempty"`
	Checked     bool     `mapstructure:"checked" yaml:"checked,omitempty"`
	Enabled     *bool    `mapstructure:"enabled" yaml:"enabled,omitempty"`
	Visible     *bool    `mapstructure:"visible" yaml:"visible,omitempty"`
	Submenu     Template `mapstructure:"submenu" yaml:"submenu,omitempty"`

	Click ClickFunc `mapstructure:"-" yaml:"-"`

	// Extra holds pass-through fields. They are copied onto the compiled item
	// unless the key is reserved.
	Extra map[string]any `mapstructure:",remain" yaml:",inline"`
}

// Template is an ordered list of descriptors.
type Template []Descriptor

// reservedProps are item properties that template data may never set.
var reservedProps = map[string]bool{
	"commandId":        true,
	"groupId":          true,
	"type":             true,
	"role":             true,
	"submenu":          true,
	"overrideProperty": true,
}

// fromEntries converts a role's default submenu layout into a template.
func fromEntries(es []roles.Entry) Template {
	if len(es) == 0 {
		return nil
	}
	t := make(Template, len(es))
	for i, e := range es {
		t[i] = Descriptor{
			Role:    string(e.Role),
			Type:    e.Type,
			Label:   e.Label,
			Submenu: fromEntries(e.Submenu),
		}
	}
	return t
}
