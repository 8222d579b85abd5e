package menu

import (
	"fmt"
	"maps"

	"github.com/zjrosen/menubar/internal/roles"
)

// Item is a compiled menu item. Items are created by a Compiler and mutated
// only through their setters.
type Item struct {
	commandID int
	typ       ItemType
	role      roles.Role
	groupID   int
	submenu   *Menu
	parent    *Menu

	id          string
	label       string
	hasLabel    bool
	sublabel    string
	toolTip     string
	accelerator string
	checked     bool
	enabled     bool
	visible     bool
	click       ClickFunc
	props       map[string]any
}

// CommandID returns the process-unique command id assigned at compile time.
func (it *Item) CommandID() int { return it.commandID }

// Type returns the item type.
func (it *Item) Type() ItemType { return it.typ }

// Role returns the normalized role, or "" for plain items.
func (it *Item) Role() roles.Role { return it.role }

// GroupID returns the radio group id, or 0 for non-radio items.
func (it *Item) GroupID() int { return it.groupID }

// Submenu returns the owned child menu, or nil.
func (it *Item) Submenu() *Menu { return it.submenu }

// Menu returns the menu that owns the item.
func (it *Item) Menu() *Menu { return it.parent }

// ID returns the user supplied identifier.
func (it *Item) ID() string { return it.id }

// Label returns the explicit label, falling back to the role's default for
// the current platform.
func (it *Item) Label() string {
	if it.hasLabel {
		return it.label
	}
	if info, ok := it.roleInfo(); ok {
		return info.Label
	}
	return ""
}

// SetLabel overrides the label.
func (it *Item) SetLabel(label string) {
	it.label = label
	it.hasLabel = true
}

// Accelerator returns the explicitly set accelerator. The role default is
// reported separately by DefaultRoleAccelerator.
func (it *Item) Accelerator() string { return it.accelerator }

// SetAccelerator overrides the accelerator.
func (it *Item) SetAccelerator(accel string) { it.accelerator = accel }

// DefaultRoleAccelerator returns the role's default accelerator on the
// current platform, or "" when the item has no role or the role has none.
func (it *Item) DefaultRoleAccelerator() string {
	if info, ok := it.roleInfo(); ok {
		return info.Accelerator
	}
	return ""
}

// EffectiveAccelerator returns the explicit accelerator or the role default.
func (it *Item) EffectiveAccelerator() string {
	if it.accelerator != "" {
		return it.accelerator
	}
	return it.DefaultRoleAccelerator()
}

// Checked reports the checked state.
func (it *Item) Checked() bool { return it.checked }

// SetChecked sets the checked state. Checking a radio item unchecks every
// other item of its group before returning.
func (it *Item) SetChecked(checked bool) {
	it.checked = checked
	if !checked || it.typ != TypeRadio || it.parent == nil {
		return
	}
	for _, other := range it.parent.items {
		if other != it && other.typ == TypeRadio && other.groupID == it.groupID {
			other.checked = false
		}
	}
}

// Enabled reports whether the item accepts commands.
func (it *Item) Enabled() bool { return it.enabled }

// SetEnabled enables or disables the item.
func (it *Item) SetEnabled(enabled bool) { it.enabled = enabled }

// Visible reports whether the item is shown.
func (it *Item) Visible() bool { return it.visible }

// SetVisible shows or hides the item.
func (it *Item) SetVisible(visible bool) { it.visible = visible }

func (it *Item) Sublabel() string { return it.sublabel }
func (it *Item) ToolTip() string  { return it.toolTip }

// SetClick replaces the click handler.
func (it *Item) SetClick(fn ClickFunc) { it.click = fn }

// HasClick reports whether a custom click handler is installed.
func (it *Item) HasClick() bool { return it.click != nil }

// Prop returns a pass-through property.
func (it *Item) Prop(key string) (any, bool) {
	v, ok := it.props[key]
	return v, ok
}

// Props returns a copy of the pass-through properties.
func (it *Item) Props() map[string]any {
	return maps.Clone(it.props)
}

// Set writes a property by name. Properties fixed at compile time fail with
// ErrReadOnlyProperty and keep their value; names that are not item fields
// are stored as pass-through data.
func (it *Item) Set(name string, value any) error {
	if reservedProps[name] {
		return fmt.Errorf("%w '%s'", ErrReadOnlyProperty, name)
	}
	switch name {
	case "label":
		s, err := asString(name, value)
		if err != nil {
			return err
		}
		it.SetLabel(s)
	case "accelerator":
		s, err := asString(name, value)
		if err != nil {
			return err
		}
		it.SetAccelerator(s)
	case "sublabel":
		s, err := asString(name, value)
		if err != nil {
			return err
		}
		it.sublabel = s
	case "toolTip":
		s, err := asString(name, value)
		if err != nil {
			return err
		}
		it.toolTip = s
	case "id":
		s, err := asString(name, value)
		if err != nil {
			return err
		}
		it.id = s
	case "checked":
		if !it.typ.Checkable() {
			return fmt.Errorf("%w: checked applies to checkbox and radio items, not %s", ErrInvalidValue, it.typ)
		}
		b, err := asBool(name, value)
		if err != nil {
			return err
		}
		it.SetChecked(b)
	case "enabled":
		b, err := asBool(name, value)
		if err != nil {
			return err
		}
		it.enabled = b
	case "visible":
		b, err := asBool(name, value)
		if err != nil {
			return err
		}
		it.visible = b
	case "click":
		fn, ok := value.(ClickFunc)
		if !ok {
			plain, isFunc := value.(func(*Item, roles.Window, Event))
			if !isFunc {
				return fmt.Errorf("%w: click expects a ClickFunc, got %T", ErrInvalidValue, value)
			}
			fn = plain
		}
		it.click = fn
	default:
		if it.props == nil {
			it.props = make(map[string]any)
		}
		it.props[name] = value
	}
	return nil
}

func asString(name string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s expects a string, got %T", ErrInvalidValue, name, v)
	}
	return s, nil
}

func asBool(name string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s expects a bool, got %T", ErrInvalidValue, name, v)
	}
	return b, nil
}

func (it *Item) roleInfo() (roles.Info, bool) {
	if it.role == "" || it.parent == nil {
		return roles.Info{}, false
	}
	return it.parent.compiler.reg.Lookup(string(it.role))
}
