package menu

import "errors"

var (
	// ErrUnknownType is returned when a descriptor names a type outside the
	// closed set of item types.
	ErrUnknownType = errors.New("unknown menu item type")
	// ErrInvalidSubmenu is returned for submenu items without children.
	ErrInvalidSubmenu = errors.New("invalid submenu")
	// ErrReadOnlyProperty is returned when writing a property fixed at compile time.
	ErrReadOnlyProperty = errors.New("cannot assign to read only property")
	// ErrInvalidValue is returned when a property write has the wrong type
	// or does not apply to the item's type.
	ErrInvalidValue = errors.New("invalid property value")
	// ErrOutOfRange is returned by Insert for a position outside the menu.
	ErrOutOfRange = errors.New("position out of range")
	// ErrRadioConflict is reported by WillShow in strict mode when a radio
	// group has more than one checked item.
	ErrRadioConflict = errors.New("radio group has more than one checked item")
)
