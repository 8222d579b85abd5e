// Package tracing wires OpenTelemetry into menu compilation and command
// dispatch.
package tracing

// Span names.
const (
	SpanMenuCompile     = "menu.compile"
	SpanCommandDispatch = "menu.dispatch"
)

// Span attribute keys.
const (
	AttrMenuID      = "menu.id"
	AttrMenuItems   = "menu.items"
	AttrPlatform    = "menu.platform"
	AttrCommandID   = "menu.command.id"
	AttrItemType    = "menu.item.type"
	AttrItemRole    = "menu.item.role"
	AttrItemLabel   = "menu.item.label"
	AttrItemChecked = "menu.item.checked"
	AttrHandledBy   = "menu.command.handled_by"
)

// Values of AttrHandledBy.
const (
	HandledByClick  = "click"
	HandledByRole   = "role"
	HandledByToggle = "toggle"
	HandledByNone   = "none"
)
