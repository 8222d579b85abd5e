package menu

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/menubar/internal/log"
	"github.com/zjrosen/menubar/internal/pubsub"
	"github.com/zjrosen/menubar/internal/roles"
	"github.com/zjrosen/menubar/internal/tracing"
)

// FocusProvider supplies the capabilities a command runs against. Either
// may be nil when nothing is focused.
type FocusProvider interface {
	FocusedWindow() roles.Window
	FocusedContents() roles.Contents
}

// CommandEvent is published for every ExecuteCommand call.
type CommandEvent struct {
	MenuID    string
	CommandID int
	Label     string
	Role      roles.Role
	Type      ItemType
	Checked   bool
	// HandledBy is one of the tracing.HandledBy* values.
	HandledBy string
	Handled   bool
}

// Dispatcher routes triggered command ids to their items.
type Dispatcher struct {
	reg    *roles.Registry
	focus  FocusProvider
	broker *pubsub.Broker[CommandEvent]
	tracer trace.Tracer
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDispatchTracer records a span per dispatched command.
func WithDispatchTracer(t trace.Tracer) DispatcherOption {
	return func(d *Dispatcher) { d.tracer = t }
}

// WithBroker publishes command events on b instead of a private broker.
func WithBroker(b *pubsub.Broker[CommandEvent]) DispatcherOption {
	return func(d *Dispatcher) { d.broker = b }
}

// NewDispatcher returns a dispatcher executing roles through reg. focus may
// be nil, in which case handlers and roles receive nil capabilities.
func NewDispatcher(reg *roles.Registry, focus FocusProvider, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		reg:    reg,
		focus:  focus,
		tracer: noop.NewTracerProvider().Tracer("menubar"),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.broker == nil {
		d.broker = pubsub.NewBroker[CommandEvent]()
	}
	return d
}

// Events returns the broker command events are published on.
func (d *Dispatcher) Events() *pubsub.Broker[CommandEvent] { return d.broker }

// WillShow runs show-time reconciliation on m before it is displayed.
func (d *Dispatcher) WillShow(m *Menu) error {
	return m.WillShow()
}

// ExecuteCommand runs the item of m's tree identified by commandID. It
// reports whether anything ran; an unknown id or a disabled item is a no-op.
func (d *Dispatcher) ExecuteCommand(m *Menu, ev Event, commandID int) bool {
	_, span := d.tracer.Start(context.Background(), tracing.SpanCommandDispatch,
		trace.WithAttributes(attribute.Int(tracing.AttrCommandID, commandID)))
	defer span.End()

	it := m.FindByCommandID(commandID)
	if it == nil {
		log.Debug(log.CatDispatch, "command not found", "menu", m.ID(), "commandId", commandID)
		span.SetAttributes(attribute.String(tracing.AttrHandledBy, tracing.HandledByNone))
		d.broker.Publish(pubsub.CommandIgnored, CommandEvent{MenuID: m.ID(), CommandID: commandID, HandledBy: tracing.HandledByNone})
		return false
	}

	var win roles.Window
	var contents roles.Contents
	if d.focus != nil {
		win = d.focus.FocusedWindow()
		contents = d.focus.FocusedContents()
	}

	by := it.activate(d.reg, win, contents, ev)
	handled := by != tracing.HandledByNone

	span.SetAttributes(
		attribute.String(tracing.AttrItemType, string(it.typ)),
		attribute.String(tracing.AttrItemRole, string(it.role)),
		attribute.String(tracing.AttrItemLabel, it.Label()),
		attribute.Bool(tracing.AttrItemChecked, it.checked),
		attribute.String(tracing.AttrHandledBy, by),
	)

	evType := pubsub.CommandExecuted
	if !handled {
		evType = pubsub.CommandIgnored
	}
	d.broker.Publish(evType, CommandEvent{
		MenuID:    m.ID(),
		CommandID: commandID,
		Label:     it.Label(),
		Role:      it.role,
		Type:      it.typ,
		Checked:   it.checked,
		HandledBy: by,
		Handled:   handled,
	})
	log.Debug(log.CatDispatch, "command dispatched", "commandId", commandID, "label", it.Label(), "by", by)
	return handled
}

// Click activates the item directly, as if its command had been dispatched
// with win and contents focused. It reports whether anything ran.
func (it *Item) Click(win roles.Window, contents roles.Contents, ev Event) bool {
	var reg *roles.Registry
	if it.parent != nil {
		reg = it.parent.compiler.reg
	}
	return it.activate(reg, win, contents, ev) != tracing.HandledByNone
}

// activate toggles checkable items, then runs the click handler or else the
// role. It returns what handled the activation.
func (it *Item) activate(reg *roles.Registry, win roles.Window, contents roles.Contents, ev Event) string {
	if !it.enabled {
		return tracing.HandledByNone
	}

	toggled := false
	switch it.typ {
	case TypeCheckbox:
		it.SetChecked(!it.checked)
		toggled = true
	case TypeRadio:
		it.SetChecked(true)
		toggled = true
	}

	if it.click != nil {
		it.click(it, win, ev)
		return tracing.HandledByClick
	}
	if it.role != "" && reg != nil && reg.Execute(string(it.role), win, contents) {
		return tracing.HandledByRole
	}
	if toggled {
		return tracing.HandledByToggle
	}
	return tracing.HandledByNone
}
