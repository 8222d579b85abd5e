package menu

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/menubar/internal/platform"
	"github.com/zjrosen/menubar/internal/pubsub"
	"github.com/zjrosen/menubar/internal/roles"
)

type fakeWindow struct {
	closed, devTools int
	fullScreen       bool
}

func (w *fakeWindow) Close()                { w.closed++ }
func (w *fakeWindow) Minimize()             {}
func (w *fakeWindow) Reload()               {}
func (w *fakeWindow) ReloadIgnoringCache()  {}
func (w *fakeWindow) ToggleDevTools()       { w.devTools++ }
func (w *fakeWindow) IsFullScreen() bool    { return w.fullScreen }
func (w *fakeWindow) SetFullScreen(fs bool) { w.fullScreen = fs }

type fakeContents struct {
	copies int
	zoom   float64
}

func (c *fakeContents) Undo()                  {}
func (c *fakeContents) Redo()                  {}
func (c *fakeContents) Cut()                   {}
func (c *fakeContents) Copy()                  { c.copies++ }
func (c *fakeContents) Paste()                 {}
func (c *fakeContents) PasteAndMatchStyle()    {}
func (c *fakeContents) Delete()                {}
func (c *fakeContents) SelectAll()             {}
func (c *fakeContents) ZoomLevel() float64     { return c.zoom }
func (c *fakeContents) SetZoomLevel(z float64) { c.zoom = z }

type focus struct {
	win      *fakeWindow
	contents *fakeContents
}

func (f focus) FocusedWindow() roles.Window     { return f.win }
func (f focus) FocusedContents() roles.Contents { return f.contents }

func newTestDispatcher(c *Compiler) (*Dispatcher, focus) {
	f := focus{win: &fakeWindow{}, contents: &fakeContents{}}
	return NewDispatcher(c.Registry(), f), f
}

func TestDispatcher_ClickReceivesLiveItemOnce(t *testing.T) {
	c := compilerFor(platform.Linux)
	d, f := newTestDispatcher(c)

	var (
		calls   int
		gotItem *Item
		gotWin  roles.Window
		gotEv   Event
		label   string
	)
	m := mustCompile(t, c, Template{{
		Label: "text",
		Click: func(it *Item, win roles.Window, ev Event) {
			calls++
			gotItem, gotWin, gotEv = it, win, ev
			label = it.Label()
		},
	}})
	it := m.ItemAt(0)
	it.SetLabel("changed")

	ev := Event{TriggeredByAccelerator: true, Payload: "x"}
	require.True(t, d.ExecuteCommand(m, ev, it.CommandID()))

	assert.Equal(t, 1, calls)
	assert.Same(t, it, gotItem)
	assert.Equal(t, roles.Window(f.win), gotWin)
	assert.Equal(t, ev, gotEv)
	assert.Equal(t, "changed", label)
}

func TestDispatcher_FindsNestedItems(t *testing.T) {
	c := compilerFor(platform.Linux)
	d, _ := newTestDispatcher(c)

	var clicked bool
	m := mustCompile(t, c, Template{{
		Label: "outer",
		Submenu: Template{{
			Label:   "inner",
			Submenu: Template{{Label: "leaf", Click: func(*Item, roles.Window, Event) { clicked = true }}},
		}},
	}})
	leaf := m.ItemAt(0).Submenu().ItemAt(0).Submenu().ItemAt(0)

	require.True(t, d.ExecuteCommand(m, Event{}, leaf.CommandID()))
	require.True(t, clicked)
}

func TestDispatcher_MissingCommandIsNoop(t *testing.T) {
	c := compilerFor(platform.Linux)
	d, _ := newTestDispatcher(c)
	m := mustCompile(t, c, Template{{Label: "only"}})

	require.False(t, d.ExecuteCommand(m, Event{}, -1))
	require.False(t, d.ExecuteCommand(m, Event{}, m.ItemAt(0).CommandID()), "plain item without click or role")
}

func TestDispatcher_CheckboxFlipsBeforeClick(t *testing.T) {
	c := compilerFor(platform.Linux)
	d, _ := newTestDispatcher(c)

	var seen []bool
	m := mustCompile(t, c, Template{
		{Label: "a", Type: "checkbox", Click: func(it *Item, _ roles.Window, _ Event) { seen = append(seen, it.Checked()) }},
		{Label: "b", Type: "checkbox", Checked: true},
	})
	a := m.ItemAt(0)

	require.True(t, d.ExecuteCommand(m, Event{}, a.CommandID()))
	require.True(t, d.ExecuteCommand(m, Event{}, a.CommandID()))
	require.Equal(t, []bool{true, false}, seen)
	require.True(t, m.ItemAt(1).Checked(), "sibling checkbox untouched")

	require.True(t, d.ExecuteCommand(m, Event{}, m.ItemAt(1).CommandID()), "toggle alone counts as handled")
	require.False(t, m.ItemAt(1).Checked())
}

func TestDispatcher_RadioStaysChecked(t *testing.T) {
	c := compilerFor(platform.Linux)
	d, _ := newTestDispatcher(c)
	m := mustCompile(t, c, Template{
		{Label: "a", Type: "radio"},
		{Label: "b", Type: "radio"},
	})
	require.NoError(t, d.WillShow(m))
	b := m.ItemAt(1)

	require.True(t, d.ExecuteCommand(m, Event{}, b.CommandID()))
	require.Equal(t, []int{1}, checkedIndexes(m))

	require.True(t, d.ExecuteCommand(m, Event{}, b.CommandID()))
	require.Equal(t, []int{1}, checkedIndexes(m), "clicking a checked radio keeps it checked")
}

func TestDispatcher_RunsRoleWhenNoClick(t *testing.T) {
	c := compilerFor(platform.Linux)
	d, f := newTestDispatcher(c)
	m := mustCompile(t, c, Template{
		{Role: "copy"},
		{Role: "toggleDevTools"},
		{Role: "zoomIn"},
		{Role: "services"},
		{Role: "close", Click: func(*Item, roles.Window, Event) {}},
	})

	require.True(t, d.ExecuteCommand(m, Event{}, m.ItemAt(0).CommandID()))
	require.True(t, d.ExecuteCommand(m, Event{}, m.ItemAt(1).CommandID()))
	require.True(t, d.ExecuteCommand(m, Event{}, m.ItemAt(2).CommandID()))
	require.False(t, d.ExecuteCommand(m, Event{}, m.ItemAt(3).CommandID()), "role without behavior")
	require.True(t, d.ExecuteCommand(m, Event{}, m.ItemAt(4).CommandID()))

	assert.Equal(t, 1, f.contents.copies)
	assert.Equal(t, 1, f.win.devTools)
	assert.InDelta(t, 0.5, f.contents.zoom, 1e-9)
	assert.Zero(t, f.win.closed, "custom click wins over the role")
}

func TestDispatcher_NativeRolesDoNotRunOnDarwin(t *testing.T) {
	c := compilerFor(platform.Darwin)
	d, f := newTestDispatcher(c)
	m := mustCompile(t, c, Template{{Role: "copy"}, {Role: "toggleDevTools"}})

	require.False(t, d.ExecuteCommand(m, Event{}, m.ItemAt(0).CommandID()))
	require.True(t, d.ExecuteCommand(m, Event{}, m.ItemAt(1).CommandID()))
	assert.Zero(t, f.contents.copies)
	assert.Equal(t, 1, f.win.devTools)
}

func TestDispatcher_DisabledItemIsNoop(t *testing.T) {
	c := compilerFor(platform.Linux)
	d, _ := newTestDispatcher(c)

	var calls int
	m := mustCompile(t, c, Template{{
		Label:   "off",
		Type:    "checkbox",
		Enabled: boolPtr(false),
		Click:   func(*Item, roles.Window, Event) { calls++ },
	}})

	require.False(t, d.ExecuteCommand(m, Event{}, m.ItemAt(0).CommandID()))
	require.Zero(t, calls)
	require.False(t, m.ItemAt(0).Checked())
}

func TestDispatcher_NilFocus(t *testing.T) {
	c := compilerFor(platform.Linux)
	d := NewDispatcher(c.Registry(), nil)

	var gotWin roles.Window = &fakeWindow{}
	m := mustCompile(t, c, Template{
		{Label: "a", Click: func(_ *Item, win roles.Window, _ Event) { gotWin = win }},
		{Role: "copy"},
	})

	require.True(t, d.ExecuteCommand(m, Event{}, m.ItemAt(0).CommandID()))
	require.Nil(t, gotWin)
	require.False(t, d.ExecuteCommand(m, Event{}, m.ItemAt(1).CommandID()))
}

func TestDispatcher_PublishesEvents(t *testing.T) {
	c := compilerFor(platform.Linux)
	broker := pubsub.NewBroker[CommandEvent]()
	defer broker.Close()
	d := NewDispatcher(c.Registry(), nil, WithBroker(broker))
	require.Same(t, broker, d.Events())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := broker.Subscribe(ctx)

	m := mustCompile(t, c, Template{{Label: "flag", Type: "checkbox"}})
	id := m.ItemAt(0).CommandID()
	d.ExecuteCommand(m, Event{}, id)
	d.ExecuteCommand(m, Event{}, -7)

	next := func() pubsub.Event[CommandEvent] {
		select {
		case ev := <-ch:
			return ev
		case <-time.After(time.Second):
			require.FailNow(t, "no event")
		}
		return pubsub.Event[CommandEvent]{}
	}

	ev := next()
	assert.Equal(t, pubsub.CommandExecuted, ev.Type)
	assert.Equal(t, CommandEvent{
		MenuID: m.ID(), CommandID: id, Label: "flag", Type: TypeCheckbox,
		Checked: true, HandledBy: "toggle", Handled: true,
	}, ev.Payload)

	ev = next()
	assert.Equal(t, pubsub.CommandIgnored, ev.Type)
	assert.Equal(t, -7, ev.Payload.CommandID)
	assert.False(t, ev.Payload.Handled)
}

func TestItem_Click(t *testing.T) {
	c := compilerFor(platform.Linux)
	m := mustCompile(t, c, Template{{Role: "copy"}, {Label: "plain"}})
	contents := &fakeContents{}

	require.True(t, m.ItemAt(0).Click(nil, contents, Event{}))
	require.Equal(t, 1, contents.copies)
	require.False(t, m.ItemAt(1).Click(nil, contents, Event{}))
}
