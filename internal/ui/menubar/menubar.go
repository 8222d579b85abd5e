// Package menubar renders a compiled menu as a terminal menu bar with
// dropdowns and routes keys, mouse clicks and accelerators to the command
// dispatcher.
package menubar

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/menubar/internal/accelerator"
	"github.com/zjrosen/menubar/internal/keys"
	"github.com/zjrosen/menubar/internal/log"
	"github.com/zjrosen/menubar/internal/menu"
	"github.com/zjrosen/menubar/internal/ui/overlay"
	"github.com/zjrosen/menubar/internal/ui/styles"
)

// ActivatedMsg reports an item activated from the menu bar.
type ActivatedMsg struct {
	CommandID     int
	Label         string
	Handled       bool
	ByAccelerator bool
}

// ShowErrorMsg reports a menu that refused to open.
type ShowErrorMsg struct {
	Err error
}

// Model is the menu bar state. The zero path means every menu is closed;
// otherwise path[0] is the open bar entry and path[d] the highlighted row of
// the dropdown at depth d.
type Model struct {
	root       *menu.Menu
	dispatcher *menu.Dispatcher

	width, height    int
	path             []int
	showAccelerators bool
	bindings         map[string]int
	shortcuts        []key.Binding
}

// New returns a closed menu bar over root.
func New(root *menu.Menu, d *menu.Dispatcher) Model {
	m := Model{dispatcher: d, showAccelerators: true}
	return m.SetMenu(root)
}

// SetMenu swaps the displayed menu, closing any open dropdown and
// rebinding accelerators.
func (m Model) SetMenu(root *menu.Menu) Model {
	m.root = root
	m.path = nil
	m.bindings = make(map[string]int)
	m.shortcuts = nil
	if root == nil {
		return m
	}
	if err := m.dispatcher.WillShow(root); err != nil {
		log.ErrorErr(log.CatUI, "menu bar reconciliation failed", err)
	}
	root.Walk(func(it *menu.Item, _ int) {
		accel := it.EffectiveAccelerator()
		if accel == "" || it.Type() == menu.TypeSubmenu {
			return
		}
		a, err := accelerator.Parse(accel)
		if err != nil {
			log.Debug(log.CatAccel, "unparsable accelerator", "accelerator", accel, "error", err)
			return
		}
		k, ok := accelerator.TerminalKey(a)
		if !ok {
			return
		}
		if _, taken := m.bindings[k]; taken {
			log.Debug(log.CatAccel, "accelerator already bound", "key", k, "label", it.Label())
			return
		}
		m.bindings[k] = it.CommandID()
		m.shortcuts = append(m.shortcuts, accelerator.Binding(a, it.Label()))
	})
	log.Debug(log.CatUI, "menu bar bound", "menu", root.ID(), "bindings", len(m.bindings))
	return m
}

// Shortcuts returns the accelerator bindings in menu order, for help text.
func (m Model) Shortcuts() []key.Binding { return slices.Clone(m.shortcuts) }

// Menu returns the displayed menu.
func (m Model) Menu() *menu.Menu { return m.root }

// SetSize sets the viewport used to place dropdowns.
func (m Model) SetSize(width, height int) Model {
	m.width, m.height = width, height
	return m
}

// SetShowAccelerators toggles accelerator text in dropdowns.
func (m Model) SetShowAccelerators(show bool) Model {
	m.showAccelerators = show
	return m
}

// ShowAccelerators reports whether accelerator text is drawn.
func (m Model) ShowAccelerators() bool { return m.showAccelerators }

// IsOpen reports whether a bar entry is open.
func (m Model) IsOpen() bool { return len(m.path) > 0 }

// Path returns a copy of the open path.
func (m Model) Path() []int { return append([]int(nil), m.path...) }

// BoundCommand returns the command bound to a terminal key string.
func (m Model) BoundCommand(key string) (int, bool) {
	id, ok := m.bindings[key]
	return id, ok
}

// Update handles keys and mouse clicks.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.root == nil {
		return m, nil
	}
	m.path = slices.Clone(m.path)
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.IsOpen() {
			return m.handleOpenKey(msg)
		}
		return m.handleClosedKey(msg)
	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
			return m.handleClick(msg)
		}
	}
	return m, nil
}

func (m Model) handleClosedKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, keys.Menu.Open) {
		if first := nextSelectable(m.root, -1, 1); first >= 0 {
			return m.openTop(first)
		}
		return m, nil
	}
	id, ok := m.bindings[msg.String()]
	if !ok {
		return m, nil
	}
	it := m.root.FindByCommandID(id)
	if it == nil || !it.Visible() {
		return m, nil
	}
	return m.activate(it, true)
}

func (m Model) handleOpenKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	depth := len(m.path) - 1
	switch {
	case key.Matches(msg, keys.Menu.Close):
		if depth >= 2 {
			m.path = m.path[:depth]
			return m, nil
		}
		m.path = nil
	case key.Matches(msg, keys.Menu.Left):
		if depth >= 2 {
			m.path = m.path[:depth]
			return m, nil
		}
		return m.openTop(nextSelectable(m.root, m.path[0], -1))
	case key.Matches(msg, keys.Menu.Right):
		if depth >= 1 && m.selected().Submenu() != nil {
			return m.descend()
		}
		return m.openTop(nextSelectable(m.root, m.path[0], 1))
	case key.Matches(msg, keys.Menu.Up):
		if depth >= 1 {
			m.path[depth] = nextSelectable(m.menuAt(depth), m.path[depth], -1)
		}
	case key.Matches(msg, keys.Menu.Down):
		if depth == 0 {
			return m.descend()
		}
		m.path[depth] = nextSelectable(m.menuAt(depth), m.path[depth], 1)
	case key.Matches(msg, keys.Menu.Select):
		it := m.selected()
		if it.Submenu() != nil {
			return m.descend()
		}
		return m.activate(it, false)
	}
	return m, nil
}

func (m Model) handleClick(msg tea.MouseMsg) (Model, tea.Cmd) {
	for i, it := range m.root.Items() {
		if !selectable(it) {
			continue
		}
		if z := zone.Get(topZoneID(i)); z != nil && z.InBounds(msg) {
			if m.IsOpen() && m.path[0] == i {
				m.path = nil
				return m, nil
			}
			if it.Submenu() == nil {
				return m.activate(it, false)
			}
			return m.openTop(i)
		}
	}
	for depth := len(m.path) - 1; depth >= 1; depth-- {
		sm := m.menuAt(depth)
		for j, it := range sm.Items() {
			if !selectable(it) {
				continue
			}
			if z := zone.Get(itemZoneID(it)); z != nil && z.InBounds(msg) {
				m.path = append(m.path[:depth], j)
				if it.Submenu() != nil {
					return m.descend()
				}
				return m.activate(it, false)
			}
		}
	}
	if m.IsOpen() {
		m.path = nil
	}
	return m, nil
}

// openTop opens bar entry i and its dropdown.
func (m Model) openTop(i int) (Model, tea.Cmd) {
	if i < 0 {
		return m, nil
	}
	m.path = []int{i}
	if m.root.ItemAt(i).Submenu() == nil {
		return m, nil
	}
	return m.descend()
}

// descend opens the submenu of the highlighted item.
func (m Model) descend() (Model, tea.Cmd) {
	sub := m.selected().Submenu()
	if sub == nil {
		return m, nil
	}
	if err := m.dispatcher.WillShow(sub); err != nil {
		log.ErrorErr(log.CatUI, "submenu refused to open", err, "label", m.selected().Label())
		return m, func() tea.Msg { return ShowErrorMsg{Err: err} }
	}
	first := nextSelectable(sub, -1, 1)
	if first < 0 {
		return m, nil
	}
	m.path = append(m.path, first)
	return m, nil
}

func (m Model) activate(it *menu.Item, byAccel bool) (Model, tea.Cmd) {
	handled := m.dispatcher.ExecuteCommand(m.root, menu.Event{TriggeredByAccelerator: byAccel}, it.CommandID())
	m.path = nil
	msg := ActivatedMsg{CommandID: it.CommandID(), Label: it.Label(), Handled: handled, ByAccelerator: byAccel}
	return m, func() tea.Msg { return msg }
}

// menuAt returns the menu shown at depth: the bar for 0, else the submenu
// of the item highlighted one level up.
func (m Model) menuAt(depth int) *menu.Menu {
	cur := m.root
	for d := 0; d < depth; d++ {
		cur = cur.ItemAt(m.path[d]).Submenu()
	}
	return cur
}

func (m Model) selected() *menu.Item {
	depth := len(m.path) - 1
	return m.menuAt(depth).ItemAt(m.path[depth])
}

func selectable(it *menu.Item) bool {
	return it.Visible() && it.Type() != menu.TypeSeparator
}

// nextSelectable steps from index from in direction dir, wrapping, and
// returns the next selectable index or -1 when there is none.
func nextSelectable(sm *menu.Menu, from, dir int) int {
	n := sm.Len()
	if n == 0 {
		return -1
	}
	i := from
	for range n {
		i = ((i+dir)%n + n) % n
		if selectable(sm.ItemAt(i)) {
			return i
		}
	}
	return -1
}

func topZoneID(i int) string { return fmt.Sprintf("menubar-top-%d", i) }

func itemZoneID(it *menu.Item) string { return fmt.Sprintf("menubar-item-%d", it.CommandID()) }

// View renders the bar line.
func (m Model) View() string {
	if m.root == nil {
		return ""
	}
	var b strings.Builder
	for i, it := range m.root.Items() {
		if !selectable(it) {
			continue
		}
		style := styles.BarItemStyle
		if m.IsOpen() && m.path[0] == i {
			style = styles.BarItemOpenStyle
		}
		b.WriteString(zone.Mark(topZoneID(i), style.Render(it.Label())))
	}
	bar := b.String()
	if m.width > 0 {
		bar = ansi.Truncate(bar, m.width, "…")
		if w := lipgloss.Width(bar); w < m.width {
			bar += styles.BarStyle.Render(strings.Repeat(" ", m.width-w))
		}
	}
	return bar
}

// barOffset returns the column where bar entry i starts.
func (m Model) barOffset(i int) int {
	x := 0
	for j, it := range m.root.Items() {
		if j == i {
			break
		}
		if selectable(it) {
			x += runewidth.StringWidth(it.Label()) + 2
		}
	}
	return x
}

// Overlay draws the open dropdowns over bg, whose first line is the bar.
func (m Model) Overlay(bg string) string {
	if len(m.path) < 2 {
		return bg
	}
	x, y := m.barOffset(m.path[0]), 1
	out := bg
	for depth := 1; depth < len(m.path); depth++ {
		box := m.renderDropdown(m.menuAt(depth), m.path[depth])
		out = overlay.Place(overlay.Config{
			Width:    m.width,
			Height:   m.height,
			Position: overlay.At,
			X:        x,
			Y:        y,
		}, box, out)
		// The next level opens beside the highlighted row.
		x += lipgloss.Width(box) - 1
		y += rowOf(m.menuAt(depth), m.path[depth])
	}
	return out
}

// rowOf returns the display row of item i, skipping hidden items.
func rowOf(sm *menu.Menu, i int) int {
	n := 0
	for j := 0; j < i; j++ {
		if sm.ItemAt(j).Visible() {
			n++
		}
	}
	return n
}

type row struct {
	mark, label, accel, arrow string
	item                      *menu.Item
	separator                 bool
}

func (m Model) renderDropdown(sm *menu.Menu, sel int) string {
	rows := make([]row, 0, sm.Len())
	labelW, accelW := 0, 0
	for i, it := range sm.Items() {
		if !it.Visible() {
			rows = append(rows, row{})
			continue
		}
		if it.Type() == menu.TypeSeparator {
			rows = append(rows, row{separator: true})
			continue
		}
		r := row{item: it, label: it.Label(), mark: " ", arrow: " "}
		if it.Checked() {
			switch it.Type() {
			case menu.TypeCheckbox:
				r.mark = "✓"
			case menu.TypeRadio:
				r.mark = "•"
			}
		}
		if it.Submenu() != nil {
			r.arrow = "▸"
		} else if m.showAccelerators {
			r.accel = strings.ReplaceAll(sm.AcceleratorTextAt(i), "\x00", "")
		}
		labelW = max(labelW, runewidth.StringWidth(r.label))
		accelW = max(accelW, runewidth.StringWidth(r.accel))
		rows = append(rows, r)
	}

	if m.width > 0 {
		// Border, mark column, gaps and arrow take 8 cells.
		if limit := m.width - 8 - accelW; limit > 0 && labelW > limit {
			labelW = limit
		}
	}
	inner := 2 + labelW + 2 + accelW + 2

	lines := make([]string, 0, len(rows))
	for i, r := range rows {
		switch {
		case r.separator:
			lines = append(lines, styles.SeparatorStyle.Render(strings.Repeat("─", inner)))
			continue
		case r.item == nil:
			continue
		}
		label := ansi.Truncate(r.label, labelW, "…")
		text := r.mark + " " +
			runewidth.FillRight(label, labelW) + "  " +
			runewidth.FillLeft(r.accel, accelW) + " " + r.arrow
		style := styles.ItemStyle
		switch {
		case i == sel:
			style = styles.ItemSelectedStyle
		case !r.item.Enabled():
			style = styles.ItemDisabledStyle
		}
		lines = append(lines, zone.Mark(itemZoneID(r.item), style.Render(text)))
	}
	return styles.DropdownStyle.Render(strings.Join(lines, "\n"))
}
