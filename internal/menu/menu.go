// Package menu compiles menu templates into live menu trees, keeps radio
// groups exclusive and dispatches triggered commands to their items.
package menu

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/zjrosen/menubar/internal/log"
)

// Menu is an ordered list of items. It exclusively owns its items, and each
// submenu item exclusively owns its child menu.
type Menu struct {
	id       string
	items    []*Item
	owner    *Item
	compiler *Compiler
}

func newMenu(c *Compiler, owner *Item) *Menu {
	return &Menu{id: uuid.NewString(), owner: owner, compiler: c}
}

// ID identifies the menu instance in logs and traces.
func (m *Menu) ID() string { return m.id }

// Owner returns the submenu item that owns m, or nil for a root menu.
func (m *Menu) Owner() *Item { return m.owner }

// Len returns the number of items.
func (m *Menu) Len() int { return len(m.items) }

// Items returns the items in display order. The slice is a copy; the items
// are live.
func (m *Menu) Items() []*Item { return slices.Clone(m.items) }

// ItemAt returns the item at index i, or nil when i is out of range.
func (m *Menu) ItemAt(i int) *Item {
	if i < 0 || i >= len(m.items) {
		return nil
	}
	return m.items[i]
}

// AcceleratorTextAt renders the accelerator of the item at index i for the
// current platform: the explicit accelerator, else the role default.
// Returns "" when there is none or it cannot be parsed.
func (m *Menu) AcceleratorTextAt(i int) string {
	it := m.ItemAt(i)
	if it == nil {
		return ""
	}
	accel := it.EffectiveAccelerator()
	if accel == "" {
		return ""
	}
	return m.compiler.renderer.Render(accel, m.compiler.reg.Platform())
}

// FindByCommandID searches m and its submenus depth-first.
func (m *Menu) FindByCommandID(commandID int) *Item {
	for _, it := range m.items {
		if it.commandID == commandID {
			return it
		}
		if it.submenu != nil {
			if found := it.submenu.FindByCommandID(commandID); found != nil {
				return found
			}
		}
	}
	return nil
}

// ItemByID returns the first item in m or its submenus with the given
// user supplied id.
func (m *Menu) ItemByID(id string) *Item {
	if id == "" {
		return nil
	}
	for _, it := range m.items {
		if it.id == id {
			return it
		}
		if it.submenu != nil {
			if found := it.submenu.ItemByID(id); found != nil {
				return found
			}
		}
	}
	return nil
}

// Walk calls fn for every item in m and its submenus, parents before
// children. depth is 0 for items of m.
func (m *Menu) Walk(fn func(it *Item, depth int)) {
	m.walk(fn, 0)
}

func (m *Menu) walk(fn func(*Item, int), depth int) {
	for _, it := range m.items {
		fn(it, depth)
		if it.submenu != nil {
			it.submenu.walk(fn, depth+1)
		}
	}
}

// Append compiles d and adds it at the end of m.
func (m *Menu) Append(d Descriptor) error {
	return m.Insert(len(m.items), d)
}

// Insert compiles d and places it at pos. A radio item joins an adjacent
// radio run; radio runs split or merged by the insertion are regrouped so
// every contiguous run keeps exactly one group id. A checked radio unchecks
// the rest of the run it joins.
func (m *Menu) Insert(pos int, d Descriptor) error {
	if pos < 0 || pos > len(m.items) {
		return fmt.Errorf("%w: %d (menu has %d items)", ErrOutOfRange, pos, len(m.items))
	}
	it, err := m.compiler.compileItem(d, 0, m)
	if err != nil {
		return err
	}
	m.items = slices.Insert(m.items, pos, it)
	m.regroup()
	if it.typ == TypeRadio && it.checked {
		it.SetChecked(true)
	}
	log.Debug(log.CatMenu, "item inserted", "menu", m.id, "pos", pos, "commandId", it.commandID)
	return nil
}

// regroup walks the contiguous radio runs of m. Each run keeps the first
// group id found in it that no earlier run claimed, or gets a fresh one.
func (m *Menu) regroup() {
	claimed := make(map[int]bool)
	for start := 0; start < len(m.items); {
		if m.items[start].typ != TypeRadio {
			start++
			continue
		}
		end := start
		for end < len(m.items) && m.items[end].typ == TypeRadio {
			end++
		}
		group := 0
		for _, it := range m.items[start:end] {
			if it.groupID != 0 && !claimed[it.groupID] {
				group = it.groupID
				break
			}
		}
		if group == 0 {
			group = nextGroupID()
		}
		claimed[group] = true
		for _, it := range m.items[start:end] {
			it.groupID = group
		}
		start = end
	}
}

// radioGroups returns the items of each radio group of m, in display order.
func (m *Menu) radioGroups() [][]*Item {
	var (
		order  []int
		groups = make(map[int][]*Item)
	)
	for _, it := range m.items {
		if it.typ != TypeRadio {
			continue
		}
		if _, seen := groups[it.groupID]; !seen {
			order = append(order, it.groupID)
		}
		groups[it.groupID] = append(groups[it.groupID], it)
	}
	out := make([][]*Item, len(order))
	for i, id := range order {
		out[i] = groups[id]
	}
	return out
}

// WillShow reconciles radio groups before m becomes visible: a group with no
// checked item gets its first item checked. A group with several checked
// items keeps the first one and logs a warning; in strict mode WillShow
// returns ErrRadioConflict instead and changes nothing.
func (m *Menu) WillShow() error {
	groups := m.radioGroups()
	if m.compiler.strictRadio {
		for _, g := range groups {
			if n := countChecked(g); n > 1 {
				return fmt.Errorf("%w: group %d has %d", ErrRadioConflict, g[0].groupID, n)
			}
		}
	}
	for _, g := range groups {
		var first *Item
		for _, it := range g {
			if it.checked {
				first = it
				break
			}
		}
		if first == nil {
			g[0].checked = true
			continue
		}
		if n := countChecked(g); n > 1 {
			log.Warn(log.CatMenu, "radio group had several checked items", "menu", m.id, "group", first.groupID, "checked", n, "kept", first.commandID)
			first.SetChecked(true)
		}
	}
	return nil
}

func countChecked(items []*Item) int {
	n := 0
	for _, it := range items {
		if it.checked {
			n++
		}
	}
	return n
}
