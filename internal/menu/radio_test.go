package menu

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/menubar/internal/platform"
)

func radioRunTemplate() Template {
	var tmpl Template
	for i := 0; i <= 10; i++ {
		tmpl = append(tmpl, Descriptor{Label: strconv.Itoa(i), Type: "radio"})
	}
	tmpl = append(tmpl, Descriptor{Type: "separator"})
	for i := 12; i <= 20; i++ {
		tmpl = append(tmpl, Descriptor{Label: strconv.Itoa(i), Type: "radio"})
	}
	return tmpl
}

func checkedIndexes(m *Menu) []int {
	var out []int
	for i, it := range m.Items() {
		if it.Checked() {
			out = append(out, i)
		}
	}
	return out
}

func TestRadio_GroupsFollowRuns(t *testing.T) {
	m := mustCompile(t, compilerFor(platform.Linux), radioRunTemplate())

	first := m.ItemAt(0).GroupID()
	require.NotZero(t, first)
	for i := 0; i <= 10; i++ {
		require.Equal(t, first, m.ItemAt(i).GroupID(), "item %d", i)
	}
	require.Zero(t, m.ItemAt(11).GroupID())

	second := m.ItemAt(12).GroupID()
	require.NotZero(t, second)
	require.NotEqual(t, first, second)
	for i := 12; i <= 20; i++ {
		require.Equal(t, second, m.ItemAt(i).GroupID(), "item %d", i)
	}
}

func TestRadio_GroupIDsNeverReused(t *testing.T) {
	c := compilerFor(platform.Linux)
	a := mustCompile(t, c, Template{{Type: "radio"}, {Type: "normal"}, {Type: "radio"}})
	b := mustCompile(t, c, Template{{Type: "radio"}})

	ids := []int{a.ItemAt(0).GroupID(), a.ItemAt(2).GroupID(), b.ItemAt(0).GroupID()}
	assert.Len(t, map[int]bool{ids[0]: true, ids[1]: true, ids[2]: true}, 3)
}

func TestRadio_WillShowChecksFirstItem(t *testing.T) {
	m := mustCompile(t, compilerFor(platform.Linux), radioRunTemplate())
	require.Empty(t, checkedIndexes(m))

	require.NoError(t, m.WillShow())
	require.Equal(t, []int{0, 12}, checkedIndexes(m))

	require.NoError(t, m.WillShow())
	require.Equal(t, []int{0, 12}, checkedIndexes(m), "reconciliation is idempotent")
}

func TestRadio_WillShowKeepsFirstChecked(t *testing.T) {
	tmpl := radioRunTemplate()
	tmpl[3].Checked = true
	tmpl[7].Checked = true
	tmpl[15].Checked = true
	m := mustCompile(t, compilerFor(platform.Linux), tmpl)

	require.Equal(t, []int{3, 7, 15}, checkedIndexes(m), "compile keeps template state")
	require.NoError(t, m.WillShow())
	require.Equal(t, []int{3, 15}, checkedIndexes(m))
}

func TestRadio_StrictWillShowRejectsConflicts(t *testing.T) {
	tmpl := Template{
		{Label: "a", Type: "radio", Checked: true},
		{Label: "b", Type: "radio", Checked: true},
	}
	m := mustCompile(t, compilerFor(platform.Linux, WithStrictRadio(true)), tmpl)

	err := m.WillShow()
	require.ErrorIs(t, err, ErrRadioConflict)
	require.Equal(t, []int{0, 1}, checkedIndexes(m), "strict mode leaves state untouched")

	ok := mustCompile(t, compilerFor(platform.Linux, WithStrictRadio(true)), Template{{Type: "radio"}, {Type: "radio"}})
	require.NoError(t, ok.WillShow())
	require.Equal(t, []int{0}, checkedIndexes(ok))
}

func TestRadio_SetCheckedIsExclusive(t *testing.T) {
	m := mustCompile(t, compilerFor(platform.Linux), radioRunTemplate())
	require.NoError(t, m.WillShow())

	m.ItemAt(5).SetChecked(true)
	require.Equal(t, []int{5, 12}, checkedIndexes(m))

	m.ItemAt(9).SetChecked(true)
	require.Equal(t, []int{9, 12}, checkedIndexes(m))

	m.ItemAt(9).SetChecked(true)
	require.Equal(t, []int{9, 12}, checkedIndexes(m))

	m.ItemAt(20).SetChecked(true)
	require.Equal(t, []int{9, 20}, checkedIndexes(m), "other runs are independent")
}

func TestCheckbox_TogglesIndependently(t *testing.T) {
	m := mustCompile(t, compilerFor(platform.Linux), Template{
		{Label: "a", Type: "checkbox"},
		{Label: "b", Type: "checkbox", Checked: true},
		{Label: "c", Type: "checkbox"},
	})

	m.ItemAt(0).SetChecked(true)
	require.Equal(t, []int{0, 1}, checkedIndexes(m))
	m.ItemAt(1).SetChecked(false)
	require.Equal(t, []int{0}, checkedIndexes(m))
	require.NoError(t, m.WillShow())
	require.Equal(t, []int{0}, checkedIndexes(m), "WillShow never touches checkboxes")
}

func TestMenu_InsertRegroupsRuns(t *testing.T) {
	c := compilerFor(platform.Linux)

	t.Run("joins adjacent run", func(t *testing.T) {
		m := mustCompile(t, c, Template{{Type: "radio"}, {Type: "radio"}, {Type: "separator"}})
		group := m.ItemAt(0).GroupID()
		require.NoError(t, m.Append(Descriptor{Label: "lonely", Type: "radio"}))
		require.NoError(t, m.Insert(1, Descriptor{Label: "mid", Type: "radio"}))

		require.Equal(t, group, m.ItemAt(1).GroupID())
		require.Equal(t, group, m.ItemAt(2).GroupID())
		require.NotEqual(t, group, m.ItemAt(4).GroupID())
	})

	t.Run("splitting creates a new group", func(t *testing.T) {
		m := mustCompile(t, c, Template{{Type: "radio"}, {Type: "radio"}, {Type: "radio"}})
		group := m.ItemAt(0).GroupID()
		require.NoError(t, m.Insert(2, Descriptor{Type: "separator"}))

		require.Equal(t, group, m.ItemAt(1).GroupID())
		require.NotEqual(t, group, m.ItemAt(3).GroupID())
		require.NotZero(t, m.ItemAt(3).GroupID())
	})

	t.Run("grows an existing run", func(t *testing.T) {
		m := mustCompile(t, c, Template{{Type: "radio"}, {Type: "normal"}, {Type: "radio"}})
		require.NoError(t, m.Insert(1, Descriptor{Type: "radio"}))
		require.NoError(t, m.Insert(1, Descriptor{Type: "radio"}))

		// a, second insert, first insert, normal, b
		require.Equal(t, m.ItemAt(0).GroupID(), m.ItemAt(2).GroupID())
		require.NotEqual(t, m.ItemAt(0).GroupID(), m.ItemAt(4).GroupID())
	})

	t.Run("out of range", func(t *testing.T) {
		m := mustCompile(t, c, Template{{Label: "x"}})
		require.ErrorIs(t, m.Insert(5, Descriptor{Label: "y"}), ErrOutOfRange)
		require.ErrorIs(t, m.Insert(-1, Descriptor{Label: "y"}), ErrOutOfRange)
		require.ErrorIs(t, m.Append(Descriptor{Type: "nope"}), ErrUnknownType)
		require.Equal(t, 1, m.Len())
	})
}

var itemTypes = []string{"radio", "radio", "radio", "normal", "separator", "checkbox"}

// runsOf returns [start, end) index pairs of consecutive radio items.
func TestMenu_InsertCheckedRadioKeepsRunExclusive(t *testing.T) {
	c := compilerFor(platform.Linux)

	t.Run("append", func(t *testing.T) {
		m := mustCompile(t, c, Template{{Label: "a", Type: "radio", Checked: true}, {Label: "b", Type: "radio"}})
		require.NoError(t, m.Append(Descriptor{Label: "c", Type: "radio", Checked: true}))

		require.Equal(t, m.ItemAt(0).GroupID(), m.ItemAt(2).GroupID())
		require.Equal(t, []int{2}, checkedIndexes(m))
	})

	t.Run("insert into another run", func(t *testing.T) {
		m := mustCompile(t, c, Template{
			{Label: "a", Type: "radio", Checked: true},
			{Type: "separator"},
			{Label: "b", Type: "radio", Checked: true},
		})
		require.NoError(t, m.Insert(3, Descriptor{Label: "c", Type: "radio", Checked: true}))

		require.Equal(t, []int{0, 3}, checkedIndexes(m), "only the joined run changes")
	})

	t.Run("unchecked insert leaves run alone", func(t *testing.T) {
		m := mustCompile(t, c, Template{{Label: "a", Type: "radio", Checked: true}})
		require.NoError(t, m.Insert(0, Descriptor{Label: "b", Type: "radio"}))
		require.Equal(t, []int{1}, checkedIndexes(m))
	})
}

func runsOf(m *Menu) [][2]int {
	var runs [][2]int
	for i := 0; i < m.Len(); {
		if m.ItemAt(i).Type() != TypeRadio {
			i++
			continue
		}
		j := i
		for j < m.Len() && m.ItemAt(j).Type() == TypeRadio {
			j++
		}
		runs = append(runs, [2]int{i, j})
		i = j
	}
	return runs
}

func TestRadio_Properties(t *testing.T) {
	c := compilerFor(platform.Linux)

	rapid.Check(t, func(rt *rapid.T) {
		types := rapid.SliceOfN(rapid.SampledFrom(itemTypes), 1, 30).Draw(rt, "types")
		tmpl := make(Template, len(types))
		for i, typ := range types {
			tmpl[i] = Descriptor{Label: strconv.Itoa(i), Type: typ, Checked: rapid.Bool().Draw(rt, "checked")}
		}
		m, err := c.Compile(tmpl)
		require.NoError(rt, err)

		seen := make(map[int]bool)
		for _, run := range runsOf(m) {
			group := m.ItemAt(run[0]).GroupID()
			require.NotZero(rt, group)
			require.False(rt, seen[group], "group id reused across runs")
			seen[group] = true
			for i := run[0]; i < run[1]; i++ {
				require.Equal(rt, group, m.ItemAt(i).GroupID())
			}
		}

		require.NoError(rt, m.WillShow())
		for _, run := range runsOf(m) {
			n := 0
			for i := run[0]; i < run[1]; i++ {
				if m.ItemAt(i).Checked() {
					n++
				}
			}
			require.Equal(rt, 1, n, "exactly one checked item per run after WillShow")
		}

		for _, pick := range rapid.SliceOf(rapid.IntRange(0, m.Len()-1)).Draw(rt, "picks") {
			it := m.ItemAt(pick)
			if it.Type() != TypeRadio {
				continue
			}
			it.SetChecked(true)
			for _, other := range m.Items() {
				if other != it && other.GroupID() == it.GroupID() && other.Type() == TypeRadio {
					require.False(rt, other.Checked())
				}
			}
			require.True(rt, it.Checked())
		}
	})
}
