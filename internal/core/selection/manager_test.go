package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func items(values ...string) []Item {
	out := make([]Item, len(values))
	for i, v := range values {
		out[i] = Item{Value: v}
	}
	return out
}

func checkedValues(m *Manager, id string) []string {
	return m.Selected(id)
}

func TestManager_InitGroup(t *testing.T) {
	m := NewManager()
	g := m.InitGroup("raw", items("a", "b", "c"))

	assert.Equal(t, "raw", g.ID())
	assert.Equal(t, 3, g.Len())
	assert.Equal(t, 0, g.CheckedCount())
	assert.Equal(t, MarkAllCaption, g.ToggleLabel())

	_, ok := g.Anchor()
	assert.False(t, ok)
}

func TestManager_InitGroupReplacesExisting(t *testing.T) {
	m := NewManager()
	m.InitGroup("associated_cals", items("a", "b"))
	m.MarkAll("associated_cals")
	m.HandleItemClick("associated_cals", 1, false)

	g := m.InitGroup("associated_cals", items("x", "y", "z"))

	assert.Equal(t, 3, g.Len())
	assert.Empty(t, m.Selected("associated_cals"))
	assert.Equal(t, MarkAllCaption, m.ToggleLabel("associated_cals"))
	_, ok := g.Anchor()
	assert.False(t, ok, "re-registering discards the anchor")
}

func TestManager_MarkAll(t *testing.T) {
	m := NewManager()
	m.InitGroup("customsearch", []Item{
		{Value: "a"},
		{Value: "b", Disabled: true},
		{Value: "c"},
	})

	m.MarkAll("customsearch")

	assert.Equal(t, []string{"a", "b", "c"}, checkedValues(m, "customsearch"), "disabled items are marked too")
	assert.Equal(t, UnmarkAllCaption, m.ToggleLabel("customsearch"))

	g, _ := m.Group("customsearch")
	assert.Equal(t, ToggleUnmarkAll, g.NextToggle())
}

func TestManager_UnmarkAll(t *testing.T) {
	m := NewManager()
	m.InitGroup("customsearch", items("a", "b", "c"))
	m.MarkAll("customsearch")
	m.HandleItemClick("customsearch", 2, false)

	m.UnmarkAll("customsearch")

	assert.Empty(t, checkedValues(m, "customsearch"))
	assert.Equal(t, MarkAllCaption, m.ToggleLabel("customsearch"))

	g, _ := m.Group("customsearch")
	assert.Equal(t, ToggleMarkAll, g.NextToggle())
	_, ok := g.Anchor()
	assert.False(t, ok, "unmark all resets the anchor")
}

func TestManager_PressToggle(t *testing.T) {
	m := NewManager()
	m.InitGroup("raw", items("a", "b"))

	action, ok := m.PressToggle("raw")
	require.True(t, ok)
	assert.Equal(t, ToggleMarkAll, action)
	assert.Equal(t, []string{"a", "b"}, checkedValues(m, "raw"))

	action, ok = m.PressToggle("raw")
	require.True(t, ok)
	assert.Equal(t, ToggleUnmarkAll, action)
	assert.Empty(t, checkedValues(m, "raw"))

	// pressing again marks again; the handler is stable across flips
	action, _ = m.PressToggle("raw")
	assert.Equal(t, ToggleMarkAll, action)
}

func TestManager_PressToggleUnknownGroup(t *testing.T) {
	m := NewManager()
	_, ok := m.PressToggle("missing")
	assert.False(t, ok)
}

func TestManager_ToggleItem(t *testing.T) {
	m := NewManager()
	m.InitGroup("raw", []Item{{Value: "a"}, {Value: "b", Disabled: true}})

	m.ToggleItem("raw", 0)
	assert.True(t, m.IsChecked("raw", 0))

	m.ToggleItem("raw", 0)
	assert.False(t, m.IsChecked("raw", 0))

	m.ToggleItem("raw", 1)
	assert.False(t, m.IsChecked("raw", 1), "disabled items cannot be toggled")

	// out of range is ignored
	m.ToggleItem("raw", 7)
	m.ToggleItem("raw", -1)
	assert.Empty(t, checkedValues(m, "raw"))
}

func TestManager_HandleItemClickFirstClickSetsAnchor(t *testing.T) {
	m := NewManager()
	m.InitGroup("raw", items("a", "b", "c"))
	m.ToggleItem("raw", 0)

	// shift held but no anchor yet: only the anchor is recorded
	m.HandleItemClick("raw", 2, true)

	g, _ := m.Group("raw")
	anchor, ok := g.Anchor()
	require.True(t, ok)
	assert.Equal(t, 2, anchor)
	assert.Equal(t, []string{"a"}, checkedValues(m, "raw"))
}

func TestManager_HandleItemClickPaintsAnchorValue(t *testing.T) {
	m := NewManager()
	m.InitGroup("raw", items("a", "b", "c", "d", "e"))

	m.ToggleItem("raw", 1)
	m.HandleItemClick("raw", 1, false)
	m.HandleItemClick("raw", 3, true)

	assert.Equal(t, []string{"b", "c", "d"}, checkedValues(m, "raw"))
}

func TestManager_HandleItemClickRangeIsSymmetric(t *testing.T) {
	forward := NewManager()
	forward.InitGroup("raw", items("a", "b", "c", "d", "e", "f"))
	forward.ToggleItem("raw", 2)
	forward.HandleItemClick("raw", 2, false)
	forward.HandleItemClick("raw", 5, true)

	backward := NewManager()
	backward.InitGroup("raw", items("a", "b", "c", "d", "e", "f"))
	backward.ToggleItem("raw", 5)
	backward.HandleItemClick("raw", 5, false)
	backward.HandleItemClick("raw", 2, true)

	assert.Equal(t, []string{"c", "d", "e", "f"}, checkedValues(forward, "raw"))
	assert.Equal(t, checkedValues(forward, "raw"), checkedValues(backward, "raw"))
}

func TestManager_HandleItemClickSkipsDisabled(t *testing.T) {
	m := NewManager()
	m.InitGroup("raw", []Item{
		{Value: "a"},
		{Value: "b", Disabled: true},
		{Value: "c"},
		{Value: "d"},
	})

	m.ToggleItem("raw", 0)
	m.HandleItemClick("raw", 0, false)
	m.HandleItemClick("raw", 3, true)

	assert.Equal(t, []string{"a", "c", "d"}, checkedValues(m, "raw"))
	assert.False(t, m.IsChecked("raw", 1))
}

func TestManager_HandleItemClickDisabledKeepsCheckedState(t *testing.T) {
	m := NewManager()
	m.InitGroup("raw", items("a", "b", "c"))
	m.MarkAll("raw")
	m.SetDisabled("raw", 1, true)

	// anchor unchecked, then paint across the disabled, still-checked item
	m.ToggleItem("raw", 0)
	m.HandleItemClick("raw", 0, false)
	m.HandleItemClick("raw", 2, true)

	assert.Equal(t, []string{"b"}, checkedValues(m, "raw"), "range never removes a disabled item")
}

func TestManager_HandleItemClickIgnoresDisabledTarget(t *testing.T) {
	m := NewManager()
	m.InitGroup("raw", []Item{{Value: "a"}, {Value: "b", Disabled: true}})

	m.HandleItemClick("raw", 1, false)

	g, _ := m.Group("raw")
	_, ok := g.Anchor()
	assert.False(t, ok)
}

func TestManager_HandleItemClickConsecutiveShiftClicksExtendFromLast(t *testing.T) {
	m := NewManager()
	m.InitGroup("raw", items("a", "b", "c", "d", "e"))

	m.ToggleItem("raw", 0)
	m.HandleItemClick("raw", 0, false)
	m.HandleItemClick("raw", 1, true) // a,b checked; anchor=b
	m.HandleItemClick("raw", 4, true) // paints b..e with b's value

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, checkedValues(m, "raw"))

	g, _ := m.Group("raw")
	anchor, _ := g.Anchor()
	assert.Equal(t, 4, anchor)
}

func TestManager_GroupsAreIsolated(t *testing.T) {
	m := NewManager()
	m.InitGroup("raw", items("a", "b"))
	m.InitGroup("customsearch", items("x", "y"))
	m.ToggleItem("customsearch", 1)
	m.HandleItemClick("customsearch", 1, false)

	m.MarkAll("raw")
	m.HandleItemClick("raw", 0, false)

	assert.Equal(t, []string{"y"}, checkedValues(m, "customsearch"))
	assert.Equal(t, MarkAllCaption, m.ToggleLabel("customsearch"))

	cs, _ := m.Group("customsearch")
	anchor, _ := cs.Anchor()
	assert.Equal(t, 1, anchor)
}

// Click c, shift-click e while c is unchecked, check c by hand, then
// shift-click a: the range a..c takes c's value.
func TestManager_ScenarioPaintWithAnchor(t *testing.T) {
	m := NewManager()
	m.InitGroup("customsearch", items("a", "b", "c", "d", "e"))

	m.HandleItemClick("customsearch", 2, false)
	m.HandleItemClick("customsearch", 4, true)
	assert.Empty(t, checkedValues(m, "customsearch"))

	// a manual check is a native toggle followed by a plain click
	m.ToggleItem("customsearch", 2)
	m.HandleItemClick("customsearch", 2, false)
	m.HandleItemClick("customsearch", 0, true)

	assert.Equal(t, []string{"a", "b", "c"}, checkedValues(m, "customsearch"))
}

func TestManager_GroupsSorted(t *testing.T) {
	m := NewManager()
	m.InitGroup("raw", nil)
	m.InitGroup("associated_cals", nil)
	m.InitGroup("customsearch", nil)

	assert.Equal(t, []string{"associated_cals", "customsearch", "raw"}, m.Groups())

	m.Remove("raw")
	assert.Equal(t, []string{"associated_cals", "customsearch"}, m.Groups())
}

func TestManager_UnknownGroupIsNoop(t *testing.T) {
	m := NewManager()

	assert.NotPanics(t, func() {
		m.MarkAll("nope")
		m.UnmarkAll("nope")
		m.ToggleItem("nope", 0)
		m.HandleItemClick("nope", 0, true)
		m.SetDisabled("nope", 0, true)
	})
	assert.Nil(t, m.Selected("nope"))
	assert.Equal(t, "", m.ToggleLabel("nope"))
	assert.False(t, m.IsChecked("nope", 0))
}
