package selection

import "sort"

// Manager owns every registered Group. Operations on unknown group ids are
// no-ops: group ids are wired by the application, not supplied by users.
type Manager struct {
	groups map[string]*Group
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{groups: make(map[string]*Group)}
}

// InitGroup registers a group, replacing any group with the same id. The new
// group starts with nothing checked, no anchor, and a "mark all" toggle.
func (m *Manager) InitGroup(id string, items []Item) *Group {
	g := newGroup(id, items)
	m.groups[id] = g
	return g
}

// Remove forgets a group.
func (m *Manager) Remove(id string) {
	delete(m.groups, id)
}

// Group returns the group registered under id.
func (m *Manager) Group(id string) (*Group, bool) {
	g, ok := m.groups[id]
	return g, ok
}

// Groups returns the registered group ids in sorted order.
func (m *Manager) Groups() []string {
	ids := make([]string, 0, len(m.groups))
	for id := range m.groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// MarkAll checks every item in the group, disabled ones included, and flips
// the toggle so its next press unmarks.
func (m *Manager) MarkAll(id string) {
	if g, ok := m.groups[id]; ok {
		g.markAll()
	}
}

// UnmarkAll clears the group's selection and anchor and flips the toggle so
// its next press marks.
func (m *Manager) UnmarkAll(id string) {
	if g, ok := m.groups[id]; ok {
		g.unmarkAll()
	}
}

// PressToggle runs whichever of MarkAll or UnmarkAll the toggle currently
// points at and returns the action taken.
func (m *Manager) PressToggle(id string) (ToggleAction, bool) {
	g, ok := m.groups[id]
	if !ok {
		return ToggleMarkAll, false
	}

	action := g.toggle
	switch action {
	case ToggleUnmarkAll:
		g.unmarkAll()
	default:
		g.markAll()
	}
	return action, true
}

// ToggleItem flips a single item. Disabled items are left alone.
func (m *Manager) ToggleItem(id string, index int) {
	g, ok := m.groups[id]
	if !ok || !g.valid(index) || g.items[index].Disabled {
		return
	}
	g.checked[index] = !g.checked[index]
}

// SetDisabled changes whether an item takes part in bulk changes. The item's
// checked state is not touched.
func (m *Manager) SetDisabled(id string, index int, disabled bool) {
	g, ok := m.groups[id]
	if !ok || !g.valid(index) {
		return
	}
	g.items[index].Disabled = disabled
}

// HandleItemClick extends a selection with shift-click semantics.
//
// The first click in a group only records the anchor. A shift-click paints
// every enabled item between the anchor and the clicked item (inclusive, in
// either direction) with the anchor's current checked value. Every click
// moves the anchor to the clicked item. The clicked item's own toggle is left
// to the caller (see ToggleItem).
//
// Clicks on disabled items are ignored, as a disabled checkbox receives no
// click events.
func (m *Manager) HandleItemClick(id string, index int, shift bool) {
	g, ok := m.groups[id]
	if !ok || !g.valid(index) || g.items[index].Disabled {
		return
	}

	if g.anchor < 0 {
		g.anchor = index
		return
	}

	if shift {
		lo, hi := min(index, g.anchor), max(index, g.anchor)
		g.paint(lo, hi, g.checked[g.anchor])
	}

	g.anchor = index
}

// Selected returns the checked values of a group in document order.
func (m *Manager) Selected(id string) []string {
	g, ok := m.groups[id]
	if !ok {
		return nil
	}
	return g.Selected()
}

// ToggleLabel returns the toggle caption for a group, or "" if the group is
// not registered.
func (m *Manager) ToggleLabel(id string) string {
	g, ok := m.groups[id]
	if !ok {
		return ""
	}
	return g.ToggleLabel()
}

// IsChecked reports whether the item at index is checked.
func (m *Manager) IsChecked(id string, index int) bool {
	g, ok := m.groups[id]
	return ok && g.IsChecked(index)
}

// Anchor returns the group's range-selection anchor.
func (m *Manager) Anchor(id string) (int, bool) {
	if g, ok := m.groups[id]; ok {
		return g.Anchor()
	}
	return 0, false
}
