// Package selection tracks checkbox state for independently selectable result
// tables. Each table is a Group keyed by its group id; groups never share
// state. The package has no UI dependencies so it can be driven from the
// Bubble Tea update loop and from tests alike.
package selection

// Captions shown on a group's toggle control.
const (
	MarkAllCaption   = "Mark All Files"
	UnmarkAllCaption = "Unmark All Files"
)

// Item is a single selectable row. Value is the stable identifier sent to the
// archive (the checkbox value, normally a filename).
type Item struct {
	Value    string
	Disabled bool
}

// ToggleAction is what the group's toggle control does when pressed next.
type ToggleAction int

const (
	ToggleMarkAll ToggleAction = iota
	ToggleUnmarkAll
)

// Caption returns the button text for the action.
func (a ToggleAction) Caption() string {
	if a == ToggleUnmarkAll {
		return UnmarkAllCaption
	}
	return MarkAllCaption
}

// Group is one selectable table. Items are addressed by their position in
// document order, which is also the index space used for range selection.
type Group struct {
	id      string
	items   []Item
	checked []bool
	anchor  int // -1 when unset
	toggle  ToggleAction
}

func newGroup(id string, items []Item) *Group {
	g := &Group{
		id:      id,
		items:   make([]Item, len(items)),
		checked: make([]bool, len(items)),
		anchor:  -1,
		toggle:  ToggleMarkAll,
	}
	copy(g.items, items)
	return g
}

// ID returns the group id.
func (g *Group) ID() string { return g.id }

// Len returns the number of items in the group.
func (g *Group) Len() int { return len(g.items) }

// Item returns the item at index i.
func (g *Group) Item(i int) (Item, bool) {
	if !g.valid(i) {
		return Item{}, false
	}
	return g.items[i], true
}

// IsChecked reports whether the item at index i is checked.
func (g *Group) IsChecked(i int) bool {
	return g.valid(i) && g.checked[i]
}

// Anchor returns the index of the last clicked item, if any.
func (g *Group) Anchor() (int, bool) {
	return g.anchor, g.anchor >= 0
}

// NextToggle returns what the toggle control does when pressed.
func (g *Group) NextToggle() ToggleAction { return g.toggle }

// ToggleLabel returns the current caption of the toggle control.
func (g *Group) ToggleLabel() string { return g.toggle.Caption() }

// CheckedCount returns the number of checked items.
func (g *Group) CheckedCount() int {
	n := 0
	for _, c := range g.checked {
		if c {
			n++
		}
	}
	return n
}

// Selected returns the values of the checked items in document order.
func (g *Group) Selected() []string {
	out := make([]string, 0, g.CheckedCount())
	for i, c := range g.checked {
		if c {
			out = append(out, g.items[i].Value)
		}
	}
	return out
}

func (g *Group) valid(i int) bool {
	return i >= 0 && i < len(g.items)
}

func (g *Group) markAll() {
	for i := range g.checked {
		g.checked[i] = true
	}
	g.toggle = ToggleUnmarkAll
}

func (g *Group) unmarkAll() {
	for i := range g.checked {
		g.checked[i] = false
	}
	g.anchor = -1
	g.toggle = ToggleMarkAll
}

// paint sets every enabled item in [lo, hi] to value.
func (g *Group) paint(lo, hi int, value bool) {
	for i := lo; i <= hi; i++ {
		if g.items[i].Disabled {
			continue
		}
		g.checked[i] = value
	}
}
