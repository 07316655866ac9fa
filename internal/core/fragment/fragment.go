// Package fragment parses the HTML fragments returned by the archive's
// body-only endpoints into tables of selectable rows plus a markdown
// rendering of the surrounding prose.
package fragment

import "strings"

// GroupClassPrefix marks a checkbox as a member of a selection group: a
// checkbox with class "mark_raw" belongs to group "raw".
const GroupClassPrefix = "mark_"

// Content is a parsed fragment.
type Content struct {
	Text   string // prose outside of tables, as markdown
	Tables []Table
}

// Table is one <table> in document order. Tables sharing a GroupID are one
// selection group; their items are numbered across tables.
type Table struct {
	GroupID string // empty when the table has no grouped checkboxes
	Header  []string
	Rows    []Row
}

// Row is one data row of a table.
type Row struct {
	Cells     []string
	Value     string // checkbox value, when the row is selectable
	Disabled  bool
	ItemIndex int // position among the group's selectable rows, -1 if none
}

// Selectable reports whether the row carries a grouped checkbox.
func (r Row) Selectable() bool {
	return r.ItemIndex >= 0
}

// Selectable reports whether the table belongs to a selection group.
func (t Table) Selectable() bool {
	return t.GroupID != ""
}

// ItemCount returns the number of selectable rows.
func (t Table) ItemCount() int {
	n := 0
	for _, r := range t.Rows {
		if r.Selectable() {
			n++
		}
	}
	return n
}

// RowForItem returns the row index holding selectable item i.
func (t Table) RowForItem(i int) (int, bool) {
	for idx, r := range t.Rows {
		if r.ItemIndex == i {
			return idx, true
		}
	}
	return 0, false
}

// SelectableTables returns the tables that belong to a selection group.
func (c Content) SelectableTables() []Table {
	var out []Table
	for _, t := range c.Tables {
		if t.Selectable() {
			out = append(out, t)
		}
	}
	return out
}

// Table returns the table for a group id.
func (c Content) Table(groupID string) (Table, bool) {
	for _, t := range c.Tables {
		if t.GroupID == groupID {
			return t, true
		}
	}
	return Table{}, false
}

// GroupIDs returns the ids of the selection groups in order of first
// appearance.
func (c Content) GroupIDs() []string {
	var ids []string
	seen := make(map[string]bool)
	for _, t := range c.Tables {
		if t.Selectable() && !seen[t.GroupID] {
			seen[t.GroupID] = true
			ids = append(ids, t.GroupID)
		}
	}
	return ids
}

// Items returns the selectable rows of a group across all tables, ordered by
// ItemIndex.
func (c Content) Items(groupID string) []Row {
	var out []Row
	for _, t := range c.Tables {
		if t.GroupID != groupID {
			continue
		}
		for _, r := range t.Rows {
			if r.Selectable() {
				out = append(out, r)
			}
		}
	}
	return out
}

// IsEmpty reports whether the fragment had neither prose nor tables.
func (c Content) IsEmpty() bool {
	return strings.TrimSpace(c.Text) == "" && len(c.Tables) == 0
}

// groupFromClass extracts the group id from a class attribute.
func groupFromClass(class string) string {
	for _, token := range strings.Fields(class) {
		if id, ok := strings.CutPrefix(token, GroupClassPrefix); ok && id != "" {
			return id
		}
	}
	return ""
}
