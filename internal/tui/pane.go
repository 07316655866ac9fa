package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/fitsel/internal/core/fragment"
	"github.com/colonyops/fitsel/internal/core/selection"
	"github.com/colonyops/fitsel/internal/core/styles"
	"github.com/colonyops/fitsel/internal/core/tabs"
)

const maxColWidth = 40

type targetKind int

const (
	targetToggle targetKind = iota
	targetItem
)

// target is something the cursor can rest on: a group's toggle button or
// one of its items.
type target struct {
	kind  targetKind
	group string
	item  int
}

// paneLayout is a rendered pane plus where its targets landed.
type paneLayout struct {
	lines      []string
	targets    []target
	targetLine []int
	lineTarget map[int]int
}

func (p paneLayout) String() string {
	return strings.Join(p.lines, "\n")
}

// targetAt returns the target rendered on line.
func (p paneLayout) targetAt(line int) (int, bool) {
	idx, ok := p.lineTarget[line]
	return idx, ok
}

func (p *paneLayout) add(line string) {
	p.lines = append(p.lines, line)
}

func (p *paneLayout) addTarget(line string, t target) {
	if p.lineTarget == nil {
		p.lineTarget = make(map[int]int)
	}
	p.lineTarget[len(p.lines)] = len(p.targets)
	p.targetLine = append(p.targetLine, len(p.lines))
	p.targets = append(p.targets, t)
	p.add(line)
}

type paneInput struct {
	tab     *tabs.Tab
	groups  *selection.Manager
	cursor  int
	prose   string // rendered markdown; empty to skip
	spinner string
}

func renderPane(in paneInput) paneLayout {
	var p paneLayout
	tab := in.tab
	content := tab.Content()

	switch {
	case !tab.Allow && tab.Endpoint != "":
		p.add(styles.PaneNoticeStyle.Render(fmt.Sprintf("Loading of %s is disabled.", tab.Title)))
		return p
	case tab.State() == tabs.Loading && content.IsEmpty():
		p.add(styles.PaneNoticeStyle.Render(in.spinner + " Loading " + tab.Title + "..."))
		return p
	}

	if err := tab.Err(); err != nil {
		p.add(styles.ErrorTextStyle.Render(fmt.Sprintf("Could not load %s: %v. Press r to retry.", tab.Title, err)))
		p.add("")
	}

	if content.IsEmpty() {
		if tab.State() == tabs.Loaded {
			p.add(styles.PaneNoticeStyle.Render("Nothing to show."))
		} else if tab.Err() == nil {
			p.add(styles.PaneNoticeStyle.Render(tab.Title + " not loaded yet."))
		}
		return p
	}

	if in.prose != "" {
		for _, line := range strings.Split(in.prose, "\n") {
			p.add(line)
		}
		p.add("")
	}

	for _, table := range content.Tables {
		renderTable(&p, table, in.groups, in.cursor)
		p.add("")
	}

	return p
}

func renderTable(p *paneLayout, table fragment.Table, groups *selection.Manager, cursor int) {
	g, selectable := groups.Group(table.GroupID)
	selectable = selectable && table.Selectable()

	widths, skipFirst := columnWidths(table)
	prefix := strings.Repeat(" ", 2+len(styles.GlyphUnchecked)+1)

	if selectable {
		focused := len(p.targets) == cursor
		style := styles.ToggleStyle
		if focused {
			style = styles.ToggleFocusStyle
		}
		line := style.Render(g.ToggleLabel()) +
			styles.DividerStyle.Render(fmt.Sprintf("  %d/%d selected", g.CheckedCount(), g.Len()))
		p.addTarget(line, target{kind: targetToggle, group: g.ID()})
	}

	if len(table.Header) > 0 {
		lead := ""
		if selectable {
			lead = prefix
		}
		p.add(styles.PaneHeaderStyle.Render(lead + formatCells(table.Header, widths, skipFirst)))
	}

	anchor, hasAnchor := -1, false
	if selectable {
		anchor, hasAnchor = g.Anchor()
	}

	for _, row := range table.Rows {
		cells := formatCells(row.Cells, widths, skipFirst)
		if !selectable || !row.Selectable() {
			lead := ""
			if selectable {
				lead = prefix
			}
			p.add(styles.RowReadOnlyStyle.Render(lead + cells))
			continue
		}

		item, _ := g.Item(row.ItemIndex)
		checked := g.IsChecked(row.ItemIndex)
		focused := len(p.targets) == cursor

		mark := " "
		switch {
		case focused:
			mark = styles.GlyphCursor
		case hasAnchor && anchor == row.ItemIndex:
			mark = styles.GlyphAnchor
		}

		style := styles.RowStyle
		switch {
		case focused:
			style = styles.RowCursorStyle
		case item.Disabled:
			style = styles.RowDisabledStyle
		case checked:
			style = styles.RowCheckedStyle
		}

		line := style.Render(mark + " " + styles.Checkbox(checked, item.Disabled) + " " + cells)
		p.addTarget(line, target{kind: targetItem, group: g.ID(), item: row.ItemIndex})
	}
}

// columnWidths sizes each column to its widest cell. Rows with fewer cells
// than the table (colspans) do not count. A first column that is empty
// everywhere (the checkbox column) is skipped.
func columnWidths(table fragment.Table) ([]int, bool) {
	ncols := len(table.Header)
	for _, r := range table.Rows {
		ncols = max(ncols, len(r.Cells))
	}

	widths := make([]int, ncols)
	grow := func(cells []string) {
		if len(cells) < ncols {
			return
		}
		for i, c := range cells {
			widths[i] = max(widths[i], min(lipgloss.Width(c), maxColWidth))
		}
	}
	grow(table.Header)
	for _, r := range table.Rows {
		grow(r.Cells)
	}

	skipFirst := ncols > 1 && widths[0] == 0
	return widths, skipFirst
}

func formatCells(cells []string, widths []int, skipFirst bool) string {
	if len(cells) < len(widths) {
		return strings.Join(cells, " ")
	}
	parts := make([]string, 0, len(cells))
	for i, c := range cells {
		if i == 0 && skipFirst {
			continue
		}
		parts = append(parts, pad(c, widths[i]))
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}

// pad truncates or right-pads plain text to w cells.
func pad(s string, w int) string {
	if lipgloss.Width(s) <= w {
		return s + strings.Repeat(" ", w-lipgloss.Width(s))
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > w {
		runes = runes[:len(runes)-1]
	}
	out := string(runes) + "…"
	return out + strings.Repeat(" ", max(w-lipgloss.Width(out), 0))
}

// downloadBar summarises the selection held by a tab's groups. It is empty
// for tabs that hide it or hold nothing selectable.
func downloadBar(tab *tabs.Tab, groups *selection.Manager) string {
	if tab.HideDownloadBar || len(tab.Groups()) == 0 {
		return ""
	}
	n := 0
	for _, id := range tab.Groups() {
		if g, ok := groups.Group(id); ok {
			n += g.CheckedCount()
		}
	}
	noun := "files"
	if n == 1 {
		noun = "file"
	}
	return styles.DownloadBarStyle.Render(fmt.Sprintf("%d %s selected", n, noun))
}

type tabSpan struct {
	id         string
	start, end int // cell columns, end exclusive
}

// renderTabBar draws one header per tab. Styling derives only from which tab
// is active and its load state.
func renderTabBar(ctrl *tabs.Controller, spinner string) (string, []tabSpan) {
	var (
		parts []string
		spans []tabSpan
		x     int
	)
	for i, t := range ctrl.Tabs() {
		label := fmt.Sprintf("%d %s", i+1, ctrl.Label(t.ID))
		style := styles.TabInactiveStyle
		switch {
		case ctrl.IsActive(t.ID):
			style = styles.TabActiveStyle
		case t.State() == tabs.Loading:
			style = styles.TabLoadingStyle
		}
		if t.State() == tabs.Loading {
			label += " " + spinner
		}
		rendered := style.Render(label)
		w := lipgloss.Width(rendered)
		spans = append(spans, tabSpan{id: t.ID, start: x, end: x + w})
		parts = append(parts, rendered)
		x += w + 1
	}
	return styles.TabBarStyle.Render(strings.Join(parts, " ")), spans
}

func tabAt(spans []tabSpan, x int) (string, bool) {
	for _, s := range spans {
		if x >= s.start && x < s.end {
			return s.id, true
		}
	}
	return "", false
}
