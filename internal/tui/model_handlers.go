package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/fitsel/internal/core/tabs"
)

const emptySelectionMessage = "Please select one or more files first."

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	if msg.Width != m.width {
		m.renderer = newRenderer(m.markdownStyle, msg.Width)
		clear(m.prose)
	}
	m.width = msg.Width
	m.height = msg.Height
	m.resize()
	m.refreshPane()
	m.ensureCursorVisible()
	return m, nil
}

func (m *Model) resize() {
	m.help.Width = m.width
	helpHeight := lipgloss.Height(m.help.View(m.keys))
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-tabBarHeight-statusHeight-helpHeight, 1)
}

func (m Model) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	if m.tabs.Active().State() == tabs.Loading {
		m.refreshPane()
	}
	return m, cmd
}

func (m Model) handleFetchDone(msg fetchDoneMsg) (tea.Model, tea.Cmd) {
	f := msg.fetch
	tab, ok := m.tabs.Tab(f.TabID)
	if !ok {
		return m, nil
	}

	if msg.err != nil {
		m.tabs.Fail(f, msg.err)
		m.bus.Errorf("Loading %s failed: %v", tab.Title, msg.err)
		m.refreshPane()
		return m, m.toastTickCmd()
	}

	m.tabs.Complete(f, msg.content)
	delete(m.prose, f.TabID)
	m.cursors[f.TabID] = 0
	if m.tabs.IsActive(f.TabID) {
		m.viewport.GotoTop()
	}

	if f.Kind == tabs.SelectionLoad {
		m.bus.Infof("Loaded %s for %d selected files", tab.Title, len(f.Files))
	}

	m.refreshPane()
	return m, m.toastTickCmd()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state == stateModal {
		switch {
		case msg.String() == "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Dismiss):
			m.modal.Dismiss()
			m.state = stateNormal
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		return m.activate(m.relativeTab(1))
	case key.Matches(msg, m.keys.PrevTab):
		return m.activate(m.relativeTab(-1))
	case key.Matches(msg, m.keys.SelectTab):
		idx := int(msg.String()[0] - '1')
		all := m.tabs.Tabs()
		if idx < len(all) {
			return m.activate(all[idx].ID)
		}
		return m, nil
	case key.Matches(msg, m.keys.Selection):
		return m.activateWithSelection()
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height)
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height)
	case key.Matches(msg, m.keys.Click):
		m.click(false)
	case key.Matches(msg, m.keys.ShiftClick):
		m.click(true)
	case key.Matches(msg, m.keys.ExtendUp):
		if m.moveCursor(-1) {
			m.click(true)
		}
	case key.Matches(msg, m.keys.ExtendDown):
		if m.moveCursor(1) {
			m.click(true)
		}
	case key.Matches(msg, m.keys.Toggle):
		m.pressToggle()
	case key.Matches(msg, m.keys.Reload):
		return m.reload()
	case key.Matches(msg, m.keys.History):
		m.showHistory()
	case key.Matches(msg, m.keys.DismissToast):
		m.toasts.Dismiss()
	}

	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.state == stateModal {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
	default:
		return m, nil
	}

	if msg.Y < tabBarHeight {
		if id, ok := tabAt(m.tabSpans, msg.X); ok {
			return m.activate(id)
		}
		return m, nil
	}

	line := msg.Y - tabBarHeight + m.viewport.YOffset
	if idx, ok := m.layout.targetAt(line); ok {
		m.cursors[m.tabs.Active().ID] = idx
		m.click(msg.Shift)
	}
	return m, nil
}

func (m Model) relativeTab(delta int) string {
	all := m.tabs.Tabs()
	for i, t := range all {
		if m.tabs.IsActive(t.ID) {
			return all[(i+delta+len(all))%len(all)].ID
		}
	}
	return all[0].ID
}

func (m Model) activate(id string) (tea.Model, tea.Cmd) {
	f, err := m.tabs.Activate(id)
	if err != nil {
		m.bus.Errorf("%v", err)
		return m, m.toastTickCmd()
	}

	m.refreshPane()
	m.ensureCursorVisible()

	if f == nil {
		return m, nil
	}
	return m, m.fetchCmd(*f)
}

// selectionTab picks the tab "load for selection" applies to: the active
// tab when it is selection driven, otherwise the first one that is.
func (m Model) selectionTab() (string, bool) {
	if active := m.tabs.Active(); active.SelectionDriven {
		return active.ID, true
	}
	for _, t := range m.tabs.Tabs() {
		if t.SelectionDriven {
			return t.ID, true
		}
	}
	return "", false
}

func (m Model) activateWithSelection() (tea.Model, tea.Cmd) {
	id, ok := m.selectionTab()
	if !ok {
		m.bus.Warnf("No tab loads content from a selection")
		return m, m.toastTickCmd()
	}

	f, err := m.tabs.ActivateWithSelection(id)
	switch {
	case errors.Is(err, tabs.ErrEmptySelection):
		m.modal = NewModal("Selection required", emptySelectionMessage)
		m.state = stateModal
		return m, nil
	case err != nil:
		m.bus.Errorf("%v", err)
		return m, m.toastTickCmd()
	}

	m.refreshPane()
	m.ensureCursorVisible()

	if f == nil {
		return m, nil
	}
	return m, m.fetchCmd(*f)
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	f, err := m.tabs.Reload(m.tabs.Active().ID)
	if err != nil || f == nil {
		return m, nil
	}
	m.refreshPane()
	return m, m.fetchCmd(*f)
}

// moveCursor moves the cursor by delta targets and reports whether it moved.
func (m *Model) moveCursor(delta int) bool {
	n := len(m.layout.targets)
	if n == 0 {
		return false
	}
	id := m.tabs.Active().ID
	cur := m.cursors[id]
	next := min(max(cur+delta, 0), n-1)
	if next == cur {
		return false
	}
	m.cursors[id] = next
	m.refreshPane()
	m.ensureCursorVisible()
	return true
}

func (m *Model) currentTarget() (target, bool) {
	cur := m.cursors[m.tabs.Active().ID]
	if cur < 0 || cur >= len(m.layout.targets) {
		return target{}, false
	}
	return m.layout.targets[cur], true
}

// click acts on the target under the cursor. An item click toggles the item
// and then applies range selection, so a shift-click paints the range with
// the anchor's value.
func (m *Model) click(shift bool) {
	t, ok := m.currentTarget()
	if !ok {
		return
	}

	switch t.kind {
	case targetToggle:
		m.groups.PressToggle(t.group)
	case targetItem:
		m.groups.ToggleItem(t.group, t.item)
		m.groups.HandleItemClick(t.group, t.item, shift)
	}
	m.refreshPane()
}

// pressToggle presses the toggle of the group under the cursor, or of the
// pane's first group.
func (m *Model) pressToggle() {
	group := ""
	if t, ok := m.currentTarget(); ok {
		group = t.group
	} else if ids := m.tabs.Active().Groups(); len(ids) > 0 {
		group = ids[0]
	}
	if group == "" {
		return
	}
	m.groups.PressToggle(group)
	m.refreshPane()
}

func (m *Model) showHistory() {
	history, err := m.bus.History()
	if err != nil {
		m.log.Error().Err(err).Msg("load notification history")
		return
	}

	var sb strings.Builder
	if len(history) == 0 {
		sb.WriteString("No notifications.")
	}
	for i, n := range history {
		if i == historyEntries {
			break
		}
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s  %-7s %s", n.CreatedAt.Format("15:04:05"), n.Level, n.Message)
	}

	m.modal = NewModal("Notifications", sb.String())
	m.state = stateModal
}
