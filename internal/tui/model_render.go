package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/fitsel/internal/core/styles"
	"github.com/colonyops/fitsel/internal/core/tabs"
)

// refreshPane re-renders the active pane into the viewport. It runs after
// every state change so that mouse hit testing sees the same layout the user
// does.
func (m *Model) refreshPane() {
	tab := m.tabs.Active()

	render := func() {
		m.layout = renderPane(paneInput{
			tab:     tab,
			groups:  m.groups,
			cursor:  m.cursors[tab.ID],
			prose:   m.renderProse(tab),
			spinner: m.spinner.View(),
		})
	}

	render()
	if n := len(m.layout.targets); n > 0 && m.cursors[tab.ID] >= n {
		m.cursors[tab.ID] = n - 1
		render()
	}

	m.viewport.SetContent(m.layout.String())
	_, m.tabSpans = renderTabBar(m.tabs, m.spinner.View())
}

func (m *Model) ensureCursorVisible() {
	cur := m.cursors[m.tabs.Active().ID]
	if cur < 0 || cur >= len(m.layout.targetLine) {
		return
	}
	line := m.layout.targetLine[cur]
	switch {
	case line < m.viewport.YOffset:
		m.viewport.SetYOffset(line)
	case line >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

// renderProse renders a tab's prose with glamour, caching per tab until the
// content or width changes.
func (m *Model) renderProse(tab *tabs.Tab) string {
	text := tab.Content().Text
	if text == "" {
		return ""
	}
	if out, ok := m.prose[tab.ID]; ok {
		return out
	}

	out := text
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(text); err == nil {
			out = strings.Trim(rendered, "\n")
		} else {
			m.log.Debug().Err(err).Str("tab", tab.ID).Msg("render markdown")
		}
	}
	m.prose[tab.ID] = out
	return out
}

func (m Model) statusLine() string {
	tab := m.tabs.Active()
	if bar := downloadBar(tab, m.groups); bar != "" {
		return bar
	}
	return styles.DividerStyle.Render(m.tabs.SearchPath())
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	bar, _ := renderTabBar(m.tabs, m.spinner.View())
	body := m.toastView.Overlay(m.viewport.View(), m.width)

	main := lipgloss.JoinVertical(
		lipgloss.Left,
		bar,
		body,
		m.statusLine(),
		m.help.View(m.keys),
	)

	if m.state == stateModal {
		return m.modal.Overlay(main, m.width, m.height)
	}
	return main
}
