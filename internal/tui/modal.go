package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/fitsel/internal/core/styles"
)

// Modal is a blocking notice with a single acknowledge button. While it is
// visible no other input reaches the panes.
type Modal struct {
	title   string
	message string
	visible bool
}

// NewModal creates a visible modal with the given title and message.
func NewModal(title, message string) Modal {
	return Modal{
		title:   title,
		message: message,
		visible: true,
	}
}

// Visible returns whether the modal should be displayed.
func (m Modal) Visible() bool {
	return m.visible
}

// Dismiss hides the modal.
func (m *Modal) Dismiss() {
	m.visible = false
}

// Overlay renders the modal centered over the screen. The background is
// replaced, not composited.
func (m Modal) Overlay(background string, width, height int) string {
	if !m.visible {
		return background
	}

	button := lipgloss.NewStyle().MarginTop(1).Render(styles.ModalButtonSelectedStyle.Render("OK"))

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render(m.title),
		"",
		m.message,
		button,
		styles.ModalHelpStyle.Render("enter/esc dismiss"),
	)

	return lipgloss.Place(
		width, height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(content),
	)
}
