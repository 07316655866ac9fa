package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/fitsel/internal/core/notify"
	"github.com/colonyops/fitsel/internal/core/styles"
)

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// ToastView renders the toast stack.
type ToastView struct {
	controller *ToastController
}

func NewToastView(controller *ToastController) *ToastView {
	return &ToastView{controller: controller}
}

// View renders toasts stacked vertically, oldest at top.
func (v *ToastView) View() string {
	toasts := v.controller.Toasts()
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		rendered = append(rendered, renderToast(t))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

func renderToast(t toast) string {
	var icon string
	var style lipgloss.Style

	switch t.notification.Level {
	case notify.LevelError:
		icon = styles.IconNotifyError
		style = styles.ToastErrorStyle
	case notify.LevelWarning:
		icon = styles.IconNotifyWarning
		style = styles.ToastWarningStyle
	default:
		icon = styles.IconNotifyInfo
		style = styles.ToastInfoStyle
	}

	return style.Width(toastWidth).Render(icon + " " + t.notification.Message)
}

// Overlay replaces the bottom lines of background with the toast stack,
// right-aligned within width.
func (v *ToastView) Overlay(background string, width int) string {
	content := v.View()
	if content == "" {
		return background
	}

	bg := strings.Split(background, "\n")
	fg := strings.Split(content, "\n")
	start := max(len(bg)-len(fg), 0)

	for i, line := range fg {
		idx := start + i
		placed := lipgloss.PlaceHorizontal(width, lipgloss.Right, line)
		if idx < len(bg) {
			bg[idx] = placed
		} else {
			bg = append(bg, placed)
		}
	}
	return strings.Join(bg, "\n")
}
