package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModal_NewDefaults(t *testing.T) {
	m := NewModal("Title", "Body")
	assert.True(t, m.Visible())
	assert.Equal(t, "Title", m.title)
	assert.Equal(t, "Body", m.message)
}

func TestModal_OverlayNotVisible(t *testing.T) {
	m := Modal{}
	bg := "background content"
	assert.Equal(t, bg, m.Overlay(bg, 80, 24))
}

func TestModal_OverlayVisible(t *testing.T) {
	m := NewModal("Selection required", emptySelectionMessage)
	out := m.Overlay("background content", 80, 24)

	assert.Contains(t, out, "Selection required")
	assert.Contains(t, out, emptySelectionMessage)
	assert.Contains(t, out, "OK")
	assert.NotContains(t, out, "background content")
}

func TestModal_Dismiss(t *testing.T) {
	m := NewModal("", "")
	m.Dismiss()
	assert.False(t, m.Visible())
	assert.Equal(t, "bg", m.Overlay("bg", 10, 5))
}
