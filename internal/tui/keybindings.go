package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the TUI key bindings.
type KeyMap struct {
	NextTab      key.Binding
	PrevTab      key.Binding
	SelectTab    key.Binding
	Selection    key.Binding
	Up           key.Binding
	Down         key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Click        key.Binding
	ShiftClick   key.Binding
	ExtendUp     key.Binding
	ExtendDown   key.Binding
	Toggle       key.Binding
	Reload       key.Binding
	History      key.Binding
	Help         key.Binding
	Quit         key.Binding
	Dismiss      key.Binding
	DismissToast key.Binding
}

// DefaultKeyMap returns the built-in bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextTab:      key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next tab")),
		PrevTab:      key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "prev tab")),
		SelectTab:    key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "go to tab")),
		Selection:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "load for selection")),
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PageUp:       key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		PageDown:     key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
		Click:        key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
		ShiftClick:   key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "range select")),
		ExtendUp:     key.NewBinding(key.WithKeys("shift+up", "K"), key.WithHelp("K", "extend up")),
		ExtendDown:   key.NewBinding(key.WithKeys("shift+down", "J"), key.WithHelp("J", "extend down")),
		Toggle:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "mark/unmark all")),
		Reload:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		History:      key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "notifications")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Dismiss:      key.NewBinding(key.WithKeys("enter", "esc", " "), key.WithHelp("enter", "dismiss")),
		DismissToast: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss toast")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Click, k.ShiftClick, k.Toggle, k.Selection, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.SelectTab, k.Selection},
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Click, k.ShiftClick, k.ExtendUp, k.ExtendDown, k.Toggle},
		{k.Reload, k.History, k.DismissToast, k.Help, k.Quit},
	}
}
