package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	ToggleRegex key.Binding
	ToggleCase  key.Binding
	CycleTarget key.Binding
	Apply       key.Binding
	Undo        key.Binding
	Redo        key.Binding
	Clear       key.Binding
	Quit        key.Binding
	Next        key.Binding
	Prev        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
}

var keys = keyMap{
	ToggleRegex: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "regex")),
	ToggleCase:  key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "case")),
	CycleTarget: key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "apply to")),
	Apply:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "rename")),
	Undo:        key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo")),
	Redo:        key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "redo")),
	Clear:       key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
	Quit:        key.NewBinding(key.WithKeys("ctrl+q", "ctrl+c"), key.WithHelp("ctrl+q", "quit")),
	Next:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	Prev:        key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
	PageUp:      key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
	PageDown:    key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Apply, k.Undo, k.Redo, k.ToggleRegex, k.ToggleCase, k.CycleTarget, k.Clear, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Apply, k.Undo, k.Redo},
		{k.ToggleRegex, k.ToggleCase, k.CycleTarget},
		{k.Next, k.Prev, k.PageUp, k.PageDown},
		{k.Clear, k.Quit},
	}
}
