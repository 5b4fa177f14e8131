package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the editor.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Undo       key.Binding
	Redo       key.Binding
	Export     key.Binding
	Copy       key.Binding

	// Panel navigation
	NextPanel key.Binding
	PrevPanel key.Binding
	Up        key.Binding
	Down      key.Binding

	// Editing
	Decrease     key.Binding
	Increase     key.Binding
	DecreaseMore key.Binding
	IncreaseMore key.Binding
	Activate     key.Binding

	// Input modal
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Undo: key.NewBinding(
			key.WithKeys("ctrl+z", "u"),
			key.WithHelp("ctrl+z", "Undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+y", "ctrl+r"),
			key.WithHelp("ctrl+y", "Redo"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Export JSON"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy JSON"),
		),

		NextPanel: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next panel"),
		),
		PrevPanel: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous panel"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Previous field"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Next field"),
		),

		Decrease: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "Decrease"),
		),
		Increase: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "Increase"),
		),
		DecreaseMore: key.NewBinding(
			key.WithKeys("H", "shift+left"),
			key.WithHelp("H", "Decrease ×10"),
		),
		IncreaseMore: key.NewBinding(
			key.WithKeys("L", "shift+right"),
			key.WithHelp("L", "Increase ×10"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "Edit, toggle or apply"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPanel, k.Increase, k.Undo, k.Redo, k.Export, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextPanel, k.PrevPanel, k.Up, k.Down},
		{k.Decrease, k.Increase, k.DecreaseMore, k.IncreaseMore, k.Activate},
		{k.Undo, k.Redo, k.Export, k.Copy},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
