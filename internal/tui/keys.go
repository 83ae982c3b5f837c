package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Column     key.Binding
	Waste      key.Binding
	Foundation key.Binding
	Deal       key.Binding
	Auto       key.Binding
	Cancel     key.Binding
	New        key.Binding
	Pause      key.Binding
	Mute       key.Binding
	LogUp      key.Binding
	LogDown    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Column: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7"),
			key.WithHelp("1-7", "column"),
		),
		Waste: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "waste"),
		),
		Foundation: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "to foundation"),
		),
		Deal: key.NewBinding(
			key.WithKeys(" ", "d"),
			key.WithHelp("space/d", "deal"),
		),
		Auto: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "auto-move"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new game"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		LogUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "log up"),
		),
		LogDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "log down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Column, k.Deal, k.Auto, k.New, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Column, k.Waste, k.Foundation, k.Auto, k.Cancel},
		{k.Deal, k.New, k.Pause, k.Mute},
		{k.LogUp, k.LogDown, k.Help, k.Quit},
	}
}
