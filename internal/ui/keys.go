package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit         key.Binding
	Up           key.Binding
	Down         key.Binding
	NewStopwatch key.Binding
	NewTimer     key.Binding
	Start        key.Binding
	Pause        key.Binding
	Reset        key.Binding
	Delete       key.Binding
	Rename       key.Binding
	Duration     key.Binding
	SignIn       key.Binding
	SignOut      key.Binding
	Yes          key.Binding
	No           key.Binding
	Submit       key.Binding
	Cancel       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		NewStopwatch: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new stopwatch"),
		),
		NewTimer: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "new timer"),
		),
		Start: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "start"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete"),
		),
		Rename: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "rename"),
		),
		Duration: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "duration"),
		),
		SignIn: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "sign in"),
		),
		SignOut: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "sign out"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n", "no"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
		),
	}
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{
		k.NewStopwatch, k.NewTimer, k.Start, k.Pause, k.Reset, k.Delete,
		k.Rename, k.Duration, k.SignIn, k.SignOut, k.Quit,
	}
}
