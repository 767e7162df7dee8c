package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the key bindings for the game TUI. Letters belong to the
// guess input, so actions live on enter and control chords.
type keyMap struct {
	guess key.Binding
	hint  key.Binding
	skip  key.Binding
	quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		guess: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "guess / next"),
		),
		hint: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reveal hint"),
		),
		skip: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "skip track"),
		),
		quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.guess, k.hint, k.skip, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.guess, k.hint},
		{k.skip, k.quit},
	}
}
