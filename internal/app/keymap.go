package app

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/Akashdeep-Patra/pooled-list/internal/config"
)

// KeyMap defines the global keybindings used across the application.
// Everything else goes to the active list view.
type KeyMap struct {
	Quit    key.Binding
	Help    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Refresh key.Binding
	Back    key.Binding
}

// NewKeyMap returns the global keybindings for kb.
func NewKeyMap(kb config.KeyBindings) KeyMap {
	return KeyMap{
		Quit:    key.NewBinding(key.WithKeys(kb.Quit, "ctrl+c"), key.WithHelp(kb.Quit, "quit")),
		Help:    key.NewBinding(key.WithKeys(kb.Help), key.WithHelp(kb.Help, "help")),
		NextTab: key.NewBinding(key.WithKeys(kb.Tab), key.WithHelp(kb.Tab, "next tab")),
		PrevTab: key.NewBinding(key.WithKeys(kb.ShiftTab), key.WithHelp(kb.ShiftTab, "prev tab")),
		Refresh: key.NewBinding(key.WithKeys(kb.Reload, "ctrl+r"), key.WithHelp(kb.Reload, "reload")),
		Back:    key.NewBinding(key.WithKeys(kb.Back), key.WithHelp(kb.Back, "back")),
	}
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(config.DefaultKeyBindings())
}
