package views

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/Akashdeep-Patra/pooled-list/internal/config"
)

// ListKeys are the bindings a ListView handles itself.
type ListKeys struct {
	Down     key.Binding
	Up       key.Binding
	PageDown key.Binding
	PageUp   key.Binding
	Home     key.Binding
	End      key.Binding

	Add      key.Binding
	Insert   key.Binding
	RemoveAt key.Binding
	Remove   key.Binding
	Edit     key.Binding
	Clear    key.Binding
	Count    key.Binding
	Reset    key.Binding

	Inspect key.Binding
	Spacers key.Binding
}

// NewListKeys builds the list bindings from kb. Arrow keys always scroll.
func NewListKeys(kb config.KeyBindings) ListKeys {
	return ListKeys{
		Down:     key.NewBinding(key.WithKeys(kb.Down, "down", "right", "l"), key.WithHelp(kb.Down+"/↓", "scroll forward")),
		Up:       key.NewBinding(key.WithKeys(kb.Up, "up", "left", "h"), key.WithHelp(kb.Up+"/↑", "scroll back")),
		PageDown: key.NewBinding(key.WithKeys(kb.PageDown, "ctrl+d", " "), key.WithHelp("pgdn", "page forward")),
		PageUp:   key.NewBinding(key.WithKeys(kb.PageUp, "ctrl+u"), key.WithHelp("pgup", "page back")),
		Home:     key.NewBinding(key.WithKeys(kb.Home, "home"), key.WithHelp(kb.Home, "start")),
		End:      key.NewBinding(key.WithKeys(kb.End, "end"), key.WithHelp(kb.End, "end")),

		Add:      key.NewBinding(key.WithKeys(kb.Add), key.WithHelp(kb.Add, "append item")),
		Insert:   key.NewBinding(key.WithKeys(kb.Insert), key.WithHelp(kb.Insert, "insert at top")),
		RemoveAt: key.NewBinding(key.WithKeys(kb.RemoveAt), key.WithHelp(kb.RemoveAt, "remove top item")),
		Remove:   key.NewBinding(key.WithKeys(kb.Remove), key.WithHelp(kb.Remove, "remove last item")),
		Edit:     key.NewBinding(key.WithKeys(kb.Edit), key.WithHelp(kb.Edit, "recolour top item")),
		Clear:    key.NewBinding(key.WithKeys(kb.Clear), key.WithHelp(kb.Clear, "clear")),
		Count:    key.NewBinding(key.WithKeys(kb.Count), key.WithHelp(kb.Count, "set item count")),
		Reset:    key.NewBinding(key.WithKeys(kb.Reset), key.WithHelp(kb.Reset, "re-initialize")),

		Inspect: key.NewBinding(key.WithKeys(kb.Inspect), key.WithHelp(kb.Inspect, "toggle inspector")),
		Spacers: key.NewBinding(key.WithKeys(kb.Spacers), key.WithHelp(kb.Spacers, "mark spacers")),
	}
}

// bindings lists the keys in help order.
func (k ListKeys) bindings() []key.Binding {
	return []key.Binding{
		k.Down, k.Up, k.PageDown, k.PageUp, k.Home, k.End,
		k.Add, k.Insert, k.RemoveAt, k.Remove, k.Edit, k.Clear, k.Count, k.Reset,
		k.Inspect, k.Spacers,
	}
}
