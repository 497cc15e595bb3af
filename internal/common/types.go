package common

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Akashdeep-Patra/pooled-list/internal/data"
	"github.com/Akashdeep-Patra/pooled-list/internal/ui/components"
)

// ── Tab identifiers ─────────────────────────────────────────────────────────

// TabID identifies which view/tab is active.
type TabID int

const (
	TabLinear TabID = iota
	TabGrid
)

// TabMeta describes a tab for display purposes.
type TabMeta struct {
	ID   TabID
	Name string // Display name shown in the tab bar.
	Icon string // Unicode icon (nerdfont-free, works in all terminals).
}

// AllTabs is the ordered list of all tabs.
var AllTabs = []TabMeta{
	{TabLinear, "Linear", "☰"},
	{TabGrid, "Grid", "▦"},
}

// ── Custom messages ─────────────────────────────────────────────────────────

// RefreshMsg signals views to reload data.
type RefreshMsg struct{}

// ItemsMsg delivers a freshly loaded sequence to the view that asked.
type ItemsMsg struct {
	Tab   TabID
	Items []*data.Item
}

// ErrMsg carries an error to be displayed.
type ErrMsg struct{ Err error }

// InfoMsg carries an informational message.
type InfoMsg struct{ Text string }

// OpenDialogMsg asks the app to show a modal dialog. Its DialogResult is
// forwarded to the active view.
type OpenDialogMsg struct{ Dialog components.Dialog }

// CmdErr creates a tea.Cmd that sends an ErrMsg.
func CmdErr(err error) tea.Cmd {
	return func() tea.Msg { return ErrMsg{Err: err} }
}

// CmdInfo creates a tea.Cmd that sends an InfoMsg.
func CmdInfo(text string) tea.Cmd {
	return func() tea.Msg { return InfoMsg{Text: text} }
}

// CmdDialog creates a tea.Cmd that opens d.
func CmdDialog(d components.Dialog) tea.Cmd {
	return func() tea.Msg { return OpenDialogMsg{Dialog: d} }
}

// ── View interface ──────────────────────────────────────────────────────────

// View is the interface every tab view must implement.
type View interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (View, tea.Cmd)
	View() string
	SetSize(width, height int)
	ShortHelp() []components.HelpEntry

	// Status returns the engine state shown in the status bar.
	Status() components.StatusBarData

	// Close releases the view's resources when the program exits.
	Close()
}
