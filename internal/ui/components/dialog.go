package components

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Akashdeep-Patra/pooled-list/internal/ui"
)

// DialogKind specifies the type of dialog.
type DialogKind int

const (
	DialogConfirm DialogKind = iota
	DialogInput
)

// DialogResult is sent when the dialog is dismissed.
type DialogResult struct {
	Confirmed bool
	Value     string
	Tag       string // arbitrary tag to identify which dialog this was
}

// Dialog is a modal confirmation or input dialog.
type Dialog struct {
	Kind    DialogKind
	Title   string
	Message string
	Tag     string
	input   textinput.Model
	focused int // 0 = yes/input, 1 = no
	styles  ui.Styles
	visible bool
}

// NewConfirmDialog creates a Yes/No confirmation dialog.
func NewConfirmDialog(styles ui.Styles, title, message, tag string) Dialog {
	return Dialog{
		Kind:    DialogConfirm,
		Title:   title,
		Message: message,
		Tag:     tag,
		styles:  styles,
		visible: true,
	}
}

// NewNumberDialog creates an input dialog that accepts a non-negative
// integer, prefilled with value.
func NewNumberDialog(styles ui.Styles, title string, value int, tag string) Dialog {
	ti := textinput.New()
	ti.Placeholder = "number"
	ti.CharLimit = 9
	ti.Width = 20
	ti.Validate = validateCount
	ti.SetValue(strconv.Itoa(value))
	ti.CursorEnd()
	ti.Focus()
	return Dialog{
		Kind:    DialogInput,
		Title:   title,
		Message: "enter to apply, esc to cancel",
		Tag:     tag,
		input:   ti,
		styles:  styles,
		visible: true,
	}
}

func validateCount(s string) error {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("not a count: %q", s)
	}
	return nil
}

// ParseCount parses a number dialog value.
func ParseCount(s string) (int, error) {
	if err := validateCount(s); err != nil {
		return 0, err
	}
	if s == "" {
		return 0, fmt.Errorf("no count given")
	}
	return strconv.Atoi(s)
}

// Visible returns whether the dialog is showing.
func (d Dialog) Visible() bool { return d.visible }

// Update handles key events for the dialog.
func (d Dialog) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if !d.visible {
		return d, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			d.visible = false
			return d, func() tea.Msg { return DialogResult{Tag: d.Tag} }

		case "enter":
			d.visible = false
			if d.Kind == DialogInput {
				return d, func() tea.Msg {
					return DialogResult{Confirmed: true, Value: d.input.Value(), Tag: d.Tag}
				}
			}
			return d, func() tea.Msg {
				return DialogResult{Confirmed: d.focused == 0, Tag: d.Tag}
			}

		case "tab", "left", "right", "h", "l":
			if d.Kind == DialogConfirm {
				d.focused = 1 - d.focused
			}
		}
	}

	if d.Kind == DialogInput {
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		return d, cmd
	}
	return d, nil
}

// View renders the dialog.
func (d Dialog) View() string {
	if !d.visible {
		return ""
	}
	t := d.styles.Theme

	title := lipgloss.NewStyle().Foreground(t.Text).Bold(true).Render(d.Title)
	message := lipgloss.NewStyle().Foreground(t.TextMuted).Render(d.Message)
	var content string

	if d.Kind == DialogConfirm {
		yes := "  Yes  "
		no := "  No   "
		activeBtn := lipgloss.NewStyle().Foreground(t.TextInverse).Background(t.Primary).Bold(true)
		inactiveBtn := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		if d.focused == 0 {
			yes = activeBtn.Render(yes)
			no = inactiveBtn.Render(no)
		} else {
			yes = inactiveBtn.Render(yes)
			no = activeBtn.Render(no)
		}
		buttons := lipgloss.JoinHorizontal(lipgloss.Top, yes, "  ", no)
		content = title + "\n\n" + message + "\n\n" + buttons
	} else {
		content = title + "\n\n" + d.input.View() + "\n\n" + message
	}

	return d.styles.Dialog.Render(content)
}
