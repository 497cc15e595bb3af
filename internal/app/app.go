package app

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Akashdeep-Patra/pooled-list/internal/common"
	"github.com/Akashdeep-Patra/pooled-list/internal/ui"
	"github.com/Akashdeep-Patra/pooled-list/internal/ui/components"
)

// Model is the top-level Bubbletea model that orchestrates tabs and views.
type Model struct {
	styles    ui.Styles
	keys      KeyMap
	width     int
	height    int
	activeTab common.TabID
	views     map[common.TabID]common.View
	showHelp  bool
	statusMsg string
	statusErr bool
	statusExp time.Time
	dialog    *components.Dialog

	// viewStale tracks which views need a reload on next switch.
	viewStale map[common.TabID]bool
}

// New creates a new application model showing first.
func New(styles ui.Styles, keys KeyMap, views map[common.TabID]common.View, first common.TabID) Model {
	return Model{
		styles:    styles,
		keys:      keys,
		activeTab: first,
		views:     views,
		viewStale: make(map[common.TabID]bool),
	}
}

// Init initialises the active view.
func (m Model) Init() tea.Cmd {
	return m.initActiveView()
}

// Update processes messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Dialog has exclusive input when visible.
	if m.dialog != nil && m.dialog.Visible() {
		if _, ok := msg.(tea.KeyMsg); ok {
			d, cmd := m.dialog.Update(msg)
			m.dialog = &d
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		contentH := m.contentHeight()
		for _, v := range m.views {
			v.SetSize(m.width, contentH)
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			return m, m.triggerRefresh()
		case key.Matches(msg, m.keys.NextTab):
			return m, m.cycleTab(1)
		case key.Matches(msg, m.keys.PrevTab):
			return m, m.cycleTab(-1)
		case key.Matches(msg, m.keys.Back):
			if m.showHelp {
				m.showHelp = false
				return m, nil
			}
		}
		// Keys not handled globally are forwarded to the active view below.

	case common.RefreshMsg:
		// Only reload the ACTIVE view. Inactive views reload when the
		// user switches to them.
		for id := range m.views {
			if id != m.activeTab {
				m.viewStale[id] = true
			}
		}

	case common.OpenDialogMsg:
		d := msg.Dialog
		m.dialog = &d
		return m, nil

	case common.ErrMsg:
		m.statusMsg = msg.Err.Error()
		m.statusErr = true
		m.statusExp = time.Now().Add(5 * time.Second)
		return m, nil

	case common.InfoMsg:
		m.statusMsg = msg.Text
		m.statusErr = false
		m.statusExp = time.Now().Add(3 * time.Second)
		return m, nil

	case components.DialogResult:
		m.dialog = nil
	}

	// Forward unhandled messages to the active view.
	if v, ok := m.views[m.activeTab]; ok {
		updated, cmd := v.Update(msg)
		m.views[m.activeTab] = updated
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the entire UI without doing any I/O.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showHelp {
		sections := components.GlobalHelpEntries()
		if v, ok := m.views[m.activeTab]; ok {
			sections[m.tabName()] = v.ShortHelp()
		}
		return components.RenderHelp(m.styles, "Keyboard Shortcuts", sections, m.width, m.height)
	}

	tabBar, _ := components.RenderTabs(m.styles, m.buildTabInfos(), m.width)

	content := ""
	var barData components.StatusBarData
	if v, ok := m.views[m.activeTab]; ok {
		content = v.View()
		barData = v.Status()
	}
	content = lipgloss.NewStyle().Width(m.width).Height(m.contentHeight()).MaxHeight(m.contentHeight()).Render(content)

	if m.statusMsg != "" && time.Now().Before(m.statusExp) {
		barData.Message = m.statusMsg
		barData.IsError = m.statusErr
	}
	statusBar := components.RenderStatusBar(m.styles, barData, m.width)

	screen := lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)

	if m.dialog != nil && m.dialog.Visible() {
		screen = ui.PlaceCentre(m.width, m.height, m.dialog.View())
	}

	return screen
}

// Close releases every view.
func (m Model) Close() {
	for _, v := range m.views {
		v.Close()
	}
}

func (m Model) contentHeight() int {
	// height - tabBar - statusBar(1)
	return max(m.height-components.TabBarRows-1, 1)
}

func (m *Model) cycleTab(delta int) tea.Cmd {
	n := len(common.AllTabs)
	next := (m.tabIndex() + delta + n) % n
	return m.switchTo(common.AllTabs[next].ID)
}

// tabIndex returns the index of the active tab in AllTabs.
func (m Model) tabIndex() int {
	for i, t := range common.AllTabs {
		if t.ID == m.activeTab {
			return i
		}
	}
	return 0
}

func (m Model) tabName() string {
	return common.AllTabs[m.tabIndex()].Name
}

// switchTo changes the active tab and loads the target view if needed.
func (m *Model) switchTo(tab common.TabID) tea.Cmd {
	m.activeTab = tab
	if m.viewStale[tab] {
		delete(m.viewStale, tab)
		return m.triggerRefresh()
	}
	return m.initActiveView()
}

// initActiveView calls Init on the current tab to load its data.
func (m Model) initActiveView() tea.Cmd {
	if v, ok := m.views[m.activeTab]; ok {
		return v.Init()
	}
	return nil
}

// triggerRefresh reloads the active view.
func (m Model) triggerRefresh() tea.Cmd {
	if v, ok := m.views[m.activeTab]; ok {
		updated, cmd := v.Update(common.RefreshMsg{})
		m.views[m.activeTab] = updated
		return cmd
	}
	return nil
}

// handleMouse processes mouse events: tab clicks and the scroll wheel.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Y < components.TabBarRows {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return m, m.cycleTab(-1)
		case tea.MouseButtonWheelDown:
			return m, m.cycleTab(1)
		case tea.MouseButtonLeft:
			if msg.Action != tea.MouseActionPress || msg.Y != 0 {
				return m, nil
			}
			_, zones := components.RenderTabs(m.styles, m.buildTabInfos(), m.width)
			if i := components.TabAt(zones, msg.X); i >= 0 && common.AllTabs[i].ID != m.activeTab {
				return m, m.switchTo(common.AllTabs[i].ID)
			}
		}
		return m, nil
	}

	// Adjust Y to be relative to the content area, then forward.
	msg.Y -= components.TabBarRows
	if v, ok := m.views[m.activeTab]; ok {
		updated, cmd := v.Update(msg)
		m.views[m.activeTab] = updated
		return m, cmd
	}
	return m, nil
}

func (m Model) buildTabInfos() []components.TabInfo {
	infos := make([]components.TabInfo, len(common.AllTabs))
	for i, t := range common.AllTabs {
		info := components.TabInfo{
			Name:   t.Name,
			Icon:   t.Icon,
			Active: t.ID == m.activeTab,
		}
		if v, ok := m.views[t.ID]; ok {
			info.Detail = v.Status().Axis
		}
		infos[i] = info
	}
	return infos
}
