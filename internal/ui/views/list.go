package views

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Akashdeep-Patra/pooled-list/internal/common"
	"github.com/Akashdeep-Patra/pooled-list/internal/config"
	"github.com/Akashdeep-Patra/pooled-list/internal/data"
	"github.com/Akashdeep-Patra/pooled-list/internal/recycler"
	"github.com/Akashdeep-Patra/pooled-list/internal/ui"
	"github.com/Akashdeep-Patra/pooled-list/internal/ui/components"
	"github.com/Akashdeep-Patra/pooled-list/internal/window"
)

const (
	dialogCount = "count"
	dialogClear = "clear"
)

// ListOptions configures a ListView.
type ListOptions struct {
	Tab    common.TabID
	Mode   recycler.Mode
	Axis   window.Axis
	Layout *recycler.LayoutMetadata
	// ElementSize is the item extent in cells along the axis.
	ElementSize        int
	PoolCapacity       int
	SpacerPoolCapacity int
	ResetOnMutation    bool

	Source     data.Provider
	SourceName string
	// Generator makes the items added from the keyboard.
	Generator *data.RandomProvider

	Keys   config.KeyBindings
	Logger *slog.Logger
}

// ListView shows one engine-backed list in a scroll host.
type ListView struct {
	opts   ListOptions
	styles ui.Styles
	keys   ListKeys

	scroll *components.ScrollView
	list   *recycler.List[*data.Item]

	width   int
	height  int
	inspect bool
	loaded  bool
	next    int // number for the next generated item
}

// NewListView creates a list view. Items are loaded by Init.
func NewListView(styles ui.Styles, opts ListOptions) (*ListView, error) {
	if opts.Source == nil {
		return nil, errors.New("list view: no data source")
	}
	if opts.Generator == nil {
		return nil, errors.New("list view: no item generator")
	}

	meta := recycler.LayoutMetadata{ConstraintCount: 1}
	if opts.Layout != nil {
		meta = *opts.Layout
	}
	v := &ListView{
		opts:   opts,
		styles: styles,
		keys:   NewListKeys(opts.Keys),
		scroll: components.NewScrollView(styles, opts.Axis, meta),
		next:   1,
	}

	list, err := recycler.New(recycler.Config[*data.Item]{
		NewElement: func() recycler.Element[*data.Item] {
			return components.NewItemView(styles, opts.ElementSize)
		},
		Content:            v.scroll,
		Viewport:           v.scroll,
		Mode:               opts.Mode,
		Layout:             opts.Layout,
		PoolCapacity:       opts.PoolCapacity,
		SpacerPoolCapacity: opts.SpacerPoolCapacity,
		ResetOnMutation:    opts.ResetOnMutation,
		Logger:             opts.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating %s list: %w", opts.Mode, err)
	}
	v.list = list
	return v, nil
}

// Init loads the items the first time the view is shown.
func (v *ListView) Init() tea.Cmd {
	if v.loaded {
		return nil
	}
	return v.load()
}

// load fetches items from the source in the background.
func (v *ListView) load() tea.Cmd {
	src, tab := v.opts.Source, v.opts.Tab
	return func() tea.Msg {
		items, err := src.Items(context.Background())
		if err != nil {
			return common.ErrMsg{Err: fmt.Errorf("loading items: %w", err)}
		}
		return common.ItemsMsg{Tab: tab, Items: items}
	}
}

func (v *ListView) SetSize(w, h int) {
	v.width = w
	v.height = h
	// One row for the key hints.
	v.scroll.SetSize(v.listWidth(), max(h-1, 0))
	v.list.Refresh()
}

func (v *ListView) listWidth() int {
	if v.inspect {
		return v.width * 3 / 5
	}
	return v.width
}

func (v *ListView) Update(msg tea.Msg) (common.View, tea.Cmd) {
	switch msg := msg.(type) {
	case common.ItemsMsg:
		if msg.Tab != v.opts.Tab {
			return v, nil
		}
		v.list.Initialize(msg.Items)
		v.loaded = true
		v.next = 1
		for _, it := range msg.Items {
			v.next = max(v.next, it.Number+1)
		}
		return v, common.CmdInfo(fmt.Sprintf("loaded %d items", len(msg.Items)))

	case common.RefreshMsg:
		return v, v.load()

	case components.DialogResult:
		return v.handleDialog(msg)

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			v.scroll.ScrollBy(-3)
		case tea.MouseButtonWheelDown:
			v.scroll.ScrollBy(3)
		}
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *ListView) handleKey(msg tea.KeyMsg) (common.View, tea.Cmd) {
	page := max(int(v.scroll.Extent())-1, 1)

	switch {
	case key.Matches(msg, v.keys.Down):
		v.scroll.ScrollBy(1)
	case key.Matches(msg, v.keys.Up):
		v.scroll.ScrollBy(-1)
	case key.Matches(msg, v.keys.PageDown):
		v.scroll.ScrollBy(page)
	case key.Matches(msg, v.keys.PageUp):
		v.scroll.ScrollBy(-page)
	case key.Matches(msg, v.keys.Home):
		v.scroll.ScrollToStart()
	case key.Matches(msg, v.keys.End):
		v.scroll.ScrollToEnd()

	case key.Matches(msg, v.keys.Add):
		v.list.Add(v.generate())
	case key.Matches(msg, v.keys.Insert):
		if err := v.list.Insert(v.anchor(), v.generate()); err != nil {
			return v, common.CmdErr(err)
		}
	case key.Matches(msg, v.keys.RemoveAt):
		if err := v.list.RemoveAt(v.anchor()); err != nil {
			return v, common.CmdErr(err)
		}
	case key.Matches(msg, v.keys.Remove):
		if v.list.Len() == 0 {
			return v, common.CmdInfo("nothing to remove")
		}
		last, _ := v.list.At(v.list.Len() - 1)
		v.list.Remove(last)
	case key.Matches(msg, v.keys.Edit):
		return v, v.recolour()
	case key.Matches(msg, v.keys.Clear):
		return v, common.CmdDialog(components.NewConfirmDialog(v.styles,
			"Clear list", fmt.Sprintf("Remove all %d items?", v.list.Len()), dialogClear))
	case key.Matches(msg, v.keys.Count):
		return v, common.CmdDialog(components.NewNumberDialog(v.styles,
			"Item count", v.list.Len(), dialogCount))
	case key.Matches(msg, v.keys.Reset):
		v.list.Reset()

	case key.Matches(msg, v.keys.Inspect):
		v.inspect = !v.inspect
		v.SetSize(v.width, v.height)
	case key.Matches(msg, v.keys.Spacers):
		v.scroll.ShowSpacers = !v.scroll.ShowSpacers
	}
	return v, nil
}

func (v *ListView) handleDialog(res components.DialogResult) (common.View, tea.Cmd) {
	if !res.Confirmed {
		return v, nil
	}
	switch res.Tag {
	case dialogClear:
		v.list.Clear()
	case dialogCount:
		n, err := components.ParseCount(res.Value)
		if err != nil {
			return v, common.CmdErr(err)
		}
		counter, ok := v.opts.Source.(interface{ SetCount(int) error })
		if !ok {
			return v, common.CmdErr(errors.New("item count applies to generated items only"))
		}
		if err := counter.SetCount(n); err != nil {
			return v, common.CmdErr(err)
		}
		return v, v.load()
	}
	return v, nil
}

// anchor returns the index of the first item that starts inside the
// viewport, or 0 for an empty list.
func (v *ListView) anchor() int {
	indices := v.list.ActiveIndices()
	if len(indices) == 0 {
		return 0
	}
	g := v.list.Geometry()
	offset := float64(v.scroll.Offset())
	for _, i := range indices {
		if window.Offset(i, g) >= offset {
			return i
		}
	}
	return indices[len(indices)-1]
}

func (v *ListView) generate() *data.Item {
	it := v.opts.Generator.Next(v.next)
	v.next++
	return it
}

// recolour replaces the anchor item with a copy in a new colour. Only the
// refresh pass reaches the screen.
func (v *ListView) recolour() tea.Cmd {
	i := v.anchor()
	old, err := v.list.At(i)
	if err != nil {
		return common.CmdErr(err)
	}
	it := v.opts.Generator.Next(old.Number)
	if err := v.list.Set(i, it); err != nil {
		return common.CmdErr(err)
	}
	return nil
}

func (v *ListView) View() string {
	body := v.scroll.View()
	if v.inspect {
		body = components.RenderSideBySide(v.styles, body, renderInspector(v.styles, v.list, v.scroll), v.listWidth(), v.width)
	}
	hints := ui.RenderHints(v.styles, v.width,
		v.keys.Add.Help().Key, "add",
		v.keys.RemoveAt.Help().Key, "remove",
		v.keys.Edit.Help().Key, "recolour",
		v.keys.Count.Help().Key, "count",
		v.keys.Inspect.Help().Key, "inspect",
	)
	return body + "\n" + hints
}

func (v *ListView) ShortHelp() []components.HelpEntry {
	bindings := v.keys.bindings()
	out := make([]components.HelpEntry, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		out = append(out, components.HelpEntry{Key: h.Key, Desc: h.Desc})
	}
	return out
}

func (v *ListView) Status() components.StatusBarData {
	return components.StatusBarData{
		Mode:   v.opts.Mode.String(),
		Axis:   v.opts.Axis.String(),
		Items:  v.list.Len(),
		Culled: max(v.list.CulledAbove(), 0),
		Window: len(v.list.ActiveIndices()),
		Stats:  v.list.Stats(),
		Source: v.opts.SourceName,
	}
}

func (v *ListView) Close() { v.list.Close() }
