package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akashdeep-Patra/pooled-list/internal/common"
	"github.com/Akashdeep-Patra/pooled-list/internal/config"
	"github.com/Akashdeep-Patra/pooled-list/internal/data"
	"github.com/Akashdeep-Patra/pooled-list/internal/recycler"
	"github.com/Akashdeep-Patra/pooled-list/internal/ui"
	"github.com/Akashdeep-Patra/pooled-list/internal/ui/components"
	"github.com/Akashdeep-Patra/pooled-list/internal/window"
)

var palette = []string{"#f38ba8", "#a6e3a1", "#89b4fa"}

func newTestView(t *testing.T, source data.Provider) *ListView {
	t.Helper()
	v, err := NewListView(ui.DefaultStyles(), ListOptions{
		Tab:         common.TabLinear,
		Mode:        recycler.Linear,
		Axis:        window.Vertical,
		Layout:      &recycler.LayoutMetadata{ConstraintCount: 1},
		ElementSize: 2,
		Source:      source,
		SourceName:  "test",
		Generator:   data.NewRandomProvider(palette, 0, 2),
		Keys:        config.DefaultKeyBindings(),
	})
	require.NoError(t, err)
	t.Cleanup(v.Close)
	v.SetSize(40, 11)
	return v
}

// load runs the view's Init command and feeds the result back.
func load(t *testing.T, v *ListView) {
	t.Helper()
	cmd := v.Init()
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, common.ItemsMsg{}, msg)
	_, _ = v.Update(msg)
}

func press(v *ListView, k string) tea.Cmd {
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	return cmd
}

func number(t *testing.T, v *ListView, i int) int {
	t.Helper()
	it, err := v.list.At(i)
	require.NoError(t, err)
	return it.Number
}

func TestNewListViewNeedsSources(t *testing.T) {
	_, err := NewListView(ui.DefaultStyles(), ListOptions{Generator: data.NewRandomProvider(palette, 0, 1)})
	assert.Error(t, err)

	_, err = NewListView(ui.DefaultStyles(), ListOptions{Source: data.NewRandomProvider(palette, 1, 1)})
	assert.Error(t, err)
}

func TestListViewLoadsOnce(t *testing.T) {
	v := newTestView(t, data.NewRandomProvider(palette, 30, 1))
	load(t, v)

	st := v.Status()
	assert.Equal(t, 30, st.Items)
	assert.Equal(t, 0, st.Culled)
	assert.Equal(t, 6, st.Window, "five fit in ten rows plus one spare")
	assert.Equal(t, "test", st.Source)

	assert.Nil(t, v.Init(), "switching back to a loaded tab keeps its state")

	// Items for another tab are ignored.
	_, _ = v.Update(common.ItemsMsg{Tab: common.TabGrid})
	assert.Equal(t, 30, v.list.Len())
}

func TestListViewKeys(t *testing.T) {
	v := newTestView(t, data.NewRandomProvider(palette, 30, 1))
	load(t, v)

	press(v, "a")
	require.Equal(t, 31, v.list.Len())
	assert.Equal(t, 31, number(t, v, 30), "generated items continue the numbering")

	press(v, "i")
	assert.Equal(t, 32, number(t, v, 0), "insert goes before the first visible item")

	press(v, "d")
	assert.Equal(t, 1, number(t, v, 0))

	press(v, "x")
	assert.Equal(t, 30, v.list.Len())
	assert.Equal(t, 30, number(t, v, 29))

	before, _ := v.list.At(0)
	press(v, "e")
	after, _ := v.list.At(0)
	assert.NotSame(t, before, after)
	assert.Equal(t, before.Number, after.Number)

	press(v, "j")
	press(v, "j")
	assert.Equal(t, 2, v.scroll.Offset())
	_, _ = v.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	assert.Equal(t, 5, v.scroll.Offset())

	press(v, "0")
	assert.Equal(t, 0, v.scroll.Offset())

	press(v, "G")
	assert.Equal(t, 30-6, v.list.CulledAbove())
	// The anchor is the first item fully inside the viewport.
	assert.Equal(t, 25, v.anchor())
}

func TestListViewDialogs(t *testing.T) {
	src := data.NewRandomProvider(palette, 30, 1)
	v := newTestView(t, src)
	load(t, v)

	cmd := press(v, "c")
	require.NotNil(t, cmd)
	require.IsType(t, common.OpenDialogMsg{}, cmd())

	_, _ = v.Update(components.DialogResult{Confirmed: false, Tag: dialogClear})
	assert.Equal(t, 30, v.list.Len())
	_, _ = v.Update(components.DialogResult{Confirmed: true, Tag: dialogClear})
	assert.Equal(t, 0, v.list.Len())

	_, cmd = v.Update(components.DialogResult{Confirmed: true, Tag: dialogCount, Value: "5"})
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, common.ItemsMsg{}, msg)
	assert.Len(t, msg.(common.ItemsMsg).Items, 5)
	assert.Equal(t, 5, src.Count())
}

func TestListViewCountNeedsGenerator(t *testing.T) {
	v := newTestView(t, data.FileProvider{Path: "missing.toml"})

	_, cmd := v.Update(components.DialogResult{Confirmed: true, Tag: dialogCount, Value: "5"})
	require.NotNil(t, cmd)
	assert.IsType(t, common.ErrMsg{}, cmd())

	// A failed load reports an error instead of items.
	assert.IsType(t, common.ErrMsg{}, v.Init()())
}

func TestListViewInspector(t *testing.T) {
	v := newTestView(t, data.NewRandomProvider(palette, 30, 1))
	load(t, v)

	press(v, "v")
	assert.Equal(t, 24, v.listWidth(), "the list keeps three fifths of the width")
	out := v.View()
	assert.Contains(t, out, "spacer")
	assert.Contains(t, out, "#1")
}
