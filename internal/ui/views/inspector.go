package views

import (
	"fmt"
	"strings"

	"github.com/Akashdeep-Patra/pooled-list/internal/data"
	"github.com/Akashdeep-Patra/pooled-list/internal/recycler"
	"github.com/Akashdeep-Patra/pooled-list/internal/ui"
	"github.com/Akashdeep-Patra/pooled-list/internal/ui/components"
)

// renderInspector lists the scroll host's children in display order next
// to the engine counters.
func renderInspector(styles ui.Styles, list *recycler.List[*data.Item], scroll *components.ScrollView) string {
	var b strings.Builder
	b.WriteString(styles.PanelTitle.Render("Content") + "\n")

	bound := make(map[recycler.Node]int)
	for i, e := range list.Active() {
		bound[e] = list.ActiveIndices()[i]
	}

	nodes := scroll.Nodes()
	for i := 0; i < len(nodes); i++ {
		switch n := nodes[i].(type) {
		case *recycler.Spacer:
			// Grid spacers are one per culled cell; collapse the run.
			run := 1
			for i+run < len(nodes) {
				if _, ok := nodes[i+run].(*recycler.Spacer); !ok {
					break
				}
				run++
			}
			i += run - 1
			switch {
			case n.Ignored():
				b.WriteString(styles.Muted.Render("▯ spacer (ignored)") + "\n")
			case run > 1:
				b.WriteString(styles.SpacerNode.Render(fmt.Sprintf("▯ %d spacer cells", run)) + "\n")
			default:
				b.WriteString(styles.SpacerNode.Render(fmt.Sprintf("▯ spacer %g", n.Extent())) + "\n")
			}
		case *components.ItemView:
			label := fmt.Sprintf("▮ [%d]", bound[n])
			if it := n.Data(); it != nil {
				label += fmt.Sprintf(" #%d", it.Number)
			}
			b.WriteString(styles.ElementNode.Render(label) +
				styles.Muted.Render(fmt.Sprintf(" ×%d", n.Binds())) + "\n")
		}
	}

	st := list.Stats()
	w := list.Window()
	b.WriteString("\n" + styles.PanelTitle.Render("Engine") + "\n")
	rows := [][2]string{
		{"capacity", fmt.Sprint(w.VisibleCapacity)},
		{"window", fmt.Sprint(w.Size)},
		{"culled", fmt.Sprintf("%d / %d", list.CulledAbove(), w.MaxCulled)},
		{"rebuilds", fmt.Sprint(st.Rebuilds)},
		{"reorients", fmt.Sprint(st.Reorientations)},
		{"moves", fmt.Sprint(st.Moves)},
		{"pushes", fmt.Sprint(st.Pushes)},
		{"pool", fmt.Sprintf("%d created, %d free", st.Pool.Created, st.Pool.Free)},
	}
	if list.Mode() == recycler.Grid {
		rows = append(rows, [2]string{"spacers", fmt.Sprintf("%d created, %d free", st.SpacerPool.Created, st.SpacerPool.Free)})
	}
	for _, r := range rows {
		b.WriteString(ui.RenderKeyValue(styles, ui.PadRight(r[0], 10), r[1]) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
