// Package simulate drives a list through a full scroll sweep without a
// terminal, reporting the engine state after every step.
package simulate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/Akashdeep-Patra/pooled-list/internal/data"
	"github.com/Akashdeep-Patra/pooled-list/internal/recycler"
	"github.com/Akashdeep-Patra/pooled-list/internal/ui"
	"github.com/Akashdeep-Patra/pooled-list/internal/ui/components"
	"github.com/Akashdeep-Patra/pooled-list/internal/window"
)

// Options configures a sweep.
type Options struct {
	Mode        recycler.Mode
	Axis        window.Axis
	Layout      *recycler.LayoutMetadata
	ElementSize int
	// Width and Height are the scroll host size in cells.
	Width  int
	Height int
	// Steps is the number of equal moves from the start edge to the end.
	Steps  int
	Items  []*data.Item
	Logger *slog.Logger
}

// Frame is the engine state after one step.
type Frame struct {
	Step     int     `json:"step"`
	Offset   int     `json:"offset"`
	Position float64 `json:"position"`
	Culled   int     `json:"culled"`
	Size     int     `json:"size"`
	Spacers  int     `json:"spacers"`
	// First and Last are the item numbers bound at the window edges; zero
	// when the window is empty.
	First int            `json:"first"`
	Last  int            `json:"last"`
	Stats recycler.Stats `json:"stats"`
}

// Run initializes a list with opts.Items and scrolls it from the start edge
// to the end edge in opts.Steps moves. The first frame is the state right
// after Initialize.
func Run(ctx context.Context, opts Options) ([]Frame, error) {
	if opts.Steps < 1 {
		return nil, fmt.Errorf("steps must be at least 1, got %d", opts.Steps)
	}
	if opts.Width < 2 || opts.Height < 2 {
		return nil, errors.New("host must be at least 2x2 cells")
	}

	meta := recycler.LayoutMetadata{ConstraintCount: 1}
	if opts.Layout != nil {
		meta = *opts.Layout
	}
	scroll := components.NewScrollView(ui.DefaultStyles(), opts.Axis, meta)
	scroll.SetSize(opts.Width, opts.Height)

	list, err := recycler.New(recycler.Config[*data.Item]{
		NewElement: func() recycler.Element[*data.Item] {
			return components.NewItemView(ui.DefaultStyles(), opts.ElementSize)
		},
		Content:  scroll,
		Viewport: scroll,
		Mode:     opts.Mode,
		Layout:   opts.Layout,
		Logger:   opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	defer list.Close()

	list.Initialize(opts.Items)
	frames := []Frame{capture(0, list, scroll)}

	span := scrollSpan(scroll)
	for step := 1; step <= opts.Steps; step++ {
		if err := ctx.Err(); err != nil {
			return frames, err
		}
		target := int(math.Round(float64(step) * float64(span) / float64(opts.Steps)))
		scroll.ScrollBy(target - scroll.Offset())
		frames = append(frames, capture(step, list, scroll))
	}
	return frames, nil
}

// scrollSpan is the number of cells between the two edges.
func scrollSpan(s *components.ScrollView) int {
	return max(int(math.Round(s.DisplayList.Extent()-s.Extent())), 0)
}

func capture(step int, list *recycler.List[*data.Item], scroll *components.ScrollView) Frame {
	w := list.Window()
	f := Frame{
		Step:     step,
		Offset:   scroll.Offset(),
		Position: scroll.Position(),
		Culled:   list.CulledAbove(),
		Size:     w.Size,
		Spacers:  list.SpacerNodes(),
		Stats:    list.Stats(),
	}
	if idx := list.ActiveIndices(); len(idx) > 0 {
		if it, err := list.At(idx[0]); err == nil {
			f.First = it.Number
		}
		if it, err := list.At(idx[len(idx)-1]); err == nil {
			f.Last = it.Number
		}
	}
	return f
}
