// Package recycler renders an arbitrarily long sequence through a small,
// recycled set of view elements.
//
// A List computes the visible window from the host viewport's scroll
// position (package window), keeps exactly the elements that window needs,
// and on scroll moves elements between the two edges of the window instead
// of rebuilding it. Culled leading content is stood in for by spacer nodes
// so the host's layout and scrollbar see the full virtual extent.
//
// A List is synchronous and single-threaded. Every public method and every
// scroll notification runs its reconciliation to completion before
// returning. Calling back into a List while it is reconciling (for example
// mutating it from an element's SetData) panics with ErrReentrant.
package recycler

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/Akashdeep-Patra/pooled-list/internal/pool"
	"github.com/Akashdeep-Patra/pooled-list/internal/window"
)

// Default pool prewarm sizes.
const (
	DefaultPoolCapacity       = 5
	DefaultSpacerPoolCapacity = 10
)

// Config wires a List to its host.
type Config[T comparable] struct {
	// NewElement constructs a view element. Required.
	NewElement func() Element[T]
	// Content is the host's child list. Required.
	Content Content
	// Viewport is the scroll host. Required.
	Viewport Viewport
	// ExternalViewport, when set, supplies the viewport extent instead of
	// Viewport.
	ExternalViewport ExtentSource

	Mode Mode
	// Layout is optional; nil means zero spacing and padding (and a single
	// column in grid mode) and is logged as a warning.
	Layout *LayoutMetadata

	PoolCapacity       int
	SpacerPoolCapacity int

	// ResetOnMutation returns the viewport to the start edge after every
	// structural mutation, not only after Initialize.
	ResetOnMutation bool

	Logger *slog.Logger
}

// Stats reports engine activity since the List was created.
type Stats struct {
	Pool           pool.Stats `json:"pool"`
	SpacerPool     pool.Stats `json:"spacer_pool"`
	Recomputes     int        `json:"recomputes"`
	Rebuilds       int        `json:"rebuilds"`
	Reorientations int        `json:"reorientations"`
	Moves          int        `json:"moves"`
	Pushes         int        `json:"pushes"`
}

// List is the controller: it owns the data sequence and reconciles the
// active window after every mutation or scroll.
type List[T comparable] struct {
	cfg   Config[T]
	log   *slog.Logger
	items []T

	elementSize float64
	layout      LayoutMetadata

	// culled is the first bound record index; -1 until first computed.
	culled int
	win    window.Window

	pool   *pool.Pool[*handle[T]]
	active *activeWindow[T]
	spacer spacer
	cancel func()

	recomputes int
	busy       bool
	resetting  bool
	closed     bool
}

// New creates a List, prewarms its pools and registers for scroll
// notifications. The list starts empty; call Initialize to load data.
func New[T comparable](cfg Config[T]) (*List[T], error) {
	switch {
	case cfg.NewElement == nil:
		return nil, errors.New("recycler: Config.NewElement is required")
	case cfg.Content == nil:
		return nil, errors.New("recycler: Config.Content is required")
	case cfg.Viewport == nil:
		return nil, errors.New("recycler: Config.Viewport is required")
	}
	if cfg.PoolCapacity <= 0 {
		cfg.PoolCapacity = DefaultPoolCapacity
	}
	if cfg.SpacerPoolCapacity <= 0 {
		cfg.SpacerPoolCapacity = DefaultSpacerPoolCapacity
	}

	l := &List[T]{
		cfg:    cfg,
		log:    cfg.Logger,
		culled: -1,
	}
	if l.log == nil {
		l.log = slog.Default()
	}
	l.log = l.log.With("component", "recycler", "mode", cfg.Mode.String())
	l.layout = l.resolveLayout()

	sized := false
	l.pool = pool.New(cfg.PoolCapacity, pool.Hooks[*handle[T]]{
		New: func() *handle[T] {
			view := cfg.NewElement()
			h := &handle[T]{view: view, extent: view.Extent(), index: -1}
			if a, ok := view.(Activator); ok {
				a.SetActive(true)
			}
			// The first element is the template the geometry is measured from.
			if !sized {
				l.elementSize = h.extent
				sized = true
			}
			return h
		},
		OnAcquire: func(h *handle[T]) {
			if a, ok := h.view.(Activator); ok {
				a.SetActive(true)
			}
		},
		OnRelease: func(h *handle[T]) {
			if h.attached {
				cfg.Content.Detach(h.view)
				h.attached = false
			}
			h.index = -1
			if a, ok := h.view.(Activator); ok {
				a.SetActive(false)
			}
			if r, ok := h.view.(Resetter); ok {
				r.Reset()
			}
		},
		OnDestroy: func(h *handle[T]) {
			if h.attached {
				cfg.Content.Detach(h.view)
				h.attached = false
			}
			if d, ok := h.view.(Destroyer); ok {
				d.Destroy()
			}
		},
	})
	l.active = &activeWindow[T]{pool: l.pool, content: cfg.Content}

	switch cfg.Mode {
	case Grid:
		l.spacer = newGridSpacer(cfg.Content, cfg.SpacerPoolCapacity, l.elementSize)
	default:
		l.spacer = newLinearSpacer(cfg.Content, l.Geometry)
	}

	l.cancel = cfg.Viewport.OnScroll(l.scrolled)
	return l, nil
}

func (l *List[T]) resolveLayout() LayoutMetadata {
	if l.cfg.Layout == nil {
		l.log.Warn("layout metadata not provided; content may be mis-sized",
			"err", ErrMissingLayoutMetadata)
		return LayoutMetadata{ConstraintCount: 1}
	}
	layout := *l.cfg.Layout
	switch {
	case l.cfg.Mode != Grid:
		layout.ConstraintCount = 1
	case layout.ConstraintCount < 1:
		l.log.Warn("grid constraint count not set; using one column",
			"constraint_count", layout.ConstraintCount, "err", ErrMissingLayoutMetadata)
		layout.ConstraintCount = 1
	}
	return layout
}

// Initialize replaces the data, returns the viewport to the start edge and
// rebuilds the window.
func (l *List[T]) Initialize(items []T) {
	defer l.enter()()
	l.items = append(l.items[:0:0], items...)
	l.reset()
}

// Reset re-initializes with the current data.
func (l *List[T]) Reset() {
	defer l.enter()()
	l.reset()
}

// Add appends item.
func (l *List[T]) Add(item T) {
	defer l.enter()()
	l.items = append(l.items, item)
	l.mutated()
}

// Insert inserts item before index; index may equal Len.
func (l *List[T]) Insert(index int, item T) error {
	defer l.enter()()
	if index < 0 || index > len(l.items) {
		return fmt.Errorf("insert at %d of %d: %w", index, len(l.items), ErrIndexOutOfRange)
	}
	l.items = slices.Insert(l.items, index, item)
	l.mutated()
	return nil
}

// Remove removes the first record equal to item and reports whether one
// was found.
func (l *List[T]) Remove(item T) bool {
	defer l.enter()()
	i := slices.Index(l.items, item)
	if i < 0 {
		return false
	}
	l.items = slices.Delete(l.items, i, i+1)
	l.mutated()
	return true
}

// RemoveAt removes the record at index.
func (l *List[T]) RemoveAt(index int) error {
	defer l.enter()()
	if index < 0 || index >= len(l.items) {
		return fmt.Errorf("remove at %d of %d: %w", index, len(l.items), ErrIndexOutOfRange)
	}
	l.items = slices.Delete(l.items, index, index+1)
	l.mutated()
	return nil
}

// Set overwrites the record at index in place. A visible record reaches
// its element through the refresh pass, without a rebuild.
func (l *List[T]) Set(index int, item T) error {
	defer l.enter()()
	if index < 0 || index >= len(l.items) {
		return fmt.Errorf("set at %d of %d: %w", index, len(l.items), ErrIndexOutOfRange)
	}
	l.items[index] = item
	l.recompute()
	return nil
}

// Clear removes all records.
func (l *List[T]) Clear() {
	defer l.enter()()
	clear(l.items)
	l.items = l.items[:0]
	l.mutated()
}

// Refresh recomputes the window without touching the data, e.g. after the
// viewport was resized.
func (l *List[T]) Refresh() {
	defer l.enter()()
	l.recompute()
}

// Close deregisters from the viewport, returns every element to the pool
// and destroys all pooled instances. Close is idempotent.
func (l *List[T]) Close() {
	if l.closed {
		return
	}
	if l.busy {
		panic(ErrReentrant)
	}
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.active.releaseAll()
	l.pool.Dispose()
	l.spacer.close()
	l.closed = true
}

// Len returns the number of records.
func (l *List[T]) Len() int { return len(l.items) }

// At returns the record at index.
func (l *List[T]) At(index int) (T, error) {
	if index < 0 || index >= len(l.items) {
		var zero T
		return zero, fmt.Errorf("at %d of %d: %w", index, len(l.items), ErrIndexOutOfRange)
	}
	return l.items[index], nil
}

// Items returns a copy of the records.
func (l *List[T]) Items() []T { return slices.Clone(l.items) }

// CulledAbove returns the index of the first bound record, or -1 before
// the first recompute.
func (l *List[T]) CulledAbove() int { return l.culled }

// Window returns the window computed by the last recompute.
func (l *List[T]) Window() window.Window { return l.win }

// Mode returns the layout mode.
func (l *List[T]) Mode() Mode { return l.cfg.Mode }

// Geometry returns the current geometry snapshot.
func (l *List[T]) Geometry() window.Geometry {
	extent := l.cfg.Viewport.Extent()
	if l.cfg.ExternalViewport != nil {
		extent = l.cfg.ExternalViewport.Extent()
	}
	return window.Geometry{
		ViewportExtent:  extent,
		ElementExtent:   l.elementSize + l.layout.Spacing,
		Spacing:         l.layout.Spacing,
		PaddingStart:    l.layout.PaddingStart,
		PaddingEnd:      l.layout.PaddingEnd,
		ConstraintCount: l.layout.ConstraintCount,
	}
}

// Active returns the active elements in display order.
func (l *List[T]) Active() []Element[T] {
	out := make([]Element[T], l.active.size())
	for i := range out {
		out[i] = l.active.at(i).view
	}
	return out
}

// ActiveIndices returns the record index bound to each active element, in
// display order.
func (l *List[T]) ActiveIndices() []int {
	out := make([]int, l.active.size())
	for i := range out {
		out[i] = l.active.at(i).index
	}
	return out
}

// SpacerNodes returns how many content children the spacer occupies.
func (l *List[T]) SpacerNodes() int { return l.spacer.nodes() }

// Stats returns engine counters.
func (l *List[T]) Stats() Stats {
	return Stats{
		Pool:           l.pool.Stats(),
		SpacerPool:     l.spacer.stats(),
		Recomputes:     l.recomputes,
		Rebuilds:       l.active.rebuilds,
		Reorientations: l.active.reorients,
		Moves:          l.active.moves,
		Pushes:         l.active.pushes,
	}
}

// enter guards against reentrant and post-Close use. The returned func
// leaves the guarded section.
func (l *List[T]) enter() func() {
	if l.closed {
		panic(ErrClosed)
	}
	if l.busy {
		panic(ErrReentrant)
	}
	l.busy = true
	return func() { l.busy = false }
}

// scrolled is the viewport's scroll callback.
func (l *List[T]) scrolled() {
	// Notifications caused by our own position reset are followed by a
	// recompute anyway.
	if l.resetting || l.closed {
		return
	}
	defer l.enter()()
	l.recompute()
}

func (l *List[T]) reset() {
	l.culled = -1
	l.resetPosition()
	l.recompute()
}

func (l *List[T]) mutated() {
	if l.cfg.ResetOnMutation {
		l.reset()
		return
	}
	l.recompute()
}

func (l *List[T]) resetPosition() {
	l.resetting = true
	defer func() { l.resetting = false }()
	vp := l.cfg.Viewport
	vp.SetScrollFraction(window.StartFraction(vp.Axis()))
}

func (l *List[T]) recompute() {
	g := l.Geometry()
	n := len(l.items)
	l.cfg.Content.SetExtent(window.ContentExtent(n, g))

	p := window.NormalizePosition(l.cfg.Viewport.Axis(), l.cfg.Viewport.ScrollFraction())
	w := window.Calculate(n, g, p)

	l.spacer.adjust(w.CulledAbove)
	offset := l.spacer.nodes()

	switch {
	case l.culled < 0 || l.active.size() != w.Size:
		l.active.rebuild(w.Size, w.CulledAbove, l.items, offset)
		l.log.Debug("rebuilt window", "size", w.Size, "culled", w.CulledAbove, "total", n)
	case l.culled != w.CulledAbove:
		l.active.reorient(l.culled, w.CulledAbove, l.items, offset)
		l.log.Debug("reoriented window", "from", l.culled, "to", w.CulledAbove)
	}

	l.culled = w.CulledAbove
	l.win = w
	l.active.refresh(l.culled, l.items)
	l.recomputes++
}
