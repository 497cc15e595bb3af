package recycler

import (
	"github.com/Akashdeep-Patra/pooled-list/internal/pool"
	"github.com/Akashdeep-Patra/pooled-list/internal/window"
)

// Spacer is a placeholder node that occupies the layout space of culled
// content so the host's layout and scrollbar stay correct.
type Spacer struct {
	extent  float64
	ignored bool
	active  bool
}

// Extent returns the spacer size, or 0 while it is ignored.
func (s *Spacer) Extent() float64 {
	if s.ignored {
		return 0
	}
	return s.extent
}

// Ignored reports whether the host must skip the spacer during layout,
// including the spacing that would follow it.
func (s *Spacer) Ignored() bool { return s.ignored }

// spacer emulates the leading culled content of one layout mode.
type spacer interface {
	adjust(culled int)
	// nodes is the number of content children the spacer occupies, all of
	// them ahead of the first element.
	nodes() int
	close()
	stats() pool.Stats
}

// linearSpacer is a single resizable placeholder, created once.
type linearSpacer struct {
	node     *Spacer
	content  Content
	geometry func() window.Geometry
}

func newLinearSpacer(content Content, geometry func() window.Geometry) *linearSpacer {
	s := &linearSpacer{
		node:     &Spacer{ignored: true, active: true},
		content:  content,
		geometry: geometry,
	}
	content.Attach(s.node, 0)
	return s
}

func (s *linearSpacer) adjust(culled int) {
	size := window.SpacerExtent(culled, s.geometry())
	s.node.ignored = size <= 0
	s.node.extent = max(size, 0)
	s.content.Move(s.node, 0)
}

func (s *linearSpacer) nodes() int { return 1 }

func (s *linearSpacer) close() {
	s.content.Detach(s.node)
	s.node.active = false
}

func (s *linearSpacer) stats() pool.Stats { return pool.Stats{} }

// gridSpacer reserves whole cells. A grid sizes cells, not spans, so one
// placeholder per culled cell keeps line wrapping correct.
type gridSpacer struct {
	pool    *pool.Pool[*Spacer]
	cells   []*Spacer
	content Content
}

func newGridSpacer(content Content, capacity int, cellExtent float64) *gridSpacer {
	s := &gridSpacer{content: content}
	s.pool = pool.New(capacity, pool.Hooks[*Spacer]{
		New: func() *Spacer {
			return &Spacer{extent: cellExtent, active: true}
		},
		OnAcquire: func(sp *Spacer) { sp.active = true },
		OnRelease: func(sp *Spacer) {
			sp.active = false
			content.Detach(sp)
		},
		OnDestroy: func(sp *Spacer) { content.Detach(sp) },
	})
	return s
}

func (s *gridSpacer) adjust(culled int) {
	for len(s.cells) < culled {
		sp := s.pool.Acquire()
		s.content.Attach(sp, 0)
		s.cells = append(s.cells, sp)
	}
	for len(s.cells) > culled {
		last := len(s.cells) - 1
		s.pool.Release(s.cells[last])
		s.cells[last] = nil
		s.cells = s.cells[:last]
	}
}

func (s *gridSpacer) nodes() int { return len(s.cells) }

func (s *gridSpacer) close() {
	for _, sp := range s.cells {
		s.pool.Release(sp)
	}
	s.cells = nil
	s.pool.Dispose()
}

func (s *gridSpacer) stats() pool.Stats { return s.pool.Stats() }
