package recycler

import (
	"github.com/Akashdeep-Patra/pooled-list/internal/window"
)

type fakeElement struct {
	extent    float64
	data      int
	active    bool
	resets    int
	destroyed bool
	onSet     func(int)
}

func (e *fakeElement) Extent() float64 { return e.extent }
func (e *fakeElement) Data() int       { return e.data }
func (e *fakeElement) SetActive(a bool) {
	e.active = a
}
func (e *fakeElement) Reset()   { e.resets++ }
func (e *fakeElement) Destroy() { e.destroyed = true }

func (e *fakeElement) SetData(v int) {
	e.data = v
	if e.onSet != nil {
		e.onSet(v)
	}
}

// fakeViewport behaves like a host that notifies synchronously whenever its
// scroll position is assigned.
type fakeViewport struct {
	axis      window.Axis
	extent    float64
	fraction  float64
	listeners map[int]func()
	nextID    int
}

func newFakeViewport(axis window.Axis, extent float64) *fakeViewport {
	return &fakeViewport{
		axis:      axis,
		extent:    extent,
		fraction:  window.StartFraction(axis),
		listeners: map[int]func(){},
	}
}

func (v *fakeViewport) Axis() window.Axis       { return v.axis }
func (v *fakeViewport) Extent() float64         { return v.extent }
func (v *fakeViewport) ScrollFraction() float64 { return v.fraction }

func (v *fakeViewport) SetScrollFraction(f float64) {
	v.fraction = f
	for _, fn := range v.listeners {
		fn()
	}
}

func (v *fakeViewport) OnScroll(fn func()) func() {
	id := v.nextID
	v.nextID++
	v.listeners[id] = fn
	return func() { delete(v.listeners, id) }
}

// scrollTo moves to a start-relative position and notifies.
func (v *fakeViewport) scrollTo(p float64) {
	if v.axis == window.Vertical {
		p = 1 - p
	}
	v.SetScrollFraction(p)
}

// place moves to a start-relative position without notifying.
func (v *fakeViewport) place(p float64) {
	if v.axis == window.Vertical {
		p = 1 - p
	}
	v.fraction = p
}

type fixture struct {
	list     *List[int]
	content  *DisplayList
	viewport *fakeViewport
	elements []*fakeElement
}

type fixtureOption func(*Config[int])

func newFixture(mode Mode, vp *fakeViewport, elementExtent float64, layout *LayoutMetadata, opts ...fixtureOption) (*fixture, error) {
	f := &fixture{content: NewDisplayList(), viewport: vp}
	cfg := Config[int]{
		NewElement: func() Element[int] {
			e := &fakeElement{extent: elementExtent}
			f.elements = append(f.elements, e)
			return e
		},
		Content:  f.content,
		Viewport: vp,
		Mode:     mode,
		Layout:   layout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	l, err := New(cfg)
	if err != nil {
		return nil, err
	}
	f.list = l
	return f, nil
}

func sequence(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i * 10
	}
	return out
}

// displayedData returns the data of attached elements in display order,
// skipping spacers.
func (f *fixture) displayedData() []int {
	var out []int
	for _, n := range f.content.Nodes() {
		if e, ok := n.(*fakeElement); ok {
			out = append(out, e.data)
		}
	}
	return out
}
