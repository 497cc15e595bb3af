package recycler

import "github.com/Akashdeep-Patra/pooled-list/internal/pool"

// handle wraps a caller element with its binding state.
type handle[T comparable] struct {
	view   Element[T]
	extent float64
	// index is the bound record index, -1 while unbound.
	index    int
	attached bool

	pushed    T
	hasPushed bool
}

// activeWindow owns the handles currently borrowed from the pool. Handles
// sit in a ring so moving one between the edges is O(1); ring order from
// start is display order.
type activeWindow[T comparable] struct {
	ring    []*handle[T]
	start   int
	pool    *pool.Pool[*handle[T]]
	content Content

	rebuilds  int
	reorients int
	moves     int
	pushes    int
}

func (a *activeWindow[T]) size() int { return len(a.ring) }

func (a *activeWindow[T]) at(i int) *handle[T] {
	return a.ring[(a.start+i)%len(a.ring)]
}

// rebuild releases every handle and binds size fresh ones to
// items[culled:], placing them after offset leading nodes.
func (a *activeWindow[T]) rebuild(size, culled int, items []T, offset int) {
	a.releaseAll()

	for i := 0; i < size && culled+i < len(items); i++ {
		h := a.pool.Acquire()
		a.content.Attach(h.view, offset+i)
		h.attached = true
		a.bind(h, culled+i, items)
		a.ring = append(a.ring, h)
	}
	a.rebuilds++
}

// reorient shifts the window from culled index from to to without pool
// traffic: handles leaving one edge are rebound and moved to the other.
// At most len handles move; beyond that every handle is rebound once.
func (a *activeWindow[T]) reorient(from, to int, items []T, offset int) {
	n := len(a.ring)
	if n <= 1 || from == to {
		return
	}

	delta := to - from
	steps := min(abs(delta), n)
	if delta > 0 {
		for i := 0; i < steps; i++ {
			h := a.at(0)
			a.start = (a.start + 1) % n
			a.content.Move(h.view, offset+n-1)
			a.bind(h, to+n-steps+i, items)
		}
	} else {
		for i := 0; i < steps; i++ {
			a.start = (a.start - 1 + n) % n
			h := a.at(0)
			a.content.Move(h.view, offset)
			a.bind(h, to+steps-1-i, items)
		}
	}
	a.moves += steps
	a.reorients++
}

// refresh pushes any record that differs from what its view last received.
// In-place overwrites of visible records reach the screen this way.
func (a *activeWindow[T]) refresh(culled int, items []T) {
	for i := 0; i < len(a.ring); i++ {
		h := a.at(i)
		h.index = culled + i
		v := items[h.index]
		if !h.hasPushed || h.pushed != v {
			a.push(h, v)
		}
	}
}

func (a *activeWindow[T]) releaseAll() {
	for i := 0; i < len(a.ring); i++ {
		a.pool.Release(a.at(i))
	}
	clear(a.ring)
	a.ring = a.ring[:0]
	a.start = 0
}

func (a *activeWindow[T]) bind(h *handle[T], index int, items []T) {
	h.index = index
	a.push(h, items[index])
}

func (a *activeWindow[T]) push(h *handle[T], v T) {
	h.view.SetData(v)
	h.pushed = v
	h.hasPushed = true
	a.pushes++
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
