// Package pool provides a generic recycler for expensive-to-construct
// instances such as view elements.
//
// Instances live in an arena of slots. Released slots are queued by index
// and handed out again in FIFO order, so steady-state scrolling never
// constructs anything. The prewarm capacity is a hint: when the free queue is
// empty the pool falls back to constructing a new instance on demand.
//
// A Pool is not safe for concurrent use.
package pool

import "errors"

// ErrDisposed is the panic value for any use of a pool after Dispose.
var ErrDisposed = errors.New("pool: use after dispose")

// Hooks customise how instances are constructed and recycled.
type Hooks[T any] struct {
	// New constructs a fresh instance. Required.
	New func() T
	// OnAcquire runs when a queued instance is handed out again.
	OnAcquire func(T)
	// OnRelease resets an instance to its inactive defaults.
	OnRelease func(T)
	// OnDestroy runs once per tracked instance during Dispose.
	OnDestroy func(T)
}

// Stats is a snapshot of pool traffic since construction.
type Stats struct {
	Created   int `json:"created"`
	Acquired  int `json:"acquired"`
	Released  int `json:"released"`
	Destroyed int `json:"destroyed"`
	Free      int `json:"free"`
	Active    int `json:"active"`
}

type slotState uint8

const (
	slotFree slotState = iota
	slotActive
)

// Pool recycles instances of T. T must be comparable so released instances
// can be mapped back to their slot; pointer types are the usual choice.
type Pool[T comparable] struct {
	hooks Hooks[T]

	slots []T
	state []slotState
	index map[T]int

	// FIFO queue of free slot indices; queue[head:] is live.
	queue []int
	head  int

	stats    Stats
	disposed bool
}

// New creates a pool and prewarms capacity instances in the released state.
func New[T comparable](capacity int, hooks Hooks[T]) *Pool[T] {
	if hooks.New == nil {
		panic("pool: Hooks.New is required")
	}
	if capacity < 0 {
		capacity = 0
	}
	p := &Pool[T]{
		hooks: hooks,
		slots: make([]T, 0, capacity),
		state: make([]slotState, 0, capacity),
		index: make(map[T]int, capacity),
		queue: make([]int, 0, capacity),
	}
	for i := 0; i < capacity; i++ {
		item := p.construct()
		if p.hooks.OnRelease != nil {
			p.hooks.OnRelease(item)
		}
		slot := p.index[item]
		p.state[slot] = slotFree
		p.enqueue(slot)
	}
	return p
}

// Acquire returns the oldest released instance, or a new one when none is
// queued.
func (p *Pool[T]) Acquire() T {
	p.mustLive()

	p.stats.Acquired++
	if p.head < len(p.queue) {
		slot := p.dequeue()
		p.state[slot] = slotActive
		item := p.slots[slot]
		if p.hooks.OnAcquire != nil {
			p.hooks.OnAcquire(item)
		}
		return item
	}

	item := p.construct()
	p.state[p.index[item]] = slotActive
	return item
}

// Release deactivates item and queues it for reuse. Releasing an instance
// that is already free is a no-op; an instance the pool has never seen is
// adopted.
func (p *Pool[T]) Release(item T) {
	p.mustLive()

	slot, ok := p.index[item]
	if !ok {
		slot = p.track(item)
	} else if p.state[slot] == slotFree {
		return
	}

	if p.hooks.OnRelease != nil {
		p.hooks.OnRelease(item)
	}
	p.stats.Released++
	p.state[slot] = slotFree
	p.enqueue(slot)
}

// Dispose destroys every tracked instance, active or free, and invalidates
// the pool. Calling Dispose again is a no-op.
func (p *Pool[T]) Dispose() {
	if p.disposed {
		return
	}
	for _, item := range p.slots {
		if p.hooks.OnDestroy != nil {
			p.hooks.OnDestroy(item)
		}
		p.stats.Destroyed++
	}
	p.slots = nil
	p.state = nil
	p.index = nil
	p.queue = nil
	p.head = 0
	p.disposed = true
}

// Len returns the number of queued (free) instances.
func (p *Pool[T]) Len() int {
	return len(p.queue) - p.head
}

// Stats returns a snapshot of the pool counters.
func (p *Pool[T]) Stats() Stats {
	s := p.stats
	s.Free = p.Len()
	s.Active = len(p.slots) - s.Free
	return s
}

// Disposed reports whether Dispose has been called.
func (p *Pool[T]) Disposed() bool { return p.disposed }

func (p *Pool[T]) construct() T {
	item := p.hooks.New()
	p.stats.Created++
	p.track(item)
	return item
}

func (p *Pool[T]) track(item T) int {
	slot := len(p.slots)
	p.slots = append(p.slots, item)
	p.state = append(p.state, slotActive)
	p.index[item] = slot
	return slot
}

func (p *Pool[T]) enqueue(slot int) {
	p.queue = append(p.queue, slot)
}

func (p *Pool[T]) dequeue() int {
	slot := p.queue[p.head]
	p.head++
	// Compact once the consumed prefix dominates so the queue does not grow
	// without bound under steady acquire/release traffic.
	if p.head > 32 && p.head*2 >= len(p.queue) {
		n := copy(p.queue, p.queue[p.head:])
		p.queue = p.queue[:n]
		p.head = 0
	}
	return slot
}

func (p *Pool[T]) mustLive() {
	if p.disposed {
		panic(ErrDisposed)
	}
}
