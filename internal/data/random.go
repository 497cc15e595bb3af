package data

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
)

// RandomProvider numbers items 1..Count and gives each a random colour from
// the palette. It is safe for concurrent use.
type RandomProvider struct {
	mu      sync.Mutex
	palette []string
	count   int
	rng     *rand.Rand
}

// NewRandomProvider returns a provider seeded with seed, so the same seed
// yields the same colours.
func NewRandomProvider(palette []string, count int, seed uint64) *RandomProvider {
	return &RandomProvider{
		palette: palette,
		count:   count,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Count returns the number of items the next call to Items produces.
func (p *RandomProvider) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}

// SetCount changes the number of items produced.
func (p *RandomProvider) SetCount(n int) error {
	if n < 0 {
		return fmt.Errorf("count must not be negative, got %d", n)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.count = n
	return nil
}

func (p *RandomProvider) Items(ctx context.Context) ([]*Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(p.palette) == 0 {
		return nil, errors.New("random provider: empty palette")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.count < 0 {
		return nil, fmt.Errorf("random provider: negative count %d", p.count)
	}
	items := make([]*Item, p.count)
	for i := range items {
		items[i] = p.next(i + 1)
	}
	return items, nil
}

// Next returns a single item with the given number and a random colour.
func (p *RandomProvider) Next(number int) *Item {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.next(number)
}

func (p *RandomProvider) next(number int) *Item {
	color := ""
	if len(p.palette) > 0 {
		color = p.palette[p.rng.IntN(len(p.palette))]
	}
	return &Item{Color: color, Number: number}
}
