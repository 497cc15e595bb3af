// Package data supplies the records shown by the list: a numbered, coloured
// item and the providers that produce sequences of them.
package data

import (
	"context"
	"fmt"
)

// Item is one record. Lists hold *Item, so records compare by identity and
// an edit is made by replacing the pointer.
type Item struct {
	Color  string `toml:"color" json:"color"`
	Number int    `toml:"number" json:"number"`
}

func (it *Item) String() string {
	return fmt.Sprintf("#%d %s", it.Number, it.Color)
}

// Provider produces the initial sequence for a list.
type Provider interface {
	Items(ctx context.Context) ([]*Item, error)
}
