package data

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileProvider reads items from a TOML file of the form
//
//	[[item]]
//	color = "#f38ba8"
//	number = 1
//
// A missing number defaults to the item's 1-based position.
type FileProvider struct {
	Path string
}

type itemFile struct {
	Items []Item `toml:"item"`
}

func (p FileProvider) Items(ctx context.Context) ([]*Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var doc itemFile
	meta, err := toml.DecodeFile(p.Path, &doc)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("data file %s: %w", p.Path, err)
		}
		return nil, fmt.Errorf("parsing %s: %w", p.Path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("parsing %s: unknown keys %s", p.Path, strings.Join(keys, ", "))
	}

	items := make([]*Item, len(doc.Items))
	for i := range doc.Items {
		it := doc.Items[i]
		if it.Color == "" {
			return nil, fmt.Errorf("parsing %s: item %d has no color", p.Path, i+1)
		}
		if it.Number == 0 {
			it.Number = i + 1
		}
		items[i] = &it
	}
	return items, nil
}

// WriteFile stores items in the format FileProvider reads.
func WriteFile(path string, items []*Item) error {
	doc := itemFile{Items: make([]Item, len(items))}
	for i, it := range items {
		doc.Items[i] = *it
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(doc); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
