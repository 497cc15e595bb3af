package data

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var palette = []string{"#f38ba8", "#a6e3a1", "#89b4fa"}

func TestRandomProviderNumbersItems(t *testing.T) {
	p := NewRandomProvider(palette, 5, 1)
	items, err := p.Items(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 5)
	for i, it := range items {
		assert.Equal(t, i+1, it.Number)
		assert.Contains(t, palette, it.Color)
	}
}

func TestRandomProviderIsSeeded(t *testing.T) {
	a, err := NewRandomProvider(palette, 20, 42).Items(context.Background())
	require.NoError(t, err)
	b, err := NewRandomProvider(palette, 20, 42).Items(context.Background())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRandomProviderCount(t *testing.T) {
	p := NewRandomProvider(palette, 3, 1)
	require.NoError(t, p.SetCount(0))
	items, err := p.Items(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.Error(t, p.SetCount(-1))
	assert.Equal(t, 0, p.Count())
}

func TestRandomProviderErrors(t *testing.T) {
	_, err := NewRandomProvider(nil, 3, 1).Items(context.Background())
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewRandomProvider(palette, 3, 1).Items(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[[item]]
color = "#f38ba8"
number = 7

[[item]]
color = "#a6e3a1"
`), 0o644))

	items, err := FileProvider{Path: path}.Items(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []*Item{
		{Color: "#f38ba8", Number: 7},
		{Color: "#a6e3a1", Number: 2},
	}, items)
}

func TestFileProviderErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := FileProvider{Path: filepath.Join(dir, "missing.toml")}.Items(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)

	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[[item]\ncolor ="},
		{"unknown key", "[[item]]\ncolor = \"#fff\"\nshape = \"round\"\n"},
		{"missing color", "[[item]]\nnumber = 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, err := FileProvider{Path: path}.Items(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.toml")
	items, err := NewRandomProvider(palette, 4, 9).Items(context.Background())
	require.NoError(t, err)

	require.NoError(t, WriteFile(path, items))
	got, err := FileProvider{Path: path}.Items(context.Background())
	require.NoError(t, err)
	assert.Equal(t, items, got)
}
