package web

import (
	"context"
	"sync"

	"github.com/rook-computer/cursorgen/internal/generate"
	"github.com/rook-computer/cursorgen/internal/palette"
)

// Library generates a style on first request and keeps the batch for later
// requests. Batches with failed entries are not cached, and only known styles
// are cached so arbitrary names can not grow the cache.
type Library struct {
	Generator *generate.Generator
	Size      int

	mu      sync.Mutex
	batches map[palette.Style]*generate.Batch
}

func NewLibrary(g *generate.Generator, size int) *Library {
	return &Library{Generator: g, Size: size, batches: map[palette.Style]*generate.Batch{}}
}

// Batch returns the generated set for style. Generation runs without the
// lock held; concurrent first requests may build the same style twice.
func (l *Library) Batch(ctx context.Context, style palette.Style) (*generate.Batch, error) {
	if b, ok := l.cached(style); ok {
		return b, nil
	}
	b, err := l.Generator.GenerateAll(ctx, style, l.Size)
	if err != nil {
		return nil, err
	}
	if style.Valid() && len(b.Failed()) == 0 {
		l.mu.Lock()
		if l.batches == nil {
			l.batches = map[palette.Style]*generate.Batch{}
		}
		if prev, ok := l.batches[style]; ok {
			b = prev
		} else {
			l.batches[style] = b
		}
		l.mu.Unlock()
	}
	return b, nil
}

// Len returns the number of cached styles.
func (l *Library) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.batches)
}

func (l *Library) cached(style palette.Style) (*generate.Batch, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.batches[style]
	return b, ok
}
