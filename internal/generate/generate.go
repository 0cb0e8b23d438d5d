// Package generate drives the catalog through composition, normalization and
// encoding for one style.
package generate

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/rook-computer/cursorgen/internal/catalog"
	"github.com/rook-computer/cursorgen/internal/curfile"
	"github.com/rook-computer/cursorgen/internal/cursorerr"
	"github.com/rook-computer/cursorgen/internal/palette"
	"github.com/rook-computer/cursorgen/internal/render"
	"github.com/rook-computer/cursorgen/internal/sink"
)

// EncodeFunc packs a normalized image and hotspot into container bytes.
type EncodeFunc func(img image.Image, hotspot curfile.Hotspot) ([]byte, error)

// Logger is satisfied by app.Logger.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Generator produces every catalog entry for a style.
// Catalog and Resolver are read-only once GenerateAll runs.
type Generator struct {
	Catalog  catalog.Catalog
	Resolver palette.Resolver
	Encode   EncodeFunc // nil means curfile.Encode
	Sink     sink.Sink  // optional; receives each entry once it is fully encoded
	Workers  int        // entries processed concurrently; <= 1 is sequential
	Logger   Logger     // optional
}

// New returns a sequential generator over cat with a strict resolver.
func New(cat catalog.Catalog) *Generator {
	return &Generator{Catalog: cat}
}

// Result is the outcome of one catalog entry. Exactly one of Data and Err is set.
type Result struct {
	Entry catalog.Entry
	Data  []byte
	Err   error
}

// Batch is the outcome of one GenerateAll call, in catalog order.
type Batch struct {
	Style       palette.Style
	WorkingSize int
	Palette     palette.Palette
	Results     []Result
}

// Files maps each successfully generated file name to its bytes.
func (b *Batch) Files() map[string][]byte {
	out := make(map[string][]byte, len(b.Results))
	for _, r := range b.Results {
		if r.Err == nil {
			out[r.Entry.File] = r.Data
		}
	}
	return out
}

// Failed returns the results that carry an error.
func (b *Batch) Failed() []Result {
	var out []Result
	for _, r := range b.Results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}

// Err joins every per-entry error, or returns nil when all entries succeeded.
func (b *Batch) Err() error {
	var errs []error
	for _, r := range b.Failed() {
		errs = append(errs, r.Err)
	}
	return errors.Join(errs...)
}

// Summary counts succeeded and failed entries.
type Summary struct {
	Succeeded int
	Failed    int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d generated, %d failed", s.Succeeded, s.Failed)
}

func (b *Batch) Summary() Summary {
	failed := len(b.Failed())
	return Summary{Succeeded: len(b.Results) - failed, Failed: failed}
}

// GenerateAll renders every catalog entry for style at the requested canvas
// size. The palette is resolved once and shared by all entries.
//
// Only an unresolvable style fails the call. Any other failure is recorded on
// its entry and the remaining entries still run; a cancelled ctx marks the
// entries that had not started.
func (g *Generator) GenerateAll(ctx context.Context, style palette.Style, size int) (*Batch, error) {
	colors, err := g.Resolver.Resolve(style)
	if err != nil {
		return nil, err
	}
	batch := &Batch{
		Style:       style,
		WorkingSize: style.WorkingSize(size),
		Palette:     colors,
	}
	entries := g.Catalog.Entries()
	batch.Results = make([]Result, len(entries))
	g.infof("generate", "style=%s working=%d entries=%d", style, batch.WorkingSize, len(entries))

	workers := max(g.Workers, 1)
	if workers == 1 {
		for i, e := range entries {
			batch.Results[i] = g.run(ctx, e, colors, batch.WorkingSize)
		}
	} else {
		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < min(workers, len(entries)); w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					batch.Results[i] = g.run(ctx, entries[i], colors, batch.WorkingSize)
				}
			}()
		}
		for i := range entries {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}

	g.infof("generate", "style=%s %s", style, batch.Summary())
	return batch, nil
}

func (g *Generator) run(ctx context.Context, e catalog.Entry, colors palette.Palette, workingSize int) Result {
	res := Result{Entry: e}
	if err := ctx.Err(); err != nil {
		res.Err = cursorerr.WithEntry(err, cursorerr.KindCanceled, e.File)
		return res
	}
	data, err := g.build(e, colors, workingSize)
	if err == nil && g.Sink != nil {
		err = g.Sink.Put(e.File, data)
		if err != nil {
			err = cursorerr.WithEntry(err, cursorerr.KindSink, e.File)
		}
	}
	if err != nil {
		g.errorf("generate", "%s: %v", e.File, err)
		res.Err = err
		return res
	}
	g.infof("generate", "created %s (%d bytes)", e.File, len(data))
	res.Data = data
	return res
}

func (g *Generator) build(e catalog.Entry, colors palette.Palette, workingSize int) ([]byte, error) {
	img, err := render.Cursor(e.Shape, colors, workingSize)
	if err != nil {
		return nil, cursorerr.WithEntry(err, cursorerr.KindRender, e.File)
	}
	encode := g.Encode
	if encode == nil {
		encode = curfile.Encode
	}
	data, err := encode(img, e.Hotspot(render.TargetSize))
	if err != nil {
		return nil, cursorerr.WithEntry(err, cursorerr.KindEncode, e.File)
	}
	return data, nil
}

func (g *Generator) infof(component, format string, args ...interface{}) {
	if g.Logger != nil {
		g.Logger.Infof(component, format, args...)
	}
}

func (g *Generator) errorf(component, format string, args ...interface{}) {
	if g.Logger != nil {
		g.Logger.Errorf(component, format, args...)
	}
}
