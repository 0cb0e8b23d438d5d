package generate

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rook-computer/cursorgen/internal/catalog"
	"github.com/rook-computer/cursorgen/internal/curfile"
	"github.com/rook-computer/cursorgen/internal/cursorerr"
	"github.com/rook-computer/cursorgen/internal/palette"
	"github.com/rook-computer/cursorgen/internal/sink"
)

func mustGenerate(t *testing.T, g *Generator, style palette.Style, size int) *Batch {
	t.Helper()
	b, err := g.GenerateAll(context.Background(), style, size)
	if err != nil {
		t.Fatalf("GenerateAll(%s, %d) failed: %v", style, size, err)
	}
	return b
}

func TestDeterminism(t *testing.T) {
	g := New(catalog.Default())
	for _, style := range palette.Styles() {
		a := mustGenerate(t, g, style, 32).Files()
		b := mustGenerate(t, g, style, 32).Files()
		if len(a) != catalog.Default().Len() {
			t.Fatalf("%s: %d files, want %d", style, len(a), catalog.Default().Len())
		}
		if diff := cmp.Diff(a, b); diff != "" {
			t.Fatalf("%s: outputs differ between runs", style)
		}
	}
}

func TestContainerProperties(t *testing.T) {
	g := New(catalog.Default())
	for _, size := range []int{32, 48, 64} {
		batch := mustGenerate(t, g, palette.ModernBlack, size)
		if err := batch.Err(); err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		for name, data := range batch.Files() {
			if !bytes.HasPrefix(data, []byte{0, 0, 2, 0, 1, 0}) {
				t.Errorf("%s@%d: header = % x", name, size, data[:6])
			}
			payloadSize := binary.LittleEndian.Uint32(data[14:])
			offset := binary.LittleEndian.Uint32(data[18:])
			if offset != 22 || int(payloadSize) != len(data)-22 {
				t.Errorf("%s@%d: offset=%d size=%d len=%d", name, size, offset, payloadSize, len(data))
			}

			f, err := curfile.Decode(data)
			if err != nil {
				t.Fatalf("%s@%d: Decode failed: %v", name, size, err)
			}
			// Normalization always yields 32x32, whatever the working size.
			if f.Width != 32 || f.Height != 32 {
				t.Errorf("%s@%d: directory size %dx%d, want 32x32", name, size, f.Width, f.Height)
			}
			if int(f.Hotspot.X) >= f.Width || int(f.Hotspot.Y) >= f.Height {
				t.Errorf("%s@%d: hotspot %+v outside image", name, size, f.Hotspot)
			}
			img, err := f.Image()
			if err != nil {
				t.Fatalf("%s@%d: payload not decodable: %v", name, size, err)
			}
			if img.Bounds() != image.Rect(0, 0, f.Width, f.Height) {
				t.Errorf("%s@%d: payload bounds %v", name, size, img.Bounds())
			}
		}
	}
}

func TestLargeStyleWorkingSize(t *testing.T) {
	b := mustGenerate(t, New(catalog.Default()), palette.Large, 32)
	if b.WorkingSize != 64 {
		t.Fatalf("large WorkingSize = %d, want 64", b.WorkingSize)
	}
}

func TestBatchIsolation(t *testing.T) {
	boom := errors.New("boom")
	g := New(catalog.Default())
	var calls int
	var mu sync.Mutex
	g.Encode = func(img image.Image, hs curfile.Hotspot) ([]byte, error) {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		if n == 5 { // cross.cur in catalog order
			return nil, boom
		}
		return curfile.Encode(img, hs)
	}
	mem := sink.NewMemory()
	g.Sink = mem

	batch := mustGenerate(t, g, palette.NeonBlue, 32)
	failed := batch.Failed()
	if len(failed) != 1 || failed[0].Entry.File != "cross.cur" {
		t.Fatalf("Failed() = %+v, want only cross.cur", failed)
	}
	if !cursorerr.Is(failed[0].Err, cursorerr.KindEncode) || !errors.Is(failed[0].Err, boom) {
		t.Fatalf("failure = %v, want Encode kind wrapping boom", failed[0].Err)
	}
	if got := batch.Summary(); got != (Summary{Succeeded: 16, Failed: 1}) {
		t.Fatalf("Summary() = %+v", got)
	}
	if _, ok := mem.Get("cross.cur"); ok {
		t.Fatalf("failed entry reached the sink")
	}

	clean := mustGenerate(t, New(catalog.Default()), palette.NeonBlue, 32).Files()
	files := batch.Files()
	if len(files) != 16 {
		t.Fatalf("len(Files()) = %d, want 16", len(files))
	}
	for name, data := range files {
		if !bytes.Equal(data, clean[name]) {
			t.Errorf("%s differs from an unfaulted run", name)
		}
		stored, ok := mem.Get(name)
		if !ok || !bytes.Equal(stored, data) {
			t.Errorf("%s missing from sink", name)
		}
	}
	if !strings.Contains(batch.Err().Error(), "cross.cur") {
		t.Fatalf("Err() = %v, want entry name", batch.Err())
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	seq := mustGenerate(t, New(catalog.Default()), palette.Rainbow, 48)
	g := New(catalog.Default())
	g.Workers = 4
	par := mustGenerate(t, g, palette.Rainbow, 48)
	if diff := cmp.Diff(seq.Files(), par.Files()); diff != "" {
		t.Fatalf("parallel output differs from sequential")
	}
	for i := range seq.Results {
		if seq.Results[i].Entry != par.Results[i].Entry {
			t.Fatalf("result %d out of catalog order: %s vs %s", i, seq.Results[i].Entry.File, par.Results[i].Entry.File)
		}
	}
}

func TestInvalidStyle(t *testing.T) {
	g := New(catalog.Default())
	if _, err := g.GenerateAll(context.Background(), "sparkly", 32); !cursorerr.Is(err, cursorerr.KindInvalidStyle) {
		t.Fatalf("GenerateAll error = %v, want InvalidStyle", err)
	}
	g.Resolver = palette.Resolver{Policy: palette.FallbackDefault}
	b := mustGenerate(t, g, "sparkly", 32)
	want := mustGenerate(t, New(catalog.Default()), palette.Default, 32)
	if diff := cmp.Diff(want.Files(), b.Files()); diff != "" {
		t.Fatalf("fallback style output differs from the default style")
	}
}

func TestZeroSizeFailsPerEntry(t *testing.T) {
	b := mustGenerate(t, New(catalog.Default()), palette.Minimal, 0)
	if got := b.Summary(); got.Succeeded != 0 || got.Failed != catalog.Default().Len() {
		t.Fatalf("Summary() = %+v, want every entry failed", got)
	}
	for _, r := range b.Failed() {
		if !cursorerr.Is(r.Err, cursorerr.KindResample) {
			t.Errorf("%s: error %v, want Resample kind", r.Entry.File, r.Err)
		}
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b, err := New(catalog.Default()).GenerateAll(ctx, palette.ModernBlack, 32)
	if err != nil {
		t.Fatalf("GenerateAll failed: %v", err)
	}
	for _, r := range b.Results {
		if !cursorerr.Is(r.Err, cursorerr.KindCanceled) || !errors.Is(r.Err, context.Canceled) {
			t.Fatalf("%s: error %v, want Canceled", r.Entry.File, r.Err)
		}
	}
}

type failingSink struct{ name string }

func (f failingSink) Put(name string, data []byte) error {
	if name == f.name {
		return fmt.Errorf("disk full")
	}
	return nil
}

type recordingLogger struct {
	mu     sync.Mutex
	infos  []string
	errors []string
}

func (l *recordingLogger) Infof(component, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, component+": "+fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Errorf(component, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, component+": "+fmt.Sprintf(format, args...))
}

func TestSinkFailureIsPerEntry(t *testing.T) {
	log := &recordingLogger{}
	g := New(catalog.Default())
	g.Sink = failingSink{name: "beam.cur"}
	g.Logger = log
	b := mustGenerate(t, g, palette.ModernWhite, 32)
	failed := b.Failed()
	if len(failed) != 1 || failed[0].Entry.File != "beam.cur" || !cursorerr.Is(failed[0].Err, cursorerr.KindSink) {
		t.Fatalf("Failed() = %+v, want beam.cur sink failure", failed)
	}
	if len(log.errors) != 1 || !strings.Contains(log.errors[0], "beam.cur") {
		t.Fatalf("error log = %v", log.errors)
	}
	if last := log.infos[len(log.infos)-1]; !strings.Contains(last, "16 generated, 1 failed") {
		t.Fatalf("last info log = %q, want summary", last)
	}
}
