package app

import (
	"bytes"
	"context"
	"image"
	"image/png"

	"github.com/rook-computer/cursorgen/internal/catalog"
	"github.com/rook-computer/cursorgen/internal/config"
	"github.com/rook-computer/cursorgen/internal/cursorerr"
	"github.com/rook-computer/cursorgen/internal/generate"
	"github.com/rook-computer/cursorgen/internal/manifest"
	"github.com/rook-computer/cursorgen/internal/render"
	"github.com/rook-computer/cursorgen/internal/sink"
)

// PreviewFileName is written next to the cursors when previews are enabled.
const PreviewFileName = "preview.png"

// Displayer shows a preview image, e.g. render.FBDisplay.
type Displayer interface {
	Show(img image.Image) error
}

type App struct {
	Config  config.Config
	Catalog catalog.Catalog
	Logger  Logger

	// Sink receives the files. When nil, Run writes to Config.OutDir/Config.Style.
	Sink sink.Sink

	Preview bool      // write preview.png
	Display Displayer // optional; shows the preview sheet
}

func New(cfg config.Config) *App {
	return &App{Config: cfg, Catalog: catalog.Default(), Logger: NoopLogger{}}
}

// Run generates every cursor of the configured style and stores them with a
// manifest. The batch is returned even when some entries failed; the error
// then joins the per-entry failures.
func (app *App) Run(ctx context.Context) (*generate.Batch, error) {
	if app.Logger == nil {
		app.Logger = NoopLogger{}
	}
	cfg := app.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	out := app.Sink
	if out == nil {
		dir, err := sink.NewDir(cfg.OutDir, string(cfg.Style))
		if err != nil {
			return nil, err
		}
		app.Logger.Infof("app", "output directory: %s", dir.Path())
		out = dir
	}

	gen := generate.New(app.Catalog)
	gen.Resolver.Policy = cfg.Policy()
	gen.Workers = cfg.Workers
	gen.Sink = out
	gen.Logger = app.Logger

	batch, err := gen.GenerateAll(ctx, cfg.Style, cfg.Size)
	if err != nil {
		app.Logger.Errorf("app", "generate failed: %v", err)
		return nil, err
	}

	m, err := manifest.Build(batch)
	if err != nil {
		return batch, err
	}
	if err := out.Put(manifest.FileName, m.Encode()); err != nil {
		app.Logger.Errorf("sink", "manifest: %v", err)
		return batch, err
	}

	if app.Preview || app.Display != nil {
		if err := app.preview(batch, out); err != nil {
			app.Logger.Errorf("render", "preview: %v", err)
			return batch, err
		}
	}
	return batch, batch.Err()
}

func (app *App) preview(batch *generate.Batch, out sink.Sink) error {
	tiles, err := batch.Tiles()
	if err != nil {
		return err
	}
	sheet := render.ContactSheet(tiles, render.DefaultPreviewConfig())
	if app.Preview {
		var buf bytes.Buffer
		if err := png.Encode(&buf, sheet); err != nil {
			return cursorerr.Wrap(cursorerr.KindEncode, err, "preview png")
		}
		if err := out.Put(PreviewFileName, buf.Bytes()); err != nil {
			return err
		}
		app.Logger.Infof("render", "wrote %s (%dx%d)", PreviewFileName, sheet.Bounds().Dx(), sheet.Bounds().Dy())
	}
	if app.Display != nil {
		return app.Display.Show(sheet)
	}
	return nil
}
