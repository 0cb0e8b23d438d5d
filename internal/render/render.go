// Package render turns shape templates into cursor rasters and lays generated
// cursors out for previewing.
package render

import (
	"image"
	"image/draw"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/rook-computer/cursorgen/internal/cursorerr"
	"github.com/rook-computer/cursorgen/internal/palette"
	"github.com/rook-computer/cursorgen/internal/shape"
)

// TargetSize is the edge length of every image stored in a cursor container.
const TargetSize = 32

// Compose draws kind on a fully transparent size x size canvas and returns
// the result with straight alpha.
func Compose(kind shape.Kind, colors palette.Palette, size int) (*image.NRGBA, error) {
	if size <= 0 {
		return nil, cursorerr.New(cursorerr.KindResample, "invalid working size %d", size)
	}
	dc := gg.NewContext(size, size)
	defer dc.Close()

	if err := shape.Draw(dc, kind, colors, size); err != nil {
		return nil, cursorerr.Wrap(cursorerr.KindRender, err, "compose %s", kind)
	}

	out := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.Draw(out, out.Bounds(), dc.ResizeTarget(), image.Point{}, draw.Src)
	return out, nil
}

// Normalize resamples img to a target x target square. Images already at the
// target size are returned unchanged.
//
// Filtering runs on premultiplied values with a Catmull-Rom kernel, so thin
// strokes keep their weight and transparent areas stay transparent.
func Normalize(img image.Image, target int) (*image.NRGBA, error) {
	if target <= 0 {
		return nil, cursorerr.New(cursorerr.KindResample, "invalid target size %d", target)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, cursorerr.New(cursorerr.KindResample, "can not resample empty %dx%d image", b.Dx(), b.Dy())
	}
	if n, ok := img.(*image.NRGBA); ok && b.Dx() == target && b.Dy() == target {
		return n, nil
	}

	scaled := image.NewRGBA(image.Rect(0, 0, target, target))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), img, b, xdraw.Src, nil)

	out := image.NewNRGBA(scaled.Bounds())
	draw.Draw(out, out.Bounds(), scaled, image.Point{}, draw.Src)
	return out, nil
}

// Cursor composes kind at workingSize and normalizes it to TargetSize.
func Cursor(kind shape.Kind, colors palette.Palette, workingSize int) (*image.NRGBA, error) {
	img, err := Compose(kind, colors, workingSize)
	if err != nil {
		return nil, err
	}
	return Normalize(img, TargetSize)
}
