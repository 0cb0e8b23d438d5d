package render

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/golang/freetype/truetype"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"

	"github.com/rook-computer/cursorgen/internal/render/layout"
)

// Tile is one cursor on a contact sheet.
type Tile struct {
	Label   string
	Image   image.Image
	Hotspot image.Point // in Image pixel coordinates
}

var (
	ttOnce sync.Once
	ttFont *truetype.Font
)

func labelFace(points float64) font.Face {
	if points <= 0 {
		return basicfont.Face7x13
	}
	ttOnce.Do(func() {
		if f, err := truetype.Parse(goregular.TTF); err == nil {
			ttFont = f
		}
	})
	if ttFont == nil {
		return basicfont.Face7x13
	}
	return truetype.NewFace(ttFont, &truetype.Options{Size: points, DPI: 72, Hinting: font.HintingFull})
}

// ContactSheet draws every tile magnified on a checkerboard, marks its
// hotspot and writes its label underneath.
func ContactSheet(tiles []Tile, cfg PreviewConfig) *image.RGBA {
	if cfg.Columns <= 0 {
		cfg.Columns = 1
	}
	face := labelFace(cfg.FontSize)
	lineHeight := face.Metrics().Height.Ceil()

	cellW := cfg.CellSize + 2*cfg.Padding
	cellH := cfg.CellSize + 2*cfg.Padding + lineHeight
	cols := min(cfg.Columns, max(len(tiles), 1))
	rows := max(layout.Rows(len(tiles), cols), 1)

	sheet := image.NewRGBA(image.Rect(0, 0, cols*cellW, rows*cellH))
	draw.Draw(sheet, sheet.Bounds(), &image.Uniform{C: cfg.Background}, image.Point{}, draw.Src)

	for i, cell := range layout.Grid(sheet.Bounds(), cols, len(tiles)) {
		tile := tiles[i]
		inner := layout.Inset(image.Rect(cell.Min.X, cell.Min.Y, cell.Max.X, cell.Max.Y-lineHeight), cfg.Padding)
		square := layout.FitSquare(inner)
		drawChecker(sheet, square, cfg.CheckerA, cfg.CheckerB, max(square.Dx()/8, 1))
		if tile.Image != nil {
			src := tile.Image.Bounds()
			// Magnify without smoothing so individual cursor pixels stay visible.
			xdraw.NearestNeighbor.Scale(sheet, square, tile.Image, src, xdraw.Over, nil)
			if src.Dx() > 0 && src.Dy() > 0 {
				hx := square.Min.X + (tile.Hotspot.X*square.Dx()+square.Dx()/2)/src.Dx()
				hy := square.Min.Y + (tile.Hotspot.Y*square.Dy()+square.Dy()/2)/src.Dy()
				drawMarker(sheet, image.Pt(hx, hy), cfg.Marker, max(square.Dx()/16, 2))
			}
		}
		drawLabel(sheet, tile.Label, cell, cell.Max.Y-lineHeight/4, cfg.Foreground, face)
	}
	return sheet
}

func drawChecker(dst draw.Image, rect image.Rectangle, a, b color.Color, step int) {
	for y := rect.Min.Y; y < rect.Max.Y; y += step {
		for x := rect.Min.X; x < rect.Max.X; x += step {
			c := a
			if ((x-rect.Min.X)/step+(y-rect.Min.Y)/step)%2 == 1 {
				c = b
			}
			r := image.Rect(x, y, min(x+step, rect.Max.X), min(y+step, rect.Max.Y))
			draw.Draw(dst, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
		}
	}
}

func drawMarker(dst draw.Image, at image.Point, c color.Color, arm int) {
	src := &image.Uniform{C: c}
	draw.Draw(dst, image.Rect(at.X-arm, at.Y, at.X+arm+1, at.Y+1), src, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(at.X, at.Y-arm, at.X+1, at.Y+arm+1), src, image.Point{}, draw.Over)
}

// drawLabel centers text horizontally in cell on the given baseline.
func drawLabel(dst draw.Image, text string, cell image.Rectangle, baselineY int, fg color.Color, face font.Face) {
	drawer := &font.Drawer{Dst: dst, Src: &image.Uniform{C: fg}, Face: face}
	textWidth := drawer.MeasureString(text).Ceil()
	xPos := cell.Min.X + (cell.Dx()-textWidth)/2
	drawer.Dot = fixed.P(xPos, baselineY)
	drawer.DrawString(text)
}
