package shape

import (
	"image/color"
	"math"

	"github.com/gogpu/gg"
)

type point struct{ x, y int }

// pen wraps a drawing context and keeps the first rasterization error, so the
// templates can issue a run of draw calls and check once at the end.
type pen struct {
	dc  *gg.Context
	err error
}

func (p *pen) color(c color.NRGBA) {
	p.dc.SetFillBrush(gg.Solid(gg.RGBA{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}))
}

func (p *pen) fill() {
	if err := p.dc.Fill(); err != nil && p.err == nil {
		p.err = err
	}
}

func (p *pen) stroke(width float64) {
	p.dc.SetLineWidth(width)
	if err := p.dc.Stroke(); err != nil && p.err == nil {
		p.err = err
	}
}

// center maps an integer pixel coordinate to the center of that pixel.
func center(v int) float64 { return float64(v) + 0.5 }

func (p *pen) path(pts []point) {
	p.dc.MoveTo(center(pts[0].x), center(pts[0].y))
	for _, pt := range pts[1:] {
		p.dc.LineTo(center(pt.x), center(pt.y))
	}
	p.dc.ClosePath()
}

// polygon fills pts with fill, then strokes the outline with outline when
// width > 0.
func (p *pen) polygon(pts []point, fill color.NRGBA, outline color.NRGBA, width float64) {
	p.color(fill)
	p.path(pts)
	p.fill()
	if width <= 0 {
		return
	}
	p.color(outline)
	p.dc.SetLineJoin(gg.LineJoinMiter)
	p.path(pts)
	p.stroke(width)
}

// line strokes a segment whose end pixels are both covered. The segment is
// lengthened by half a pixel at each end and drawn with butt caps.
func (p *pen) line(c color.NRGBA, width float64, x0, y0, x1, y1 int) {
	ax, ay := center(x0), center(y0)
	bx, by := center(x1), center(y1)
	dx, dy := bx-ax, by-ay
	if n := math.Hypot(dx, dy); n > 0 {
		dx, dy = dx/n*0.5, dy/n*0.5
	}
	p.color(c)
	p.dc.SetLineCap(gg.LineCapButt)
	p.dc.MoveTo(ax-dx, ay-dy)
	p.dc.LineTo(bx+dx, by+dy)
	p.stroke(width)
}

// box is an inclusive pixel rectangle [x0, x1] x [y0, y1].
type box struct{ x0, y0, x1, y1 int }

func (b box) offset(d int) box { return box{b.x0 + d, b.y0 + d, b.x1 + d, b.y1 + d} }

func (b box) ellipse() (cx, cy, rx, ry float64) {
	cx = float64(b.x0+b.x1+1) / 2
	cy = float64(b.y0+b.y1+1) / 2
	rx = float64(b.x1-b.x0+1) / 2
	ry = float64(b.y1-b.y0+1) / 2
	return cx, cy, rx, ry
}

// fillEllipse fills the ellipse inscribed in b.
func (p *pen) fillEllipse(b box, c color.NRGBA) {
	cx, cy, rx, ry := b.ellipse()
	p.color(c)
	p.dc.DrawEllipse(cx, cy, rx, ry)
	p.fill()
}

// ring strokes the ellipse inscribed in b with a band of the given width that
// stays inside b.
func (p *pen) ring(b box, c color.NRGBA, width float64) {
	cx, cy, rx, ry := b.ellipse()
	p.color(c)
	p.dc.DrawEllipse(cx, cy, rx-width/2, ry-width/2)
	p.stroke(width)
}

// rect fills b with fill and draws a one pixel band of outline inside its edge.
func (p *pen) rect(b box, fill, outline color.NRGBA) {
	x, y := float64(b.x0), float64(b.y0)
	w, h := float64(b.x1-b.x0+1), float64(b.y1-b.y0+1)
	p.color(fill)
	p.dc.DrawRectangle(x, y, w, h)
	p.fill()
	p.color(outline)
	p.dc.DrawRectangle(x+0.5, y+0.5, w-1, h-1)
	p.stroke(1)
}
