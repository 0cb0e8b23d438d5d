package shape

import (
	"fmt"

	"github.com/gogpu/gg"

	"github.com/rook-computer/cursorgen/internal/palette"
)

type drawFunc func(p *pen, colors palette.Palette, size int)

// drawers has one rule per Kind; TestEveryKindHasDrawer keeps it exhaustive.
var drawers = [numKinds]drawFunc{
	Arrow:            drawArrow,
	Hand:             drawHand,
	Cross:            drawCross,
	TextBeam:         drawTextBeam,
	ResizeVertical:   drawResizeVertical,
	ResizeHorizontal: drawResizeHorizontal,
	UnavailableRing:  drawUnavailable,
}

// Draw renders kind onto dc, which must be a size x size canvas.
//
// Layers are drawn in a fixed order: the shadow (when the palette has one),
// the wide secondary outline, then the narrow primary fill. The glow slot is
// reserved and never drawn.
func Draw(dc *gg.Context, kind Kind, colors palette.Palette, size int) error {
	if !kind.Valid() {
		return fmt.Errorf("shape: unknown kind %d", int(kind))
	}
	if size <= 0 {
		return fmt.Errorf("shape: invalid canvas size %d", size)
	}
	p := &pen{dc: dc}
	drawers[kind](p, colors, size)
	if p.err != nil {
		return fmt.Errorf("shape: draw %s: %w", kind, p.err)
	}
	return nil
}

func drawArrow(p *pen, colors palette.Palette, size int) {
	if colors.Shadow != nil {
		p.polygon([]point{{2, 2}, {2, size - 6}, {size/3 + 2, size/2 + 2}, {size/2 + 2, size - 2}}, *colors.Shadow, *colors.Shadow, 0)
	}
	p.polygon([]point{{0, 0}, {0, size - 8}, {size / 3, size / 2}, {size / 2, size - 4}}, colors.Secondary, colors.Secondary, 2)
	p.polygon([]point{{2, 2}, {2, size - 10}, {size / 3, size/2 - 2}, {size/2 - 2, size - 6}}, colors.Primary, colors.Primary, 0)
}

func drawHand(p *pen, colors palette.Palette, size int) {
	palm := box{size / 4, size / 4, size * 3 / 4, size * 3 / 4}
	if colors.Shadow != nil {
		p.fillEllipse(palm.offset(2), *colors.Shadow)
	}
	p.fillEllipse(palm, colors.Secondary)
	p.ring(palm, colors.Secondary, 2)
	p.fillEllipse(box{palm.x0 + 2, palm.y0 + 2, palm.x1 - 2, palm.y1 - 2}, colors.Primary)

	// Finger.
	p.rect(box{size/2 - 2, size / 8, size/2 + 2, size / 2}, colors.Primary, colors.Secondary)
}

func drawCross(p *pen, colors palette.Palette, size int) {
	c := size / 2
	arm := size / 3
	if colors.Shadow != nil {
		p.line(*colors.Shadow, 3, c+1, c-arm+1, c+1, c+arm+1)
		p.line(*colors.Shadow, 3, c-arm+1, c+1, c+arm+1, c+1)
	}
	p.line(colors.Secondary, 3, c, c-arm, c, c+arm)
	p.line(colors.Secondary, 3, c-arm, c, c+arm, c)
	p.line(colors.Primary, 1, c, c-arm, c, c+arm)
	p.line(colors.Primary, 1, c-arm, c, c+arm, c)
}

func drawTextBeam(p *pen, colors palette.Palette, size int) {
	cx := size / 2
	top := size / 4
	bottom := size * 3 / 4
	if colors.Shadow != nil {
		p.line(*colors.Shadow, 3, cx+1, top+1, cx+1, bottom+1)
		p.line(*colors.Shadow, 2, cx-4+1, top+1, cx+4+1, top+1)
		p.line(*colors.Shadow, 2, cx-4+1, bottom+1, cx+4+1, bottom+1)
	}
	p.line(colors.Secondary, 3, cx, top, cx, bottom)
	p.line(colors.Secondary, 2, cx-4, top, cx+4, top)
	p.line(colors.Secondary, 2, cx-4, bottom, cx+4, bottom)
	p.line(colors.Primary, 1, cx, top, cx, bottom)
}

func drawResizeVertical(p *pen, colors palette.Palette, size int) {
	cx := size / 2
	p.line(colors.Secondary, 3, cx, 4, cx, size-4)
	p.line(colors.Primary, 1, cx, 4, cx, size-4)

	p.polygon([]point{{cx, 2}, {cx - 4, 8}, {cx + 4, 8}}, colors.Primary, colors.Secondary, 1)
	p.polygon([]point{{cx, size - 2}, {cx - 4, size - 8}, {cx + 4, size - 8}}, colors.Primary, colors.Secondary, 1)
}

func drawResizeHorizontal(p *pen, colors palette.Palette, size int) {
	cy := size / 2
	p.line(colors.Secondary, 3, 4, cy, size-4, cy)
	p.line(colors.Primary, 1, 4, cy, size-4, cy)

	p.polygon([]point{{2, cy}, {8, cy - 4}, {8, cy + 4}}, colors.Primary, colors.Secondary, 1)
	p.polygon([]point{{size - 2, cy}, {size - 8, cy - 4}, {size - 8, cy + 4}}, colors.Primary, colors.Secondary, 1)
}

func drawUnavailable(p *pen, colors palette.Palette, size int) {
	c := size / 2
	r := size / 3
	circle := box{c - r, c - r, c + r, c + r}
	if colors.Shadow != nil {
		p.ring(circle.offset(2), *colors.Shadow, 3)
	}
	p.ring(circle, colors.Secondary, 3)
	p.ring(circle, colors.Primary, 1)

	// Slash.
	p.line(colors.Secondary, 3, c-r+4, c-r+4, c+r-4, c+r-4)
	p.line(colors.Primary, 1, c-r+4, c-r+4, c+r-4, c+r-4)
}
