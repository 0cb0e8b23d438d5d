// Package palette resolves cursor style identifiers to fixed color schemes.
package palette

import (
	"image/color"
	"slices"

	"github.com/rook-computer/cursorgen/internal/cursorerr"
)

// Style identifies one of the built-in cursor color schemes.
type Style string

const (
	ModernBlack Style = "modern_black"
	ModernWhite Style = "modern_white"
	NeonBlue    Style = "neon_blue"
	NeonPink    Style = "neon_pink"
	Rainbow     Style = "rainbow"
	Minimal     Style = "minimal"
	Large       Style = "large"
	Custom      Style = "custom"

	// Default is the style used when none is given, and the fallback style
	// under the FallbackDefault policy.
	Default = ModernBlack
)

// largeWorkingSize is the working canvas the large style always draws on.
const largeWorkingSize = 64

// Palette holds the four color slots of a style.
// Shadow and Glow are optional; a nil slot means the layer is not drawn.
// Colors are straight (non-premultiplied) alpha.
type Palette struct {
	Primary   color.NRGBA
	Secondary color.NRGBA
	Shadow    *color.NRGBA
	Glow      *color.NRGBA
}

// HasShadow reports whether the shadow layer should be drawn.
func (p Palette) HasShadow() bool { return p.Shadow != nil }

func rgba(r, g, b, a uint8) color.NRGBA { return color.NRGBA{R: r, G: g, B: b, A: a} }

func opt(r, g, b, a uint8) *color.NRGBA {
	c := rgba(r, g, b, a)
	return &c
}

var (
	black = rgba(0, 0, 0, 255)
	white = rgba(255, 255, 255, 255)
)

// schemes is built once and never mutated; Resolve hands out copies.
var schemes = map[Style]Palette{
	ModernBlack: {Primary: black, Secondary: white, Shadow: opt(0, 0, 0, 128)},
	ModernWhite: {Primary: white, Secondary: black, Shadow: opt(0, 0, 0, 200)},
	NeonBlue:    {Primary: rgba(0, 150, 255, 255), Secondary: white, Shadow: opt(0, 0, 0, 128), Glow: opt(0, 200, 255, 128)},
	NeonPink:    {Primary: rgba(255, 0, 150, 255), Secondary: white, Shadow: opt(0, 0, 0, 128), Glow: opt(255, 100, 200, 128)},
	Rainbow:     {Primary: rgba(255, 0, 0, 255), Secondary: white, Shadow: opt(0, 0, 0, 128), Glow: opt(128, 0, 255, 128)},
	Minimal:     {Primary: black, Secondary: white},
	Large:       {Primary: black, Secondary: white, Shadow: opt(0, 0, 0, 128)},
	Custom:      {Primary: black, Secondary: white, Shadow: opt(0, 0, 0, 128)},
}

// Styles returns every built-in style in a stable order.
func Styles() []Style {
	out := make([]Style, 0, len(schemes))
	for s := range schemes {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// Valid reports whether s is a built-in style.
func (s Style) Valid() bool {
	_, ok := schemes[s]
	return ok
}

// WorkingSize returns the canvas size a style draws on for the requested size.
// The large style always draws at 64px regardless of the request.
func (s Style) WorkingSize(requested int) int {
	if s == Large {
		return largeWorkingSize
	}
	return requested
}

// Policy selects what Resolve does with an unknown style.
type Policy int

const (
	// Strict rejects unknown styles with an InvalidStyle error.
	Strict Policy = iota
	// FallbackDefault silently resolves unknown styles to the Default palette.
	FallbackDefault
)

// Resolver maps styles to palettes under a Policy. The zero value is strict.
type Resolver struct {
	Policy Policy
}

// Resolve returns the palette for style. The returned palette owns copies of
// the optional slots, so callers can not alter the built-in schemes.
func (r Resolver) Resolve(style Style) (Palette, error) {
	p, ok := schemes[style]
	if !ok {
		if r.Policy != FallbackDefault {
			return Palette{}, cursorerr.New(cursorerr.KindInvalidStyle, "unknown style %q", string(style))
		}
		p = schemes[Default]
	}
	return p.clone(), nil
}

func (p Palette) clone() Palette {
	out := Palette{Primary: p.Primary, Secondary: p.Secondary}
	if p.Shadow != nil {
		c := *p.Shadow
		out.Shadow = &c
	}
	if p.Glow != nil {
		c := *p.Glow
		out.Glow = &c
	}
	return out
}
