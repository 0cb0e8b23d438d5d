package render

import "image/color"

// PreviewConfig controls how ContactSheet lays out generated cursors.
type PreviewConfig struct {
	Columns  int
	CellSize int // edge length of one cursor cell in pixels, label excluded
	Padding  int

	Foreground color.RGBA // label text
	Background color.RGBA
	CheckerA   color.RGBA
	CheckerB   color.RGBA
	Marker     color.RGBA // hotspot marker

	FontSize float64 // label size in points; 0 falls back to basicfont
}

// DefaultPreviewConfig returns the preview layout used by the CLI.
func DefaultPreviewConfig() PreviewConfig {
	return PreviewConfig{
		Columns:    6,
		CellSize:   96,
		Padding:    12,
		Foreground: color.RGBA{R: 0x90, G: 0x00, B: 0xFF, A: 0xFF}, // #9000ff
		Background: color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		CheckerA:   color.RGBA{R: 0xCC, G: 0xCC, B: 0xCC, A: 0xFF},
		CheckerB:   color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xFF},
		Marker:     color.RGBA{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF},
		FontSize:   12,
	}
}
