package generate

import (
	"image"
	"path/filepath"

	"github.com/rook-computer/cursorgen/internal/curfile"
	"github.com/rook-computer/cursorgen/internal/cursorerr"
	"github.com/rook-computer/cursorgen/internal/render"
)

// Tiles decodes every generated container back into a preview tile, so a
// contact sheet shows exactly the bytes that were written. Failed entries are
// skipped.
func (b *Batch) Tiles() ([]render.Tile, error) {
	var tiles []render.Tile
	for _, r := range b.Results {
		if r.Err != nil {
			continue
		}
		f, err := curfile.Decode(r.Data)
		if err != nil {
			return nil, cursorerr.WithEntry(err, cursorerr.KindDecode, r.Entry.File)
		}
		img, err := f.Image()
		if err != nil {
			return nil, cursorerr.WithEntry(err, cursorerr.KindDecode, r.Entry.File)
		}
		name := r.Entry.File
		tiles = append(tiles, render.Tile{
			Label:   name[:len(name)-len(filepath.Ext(name))],
			Image:   img,
			Hotspot: image.Pt(int(f.Hotspot.X), int(f.Hotspot.Y)),
		})
	}
	return tiles, nil
}
