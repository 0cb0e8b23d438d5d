// Package catalog holds the fixed table of cursors a style is generated for.
package catalog

import (
	"github.com/rook-computer/cursorgen/internal/curfile"
	"github.com/rook-computer/cursorgen/internal/shape"
)

// CursorType names the logical purpose of a cursor.
type CursorType string

const (
	TypeArrow            CursorType = "arrow"
	TypeHelp             CursorType = "help"
	TypeWorking          CursorType = "working"
	TypeBusy             CursorType = "busy"
	TypePrecision        CursorType = "precision"
	TypeText             CursorType = "text"
	TypeHandwriting      CursorType = "handwriting"
	TypeUnavailable      CursorType = "unavailable"
	TypeResizeVertical   CursorType = "resize_vertical"
	TypeResizeHorizontal CursorType = "resize_horizontal"
	TypeResizeDiag1      CursorType = "resize_diag1"
	TypeResizeDiag2      CursorType = "resize_diag2"
	TypeMove             CursorType = "move"
	TypeAlternate        CursorType = "alternate"
	TypeLink             CursorType = "link"
	TypePerson           CursorType = "person"
	TypePin              CursorType = "pin"
)

// Anchor places a hotspot relative to the output image.
type Anchor int

const (
	TopLeft Anchor = iota
	Center
)

// Entry is one row of the catalog.
type Entry struct {
	File   string     // output file name
	Type   CursorType // logical purpose
	Role   string     // pointer-scheme slot the file is installed under
	Shape  shape.Kind
	Anchor Anchor
}

// Hotspot resolves the entry's anchor against a target x target image.
func (e Entry) Hotspot(target int) curfile.Hotspot {
	if e.Anchor == Center && target > 0 {
		c := uint16(target / 2)
		return curfile.Hotspot{X: c, Y: c}
	}
	return curfile.Hotspot{}
}

// Catalog is an immutable, ordered list of entries.
type Catalog struct {
	entries []Entry
}

// New builds a catalog from entries, copying them.
func New(entries []Entry) Catalog {
	return Catalog{entries: append([]Entry(nil), entries...)}
}

// Entries returns a copy of the catalog rows in generation order.
func (c Catalog) Entries() []Entry { return append([]Entry(nil), c.entries...) }

// Len returns the number of entries.
func (c Catalog) Len() int { return len(c.entries) }

// Lookup returns the entry writing file.
func (c Catalog) Lookup(file string) (Entry, bool) {
	for _, e := range c.entries {
		if e.File == file {
			return e, true
		}
	}
	return Entry{}, false
}

// Default returns the built-in catalog. Cursor types without a dedicated
// glyph (busy, handwriting, pin) are drawn as arrows; working and busy are
// animated slots and get a static cursor.
func Default() Catalog {
	return New([]Entry{
		{File: "arrow.cur", Type: TypeArrow, Role: "Arrow", Shape: shape.Arrow, Anchor: TopLeft},
		{File: "help.cur", Type: TypeHelp, Role: "Help", Shape: shape.Arrow, Anchor: TopLeft},
		{File: "working.cur", Type: TypeWorking, Role: "AppStarting", Shape: shape.Arrow, Anchor: TopLeft},
		{File: "busy.cur", Type: TypeBusy, Role: "Wait", Shape: shape.Arrow, Anchor: Center},
		{File: "cross.cur", Type: TypePrecision, Role: "Crosshair", Shape: shape.Cross, Anchor: Center},
		{File: "beam.cur", Type: TypeText, Role: "IBeam", Shape: shape.TextBeam, Anchor: Center},
		{File: "handwriting.cur", Type: TypeHandwriting, Role: "NWPen", Shape: shape.Arrow, Anchor: TopLeft},
		{File: "no.cur", Type: TypeUnavailable, Role: "No", Shape: shape.UnavailableRing, Anchor: Center},
		{File: "size_ns.cur", Type: TypeResizeVertical, Role: "SizeNS", Shape: shape.ResizeVertical, Anchor: Center},
		{File: "size_we.cur", Type: TypeResizeHorizontal, Role: "SizeWE", Shape: shape.ResizeHorizontal, Anchor: Center},
		{File: "size_nwse.cur", Type: TypeResizeDiag1, Role: "SizeNWSE", Shape: shape.Cross, Anchor: Center},
		{File: "size_nesw.cur", Type: TypeResizeDiag2, Role: "SizeNESW", Shape: shape.Cross, Anchor: Center},
		{File: "move.cur", Type: TypeMove, Role: "SizeAll", Shape: shape.Cross, Anchor: Center},
		{File: "alternate.cur", Type: TypeAlternate, Role: "UpArrow", Shape: shape.Arrow, Anchor: TopLeft},
		{File: "link.cur", Type: TypeLink, Role: "Hand", Shape: shape.Hand, Anchor: TopLeft},
		{File: "person.cur", Type: TypePerson, Role: "Person", Shape: shape.Hand, Anchor: Center},
		{File: "pin.cur", Type: TypePin, Role: "Pin", Shape: shape.Arrow, Anchor: TopLeft},
	})
}
