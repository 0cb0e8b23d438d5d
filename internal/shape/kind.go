// Package shape draws the fixed catalog of cursor glyphs.
//
// Every template is expressed in fractions of the canvas size, so one routine
// serves any working size. Coordinates follow the raster convention where
// integer (x, y) names a pixel; the pen maps them to pixel centers.
package shape

import "fmt"

// Kind is the closed set of drawable cursor shapes.
type Kind int

const (
	Arrow Kind = iota
	Hand
	Cross
	TextBeam
	ResizeVertical
	ResizeHorizontal
	UnavailableRing

	numKinds
)

var kindNames = [numKinds]string{
	Arrow:            "arrow",
	Hand:             "hand",
	Cross:            "cross",
	TextBeam:         "text_beam",
	ResizeVertical:   "resize_vertical",
	ResizeHorizontal: "resize_horizontal",
	UnavailableRing:  "unavailable_ring",
}

// Kinds returns every shape kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		out = append(out, k)
	}
	return out
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool { return k >= 0 && k < numKinds }

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}
