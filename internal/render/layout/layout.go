package layout

import "image"

// Inset shrinks rect by paddingPx on all sides.
func Inset(rect image.Rectangle, paddingPx int) image.Rectangle {
	if paddingPx <= 0 {
		return rect
	}
	out := image.Rect(rect.Min.X+paddingPx, rect.Min.Y+paddingPx, rect.Max.X-paddingPx, rect.Max.Y-paddingPx)
	return Normalize(out)
}

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// Rows returns how many rows a grid of cols columns needs for count cells.
func Rows(count, cols int) int {
	if count <= 0 || cols <= 0 {
		return 0
	}
	return (count + cols - 1) / cols
}

// Grid splits rect into count cells of equal size, cols per row, filled row
// by row. Cells at the right and bottom edge absorb any remainder pixels.
func Grid(rect image.Rectangle, cols, count int) []image.Rectangle {
	rows := Rows(count, cols)
	if rows == 0 {
		return nil
	}
	rect = Normalize(rect)
	cellW := rect.Dx() / cols
	cellH := rect.Dy() / rows
	cells := make([]image.Rectangle, 0, count)
	for i := 0; i < count; i++ {
		col, row := i%cols, i/cols
		cell := image.Rect(
			rect.Min.X+col*cellW, rect.Min.Y+row*cellH,
			rect.Min.X+(col+1)*cellW, rect.Min.Y+(row+1)*cellH,
		)
		if col == cols-1 {
			cell.Max.X = rect.Max.X
		}
		if row == rows-1 {
			cell.Max.Y = rect.Max.Y
		}
		cells = append(cells, cell)
	}
	return cells
}

// CenterIn returns a rectangle of size (widthPx,heightPx) centered in rect,
// clamped to rect's size.
func CenterIn(rect image.Rectangle, widthPx, heightPx int) image.Rectangle {
	rect = Normalize(rect)
	widthPx = max(0, min(widthPx, rect.Dx()))
	heightPx = max(0, min(heightPx, rect.Dy()))
	x := rect.Min.X + (rect.Dx()-widthPx)/2
	y := rect.Min.Y + (rect.Dy()-heightPx)/2
	return image.Rect(x, y, x+widthPx, y+heightPx)
}

// FitSquare returns the largest square that fits into rect, centered.
func FitSquare(rect image.Rectangle) image.Rectangle {
	rect = Normalize(rect)
	size := min(rect.Dx(), rect.Dy())
	return CenterIn(rect, size, size)
}
