package grid

import "image"

// Layout places Count cells of size Cell row-major on a grid of Columns by
// Rows cells.
type Layout struct {
	Count   int
	Columns int
	Rows    int
	Cell    image.Point
}

// NewLayout lays out count cells. A non-positive columns value picks the
// smallest column count that makes the grid as close to square as possible.
func NewLayout(count, columns int, cell image.Point) Layout {
	if columns <= 0 {
		columns = squareColumns(count)
	}
	return Layout{
		Count:   count,
		Columns: columns,
		Rows:    (count + columns - 1) / columns,
		Cell:    cell,
	}
}

// squareColumns returns ceil(sqrt(n)), at least 1.
func squareColumns(n int) int {
	c := 1
	for c*c < n {
		c++
	}
	return c
}

// maxCanvasPixels caps the composed image at 4 GiB of RGBA pixels.
const maxCanvasPixels = 1 << 30

// fits reports whether the whole grid holds at most limit pixels. The check
// divides instead of multiplying so that huge column counts cannot overflow.
func (l Layout) fits(limit int) bool {
	if l.Cell.X <= 0 || l.Cell.Y <= 0 || l.Columns <= 0 || l.Rows <= 0 {
		return true
	}
	if l.Columns > limit/l.Cell.X || l.Rows > limit/l.Cell.Y {
		return false
	}
	width, height := l.Columns*l.Cell.X, l.Rows*l.Cell.Y
	return width <= limit/height
}

// Bounds is the size of the whole grid.
func (l Layout) Bounds() image.Rectangle {
	return image.Rect(0, 0, l.Columns*l.Cell.X, l.Rows*l.Cell.Y)
}

// CellRect is the rectangle of the i-th cell: row i/Columns, column i%Columns.
func (l Layout) CellRect(i int) image.Rectangle {
	p := image.Pt((i%l.Columns)*l.Cell.X, (i/l.Columns)*l.Cell.Y)
	return image.Rectangle{Min: p, Max: p.Add(l.Cell)}
}
