package grid

import (
	"image"
	"image/color"
	"path/filepath"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const labelPadding = 2

var (
	labelStrip = image.NewUniform(color.NRGBA{A: 0xa0})
	labelInk   = image.NewUniform(color.White)
)

// drawLabel captions the bottom of cell with the base name of path. Drawing is
// clipped to the cell.
func drawLabel(canvas *image.RGBA, cell image.Rectangle, path string) {
	face := basicfont.Face7x13
	dst := canvas.SubImage(cell).(*image.RGBA)

	height := face.Height + 2*labelPadding
	strip := image.Rect(cell.Min.X, max(cell.Min.Y, cell.Max.Y-height), cell.Max.X, cell.Max.Y)
	draw.Draw(dst, strip, labelStrip, image.Point{}, draw.Over)

	d := font.Drawer{
		Dst:  dst,
		Src:  labelInk,
		Face: face,
		Dot:  fixed.P(cell.Min.X+labelPadding, cell.Max.Y-labelPadding-face.Descent),
	}
	d.DrawString(fitText(d, filepath.Base(path), fixed.I(cell.Dx()-2*labelPadding)))
}

// fitText shortens s with a trailing "..." until it fits in width.
func fitText(d font.Drawer, s string, width fixed.Int26_6) string {
	if d.MeasureString(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 {
		r = r[:len(r)-1]
		if t := string(r) + "..."; d.MeasureString(t) <= width {
			return t
		}
	}
	return ""
}
