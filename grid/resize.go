package grid

import (
	"fmt"
	"image"
	"log/slog"
	"math"

	"golang.org/x/image/draw"
)

// fitRects works out which part of src to sample and where inside cell to
// draw it for the given fit mode. dr is always within cell.
func fitRects(src, cell image.Rectangle, mode FitMode) (sr, dr image.Rectangle) {
	sr, dr = src, cell

	srcWidth := float64(src.Dx())
	srcHeight := float64(src.Dy())
	destWidth := float64(cell.Dx())
	destHeight := float64(cell.Dy())

	srcAR := srcWidth / srcHeight
	destAR := destWidth / destHeight

	switch mode {
	case FitCover:
		if srcAR < destAR {
			h := roundAtLeastOne(srcWidth / destAR)
			sr.Min.Y += (src.Dy() - h) / 2
			sr.Max.Y = sr.Min.Y + h
		} else if srcAR > destAR {
			w := roundAtLeastOne(srcHeight * destAR)
			sr.Min.X += (src.Dx() - w) / 2
			sr.Max.X = sr.Min.X + w
		}
	case FitContain:
		if srcAR < destAR {
			w := roundAtLeastOne(destHeight * srcAR)
			dr.Min.X += (cell.Dx() - w) / 2
			dr.Max.X = dr.Min.X + w
		} else if srcAR > destAR {
			h := roundAtLeastOne(destWidth / srcAR)
			dr.Min.Y += (cell.Dy() - h) / 2
			dr.Max.Y = dr.Min.Y + h
		}
	}

	return sr, dr
}

func roundAtLeastOne(x float64) int {
	return max(1, int(math.Round(x)))
}

// drawCell scales img into cell of dest. Only pixels inside cell are written,
// so cells can be drawn concurrently on the same canvas.
func drawCell(logger *slog.Logger, dest draw.Image, cell image.Rectangle, img image.Image, mode FitMode, filter draw.Interpolator) error {
	if img.Bounds().Empty() {
		return fmt.Errorf("image has no pixels")
	}

	sr, dr := fitRects(img.Bounds(), cell, mode)
	logger.Debug("resizing",
		"from_width", sr.Dx(), "from_height", sr.Dy(),
		"width", dr.Dx(), "height", dr.Dy())

	filter.Scale(dest, dr, img, sr, draw.Over, nil)
	return nil
}
