package palette

import (
	"image"
	"image/color"
	"math"

	"facegrid/okcolor"

	"golang.org/x/image/draw"
)

// Lab is a palette converted to OKLab, for perceptual nearest-colour lookup.
type Lab []okcolor.Lab

func NewLab(pal color.Palette) Lab {
	p := make(Lab, len(pal))
	for i, col := range pal {
		p[i] = okcolor.LabModel.Convert(col).(okcolor.Lab)
	}
	return p
}

// Index returns the index of the palette entry closest to c in OKLab.
func (p Lab) Index(c color.Color) int {
	lc := okcolor.LabModel.Convert(c).(okcolor.Lab)

	ret, best := 0, math.MaxFloat64
	for i, v := range p {
		d := lc.Distance(v)
		if d == 0 {
			return i
		}
		if d < best {
			ret, best = i, d
		}
	}
	return ret
}

// Quantize maps img onto pal. Without dithering each pixel takes its
// perceptually nearest colour; with dithering Floyd-Steinberg error diffusion
// is applied in RGB.
func Quantize(img image.Image, pal color.Palette, dither bool) *image.Paletted {
	sr := img.Bounds()
	dr := image.Rect(0, 0, sr.Dx(), sr.Dy())
	dest := image.NewPaletted(dr, pal)

	if dither {
		draw.FloydSteinberg.Draw(dest, dr, img, sr.Min)
		return dest
	}

	lab := NewLab(pal)
	cache := make(map[color.RGBA64]uint8)
	for y := range dr.Dy() {
		for x := range dr.Dx() {
			c := color.RGBA64Model.Convert(img.At(sr.Min.X+x, sr.Min.Y+y)).(color.RGBA64)
			idx, ok := cache[c]
			if !ok {
				idx = uint8(lab.Index(c))
				cache[c] = idx
			}
			dest.SetColorIndex(x, y, idx)
		}
	}
	return dest
}
