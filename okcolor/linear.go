package okcolor

import (
	"image/color"
	"math"
)

// LinearRGBA is a colour in linear-light sRGB, channels nominally in [0, 1].
// Values outside that range are out of gamut and are clamped on output.
type LinearRGBA struct {
	R float64
	G float64
	B float64
	A uint16
}

var LinearRGBAModel = color.ModelFunc(linearRGBAConvert)

func linearRGBAConvert(c color.Color) color.Color {
	if lc, ok := c.(LinearRGBA); ok {
		return lc
	}

	// Work on straight alpha so that translucent colours keep their hue.
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return LinearRGBA{
		R: toLinear(float64(n.R) / 0xffff),
		G: toLinear(float64(n.G) / 0xffff),
		B: toLinear(float64(n.B) / 0xffff),
		A: n.A,
	}
}

func (lc LinearRGBA) RGBA() (uint32, uint32, uint32, uint32) {
	return color.NRGBA64{
		R: toSRGB16(lc.R),
		G: toSRGB16(lc.G),
		B: toSRGB16(lc.B),
		A: lc.A,
	}.RGBA()
}

func toSRGB16(x float64) uint16 {
	return uint16(math.Round(fromLinear(clamp01(x)) * 0xffff))
}

func toLinear(x float64) float64 {
	if x >= 0.04045 {
		return math.Pow((x+0.055)/1.055, 2.4)
	}
	return x / 12.92
}

func fromLinear(x float64) float64 {
	if x >= 0.0031308 {
		return 1.055*math.Pow(x, 1/2.4) - 0.055
	}
	return x * 12.92
}

func clamp01(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	}
	return x
}
