// Package palette loads colour palettes and reduces images to them.
package palette

import (
	"fmt"
	"image/color"
	stdpalette "image/color/palette"
	"log/slog"
	"os"
	"slices"
	"strings"
)

var named = map[string]func() color.Palette{
	"bw": func() color.Palette {
		return color.Palette{color.Black, color.White}
	},
	"gray4":   func() color.Palette { return grays(4) },
	"gray16":  func() color.Palette { return grays(16) },
	"vga16":   vga16,
	"websafe": func() color.Palette { return slices.Clone(stdpalette.WebSafe) },
	"plan9":   func() color.Palette { return slices.Clone(stdpalette.Plan9) },
}

// Names lists the built-in palettes.
func Names() []string {
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LoadPalette returns the built-in palette called name, or else reads name as
// a RIFF PAL file and merges every palette it holds.
func LoadPalette(name string) (color.Palette, error) {
	if mk, ok := named[name]; ok {
		return mk(), nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("unknown palette %q, expected one of %s or a PAL file: %w",
			name, strings.Join(Names(), ", "), err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close palette file", "file", name, "error", closeErr)
		}
	}()

	pals, err := ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("could not load palette file %q: %w", name, err)
	}

	var res color.Palette
	for _, pal := range pals {
		res = append(res, pal...)
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("palette file %q holds no colors", name)
	}
	if len(res) > 256 {
		return nil, fmt.Errorf("palette file %q holds %d colors, at most 256 are supported", name, len(res))
	}
	return res, nil
}

func grays(n int) color.Palette {
	pal := make(color.Palette, n)
	for i := range pal {
		pal[i] = color.Gray{Y: uint8(i * 0xff / (n - 1))}
	}
	return pal
}

func vga16() color.Palette {
	pal := make(color.Palette, 0, 16)
	for _, rgb := range []uint32{
		0x000000, 0x0000aa, 0x00aa00, 0x00aaaa, 0xaa0000, 0xaa00aa, 0xaa5500, 0xaaaaaa,
		0x555555, 0x5555ff, 0x55ff55, 0x55ffff, 0xff5555, 0xff55ff, 0xffff55, 0xffffff,
	} {
		pal = append(pal, color.RGBA{R: uint8(rgb >> 16), G: uint8(rgb >> 8), B: uint8(rgb), A: 0xff})
	}
	return pal
}
