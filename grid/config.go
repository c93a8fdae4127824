package grid

import (
	"image"
	"image/color"
	"path/filepath"
	"strconv"
	"strings"

	"facegrid/orient"

	"golang.org/x/image/draw"
)

type FitMode string

const (
	// FitCover scales the image to cover the cell and crops the overflow
	// around the centre.
	FitCover FitMode = "cover"
	// FitContain scales the image to fit inside the cell, centred, leaving
	// the background visible around it.
	FitContain FitMode = "contain"
	// FitStretch scales the image to the cell, ignoring its aspect ratio.
	FitStretch FitMode = "stretch"
)

type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatGIF  Format = "gif"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

var formatsByExt = map[string]Format{
	".png":  FormatPNG,
	".jpg":  FormatJPEG,
	".jpeg": FormatJPEG,
	".gif":  FormatGIF,
	".bmp":  FormatBMP,
	".tif":  FormatTIFF,
	".tiff": FormatTIFF,
}

// FormatFromPath infers the output encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := formatsByExt[ext]; ok {
		return f, nil
	}
	return "", configErrorf("unsupported output format %q for %q", ext, path)
}

var filters = map[string]draw.Interpolator{
	"catmullrom":     draw.CatmullRom,
	"bilinear":       draw.BiLinear,
	"approxbilinear": draw.ApproxBiLinear,
	"nearest":        draw.NearestNeighbor,
}

// Config is the resolved, read-only description of one run.
type Config struct {
	CellWidth  int
	CellHeight int
	// Columns is the grid width in cells, 0 to pick the smallest square-ish
	// grid for the number of images.
	Columns int
	// MaxImages caps the number of valid images used, 0 for no limit.
	MaxImages int
	Inputs    []string
	Output    string
	Format    Format

	Fit         FitMode
	Background  color.Color // nil leaves empty cells transparent
	Filter      draw.Interpolator
	AutoOrient  bool
	Orientation orient.Orientation
	Label       bool

	Quality int           // JPEG only
	Palette color.Palette // nil keeps full colour
	Dither  bool
}

// Cell returns the cell size.
func (c Config) Cell() image.Point {
	return image.Pt(c.CellWidth, c.CellHeight)
}

func (c Config) validate() error {
	switch {
	case c.CellWidth <= 0 || c.CellHeight <= 0:
		return configErrorf("cell size must be positive, got %dx%d", c.CellWidth, c.CellHeight)
	case c.Columns < 0:
		return configErrorf("columns must not be negative, got %d", c.Columns)
	case c.MaxImages < 0:
		return configErrorf("max images must not be negative, got %d", c.MaxImages)
	case c.Quality < 1 || c.Quality > 100:
		return configErrorf("quality must be between 1 and 100, got %d", c.Quality)
	case c.Filter == nil:
		return configErrorf("no interpolation filter")
	}

	switch c.Fit {
	case FitCover, FitContain, FitStretch:
	default:
		return configErrorf("unknown fit mode %q", c.Fit)
	}

	// Layout must fit in an int-indexed RGBA buffer; reject absurd cells early.
	if int64(c.CellWidth)*int64(c.CellHeight) > 1<<28 {
		return configErrorf("cell size %dx%d is too large", c.CellWidth, c.CellHeight)
	}
	// A fixed column count already sets the width of the first row.
	if c.Columns > 0 && !(Layout{Count: 1, Columns: c.Columns, Rows: 1, Cell: c.Cell()}).fits(maxCanvasPixels) {
		return configErrorf("%d columns of %d pixels are too wide", c.Columns, c.CellWidth)
	}
	return nil
}

// ParseCellSize parses WIDTHxHEIGHT, for example "1024x1024".
func ParseCellSize(s string) (int, int, error) {
	w, h, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0, configErrorf("cell size %q should use WIDTHxHEIGHT", s)
	}

	width, err := strconv.Atoi(w)
	if err != nil {
		return 0, 0, configErrorf("invalid cell width in %q: %w", s, err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return 0, 0, configErrorf("invalid cell height in %q: %w", s, err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, configErrorf("cell size %q must be positive", s)
	}
	return width, height, nil
}

// ParseColor parses #RGB, #RGBA, #RRGGBB or #RRGGBBAA.
func ParseColor(s string) (color.Color, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return nil, configErrorf("color %q should start with '#'", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, configErrorf("could not read color %q: %w", s, err)
	}

	nibble := func(shift uint) uint8 {
		n := uint8(v>>shift) & 0xf
		return n<<4 | n
	}
	octet := func(shift uint) uint8 {
		return uint8(v >> shift)
	}

	switch len(hex) {
	case 3:
		return color.NRGBA{R: nibble(8), G: nibble(4), B: nibble(0), A: 0xff}, nil
	case 4:
		return color.NRGBA{R: nibble(12), G: nibble(8), B: nibble(4), A: nibble(0)}, nil
	case 6:
		return color.NRGBA{R: octet(16), G: octet(8), B: octet(0), A: 0xff}, nil
	case 8:
		return color.NRGBA{R: octet(24), G: octet(16), B: octet(8), A: octet(0)}, nil
	}
	return nil, configErrorf("invalid color %q, should be #RGB, #RGBA, #RRGGBB or #RRGGBBAA", s)
}
