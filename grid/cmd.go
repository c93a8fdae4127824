package grid

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"facegrid/inputs"
	"facegrid/orient"
	"facegrid/palette"
	"facegrid/parallel"

	"github.com/alecthomas/kong"
)

type CLICmd struct {
	Input     []string `help:"Input image path or glob pattern (e.g. \"images/*.jpg\", \"faces/**/*.png\"), may be repeated. Defaults to \"*.jpg\"" sep:"none"`
	Files     []string `arg:"" optional:"" help:"More input images, as expanded by the shell"`
	CellSize  string   `help:"Size of each cell as WIDTHxHEIGHT (e.g. \"1024x1024\")" default:"100x100"`
	Columns   int      `help:"Number of columns. If 0, get as close as possible to a square" default:"0"`
	MaxImages int      `help:"Maximum number of valid images to use, 0 for no limit" default:"0"`
	Output    string   `help:"Output file, the format is inferred from the extension (png, jpg, gif, bmp, tiff)" default:"face-stack-output.jpg"`

	Fit         string `help:"How images fill their cell: cover crops, contain letterboxes, stretch distorts" enum:"cover,contain,stretch" default:"cover" group:"resize"`
	Filter      string `help:"Interpolation filter" enum:"catmullrom,bilinear,approxbilinear,nearest" default:"catmullrom" group:"resize"`
	Background  string `help:"Background color for empty cells and letterboxing: #RGB, #RGBA, #RRGGBB or #RRGGBBAA. Transparent if empty" group:"resize"`
	AutoOrient  bool   `help:"Rotate images according to their EXIF orientation" default:"true" negatable:"" group:"resize"`
	Orientation string `help:"Only use images with this orientation" enum:"any,portrait,landscape,square" default:"any" group:"resize"`
	Label       bool   `help:"Caption each cell with its file name" default:"false" group:"resize"`

	Quality int    `help:"JPEG quality" default:"90" group:"output"`
	Palette string `help:"Palette name (bw, gray4, gray16, vga16, websafe, plan9) or PAL file in RIFF format to reduce the output to" group:"output"`
	Dither  bool   `help:"Apply dithering with --palette" default:"false" group:"output"`

	conf Config
}

// Validate turns the flags into the run's Config. Input patterns are only
// checked for syntax here; they are expanded when the command runs.
func (c *CLICmd) Validate(kctx *kong.Context) error {
	conf, err := c.config()
	if err != nil {
		return err
	}
	c.conf = conf
	return nil
}

const defaultInput = "*.jpg"

func (c *CLICmd) patterns() []string {
	patterns := append(append([]string(nil), c.Input...), c.Files...)
	if len(patterns) == 0 {
		patterns = []string{defaultInput}
	}
	return patterns
}

func (c *CLICmd) config() (Config, error) {
	if err := inputs.Validate(c.patterns()); err != nil {
		return Config{}, configErrorf("%w", err)
	}

	width, height, err := ParseCellSize(c.CellSize)
	if err != nil {
		return Config{}, err
	}

	format, err := FormatFromPath(c.Output)
	if err != nil {
		return Config{}, err
	}

	filter, ok := filters[c.Filter]
	if !ok {
		return Config{}, configErrorf("unknown filter %q", c.Filter)
	}

	orientation, err := orient.ParseOrientation(c.Orientation)
	if err != nil {
		return Config{}, configErrorf("%w", err)
	}

	conf := Config{
		CellWidth:   width,
		CellHeight:  height,
		Columns:     c.Columns,
		MaxImages:   c.MaxImages,
		Output:      c.Output,
		Format:      format,
		Fit:         FitMode(c.Fit),
		Filter:      filter,
		AutoOrient:  c.AutoOrient,
		Orientation: orientation,
		Label:       c.Label,
		Quality:     c.Quality,
		Dither:      c.Dither,
	}

	if c.Background != "" {
		if conf.Background, err = ParseColor(c.Background); err != nil {
			return Config{}, err
		}
	}

	if c.Palette != "" {
		if conf.Palette, err = palette.LoadPalette(c.Palette); err != nil {
			return Config{}, configErrorf("%w", err)
		}
	} else if c.Dither {
		return Config{}, configErrorf("--dither needs --palette")
	}

	if err := conf.validate(); err != nil {
		return Config{}, err
	}
	return conf, nil
}

func (c *CLICmd) Run(ctx context.Context, worker parallel.WorkerFunc, wait parallel.WaitFunc) error {
	paths, err := inputs.Expand(c.patterns(), c.conf.Output)
	if err != nil {
		wait(true)
		return configErrorf("%w", err)
	}

	conf := c.conf
	conf.Inputs = paths
	slog.Info("running", "inputs", len(paths), "output", conf.Output,
		"cell", fmt.Sprintf("%dx%d", conf.CellWidth, conf.CellHeight),
		"columns", conf.Columns, "max_images", conf.MaxImages)

	canvas, _, err := Compose(ctx, conf, worker, wait)
	if err != nil {
		return err
	}

	var out image.Image = canvas
	if conf.Palette != nil {
		slog.Info("applying palette", "colors", len(conf.Palette), "dither", conf.Dither)
		out = palette.Quantize(canvas, conf.Palette, conf.Dither)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return Save(out, conf.Output, conf.Format, conf.Quality)
}
