package grid

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"sync/atomic"

	"facegrid/orient"
	"facegrid/parallel"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Stats summarises a composition.
type Stats struct {
	Inputs   int // paths given
	Skipped  int // not laid out: unreadable, filtered out or over the limit
	Placed   int // cells filled
	Failed   int // selected but could not be decoded, left blank
	Canceled int // not attempted because the context was done
}

// Compose builds the grid described by cfg. Inputs are probed in order and the
// first cfg.MaxImages usable ones are laid out; decoding and scaling of each
// image is handed to worker, and wait(true) is called before returning.
//
// An input that fails to decode leaves its cell blank. Compose fails with
// ErrNoImages when no cell could be filled, and with the context's error when
// ctx is done, in both cases without returning a canvas.
func Compose(ctx context.Context, cfg Config, worker parallel.WorkerFunc, wait parallel.WaitFunc) (*image.RGBA, Stats, error) {
	if err := cfg.validate(); err != nil {
		wait(true)
		return nil, Stats{}, err
	}

	stats := Stats{Inputs: len(cfg.Inputs)}
	selected := selectInputs(cfg)
	stats.Skipped = len(cfg.Inputs) - len(selected)
	if len(selected) == 0 {
		wait(true)
		return nil, stats, ErrNoImages
	}

	layout := NewLayout(len(selected), cfg.Columns, cfg.Cell())
	if !layout.fits(maxCanvasPixels) {
		wait(true)
		return nil, stats, configErrorf("grid of %d columns by %d rows of %dx%d cells is too large",
			layout.Columns, layout.Rows, cfg.CellWidth, cfg.CellHeight)
	}
	bounds := layout.Bounds()
	slog.Info("layout",
		"width", bounds.Dx(), "height", bounds.Dy(),
		"rows", layout.Rows, "columns", layout.Columns, "images", layout.Count)

	canvas := image.NewRGBA(bounds)
	if cfg.Background != nil {
		draw.Draw(canvas, bounds, image.NewUniform(cfg.Background), image.Point{}, draw.Src)
	}

	var placed, failed, canceled atomic.Int64
	for i, info := range selected {
		worker(func() {
			logger := slog.Default().With("file", info.Path, "cell", i)
			if ctx.Err() != nil {
				canceled.Add(1)
				return
			}

			img, err := decode(info.Path, cfg.AutoOrient)
			if err != nil {
				failed.Add(1)
				logger.Warn("skipping image, cell left blank", "error", err)
				return
			}

			cell := layout.CellRect(i)
			if err := drawCell(logger, canvas, cell, img, cfg.Fit, cfg.Filter); err != nil {
				failed.Add(1)
				logger.Warn("skipping image, cell left blank", "error", &DecodeError{Path: info.Path, Err: err})
				return
			}
			if cfg.Label {
				drawLabel(canvas, cell, info.Path)
			}

			placed.Add(1)
			logger.Info("placed", "progress", fmt.Sprintf("%d/%d", placed.Load(), layout.Count))
		})
	}

	wait(true)

	stats.Placed = int(placed.Load())
	stats.Failed = int(failed.Load())
	stats.Canceled = int(canceled.Load())
	slog.Info("stats", "inputs", stats.Inputs, "skipped", stats.Skipped,
		"placed", stats.Placed, "failed", stats.Failed)

	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}
	if stats.Placed == 0 {
		return nil, stats, ErrNoImages
	}
	return canvas, stats, nil
}

// selectInputs probes every input in order and keeps the usable ones, up to
// cfg.MaxImages.
func selectInputs(cfg Config) []orient.Info {
	var res []orient.Info
	for n, path := range cfg.Inputs {
		if cfg.MaxImages > 0 && len(res) >= cfg.MaxImages {
			slog.Info("reached the maximum number of input images, ignoring the rest",
				"max", cfg.MaxImages, "ignored", len(cfg.Inputs)-n)
			break
		}

		logger := slog.Default().With("file", path)
		info, err := orient.Probe(path)
		if err != nil {
			logger.Warn("skipping invalid image", "error", err)
			continue
		}
		if cfg.AutoOrient {
			info = info.Upright()
		}
		if o := info.Orientation(); !o.Matches(cfg.Orientation) {
			logger.Debug("skipping image", "orientation", o, "want", cfg.Orientation)
			continue
		}

		logger.Debug("selected", "width", info.Width, "height", info.Height, "format", info.Format)
		res = append(res, info)
	}
	return res
}

func decode(path string, autoOrient bool) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close image", "file", path, "error", closeErr)
		}
	}()

	img, err := imaging.Decode(f, imaging.AutoOrientation(autoOrient))
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return img, nil
}
