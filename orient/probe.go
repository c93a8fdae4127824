// Package orient reads image headers to learn their size, format and
// orientation without decoding pixel data.
package orient

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"

	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type Orientation string

const (
	Any       Orientation = "any"
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
	Square    Orientation = "square"
)

func ParseOrientation(s string) (Orientation, error) {
	switch o := Orientation(s); o {
	case "":
		return Any, nil
	case Any, Portrait, Landscape, Square:
		return o, nil
	}
	return "", fmt.Errorf("unknown orientation %q", s)
}

// Matches reports whether o satisfies the wanted orientation.
func (o Orientation) Matches(want Orientation) bool {
	return want == Any || want == "" || o == want
}

type Info struct {
	Path   string
	Width  int
	Height int
	Format string
	// ExifOrientation is the JPEG EXIF orientation tag, 1 to 8, or 0 when
	// the file has none.
	ExifOrientation int
}

// Upright returns i as the image looks once its EXIF orientation is applied:
// orientations 5 to 8 turn it by 90 degrees, swapping width and height.
func (i Info) Upright() Info {
	if i.ExifOrientation >= 5 {
		i.Width, i.Height = i.Height, i.Width
	}
	if i.ExifOrientation != 0 {
		i.ExifOrientation = 1
	}
	return i
}

func (i Info) Orientation() Orientation {
	switch {
	case i.Height > i.Width:
		return Portrait
	case i.Width > i.Height:
		return Landscape
	}
	return Square
}

// Probe decodes the header of the image at path.
func Probe(path string) (Info, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Info{}, fmt.Errorf("cannot stat image %q: %w", path, err)
	}
	if !fi.Mode().IsRegular() {
		return Info{}, fmt.Errorf("not a regular file %q: %s", path, fi.Mode().String())
	}

	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("could not open image %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close image", "file", path, "error", closeErr)
		}
	}()

	conf, format, err := image.DecodeConfig(f)
	if err != nil {
		return Info{}, fmt.Errorf("could not read image %q: %w", path, err)
	}
	if conf.Width <= 0 || conf.Height <= 0 {
		return Info{}, fmt.Errorf("image %q has no pixels: %dx%d", path, conf.Width, conf.Height)
	}

	info := Info{
		Path:   path,
		Width:  conf.Width,
		Height: conf.Height,
		Format: format,
	}
	if format == "jpeg" {
		info.ExifOrientation = exifOrientation(f)
	}
	return info, nil
}

func exifOrientation(f *os.File) int {
	logger := slog.Default().With("file", f.Name())
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		logger.Debug("could not rewind image", "error", err)
		return 0
	}

	// Non-critical errors come with usable tags.
	x, err := exif.Decode(f)
	if x == nil {
		logger.Debug("no EXIF data", "error", err)
		return 0
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 0
	}
	v, err := tag.Int(0)
	if err != nil || v < 1 || v > 8 {
		logger.Debug("ignoring EXIF orientation", "value", v, "error", err)
		return 0
	}
	return v
}
