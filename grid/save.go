package grid

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Save encodes img as format and stores it at path. The data goes to a
// temporary file next to path which is renamed over it only once fully
// written, so path is either left untouched or holds the complete image.
func Save(img image.Image, path string, format Format, quality int) (err error) {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	outFile, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return &OutputError{Path: path, Err: fmt.Errorf("could not create temporary file: %w", err)}
	}
	tmpName := outFile.Name()
	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			_ = outFile.Close()
		}
		if rmErr := os.Remove(tmpName); rmErr != nil {
			slog.Error("could not remove temporary file", "name", tmpName, "error", rmErr)
		}
	}()

	if err = encode(outFile, img, format, quality); err != nil {
		return &OutputError{Path: path, Err: err}
	}
	if err = outFile.Chmod(0o644); err != nil {
		return &OutputError{Path: path, Err: fmt.Errorf("could not set permissions: %w", err)}
	}
	if err = outFile.Sync(); err != nil {
		return &OutputError{Path: path, Err: fmt.Errorf("could not flush: %w", err)}
	}
	closed = true
	if err = outFile.Close(); err != nil {
		return &OutputError{Path: path, Err: fmt.Errorf("could not close: %w", err)}
	}
	if err = os.Rename(tmpName, path); err != nil {
		return &OutputError{Path: path, Err: fmt.Errorf("could not rename: %w", err)}
	}

	slog.Info("saved", "file", path, "format", format,
		"width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return nil
}

func encode(w io.Writer, img image.Image, format Format, quality int) error {
	switch format {
	case FormatGIF:
		if err := gif.Encode(w, img, &gif.Options{NumColors: 256}); err != nil {
			return fmt.Errorf("could not encode GIF: %w", err)
		}
	case FormatJPEG:
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: quality}); err != nil {
			return fmt.Errorf("could not encode JPEG: %w", err)
		}
	case FormatPNG:
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		if err := enc.Encode(w, img); err != nil {
			return fmt.Errorf("could not encode PNG: %w", err)
		}
	case FormatBMP:
		if err := bmp.Encode(w, img); err != nil {
			return fmt.Errorf("could not encode BMP: %w", err)
		}
	case FormatTIFF:
		if err := tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true}); err != nil {
			return fmt.Errorf("could not encode TIFF: %w", err)
		}
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
	return nil
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
