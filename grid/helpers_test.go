package grid

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"facegrid/orient"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/draw"
)

var (
	red         = color.RGBA{R: 0xff, A: 0xff}
	green       = color.RGBA{G: 0xff, A: 0xff}
	blue        = color.RGBA{B: 0xff, A: 0xff}
	white       = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	yellow      = color.RGBA{R: 0xff, G: 0xff, A: 0xff}
	transparent = color.RGBA{}
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	return writeFile(t, dir, name, encodePNG(t, img))
}

// writeTruncatedPNG writes a PNG whose header is intact but whose pixel data is
// cut off, so it probes fine and fails to decode.
func writeTruncatedPNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	data := encodePNG(t, solid(w, h, red))
	return writeFile(t, dir, name, data[:40])
}

// writeRotatedJPEG writes img as a JPEG tagged with the given EXIF
// orientation.
func writeRotatedJPEG(t *testing.T, dir, name string, img image.Image, orientation uint16) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 100}))
	data := buf.Bytes()

	le := binary.LittleEndian
	app1 := []byte("Exif\x00\x00II*\x00")
	app1 = le.AppendUint32(app1, 8)
	app1 = le.AppendUint16(app1, 1)
	app1 = le.AppendUint16(app1, 0x0112)
	app1 = le.AppendUint16(app1, 3)
	app1 = le.AppendUint32(app1, 1)
	app1 = le.AppendUint16(app1, orientation)
	app1 = le.AppendUint16(app1, 0)
	app1 = le.AppendUint32(app1, 0)

	out := append([]byte{}, data[:2]...)
	out = append(out, 0xff, 0xe1)
	out = binary.BigEndian.AppendUint16(out, uint16(len(app1)+2))
	out = append(out, app1...)
	out = append(out, data[2:]...)
	return writeFile(t, dir, name, out)
}

func testConfig(inputs ...string) Config {
	return Config{
		CellWidth:   100,
		CellHeight:  100,
		Inputs:      inputs,
		Format:      FormatPNG,
		Fit:         FitCover,
		Filter:      draw.NearestNeighbor,
		Orientation: orient.Any,
		Quality:     90,
	}
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}
