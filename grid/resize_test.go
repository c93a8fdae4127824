package grid

import (
	"image"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/draw"
)

func TestFitRects(t *testing.T) {
	cell := image.Rect(100, 0, 200, 100)

	tests := []struct {
		name   string
		src    image.Rectangle
		mode   FitMode
		wantSR image.Rectangle
		wantDR image.Rectangle
	}{
		{"cover wide", image.Rect(0, 0, 300, 100), FitCover, image.Rect(100, 0, 200, 100), cell},
		{"cover tall", image.Rect(0, 0, 50, 200), FitCover, image.Rect(0, 75, 50, 125), cell},
		{"cover same ratio", image.Rect(0, 0, 400, 400), FitCover, image.Rect(0, 0, 400, 400), cell},
		{"cover offset source", image.Rect(10, 10, 310, 110), FitCover, image.Rect(110, 10, 210, 110), cell},
		{"contain wide", image.Rect(0, 0, 200, 100), FitContain, image.Rect(0, 0, 200, 100), image.Rect(100, 25, 200, 75)},
		{"contain tall", image.Rect(0, 0, 100, 400), FitContain, image.Rect(0, 0, 100, 400), image.Rect(137, 0, 162, 100)},
		{"stretch", image.Rect(0, 0, 300, 20), FitStretch, image.Rect(0, 0, 300, 20), cell},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sr, dr := fitRects(tt.src, cell, tt.mode)
			assert.Equal(t, tt.wantSR, sr)
			assert.Equal(t, tt.wantDR, dr)
			assert.True(t, dr.In(cell))
			assert.True(t, sr.In(tt.src))
		})
	}
}

func TestFitRects_PreservesAspectRatio(t *testing.T) {
	cell := image.Rect(0, 0, 160, 90)
	for _, src := range []image.Rectangle{
		image.Rect(0, 0, 1000, 100),
		image.Rect(0, 0, 100, 1000),
		image.Rect(0, 0, 17, 31),
		image.Rect(0, 0, 4000, 3000),
	} {
		sr, _ := fitRects(src, cell, FitCover)
		got := float64(sr.Dx()) / float64(sr.Dy())
		assert.InDelta(t, 160.0/90.0, got, 0.1, "src=%v", src)

		_, dr := fitRects(src, cell, FitContain)
		want := float64(src.Dx()) / float64(src.Dy())
		got = float64(dr.Dx()) / float64(dr.Dy())
		assert.InEpsilon(t, want, got, 0.15, "src=%v", src)
	}
}

func TestFitRects_ExtremeRatioKeepsPixels(t *testing.T) {
	sr, _ := fitRects(image.Rect(0, 0, 1, 5000), image.Rect(0, 0, 100, 100), FitCover)
	assert.False(t, sr.Empty())

	_, dr := fitRects(image.Rect(0, 0, 5000, 1), image.Rect(0, 0, 100, 100), FitContain)
	assert.False(t, dr.Empty())
}

func TestDrawCell_CoverCropsCentre(t *testing.T) {
	// Three vertical bands; covering a square cell keeps only the middle one.
	src := image.NewRGBA(image.Rect(0, 0, 300, 100))
	draw.Draw(src, image.Rect(0, 0, 100, 100), image.NewUniform(red), image.Point{}, draw.Src)
	draw.Draw(src, image.Rect(100, 0, 200, 100), image.NewUniform(green), image.Point{}, draw.Src)
	draw.Draw(src, image.Rect(200, 0, 300, 100), image.NewUniform(blue), image.Point{}, draw.Src)

	canvas := image.NewRGBA(image.Rect(0, 0, 100, 150))
	cell := image.Rect(0, 50, 100, 150)
	require.NoError(t, drawCell(slog.Default(), canvas, cell, src, FitCover, draw.NearestNeighbor))

	for _, p := range []image.Point{{0, 50}, {99, 50}, {50, 100}, {0, 149}, {99, 149}} {
		assert.Equal(t, green, rgbaAt(canvas, p.X, p.Y), "at %v", p)
	}
	assert.Equal(t, transparent, rgbaAt(canvas, 50, 49), "outside the cell")
}

func TestDrawCell_SmallAndLargeSourcesFillCell(t *testing.T) {
	for _, size := range []image.Point{{8, 8}, {20, 10}, {1000, 1000}, {333, 777}} {
		canvas := image.NewRGBA(image.Rect(0, 0, 40, 30))
		cell := image.Rect(0, 0, 40, 30)
		src := solid(size.X, size.Y, yellow)

		require.NoError(t, drawCell(slog.Default(), canvas, cell, src, FitCover, draw.CatmullRom))

		for y := range 30 {
			for x := range 40 {
				require.Equal(t, yellow, rgbaAt(canvas, x, y), "size=%v at %d,%d", size, x, y)
			}
		}
	}
}

func TestDrawCell_ContainLeavesBackground(t *testing.T) {
	canvas := solid(100, 100, white)
	src := solid(200, 100, blue)

	require.NoError(t, drawCell(slog.Default(), canvas, canvas.Bounds(), src, FitContain, draw.NearestNeighbor))

	assert.Equal(t, white, rgbaAt(canvas, 50, 10))
	assert.Equal(t, blue, rgbaAt(canvas, 50, 50))
	assert.Equal(t, white, rgbaAt(canvas, 50, 90))
}

func TestDrawCell_EmptySource(t *testing.T) {
	canvas := image.NewRGBA(image.Rect(0, 0, 10, 10))
	err := drawCell(slog.Default(), canvas, canvas.Bounds(), image.NewRGBA(image.Rectangle{}), FitCover, draw.CatmullRom)
	assert.Error(t, err)
}
