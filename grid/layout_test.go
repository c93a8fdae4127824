package grid

import (
	"image"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestNewLayout_Bounds(t *testing.T) {
	cell := image.Pt(30, 20)

	tests := []struct {
		name          string
		count, cols   int
		wantCols      int
		wantRows      int
		width, height int
	}{
		{"fewer than columns", 3, 5, 5, 1, 150, 20},
		{"exactly one row", 4, 4, 4, 1, 120, 20},
		{"partial last row", 7, 3, 3, 3, 90, 60},
		{"full rows", 6, 3, 3, 2, 90, 40},
		{"single column", 3, 1, 1, 3, 30, 60},
		{"auto square", 9, 0, 3, 3, 90, 60},
		{"auto rounds up", 10, 0, 4, 3, 120, 60},
		{"auto single", 1, 0, 1, 1, 30, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLayout(tt.count, tt.cols, cell)

			assert.Equal(t, tt.wantCols, l.Columns)
			assert.Equal(t, tt.wantRows, l.Rows)
			assert.Equal(t, image.Rect(0, 0, tt.width, tt.height), l.Bounds())
		})
	}
}

func TestLayout_RowMajor(t *testing.T) {
	l := NewLayout(5, 2, image.Pt(10, 10))

	var got []image.Rectangle
	for i := range l.Count {
		got = append(got, l.CellRect(i))
	}

	want := []image.Rectangle{
		image.Rect(0, 0, 10, 10), image.Rect(10, 0, 20, 10),
		image.Rect(0, 10, 10, 20), image.Rect(10, 10, 20, 20),
		image.Rect(0, 20, 10, 30),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("cell rectangles mismatch (-want +got):\n%s", diff)
	}
}

func TestLayout_CellsInsideBounds(t *testing.T) {
	for count := 1; count <= 30; count++ {
		for cols := 0; cols <= 7; cols++ {
			l := NewLayout(count, cols, image.Pt(7, 5))
			for i := range count {
				r := l.CellRect(i)
				assert.True(t, r.In(l.Bounds()), "count=%d cols=%d cell=%d", count, cols, i)
				assert.Equal(t, image.Pt(7, 5), r.Size())
			}
		}
	}
}

func TestSquareColumns(t *testing.T) {
	for n, want := range map[int]int{0: 1, 1: 1, 2: 2, 4: 2, 5: 3, 16: 4, 17: 5, 100: 10} {
		assert.Equal(t, want, squareColumns(n), "n=%d", n)
	}
}

func TestLayout_Fits(t *testing.T) {
	assert.True(t, NewLayout(4, 2, image.Pt(100, 100)).fits(40_000))
	assert.False(t, NewLayout(5, 2, image.Pt(100, 100)).fits(40_000))
	assert.False(t, NewLayout(1, math.MaxInt, image.Pt(2, 2)).fits(maxCanvasPixels))
	assert.False(t, NewLayout(math.MaxInt32, 1, image.Pt(1, 1)).fits(maxCanvasPixels))
	assert.True(t, NewLayout(100, 0, image.Pt(1024, 1024)).fits(maxCanvasPixels))
}
