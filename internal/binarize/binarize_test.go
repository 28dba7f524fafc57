package binarize

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/textract/internal/contour"
)

func solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// outline returns the perimeter of r as a closed contour, clockwise from
// the top-left corner.
func outline(r image.Rectangle) contour.Contour {
	var c contour.Contour
	for x := r.Min.X; x < r.Max.X; x++ {
		c = append(c, image.Pt(x, r.Min.Y))
	}
	for y := r.Min.Y + 1; y < r.Max.Y; y++ {
		c = append(c, image.Pt(r.Max.X-1, y))
	}
	for x := r.Max.X - 2; x >= r.Min.X; x-- {
		c = append(c, image.Pt(x, r.Max.Y-1))
	}
	for y := r.Max.Y - 2; y > r.Min.Y; y-- {
		c = append(c, image.Pt(r.Min.X, y))
	}
	return c
}

func paint(img *image.NRGBA, r image.Rectangle, c color.Color) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}

func gray(img *image.NRGBA, x, y int) uint8 {
	return img.NRGBAAt(x, y).R
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name    string
		samples []float64
		want    float64
	}{
		{"empty", nil, 0},
		{"single", []float64{7}, 7},
		{"odd", []float64{3, 1, 2}, 2},
		{"even", []float64{4, 1, 3, 2}, 2.5},
		{"two clusters", []float64{10, 90, 10, 90, 10, 90, 10, 90, 10, 90, 10, 90}, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Median(tt.samples))
		})
	}
}

func TestMedianLeavesInputUntouched(t *testing.T) {
	in := []float64{3, 1, 2}
	Median(in)
	assert.Equal(t, []float64{3, 1, 2}, in)
}

func TestForeground(t *testing.T) {
	src := solid(10, 10, color.White)
	src.Set(2, 2, color.Black)
	src.Set(3, 2, color.Black)
	b := New(src, zerolog.Nop())

	assert.Equal(t, 0.0, b.Foreground(contour.Contour{{2, 2}, {3, 2}}, 0))
	assert.Equal(t, 0.0, b.Foreground(nil, 0), "empty contour")
}

func TestForegroundCountsOutOfBoundsPoints(t *testing.T) {
	src := solid(10, 10, color.White)
	b := New(src, zerolog.Nop())

	// One white pixel and one miss: about 255/2, truncated.
	got := b.Foreground(contour.Contour{{0, 0}, {-1, 0}}, 0)
	assert.Equal(t, 127.0, got)
}

func TestBackgroundSamplesPositions(t *testing.T) {
	src := solid(30, 30, color.Black)
	box := image.Rect(10, 10, 20, 20)
	want := []image.Point{
		{9, 9}, {9, 10}, {10, 9},
		{21, 9}, {20, 9}, {21, 10},
		{9, 21}, {9, 20}, {10, 21},
		{21, 21}, {20, 21}, {21, 20},
	}
	for _, p := range want {
		src.Set(p.X, p.Y, color.White)
	}
	b := New(src, zerolog.Nop())

	samples := b.BackgroundSamples(box, 0)
	for i, s := range samples {
		assert.InDelta(t, 255, s, 1e-6, "sample %d at %v", i, want[i])
	}
}

func TestBackgroundSamplesOutsideImage(t *testing.T) {
	src := solid(10, 10, color.White)
	b := New(src, zerolog.Nop())

	samples := b.BackgroundSamples(image.Rect(0, 0, 10, 10), 0)
	for i, s := range samples {
		assert.Equal(t, 0.0, s, "sample %d", i)
	}
}

func TestDarkGlyphOnLightPaper(t *testing.T) {
	src := solid(40, 40, color.White)
	box := image.Rect(10, 10, 20, 20)
	glyph := outline(box)
	for _, p := range glyph {
		src.Set(p.X, p.Y, color.Black)
	}
	b := New(src, zerolog.Nop())

	e := b.Estimate(glyph, 0)
	assert.Equal(t, box, e.Bounds)
	assert.Equal(t, 0.0, e.Foreground)
	assert.InDelta(t, 255, e.Background, 1e-6)
	assert.False(t, e.Inverted())

	canvas := b.NewCanvas()
	b.Paint(canvas, e, 0)

	assert.Equal(t, uint8(0), gray(canvas, 10, 10), "outline is ink")
	assert.Equal(t, uint8(0), gray(canvas, 19, 15), "outline is ink")
	assert.Equal(t, uint8(255), gray(canvas, 15, 15), "counter is paper")
	assert.Equal(t, uint8(255), gray(canvas, 5, 5), "outside the box stays white")
}

func TestSolidDarkBoxBecomesBlack(t *testing.T) {
	src := solid(40, 40, color.White)
	box := image.Rect(10, 10, 20, 20)
	paint(src, box, color.Black)
	b := New(src, zerolog.Nop())

	canvas := b.NewCanvas()
	b.Paint(canvas, b.Estimate(outline(box), 0), 0)

	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			want := uint8(255)
			if image.Pt(x, y).In(box) {
				want = 0
			}
			require.Equal(t, want, gray(canvas, x, y), "pixel (%d,%d)", x, y)
		}
	}
}

func TestLightGlyphOnDarkBandIsInverted(t *testing.T) {
	src := solid(40, 40, color.Black)
	box := image.Rect(10, 10, 20, 20)
	paint(src, box, color.Gray{Y: 250})
	glyph := outline(box)
	for _, p := range glyph {
		src.Set(p.X, p.Y, color.Gray{Y: 200})
	}
	src.Set(15, 15, color.Gray{Y: 100})
	b := New(src, zerolog.Nop())

	e := b.Estimate(glyph, 0)
	assert.InDelta(t, 199.5, e.Foreground, 0.5)
	assert.Equal(t, 0.0, e.Background)
	assert.True(t, e.Inverted())

	canvas := b.NewCanvas()
	b.Paint(canvas, e, 0)

	assert.Equal(t, uint8(0), gray(canvas, 12, 12), "brighter than the outline maps to paper")
	assert.Equal(t, uint8(255), gray(canvas, 15, 15), "darker than the outline maps to ink")
}

func TestPaintClipsToCanvas(t *testing.T) {
	src := solid(10, 10, color.White)
	var buf bytes.Buffer
	b := New(src, zerolog.New(&buf).Level(zerolog.DebugLevel))

	e := Estimate{Bounds: image.Rect(8, 8, 12, 12), Ink: 0, Paper: 255, Foreground: 300}
	canvas := b.NewCanvas()
	require.NotPanics(t, func() { b.Paint(canvas, e, 3) })

	assert.Equal(t, uint8(0), gray(canvas, 9, 9))
	assert.Equal(t, uint8(255), gray(canvas, 7, 7))
	assert.Contains(t, buf.String(), "pixel out of bounds")
	assert.Contains(t, buf.String(), `"region":3`)
}

func TestApplyOrderAndOverlap(t *testing.T) {
	first := image.Rect(5, 5, 15, 15)
	second := image.Rect(10, 10, 20, 20)

	src := solid(40, 40, color.White)
	for _, p := range outline(first) {
		src.Set(p.X, p.Y, color.Black)
	}
	for _, p := range outline(second) {
		src.Set(p.X, p.Y, color.Gray{Y: 200})
	}
	// Paper for the first box, ink for the second.
	src.Set(12, 12, color.Gray{Y: 128})

	set := &contour.Set{
		Contours: []contour.Contour{outline(first), outline(second)},
		Nodes:    make([]contour.Node, 2),
	}
	b := New(src, zerolog.Nop())

	canvas := b.NewCanvas()
	got := b.Apply(canvas, set, []int{0, 1})
	require.Len(t, got, 2)
	assert.Equal(t, first, got[0].Bounds)
	assert.Equal(t, second, got[1].Bounds)
	assert.False(t, got[0].Inverted())
	assert.False(t, got[1].Inverted())
	assert.Equal(t, uint8(0), gray(canvas, 12, 12), "last write wins")
	assert.Equal(t, uint8(0), gray(canvas, 5, 5))
	assert.Equal(t, uint8(255), gray(canvas, 6, 6))

	canvas = b.NewCanvas()
	b.Apply(canvas, set, []int{1, 0})
	assert.Equal(t, uint8(255), gray(canvas, 12, 12), "last write wins")
}

func TestApplyNoGlyphsLeavesCanvasWhite(t *testing.T) {
	src := solid(8, 8, color.Black)
	b := New(src, zerolog.Nop())
	canvas := b.NewCanvas()

	got := b.Apply(canvas, &contour.Set{}, nil)
	assert.Empty(t, got)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			require.Equal(t, uint8(255), gray(canvas, x, y))
		}
	}
}
