// Package binarize rewrites each accepted glyph's bounding box as a clean
// black-and-white patch, choosing a threshold and a polarity per box.
//
// The foreground estimate is the mean luminance along the glyph's own
// outline, and the background estimate is the median of twelve samples taken
// just outside the box corners. Comparing the two tells whether the glyph is
// dark ink on light paper or light ink on a dark band, so both come out as
// the same two-tone rendering.
package binarize

import (
	"image"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/ironsheep/textract/internal/contour"
	"github.com/ironsheep/textract/internal/imaging"
)

// Estimate is the per-box analysis that drives the rewrite.
type Estimate struct {
	// Bounds is the glyph's bounding box.
	Bounds image.Rectangle `json:"bounds"`

	// Foreground is the truncated mean luminance along the glyph outline.
	// Pixels brighter than this map to Paper; the rest map to Ink.
	Foreground float64 `json:"foreground"`

	// Background is the median luminance of the corner samples.
	Background float64 `json:"background"`

	// Ink and Paper are the output gray levels for pixels at or below and
	// above Foreground, respectively.
	Ink   uint8 `json:"ink"`
	Paper uint8 `json:"paper"`
}

// Inverted reports whether the outline is at least as bright as the
// surroundings, which maps the outline class to white.
func (e Estimate) Inverted() bool {
	return e.Ink == 255
}

// Binarizer holds the source image that estimates are sampled from.
type Binarizer struct {
	src    *image.NRGBA
	logger zerolog.Logger
}

// New returns a binarizer sampling from src. Out-of-bounds samples and
// skipped pixels are reported on logger at debug level.
func New(src *image.NRGBA, logger zerolog.Logger) *Binarizer {
	return &Binarizer{src: src, logger: logger}
}

// NewCanvas returns an all-white canvas matching the source dimensions.
func (b *Binarizer) NewCanvas() *image.NRGBA {
	r := b.src.Bounds()
	return imaging.Fill(r.Dx(), r.Dy(), image.White)
}

// luminance samples the source, logging and returning 0 for points outside it.
func (b *Binarizer) luminance(x, y, region int) float64 {
	l, ok := imaging.LuminanceAt(b.src, x, y)
	if !ok {
		b.logger.Debug().Int("region", region).Int("x", x).Int("y", y).Msg("sample out of bounds")
	}
	return l
}

// Foreground returns the mean luminance over every point of c, truncated to
// an integer. Points outside the image contribute 0 but still count towards
// the denominator. An empty contour yields 0.
func (b *Binarizer) Foreground(c contour.Contour, region int) float64 {
	if len(c) == 0 {
		return 0
	}
	var sum float64
	for _, p := range c {
		sum += b.luminance(p.X, p.Y, region)
	}
	return math.Trunc(sum / float64(len(c)))
}

// BackgroundSamples returns luminance at three points around each corner of
// r: the corner pixel just outside the box and its two neighbours along the
// box edges. Samples outside the image are 0.
func (b *Binarizer) BackgroundSamples(r image.Rectangle, region int) [12]float64 {
	x, y, w, h := r.Min.X, r.Min.Y, r.Dx(), r.Dy()
	pts := [12]image.Point{
		// (x, y) corner
		{x - 1, y - 1}, {x - 1, y}, {x, y - 1},
		// (x+w, y) corner
		{x + w + 1, y - 1}, {x + w, y - 1}, {x + w + 1, y},
		// (x, y+h) corner
		{x - 1, y + h + 1}, {x - 1, y + h}, {x, y + h + 1},
		// (x+w, y+h) corner
		{x + w + 1, y + h + 1}, {x + w, y + h + 1}, {x + w + 1, y + h},
	}
	var out [12]float64
	for i, p := range pts {
		out[i] = b.luminance(p.X, p.Y, region)
	}
	return out
}

// Median returns the median of samples without modifying them. An even
// number of samples yields the mean of the two central values; no samples
// yields 0.
func Median(samples []float64) float64 {
	n := len(samples)
	if n == 0 {
		return 0
	}
	s := make([]float64, n)
	copy(s, samples)
	sort.Float64s(s)
	if n%2 != 0 {
		return s[n/2]
	}
	return (s[(n-1)/2] + s[n/2]) / 2
}

// Estimate analyses the glyph outline c.
func (b *Binarizer) Estimate(c contour.Contour, region int) Estimate {
	r := c.Bounds()
	fg := b.Foreground(c, region)
	bgSamples := b.BackgroundSamples(r, region)
	bg := Median(bgSamples[:])

	e := Estimate{Bounds: r, Foreground: fg, Background: bg}
	if fg >= bg {
		e.Ink, e.Paper = 255, 0
	} else {
		e.Ink, e.Paper = 0, 255
	}
	return e
}

// Paint rewrites every pixel of e.Bounds on canvas: Paper where the source is
// brighter than e.Foreground, Ink elsewhere. Pixels outside the canvas are
// skipped and logged.
func (b *Binarizer) Paint(canvas *image.NRGBA, e Estimate, region int) {
	bounds := canvas.Bounds()
	for x := e.Bounds.Min.X; x < e.Bounds.Max.X; x++ {
		for y := e.Bounds.Min.Y; y < e.Bounds.Max.Y; y++ {
			if !(image.Point{X: x, Y: y}).In(bounds) {
				b.logger.Debug().Int("region", region).Int("x", x).Int("y", y).Msg("pixel out of bounds")
				continue
			}
			l, _ := imaging.LuminanceAt(b.src, x, y)
			if l > e.Foreground {
				imaging.SetGray(canvas, x, y, e.Paper)
			} else {
				imaging.SetGray(canvas, x, y, e.Ink)
			}
		}
	}
}

// Apply estimates and paints every glyph of set listed in glyphs, in the
// order given, and returns the estimates. Overlapping boxes resolve by last
// write.
func (b *Binarizer) Apply(canvas *image.NRGBA, set *contour.Set, glyphs []int) []Estimate {
	out := make([]Estimate, 0, len(glyphs))
	for _, i := range glyphs {
		e := b.Estimate(set.Contours[i], i)
		b.Paint(canvas, e, i)
		b.logger.Debug().
			Int("region", i).
			Str("bounds", e.Bounds.String()).
			Float64("fg", e.Foreground).
			Float64("bg", e.Background).
			Bool("inverted", e.Inverted()).
			Msg("region binarized")
		out = append(out, e)
	}
	return out
}
