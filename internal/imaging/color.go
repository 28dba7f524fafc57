package imaging

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Luminance weights applied to 8-bit R, G and B components.
const (
	LumaR = 0.30
	LumaG = 0.59
	LumaB = 0.11
)

// Luma returns the weighted luminance of an 8-bit RGB triple.
func Luma(r, g, b uint8) float64 {
	return LumaR*float64(r) + LumaG*float64(g) + LumaB*float64(b)
}

// LuminanceAt returns the luminance of the pixel at (x, y).
//
// The second result is false when (x, y) lies outside img, in which case the
// luminance is reported as 0. Callers decide whether a miss is worth logging.
func LuminanceAt(img *image.NRGBA, x, y int) (float64, bool) {
	if !(image.Point{X: x, Y: y}).In(img.Rect) {
		return 0, false
	}
	i := img.PixOffset(x, y)
	return Luma(img.Pix[i], img.Pix[i+1], img.Pix[i+2]), true
}

// ToNRGBA returns img as *image.NRGBA with bounds starting at (0,0),
// converting only when necessary.
func ToNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	return imaging.Clone(img)
}

// Fill returns a new width x height image filled with c.
func Fill(width, height int, c color.Color) *image.NRGBA {
	return imaging.New(width, height, c)
}

// SetGray writes the gray triple (v, v, v) at (x, y). Points outside img are
// ignored.
func SetGray(img *image.NRGBA, x, y int, v uint8) {
	img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 0xff})
}
