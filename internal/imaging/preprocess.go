package imaging

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/channel"
	"github.com/disintegration/imaging"
)

// Resize scales img to exactly width x height using linear interpolation.
// The aspect ratio is not preserved.
func Resize(img image.Image, width, height int) *image.NRGBA {
	return imaging.Resize(img, width, height, imaging.Linear)
}

// PadBorder surrounds img with a constant-colour border of the given widths.
// The result's bounds start at (0,0).
func PadBorder(img image.Image, top, bottom, left, right int, fill color.Color) *image.NRGBA {
	b := img.Bounds()
	canvas := imaging.New(b.Dx()+left+right, b.Dy()+top+bottom, fill)
	return imaging.Paste(canvas, img, image.Pt(left, top))
}

// SplitChannels separates img into its red, green and blue planes.
func SplitChannels(img image.Image) [3]*image.Gray {
	return [3]*image.Gray{
		channel.Extract(img, channel.Red),
		channel.Extract(img, channel.Green),
		channel.Extract(img, channel.Blue),
	}
}

// MergeChannels is the inverse of SplitChannels. All planes must share the
// bounds of the first one.
func MergeChannels(planes [3]*image.Gray) *image.NRGBA {
	b := planes[0].Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			i := out.PixOffset(x, y)
			out.Pix[i+0] = planes[0].GrayAt(b.Min.X+x, b.Min.Y+y).Y
			out.Pix[i+1] = planes[1].GrayAt(b.Min.X+x, b.Min.Y+y).Y
			out.Pix[i+2] = planes[2].GrayAt(b.Min.X+x, b.Min.Y+y).Y
			out.Pix[i+3] = 0xff
		}
	}
	return out
}

// ToGrayscale collapses img to a single luminance channel.
func ToGrayscale(img image.Image) *image.Gray {
	g := imaging.Grayscale(img)
	b := g.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.Pix[out.PixOffset(x, y)] = g.Pix[g.PixOffset(b.Min.X+x, b.Min.Y+y)]
		}
	}
	return out
}

// EdgeMap runs the per-channel Canny chain on img and returns the merged
// single-channel edge map. A pixel is non-zero when any channel has an edge
// there.
func EdgeMap(img image.Image, low, high float64) *image.Gray {
	planes := SplitChannels(img)
	for i := range planes {
		planes[i] = DetectEdges(planes[i], low, high)
	}
	return ToGrayscale(MergeChannels(planes))
}
