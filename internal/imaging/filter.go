package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
)

// Smooth applies a box blur of the given radius to soften the hard edges
// left by binarization. A non-positive radius returns img unchanged.
func Smooth(img image.Image, radius float64) image.Image {
	if radius <= 0 {
		return img
	}
	return blur.Box(img, radius)
}
