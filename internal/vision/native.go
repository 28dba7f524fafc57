package vision

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ironsheep/textract/internal/contour"
	"github.com/ironsheep/textract/internal/imaging"
)

// Native is the pure-Go backend.
type Native struct{}

// Name implements Backend.
func (Native) Name() string { return "native" }

// Prepare implements Backend.
func (Native) Prepare(img image.Image, width, height, border int) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("prepare: invalid size %dx%d", width, height)
	}
	resized := imaging.Resize(img, width, height)
	if border <= 0 {
		return resized, nil
	}
	return imaging.PadBorder(resized, border, border, border, border, color.Black), nil
}

// EdgeMap implements Backend.
func (Native) EdgeMap(img *image.NRGBA, low, high float64) (*image.Gray, error) {
	return imaging.EdgeMap(img, low, high), nil
}

// Contours implements Backend.
func (Native) Contours(edges *image.Gray) (*contour.Set, error) {
	return contour.Trace(edges), nil
}
