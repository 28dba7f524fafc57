// Package vision is the seam between the glyph pipeline and the image
// primitives it relies on: geometric normalisation, edge detection and
// contour extraction.
//
// Two backends implement it. The pure-Go backend is the default and needs no
// cgo. Building with -tags gocv swaps in an OpenCV backend via gocv.
package vision

import (
	"image"

	"github.com/ironsheep/textract/internal/contour"
)

// Backend provides the external primitives of the pipeline.
type Backend interface {
	// Name identifies the backend in logs.
	Name() string

	// Prepare resizes img to width x height and surrounds it with a black
	// border of the given width on every side.
	Prepare(img image.Image, width, height, border int) (*image.NRGBA, error)

	// EdgeMap runs Canny with the given thresholds on each colour channel
	// separately and collapses the merged result to one channel.
	EdgeMap(img *image.NRGBA, low, high float64) (*image.Gray, error)

	// Contours extracts every border of edges with a full nesting tree and
	// no point approximation.
	Contours(edges *image.Gray) (*contour.Set, error)
}
