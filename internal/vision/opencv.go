//go:build gocv

package vision

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ironsheep/textract/internal/contour"
	"github.com/ironsheep/textract/internal/imaging"
)

// Default returns the backend selected at build time.
func Default() Backend {
	return OpenCV{}
}

// OpenCV is the gocv backend.
type OpenCV struct{}

// Name implements Backend.
func (OpenCV) Name() string { return "opencv" }

// Prepare implements Backend.
func (OpenCV) Prepare(img image.Image, width, height, border int) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("prepare: invalid size %dx%d", width, height)
	}
	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("prepare: %w", err)
	}
	defer src.Close()

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(src, &resized, image.Pt(width, height), 0, 0, gocv.InterpolationLinear)

	padded := gocv.NewMat()
	defer padded.Close()
	gocv.CopyMakeBorder(resized, &padded, border, border, border, border,
		gocv.BorderConstant, color.RGBA{A: 255})

	out, err := padded.ToImage()
	if err != nil {
		return nil, fmt.Errorf("prepare: %w", err)
	}
	return imaging.ToNRGBA(out), nil
}

// EdgeMap implements Backend.
func (OpenCV) EdgeMap(img *image.NRGBA, low, high float64) (*image.Gray, error) {
	src, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("edge map: %w", err)
	}
	defer src.Close()

	planes := gocv.Split(src)
	for i := range planes {
		edges := gocv.NewMat()
		gocv.Canny(planes[i], &edges, float32(low), float32(high))
		planes[i].Close()
		planes[i] = edges
	}
	merged := gocv.NewMat()
	defer merged.Close()
	gocv.Merge(planes, &merged)
	for _, p := range planes {
		p.Close()
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(merged, &gray, gocv.ColorBGRToGray)

	out, err := gray.ToImage()
	if err != nil {
		return nil, fmt.Errorf("edge map: %w", err)
	}
	if g, ok := out.(*image.Gray); ok {
		return g, nil
	}
	return imaging.ToGrayscale(out), nil
}

// Contours implements Backend.
func (OpenCV) Contours(edges *image.Gray) (*contour.Set, error) {
	b := edges.Bounds()
	src, err := gocv.NewMatFromBytes(b.Dy(), b.Dx(), gocv.MatTypeCV8UC1, imaging.ToGrayscale(edges).Pix)
	if err != nil {
		return nil, fmt.Errorf("contours: %w", err)
	}
	defer src.Close()

	hierarchy := gocv.NewMat()
	defer hierarchy.Close()
	points := gocv.FindContoursWithParams(src, &hierarchy, gocv.RetrievalTree, gocv.ChainApproxNone)
	defer points.Close()

	set := &contour.Set{
		Contours: make([]contour.Contour, points.Size()),
		Nodes:    make([]contour.Node, points.Size()),
	}
	for i := 0; i < points.Size(); i++ {
		set.Contours[i] = contour.Contour(points.At(i).ToPoints())

		// next, previous, first child, parent; -1 for none
		h := hierarchy.GetVeciAt(0, i)
		set.Nodes[i] = contour.Node{
			Next:       contour.To(int(h[0])),
			Prev:       contour.To(int(h[1])),
			FirstChild: contour.To(int(h[2])),
			Parent:     contour.To(int(h[3])),
		}
	}
	if err := set.Validate(); err != nil {
		return nil, fmt.Errorf("contours: %w", err)
	}
	return set, nil
}
