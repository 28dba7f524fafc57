package imaging

import (
	"image"
	"math"
)

// DetectEdges performs Canny edge detection on a single channel.
//
// Parameters:
//   - ch: Source channel. Its bounds need not start at (0,0).
//   - low: Hysteresis low threshold, in raw gradient units. Pixels whose
//     gradient magnitude is not above low are never edges.
//   - high: Hysteresis high threshold. Pixels above high are strong edges.
//
// Returns a map with the same dimensions as ch (origin at (0,0)) where edge
// pixels are 255 and everything else is 0.
//
// # Algorithm
//
//  1. Gradient computation: 3x3 Sobel operators for X and Y, with border
//     pixels replicated. Magnitude is |Gx| + |Gy|.
//
//  2. Non-maximum suppression: keep only pixels that are local maxima along
//     the gradient direction, quantised to 0, 45, 90 or 135 degrees.
//
//  3. Hysteresis thresholding:
//     - Pixels above high are strong edges (always kept)
//     - Pixels above low are weak edges, kept only when they are connected
//     to a strong edge through a chain of edge pixels
//
// No smoothing is applied first; with thresholds as high as 200/250 only
// strong, sharp transitions such as printed strokes survive.
func DetectEdges(ch *image.Gray, low, high float64) *image.Gray {
	bounds := ch.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	result := image.NewGray(image.Rect(0, 0, width, height))
	if width == 0 || height == 0 {
		return result
	}

	at := func(x, y int) float64 {
		x = clamp(x, 0, width-1)
		y = clamp(y, 0, height-1)
		return float64(ch.Pix[ch.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)])
	}

	sobelX := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	magnitude := make([]float64, width*height)
	gradX := make([]float64, width*height)
	gradY := make([]float64, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := at(x+kx, y+ky)
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			i := y*width + x
			gradX[i] = gx
			gradY[i] = gy
			magnitude[i] = math.Abs(gx) + math.Abs(gy)
		}
	}

	mag := func(x, y int) float64 {
		if x < 0 || y < 0 || x >= width || y >= height {
			return 0
		}
		return magnitude[y*width+x]
	}

	// Non-maximum suppression
	suppressed := make([]float64, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			m := magnitude[i]
			if m <= low {
				continue
			}

			angle := math.Atan2(gradY[i], gradX[i])

			// Determine neighbors to compare based on gradient direction
			var n1, n2 float64
			if (angle >= -math.Pi/8 && angle < math.Pi/8) || (angle >= 7*math.Pi/8 || angle < -7*math.Pi/8) {
				n1 = mag(x-1, y)
				n2 = mag(x+1, y)
			} else if (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8) {
				n1 = mag(x-1, y-1)
				n2 = mag(x+1, y+1)
			} else if (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8) {
				n1 = mag(x, y-1)
				n2 = mag(x, y+1)
			} else {
				n1 = mag(x+1, y-1)
				n2 = mag(x-1, y+1)
			}

			// Ties along the scan direction resolve to the first pixel.
			if m > n1 && m >= n2 {
				suppressed[i] = m
			}
		}
	}

	// Double threshold and edge tracking by hysteresis
	stack := make([]int, 0, 64)
	for i, v := range suppressed {
		if v > high && result.Pix[i] == 0 {
			result.Pix[i] = 255
			stack = append(stack, i)
		}
		for len(stack) > 0 {
			j := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			jx, jy := j%width, j/width
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := jx+dx, jy+dy
					if nx < 0 || ny < 0 || nx >= width || ny >= height {
						continue
					}
					k := ny*width + nx
					if result.Pix[k] == 0 && suppressed[k] > low {
						result.Pix[k] = 255
						stack = append(stack, k)
					}
				}
			}
		}
	}

	return result
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
