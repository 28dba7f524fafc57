package imaging

import (
	"image"
	"image/color"
	"testing"
)

// createEdgeTestChannel creates a channel with a dark rectangle on a light
// background, producing four clear edges
func createEdgeTestChannel(width, height int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetGray(x, y, color.Gray{255})
		}
	}
	for y := height / 4; y < 3*height/4; y++ {
		for x := width / 4; x < 3*width/4; x++ {
			img.SetGray(x, y, color.Gray{0})
		}
	}
	return img
}

func countEdgePixels(img *image.Gray) int {
	n := 0
	for _, v := range img.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

func TestDetectEdges(t *testing.T) {
	ch := createEdgeTestChannel(100, 100)

	result := DetectEdges(ch, 200, 250)

	if result.Bounds() != image.Rect(0, 0, 100, 100) {
		t.Errorf("bounds: got %v, want (0,0)-(100,100)", result.Bounds())
	}
	if countEdgePixels(result) == 0 {
		t.Fatal("expected edges around the rectangle")
	}

	// Output is binary
	for i, v := range result.Pix {
		if v != 0 && v != 255 {
			t.Fatalf("pixel %d: got %d, want 0 or 255", i, v)
		}
	}

	// Interior of the rectangle and of the background has no edges
	if result.GrayAt(50, 50).Y != 0 {
		t.Error("rectangle interior should have no edges")
	}
	if result.GrayAt(5, 5).Y != 0 {
		t.Error("background should have no edges")
	}
}

func TestDetectEdges_UniformImage(t *testing.T) {
	ch := image.NewGray(image.Rect(0, 0, 50, 50))
	for i := range ch.Pix {
		ch.Pix[i] = 128
	}

	result := DetectEdges(ch, 50, 150)
	if n := countEdgePixels(result); n != 0 {
		t.Errorf("uniform image should have no edges, got %d", n)
	}
}

func TestDetectEdges_StrongEdgeIsThin(t *testing.T) {
	ch := image.NewGray(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 50; x < 100; x++ {
			ch.SetGray(x, y, color.Gray{255})
		}
	}

	result := DetectEdges(ch, 200, 250)

	for _, y := range []int{10, 50, 90} {
		found := 0
		for x := 45; x <= 55; x++ {
			if result.GrayAt(x, y).Y != 0 {
				found++
			}
		}
		if found != 1 {
			t.Errorf("row %d: got %d edge pixels near x=50, want exactly 1", y, found)
		}
	}
}

func TestDetectEdges_ThresholdsGateWeakContrast(t *testing.T) {
	// A 20-level step gives a Sobel magnitude of 80: below both thresholds.
	ch := image.NewGray(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			v := uint8(100)
			if x >= 20 {
				v = 120
			}
			ch.SetGray(x, y, color.Gray{v})
		}
	}

	if n := countEdgePixels(DetectEdges(ch, 200, 250)); n != 0 {
		t.Errorf("weak step should be rejected at 200/250, got %d edge pixels", n)
	}
	if n := countEdgePixels(DetectEdges(ch, 10, 50)); n == 0 {
		t.Error("weak step should be detected at 10/50")
	}
}

func TestDetectEdges_OffsetBounds(t *testing.T) {
	ch := image.NewGray(image.Rect(10, 10, 30, 30))
	for y := 10; y < 30; y++ {
		for x := 20; x < 30; x++ {
			ch.SetGray(x, y, color.Gray{255})
		}
	}

	result := DetectEdges(ch, 200, 250)
	if result.Bounds() != image.Rect(0, 0, 20, 20) {
		t.Errorf("bounds: got %v, want origin-based 20x20", result.Bounds())
	}
	if countEdgePixels(result) == 0 {
		t.Error("expected the step to be detected")
	}
}

func TestDetectEdges_SmallImage(t *testing.T) {
	for _, size := range []int{0, 1, 2} {
		ch := image.NewGray(image.Rect(0, 0, size, size))
		result := DetectEdges(ch, 50, 150)
		if result.Bounds().Dx() != size {
			t.Errorf("size %d: got width %d", size, result.Bounds().Dx())
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, want int
	}{
		{5, 0, 10, 5},   // within range
		{-1, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tt := range tests {
		got := clamp(tt.val, tt.min, tt.max)
		if got != tt.want {
			t.Errorf("clamp(%d, %d, %d): got %d, want %d",
				tt.val, tt.min, tt.max, got, tt.want)
		}
	}
}
