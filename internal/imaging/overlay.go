package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// LabeledBox is a rectangle to outline on a debug overlay, tagged with a
// number (normally the contour index).
type LabeledBox struct {
	Bounds image.Rectangle
	Label  int
}

// Overlay draws one-pixel outlines for each box on a copy of img and writes
// each box's label just above its top-left corner.
//
// Parameters:
//   - img: Background, typically the merged edge map.
//   - boxes: Rectangles to outline. Max is exclusive; the outline is drawn on
//     the closed rectangle from Min to Max, as box-drawing tools usually do.
//   - outlineHex: Outline colour as "#RRGGBB". Invalid strings fall back to
//     gray 100.
//   - labelHex: Label colour as "#RRGGBB". Invalid strings fall back to white.
//
// Parts of outlines or labels that fall outside the image are clipped.
func Overlay(img image.Image, boxes []LabeledBox, outlineHex, labelHex string) *image.RGBA {
	bounds := img.Bounds()
	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, img, bounds.Min, draw.Src)

	outline, err := parseHexColor(outlineHex)
	if err != nil {
		outline = color.RGBA{100, 100, 100, 255}
	}
	labelColor, err := parseHexColor(labelHex)
	if err != nil {
		labelColor = color.RGBA{255, 255, 255, 255}
	}

	for _, box := range boxes {
		drawRect(result, box.Bounds, outline)
		drawLabel(result, box.Bounds.Min.X, box.Bounds.Min.Y-8, strconv.Itoa(box.Label), labelColor, color.RGBA{})
	}

	return result
}

// drawRect outlines r (inclusive of Max) on img.
func drawRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	for x := r.Min.X; x <= r.Max.X; x++ {
		img.SetRGBA(x, r.Min.Y, c)
		img.SetRGBA(x, r.Max.Y, c)
	}
	for y := r.Min.Y; y <= r.Max.Y; y++ {
		img.SetRGBA(r.Min.X, y, c)
		img.SetRGBA(r.Max.X, y, c)
	}
}

// parseHexColor parses a hex color string like "#FF0000"
func parseHexColor(hex string) (color.RGBA, error) {
	if len(hex) == 0 {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// drawLabel draws a simple text label at the given position. A zero bg
// leaves the background untouched.
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.RGBA) {
	// Simple 3x5 pixel font for digits
	glyphs := map[rune][]string{
		'0': {"111", "101", "101", "101", "111"},
		'1': {"010", "110", "010", "010", "111"},
		'2': {"111", "001", "111", "100", "111"},
		'3': {"111", "001", "111", "001", "111"},
		'4': {"101", "101", "111", "001", "001"},
		'5': {"111", "100", "111", "001", "111"},
		'6': {"111", "100", "111", "101", "111"},
		'7': {"111", "001", "001", "001", "001"},
		'8': {"111", "101", "111", "101", "111"},
		'9': {"111", "101", "111", "001", "111"},
	}

	bounds := img.Bounds()
	charWidth := 4
	labelWidth := len(text) * charWidth
	labelHeight := 7

	if bg.A != 0 {
		for dy := -1; dy < labelHeight; dy++ {
			for dx := -1; dx < labelWidth; dx++ {
				px, py := x+dx, y+dy
				if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
					img.Set(px, py, bg)
				}
			}
		}
	}

	cx := x
	for _, ch := range text {
		glyph, ok := glyphs[ch]
		if !ok {
			cx += charWidth
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel == '1' {
					px, py := cx+col, y+row
					if px >= bounds.Min.X && px < bounds.Max.X && py >= bounds.Min.Y && py < bounds.Max.Y {
						img.Set(px, py, fg)
					}
				}
			}
		}
		cx += charWidth
	}
}
