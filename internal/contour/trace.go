package contour

import (
	"image"
)

// border records what the tracer knows about one border label.
type border struct {
	hole   bool
	self   Ref
	parent Ref
}

// Trace extracts every border in a binary edge map and arranges them into a
// nesting tree.
//
// Any non-zero pixel is foreground. Pixels outside the image are background,
// so shapes touching the edge of the map are still closed.
//
// # Algorithm
//
// The map is scanned in raster order. A foreground pixel whose left
// neighbour is background starts an outer border; a foreground pixel whose
// right neighbour is background (and that is not already on a traced
// border) starts a hole border. Each new border is followed around its
// 8-connected boundary, labelling visited pixels so that it is never
// started again, and its parent is derived from the last border label seen
// on the current row:
//
//   - same kind as the last border (outer/outer, hole/hole): share its parent
//   - different kind: the last border is the parent
//
// Contours are indexed in the order they are discovered.
func Trace(edges *image.Gray) *Set {
	b := edges.Bounds()
	w, h := b.Dx(), b.Dy()
	stride := w + 2

	f := make([]int32, stride*(h+2))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if edges.GrayAt(b.Min.X+x, b.Min.Y+y).Y != 0 {
				f[(y+1)*stride+x+1] = 1
			}
		}
	}

	// 8-neighbour offsets, counterclockwise from east, listed twice so a
	// scan can run past direction 7 without wrapping.
	var deltas [16]int
	base := [8]int{1, -stride + 1, -stride, -stride - 1, -1, stride - 1, stride, stride + 1}
	copy(deltas[:8], base[:])
	copy(deltas[8:], base[:])

	toPoint := func(pos int) image.Point {
		return image.Pt(pos%stride-1+b.Min.X, pos/stride-1+b.Min.Y)
	}

	bld := NewBuilder()
	// Label 1 is the image frame, which behaves like a hole with no contour.
	borders := []border{{hole: true}}

	for y := 1; y <= h; y++ {
		lnbd := int32(1)
		for x := 1; x <= w; x++ {
			pos := y*stride + x
			v := f[pos]
			if v == 0 {
				continue
			}

			start := -1
			hole := false
			switch {
			case v == 1 && f[pos-1] == 0:
				start = 4
			case v >= 1 && f[pos+1] == 0:
				start = 0
				hole = true
				if v > 1 {
					lnbd = v
				}
			}

			if start >= 0 {
				nbd := int32(len(borders) + 1)
				last := borders[lnbd-1]
				parent := last.self
				if last.hole == hole {
					parent = last.parent
				}

				pts := follow(f, pos, start, nbd, &deltas)
				c := make(Contour, len(pts))
				for i, p := range pts {
					c[i] = toPoint(p)
				}
				idx := bld.Add(c, parent)
				borders = append(borders, border{hole: hole, self: To(idx), parent: parent})
			}

			if cur := f[pos]; cur != 1 {
				if cur < 0 {
					cur = -cur
				}
				lnbd = cur
			}
		}
	}

	return bld.Set()
}

// follow traces one border starting at origin. s is the direction of the
// background pixel that triggered the border. Pixels on the border are
// labelled nbd, or -nbd when their east neighbour is background, and their
// positions are returned in visiting order.
func follow(f []int32, origin, s int, nbd int32, deltas *[16]int) []int {
	end := s
	var first int
	for {
		s = (s - 1) & 7
		first = origin + deltas[s]
		if f[first] != 0 || s == end {
			break
		}
	}
	if f[first] == 0 {
		// Isolated pixel.
		f[origin] = -nbd
		return []int{origin}
	}

	var pts []int
	cur := origin
	for {
		end = s
		var next int
		for s < 15 {
			s++
			next = cur + deltas[s]
			if f[next] != 0 {
				break
			}
		}
		s &= 7

		// East neighbour was examined and found empty.
		if uint(s-1) < uint(end) {
			f[cur] = -nbd
		} else if f[cur] == 1 {
			f[cur] = nbd
		}
		pts = append(pts, cur)

		if next == origin && cur == first {
			break
		}
		cur = next
		s = (s + 4) & 7
	}
	return pts
}
